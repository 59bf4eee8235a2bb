package internal

import "errors"

var errNoLoader = errors.New("image cache has no loader")
