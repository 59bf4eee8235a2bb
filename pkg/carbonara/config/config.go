// Package config holds the launcher's INI-style TOML configuration as a flat
// map of dotted "section.name" keys.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BrandonKowalski/carbonara/pkg/carbonara/internal"
	"github.com/BurntSushi/toml"
)

// NotFound is returned by Get for keys that do not exist.
const NotFound = "NOT FOUND"

var ErrNotFound = errors.New("config key not found")

// Config is a flattened view of one TOML file. Values keep the TOML scalar
// type they were decoded with.
type Config struct {
	path   string
	values map[string]any
}

// New returns an empty configuration that saves to path.
func New(path string) *Config {
	return &Config{path: path, values: make(map[string]any)}
}

// Load decodes the TOML file at path. A missing file yields an empty
// configuration.
func Load(path string) (*Config, error) {
	cfg := New(path)

	var raw map[string]any
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			internal.GetLogger().Warn("Config file not found; using defaults", "path", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	flatten("", raw, cfg.values)
	return cfg, nil
}

func flatten(prefix string, in map[string]any, out map[string]any) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if table, ok := v.(map[string]any); ok {
			flatten(key, table, out)
			continue
		}
		out[key] = v
	}
}

func (c *Config) Path() string {
	return c.path
}

func (c *Config) Has(key string) bool {
	_, ok := c.values[key]
	return ok
}

// Keys returns every key, sorted.
func (c *Config) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup returns the string form of key and whether it exists.
func (c *Config) Lookup(key string) (string, bool) {
	v, ok := c.values[key]
	if !ok {
		return "", false
	}
	return stringify(v), true
}

// Get returns the string form of key, or NotFound.
func (c *Config) Get(key string) string {
	if v, ok := c.Lookup(key); ok {
		return v
	}
	return NotFound
}

// GetInt returns key as an int. Missing or non-numeric values are logged and
// read as 0.
func (c *Config) GetInt(key string) int {
	v, ok := c.values[key]
	if !ok {
		internal.GetLogger().Warn("Config lookup failed", "key", key, "error", ErrNotFound)
		return 0
	}

	switch n := v.(type) {
	case int64:
		return int(n)
	case float64:
		return int(n)
	}

	n, err := strconv.Atoi(strings.TrimSpace(stringify(v)))
	if err != nil {
		internal.GetLogger().Warn("Config value is not an integer", "key", key, "error", err)
		return 0
	}
	return n
}

// GetBool returns key as a bool. Missing or unrecognized values are logged
// and read as false.
func (c *Config) GetBool(key string) bool {
	v, ok := c.values[key]
	if !ok {
		internal.GetLogger().Warn("Config lookup failed", "key", key, "error", ErrNotFound)
		return false
	}

	if b, ok := v.(bool); ok {
		return b
	}

	b, ok := parseBool(stringify(v))
	if !ok {
		internal.GetLogger().Warn("Config value is not a boolean", "key", key, "value", v)
	}
	return b
}

func parseBool(s string) (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "on", "yes":
		return true, true
	case "false", "0", "off", "no":
		return false, true
	}
	return false, false
}

// GetList splits key on delim, trimming entries and dropping empty ones.
// TOML arrays are returned element by element.
func (c *Config) GetList(key, delim string) []string {
	v, ok := c.values[key]
	if !ok {
		return nil
	}

	var parts []string
	if arr, isArray := v.([]any); isArray {
		for _, e := range arr {
			parts = append(parts, stringify(e))
		}
	} else {
		parts = strings.Split(stringify(v), delim)
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Set stores value under key. Existing keys keep their TOML type when value
// parses as that type; otherwise, and for new keys, the value is a string.
func (c *Config) Set(key, value string) {
	old, exists := c.values[key]
	if !exists {
		c.values[key] = value
		return
	}

	switch old.(type) {
	case bool:
		if b, ok := parseBool(value); ok {
			c.values[key] = b
			return
		}
	case int64:
		if n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			c.values[key] = n
			return
		}
	case float64:
		if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			c.values[key] = f
			return
		}
	case []any:
		var arr []any
		for _, p := range strings.Split(value, ",") {
			if p = strings.TrimSpace(p); p != "" {
				arr = append(arr, p)
			}
		}
		c.values[key] = arr
		return
	}

	c.values[key] = value
}

// Save writes the configuration back to its file atomically.
func (c *Config) Save() error {
	if c.path == "" {
		return fmt.Errorf("config has no path")
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c.nested()); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := internal.WriteFileAtomic(c.path, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	internal.GetInternalLogger().Debug("Saved config", "path", c.path)
	return nil
}

func (c *Config) nested() map[string]any {
	root := make(map[string]any)
	for key, v := range c.values {
		parts := strings.Split(key, ".")
		table := root
		for _, p := range parts[:len(parts)-1] {
			next, ok := table[p].(map[string]any)
			if !ok {
				next = make(map[string]any)
				table[p] = next
			}
			table = next
		}
		table[parts[len(parts)-1]] = v
	}
	return root
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		return t.Format(time.RFC3339)
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = stringify(e)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(t)
	}
}
