// Package i18n resolves translated UI strings and announces language changes.
package i18n

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BrandonKowalski/carbonara/pkg/carbonara/internal"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/observer"
	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// TranslationError reports a message missing from the active language.
type TranslationError struct {
	Key      string
	Language string
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("i18n: no translation for %q in %s", e.Key, e.Language)
}

// IsTranslationError checks if an error is a missing translation.
func IsTranslationError(err error) bool {
	var te *TranslationError
	return errors.As(err, &te)
}

// Translator owns the message bundle and the active language.
type Translator struct {
	bundle    *goi18n.Bundle
	localizer *goi18n.Localizer
	active    language.Tag
	changes   *observer.Registry[observer.LanguageChange]
}

// New builds a translator with the compiled-in English messages plus every
// <tag>.toml file found in dir. A missing dir is not an error.
func New(dir string, changes *observer.Registry[observer.LanguageChange]) (*Translator, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	if err := bundle.AddMessages(language.English, defaultMessages...); err != nil {
		return nil, fmt.Errorf("failed to register default messages: %w", err)
	}

	if dir != "" {
		if err := loadDir(bundle, dir); err != nil {
			return nil, err
		}
	}

	t := &Translator{
		bundle:  bundle,
		changes: changes,
	}
	t.setActive(language.English)
	return t, nil
}

func loadDir(bundle *goi18n.Bundle, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			internal.GetInternalLogger().Debug("No translations directory", "path", dir)
			return nil
		}
		return fmt.Errorf("failed to read translations: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".toml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if _, err := bundle.LoadMessageFile(path); err != nil {
			internal.GetInternalLogger().Error("Failed to load translation file", "path", path, "error", err)
		}
	}
	return nil
}

func (t *Translator) setActive(tag language.Tag) {
	t.active = tag
	t.localizer = goi18n.NewLocalizer(t.bundle, tag.String())
}

// Language returns the active language tag, e.g. "en" or "pt-BR".
func (t *Translator) Language() string {
	return t.active.String()
}

// SetLanguage switches the active language and notifies observers. Setting
// the language already active is a no-op.
func (t *Translator) SetLanguage(raw string) error {
	tag, err := language.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid language %q: %w", raw, err)
	}
	if tag == t.active {
		return nil
	}

	t.setActive(tag)
	internal.GetLogger().Info("Language changed", "language", tag.String())
	t.changes.Notify(observer.LanguageChange{Language: tag.String()})
	return nil
}

// Translate resolves id in the active language. When the message only exists
// in the English fallback, that text is returned together with a
// *TranslationError.
func (t *Translator) Translate(id string) (string, error) {
	text, tag, err := t.localizer.LocalizeWithTag(&goi18n.LocalizeConfig{MessageID: id})
	if err != nil {
		return text, &TranslationError{Key: id, Language: t.active.String()}
	}

	if base(tag) != base(t.active) {
		return text, &TranslationError{Key: id, Language: t.active.String()}
	}
	return text, nil
}

// T resolves id, falling back to the English text or the id itself.
func (t *Translator) T(id string) string {
	text, err := t.Translate(id)
	if err != nil {
		internal.GetLogger().Debug("Missing translation", "key", id, "language", t.active.String())
	}
	if text == "" {
		return id
	}
	return text
}

// Languages returns the loaded language tags, English first.
func (t *Translator) Languages() []string {
	tags := t.bundle.LanguageTags()
	out := make([]string, 0, len(tags))
	out = append(out, language.English.String())
	for _, tag := range tags {
		if tag == language.English {
			continue
		}
		out = append(out, tag.String())
	}
	return out
}

// DisplayName returns the language's name in that language ("Français").
func DisplayName(raw string) string {
	tag, err := language.Parse(raw)
	if err != nil {
		return raw
	}
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return raw
}

func base(tag language.Tag) language.Base {
	b, _ := tag.Base()
	return b
}
