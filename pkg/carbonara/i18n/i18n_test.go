package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BrandonKowalski/carbonara/pkg/carbonara/observer"
)

func writeMessages(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func newTestTranslator(t *testing.T) (*Translator, *observer.Registry[observer.LanguageChange]) {
	t.Helper()
	dir := t.TempDir()
	writeMessages(t, dir, "fr.toml", `
"system.brightness" = "Luminosité"
"system.volume" = "Volume"
`)

	changes := observer.NewRegistry[observer.LanguageChange]()
	tr, err := New(dir, changes)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return tr, changes
}

func TestTranslateDefaultsToEnglish(t *testing.T) {
	tr, _ := newTestTranslator(t)

	got, err := tr.Translate("system.brightness")
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if got != "Brightness" {
		t.Errorf("got %q, want Brightness", got)
	}
}

func TestSetLanguageNotifiesObservers(t *testing.T) {
	tr, changes := newTestTranslator(t)
	var seen []string
	changes.Attach(func(c observer.LanguageChange) { seen = append(seen, c.Language) })

	if err := tr.SetLanguage("fr"); err != nil {
		t.Fatalf("SetLanguage returned error: %v", err)
	}
	if err := tr.SetLanguage("fr"); err != nil {
		t.Fatalf("SetLanguage returned error: %v", err)
	}

	if len(seen) != 1 || seen[0] != "fr" {
		t.Errorf("expected one notification for fr, got %v", seen)
	}
	if got := tr.T("system.brightness"); got != "Luminosité" {
		t.Errorf("got %q, want Luminosité", got)
	}
}

func TestMissingTranslationIsNamedError(t *testing.T) {
	tr, _ := newTestTranslator(t)
	tr.SetLanguage("fr")

	text, err := tr.Translate("display.theme")
	if !IsTranslationError(err) {
		t.Fatalf("expected TranslationError, got %v", err)
	}
	te := err.(*TranslationError)
	if te.Key != "display.theme" || te.Language != "fr" {
		t.Errorf("unexpected error fields: %+v", te)
	}
	if text != "Theme" {
		t.Errorf("expected English fallback text, got %q", text)
	}
}

func TestUnknownKeyFallsBackToID(t *testing.T) {
	tr, _ := newTestTranslator(t)

	if _, err := tr.Translate("no.such.key"); err == nil {
		t.Error("expected error for unknown key")
	}
	if got := tr.T("no.such.key"); got != "no.such.key" {
		t.Errorf("got %q, want the id", got)
	}
}

func TestLanguagesListsEnglishFirst(t *testing.T) {
	tr, _ := newTestTranslator(t)

	langs := tr.Languages()
	if len(langs) != 2 || langs[0] != "en" || langs[1] != "fr" {
		t.Errorf("unexpected languages %v", langs)
	}
}

func TestInvalidLanguage(t *testing.T) {
	tr, _ := newTestTranslator(t)
	if err := tr.SetLanguage("not a tag!"); err == nil {
		t.Error("expected error for malformed tag")
	}
	if tr.Language() != "en" {
		t.Errorf("language changed to %q on error", tr.Language())
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("fr"); got != "français" {
		t.Errorf("DisplayName(fr) = %q", got)
	}
	if got := DisplayName("???"); got != "???" {
		t.Errorf("DisplayName of invalid tag = %q", got)
	}
}
