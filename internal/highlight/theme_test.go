package highlight

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTheme(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "theme.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	r, g, b := theme.Color(CategoryNumber).RGB255()
	if r != 220 || g != 163 || b != 163 {
		t.Errorf("number color: got %d,%d,%d", r, g, b)
	}

	// Unknown categories fall back to the default foreground.
	r, g, b = theme.Color(Category(99)).RGB255()
	if r != 255 || g != 255 || b != 255 {
		t.Errorf("fallback color: got %d,%d,%d", r, g, b)
	}

	r, g, b = theme.StatusBg.RGB255()
	if r != 239 || g != 239 || b != 239 {
		t.Errorf("status background: got %d,%d,%d", r, g, b)
	}
}

func TestLoadThemeOverlaysDefaults(t *testing.T) {
	path := writeTheme(t, `{
		"colors": {"number": "#ff0000", "comment": "#00ff00"},
		"status": {"fg": "#000000"}
	}`)

	theme, err := LoadTheme(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if r, g, b := theme.Color(CategoryNumber).RGB255(); r != 255 || g != 0 || b != 0 {
		t.Errorf("number color: got %d,%d,%d", r, g, b)
	}
	if r, g, b := theme.Color(CategoryComment).RGB255(); r != 0 || g != 255 || b != 0 {
		t.Errorf("comment color: got %d,%d,%d", r, g, b)
	}
	if r, g, b := theme.StatusFg.RGB255(); r != 0 || g != 0 || b != 0 {
		t.Errorf("status foreground: got %d,%d,%d", r, g, b)
	}

	// Keys the file does not mention keep their defaults.
	if r, g, b := theme.Color(CategoryString).RGB255(); r != 211 || g != 54 || b != 130 {
		t.Errorf("string color should keep its default, got %d,%d,%d", r, g, b)
	}
	if r, g, b := theme.StatusBg.RGB255(); r != 239 || g != 239 || b != 239 {
		t.Errorf("status background should keep its default, got %d,%d,%d", r, g, b)
	}
}

func TestLoadThemeInvalidJSON(t *testing.T) {
	path := writeTheme(t, `{"colors": `)
	if _, err := LoadTheme(path); err == nil {
		t.Error("expected an error for malformed JSON")
	}
}

func TestLoadThemeBadColor(t *testing.T) {
	path := writeTheme(t, `{"colors": {"number": "not-a-color"}}`)
	if _, err := LoadTheme(path); err == nil {
		t.Error("expected an error for a malformed color")
	}
}

func TestLoadThemeMissingFile(t *testing.T) {
	if _, err := LoadTheme(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
