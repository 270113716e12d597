package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mirao/hecto/internal/highlight"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "init.lua")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadTheme(t *testing.T) {
	path := writeConfig(t, `theme("/home/user/theme.json")`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ThemePath != "/home/user/theme.json" {
		t.Errorf("expected theme path, got %q", cfg.ThemePath)
	}
}

func TestLoadFileType(t *testing.T) {
	path := writeConfig(t, `
filetype{
    name = "TOML",
    extensions = {".toml", ".tml"},
    numbers = true,
    strings = true,
    comments = true,
    primary_keywords = {"true", "false"},
}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(cfg.FileTypes) != 1 {
		t.Fatalf("expected 1 filetype, got %d", len(cfg.FileTypes))
	}

	rule := cfg.FileTypes[0]
	if rule.Name != "TOML" {
		t.Errorf("expected TOML, got %q", rule.Name)
	}
	if len(rule.Extensions) != 2 || rule.Extensions[0] != ".toml" {
		t.Errorf("unexpected extensions %v", rule.Extensions)
	}

	opts := rule.FileType.Options
	if !opts.Numbers || !opts.Strings || !opts.Comments {
		t.Error("declared rules should be enabled")
	}
	if opts.Characters || opts.MultilineComments {
		t.Error("undeclared rules should stay disabled")
	}
	if len(opts.PrimaryKeywords) != 2 {
		t.Errorf("unexpected keywords %v", opts.PrimaryKeywords)
	}
}

func TestApplyRegistersFileTypes(t *testing.T) {
	path := writeConfig(t, `
filetype{
    name = "INI",
    extensions = {".ini"},
    comments = true,
}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	cfg.Apply()

	if ft := highlight.FromPath("settings.ini"); ft.Name != "INI" {
		t.Errorf("expected INI after apply, got %q", ft.Name)
	}
}

func TestLoadFileTypeRequiresName(t *testing.T) {
	path := writeConfig(t, `filetype{extensions = {".x"}}`)
	if _, err := Load(path); err == nil {
		t.Error("expected an error for a nameless filetype")
	}
}

func TestLoadFileTypeRequiresExtensions(t *testing.T) {
	path := writeConfig(t, `filetype{name = "X"}`)
	if _, err := Load(path); err == nil {
		t.Error("expected an error for missing extensions")
	}
}

func TestLoadSyntaxError(t *testing.T) {
	path := writeConfig(t, `theme(`)
	if _, err := Load(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.lua")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestSandboxExcludesOS(t *testing.T) {
	path := writeConfig(t, `os.exit(1)`)
	if _, err := Load(path); err == nil {
		t.Error("os library should not be available to config scripts")
	}
}
