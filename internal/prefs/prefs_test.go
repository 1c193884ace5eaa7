package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p := Load("")
	if p.Theme != defaultTheme || p.PageSize != 0 {
		t.Fatalf("prefs = %#v, want defaults", p)
	}
}

func TestLoad_ReadsDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	prefsDir := filepath.Join(home, ".config", "redirectctl")
	if err := os.MkdirAll(prefsDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	prefsFile := filepath.Join(prefsDir, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("theme = \"Slate\"\npage_size = 30\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p := Load("")
	if p.Theme != "Slate" || p.PageSize != 30 {
		t.Fatalf("prefs = %#v, want Slate/30", p)
	}
}

func TestSave_CreatesFileAndDirs(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "subdir", "prefs.toml")

	if err := Save(prefsFile, Prefs{Theme: "Kanagawa", PageSize: 5}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded := Load(prefsFile)
	if loaded.Theme != "Kanagawa" || loaded.PageSize != 5 {
		t.Fatalf("loaded = %#v, want Kanagawa/5", loaded)
	}
}

func TestLoad_EmptyThemeFallsBackToDefault(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("theme = \"\"\npage_size = -4\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p := Load(prefsFile)
	if p.Theme != defaultTheme || p.PageSize != 0 {
		t.Fatalf("prefs = %#v, want default theme and zero page size", p)
	}
}

func TestLoad_InvalidTOMLFallsBackToDefault(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("not valid toml {{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p := Load(prefsFile)
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
}
