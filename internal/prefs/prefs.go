// Package prefs handles redirectctl user preferences persistence.
// Preferences are stored in ~/.config/redirectctl/prefs.toml.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences for the browser. PageSize zero means "use the
// configured default".
type Prefs struct {
	Theme    string `toml:"theme"`
	PageSize int    `toml:"page_size,omitempty"`
}

const (
	defaultPrefsPath = "~/.config/redirectctl/prefs.toml"
	defaultTheme     = "Nightfox"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

func defaults() Prefs {
	return Prefs{Theme: defaultTheme}
}

// Load reads preferences from the given path. A missing, unreadable or
// malformed file yields defaults.
func Load(path string) Prefs {
	resolved, err := resolvePath(path)
	if err != nil {
		return defaults()
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return defaults()
	}

	prefs := defaults()
	if err := toml.Unmarshal(data, &prefs); err != nil {
		return defaults()
	}

	if strings.TrimSpace(prefs.Theme) == "" {
		prefs.Theme = defaultTheme
	}
	if prefs.PageSize < 0 {
		prefs.PageSize = 0
	}

	return prefs
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
