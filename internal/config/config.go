package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything redirectctl needs to reach the redirect API.
type Config struct {
	APIURL   string
	Token    string
	Timeout  time.Duration
	PageSize int
	LogFile  string
	LogLevel string
}

const (
	defaultConfigPath = "~/.config/redirectctl/config.toml"
	defaultAPIURL     = "http://localhost:29900"
	defaultTimeout    = 10 * time.Second
	defaultPageSize   = 10
	defaultLogFile    = "~/.local/state/redirectctl/redirectctl.log"
	defaultLogLevel   = "info"

	envAPIURL   = "REDIRECT_API_URL"
	envToken    = "SERVICE_AUTH_TOKEN"
	envLogLevel = "REDIRECTCTL_LOG_LEVEL"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:   defaultAPIURL,
		Timeout:  defaultTimeout,
		PageSize: defaultPageSize,
		LogFile:  mustExpand(defaultLogFile),
		LogLevel: defaultLogLevel,
	}
}

// Load locates and parses the config file, falling back to defaults when it is
// missing. Environment overrides are applied last.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL   string `toml:"api_url"`
		Token    string `toml:"token"`
		Timeout  string `toml:"timeout"`
		PageSize int    `toml:"page_size"`
		LogFile  string `toml:"log_file"`
		LogLevel string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	cfg.Token = strings.TrimSpace(raw.Token)
	if v := strings.TrimSpace(raw.Timeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse timeout: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("parse timeout: %q must be positive", v)
		}
		cfg.Timeout = d
	}
	if raw.PageSize > 0 {
		cfg.PageSize = raw.PageSize
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(envAPIURL)); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(envToken)); v != "" {
		cfg.Token = v
	}
	if v := strings.TrimSpace(os.Getenv(envLogLevel)); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
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
