package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields Lumina needs to reach the service.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	DefaultType    string
	DefaultModel   string
	ListLimit      int
	LogPath        string
}

const (
	defaultConfigPath  = "~/.config/lumina/config.toml"
	defaultBaseURL     = "https://luminaai.zesbe.my.id/api/v1"
	defaultTimeoutSecs = 15
	defaultType        = "music"
	defaultModel       = "music-2.0"
	defaultListLimit   = 50
	defaultLogPath     = "~/.local/share/lumina/lumina.log"
)

// Load locates and parses the config file, falling back to defaults when
// missing. LUMINA_BASE_URL overrides the file in either case.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		BaseURL:        defaultBaseURL,
		RequestTimeout: defaultTimeoutSecs * time.Second,
		DefaultType:    defaultType,
		DefaultModel:   defaultModel,
		ListLimit:      defaultListLimit,
		LogPath:        mustExpand(defaultLogPath),
	}

	bytes, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL            string `toml:"base_url"`
		RequestTimeoutSecs int    `toml:"request_timeout_secs"`
		DefaultType        string `toml:"default_type"`
		DefaultModel       string `toml:"default_model"`
		ListLimit          int    `toml:"list_limit"`
		LogPath            string `toml:"log_path"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.BaseURL); v != "" {
		cfg.BaseURL = v
	}
	if raw.RequestTimeoutSecs > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeoutSecs) * time.Second
	}
	if v := strings.TrimSpace(raw.DefaultType); v != "" {
		cfg.DefaultType = v
	}
	if v := strings.TrimSpace(raw.DefaultModel); v != "" {
		cfg.DefaultModel = v
	}
	if raw.ListLimit > 0 {
		cfg.ListLimit = raw.ListLimit
	}
	if v := strings.TrimSpace(raw.LogPath); v != "" {
		cfg.LogPath = mustExpand(v)
	}

	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	if v := strings.TrimSpace(os.Getenv("LUMINA_BASE_URL")); v != "" {
		cfg.BaseURL = v
	}
	return cfg
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		if v := strings.TrimSpace(os.Getenv("LUMINA_CONFIG")); v != "" {
			return expandPath(v)
		}
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
