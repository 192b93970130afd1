// Package config provides configuration loading and structs for the Kemari engine.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug  bool         `yaml:"debug"`
	Bundle BundleConfig `yaml:"bundle"`
	Search SearchConfig `yaml:"search"`
	Index  IndexConfig  `yaml:"index"`
}

// BundleConfig holds the location of the search bundle.
type BundleConfig struct {
	Path string `yaml:"path"`
}

// SearchConfig holds query-time settings.
type SearchConfig struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
	// MinScore drops results below this cosine similarity. Zero keeps
	// every result with at least one overlapping term.
	MinScore float64 `yaml:"min_score"`
}

// IndexConfig holds dataset and build settings for the indexer.
type IndexConfig struct {
	DatasetPath string `yaml:"dataset_path"`
	// Sheet selects the worksheet for .xlsx datasets; empty means the first.
	Sheet           string `yaml:"sheet"`
	Workers         int    `yaml:"workers"`
	Watch           bool   `yaml:"watch"`
	WatchDebounceMS int    `yaml:"watch_debounce_ms"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Bundle.Path = expandPath(cfg.Bundle.Path, configDir)
	if cfg.Index.DatasetPath != "" {
		cfg.Index.DatasetPath = expandPath(cfg.Index.DatasetPath, configDir)
	}

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
