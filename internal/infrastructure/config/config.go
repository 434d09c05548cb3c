// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for relmig configuration.
	DefaultConfigDir = ".relmig"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultDBFile is the default SQLite database file name.
	DefaultDBFile = "relmig.db"
)

// Config holds static migration configuration (read-only after init).
type Config struct {
	Company CompanyConfig `yaml:"company,omitempty"`
	SQLite  SQLiteConfig  `yaml:"sqlite,omitempty"`
	// Aliases extends the built-in customer alias table; keys and values
	// in normalized form (lowercase, collapsed whitespace).
	Aliases map[string]string `yaml:"aliases,omitempty"`
	// Responsibles extends the built-in initials-to-name table.
	Responsibles map[string]string `yaml:"responsibles,omitempty"`
}

// CompanyConfig identifies the company the import runs for.
type CompanyConfig struct {
	// ID is the company identifier written on imported offers.
	ID string `yaml:"id,omitempty"`
	// NumberPrefix is the short uppercase code in offer numbers,
	// e.g. "TK" in TK-2024-007.
	NumberPrefix string `yaml:"number_prefix,omitempty"`
}

// SQLiteConfig holds configuration for the SQLite store.
type SQLiteConfig struct {
	// Path is the file path to the SQLite database.
	Path string `yaml:"path,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Company: CompanyConfig{
			ID:           "tak",
			NumberPrefix: "TK",
		},
	}
}

// Load loads configuration from the .relmig directory in the given path.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'relmig init' first)", configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvOverrides()

	if cfg.SQLite.Path == "" {
		cfg.SQLite.Path = filepath.Join(ConfigDir(basePath), DefaultDBFile)
	}

	return cfg, nil
}

// Save writes the config to the .relmig directory, creating it if needed.
func Save(basePath string, cfg *Config) error {
	if err := os.MkdirAll(ConfigDir(basePath), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(ConfigFilePath(basePath), data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("RELMIG_DB"); path != "" {
		c.SQLite.Path = path
	}
	if prefix := os.Getenv("RELMIG_NUMBER_PREFIX"); prefix != "" {
		c.Company.NumberPrefix = prefix
	}
}

// MergedAliases returns the built-in alias table overlaid with the config's
// additions. Config entries win on key collisions.
func (c *Config) MergedAliases(defaults map[string]string) map[string]string {
	merged := make(map[string]string, len(defaults)+len(c.Aliases))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range c.Aliases {
		merged[k] = v
	}
	return merged
}

// MergedResponsibles returns the built-in responsibles table overlaid with
// the config's additions.
func (c *Config) MergedResponsibles(defaults map[string]string) map[string]string {
	merged := make(map[string]string, len(defaults)+len(c.Responsibles))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range c.Responsibles {
		merged[k] = v
	}
	return merged
}

// ConfigDir returns the path to the .relmig config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// Exists checks if a relmig config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}
