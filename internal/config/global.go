package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME and XDG_DATA_HOME.
	ConfigDir = "tei"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
)

// Environment variables that override the config file.
const (
	EnvGrobidURL     = "GROBID_URL"
	EnvGrobidTimeout = "GROBID_TIMEOUT"
	EnvDatabase      = "TEI_DATABASE"
)

// configCache caches the loaded config.
var configCache *Config

// Path returns the path to the config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/tei/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load returns the effective configuration: defaults, then the config file,
// then environment overrides. A missing file is not an error.
func Load() (*Config, error) {
	if configCache != nil {
		return configCache, nil
	}

	cfg := Default()
	if path := Path(); path != "" {
		file, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg.merge(file)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configCache = cfg
	return cfg, nil
}

// LoadFile reads a single config file. Returns an empty config (not an
// error) if the file doesn't exist.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvGrobidURL); v != "" {
		c.GrobidURL = v
	}
	if v := os.Getenv(EnvGrobidTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvGrobidTimeout, err)
		}
		c.Timeout = d
	}
	if v := os.Getenv(EnvDatabase); v != "" {
		c.Database = ExpandPath(v)
	}
	return nil
}

// Marshal renders the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}

// ResetCache clears the cached config.
// Useful for testing.
func ResetCache() {
	configCache = nil
}
