package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds defaults read from an optional YAML file. Flags override
// config values.
type Config struct {
	UserAgent string   `yaml:"user_agent"`
	RateLimit float64  `yaml:"rate_limit"`
	Timeout   Duration `yaml:"timeout"`
	Database  string   `yaml:"database"`
}

// Duration decodes "30s" style YAML values.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing file yields an empty config.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if explicit {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

func defaultConfigPath() string {
	if path := os.Getenv("PMCFETCH_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pmcfetch.yaml"
	}
	return filepath.Join(home, ".pmcfetch.yaml")
}
