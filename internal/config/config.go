// Package config loads the YAML configuration file. A missing file is not
// an error: defaults keep the tool fully offline-capable.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DBPath          string            `yaml:"db_path"`
	PlatformDefault string            `yaml:"platform_default"`
	SelfPatterns    []string          `yaml:"self_patterns"`
	Neutralizer     NeutralizerConfig `yaml:"neutralizer"`
}

// NeutralizerConfig points at an optional OpenAI-compatible endpoint. Empty
// base_url keeps neutralization on the deterministic rules path.
type NeutralizerConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func Default() *Config {
	return &Config{
		DBPath:          "data/casespine.db",
		PlatformDefault: "SMS",
		SelfPatterns:    []string{"Self", "Me"},
		Neutralizer:     NeutralizerConfig{TimeoutSeconds: 20},
	}
}

func Load(path string) (*Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Neutralizer.TimeoutSeconds <= 0 {
		cfg.Neutralizer.TimeoutSeconds = 20
	}
	return cfg, nil
}
