// Package config loads sgip configuration with layered precedence:
// defaults, then an optional YAML file, then environment variables.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the default name of the project-level config file.
const ConfigFile = "sgip.yaml"

// Config captures everything the CLI and library need to run.
type Config struct {
	// StorePath is the SQLite database file holding the registry state.
	StorePath string `yaml:"store_path"`
	// SessionSigningKey signs session tokens so a restored session
	// record is tamper-evident.
	SessionSigningKey string `yaml:"session_signing_key"`
	// Insight configures the pastoral advisory collaborator.
	Insight InsightConfig `yaml:"insight"`
}

// InsightConfig points at the generative advisory endpoint. An empty
// endpoint disables the call; callers then always see the fallback text.
type InsightConfig struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		StorePath:         "sgip.db",
		SessionSigningKey: "dev-signing-key-change-in-production",
	}
}

// LoadFromFile reads a config file and merges it over cfg.
func LoadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Merge(file)
	return nil
}

// Merge overlays non-zero fields from other onto c.
func (c *Config) Merge(other Config) {
	if other.StorePath != "" {
		c.StorePath = other.StorePath
	}
	if other.SessionSigningKey != "" {
		c.SessionSigningKey = other.SessionSigningKey
	}
	if other.Insight.Endpoint != "" {
		c.Insight.Endpoint = other.Insight.Endpoint
	}
	if other.Insight.APIKey != "" {
		c.Insight.APIKey = other.Insight.APIKey
	}
}

// Load builds the effective config: defaults, optional file at path (or
// ConfigFile in the working directory when path is empty), then env.
func Load(path string) (Config, error) {
	cfg := Default()
	candidate := path
	if candidate == "" {
		candidate = ConfigFile
	}
	if err := LoadFromFile(candidate, &cfg); err != nil {
		// A missing default file is fine; an explicit path must exist.
		if path != "" || !os.IsNotExist(err) {
			return cfg, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SGIP_STORE_PATH"); v != "" {
		c.StorePath = v
	}
	if v := os.Getenv("SGIP_SESSION_SIGNING_KEY"); v != "" {
		c.SessionSigningKey = v
	}
	if v := os.Getenv("SGIP_INSIGHT_ENDPOINT"); v != "" {
		c.Insight.Endpoint = v
	}
	if v := os.Getenv("SGIP_INSIGHT_API_KEY"); v != "" {
		c.Insight.APIKey = v
	}
}
