// Package config loads server configuration from an optional YAML file with
// flag and environment overrides layered on top by the caller.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all server settings.
type Config struct {
	Addr    string `yaml:"addr"`
	DBPath  string `yaml:"db"`
	LogPath string `yaml:"log"`

	// Admin is the single fixed credential pair the admin portal checks.
	// Demo-only: there is no user management and this is not a security
	// boundary.
	Admin struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"admin"`

	AI struct {
		Model   string   `yaml:"model"`
		Timeout Duration `yaml:"timeout"`
	} `yaml:"ai"`
}

// Duration decodes YAML scalars like "30s" or "2m" via time.ParseDuration.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{
		Addr:   ":8080",
		DBPath: "najdeno.sqlite3",
	}
	cfg.Admin.Email = "admin@gmail.com"
	cfg.Admin.Password = "123"
	cfg.AI.Timeout = Duration(30 * time.Second)
	return cfg
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults unchanged; a missing file is an error (the user asked for it).
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if cfg.AI.Timeout <= 0 {
		cfg.AI.Timeout = Duration(30 * time.Second)
	}
	return cfg, nil
}

// APIKey returns the Gemini API key from the environment. Empty means the AI
// features run in degraded mode (fallback analysis, empty semantic results).
func APIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}
