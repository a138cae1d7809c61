// Package config handles CLI configuration loading and management.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration.
type Config struct {
	DefaultProfile string                   `yaml:"default_profile"`
	Profiles       map[string]ProfileConfig `yaml:"profiles"`
}

// ProfileConfig holds configuration for a bot profile.
type ProfileConfig struct {
	// TokenRef names the keystore entry holding this profile's bot token.
	TokenRef string `yaml:"token_ref"`
	// ApplicationID is the bot's application snowflake, as a decimal string.
	ApplicationID string `yaml:"application_id,omitempty"`
}

// DefaultConfigPath returns the default configuration file path for the current platform.
// - macOS/Linux: ~/.concord/config.yaml
// - Windows: %USERPROFILE%\.concord\config.yaml
func DefaultConfigPath() string {
	var homeDir string

	if runtime.GOOS == "windows" {
		homeDir = os.Getenv("USERPROFILE")
	} else {
		homeDir = os.Getenv("HOME")
	}

	if homeDir == "" {
		// Fallback to current directory
		return "config.yaml"
	}

	return filepath.Join(homeDir, ".concord", "config.yaml")
}

// LoadConfig loads configuration from the specified path.
// If the file doesn't exist, returns an empty config without error.
// Returns an error only if the file exists but cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Profiles: make(map[string]ProfileConfig),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Missing config file is not an error
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// Ensure Profiles map is initialized
	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]ProfileConfig)
	}

	return cfg, nil
}

// SaveConfig writes configuration to the specified path, creating the
// parent directory if needed.
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// GetProfile returns the profile config for the given name.
// Returns nil if the profile is not configured.
func (c *Config) GetProfile(name string) *ProfileConfig {
	if c.Profiles == nil {
		return nil
	}
	if pc, ok := c.Profiles[name]; ok {
		return &pc
	}
	return nil
}
