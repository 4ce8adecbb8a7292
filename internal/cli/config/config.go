package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const defaultServer = "http://localhost:8080"

// Config stores CLI configuration.
type Config struct {
	Server         string `json:"server"`          // API server address
	UserIdentifier string `json:"user_identifier"` // identity sent with chat requests
}

// GetConfigPath returns the configuration file path (~/.chatctl/config.json).
func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".chatctl", "config.json"), nil
}

// Load loads configuration from file, falling back to defaults when the
// file does not exist.
func Load() (*Config, error) {
	configFile, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return &Config{Server: defaultServer}, nil
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Server == "" {
		cfg.Server = defaultServer
	}

	return &cfg, nil
}

// Save saves configuration to file.
func (c *Config) Save() error {
	configFile, err := GetConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
