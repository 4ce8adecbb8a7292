package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Generator GeneratorConfig `mapstructure:"generator"`
}

// ServerConfig is the HTTP server configuration.
type ServerConfig struct {
	Host               string        `mapstructure:"host"`
	Port               int           `mapstructure:"port"`
	Mode               string        `mapstructure:"mode"`
	ReadTimeout        time.Duration `mapstructure:"read_timeout"`
	WriteTimeout       time.Duration `mapstructure:"write_timeout"`
	MaxRequestBodySize int           `mapstructure:"max_request_body_size"`
}

// LogConfig is the logging configuration.
type LogConfig struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	Output    string `mapstructure:"output"`
	FilePath  string `mapstructure:"file_path"`
	AddSource bool   `mapstructure:"add_source"`
}

// DatabaseConfig is the relational store configuration. The sqlite
// driver (the default) only needs Path; mysql uses the host fields.
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // sqlite, mysql
	Path            string        `mapstructure:"path"`   // sqlite database file
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// GeneratorConfig selects and tunes the reply generator. Mode "rules"
// is the built-in keyword engine; "remote" posts to an external
// inference service at BaseURL.
type GeneratorConfig struct {
	Mode    string        `mapstructure:"mode"` // rules, remote
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Load reads the configuration file and applies CHAT_-prefixed
// environment overrides.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("CHAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the loaded configuration and applies defaults where a
// zero value has an obvious one.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server mode: %s, must be 'debug' or 'release'", c.Server.Mode)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("invalid log format: %s, must be 'json' or 'text'", c.Log.Format)
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for the sqlite driver")
		}
	case "mysql":
		if c.Database.Host == "" {
			return fmt.Errorf("database.host is required for the mysql driver")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database.database is required for the mysql driver")
		}
	default:
		return fmt.Errorf("invalid database driver: %s, must be 'sqlite' or 'mysql'", c.Database.Driver)
	}

	switch c.Generator.Mode {
	case "", "rules":
		c.Generator.Mode = "rules"
	case "remote":
		if c.Generator.BaseURL == "" {
			return fmt.Errorf("generator.base_url is required for the remote generator")
		}
	default:
		return fmt.Errorf("invalid generator mode: %s, must be 'rules' or 'remote'", c.Generator.Mode)
	}
	if c.Generator.Timeout <= 0 {
		c.Generator.Timeout = 30 * time.Second
	}

	return nil
}

// GetServerAddr returns the listen address.
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetReadTimeout returns the server read timeout.
func (c *Config) GetReadTimeout() time.Duration {
	return c.Server.ReadTimeout
}

// GetWriteTimeout returns the server write timeout.
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Server.WriteTimeout
}
