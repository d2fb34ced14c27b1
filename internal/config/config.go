// Package config loads engine configuration from YAML files and
// ORACLE_* environment variables, with sane defaults for local use.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Cards   CardsConfig   `mapstructure:"cards"`
	Catalog CatalogConfig `mapstructure:"catalog"`
}

// ServerConfig configures the WebSocket event server.
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CardsConfig selects and configures the card store backend.
type CardsConfig struct {
	// Backend is "file", "sqlite" or "postgres".
	Backend     string        `mapstructure:"backend"`
	Path        string        `mapstructure:"path"`
	DatabaseURL string        `mapstructure:"database_url"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
}

// CatalogConfig configures the remote card catalog client.
type CatalogConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	BaseURL           string  `mapstructure:"base_url"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8089")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("cards.backend", "sqlite")
	v.SetDefault("cards.path", "data/cards.db")
	v.SetDefault("cards.cache_ttl", time.Hour)
	v.SetDefault("catalog.enabled", false)
	v.SetDefault("catalog.base_url", "https://api.scryfall.com")
	v.SetDefault("catalog.requests_per_second", 5.0)
}

// Load reads configuration from the given YAML file. A missing file is
// not an error: defaults and environment variables still apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("ORACLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, statErr := os.Stat(path); statErr == nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Cards.Backend {
	case "file", "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown cards backend %q", c.Cards.Backend)
	}
	if c.Cards.Backend == "postgres" && c.Cards.DatabaseURL == "" {
		return fmt.Errorf("cards backend postgres requires cards.database_url")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown logging level %q", c.Logging.Level)
	}
	return nil
}
