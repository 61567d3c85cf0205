// Package config loads the wf configuration from defaults, an optional config
// file and WEALTHFLOW_ environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/etnz/wealthflow"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Currency string
	Gemini   GeminiConfig
	Storage  StorageConfig
	Scenario ScenarioConfig
	Autosave AutosaveConfig
	Server   ServerConfig
	Log      LogConfig
}

// GeminiConfig holds the generative AI settings.
type GeminiConfig struct {
	APIKey   string `mapstructure:"api_key"`
	Model    string
	Language string
}

// StorageConfig selects where documents are persisted.
type StorageConfig struct {
	Driver string // memory, sqlite or postgres
	DSN    string
}

// ScenarioConfig tunes the scenario simulator.
type ScenarioConfig struct {
	Limit  int
	Linker string
}

// AutosaveConfig tunes the debounced persistence.
type AutosaveConfig struct {
	Delay time.Duration
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	Addr      string
	JWTSecret string `mapstructure:"jwt_secret"`
}

// LogConfig holds the logger settings.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from file and env. Env var overrides use prefix WEALTHFLOW_.
func Load() (Config, error) {
	v := viper.New()

	home, _ := os.UserHomeDir()
	v.SetDefault("currency", "TWD")
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.language", "English")
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.dsn", filepath.Join(home, ".local", "share", "wealthflow", "wealthflow.db"))
	v.SetDefault("scenario.limit", wealthflow.DefaultScenarioLimit)
	v.SetDefault("scenario.linker", "name")
	v.SetDefault("autosave.delay", 2*time.Second)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.jwt_secret", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	if cfgPath := os.Getenv("WEALTHFLOW_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "wealthflow"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("WEALTHFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the values viper cannot.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case "memory", "sqlite", "postgres":
	default:
		return fmt.Errorf("invalid storage.driver %q, expected memory, sqlite or postgres", c.Storage.Driver)
	}
	if c.Scenario.Limit < 1 {
		return fmt.Errorf("invalid scenario.limit %d, must be at least 1", c.Scenario.Limit)
	}
	if _, err := wealthflow.ParseLinker(c.Scenario.Linker); err != nil {
		return fmt.Errorf("invalid scenario.linker: %w", err)
	}
	if c.Autosave.Delay < 0 {
		return fmt.Errorf("invalid autosave.delay %v", c.Autosave.Delay)
	}
	return nil
}

// Linker returns the configured linker.
func (c Config) Linker() wealthflow.Linker {
	l, err := wealthflow.ParseLinker(c.Scenario.Linker)
	if err != nil {
		return wealthflow.NameLinker{}
	}
	return l
}
