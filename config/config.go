// Package config loads service settings from defaults, an optional YAML file,
// and TRUTHONLY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"truthonly/factcheck"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. TRUTHONLY_WEBHOOK_URL.
const EnvPrefix = "TRUTHONLY"

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Webhook   WebhookConfig   `mapstructure:"webhook"`
	History   HistoryConfig   `mapstructure:"history"`
	Log       LogConfig       `mapstructure:"log"`
	Provision ProvisionConfig `mapstructure:"provision"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr" validate:"required"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type WebhookConfig struct {
	URL     string        `mapstructure:"url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type HistoryConfig struct {
	Backend     string   `mapstructure:"backend" validate:"oneof=sqlite redis"`
	RedisURL    string   `mapstructure:"redis_url" validate:"required_if=Backend redis"`
	Prefix      string   `mapstructure:"prefix" validate:"required"`
	Suggestions []string `mapstructure:"suggestions"`
}

type LogConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format     string `mapstructure:"format" validate:"oneof=console json"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
}

type ProvisionConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	Dir     string `mapstructure:"dir"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":3000")
	v.SetDefault("database.path", "truthonly.db")
	v.SetDefault("webhook.url", factcheck.DefaultWebhookURL)
	v.SetDefault("webhook.timeout", factcheck.DefaultTimeout)
	v.SetDefault("history.backend", "sqlite")
	v.SetDefault("history.redis_url", "")
	v.SetDefault("history.prefix", "truthonly-")
	v.SetDefault("history.suggestions", []string{})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("provision.base_url", "http://localhost:5678")
	v.SetDefault("provision.dir", ".")
}

// New returns a viper instance with defaults and environment binding in place.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads cfgFile, or config.yaml from the working directory when cfgFile
// is empty, and returns the validated configuration. A missing default file is not an error.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the struct tags on cfg.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
