// Package config loads service settings from configs/config.yml, CADR_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Port     string `mapstructure:"port" validate:"required"`
	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn error"`

	DB struct {
		Path string `mapstructure:"path" validate:"required"`
	} `mapstructure:"db"`

	Auth struct {
		SigningKey string        `mapstructure:"signing_key" validate:"required,min=8"`
		TokenTTL   time.Duration `mapstructure:"token_ttl" validate:"gt=0"`
	} `mapstructure:"auth"`

	Analysis struct {
		Profile    string  `mapstructure:"profile" validate:"required"`
		Background float64 `mapstructure:"background" validate:"gte=0"`
	} `mapstructure:"analysis"`

	Chamber struct {
		Tick       time.Duration `mapstructure:"tick" validate:"gt=0"`
		SampleStep time.Duration `mapstructure:"sample_step" validate:"gt=0"`
		MaxSamples int           `mapstructure:"max_samples" validate:"gt=0"`
	} `mapstructure:"chamber"`

	Cache struct {
		Backend string        `mapstructure:"backend" validate:"oneof=none memory redis"`
		TTL     time.Duration `mapstructure:"ttl" validate:"gte=0"`
		Redis   struct {
			Addr     string `mapstructure:"addr"`
			Password string `mapstructure:"password"`
			DB       int    `mapstructure:"db" validate:"gte=0"`
		} `mapstructure:"redis"`
	} `mapstructure:"cache"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("db.path", "cadr.db")
	v.SetDefault("auth.signing_key", "change-me-please")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("analysis.profile", "pms5003")
	v.SetDefault("analysis.background", 0.0)
	v.SetDefault("chamber.tick", time.Second)
	v.SetDefault("chamber.sample_step", 10*time.Second)
	v.SetDefault("chamber.max_samples", 2000)
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.ttl", 10*time.Minute)
	v.SetDefault("cache.redis.addr", "localhost:6379")
	v.SetDefault("cache.redis.db", 0)
}

// Load reads configuration into a Config. file may name an explicit config
// file; otherwise configs/config.yml is used when present.
func Load(v *viper.Viper, file string) (*Config, error) {
	setDefaults(v)
	v.SetEnvPrefix("CADR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath("configs")
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}
