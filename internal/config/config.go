package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// HGT_SCAN_WORKERS.
const EnvPrefix = "HGT"

// Config holds the settings of the hgt command.
type Config struct {
	Log struct {
		Level string `mapstructure:"level"`
		Dir   string `mapstructure:"dir"`
	} `mapstructure:"log"`
	Scan struct {
		Workers  int  `mapstructure:"workers"`
		Progress bool `mapstructure:"progress"`
	} `mapstructure:"scan"`
	Parse struct {
		Strict bool `mapstructure:"strict"`
	} `mapstructure:"parse"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.dir", "")
	v.SetDefault("scan.workers", 4)
	v.SetDefault("scan.progress", true)
	v.SetDefault("parse.strict", false)
}

// Load reads configuration from the optional file at path, then from
// the environment, applying defaults where unset.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that viper cannot type-check.
func (c *Config) Validate() error {
	if c.Scan.Workers < 1 {
		return errors.New("scan.workers must be at least 1")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}
