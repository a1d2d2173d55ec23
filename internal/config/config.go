// Package config loads application preferences from a config file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/piwi3910/wallcalc/internal/model"
)

// Config file lookup.
const (
	FileName  = "wallcalc"
	EnvPrefix = "WALLCALC"
)

// DefaultConfigDir returns the per-user config directory, ~/.wallcalc/.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".wallcalc")
}

// DefaultConfigPath returns the default path for the config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), FileName+".yaml")
}

// newViper returns a viper instance with defaults and environment binding.
func newViper() *viper.Viper {
	v := viper.New()
	d := model.DefaultAppConfig()
	v.SetDefault("catalog_path", d.CatalogPath)
	v.SetDefault("display_overage_percent", d.DisplayOveragePercent)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// Load reads the config file at path, or when path is empty searches the
// working directory and DefaultConfigDir for wallcalc.yaml. A missing file
// is not an error when searching; defaults and WALLCALC_* environment
// variables still apply.
func Load(path string) (model.AppConfig, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(DefaultConfigDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return model.AppConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg model.AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return model.AppConfig{}, fmt.Errorf("decode config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return model.AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks a config for values the application cannot use.
func Validate(cfg model.AppConfig) error {
	if cfg.DisplayOveragePercent < 0 {
		return fmt.Errorf("display_overage_percent must not be negative, got %v", cfg.DisplayOveragePercent)
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", cfg.LogLevel, err)
	}
	return nil
}

// Save writes cfg to path. The format follows the file extension.
// Missing parent directories are created.
func Save(path string, cfg model.AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	v := viper.New()
	v.Set("catalog_path", cfg.CatalogPath)
	v.Set("display_overage_percent", cfg.DisplayOveragePercent)
	v.Set("log_level", cfg.LogLevel)
	v.Set("output_dir", cfg.OutputDir)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
