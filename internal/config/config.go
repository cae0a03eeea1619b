// Package config loads MiniSoft's optional .minisoft.yaml project
// file via Viper, the way dphaener-conduit's cli/config package loads
// conduit.yml: defaults first, then an override file if present.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the compiler's project-level settings.
type Config struct {
	Diagnostics DiagnosticsConfig `mapstructure:"diagnostics"`
	IR          IRConfig          `mapstructure:"ir"`
}

// DiagnosticsConfig controls how diagnostics render.
type DiagnosticsConfig struct {
	Color               bool `mapstructure:"color"`
	MaxIdentifierLength int  `mapstructure:"max_identifier_length"`
}

// IRConfig controls where the quadruple stream is written.
type IRConfig struct {
	Destination string `mapstructure:"destination"`
}

// Load reads .minisoft.yaml from the current directory, falling back
// to defaults when it doesn't exist.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom behaves like Load, except that a non-empty path names the
// config file to read directly (the --config flag), bypassing the
// usual .minisoft.yaml search in the working directory.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("diagnostics.color", true)
	v.SetDefault("diagnostics.max_identifier_length", 14)
	v.SetDefault("ir.destination", "stdout")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".minisoft")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
