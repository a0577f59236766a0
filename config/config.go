// Package config loads engine defaults (side, profile, search depth,
// Monte Carlo simulation count) from a YAML file, environment
// variables, or built-in defaults, using viper's layered precedence.
// Grounded on the teacher's config package shape (a struct populated by
// a Load function), adapted from namsral/flag-style flag loading to
// viper, the richer configuration library also present in the pack.
package config

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds the engine defaults consumed by cmd/dame and by tests
// that want non-default depths/profiles/simulation counts.
type Config struct {
	EngineColor         string `mapstructure:"color" yaml:"color"`
	EngineProfile       string `mapstructure:"profile" yaml:"profile"`
	EngineDepth         int    `mapstructure:"depth" yaml:"depth"`
	MonteCarloSims      int    `mapstructure:"simulations" yaml:"simulations"`
	LogLevel            string `mapstructure:"log_level" yaml:"log_level"`
}

// Default returns the built-in defaults, matching the scenarios in
// spec.md §8: Expert profile, depth suitable for S1-style single-step
// openings, 300 Monte Carlo simulations per S6.
func Default() *Config {
	return &Config{
		EngineColor:    "white",
		EngineProfile:  "Expert",
		EngineDepth:    6,
		MonteCarloSims: 300,
		LogLevel:       "info",
	}
}

// Load reads configuration from path (if non-empty and present), then
// from DAME_-prefixed environment variables, falling back to Default
// for anything unset.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DAME")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	def := Default()
	v.SetDefault("color", def.EngineColor)
	v.SetDefault("profile", def.EngineProfile)
	v.SetDefault("depth", def.EngineDepth)
	v.SetDefault("simulations", def.MonteCarloSims)
	v.SetDefault("log_level", def.LogLevel)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			log.Debug().Err(err).Str("path", path).Msg("no usable config file, using defaults/env")
		}
	}

	cfg := &Config{
		EngineColor:    v.GetString("color"),
		EngineProfile:  v.GetString("profile"),
		EngineDepth:    v.GetInt("depth"),
		MonteCarloSims: v.GetInt("simulations"),
		LogLevel:       v.GetString("log_level"),
	}
	return cfg, nil
}

// Dump renders the resolved configuration as YAML, for startup
// diagnostics and for writing out a template file a user can edit.
func (c *Config) Dump() (string, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
