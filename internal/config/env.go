package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds the environment overrides.
type Env struct {
	Home     string `env:"CALM_HOME"`
	LogLevel string `env:"CALM_LOG_LEVEL"`
	NoNotify bool   `env:"CALM_NO_NOTIFY"`
}

// ParseEnv loads the overrides from environment variables.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// Apply writes the set overrides into cfg.
func (e Env) Apply(cfg *Config) {
	if e.LogLevel != "" {
		cfg.Log.Level = e.LogLevel
	}
	if e.NoNotify {
		cfg.Notifications.Enabled = false
	}
}
