/*
Package config loads server configuration from the environment.

PURPOSE:
  One place for runtime configuration. Every knob has a default so the
  server starts with no environment at all; deployments override via
  PLANNITECH_* variables.
*/
package config

import (
	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"8080"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Database struct {
		// Path is the SQLite database file, or ":memory:" for ephemeral runs.
		Path string `env:"PATH" envDefault:"plannitech.db"`
	} `envPrefix:"DATABASE_"`
	Labor struct {
		// RulesFile optionally points to a JSON rule-set definition. Empty
		// means the built-in French rules.
		RulesFile string `env:"RULES_FILE"`
	} `envPrefix:"LABOR_"`
}

// Load reads configuration from PLANNITECH_-prefixed environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "PLANNITECH_"}); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
