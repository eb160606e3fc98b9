/*
Package config loads server configuration from the environment.

PURPOSE:
  Central place for every runtime knob. Values come from the process
  environment, with an optional .env file loaded first for local
  development. Command-line flags in cmd/server override these.

VARIABLES:
  PORT       HTTP server port             (default 8080)
  STORE      Persistence backend          (sqlite | json, default sqlite)
  DB_PATH    SQLite database path         (default budget.db, ":memory:" ok)
  DATA_DIR   JSON snapshot directory      (default ./data)
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StoreSQLite = "sqlite"
	StoreJSON   = "json"
)

type Config struct {
	Port    int    `env:"PORT" envDefault:"8080"`
	Store   string `env:"STORE" envDefault:"sqlite"`
	DBPath  string `env:"DB_PATH" envDefault:"budget.db"`
	DataDir string `env:"DATA_DIR" envDefault:"./data"`
}

// Load reads .env (if present) and then the process environment.
func Load() (Config, error) {
	// A missing .env is not an error; the environment still applies.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.Store != StoreSQLite && cfg.Store != StoreJSON {
		return Config{}, fmt.Errorf("unknown STORE %q (want %q or %q)", cfg.Store, StoreSQLite, StoreJSON)
	}
	return cfg, nil
}
