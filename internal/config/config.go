// Package config reads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the host configuration.
type Config struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	PhrasesFile string `env:"PHRASES_FILE"`
	WheelFile   string `env:"WHEEL_FILE"`

	StoreDriver string `env:"STORE_DRIVER" envDefault:"sqlite"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"./data/ruota.db"`
	PostgresDSN string `env:"PG_DSN"`

	RedisAddr   string `env:"REDIS_ADDR"`
	RedisStream string `env:"REDIS_STREAM" envDefault:"ruota:history"`

	PenaltyDelay time.Duration `env:"PENALTY_DELAY" envDefault:"1500ms"`
	TurnTimeout  time.Duration `env:"TURN_TIMEOUT" envDefault:"0s"`

	Seed uint64 `env:"SEED" envDefault:"0"`
}

// Load reads envFile (a missing file is ignored, "" skips it) and then the
// process environment.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values env.Parse cannot.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return errors.New("STORE_DRIVER=postgres requires PG_DSN")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.PenaltyDelay < 0 || c.TurnTimeout < 0 {
		return errors.New("durations must not be negative")
	}
	return nil
}
