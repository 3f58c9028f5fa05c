// Package config loads server configuration from the environment.
package config

import (
	"errors"
	"os"
	"time"

	"github.com/finledger/finledger/internal/ledger"
)

// Config carries everything cmd/server needs to wire the process.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// DBPath is the SQLite database file path.
	DBPath string

	// JWTSecret signs session tokens. Required; there is no safe default.
	JWTSecret string

	// JWTDuration is how long session tokens stay valid.
	JWTDuration time.Duration

	// LockWait bounds how long an operation waits for an account's
	// exclusion scope.
	LockWait time.Duration
}

// Load reads configuration from environment variables, applying defaults
// for everything except JWT_SECRET.
//
//	ADDR          listen address           (default :8080)
//	DB_PATH       sqlite file              (default ./data/finledger.db)
//	JWT_SECRET    token signing key        (required)
//	JWT_DURATION  token lifetime           (default 24h)
//	LOCK_WAIT     exclusion scope timeout  (default 5s)
func Load() (Config, error) {
	cfg := Config{
		Addr:        getEnv("ADDR", ":8080"),
		DBPath:      getEnv("DB_PATH", "./data/finledger.db"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		JWTDuration: 24 * time.Hour,
		LockWait:    ledger.DefaultLockWait,
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	if v := os.Getenv("JWT_DURATION"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, errors.New("JWT_DURATION must be a duration like 24h")
		}
		cfg.JWTDuration = d
	}

	if v := os.Getenv("LOCK_WAIT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, errors.New("LOCK_WAIT must be a duration like 5s")
		}
		cfg.LockWait = d
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
