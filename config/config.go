// Package config loads application configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DBConfig holds database connection settings.
type DBConfig struct {
	Url string `envconfig:"URL"`
}

// JwtConfig holds token signing settings.
type JwtConfig struct {
	Secret string        `envconfig:"SECRET_KEY" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

// LedgerConfig holds processing settings for the ledger core.
type LedgerConfig struct {
	// LockWait bounds how long one processing attempt blocks on a
	// contended account before failing the request.
	LockWait time.Duration `envconfig:"LOCK_WAIT" default:"500ms"`
}

// AppConfig is the root configuration for the service.
type AppConfig struct {
	Env    string       `envconfig:"APP_ENV" default:"development"`
	Host   string       `envconfig:"APP_HOST" default:"localhost"`
	Port   int          `envconfig:"APP_PORT" default:"3000"`
	DB     DBConfig     `envconfig:"DATABASE"`
	Jwt    JwtConfig    `envconfig:"JWT"`
	Ledger LedgerConfig `envconfig:"LEDGER"`
}

// Load reads configuration from envFile (ignored when absent) and the
// process environment.
func Load(envFile string, logger *slog.Logger) (*AppConfig, error) {
	if err := godotenv.Load(envFile); err != nil {
		logger.Warn("no env file loaded, using process environment", "file", envFile)
	}
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
