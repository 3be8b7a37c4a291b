package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

const (
	StoreDriverJSON   = "json"
	StoreDriverSQLite = "sqlite"

	EnvDevelopment = "development"
)

type Config struct {
	ServerPort       string        `env:"SERVER_PORT"        envDefault:"3001"`
	Environment      string        `env:"APP_ENV"            envDefault:"development"`
	LogLevel         string        `env:"LOG_LEVEL"          envDefault:"info"`
	LogFile          string        `env:"LOG_FILE"`
	StoreDriver      string        `env:"STORE_DRIVER"       envDefault:"json"`
	DataPath         string        `env:"DATA_PATH"          envDefault:"data/leaderboard.json"`
	DBPath           string        `env:"DB_PATH"            envDefault:"data/leaderboard.db"`
	AllowedOrigin    string        `env:"ALLOWED_ORIGIN"     envDefault:"http://localhost:3000"`
	SubmitRateLimit  int           `env:"SUBMIT_RATE_LIMIT"  envDefault:"5"`
	SubmitRateWindow time.Duration `env:"SUBMIT_RATE_WINDOW" envDefault:"1m"`
	MetricsEnabled   bool          `env:"METRICS_ENABLED"    envDefault:"true"`
}

func Load() (*Config, error) {
	// a missing .env is fine, the environment and defaults still apply
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreDriverJSON, StoreDriverSQLite:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}
	if c.SubmitRateLimit < 1 {
		return fmt.Errorf("SUBMIT_RATE_LIMIT must be positive, got %d", c.SubmitRateLimit)
	}
	if c.SubmitRateWindow <= 0 {
		return fmt.Errorf("SUBMIT_RATE_WINDOW must be positive, got %s", c.SubmitRateWindow)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

func (c *Config) Log(logger zerolog.Logger) {
	logger.Info().
		Str("server_port", c.ServerPort).
		Str("environment", c.Environment).
		Str("log_level", c.LogLevel).
		Str("store_driver", c.StoreDriver).
		Str("data_path", c.DataPath).
		Str("db_path", c.DBPath).
		Int("submit_rate_limit", c.SubmitRateLimit).
		Dur("submit_rate_window", c.SubmitRateWindow).
		Bool("metrics_enabled", c.MetricsEnabled).
		Msg("configuration loaded")
}

var Module = fx.Provide(Load)
