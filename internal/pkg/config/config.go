package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	ServerAddr      string        `env:"SERVER_ADDR" envDefault:":8080"`
	MetricsAddr     string        `env:"METRICS_ADDR" envDefault:":9091"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// StorageBackend selects the event/user repositories: memory | postgres.
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"memory"`
	PostgresURL    string `env:"POSTGRES_URL"`

	// SessionBackend selects the session repository: memory | redis.
	SessionBackend string        `env:"SESSION_BACKEND" envDefault:"memory"`
	RedisAddr      string        `env:"REDIS_ADDR"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"8h"`
	SecureCookies  bool          `env:"SECURE_COOKIES" envDefault:"false"`

	// Demo dataset bootstrap.
	SeedValue uint32 `env:"SEED_VALUE" envDefault:"123456"`
	SeedCount int    `env:"SEED_COUNT" envDefault:"40"`

	// Login throttling, requests per minute per client IP.
	LoginRatePerMinute float64 `env:"LOGIN_RATE_PER_MINUTE" envDefault:"10"`
	LoginBurst         int     `env:"LOGIN_BURST" envDefault:"5"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
