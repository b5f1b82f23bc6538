package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the process reads from the environment.
type Config struct {
	Env              string `envconfig:"ENV" default:"development"`
	Port             string `envconfig:"PORT" default:"8080"`
	DatabaseURL      string `envconfig:"DB_URL" required:"true"`
	RedisURL         string `envconfig:"REDIS_URL" required:"true"`
	MigrationsPath   string `envconfig:"MIGRATIONS_PATH" default:"migrations"`
	AsynqConcurrency int    `envconfig:"ASYNQ_CONCURRENCY" default:"10"`
}

// Load reads the Config from environment variables. Callers are expected to
// have loaded any .env file beforehand (see cmd/api).
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
