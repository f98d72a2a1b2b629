package config

import (
	"mapban/internal/repository"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Repo     repository.Config `envPrefix:"REPO_"`
	Port     string            `env:"PORT" envDefault:"8080"`
	BaseURL  string            `env:"BASE_URL" envDefault:"http://localhost:8080"`
	LogLevel string            `env:"LOGGER_LEVEL" envDefault:"debug"`
}

func ReadEnvConfig(cfg *Config) error {
	return env.Parse(cfg)
}
