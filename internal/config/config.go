package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config — настройки приложения из окружения
type Config struct {
	PostgresConn  string
	ServerAddress string
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	// .env опционален, в контейнере переменные приходят из окружения
	_ = godotenv.Load()

	cfg := &Config{
		PostgresConn:  os.Getenv("POSTGRES_CONN"),
		ServerAddress: os.Getenv("SERVER_ADDRESS"),
	}
	if cfg.PostgresConn == "" {
		return nil, fmt.Errorf("POSTGRES_CONN env variable is not set")
	}
	if cfg.ServerAddress == "" {
		cfg.ServerAddress = "0.0.0.0:8080"
	}
	return cfg, nil
}
