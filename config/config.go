package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL  string
	JWTSecretKey string
	ServerPort   int
	// RedisURL опционален: без него таблица сезона не кэшируется.
	RedisURL string
	// WagerWorkers ограничивает фан-аут расчёта ставок.
	WagerWorkers int
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load() // .env может отсутствовать, это не ошибка

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080" // Порт по умолчанию
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	workers := 0
	if workersStr := os.Getenv("WAGER_WORKERS"); workersStr != "" {
		workers, err = strconv.Atoi(workersStr)
		if err != nil || workers < 0 {
			return nil, fmt.Errorf("invalid WAGER_WORKERS environment variable: %q", workersStr)
		}
	}

	cfg := &Config{
		DatabaseURL:  dbURL,
		JWTSecretKey: jwtKey,
		ServerPort:   port,
		RedisURL:     os.Getenv("REDIS_URL"),
		WagerWorkers: workers,
	}

	return cfg, nil
}
