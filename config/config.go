package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds everything the server reads from the environment. Fault
// toggles themselves are runtime state, not configuration; only their
// tuning knobs live here.
type Config struct {
	Port string

	DBDriver    string // "postgres" or "sqlite"
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPath      string // sqlite only

	LogDir    string
	RedisAddr string // empty means in-memory carts

	SlowResponseDelay time.Duration
	RandomErrorRate   float64
}

// Load reads configuration from environment variables with defaults that
// match a local development setup.
func Load() Config {
	return Config{
		Port:              GetEnv("PORT", "8080"),
		DBDriver:          GetEnv("DB_DRIVER", "postgres"),
		DatabaseURL:       GetEnv("DATABASE_URL", ""),
		DBHost:            GetEnv("DB_HOST", "localhost"),
		DBPort:            GetEnv("DB_PORT", "5432"),
		DBUser:            GetEnv("DB_USER", "postgres"),
		DBPassword:        GetEnv("DB_PASSWORD", ""),
		DBName:            GetEnv("DB_NAME", "ecommerce"),
		DBPath:            GetEnv("DB_PATH", "ecommerce.db"),
		LogDir:            GetEnv("LOG_DIR", "logs"),
		RedisAddr:         GetEnv("REDIS_ADDR", ""),
		SlowResponseDelay: getDuration("SLOW_RESPONSE_DELAY", 5*time.Second),
		RandomErrorRate:   getFloat("RANDOM_ERROR_RATE", 0.3),
	}
}

// GetEnv returns the value of the environment variable or the fallback.
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}
