package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DatabaseConfig PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

// GetDSN builds the lib/pq connection string.
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// RedisConfig redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RestStoreConfig settings for the REST (PostgREST-style) store backend.
type RestStoreConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Config beast-console service configuration.
type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	Rest     RestStoreConfig

	HTTP struct {
		Addr string
	}

	Console struct {
		// StoreBackend selects the record store implementation.
		// Options: "postgres" (default) or "rest".
		StoreBackend string

		// ViewCacheTTL is how long a composed client view stays in redis.
		ViewCacheTTL time.Duration
	}

	Log struct {
		Level  string
		Format string
	}
}

// Load reads configuration from environment variables with defaults.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnvInt("DB_PORT", 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "beast")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = getEnvInt("DB_MAX_CONNS", 10)
	cfg.Database.MaxIdle = getEnvInt("DB_MAX_IDLE", 5)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvInt("REDIS_DB", 0)

	cfg.Rest.BaseURL = getEnv("REST_STORE_URL", "")
	cfg.Rest.APIKey = getEnv("REST_STORE_API_KEY", "")
	cfg.Rest.Timeout = time.Duration(getEnvInt("REST_STORE_TIMEOUT_SECONDS", 30)) * time.Second

	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8086")

	cfg.Console.StoreBackend = getEnv("STORE_BACKEND", "postgres")
	if cfg.Console.StoreBackend != "postgres" && cfg.Console.StoreBackend != "rest" {
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.Console.StoreBackend)
	}
	if cfg.Console.StoreBackend == "rest" && cfg.Rest.BaseURL == "" {
		return nil, fmt.Errorf("REST_STORE_URL is required when STORE_BACKEND=rest")
	}
	cfg.Console.ViewCacheTTL = time.Duration(getEnvInt("VIEW_CACHE_TTL_SECONDS", 10)) * time.Second

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	}
	return defaultValue
}
