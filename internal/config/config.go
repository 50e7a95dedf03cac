package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const defaultSQLiteDSN = "file:shareit.db?_foreign_keys=on"

// Config holds all application configuration loaded from environment.
type Config struct {
	AppEnv       string
	IsProduction bool
	ProdOrigins  []string
	HTTPAddr     string

	DBDriver string
	DBDSN    string

	Log LogConfig

	RateLimit RateLimitConfig
	Redis     RedisConfig

	ShutdownTimeout time.Duration
}

// LogConfig controls the zerolog logger.
type LogConfig struct {
	Level  string
	Format string // json or console
	Output string // stdout or stderr
}

// RateLimitConfig bounds requests per acting user. Requests <= 0 disables limiting.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// RedisConfig is only used when Addr is set.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	var err error

	// Application environment (default: dev)
	cfg.AppEnv = getEnv("APP_ENV", "dev")
	cfg.IsProduction = cfg.AppEnv == PROD_STRING
	cfg.ProdOrigins = splitList(getEnv("PROD_ORIGINS", ""))

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	cfg.DBDriver = strings.ToLower(getEnv("DB_DRIVER", DriverSQLite))
	switch cfg.DBDriver {
	case DriverSQLite:
		cfg.DBDSN = getEnv("DB_DSN", defaultSQLiteDSN)
	case DriverPostgres:
		// Postgres has no sensible local default
		cfg.DBDSN = os.Getenv("DB_DSN")
		if cfg.DBDSN == "" {
			return nil, fmt.Errorf("DB_DSN is required for driver %q", DriverPostgres)
		}
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	cfg.Log = LogConfig{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "json"),
		Output: getEnv("LOG_OUTPUT", "stdout"),
	}

	cfg.RateLimit.Requests, err = getEnvAsInt("RATE_LIMIT_REQUESTS", 20)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_REQUESTS: %w", err)
	}
	cfg.RateLimit.Window, err = getEnvAsDuration("RATE_LIMIT_WINDOW", time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW: %w", err)
	}

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB, err = getEnvAsInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg.ShutdownTimeout, err = getEnvAsDuration("SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

// getEnvAsDuration parses values like "500ms" or "1m".
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid duration: %w", key, valStr, err)
	}

	return val, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
