package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config contains application-wide settings sourced from the environment.
type Config struct {
	Database  DatabaseConfig
	Redis     RedisConfig
	ShortLink ShortLinkConfig
	Logging   LoggingConfig
}

// DatabaseConfig holds the Postgres connection string and the startup
// ping budget: each ping gets PingTimeout, and pings retry with backoff
// until ConnectWait runs out.
type DatabaseConfig struct {
	URL         string
	PingTimeout time.Duration
	ConnectWait time.Duration
}

// RedisConfig holds the optional Redis connection used by the short
// link issuance cache. An empty Addr disables caching.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// ShortLinkConfig controls token minting.
type ShortLinkConfig struct {
	Alphabet    string
	Length      int
	MaxAttempts int
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// Load reads configuration from the environment, with config/local.env
// filling in local development defaults.
func Load() (Config, error) {
	_ = godotenv.Load("config/local.env")

	cfg := Config{
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		ShortLink: ShortLinkConfig{
			Alphabet: envOrDefault("SHORTLINK_ALPHABET", ""),
		},
		Logging: LoggingConfig{
			Level:  envOrDefault("LOG_LEVEL", "info"),
			Format: envOrDefault("LOG_FORMAT", "json"),
		},
	}

	if cfg.Database.URL == "" {
		return Config{}, errors.New("DATABASE_URL env var is required")
	}

	var err error
	if cfg.Database.PingTimeout, err = envDuration("DB_PING_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.Database.ConnectWait, err = envDuration("DB_CONNECT_WAIT", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.Redis.DB, err = envInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.ShortLink.Length, err = envInt("SHORTLINK_LENGTH", 0); err != nil {
		return Config{}, err
	}
	if cfg.ShortLink.MaxAttempts, err = envInt("SHORTLINK_MAX_ATTEMPTS", 0); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	var problems []string

	if c.Database.PingTimeout <= 0 {
		problems = append(problems, "DB_PING_TIMEOUT must be positive")
	}
	if c.Database.ConnectWait <= 0 {
		problems = append(problems, "DB_CONNECT_WAIT must be positive")
	}
	if c.ShortLink.Length < 0 {
		problems = append(problems, "SHORTLINK_LENGTH must not be negative")
	}
	if c.ShortLink.MaxAttempts < 0 {
		problems = append(problems, "SHORTLINK_MAX_ATTEMPTS must not be negative")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, "LOG_LEVEL must be one of: debug, info, warn, error")
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		problems = append(problems, "LOG_FORMAT must be one of: json, text")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func envInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}
