package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Environment string
	LogLevel    string

	StorageDriver string
	DBDSN         string
	AutoMigrate   bool

	HTTPAddr        string
	HTTPRateLimit   int
	CORSOrigins     []string
	ShutdownTimeout time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	TelegramToken string

	SlotCleanupInterval time.Duration

	// EnvFileLoaded true, если найден .env
	EnvFileLoaded bool
}

// Load читает конфигурацию из окружения, предварительно подгружая .env (если он есть)
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile то же, что Load, но с явным путём к env файлу
func LoadFile(path string) (*Config, error) {
	envLoaded := godotenv.Load(path) == nil

	cfg := &Config{
		Environment:   getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", DriverPostgres)),
		DBDSN:         os.Getenv("DB_DSN"),
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),
		CORSOrigins:   splitList(getEnv("HTTP_CORS_ORIGINS", "*")),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		EnvFileLoaded: envLoaded,
	}

	var err error
	if cfg.AutoMigrate, err = getBool("AUTO_MIGRATE", true); err != nil {
		return nil, err
	}
	if cfg.HTTPRateLimit, err = getInt("HTTP_RATE_LIMIT", 100); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getDuration("AVAILABILITY_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.SlotCleanupInterval, err = getDuration("SLOT_CLEANUP_INTERVAL", 0); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case DriverPostgres:
		if c.DBDSN == "" {
			return fmt.Errorf("DB_DSN is required but not set")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.HTTPRateLimit < 0 {
		return fmt.Errorf("HTTP_RATE_LIMIT must not be negative")
	}
	if c.SlotCleanupInterval < 0 {
		return fmt.Errorf("SLOT_CLEANUP_INTERVAL must not be negative")
	}
	return nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

// CacheEnabled кэш пересечений включается заданием REDIS_ADDR
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func getBool(key string, fallback bool) (bool, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
