// ════════════════════════════════════════════════════════════
// Path: config/env.go
// Application configuration read from the environment
// ════════════════════════════════════════════════════════════

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Cart storage backends
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// Catalog sources
const (
	CatalogStatic   = "static"
	CatalogPostgres = "postgres"
)

type Config struct {
	AppEnv         string
	Port           string
	LogLevel       string
	AllowedOrigins []string

	CartStorage    string
	CatalogSource  string
	RedisURL       string
	DatabaseURL    string
	CartStorageKey string
	CartSessionTTL time.Duration
	CartIdleTTL    time.Duration

	CartMaxQuantity       int
	PriceCeiling          decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	StandardShipping      decimal.Decimal
	ExpressShipping       decimal.Decimal
	CatalogCacheTTL       time.Duration

	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// Load reads the configuration. Call godotenv.Load first to pick up a .env file.
func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8081"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001")),
		CartStorage:    strings.ToLower(getEnv("CART_STORAGE", StorageMemory)),
		CatalogSource:  strings.ToLower(getEnv("CATALOG_SOURCE", CatalogStatic)),
		RedisURL:       getEnv("REDIS_URL", ""),
		DatabaseURL:    databaseURL(),
		CartStorageKey: getEnv("CART_STORAGE_KEY", "bangin-gear-cart"),
	}

	var err error
	if cfg.CartSessionTTL, err = getEnvDuration("CART_SESSION_TTL", 30*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.CartIdleTTL, err = getEnvDuration("CART_IDLE_TTL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.CatalogCacheTTL, err = getEnvDuration("CATALOG_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.RateLimitWindow, err = getEnvDuration("RATE_LIMIT_WINDOW", time.Minute); err != nil {
		return nil, err
	}
	if cfg.CartMaxQuantity, err = getEnvInt("CART_MAX_QUANTITY", 10); err != nil {
		return nil, err
	}
	if cfg.RateLimitRequests, err = getEnvInt("RATE_LIMIT_REQUESTS", 100); err != nil {
		return nil, err
	}
	if cfg.PriceCeiling, err = getEnvDecimal("CATALOG_PRICE_CEILING", "500"); err != nil {
		return nil, err
	}
	if cfg.FreeShippingThreshold, err = getEnvDecimal("FREE_SHIPPING_THRESHOLD", "75"); err != nil {
		return nil, err
	}
	if cfg.StandardShipping, err = getEnvDecimal("STANDARD_SHIPPING_PRICE", "9.99"); err != nil {
		return nil, err
	}
	if cfg.ExpressShipping, err = getEnvDecimal("EXPRESS_SHIPPING_PRICE", "9.99"); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.CartStorage {
	case StorageMemory, StorageRedis, StoragePostgres:
	default:
		return errors.Errorf("CART_STORAGE must be memory, redis or postgres, got %q", c.CartStorage)
	}
	switch c.CatalogSource {
	case CatalogStatic, CatalogPostgres:
	default:
		return errors.Errorf("CATALOG_SOURCE must be static or postgres, got %q", c.CatalogSource)
	}
	if c.CartMaxQuantity < 1 {
		return errors.Errorf("CART_MAX_QUANTITY must be at least 1, got %d", c.CartMaxQuantity)
	}
	if !c.PriceCeiling.IsPositive() {
		return errors.New("CATALOG_PRICE_CEILING must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// NeedsPostgres reports whether any component reads the database.
func (c *Config) NeedsPostgres() bool {
	return c.CartStorage == StoragePostgres || c.CatalogSource == CatalogPostgres
}

// NeedsRedis reports whether any component uses Redis.
func (c *Config) NeedsRedis() bool {
	return c.CartStorage == StorageRedis || c.RedisURL != ""
}

func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", ""),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "bangin_gear"),
	)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", key)
	}
	return v, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", key)
	}
	return v, nil
}

func getEnvDecimal(key, defaultValue string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(getEnv(key, defaultValue))
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "invalid %s", key)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
