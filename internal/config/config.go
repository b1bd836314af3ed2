package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Database drivers
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Config holds the service configuration read from the environment
type Config struct {
	Port      string `validate:"required,numeric"`
	AppURL    string `validate:"required,url"`
	LogLevel  string `validate:"oneof=trace debug info warn error"`
	LogFormat string `validate:"oneof=json console"`

	DatabaseDriver string `validate:"oneof=postgres mongo"`
	DatabaseURL    string `validate:"required_if=DatabaseDriver postgres"`
	MongoURI       string `validate:"required_if=DatabaseDriver mongo"`
	MongoDatabase  string `validate:"required_if=DatabaseDriver mongo"`
	RedisURL       string `validate:"required"`

	ShopifyAPIKey          string   `validate:"required"`
	ShopifyAPISecret       string   `validate:"required"`
	ShopifyAPIVersion      string   `validate:"required"`
	ShopifyScopes          []string `validate:"min=1,dive,required"`
	ShopifyClientCacheSize int      `validate:"min=1"`

	ProductsPageSize   int `validate:"min=1,max=250"`
	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
}

// Load reads .env when present, then the process environment
func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("⚠️  Warning: .env file not found")
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds and validates a Config from a variable lookup function
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	env := func(key, fallback string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		return fallback
	}

	pageSize, err := strconv.Atoi(env("PRODUCTS_PAGE_SIZE", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid PRODUCTS_PAGE_SIZE: %w", err)
	}
	cacheSize, err := strconv.Atoi(env("SHOPIFY_CLIENT_CACHE_SIZE", "256"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHOPIFY_CLIENT_CACHE_SIZE: %w", err)
	}
	shutdownTimeout, err := time.ParseDuration(env("SHUTDOWN_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Port:                   env("PORT", "8080"),
		AppURL:                 strings.TrimRight(env("APP_URL", "http://localhost:8080"), "/"),
		LogLevel:               strings.ToLower(env("LOG_LEVEL", "info")),
		LogFormat:              strings.ToLower(env("LOG_FORMAT", "json")),
		DatabaseDriver:         strings.ToLower(env("DATABASE_DRIVER", DriverPostgres)),
		DatabaseURL:            env("DATABASE_URL", ""),
		MongoURI:               env("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:          env("MONGODB_DATABASE", "merchant_admin"),
		RedisURL:               env("REDIS_URL", "redis://localhost:6379/0"),
		ShopifyAPIKey:          env("SHOPIFY_API_KEY", ""),
		ShopifyAPISecret:       env("SHOPIFY_API_SECRET", ""),
		ShopifyAPIVersion:      env("SHOPIFY_API_VERSION", "2025-01"),
		ShopifyScopes:          splitList(env("SHOPIFY_SCOPES", "read_products,write_products")),
		ShopifyClientCacheSize: cacheSize,
		ProductsPageSize:       pageSize,
		CORSAllowedOrigins:     splitList(env("CORS_ALLOWED_ORIGINS", "https://admin.shopify.com")),
		ShutdownTimeout:        shutdownTimeout,
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// OAuthRedirectURL is where Shopify sends the merchant after granting access
func (c *Config) OAuthRedirectURL() string {
	return c.AppURL + "/auth/callback"
}

// NewLogger builds the root logger for the configured level and format
func NewLogger(cfg *Config, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	if cfg.LogFormat == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
