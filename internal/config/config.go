// Package config reads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/apoorvasinha183/AisleFindYou/internal/repository"
	"github.com/joho/godotenv"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	HTTPPort        string
	CatalogSource   string
	DatabaseURL     string
	DB              repository.Credentials
	DBPath          string
	MongoURI        string
	MongoDBName     string
	RedisAddr       string
	RedisPassword   string
	KafkaBrokers    []string
	CatalogTopic    string
	AllowedOrigins  []string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	SeedStoreCount  int
}

// Load reads .env (outside production) and then the environment.
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}
	return fromEnv()
}

func fromEnv() (*Config, error) {
	cfg := &Config{
		HTTPPort:      getEnv("HTTP_PORT", "8000"),
		CatalogSource: strings.ToLower(getEnv("CATALOG_SOURCE", repository.SourceStatic)),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		DB: repository.Credentials{
			Host:              getEnv("DB_HOST", "localhost"),
			User:              getEnv("DB_USER", "postgres"),
			Password:          getEnv("DB_PASSWORD", "postgres"),
			DBName:            getEnv("DB_NAME", "aislefindyou"),
			MigrationsDirPath: getEnv("MIGRATIONS_PATH", "./internal/repository/migrations"),
		},
		DBPath:         getEnv("DB_PATH", "./aislefindyou.db"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:    getEnv("MONGO_DB_NAME", "aislefindyou"),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:   splitList(getEnv("KAFKA_BROKERS", "")),
		CatalogTopic:   getEnv("CATALOG_TOPIC", "catalog-events"),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	if !slices.Contains(repository.Sources, cfg.CatalogSource) {
		return nil, fmt.Errorf("%w: CATALOG_SOURCE %q, want one of %s",
			ErrInvalidConfig, cfg.CatalogSource, strings.Join(repository.Sources, ", "))
	}

	var err error
	if cfg.DB.Port, err = getEnvInt("DB_PORT", 5432); err != nil {
		return nil, err
	}
	if cfg.SeedStoreCount, err = getEnvInt("SEED_STORE_COUNT", 5); err != nil {
		return nil, err
	}
	if cfg.SeedStoreCount <= 0 {
		return nil, fmt.Errorf("%w: SEED_STORE_COUNT must be positive", ErrInvalidConfig)
	}
	if cfg.RequestTimeout, err = getEnvDuration("REQUEST_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Persistent reports whether the catalog lives outside the process.
func (c *Config) Persistent() bool {
	return c.CatalogSource != repository.SourceStatic
}

func (c *Config) OpenConfig() repository.OpenConfig {
	return repository.OpenConfig{
		Source:      c.CatalogSource,
		DatabaseURL: c.DatabaseURL,
		Credentials: c.DB,
		DBPath:      c.DBPath,
		MongoURI:    c.MongoURI,
		MongoDBName: c.MongoDBName,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, key, raw)
	}
	return v, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: %s=%q is not a positive duration", ErrInvalidConfig, key, raw)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
