package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	Port            string
	Env             string
	MongoURI        string
	MongoDatabase   string
	RedisURL        string
	CartCacheTTL    time.Duration
	StripeSecretKey string
	Currency        string
	InvoiceBucket   string
	PageSize        int
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		MongoURI:        getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnv("MONGODB_DATABASE", "shop"),
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379"),
		CartCacheTTL:    time.Hour * 24 * 7,
		StripeSecretKey: os.Getenv("STRIPE_API_KEY"),
		Currency:        getEnv("CURRENCY", "usd"),
		InvoiceBucket:   os.Getenv("AWS_BUCKET_NAME"),
		PageSize:        4,
	}

	if cfg.StripeSecretKey == "" || cfg.InvoiceBucket == "" {
		return nil, fmt.Errorf("missing required environment variables")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
