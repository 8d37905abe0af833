package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port string
	Env  string // "development", "production"

	// Database
	DatabaseURL string

	// Redis (modality mapping cache)
	RedisAddr    string
	RedisEnabled bool

	// Auth
	JWTSecret string

	// CORS
	AllowedOrigins []string

	// Offer lifecycle
	ExpirySchedule string        // Cron expression for the offer-expiry job
	ExpiryEnabled  bool          //
	OfferTTL       time.Duration // Age after which pending offers expire
	ExpiryTimeout  time.Duration // Timeout for one expiry cycle

	// CPF validation
	// Accept the sandbox fixture identifiers (checksum bypass). Must stay
	// off in production.
	CPFAllowSandbox bool
}

func Load() *Config {
	return &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/credmatch?sslmode=disable"),

		// Redis
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		RedisEnabled: getBoolEnv("REDIS_ENABLED", true),

		// Auth
		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-in-production"),

		// CORS
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),

		// Offer lifecycle
		ExpirySchedule: getEnv("OFFER_EXPIRY_SCHEDULE", "*/15 * * * *"), // Default: every 15 minutes
		ExpiryEnabled:  getBoolEnv("OFFER_EXPIRY_ENABLED", true),
		OfferTTL:       getDurationEnv("OFFER_TTL", 48*time.Hour),
		ExpiryTimeout:  getDurationEnv("OFFER_EXPIRY_TIMEOUT", time.Minute),

		// CPF validation
		CPFAllowSandbox: getBoolEnv("CPF_ALLOW_SANDBOX", false),
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
