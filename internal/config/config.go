package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Market data
	PriceCacheTTL   time.Duration
	PriceSyncSpec   string // cron spec for the sync worker
	ProviderTimeout time.Duration
	BenchmarkSymbol string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "finfolio"),
		DBPassword: getEnv("DB_PASSWORD", "finfolio"),
		DBName:     getEnv("DB_NAME", "finfolio"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		// Market data
		PriceSyncSpec:   getEnv("PRICE_SYNC_SPEC", "@every 30m"),
		BenchmarkSymbol: getEnv("BENCHMARK_SYMBOL", "SPY"),
	}

	config.JWTExpirationDur = getDurationEnv("JWT_EXPIRES_IN", 24*time.Hour)
	config.PriceCacheTTL = getDurationEnv("PRICE_CACHE_TTL", time.Minute)
	config.ProviderTimeout = getDurationEnv("PROVIDER_TIMEOUT", 10*time.Second)

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv parses a duration environment variable, falling back to the
// default on absence or parse failure.
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return d
}
