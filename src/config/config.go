package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application.
// The values are loaded from environment variables.
type AppConfig struct {
	// Core settings
	Port     string
	LogLevel string

	// Data file paths
	HoldingsPath string

	// Market data settings
	CacheTTL            time.Duration
	BatchSize           int
	PriceTimeout        time.Duration
	FundamentalsTimeout time.Duration
	QuoteAPIBaseURL     string
	FinancePageBaseURL  string

	// Frontend origins allowed by CORS
	AllowedOrigins []string
}

// Cfg is a global instance of the AppConfig.
var Cfg *AppConfig

// LoadConfig loads configuration from environment variables or a .env file.
// It centralizes all configuration logic for the application.
func LoadConfig() {
	// Try the current directory first, then the parent (common when running
	// from /backend).
	errEnv := godotenv.Load()
	if errEnv != nil {
		errEnv = godotenv.Load("../.env")
	}

	if errEnv != nil {
		if os.IsNotExist(errEnv) {
			log.Println("Info: No .env file found. Relying on OS environment variables (expected in production).")
		} else {
			log.Printf("Warning: Error loading .env file: %v. Relying on OS environment variables.", errEnv)
		}
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	Cfg = &AppConfig{
		// Core
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		// Data
		HoldingsPath: getEnv("HOLDINGS_PATH", "data/holdings.json"),

		// Market data
		CacheTTL:            getEnvAsDuration("CACHE_TTL", 15*time.Minute),
		BatchSize:           getEnvAsInt("BATCH_SIZE", 10),
		PriceTimeout:        getEnvAsDuration("PRICE_TIMEOUT", 10*time.Second),
		FundamentalsTimeout: getEnvAsDuration("FUNDAMENTALS_TIMEOUT", 5*time.Second),
		QuoteAPIBaseURL:     getEnv("QUOTE_API_BASE_URL", "https://query1.finance.yahoo.com"),
		FinancePageBaseURL:  getEnv("FINANCE_PAGE_BASE_URL", "https://www.google.com/finance/quote"),

		// CORS
		AllowedOrigins: getAllowedOrigins("ALLOWED_ORIGINS"),
	}

	if Cfg.BatchSize <= 0 {
		log.Printf("WARNING: BATCH_SIZE must be positive, using default 10")
		Cfg.BatchSize = 10
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, HoldingsPath=%s, CacheTTL=%s, BatchSize=%d",
		Cfg.Port, Cfg.LogLevel, Cfg.HoldingsPath, Cfg.CacheTTL, Cfg.BatchSize)
}

// getEnv retrieves an environment variable or returns a fallback value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}

// getEnvAsInt retrieves an environment variable as an integer or returns a fallback.
func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}

// getEnvAsDuration retrieves an environment variable as a time.Duration or returns a fallback.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}

// getAllowedOrigins retrieves and parses the comma-separated list of CORS origins.
func getAllowedOrigins(key string) []string {
	originsStr := getEnv(key, "http://localhost:3000")
	if originsStr == "" {
		return []string{}
	}
	origins := strings.Split(originsStr, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}
	return origins
}
