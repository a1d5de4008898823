package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	RedisAddr    string
	RedisPass    string
	Port         string
	IsProduction bool

	// External data sources
	RateServiceURL  string // fixer.io-style latest-rates endpoint
	CurrencyMetaURL string // reference CSV of code,name,symbol rows
	FetchTimeout    time.Duration

	// Rate limiting of the public API (ulule formatted, e.g. "60-M")
	APIRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("RATE_SERVICE_URL", "https://api.fixer.io/latest")
	viper.SetDefault("CURRENCY_META_URL", "https://developers.google.com/adwords/api/docs/appendix/currencycodes.csv")
	viper.SetDefault("FETCH_TIMEOUT", "10s")
	viper.SetDefault("API_RATE_LIMIT", "60-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.RedisPass = viper.GetString("REDIS_PASSWORD")
	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.RateServiceURL = viper.GetString("RATE_SERVICE_URL")
	cfg.CurrencyMetaURL = viper.GetString("CURRENCY_META_URL")
	cfg.APIRateLimit = viper.GetString("API_RATE_LIMIT")

	timeoutStr := viper.GetString("FETCH_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		timeout = 10 * time.Second
		log.Printf("Warning: Invalid value for FETCH_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
	}
	cfg.FetchTimeout = timeout

	return cfg, nil
}
