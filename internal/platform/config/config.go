package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// ERP feed source; empty means the embedded sample feed is served.
	ErpFeedPath string
	// SyncUserID is the synthetic user attributed to system sync writes.
	SyncUserID string

	// External AI analysis service
	AIServiceURL   string
	AIServiceToken string

	// Analytics
	PosthogAPIKey   string `mapstructure:"POSTHOG_API_KEY"`
	PosthogEndpoint string `mapstructure:"POSTHOG_ENDPOINT"`

	// Rate limiting for the sync endpoints (limiter format, e.g. "10-M")
	SyncRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("ERP_FEED_PATH", "")
	viper.SetDefault("SYNC_USER_ID", "user-cnk")
	viper.SetDefault("AI_SERVICE_URL", "")
	viper.SetDefault("AI_SERVICE_TOKEN", "")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
	viper.SetDefault("SYNC_RATE_LIMIT", "30-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.ErpFeedPath = viper.GetString("ERP_FEED_PATH")
	cfg.SyncUserID = viper.GetString("SYNC_USER_ID")

	cfg.AIServiceURL = viper.GetString("AI_SERVICE_URL")
	cfg.AIServiceToken = viper.GetString("AI_SERVICE_TOKEN")
	if cfg.AIServiceURL == "" {
		log.Println("Warning: AI_SERVICE_URL not set. AI analysis endpoints will report failure.")
	}

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")

	cfg.SyncRateLimit = viper.GetString("SYNC_RATE_LIMIT")

	return cfg, nil
}
