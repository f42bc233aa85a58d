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
	Port         string
	IsProduction bool

	// Vision service
	AnthropicAPIKey  string
	AnthropicBaseURL string
	AnthropicModel   string
	VisionTimeout    time.Duration

	// Blob storage
	SupabaseURL     string
	SupabaseAnonKey string
	StorageBucket   string

	// Rate limit applied to the extraction endpoint, in ulule/limiter
	// formatted notation (e.g. "10-M" = 10 requests per minute).
	ExtractRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ANTHROPIC_API_KEY", "")
	viper.SetDefault("ANTHROPIC_BASE_URL", "https://api.anthropic.com")
	viper.SetDefault("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929")
	viper.SetDefault("VISION_TIMEOUT", "30s")
	viper.SetDefault("SUPABASE_URL", "")
	viper.SetDefault("SUPABASE_ANON_KEY", "")
	viper.SetDefault("STORAGE_BUCKET", "fuel-receipts")
	viper.SetDefault("EXTRACT_RATE_LIMIT", "10-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.AnthropicAPIKey = viper.GetString("ANTHROPIC_API_KEY")
	if cfg.AnthropicAPIKey == "" {
		log.Println("Warning: ANTHROPIC_API_KEY not set. Receipt extraction will not function.")
	}
	cfg.AnthropicBaseURL = viper.GetString("ANTHROPIC_BASE_URL")
	cfg.AnthropicModel = viper.GetString("ANTHROPIC_MODEL")

	visionTimeoutStr := viper.GetString("VISION_TIMEOUT")
	visionTimeout, err := time.ParseDuration(visionTimeoutStr)
	if err != nil {
		visionTimeout = 30 * time.Second
		if visionTimeoutStr != "" {
			log.Printf("Warning: Invalid value for VISION_TIMEOUT ('%s'). Defaulting to %s.\n", visionTimeoutStr, visionTimeout)
		}
	}
	cfg.VisionTimeout = visionTimeout

	cfg.SupabaseURL = viper.GetString("SUPABASE_URL")
	cfg.SupabaseAnonKey = viper.GetString("SUPABASE_ANON_KEY")
	if cfg.SupabaseURL == "" || cfg.SupabaseAnonKey == "" {
		log.Println("Warning: SUPABASE_URL or SUPABASE_ANON_KEY not set. Receipt image upload will not function.")
	}
	cfg.StorageBucket = viper.GetString("STORAGE_BUCKET")
	cfg.ExtractRateLimit = viper.GetString("EXTRACT_RATE_LIMIT")

	return cfg, nil
}
