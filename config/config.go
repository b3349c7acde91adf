package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Feed     FeedConfig
	Catalog  CatalogConfig
	Cache    CacheConfig
	Matching MatchingConfig
	Log      LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// FeedConfig holds dining feed configuration
type FeedConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	RateLimit      float64       `mapstructure:"rate_limit"` // requests per second
	Burst          int           `mapstructure:"burst"`
	NutrientMode   string        `mapstructure:"nutrient_mode"`
	RoundingMethod string        `mapstructure:"rounding_method"`
}

// CatalogConfig holds catalog snapshot configuration
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	DetailTTL time.Duration `mapstructure:"detail_ttl"`
}

// MatchingConfig is reserved for search tuning
type MatchingConfig struct {
	EnableDebugLogging bool `mapstructure:"enable_debug_logging"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/dinetrack/")

	// Environment variable settings
	v.SetEnvPrefix("DINETRACK")
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{})

	// Feed defaults
	v.SetDefault("feed.base_url", "https://diningfeed.dartmouth.edu/hsws/")
	v.SetDefault("feed.timeout", "30s")
	v.SetDefault("feed.rate_limit", 2.0)
	v.SetDefault("feed.burst", 5)
	v.SetDefault("feed.nutrient_mode", "all")
	v.SetDefault("feed.rounding_method", "raw")

	// Catalog defaults
	v.SetDefault("catalog.path", "food_options.xml")

	// Cache defaults
	v.SetDefault("cache.detail_ttl", "6h")

	// Matching defaults
	v.SetDefault("matching.enable_debug_logging", false)

	// Log defaults
	v.SetDefault("log.level", "info")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Feed.BaseURL == "" {
		return fmt.Errorf("feed base URL is required (set DINETRACK_FEED_BASE_URL)")
	}

	if config.Catalog.Path == "" {
		return fmt.Errorf("catalog path is required (set DINETRACK_CATALOG_PATH)")
	}

	if config.Feed.RateLimit <= 0 {
		return fmt.Errorf("feed rate limit must be positive, got: %v", config.Feed.RateLimit)
	}

	return nil
}
