package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	Cache   CacheConfig
	Refresh RefreshConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StoreConfig holds remote store API configuration
type StoreConfig struct {
	BaseURL           string  `mapstructure:"base_url"`
	StoreID           string  `mapstructure:"store_id"`
	Username          string  `mapstructure:"username"`
	Password          string  `mapstructure:"password"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	SearchPageSize    int     `mapstructure:"search_page_size"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RefreshConfig holds cart refresh configuration
type RefreshConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/cartlist/")

	// Environment variable settings
	v.SetEnvPrefix("CARTLIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
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
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Store defaults
	v.SetDefault("store.base_url", "https://www.chedraui.com.mx")
	v.SetDefault("store.store_id", "10151")
	// Empty defaults register the keys so env binding reaches them
	v.SetDefault("store.username", "")
	v.SetDefault("store.password", "")
	v.SetDefault("store.requests_per_second", 2.0)
	v.SetDefault("store.search_page_size", 10)

	// Cache defaults
	v.SetDefault("cache.ttl", "1h")

	// Refresh defaults
	v.SetDefault("refresh.enabled", true)
	v.SetDefault("refresh.interval", "10m")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Store.Username == "" {
		return fmt.Errorf("store username is required (set CARTLIST_STORE_USERNAME)")
	}
	if config.Store.Password == "" {
		return fmt.Errorf("store password is required (set CARTLIST_STORE_PASSWORD)")
	}
	if config.Store.BaseURL == "" {
		return fmt.Errorf("store base URL is required")
	}
	if config.Store.StoreID == "" {
		return fmt.Errorf("store id is required")
	}
	if config.Store.SearchPageSize < 1 || config.Store.SearchPageSize > 50 {
		return fmt.Errorf("search page size must be between 1 and 50, got: %d", config.Store.SearchPageSize)
	}
	if config.Refresh.Enabled && config.Refresh.Interval <= 0 {
		return fmt.Errorf("refresh interval must be positive when refresh is enabled")
	}

	return nil
}
