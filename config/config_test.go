package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("CARTLIST_SERVER_PORT")
		os.Unsetenv("CARTLIST_SERVER_ENVIRONMENT")
		os.Unsetenv("CARTLIST_STORE_BASE_URL")
		os.Unsetenv("CARTLIST_STORE_STORE_ID")
		os.Unsetenv("CARTLIST_STORE_USERNAME")
		os.Unsetenv("CARTLIST_STORE_PASSWORD")
		os.Unsetenv("CARTLIST_STORE_SEARCH_PAGE_SIZE")
		os.Unsetenv("CARTLIST_CACHE_TTL")
		os.Unsetenv("CARTLIST_REFRESH_ENABLED")
		os.Unsetenv("CARTLIST_REFRESH_INTERVAL")
	}

	t.Run("loads with defaults when only credentials set", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("CARTLIST_STORE_USERNAME", "user@example.com")
		os.Setenv("CARTLIST_STORE_PASSWORD", "secret")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		// Check defaults
		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Store.BaseURL != "https://www.chedraui.com.mx" {
			t.Errorf("Store.BaseURL = %s, want default store URL", cfg.Store.BaseURL)
		}
		if cfg.Store.StoreID != "10151" {
			t.Errorf("Store.StoreID = %s, want 10151", cfg.Store.StoreID)
		}
		if cfg.Store.SearchPageSize != 10 {
			t.Errorf("Store.SearchPageSize = %d, want 10", cfg.Store.SearchPageSize)
		}
		if cfg.Cache.TTL != 1*time.Hour {
			t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
		}
		if !cfg.Refresh.Enabled {
			t.Error("Refresh.Enabled = false, want true by default")
		}
		if cfg.Refresh.Interval != 10*time.Minute {
			t.Errorf("Refresh.Interval = %v, want 10m", cfg.Refresh.Interval)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("CARTLIST_SERVER_PORT", "9090")
		os.Setenv("CARTLIST_SERVER_ENVIRONMENT", "production")
		os.Setenv("CARTLIST_STORE_BASE_URL", "https://store.example.com")
		os.Setenv("CARTLIST_STORE_STORE_ID", "20202")
		os.Setenv("CARTLIST_STORE_USERNAME", "user@example.com")
		os.Setenv("CARTLIST_STORE_PASSWORD", "secret")
		os.Setenv("CARTLIST_CACHE_TTL", "24h")
		os.Setenv("CARTLIST_REFRESH_INTERVAL", "5m")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Store.BaseURL != "https://store.example.com" {
			t.Errorf("Store.BaseURL = %s, want custom URL", cfg.Store.BaseURL)
		}
		if cfg.Store.StoreID != "20202" {
			t.Errorf("Store.StoreID = %s, want 20202", cfg.Store.StoreID)
		}
		if cfg.Cache.TTL != 24*time.Hour {
			t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
		}
		if cfg.Refresh.Interval != 5*time.Minute {
			t.Errorf("Refresh.Interval = %v, want 5m", cfg.Refresh.Interval)
		}
	})

	t.Run("fails validation when username is missing", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("CARTLIST_STORE_PASSWORD", "secret")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for missing username")
		}
	})

	t.Run("fails validation when password is missing", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("CARTLIST_STORE_USERNAME", "user@example.com")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for missing password")
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Store: StoreConfig{
				BaseURL:        "https://store.example.com",
				StoreID:        "10151",
				Username:       "user@example.com",
				Password:       "secret",
				SearchPageSize: 10,
			},
			Refresh: RefreshConfig{
				Enabled:  true,
				Interval: 10 * time.Minute,
			},
		}
	}

	t.Run("validates successfully with all required fields", func(t *testing.T) {
		if err := validate(valid()); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("fails when base URL is empty", func(t *testing.T) {
		cfg := valid()
		cfg.Store.BaseURL = ""
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for empty base URL")
		}
	})

	t.Run("fails when store id is empty", func(t *testing.T) {
		cfg := valid()
		cfg.Store.StoreID = ""
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for empty store id")
		}
	})

	t.Run("fails for out-of-range search page size", func(t *testing.T) {
		cfg := valid()
		cfg.Store.SearchPageSize = 100
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for page size above 50")
		}
	})

	t.Run("fails when refresh enabled without interval", func(t *testing.T) {
		cfg := valid()
		cfg.Refresh.Interval = 0
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for zero refresh interval")
		}
	})

	t.Run("allows zero interval when refresh disabled", func(t *testing.T) {
		cfg := valid()
		cfg.Refresh.Enabled = false
		cfg.Refresh.Interval = 0
		if err := validate(cfg); err != nil {
			t.Errorf("validate() error = %v, want nil when refresh disabled", err)
		}
	})
}
