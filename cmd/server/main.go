package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/cartlist/backend/config"
	httpDelivery "github.com/cartlist/backend/internal/delivery/http"
	"github.com/cartlist/backend/internal/infrastructure/cache"
	"github.com/cartlist/backend/internal/infrastructure/store"
	"github.com/cartlist/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Cartlist Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Store: %s (store id %s)", cfg.Store.BaseURL, cfg.Store.StoreID)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	storeClient := store.NewClient(
		cfg.Store.BaseURL,
		cfg.Store.StoreID,
		cfg.Store.Username,
		cfg.Store.Password,
		cfg.Store.RequestsPerSecond,
	)

	// Enable debug mode in development environment
	development := cfg.Server.Environment == "development"
	if development {
		storeClient.SetDebug(true)
		log.Printf("Store client debug mode enabled")
	}

	// Initialize usecase layer
	checklistService := usecase.NewChecklistService(
		storeClient,
		memoryCache,
		usecase.ChecklistServiceConfig{
			SearchCacheTTL:     cfg.Cache.TTL,
			DefaultSearchLimit: cfg.Store.SearchPageSize,
			EnableDebugLogging: development,
		},
	)

	ctx := context.Background()
	if err := storeClient.Login(ctx); err != nil {
		log.Fatalf("Initial store login failed: %v", err)
	}
	if err := checklistService.Refresh(ctx); err != nil {
		log.Printf("WARNING: initial cart refresh failed: %v", err)
	}

	// Keep the snapshot tracking remote cart changes
	if cfg.Refresh.Enabled {
		refresher := usecase.NewRefresher(checklistService, cfg.Refresh.Interval)
		go refresher.Run(ctx)
		log.Printf("Cart refresh every %s", cfg.Refresh.Interval)
	}

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(checklistService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
