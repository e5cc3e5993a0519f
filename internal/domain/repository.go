package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// StoreClient defines the interface for interacting with the remote store API
type StoreClient interface {
	Login(ctx context.Context) error
	GetCart(ctx context.Context) ([]CartItem, error)
	AddToCart(ctx context.Context, productID string, quantity float64, update CartUpdate) (*CartItem, error)
	UpdateCartItem(ctx context.Context, itemID string, update CartUpdate) ([]CartItem, error)
	RemoveFromCart(ctx context.Context, itemID string) error
	SearchProducts(ctx context.Context, query string, limit int) ([]ProductSummary, error)
}
