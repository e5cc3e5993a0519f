package usecase

import (
	"context"
	"log"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cartlist/backend/internal/domain"
	"github.com/cartlist/backend/internal/units"
)

const (
	defaultSearchLimit  = 10
	maxSearchLimit      = 50
	defaultSearchTTL    = 1 * time.Hour
	defaultItemQuantity = 1.0
)

// ChecklistServiceConfig holds configuration for the checklist service
type ChecklistServiceConfig struct {
	SearchCacheTTL     time.Duration
	DefaultSearchLimit int
	EnableDebugLogging bool
}

// ChecklistService keeps the local checklist view and the remote cart in
// sync. It holds the most recent cart snapshot, replaced wholesale on each
// refresh, and maps between cart items and their editable checklist form.
type ChecklistService struct {
	store          domain.StoreClient
	cache          domain.CacheRepository
	snapshot       atomic.Pointer[[]domain.CartItem]
	searchCacheTTL time.Duration
	searchLimit    int
	debug          bool
}

// NewChecklistService creates a new checklist service with dependencies
func NewChecklistService(
	store domain.StoreClient,
	cache domain.CacheRepository,
	config ChecklistServiceConfig,
) *ChecklistService {
	ttl := config.SearchCacheTTL
	if ttl == 0 {
		ttl = defaultSearchTTL
	}
	searchLimit := config.DefaultSearchLimit
	if searchLimit <= 0 {
		searchLimit = defaultSearchLimit
	}
	if searchLimit > maxSearchLimit {
		searchLimit = maxSearchLimit
	}

	return &ChecklistService{
		store:          store,
		cache:          cache,
		searchCacheTTL: ttl,
		searchLimit:    searchLimit,
		debug:          config.EnableDebugLogging,
	}
}

// Refresh fetches the current cart and replaces the snapshot as a whole.
// Readers observe either the previous complete snapshot or this one.
func (s *ChecklistService) Refresh(ctx context.Context) error {
	items, err := s.store.GetCart(ctx)
	if err != nil {
		return err
	}
	s.snapshot.Store(&items)
	return nil
}

// Items returns the checklist view of the latest cart snapshot, fetching the
// cart first when no snapshot has been taken yet.
func (s *ChecklistService) Items(ctx context.Context) ([]domain.ChecklistItem, error) {
	if s.snapshot.Load() == nil {
		if err := s.Refresh(ctx); err != nil {
			return nil, err
		}
	}

	cartItems := *s.snapshot.Load()
	checklist := make([]domain.ChecklistItem, 0, len(cartItems))
	for i := range cartItems {
		checklist = append(checklist, s.ToChecklistItem(&cartItems[i]))
	}
	return checklist, nil
}

// ToChecklistItem maps a cart item to its checklist representation. A nil
// item yields an empty needs-action placeholder, used when a just-written
// item cannot be located in the confirming response.
func (s *ChecklistService) ToChecklistItem(item *domain.CartItem) domain.ChecklistItem {
	if item == nil {
		return domain.ChecklistItem{Status: domain.StatusNeedsAction}
	}

	return domain.ChecklistItem{
		UID:         item.ItemID,
		Summary:     item.Name,
		Description: FormatDescription(item.Quantity, item.Unit),
		Extra: map[string]string{
			domain.TagProductID:       item.ProductID,
			domain.TagQuantity:        strconv.FormatFloat(item.Quantity, 'f', -1, 64),
			domain.TagUnit:            item.Unit,
			domain.TagMeasurementType: item.MeasurementType,
		},
		Status: domain.StatusNeedsAction,
	}
}

// CreateItem resolves a checklist item to a product and adds it to the remote
// cart. Structured tags seed the quantity/unit/product fields and a free-text
// description re-parse overrides them; an item resolving to no product fails.
func (s *ChecklistService) CreateItem(ctx context.Context, item domain.ChecklistItem) (domain.ChecklistItem, error) {
	productID, quantity, update := s.mergeFields(item)
	if quantity == nil {
		q := defaultItemQuantity
		quantity = &q
	}

	if productID == "" {
		resolved, err := s.resolveProductID(ctx, item.Summary)
		if err != nil {
			return domain.ChecklistItem{}, err
		}
		productID = resolved
	}

	created, err := s.store.AddToCart(ctx, productID, *quantity, update)
	if err != nil {
		return domain.ChecklistItem{}, err
	}

	if err := s.Refresh(ctx); err != nil && s.debug {
		log.Printf("[CHECKLIST] Refresh after create failed: %v", err)
	}
	return s.ToChecklistItem(created), nil
}

// UpdateItem applies a checklist edit to the backing cart line. A completed
// status means removal from the cart. Absent fields are left unchanged on the
// remote side; when the updated line cannot be found afterwards the caller's
// input is returned unchanged.
func (s *ChecklistService) UpdateItem(ctx context.Context, item domain.ChecklistItem) (domain.ChecklistItem, error) {
	if item.UID == "" {
		return domain.ChecklistItem{}, domain.ErrInvalidRequest
	}

	if item.Status == domain.StatusCompleted {
		if err := s.store.RemoveFromCart(ctx, item.UID); err != nil {
			return domain.ChecklistItem{}, err
		}
		if err := s.Refresh(ctx); err != nil && s.debug {
			log.Printf("[CHECKLIST] Refresh after completion failed: %v", err)
		}
		return item, nil
	}

	_, quantity, update := s.mergeFields(item)
	update.Quantity = quantity

	if _, err := s.store.UpdateCartItem(ctx, item.UID, update); err != nil {
		return domain.ChecklistItem{}, err
	}

	if err := s.Refresh(ctx); err != nil && s.debug {
		log.Printf("[CHECKLIST] Refresh after update failed: %v", err)
	}

	if snapshot := s.snapshot.Load(); snapshot != nil {
		for i := range *snapshot {
			if (*snapshot)[i].ItemID == item.UID {
				return s.ToChecklistItem(&(*snapshot)[i]), nil
			}
		}
	}
	return item, nil
}

// DeleteItem removes the backing cart line of a checklist item.
func (s *ChecklistService) DeleteItem(ctx context.Context, uid string) error {
	if uid == "" {
		return domain.ErrInvalidRequest
	}
	if err := s.store.RemoveFromCart(ctx, uid); err != nil {
		return err
	}
	if err := s.Refresh(ctx); err != nil && s.debug {
		log.Printf("[CHECKLIST] Refresh after delete failed: %v", err)
	}
	return nil
}

// SearchProducts runs a catalog search on behalf of the host.
func (s *ChecklistService) SearchProducts(ctx context.Context, query string, limit int) ([]domain.ProductSummary, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrInvalidRequest
	}
	if limit <= 0 {
		limit = s.searchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	return s.store.SearchProducts(ctx, query, limit)
}

// mergeFields derives the product id, quantity and unit fields from a
// checklist item: structured tags first, then every non-null field parsed
// from the description overrides the tag-derived value. Free-text edits take
// precedence over stale structured tags.
func (s *ChecklistService) mergeFields(item domain.ChecklistItem) (string, *float64, domain.CartUpdate) {
	var productID string
	var quantity *float64
	var update domain.CartUpdate

	if item.Extra != nil {
		productID = strings.TrimSpace(item.Extra[domain.TagProductID])
		if unit := item.Extra[domain.TagUnit]; unit != "" {
			update.Unit = units.ResolveAlias(unit)
		}
		update.MeasurementType = item.Extra[domain.TagMeasurementType]
		if qty, ok := parseQuantity(item.Extra[domain.TagQuantity]); ok {
			quantity = &qty
		}
		if weight, ok := parseQuantity(item.Extra[domain.TagWeight]); ok {
			update.Weight = &weight
		}
	}

	if item.Description != "" {
		parsed := ParseText(item.Description)
		if parsed.Quantity != nil {
			quantity = parsed.Quantity
		}
		if parsed.Unit != "" {
			update.Unit = parsed.Unit
		}
		if parsed.MeasurementType != "" {
			update.MeasurementType = parsed.MeasurementType
		}
		if parsed.ProductID != "" {
			productID = parsed.ProductID
		}
	}

	return productID, quantity, update
}

// resolveProductID maps a summary text to a product id: a purely numeric
// summary is taken as a literal id, anything else goes through a search with
// limit 1, cached per normalized summary.
func (s *ChecklistService) resolveProductID(ctx context.Context, summary string) (string, error) {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", domain.ErrNoProductResolved
	}
	if isDigits(summary) {
		return summary, nil
	}

	cacheKey := "product:" + strings.ToLower(summary)
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		if id, ok := cached.(string); ok && id != "" {
			return id, nil
		}
	}

	results, err := s.store.SearchProducts(ctx, summary, 1)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		log.Printf("[CHECKLIST] No products found for %q", summary)
		return "", domain.ErrNoProductResolved
	}

	if err := s.cache.Set(ctx, cacheKey, results[0].ProductID, s.searchCacheTTL); err != nil && s.debug {
		log.Printf("[CHECKLIST] Failed to cache product id for %q: %v", summary, err)
	}
	return results[0].ProductID, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
