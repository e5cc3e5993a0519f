// Package store implements the session client and payload normalizer for the
// remote shopping-cart service.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cartlist/backend/internal/domain"
	"github.com/cartlist/backend/internal/units"
	"golang.org/x/time/rate"
)

// WCS-style resource path templates, relative to the store base URL.
const (
	loginPathTemplate    = "/wcs/resources/store/%s/loginidentity"
	cartPathTemplate     = "/wcs/resources/store/%s/cart"
	cartSelfPathTemplate = "/wcs/resources/store/%s/cart/@self"
	cartItemPathTemplate = "/wcs/resources/store/%s/cart/@self/%s"
	searchPathTemplate   = "/wcs/resources/store/%s/productview/bySearchTerm/%s"
)

const requestTimeout = 30 * time.Second

var defaultHeaders = map[string]string{
	"Accept":          "application/json",
	"Content-Type":    "application/json",
	"User-Agent":      "cartlist-backend/1.0 (+https://github.com/cartlist/backend)",
	"Accept-Language": "es-MX,es;q=0.9,en;q=0.8",
}

// Client handles authenticated communication with the store API. Session
// cookies returned by any call are accumulated and sent on all subsequent
// calls.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	storeID     string
	username    string
	password    string
	rateLimiter *rate.Limiter
	debug       bool

	mu            sync.Mutex
	cookies       map[string]string
	authenticated bool
}

// NewClient creates a new store API client.
func NewClient(baseURL, storeID, username, password string, requestsPerSecond float64) *Client {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 2
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL:     strings.TrimRight(baseURL, "/"),
		storeID:     storeID,
		username:    username,
		password:    password,
		rateLimiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 5),
		cookies:     make(map[string]string),
	}
}

// SetDebug enables or disables debug logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// Login authenticates against the store platform.
func (c *Client) Login(ctx context.Context) error {
	payload := map[string]string{
		"logonId":       c.username,
		"logonPassword": c.password,
	}

	data, err := c.do(ctx, http.MethodPost, fmt.Sprintf(loginPathTemplate, c.storeID), nil, payload, false)
	if err != nil {
		return err
	}
	if data == nil {
		return fmt.Errorf("%w: unexpected empty authentication response", domain.ErrAuthenticationFailed)
	}

	c.mu.Lock()
	c.authenticated = true
	c.mu.Unlock()
	return nil
}

func (c *Client) ensureAuthenticated(ctx context.Context) error {
	c.mu.Lock()
	authenticated := c.authenticated
	c.mu.Unlock()

	if authenticated {
		return nil
	}
	return c.Login(ctx)
}

// GetCart retrieves the current cart contents.
func (c *Client) GetCart(ctx context.Context) ([]domain.CartItem, error) {
	if err := c.ensureAuthenticated(ctx); err != nil {
		return nil, err
	}

	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf(cartSelfPathTemplate, c.storeID), nil, nil, true)
	if err != nil {
		return nil, err
	}
	return normalizeCartItems(data), nil
}

// AddToCart adds a product line item to the cart and returns the created
// item as confirmed by the store.
func (c *Client) AddToCart(ctx context.Context, productID string, quantity float64, update domain.CartUpdate) (*domain.CartItem, error) {
	if err := c.ensureAuthenticated(ctx); err != nil {
		return nil, err
	}

	orderItem := map[string]any{
		"productId": productID,
		"quantity":  quantity,
	}
	if unit := units.Normalize(update.Unit, update.MeasurementType); unit != "" {
		orderItem["uom"] = unit
	}
	if update.Weight != nil {
		orderItem["weight"] = *update.Weight
	}
	payload := map[string]any{"orderItem": []any{orderItem}}

	data, err := c.do(ctx, http.MethodPost, fmt.Sprintf(cartPathTemplate, c.storeID), nil, payload, true)
	if err != nil {
		return nil, err
	}

	items := normalizeCartItems(data)
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: item missing from add-to-cart response", domain.ErrStoreAPIFailure)
	}
	return &items[len(items)-1], nil
}

// UpdateCartItem applies a partial update to a cart line item. Fields not set
// on the update are left unchanged on the remote side. An empty update is a
// no-op that returns the current cart.
func (c *Client) UpdateCartItem(ctx context.Context, itemID string, update domain.CartUpdate) ([]domain.CartItem, error) {
	if err := c.ensureAuthenticated(ctx); err != nil {
		return nil, err
	}

	if update.IsEmpty() {
		if c.debug {
			log.Printf("[STORE] No update data provided for item %s", itemID)
		}
		return c.GetCart(ctx)
	}

	orderItem := map[string]any{
		"orderItemId": itemID,
	}
	if update.Quantity != nil {
		orderItem["quantity"] = *update.Quantity
	}
	if unit := units.Normalize(update.Unit, update.MeasurementType); unit != "" {
		orderItem["uom"] = unit
	}
	if update.Weight != nil {
		orderItem["weight"] = *update.Weight
	}
	payload := map[string]any{"orderItem": []any{orderItem}}

	data, err := c.do(ctx, http.MethodPut, fmt.Sprintf(cartPathTemplate, c.storeID), nil, payload, true)
	if err != nil {
		return nil, err
	}
	return normalizeCartItems(data), nil
}

// RemoveFromCart deletes a line item from the cart.
func (c *Client) RemoveFromCart(ctx context.Context, itemID string) error {
	if err := c.ensureAuthenticated(ctx); err != nil {
		return err
	}

	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf(cartItemPathTemplate, c.storeID, itemID), nil, nil, true)
	return err
}

// SearchProducts runs a keyword search against the store catalog.
func (c *Client) SearchProducts(ctx context.Context, query string, limit int) ([]domain.ProductSummary, error) {
	if err := c.ensureAuthenticated(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("pageSize", strconv.Itoa(limit))
	params.Set("pageNumber", "1")
	params.Set("responseFormat", "json")
	params.Set("searchType", "keyword")

	path := fmt.Sprintf(searchPathTemplate, c.storeID, url.PathEscape(query))
	data, err := c.do(ctx, http.MethodGet, path, params, nil, true)
	if err != nil {
		return nil, err
	}
	return normalizeSearchResults(data), nil
}

// do executes a single store request, accumulating session cookies from the
// response. On a 401 with allowReauth set, the session is marked anonymous,
// a login is performed and the request is replayed exactly once; a second 401
// surfaces as an authentication failure.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body any, allowReauth bool) (any, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for name, value := range defaultHeaders {
		req.Header.Set(name, value)
	}

	c.mu.Lock()
	for name, value := range c.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	c.mu.Unlock()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreAPIFailure, err)
	}
	defer resp.Body.Close()

	c.updateCookies(resp)

	if resp.StatusCode == http.StatusUnauthorized && allowReauth {
		c.mu.Lock()
		c.authenticated = false
		c.mu.Unlock()

		if err := c.Login(ctx); err != nil {
			return nil, err
		}
		return c.do(ctx, method, path, params, body, false)
	}

	content, readErr := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		if c.debug {
			log.Printf("[STORE] Request failed: %s %s (status: %d, body: %s)", method, reqURL, resp.StatusCode, string(content))
		}
		if resp.StatusCode == http.StatusUnauthorized {
			return nil, domain.ErrAuthenticationFailed
		}
		return nil, &domain.RequestError{Status: resp.StatusCode, Path: path}
	}

	if readErr != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreAPIFailure, readErr)
	}
	return decodeResponse(resp.Header.Get("Content-Type"), content), nil
}

// decodeResponse decodes a response body as JSON when the content type says
// so, otherwise attempts JSON opportunistically and falls back to raw text.
// An empty body normalizes to nil.
func decodeResponse(contentType string, content []byte) any {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil
	}

	var decoded any
	if err := json.Unmarshal(content, &decoded); err == nil {
		return decoded
	}
	if strings.Contains(contentType, "application/json") {
		log.Printf("[STORE] Failed to decode JSON response (content-type %q)", contentType)
		return nil
	}
	return string(content)
}

// updateCookies merges Set-Cookie values from a response into the outgoing
// cookie set, last write wins per cookie name.
func (c *Client) updateCookies(resp *http.Response) {
	cookies := resp.Cookies()
	if len(cookies) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cookie := range cookies {
		if cookie.Name == "" {
			continue
		}
		c.cookies[cookie.Name] = cookie.Value
	}
}
