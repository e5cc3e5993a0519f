package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cartlist/backend/internal/domain"
	"github.com/cartlist/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	checklist *usecase.ChecklistService
}

// NewHandler creates a new HTTP handler
func NewHandler(checklist *usecase.ChecklistService) *Handler {
	return &Handler{checklist: checklist}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "cartlist-backend",
		"version": "1.0.0",
	})
}

// ListItems returns the checklist view of the current cart
func (h *Handler) ListItems(c *gin.Context) {
	if h.checklist == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Checklist service not configured"})
		return
	}

	items, err := h.checklist.Items(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CreateItem adds a checklist item, resolving it to a store product
func (h *Handler) CreateItem(c *gin.Context) {
	if h.checklist == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Checklist service not configured"})
		return
	}

	var item domain.ChecklistItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	// A summary is only needed when no product id tag or description tag
	// resolves the product; the service decides.
	created, err := h.checklist.CreateItem(c.Request.Context(), item)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateItem applies a checklist edit to the backing cart line
func (h *Handler) UpdateItem(c *gin.Context) {
	if h.checklist == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Checklist service not configured"})
		return
	}

	var item domain.ChecklistItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	item.UID = c.Param("uid")

	updated, err := h.checklist.UpdateItem(c.Request.Context(), item)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteItem removes a checklist item and its backing cart line
func (h *Handler) DeleteItem(c *gin.Context) {
	if h.checklist == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Checklist service not configured"})
		return
	}

	if err := h.checklist.DeleteItem(c.Request.Context(), c.Param("uid")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SearchProducts runs a catalog keyword search
func (h *Handler) SearchProducts(c *gin.Context) {
	if h.checklist == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Checklist service not configured"})
		return
	}

	query := c.Query("q")
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		limit = parsed
	}

	results, err := h.checklist.SearchProducts(c.Request.Context(), query, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// respondError maps domain errors to HTTP responses. Upstream store failures
// surface as bad-gateway responses carrying the remote status when known.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrNoProductResolved):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrAuthenticationFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Store session needs re-authentication"})
	default:
		var reqErr *domain.RequestError
		if errors.As(err, &reqErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "storeStatus": reqErr.Status})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
