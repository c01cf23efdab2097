package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/adapter/http/middleware"
	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/cart"
	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/catalog"
	domain "github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/entity"
	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/logging"
	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/session"
)

type CartHandler struct {
	carts   *session.Registry
	catalog *catalog.Catalog
	timeout time.Duration
}

func NewCartHandler(carts *session.Registry, c *catalog.Catalog, timeout time.Duration) *CartHandler {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &CartHandler{carts: carts, catalog: c, timeout: timeout}
}

type addItemReq struct {
	ProductID string          `json:"productId" binding:"required"`
	Quantity  *int            `json:"quantity"`
	Variant   *domain.Variant `json:"variant"`
}

type updateItemReq struct {
	ProductID string          `json:"productId" binding:"required"`
	Quantity  *int            `json:"quantity" binding:"required"`
	Variant   *domain.Variant `json:"variant"`
}

type removeItemReq struct {
	ProductID string          `json:"productId" binding:"required"`
	Variant   *domain.Variant `json:"variant"`
}

func (h *CartHandler) engine(ctx context.Context, c *gin.Context) *cart.Engine {
	return h.carts.Engine(ctx, middleware.SessionID(c))
}

func (h *CartHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	c.JSON(http.StatusOK, h.engine(ctx, c).Snapshot())
}

// AddItem resolves the product from the catalog so clients cannot set names or prices.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	if qty <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_quantity"})
		return
	}

	p, err := h.catalog.Find(req.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product_not_found"})
		return
	}
	if !p.Offers(req.Variant) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "variant_not_offered"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	eng := h.engine(ctx, c)
	h.respond(c, eng, eng.AddToCart(ctx, p, qty, req.Variant))
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req updateItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	eng := h.engine(ctx, c)
	h.respond(c, eng, eng.UpdateQuantity(ctx, req.ProductID, *req.Quantity, req.Variant))
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	var req removeItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	eng := h.engine(ctx, c)
	h.respond(c, eng, eng.RemoveFromCart(ctx, req.ProductID, req.Variant))
}

func (h *CartHandler) Clear(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	eng := h.engine(ctx, c)
	h.respond(c, eng, eng.ClearCart(ctx))
}

func (h *CartHandler) Toggle(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	eng := h.engine(ctx, c)
	eng.ToggleCart()
	c.JSON(http.StatusOK, eng.Snapshot())
}

// respond maps an engine error to a status. A storage failure still leaves
// the in-memory cart mutated, so the body carries the current state.
func (h *CartHandler) respond(c *gin.Context, eng *cart.Engine, err error) {
	switch {
	case err == nil:
		c.JSON(http.StatusOK, eng.Snapshot())
	case errors.Is(err, cart.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_quantity"})
	default:
		logging.From(c).Error("cart not persisted", "err", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage_unavailable", "cart": eng.Snapshot()})
	}
}
