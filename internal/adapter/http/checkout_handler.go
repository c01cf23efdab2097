package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/adapter/http/middleware"
	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/session"
	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/usecase"
)

type CheckoutHandler struct {
	checkout *usecase.Checkout
	carts    *session.Registry
	timeout  time.Duration
}

func NewCheckoutHandler(checkout *usecase.Checkout, carts *session.Registry, timeout time.Duration) *CheckoutHandler {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &CheckoutHandler{checkout: checkout, carts: carts, timeout: timeout}
}

type checkoutReq struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type handoffResp struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	URL     string `json:"url"`
}

func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req checkoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	eng := h.carts.Engine(ctx, middleware.SessionID(c))
	out, err := h.checkout.Execute(ctx, eng, usecase.CheckoutInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrMissingCustomerData) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing_customer_data"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	c.JSON(http.StatusOK, handoffResp(out))
}

// Contact handles GET /v1/contact: the generic inquiry link.
func (h *CheckoutHandler) Contact(c *gin.Context) {
	c.JSON(http.StatusOK, handoffResp(h.checkout.Inquiry()))
}
