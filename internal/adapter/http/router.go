package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/adapter/http/middleware"
	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/logging"
)

type Handlers struct {
	Catalog  *CatalogHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
}

func NewRouter(h Handlers, sess *middleware.Session, log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware())
	r.Use(middleware.Logging(log))

	r.GET("/healthz", func(c *gin.Context) {
		logging.From(c).Debug("health check")
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1", sess.Require())
	{
		v1.GET("/catalog", h.Catalog.Search)
		v1.GET("/catalog/categories", h.Catalog.Categories)
		v1.GET("/products/:id", h.Catalog.GetProduct)

		v1.GET("/cart", h.Cart.Get)
		v1.DELETE("/cart", h.Cart.Clear)
		v1.POST("/cart/toggle", h.Cart.Toggle)
		v1.POST("/cart/items", h.Cart.AddItem)
		v1.PATCH("/cart/items", h.Cart.UpdateItem)
		v1.DELETE("/cart/items", h.Cart.RemoveItem)

		v1.POST("/checkout", h.Checkout.Checkout)
		v1.GET("/contact", h.Checkout.Contact)
	}

	return r
}
