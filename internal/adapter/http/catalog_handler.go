package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/catalog"
)

type CatalogHandler struct {
	catalog *catalog.Catalog
}

func NewCatalogHandler(c *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: c}
}

// Search handles GET /v1/catalog?q=&category=
func (h *CatalogHandler) Search(c *gin.Context) {
	products := h.catalog.Search(c.Query("q"), c.Query("category"))
	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

func (h *CatalogHandler) Categories(c *gin.Context) {
	cats := h.catalog.Categories()
	if cats == nil {
		cats = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	p, err := h.catalog.Find(c.Param("id"))
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}
	c.JSON(http.StatusOK, p)
}
