package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"still-goods-backend/internal/catalog"
	"still-goods-backend/internal/models"
)

type ProductHandler struct {
	catalog *catalog.Catalog
}

func NewProductHandler(catalog *catalog.Catalog) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// List handles GET /api/products with the public catalog fields.
func (h *ProductHandler) List(c *gin.Context) {
	if h.catalog == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Service not configured"})
		return
	}

	products := h.catalog.Products()
	views := make([]models.ProductView, 0, len(products))
	for _, product := range products {
		views = append(views, models.ProductView{
			SKU:         product.SKU,
			Name:        product.Name,
			Description: product.Description,
			PriceCents:  product.PriceCents,
			Currency:    product.Currency,
			ImageURL:    product.ImageURL,
		})
	}

	c.JSON(http.StatusOK, gin.H{"products": views})
}
