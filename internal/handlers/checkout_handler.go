package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"still-goods-backend/internal/middleware"
	"still-goods-backend/internal/models"
	"still-goods-backend/internal/service"
	"still-goods-backend/pkg/logger"
)

// Fixed client-facing messages. Provider and configuration detail stays in
// the server log.
const (
	msgInvalidProduct       = "Invalid product"
	msgMethodNotAllowed     = "Method not allowed"
	msgPaymentsUnconfigured = "Payment system not configured"
	msgSessionFailed        = "Failed to create checkout session"
)

type CheckoutHandler struct {
	service *service.CheckoutService
}

func NewCheckoutHandler(service *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// Create handles POST /api/checkout.
func (h *CheckoutHandler) Create(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgPaymentsUnconfigured})
		return
	}

	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// A body that cannot yield a product id cannot match the catalog.
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidProduct})
		return
	}

	session, err := h.service.CreateCheckoutSession(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidProduct):
			middleware.RecordCheckoutOutcome("invalid_product")
			c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidProduct})
		case errors.Is(err, service.ErrPaymentsNotConfigured):
			middleware.RecordCheckoutOutcome("not_configured")
			c.JSON(http.StatusInternalServerError, gin.H{"error": msgPaymentsUnconfigured})
		default:
			middleware.RecordCheckoutOutcome("provider_error")
			logger.Error(err, "Checkout session request failed", map[string]interface{}{
				"product_id": req.ProductID,
			})
			c.JSON(http.StatusInternalServerError, gin.H{"error": msgSessionFailed})
		}
		return
	}

	middleware.RecordCheckoutOutcome("success")
	c.JSON(http.StatusOK, models.CheckoutResponse{URL: session.URL})
}

// MethodNotAllowed is installed as the router's NoMethod handler so that
// non-POST requests against /api/checkout answer 405 with the fixed body.
func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": msgMethodNotAllowed})
}
