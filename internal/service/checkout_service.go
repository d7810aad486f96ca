package service

import (
	"context"
	"errors"
	"strings"

	"still-goods-backend/internal/catalog"
	"still-goods-backend/internal/models"
	"still-goods-backend/internal/payments"
	"still-goods-backend/internal/payments/stripe"
	"still-goods-backend/pkg/logger"
)

var (
	// ErrPaymentsNotConfigured is returned when no payment provider credential is available.
	ErrPaymentsNotConfigured = errors.New("payment provider is not configured")
	// ErrInvalidProduct indicates the requested product id is not in the catalog.
	ErrInvalidProduct = errors.New("unknown product id")
	// ErrSessionCreation wraps provider-side failures; the wrapped detail
	// is logged but never shown to clients.
	ErrSessionCreation = errors.New("checkout session creation failed")
)

// ShippingConfig is the server-fixed shipping policy applied to every session.
type ShippingConfig struct {
	AllowedCountries        []string
	DisplayName             string
	AmountCents             int64
	Currency                string
	DeliveryEstimateMinDays int
	DeliveryEstimateMaxDays int
}

// CheckoutSession wraps the information returned by the payment provider.
type CheckoutSession struct {
	ID  string
	URL string
}

// CheckoutService resolves product references against the catalog and
// creates hosted checkout sessions with the payment provider.
type CheckoutService struct {
	catalog  *catalog.Catalog
	provider payments.Provider
	shipping ShippingConfig
}

// NewCheckoutService constructs a checkout service instance. A nil
// provider is valid and reports ErrPaymentsNotConfigured per request so a
// missing credential degrades the endpoint instead of crashing the process.
func NewCheckoutService(cat *catalog.Catalog, provider payments.Provider, shipping ShippingConfig) *CheckoutService {
	return &CheckoutService{
		catalog:  cat,
		provider: provider,
		shipping: shipping,
	}
}

// Configured reports whether a payment provider is available.
func (s *CheckoutService) Configured() bool {
	return s != nil && s.provider != nil && s.catalog != nil
}

// CreateCheckoutSession validates the requested product against the
// catalog and asks the provider for a hosted session. Price, currency,
// name, description and image always come from the catalog record; the
// client body is only trusted for the product reference and redirect URLs.
func (s *CheckoutService) CreateCheckoutSession(ctx context.Context, req models.CheckoutRequest) (*CheckoutSession, error) {
	if s == nil || s.catalog == nil {
		return nil, ErrPaymentsNotConfigured
	}
	if s.provider == nil {
		logger.Warn("Checkout requested without a configured payment provider", map[string]interface{}{
			"product_id": req.ProductID,
		})
		return nil, ErrPaymentsNotConfigured
	}

	product, ok := s.catalog.Lookup(req.ProductID)
	if !ok {
		return nil, ErrInvalidProduct
	}

	params := payments.CheckoutParams{
		Mode:       payments.ModePayment,
		SuccessURL: appendSessionPlaceholder(req.SuccessURL),
		CancelURL:  req.CancelURL,
		Metadata: map[string]string{
			"productId": product.SKU,
		},
		LineItems: []payments.LineItem{
			{
				Name:        product.Name,
				Description: product.Description,
				AmountCents: product.PriceCents,
				Quantity:    1,
				Currency:    product.Currency,
				ImageURL:    product.ImageURL,
			},
		},
		Shipping: &payments.ShippingPolicy{
			AllowedCountries: s.shipping.AllowedCountries,
			DisplayName:      s.shipping.DisplayName,
			AmountCents:      s.shipping.AmountCents,
			Currency:         s.shipping.Currency,
			DeliveryEstimate: payments.DeliveryEstimate{
				MinBusinessDays: s.shipping.DeliveryEstimateMinDays,
				MaxBusinessDays: s.shipping.DeliveryEstimateMaxDays,
			},
		},
	}

	if ctx == nil {
		ctx = context.Background()
	}

	session, err := s.provider.CreateCheckoutSession(ctx, params)
	if err != nil {
		logger.Error(err, "Failed to create checkout session with provider", map[string]interface{}{
			"product_id": product.SKU,
		})
		return nil, errors.Join(ErrSessionCreation, err)
	}

	logger.Info("Checkout session ready", map[string]interface{}{
		"product_id": product.SKU,
		"session_id": session.ID,
	})

	return &CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

// appendSessionPlaceholder attaches the provider's session-id template to
// the success redirect so the confirmation page can reference the session.
func appendSessionPlaceholder(successURL string) string {
	if strings.Contains(successURL, stripe.SessionIDPlaceholder) {
		return successURL
	}
	separator := "?"
	if strings.Contains(successURL, "?") {
		separator = "&"
	}
	return successURL + separator + "session_id=" + stripe.SessionIDPlaceholder
}
