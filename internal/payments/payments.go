package payments

import "context"

// Mode represents the type of checkout session that should be created.
type Mode string

const (
	// ModePayment processes a one-time payment for goods or services.
	ModePayment Mode = "payment"
)

// LineItem describes a purchasable item that should be included in a checkout session.
type LineItem struct {
	Name        string
	Description string
	AmountCents int64
	Quantity    int64
	Currency    string
	ImageURL    string
}

// DeliveryEstimate bounds the expected delivery window in business days.
type DeliveryEstimate struct {
	MinBusinessDays int
	MaxBusinessDays int
}

// ShippingPolicy restricts where a session may ship and attaches a single
// fixed-rate shipping option.
type ShippingPolicy struct {
	AllowedCountries []string
	DisplayName      string
	AmountCents      int64
	Currency         string
	DeliveryEstimate DeliveryEstimate
}

// CheckoutParams encapsulates the parameters needed to create a checkout session.
type CheckoutParams struct {
	Mode       Mode
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
	LineItems  []LineItem
	Shipping   *ShippingPolicy
}

// Session represents a checkout session created by a payment provider.
type Session struct {
	ID  string
	URL string
}

// Provider defines the behaviour required to create checkout sessions across payment vendors.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*Session, error)
}
