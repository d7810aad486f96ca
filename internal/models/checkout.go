package models

// CheckoutRequest is the body accepted by POST /api/checkout. Clients may
// also send display fields (productName, price, currency); they are bound
// for wire compatibility but the server never reads them — price and
// currency always come from the catalog record.
type CheckoutRequest struct {
	ProductID  string `json:"productId"`
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`

	// Ignored client-supplied display fields.
	ProductName string `json:"productName,omitempty"`
	Price       int64  `json:"price,omitempty"`
	Currency    string `json:"currency,omitempty"`
}

// CheckoutResponse carries the only session field exposed to clients.
type CheckoutResponse struct {
	URL string `json:"url"`
}

// ProductView is the public listing shape returned by GET /api/products.
type ProductView struct {
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	Currency    string `json:"currency"`
	ImageURL    string `json:"image_url"`
}
