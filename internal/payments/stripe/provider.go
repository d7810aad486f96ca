package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"still-goods-backend/internal/payments"
)

const defaultAPIBase = "https://api.stripe.com"

// SessionIDPlaceholder is substituted by Stripe with the real session id
// when it redirects the customer back to the success URL.
const SessionIDPlaceholder = "{CHECKOUT_SESSION_ID}"

// Provider implements the payments.Provider interface for Stripe Checkout using direct HTTP calls.
type Provider struct {
	secretKey  string
	httpClient *http.Client
	apiBaseURL string
	userAgent  string
}

// Option adjusts provider construction.
type Option func(*Provider)

// WithAPIBase overrides the Stripe API base URL, mainly for tests.
func WithAPIBase(base string) Option {
	return func(p *Provider) {
		if trimmed := strings.TrimSpace(base); trimmed != "" {
			p.apiBaseURL = trimmed
		}
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Provider) {
		if client != nil {
			p.httpClient = client
		}
	}
}

// NewProvider constructs a Stripe provider using the supplied secret API key.
func NewProvider(secretKey string, opts ...Option) (*Provider, error) {
	key := strings.TrimSpace(secretKey)
	if key == "" {
		return nil, errors.New("stripe secret key is required")
	}

	provider := &Provider{
		secretKey:  key,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiBaseURL: defaultAPIBase,
		userAgent:  "still-goods-backend/stripe-checkout",
	}

	for _, opt := range opts {
		opt(provider)
	}

	return provider, nil
}

func (p *Provider) createRequest(ctx context.Context, params payments.CheckoutParams) (*http.Request, error) {
	form := url.Values{}
	mode := params.Mode
	if mode == "" {
		mode = payments.ModePayment
	}
	form.Set("mode", string(mode))
	form.Set("payment_method_types[0]", "card")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)

	for key, value := range params.Metadata {
		if key == "" || value == "" {
			continue
		}
		form.Set("metadata["+key+"]", value)
	}

	if len(params.LineItems) == 0 {
		return nil, errors.New("at least one line item is required")
	}

	for index, item := range params.LineItems {
		if item.AmountCents <= 0 {
			return nil, fmt.Errorf("line item %q has invalid amount", item.Name)
		}
		currency := strings.ToLower(strings.TrimSpace(item.Currency))
		if currency == "" {
			return nil, fmt.Errorf("line item %q currency is required", item.Name)
		}

		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}

		prefix := fmt.Sprintf("line_items[%d]", index)
		form.Set(prefix+"[quantity]", strconv.FormatInt(quantity, 10))
		form.Set(prefix+"[price_data][currency]", currency)
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(item.AmountCents, 10))
		form.Set(prefix+"[price_data][product_data][name]", item.Name)
		if desc := strings.TrimSpace(item.Description); desc != "" {
			form.Set(prefix+"[price_data][product_data][description]", desc)
		}
		if image := strings.TrimSpace(item.ImageURL); image != "" {
			form.Set(prefix+"[price_data][product_data][images][0]", image)
		}
	}

	if err := encodeShipping(form, params.Shipping); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v1/checkout/sessions", strings.TrimRight(p.apiBaseURL, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+p.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", p.userAgent)

	return req, nil
}

func encodeShipping(form url.Values, policy *payments.ShippingPolicy) error {
	if policy == nil {
		return nil
	}

	if len(policy.AllowedCountries) == 0 {
		return errors.New("shipping policy requires at least one allowed country")
	}
	for index, country := range policy.AllowedCountries {
		trimmed := strings.ToUpper(strings.TrimSpace(country))
		if trimmed == "" {
			return errors.New("shipping policy contains an empty country code")
		}
		form.Set(fmt.Sprintf("shipping_address_collection[allowed_countries][%d]", index), trimmed)
	}

	currency := strings.ToLower(strings.TrimSpace(policy.Currency))
	if currency == "" {
		return errors.New("shipping rate currency is required")
	}

	prefix := "shipping_options[0][shipping_rate_data]"
	form.Set(prefix+"[type]", "fixed_amount")
	form.Set(prefix+"[fixed_amount][amount]", strconv.FormatInt(policy.AmountCents, 10))
	form.Set(prefix+"[fixed_amount][currency]", currency)
	if name := strings.TrimSpace(policy.DisplayName); name != "" {
		form.Set(prefix+"[display_name]", name)
	}

	estimate := policy.DeliveryEstimate
	if estimate.MinBusinessDays > 0 {
		form.Set(prefix+"[delivery_estimate][minimum][unit]", "business_day")
		form.Set(prefix+"[delivery_estimate][minimum][value]", strconv.Itoa(estimate.MinBusinessDays))
	}
	if estimate.MaxBusinessDays > 0 {
		form.Set(prefix+"[delivery_estimate][maximum][unit]", "business_day")
		form.Set(prefix+"[delivery_estimate][maximum][value]", strconv.Itoa(estimate.MaxBusinessDays))
	}

	return nil
}

// CreateCheckoutSession creates a Stripe Checkout session for the provided purchase parameters.
func (p *Provider) CreateCheckoutSession(ctx context.Context, params payments.CheckoutParams) (*payments.Session, error) {
	if p == nil {
		return nil, errors.New("stripe provider is not configured")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	req, err := p.createRequest(ctx, params)
	if err != nil {
		return nil, err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		ID    string `json:"id"`
		URL   string `json:"url"`
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("stripe response decode failed: %w", err)
	}

	if resp.StatusCode >= 400 {
		message := strings.TrimSpace(payload.Error.Message)
		if message == "" {
			message = fmt.Sprintf("stripe returned status %d", resp.StatusCode)
		}
		return nil, errors.New(message)
	}

	if payload.ID == "" || payload.URL == "" {
		return nil, errors.New("stripe response missing session details")
	}

	return &payments.Session{ID: payload.ID, URL: payload.URL}, nil
}
