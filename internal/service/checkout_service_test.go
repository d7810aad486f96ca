package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"still-goods-backend/internal/catalog"
	"still-goods-backend/internal/models"
	"still-goods-backend/internal/payments"
)

type providerMock struct {
	calls    int
	lastArgs payments.CheckoutParams
	session  *payments.Session
	err      error
}

func (p *providerMock) CreateCheckoutSession(ctx context.Context, params payments.CheckoutParams) (*payments.Session, error) {
	p.calls++
	p.lastArgs = params
	if p.err != nil {
		return nil, p.err
	}
	return p.session, nil
}

func testShipping() ShippingConfig {
	return ShippingConfig{
		AllowedCountries:        []string{"CA"},
		DisplayName:             "Free shipping",
		AmountCents:             0,
		Currency:                "cad",
		DeliveryEstimateMinDays: 5,
		DeliveryEstimateMaxDays: 7,
	}
}

func TestCreateCheckoutSessionUsesCatalogValues(t *testing.T) {
	provider := &providerMock{session: &payments.Session{ID: "cs_1", URL: "https://checkout/cs_1"}}
	svc := NewCheckoutService(catalog.Default(), provider, testShipping())

	// Client-supplied price, currency and name must be ignored.
	session, err := svc.CreateCheckoutSession(context.Background(), models.CheckoutRequest{
		ProductID:   "SG-001",
		ProductName: "Totally Different Product",
		Price:       1,
		Currency:    "usd",
		SuccessURL:  "https://x/s",
		CancelURL:   "https://x/c",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.URL != "https://checkout/cs_1" {
		t.Fatalf("unexpected session URL %s", session.URL)
	}

	if provider.calls != 1 {
		t.Fatalf("expected exactly one provider call, got %d", provider.calls)
	}

	args := provider.lastArgs
	if len(args.LineItems) != 1 {
		t.Fatalf("expected exactly one line item, got %d", len(args.LineItems))
	}

	item := args.LineItems[0]
	if item.AmountCents != 7800 {
		t.Fatalf("expected catalog price 7800, got %d", item.AmountCents)
	}
	if item.Currency != "cad" {
		t.Fatalf("expected catalog currency cad, got %s", item.Currency)
	}
	if item.Name != "Walnut Desk Tray" {
		t.Fatalf("expected catalog name, got %s", item.Name)
	}
	if item.Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", item.Quantity)
	}
	if item.ImageURL == "" {
		t.Fatalf("expected catalog image URL to be set")
	}

	if args.Metadata["productId"] != "SG-001" {
		t.Fatalf("expected productId metadata, got %v", args.Metadata)
	}
	if args.CancelURL != "https://x/c" {
		t.Fatalf("expected cancel URL to pass through, got %s", args.CancelURL)
	}
	if args.SuccessURL != "https://x/s?session_id={CHECKOUT_SESSION_ID}" {
		t.Fatalf("expected session id placeholder on success URL, got %s", args.SuccessURL)
	}

	if args.Shipping == nil {
		t.Fatalf("expected shipping policy to be attached")
	}
	if len(args.Shipping.AllowedCountries) != 1 || args.Shipping.AllowedCountries[0] != "CA" {
		t.Fatalf("expected shipping restricted to CA, got %v", args.Shipping.AllowedCountries)
	}
	if args.Shipping.DeliveryEstimate.MinBusinessDays != 5 || args.Shipping.DeliveryEstimate.MaxBusinessDays != 7 {
		t.Fatalf("unexpected delivery estimate %+v", args.Shipping.DeliveryEstimate)
	}
}

func TestCreateCheckoutSessionAppendsPlaceholderWithQuery(t *testing.T) {
	provider := &providerMock{session: &payments.Session{ID: "cs_1", URL: "https://checkout/cs_1"}}
	svc := NewCheckoutService(catalog.Default(), provider, testShipping())

	_, err := svc.CreateCheckoutSession(context.Background(), models.CheckoutRequest{
		ProductID:  "SG-002",
		SuccessURL: "https://x/s?ref=shop",
		CancelURL:  "https://x/c",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasSuffix(provider.lastArgs.SuccessURL, "&session_id={CHECKOUT_SESSION_ID}") {
		t.Fatalf("expected placeholder appended with &, got %s", provider.lastArgs.SuccessURL)
	}
}

func TestCreateCheckoutSessionRejectsUnknownProduct(t *testing.T) {
	provider := &providerMock{session: &payments.Session{ID: "cs_1", URL: "https://checkout/cs_1"}}
	svc := NewCheckoutService(catalog.Default(), provider, testShipping())

	for _, productID := range []string{"", "BOGUS", "sg-001"} {
		_, err := svc.CreateCheckoutSession(context.Background(), models.CheckoutRequest{
			ProductID:  productID,
			SuccessURL: "https://x/s",
			CancelURL:  "https://x/c",
		})
		if !errors.Is(err, ErrInvalidProduct) {
			t.Fatalf("expected ErrInvalidProduct for %q, got %v", productID, err)
		}
	}

	if provider.calls != 0 {
		t.Fatalf("expected no provider calls for invalid products, got %d", provider.calls)
	}
}

func TestCreateCheckoutSessionWithoutProvider(t *testing.T) {
	svc := NewCheckoutService(catalog.Default(), nil, testShipping())

	_, err := svc.CreateCheckoutSession(context.Background(), models.CheckoutRequest{
		ProductID:  "SG-001",
		SuccessURL: "https://x/s",
		CancelURL:  "https://x/c",
	})
	if !errors.Is(err, ErrPaymentsNotConfigured) {
		t.Fatalf("expected ErrPaymentsNotConfigured, got %v", err)
	}
}

func TestCreateCheckoutSessionWrapsProviderFailure(t *testing.T) {
	provider := &providerMock{err: errors.New("stripe is down")}
	svc := NewCheckoutService(catalog.Default(), provider, testShipping())

	_, err := svc.CreateCheckoutSession(context.Background(), models.CheckoutRequest{
		ProductID:  "SG-003",
		SuccessURL: "https://x/s",
		CancelURL:  "https://x/c",
	})
	if !errors.Is(err, ErrSessionCreation) {
		t.Fatalf("expected ErrSessionCreation, got %v", err)
	}
}
