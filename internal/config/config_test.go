package config

import (
	"os"
	"testing"
)

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	original, existed := os.LookupEnv(key)
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("failed to unset %s: %v", key, err)
	}
	t.Cleanup(func() {
		if !existed {
			_ = os.Unsetenv(key)
			return
		}
		_ = os.Setenv(key, original)
	})
}

func TestShippingDefaults(t *testing.T) {
	unsetEnv(t, "SHIPPING_COUNTRIES")
	unsetEnv(t, "SHIPPING_AMOUNT_CENTS")
	unsetEnv(t, "DELIVERY_ESTIMATE_MIN_DAYS")
	unsetEnv(t, "DELIVERY_ESTIMATE_MAX_DAYS")

	cfg := New()

	if len(cfg.ShippingCountries) != 1 || cfg.ShippingCountries[0] != "CA" {
		t.Fatalf("expected default shipping country CA, got %v", cfg.ShippingCountries)
	}
	if cfg.ShippingAmountCents != 0 {
		t.Fatalf("expected free shipping by default, got %d", cfg.ShippingAmountCents)
	}
	if cfg.DeliveryEstimateMinDays != 5 || cfg.DeliveryEstimateMaxDays != 7 {
		t.Fatalf("expected 5-7 business day estimate, got %d-%d",
			cfg.DeliveryEstimateMinDays, cfg.DeliveryEstimateMaxDays)
	}
}

func TestShippingCountriesParsing(t *testing.T) {
	t.Setenv("SHIPPING_COUNTRIES", "CA, US ,GB")

	cfg := New()

	expected := []string{"CA", "US", "GB"}
	if len(cfg.ShippingCountries) != len(expected) {
		t.Fatalf("expected %d countries, got %v", len(expected), cfg.ShippingCountries)
	}
	for i, country := range expected {
		if cfg.ShippingCountries[i] != country {
			t.Fatalf("expected country %d to be %s, got %s", i, country, cfg.ShippingCountries[i])
		}
	}
}

func TestStripeKeyAbsenceIsNotFatal(t *testing.T) {
	unsetEnv(t, "STRIPE_SECRET_KEY")

	cfg := New()

	if cfg.StripeSecretKey != "" {
		t.Fatalf("expected empty secret key, got %q", cfg.StripeSecretKey)
	}
}

func TestIntParsingFallsBackOnGarbage(t *testing.T) {
	t.Setenv("RATE_LIMIT_REQUESTS", "not-a-number")

	cfg := New()

	if cfg.RateLimitRequests != 100 {
		t.Fatalf("expected fallback to default 100, got %d", cfg.RateLimitRequests)
	}
}

func TestEnvironmentHelpers(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	cfg := New()

	if !cfg.IsProduction() || cfg.IsDevelopment() {
		t.Fatalf("expected production environment, got %q", cfg.Environment)
	}
}
