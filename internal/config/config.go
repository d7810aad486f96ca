package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	// Server
	Port        string
	Environment string

	// CORS
	CORSOrigins []string

	// Stripe
	StripeSecretKey string

	// Catalog
	CatalogPath string

	// Static site
	PublicDir string

	// Site Meta
	SiteName string
	SiteURL  string

	// Shipping policy applied to every checkout session
	ShippingCountries       []string
	ShippingDisplayName     string
	ShippingAmountCents     int64
	ShippingCurrency        string
	DeliveryEstimateMinDays int
	DeliveryEstimateMaxDays int

	// Rate Limiting
	RateLimitRequests int
	RateLimitWindow   int
	RateLimitBurst    int

	// Features
	EnableMetrics bool
}

func New() *Config {
	return &Config{
		// Server
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// CORS
		CORSOrigins: splitAndTrim(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080")),

		// Stripe. An empty key is not fatal at startup: the checkout
		// endpoint reports the misconfiguration per request instead.
		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),

		// Catalog
		CatalogPath: getEnv("CATALOG_PATH", ""),

		// Static site
		PublicDir: getEnv("PUBLIC_DIR", "./public"),

		// Site Meta
		SiteName: getEnv("SITE_NAME", "Still Goods"),
		SiteURL:  getEnv("SITE_URL", "https://goods.scottbertrand.com"),

		// Shipping
		ShippingCountries:       splitAndTrim(getEnv("SHIPPING_COUNTRIES", "CA")),
		ShippingDisplayName:     getEnv("SHIPPING_DISPLAY_NAME", "Free shipping"),
		ShippingAmountCents:     int64(getEnvAsInt("SHIPPING_AMOUNT_CENTS", 0)),
		ShippingCurrency:        getEnv("SHIPPING_CURRENCY", "cad"),
		DeliveryEstimateMinDays: getEnvAsInt("DELIVERY_ESTIMATE_MIN_DAYS", 5),
		DeliveryEstimateMaxDays: getEnvAsInt("DELIVERY_ESTIMATE_MAX_DAYS", 7),

		// Rate Limiting
		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   getEnvAsInt("RATE_LIMIT_WINDOW", 60),
		RateLimitBurst:    getEnvAsInt("RATE_LIMIT_BURST", 0),

		// Features
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var value int
	if _, err := fmt.Sscanf(valueStr, "%d", &value); err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return valueStr == "true" || valueStr == "1"
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
