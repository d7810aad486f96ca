package buyflow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"still-goods-backend/internal/models"
	"still-goods-backend/pkg/logger"
)

const (
	// ErrorDisplayDuration is how long the transient failure message stays
	// visible before auto-dismissing.
	ErrorDisplayDuration = 5 * time.Second

	busyLabel       = "Processing..."
	genericErrorMsg = "Something went wrong. Please try again or email us."
	successPage     = "/success.html"
	checkoutPath    = "/api/checkout"
)

// Navigator performs the full-page redirect to the hosted checkout.
type Navigator interface {
	Navigate(url string)
}

// Config wires a controller to its page context and collaborators.
type Config struct {
	// APIBaseURL is where the checkout endpoint lives, without trailing slash.
	APIBaseURL string
	// Origin is the storefront origin used to build the success URL.
	Origin string
	// PageURL is the current page location, used as the cancel URL.
	PageURL string

	Navigator  Navigator
	HTTPClient *http.Client

	// ScheduleHide defers the message auto-dismiss; tests inject their own
	// to fire it synchronously. Defaults to time.AfterFunc.
	ScheduleHide func(d time.Duration, fn func())
}

// Controller drives buy buttons through the idle/pending/error state
// machine and issues session-creation calls.
type Controller struct {
	apiBaseURL   string
	origin       string
	pageURL      string
	navigator    Navigator
	httpClient   *http.Client
	scheduleHide func(d time.Duration, fn func())
}

// NewController validates the page wiring and returns a controller.
func NewController(cfg Config) (*Controller, error) {
	if strings.TrimSpace(cfg.APIBaseURL) == "" {
		return nil, errors.New("buyflow: API base URL is required")
	}
	if cfg.Navigator == nil {
		return nil, errors.New("buyflow: navigator is required")
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	schedule := cfg.ScheduleHide
	if schedule == nil {
		schedule = func(d time.Duration, fn func()) { time.AfterFunc(d, fn) }
	}

	origin := strings.TrimRight(cfg.Origin, "/")
	if origin == "" {
		origin = strings.TrimRight(cfg.APIBaseURL, "/")
	}

	return &Controller{
		apiBaseURL:   strings.TrimRight(cfg.APIBaseURL, "/"),
		origin:       origin,
		pageURL:      cfg.PageURL,
		navigator:    cfg.Navigator,
		httpClient:   client,
		scheduleHide: schedule,
	}, nil
}

// Activate runs one buy attempt for the button. Re-entrant activations
// while a call is pending are no-ops, so two rapid clicks produce exactly
// one outbound session-creation call. The outcome is reported through the
// button state, its message sink and the navigator; there is no return
// value to the caller.
func (c *Controller) Activate(ctx context.Context, b *Button) {
	if c == nil || b == nil {
		return
	}
	if b.Disabled() || b.State() == StatePending {
		return
	}

	attemptID := uuid.NewString()
	b.beginPending(busyLabel)

	logger.Debug("Checkout attempt started", map[string]interface{}{
		"attempt_id": attemptID,
		"product_id": b.ProductID,
	})

	url, err := c.createSession(ctx, b)
	if err != nil {
		logger.Error(err, "Checkout attempt failed", map[string]interface{}{
			"attempt_id": attemptID,
			"product_id": b.ProductID,
		})
		c.fail(b)
		return
	}

	// Success leaves the page; the button keeps its pending state because
	// it will never be observed again.
	c.navigator.Navigate(url)
}

func (c *Controller) createSession(ctx context.Context, b *Button) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	body := models.CheckoutRequest{
		ProductID:   b.ProductID,
		ProductName: b.ProductName,
		Price:       b.PriceCents,
		Currency:    b.Currency,
		SuccessURL:  c.origin + successPage,
		CancelURL:   c.pageURL,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBaseURL+checkoutPath, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("checkout endpoint returned status %d", resp.StatusCode)
	}

	var out models.CheckoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("checkout response decode failed: %w", err)
	}
	if out.URL == "" {
		return "", errors.New("checkout response missing redirect URL")
	}

	return out.URL, nil
}

// fail surfaces the generic retry prompt, re-enables the button with its
// original label and schedules the message auto-dismiss.
func (c *Controller) fail(b *Button) {
	b.failPending()

	if b.Messages == nil {
		b.settleError()
		return
	}

	b.Messages.ShowError(genericErrorMsg)
	c.scheduleHide(ErrorDisplayDuration, func() {
		b.Messages.HideError()
		b.settleError()
	})
}
