package middleware

import (
	"context"
	"testing"
	"time"
)

func TestGetVisitorReusesLimiterPerIP(t *testing.T) {
	manager := NewRateLimitManager(context.Background())
	defer manager.Shutdown()

	first := manager.GetVisitor("203.0.113.7", 10, 60, 0)
	if first == nil {
		t.Fatalf("expected a limiter for the first visit")
	}

	second := manager.GetVisitor("203.0.113.7", 10, 60, 0)
	if first != second {
		t.Fatalf("expected the same limiter for repeat visits")
	}

	other := manager.GetVisitor("203.0.113.8", 10, 60, 0)
	if other == first {
		t.Fatalf("expected a distinct limiter per IP")
	}
}

func TestGetVisitorDisabledWithoutBudget(t *testing.T) {
	manager := NewRateLimitManager(context.Background())
	defer manager.Shutdown()

	if limiter := manager.GetVisitor("203.0.113.7", 0, 60, 0); limiter != nil {
		t.Fatalf("expected no limiter when requests per window is zero")
	}
}

func TestCleanupDropsStaleVisitors(t *testing.T) {
	manager := NewRateLimitManager(context.Background())
	defer manager.Shutdown()

	manager.GetVisitor("203.0.113.7", 10, 60, 0)

	manager.visitorsMu.Lock()
	manager.visitors["203.0.113.7"].lastSeen = time.Now().Add(-10 * time.Minute)
	manager.visitorsMu.Unlock()

	manager.cleanup()

	manager.visitorsMu.Lock()
	_, exists := manager.visitors["203.0.113.7"]
	manager.visitorsMu.Unlock()

	if exists {
		t.Fatalf("expected stale visitor to be removed")
	}
}
