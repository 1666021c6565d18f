package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimitIsPerSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })

	r := gin.New()
	r.Use(Session())
	r.Use(RateLimit(RateLimitConfig{
		DefaultGroup: "ANALYZE",
		Limiter:      limiter,
		Rules: map[string]RateLimitRule{
			"ANALYZE": {Rate: 1, Burst: 2},
		},
	}))
	r.POST("/api/v1/analyses", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	send := func(sessionID string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", nil)
		req.Header.Set("X-Session-Id", sessionID)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		return resp.Code
	}

	for i := 0; i < 2; i++ {
		if code := send("session-a"); code != http.StatusOK {
			t.Fatalf("request %d expected 200, got %d", i+1, code)
		}
	}
	if code := send("session-a"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", code)
	}

	// A different session has its own bucket.
	if code := send("session-b"); code != http.StatusOK {
		t.Fatalf("expected 200 for fresh session, got %d", code)
	}
}

func TestRateLimit429IncludesRetryAfter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })

	r := gin.New()
	r.Use(Session())
	r.Use(RateLimit(RateLimitConfig{
		DefaultGroup: "ANALYZE",
		Limiter:      limiter,
		Rules: map[string]RateLimitRule{
			"ANALYZE": {Rate: 1, Burst: 1},
		},
	}))
	r.POST("/api/v1/analyses", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req1 := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", nil)
	req1.Header.Set("X-Session-Id", "session-a")
	resp1 := httptest.NewRecorder()
	r.ServeHTTP(resp1, req1)
	if resp1.Code != http.StatusOK {
		t.Fatalf("expected first request 200, got %d", resp1.Code)
	}

	req2 := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", nil)
	req2.Header.Set("X-Session-Id", "session-a")
	resp2 := httptest.NewRecorder()
	r.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp2.Code)
	}
	if resp2.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}

	var payload map[string]any
	if err := json.NewDecoder(resp2.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["error"] != "rate_limited" {
		t.Fatalf("expected error=rate_limited")
	}
	if _, ok := payload["retryAfterMs"]; !ok {
		t.Fatalf("expected retryAfterMs in response")
	}
}

func TestSessionAssignsIDWhenMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Session())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"session": SessionIDFromContext(c)})
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Header().Get("X-Session-Id") == "" {
		t.Fatalf("expected assigned session id header")
	}

	// A provided header is echoed back unchanged.
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req2.Header.Set("X-Session-Id", "pinned-session")
	resp2 := httptest.NewRecorder()
	r.ServeHTTP(resp2, req2)

	if got := resp2.Header().Get("X-Session-Id"); got != "pinned-session" {
		t.Fatalf("expected pinned session id, got %q", got)
	}
}
