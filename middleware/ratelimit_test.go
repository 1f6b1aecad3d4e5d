package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestIPRateLimiterAllow(t *testing.T) {
	rl := NewIPRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d should have been allowed", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("request over the limit should have been denied")
	}

	// A different IP has its own budget.
	if !rl.Allow("10.0.0.2") {
		t.Error("other IP should not share the budget")
	}
}

func TestIPRateLimiterWindowExpiry(t *testing.T) {
	rl := NewIPRateLimiter(1, 20*time.Millisecond)

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first request should pass")
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("second request inside window should fail")
	}

	time.Sleep(30 * time.Millisecond)

	if !rl.Allow("10.0.0.1") {
		t.Error("request after window expiry should pass")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/limited", RateLimitMiddleware(2, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := []int{}
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		req.RemoteAddr = "192.168.1.7:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("first two requests should pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("third request should be limited, got %v", codes)
	}
}
