package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-movies-api/internal/apierr"
)

func TestKeyByClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "203.0.113.7:5555"
	if got := KeyByClientIP()(c); got != "ip:203.0.113.7" {
		t.Fatalf("key=%q", got)
	}
}

func TestNewRateLimiter_BurstCoercion_AndVisitorReuse(t *testing.T) {
	rl := NewRateLimiter(1, 0, KeyByClientIP())
	if rl.burst != 1 {
		t.Fatalf("burst should be coerced to 1, got %d", rl.burst)
	}
	if rl.getVisitor("a") != rl.getVisitor("a") {
		t.Fatalf("same key should reuse its limiter")
	}
	if rl.getVisitor("a") == rl.getVisitor("b") {
		t.Fatalf("different keys should get distinct limiters")
	}
}

func TestRateLimiter_getVisitor_GC(t *testing.T) {
	rl := NewRateLimiter(1, 1, KeyByClientIP())
	rl.ttl = time.Millisecond
	old := rl.getVisitor("old")
	rl.visitors["old"].lastSeen = time.Now().Add(-time.Hour)

	rl.cleanupN = 4999 // next lookup triggers GC
	if rl.getVisitor("old") == old {
		t.Fatalf("idle bucket should have been evicted and recreated")
	}
	if rl.cleanupN != 0 {
		t.Fatalf("cleanup counter should reset, got %d", rl.cleanupN)
	}
}

func TestIsRateBypass(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if IsRateBypass(c) {
		t.Fatalf("no flag should mean no bypass")
	}
	c.Set(ctxKeyRateBypass, true)
	if !IsRateBypass(c) {
		t.Fatalf("expected bypass when flag set")
	}
	c.Set(ctxKeyRateBypass, "yes")
	if IsRateBypass(c) {
		t.Fatalf("non-bool flag should read as false")
	}
}

func TestRateLimiter_Handler_Allow_Deny_And_Bypass(t *testing.T) {
	captureLogger(t)
	rl := NewRateLimiter(1.0, 1, KeyByClientIP())
	r := newEngine(apierr.EnvelopeKeyed, rl.Handler())
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if w1.Code != http.StatusOK {
		t.Fatalf("first request should be allowed, got %d", w1.Code)
	}

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if w2.Code != http.StatusTooManyRequests {
		t.Fatalf("second request should be limited, got %d", w2.Code)
	}
	if got := w2.Header().Get("Retry-After"); got != "1" {
		t.Fatalf("Retry-After=%q", got)
	}
	if got := w2.Body.String(); got != `{"Error":{"status":429,"message":"Too many requests"}}` {
		t.Fatalf("body=%s", got)
	}

	// Replays skip the bucket.
	rb := newEngine(apierr.EnvelopeKeyed, func(c *gin.Context) { c.Set(ctxKeyRateBypass, true); c.Next() }, rl.Handler())
	rb.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	w3 := httptest.NewRecorder()
	rb.ServeHTTP(w3, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if w3.Code != http.StatusOK {
		t.Fatalf("bypass request should be allowed, got %d", w3.Code)
	}
}

func TestChargeRateLimit(t *testing.T) {
	captureLogger(t)
	rl := NewRateLimiter(0.001, 1, KeyByClientIP())
	markReplay := func(c *gin.Context) { c.Set(ctxKeyRateBypass, true); c.Next() }
	r := newEngine(apierr.EnvelopeKeyed, markReplay, rl.Handler())

	var charged []bool
	r.POST("/genres", func(c *gin.Context) {
		ok := ChargeRateLimit(c)
		charged = append(charged, ok)
		if IsRateBypass(c) {
			t.Fatalf("charging must clear the bypass flag")
		}
		if !ok {
			return
		}
		// A second charge in the same request is free.
		if !ChargeRateLimit(c) {
			t.Fatalf("token charged twice")
		}
		c.Status(http.StatusCreated)
	})

	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, httptest.NewRequest(http.MethodPost, "/genres", nil))
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodPost, "/genres", nil))

	if w1.Code != http.StatusCreated || w2.Code != http.StatusTooManyRequests {
		t.Fatalf("codes: %d %d", w1.Code, w2.Code)
	}
	if w2.Header().Get("Retry-After") != "1" ||
		w2.Body.String() != `{"Error":{"status":429,"message":"Too many requests"}}` {
		t.Fatalf("rejection: %v %s", w2.Header(), w2.Body.String())
	}
	if len(charged) != 2 || !charged[0] || charged[1] {
		t.Fatalf("charged=%v", charged)
	}

	// Without a rate limiter in the chain there is nothing to charge.
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if !ChargeRateLimit(c) {
		t.Fatalf("unlimited request should be allowed")
	}
}
