// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements an in-memory token-bucket rate limiter with per-client
// buckets and opportunistic garbage collection of idle buckets. Rejections
// are reported on the failure channel as 429, so clients get the same error
// body as for every other failure.
//
// The limiter is process-local; replicas each enforce their own budget.
package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/tbourn/go-movies-api/internal/apierr"
)

// keyFunc selects the identity used to key a rate-limit bucket.
type keyFunc func(*gin.Context) string

// KeyByClientIP keys buckets by the client IP as resolved by Gin (honoring
// trusted proxies).
func KeyByClientIP() keyFunc {
	return func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	}
}

// visitor holds a single rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter implements a per-key token-bucket rate limiter. It is safe for
// concurrent use.
type RateLimiter struct {
	rps      rate.Limit
	burst    int
	keyFn    keyFunc
	mu       sync.Mutex
	visitors map[string]*visitor

	ttl      time.Duration
	cleanupN uint64
}

// NewRateLimiter constructs a RateLimiter refilling rps tokens per second up
// to burst (values <= 0 are coerced to 1), keyed by keyFn.
func NewRateLimiter(rps float64, burst int, keyFn keyFunc) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		keyFn:    keyFn,
		visitors: make(map[string]*visitor),
		ttl:      10 * time.Minute,
	}
}

// getVisitor returns the limiter for key, creating it if absent. Every 5000
// lookups, buckets idle for at least ttl are evicted first, so a stale bucket
// can be dropped even when it is the one being fetched.
func (rl *RateLimiter) getVisitor(key string) *rate.Limiter {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.cleanupN++
	if rl.cleanupN >= 5000 {
		for k, v := range rl.visitors {
			if now.Sub(v.lastSeen) >= rl.ttl {
				delete(rl.visitors, k)
			}
		}
		rl.cleanupN = 0
	}

	if v, ok := rl.visitors[key]; ok {
		v.lastSeen = now
		return v.limiter
	}
	lim := rate.NewLimiter(rl.rps, rl.burst)
	rl.visitors[key] = &visitor{limiter: lim, lastSeen: now}
	return lim
}

// IsRateBypass reports whether IdempotencyValidator marked this request as a
// replay of a completed create, which is served without consuming tokens.
func IsRateBypass(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyRateBypass)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// ChargeRateLimit spends the token a bypassed request skipped. Handlers call
// it when a request let through as a replay turns into a fresh create. It
// returns false, with the 429 already reported, when the client is over its
// limit. Requests that were never bypassed are always allowed.
func ChargeRateLimit(c *gin.Context) bool {
	c.Set(ctxKeyRateBypass, false)
	v, ok := c.Get(ctxKeyRateCharge)
	if !ok {
		return true
	}
	charge, _ := v.(func() bool)
	if charge == nil {
		return true
	}
	c.Set(ctxKeyRateCharge, nil)
	if charge() {
		return true
	}
	tooManyRequests(c)
	return false
}

// Handler returns the Gin middleware enforcing the limits. A rejected request
// gets "Retry-After: 1" and a 429 "Too many requests" error.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.keyFn(c)
		if IsRateBypass(c) {
			c.Set(ctxKeyRateCharge, func() bool { return rl.getVisitor(key).Allow() })
			c.Next()
			return
		}
		if rl.getVisitor(key).Allow() {
			c.Next()
			return
		}
		tooManyRequests(c)
	}
}

func tooManyRequests(c *gin.Context) {
	c.Header("Retry-After", "1")
	apierr.Init(c, apierr.StatusTooManyRequests, apierr.MsgTooManyRequests)
}
