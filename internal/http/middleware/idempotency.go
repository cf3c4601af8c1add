// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements Idempotency-Key support for the create endpoints
// (POST). It validates the header, stashes the key for handlers and, through
// a narrow lookup function, detects whether the same key already completed a
// create in the same scope. The stored record rides on the context so the
// handler can return the resource without a second lookup, and the rate
// limiter lets the replay through.
package middleware

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-movies-api/internal/apierr"
	"github.com/tbourn/go-movies-api/internal/domain"
)

// HeaderIdempotencyKey is the request header carrying the client's key.
const HeaderIdempotencyKey = "Idempotency-Key"

// Context keys used to stash idempotency state.
const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemRecord = "idem.record" // *domain.Idempotency of a completed create
	ctxKeyRateBypass = "rate.bypass" // bool: skip rate limiting
	ctxKeyRateCharge = "rate.charge" // func() bool: spend the skipped token
)

// defaultKeyPattern accepts RFC 7230 token characters plus ':' and '~'.
var defaultKeyPattern = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)

// GetIdempotencyKey returns the validated key stored by IdempotencyValidator.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// ReplayRecord returns the completed create the lookup found for this key.
func ReplayRecord(c *gin.Context) (*domain.Idempotency, bool) {
	v, ok := c.Get(ctxKeyIdemRecord)
	if !ok {
		return nil, false
	}
	rec, _ := v.(*domain.Idempotency)
	return rec, rec != nil
}

// IsReplay reports whether the lookup found a completed create for this key.
func IsReplay(c *gin.Context) bool {
	_, ok := ReplayRecord(c)
	return ok
}

// IdempotencyScope names the operation a key belongs to, e.g.
// "POST /api/movies". Keys are unique per scope only.
func IdempotencyScope(c *gin.Context) string {
	path := c.FullPath()
	if path == "" {
		path = c.Request.URL.Path
	}
	return c.Request.Method + " " + path
}

// IdempotencyOptions configures header validation.
type IdempotencyOptions struct {
	// MaxLen caps the accepted key length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters; nil uses defaultKeyPattern.
	Pattern *regexp.Regexp
}

// IdempotencyLookup returns the still-valid record for (scope, key) at now.
// A nil record or an error is treated as a miss.
type IdempotencyLookup func(ctx context.Context, scope, key string, now time.Time) (*domain.Idempotency, error)

// IdempotencyValidator handles the Idempotency-Key header on POST requests.
//
//   - Other methods, and POSTs without the header, pass through untouched.
//   - An over-long or malformed key is reported as 400 "Invalid
//     Idempotency-Key" on the failure channel.
//   - A lookup hit stores the record for ReplayRecord and exempts the
//     request from rate limiting.
func IdempotencyValidator(opts IdempotencyOptions, lookup IdempotencyLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = defaultKeyPattern
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			apierr.Init(c, apierr.StatusBadRequest, apierr.MsgInvalidIdempotency)
			return
		}

		c.Set(ctxKeyIdemKey, key)

		if lookup != nil {
			if rec, err := lookup(c.Request.Context(), IdempotencyScope(c), key, time.Now().UTC()); err == nil && rec != nil {
				c.Set(ctxKeyIdemRecord, rec)
				c.Set(ctxKeyRateBypass, true)
			}
		}

		c.Next()
	}
}
