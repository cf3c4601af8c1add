package handlers

// Conditional list responses (weak ETags) and idempotent create replays.

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-movies-api/internal/http/middleware"
)

// statsFunc returns a collection's row count and latest update time.
type statsFunc func(ctx context.Context) (int64, *time.Time, error)

// listETag computes the weak ETag of a collection. It returns "" when the
// stats are unavailable or the collection is empty (empty lists are 404s and
// carry no validator).
func listETag(ctx context.Context, name string, stats statsFunc) string {
	count, maxTS, err := stats(ctx)
	if err != nil || count == 0 {
		return ""
	}
	var ts int64
	if maxTS != nil {
		ts = maxTS.UnixNano()
	}
	return fmt.Sprintf(`W/"%s:%d:%d"`, name, count, ts)
}

// notModified answers 304 when If-None-Match carries etag.
func notModified(c *gin.Context, etag string) bool {
	if etag == "" {
		return false
	}
	inm := c.GetHeader("If-None-Match")
	if inm == "" {
		return false
	}
	for _, tag := range strings.Split(inm, ",") {
		if t := strings.TrimSpace(tag); t == etag || t == "*" {
			c.Header("ETag", etag)
			c.Status(http.StatusNotModified)
			return true
		}
	}
	return false
}

// replayCreate answers a retried create from the record the idempotency
// middleware found. It returns true when the request was answered: either
// with the stored outcome or, for a stale record whose resource is gone and
// a client over its rate limit, with a 429. Otherwise the handler goes on
// with a normal create.
func (h *Handlers) replayCreate(c *gin.Context, load func(ctx context.Context, id string) (any, error)) bool {
	if h.idem == nil {
		return false
	}
	rec, found := middleware.ReplayRecord(c)
	if !found {
		return false
	}
	res, err := load(c.Request.Context(), rec.ResourceID)
	if err != nil {
		return !middleware.ChargeRateLimit(c)
	}
	c.Header("Idempotency-Replayed", "true")
	ok(c, rec.Status, res)
	return true
}

// rememberCreate stores the outcome of a create made with an Idempotency-Key.
// Failures are logged and otherwise ignored: the resource already exists.
func (h *Handlers) rememberCreate(c *gin.Context, resourceID string, status int) {
	if h.idem == nil {
		return
	}
	key, found := middleware.GetIdempotencyKey(c)
	if !found {
		return
	}
	if err := h.idem.Save(c.Request.Context(), middleware.IdempotencyScope(c), key, resourceID, status); err != nil {
		middleware.LoggerFrom(c).Warn().Err(err).Str("idempotency_key", key).Msg("idempotency record not saved")
	}
}
