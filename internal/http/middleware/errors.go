// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements ErrorHandler, the terminal stage of the failure
// channel. Handlers and other middleware report a failure by pushing an
// *apierr.TaggedError onto c.Errors (see apierr.Init) and aborting; once the
// chain unwinds, ErrorHandler resolves the last reported error, logs it when
// it is a server fault, and writes the single JSON error body.
//
// Install it after the access logger (so the log line sees the final status)
// and before Recovery (so recovered panics are formatted here too).
package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"

	"github.com/tbourn/go-movies-api/internal/apierr"
	"github.com/tbourn/go-movies-api/internal/observability"
)

// ctxKeyErrorKind holds the discriminator of the error written for the
// request, for access logging.
const ctxKeyErrorKind = "error.kind"

// ErrorKind returns the discriminator of the error response written for this
// request, or "" when the request succeeded.
func ErrorKind(c *gin.Context) string {
	v, _ := c.Get(ctxKeyErrorKind)
	return asString(v)
}

// ErrorHandler returns the terminal error-to-response middleware.
//
// Behavior:
//   - No-op when nothing was reported on c.Errors.
//   - The last reported error wins and is resolved with apierr.Resolve
//     (missing status -> 500, missing message -> generic server message,
//     missing name -> "Error").
//   - Only status 500 is logged, at error level with a stack trace. Client
//     errors are expected outcomes and produce no fault log.
//   - The body is written in the configured envelope unless a response was
//     already started, in which case nothing more is written.
func ErrorHandler(env apierr.Envelope) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil {
			return
		}
		te := apierr.Resolve(last.Err)
		c.Set(ctxKeyErrorKind, te.Name)
		apiErrors.WithLabelValues(te.Name, strconv.Itoa(te.Status)).Inc()
		observability.AnnotateError(c.Request.Context(), te.Name, te.Status, te.Message, te.Cause)

		if te.Status == apierr.StatusInternalServerError {
			logServerFault(c, te)
		}

		if c.Writer.Written() {
			return
		}
		c.AbortWithStatusJSON(te.Status, te.Body(env))
	}
}

// logServerFault writes te with its cause and stack to the request logger.
// Errors reported without a cause get a stack captured here.
func logServerFault(c *gin.Context, te *apierr.TaggedError) {
	cause := te.Cause
	if cause == nil {
		cause = pkgerrors.WithStack(pkgerrors.New(te.Message))
	}
	lg := LoggerFrom(c)
	ev := lg.Error()
	if id := observability.TraceID(c.Request.Context()); id != "" {
		ev = ev.Str("trace_id", id)
	}
	ev.
		Stack().
		Err(cause).
		Int("status", te.Status).
		Str("kind", te.Name).
		Str("message", te.Message).
		Msg("server error")
}
