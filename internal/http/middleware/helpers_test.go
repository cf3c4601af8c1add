package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/tbourn/go-movies-api/internal/apierr"
)

// captureLogger swaps the global logger for one writing JSON lines to a
// buffer, with pkg/errors stack marshaling enabled.
func captureLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevLog, prevStack := log.Logger, zerolog.ErrorStackMarshaler
	t.Cleanup(func() {
		log.Logger = prevLog
		zerolog.ErrorStackMarshaler = prevStack
	})
	log.Logger = zerolog.New(&buf)
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	return &buf
}

// newEngine returns a test engine with the error stage installed.
func newEngine(env apierr.Envelope, mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler(env))
	r.Use(mw...)
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json %q: %v", w.Body.String(), err)
	}
	return body
}
