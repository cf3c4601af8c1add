package apierr

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
)

// TaggedError is an error carrying the HTTP status, message and discriminator
// name that the terminal error middleware turns into a response.
//
// Cause, when set, holds the underlying failure (with a captured stack). It is
// logged for server faults and never serialized.
type TaggedError struct {
	Name    string
	Status  int
	Message string
	Cause   error
}

// Error implements error.
func (e *TaggedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return MsgServerError
}

// Unwrap exposes the cause to errors.Is / errors.As.
func (e *TaggedError) Unwrap() error { return e.Cause }

// New builds a TaggedError. The default name is kept unless a non-empty name
// is supplied.
func New(status int, message string, name ...string) *TaggedError {
	e := &TaggedError{Name: NameDefault, Status: status, Message: message}
	if len(name) > 0 && strings.TrimSpace(name[0]) != "" {
		e.Name = name[0]
	}
	return e
}

// Init reports a failure for the current request: it hands a TaggedError to
// the Gin error list and aborts the remaining handlers. The caller must not
// write to the response afterwards; the terminal ErrorHandler owns it.
func Init(c *gin.Context, status int, message string, name ...string) {
	forward(c, New(status, message, name...))
}

// Wrap is Init with an underlying cause. A stack is captured at the call site
// so that server faults can be traced in the operator log.
func Wrap(c *gin.Context, cause error, status int, message string, name ...string) {
	e := New(status, message, name...)
	if cause != nil {
		e.Cause = pkgerrors.WithStack(cause)
	}
	forward(c, e)
}

func forward(c *gin.Context, e *TaggedError) {
	_ = c.Error(e)
	c.Abort()
}

// Resolve normalizes any error reaching the terminal stage into a complete
// TaggedError. Untagged errors become generic server faults carrying the
// original error as cause. A zero status becomes 500, an empty message becomes
// the generic server message and an empty name becomes the default
// discriminator. The input is never mutated.
func Resolve(err error) *TaggedError {
	var out TaggedError
	var te *TaggedError
	if errors.As(err, &te) {
		out = *te
	} else {
		// Untagged errors keep their text for the log only.
		out = TaggedError{Name: NameDefault, Cause: err}
	}
	if out.Status == 0 {
		out.Status = StatusInternalServerError
	}
	if out.Message == "" {
		out.Message = MsgServerError
	}
	if out.Name == "" {
		out.Name = NameDefault
	}
	return &out
}

// Envelope selects the JSON shape of error bodies.
type Envelope string

const (
	// EnvelopeKeyed renders {"<Name>": {"status": .., "message": ..}}.
	EnvelopeKeyed Envelope = "keyed"
	// EnvelopeFlat renders {"kind": "<Name>", "status": .., "message": ..}.
	EnvelopeFlat Envelope = "flat"
)

// Detail is the status/message pair nested under the discriminator key.
type Detail struct {
	Status  int    `json:"status" example:"404"`
	Message string `json:"message" example:"Movie not found"`
}

// FlatBody is the field-based error body.
type FlatBody struct {
	Kind    string `json:"kind" example:"Error"`
	Status  int    `json:"status" example:"404"`
	Message string `json:"message" example:"Movie not found"`
}

// Body returns the JSON value written for e in the given envelope.
// Unknown envelopes fall back to keyed.
func (e *TaggedError) Body(env Envelope) any {
	if env == EnvelopeFlat {
		return FlatBody{Kind: e.Name, Status: e.Status, Message: e.Message}
	}
	return map[string]Detail{e.Name: {Status: e.Status, Message: e.Message}}
}
