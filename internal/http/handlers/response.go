package handlers

// This file defines the response utilities shared by all endpoints: success
// writers, JSON binding with decoder-error classification, and the mapping
// from service errors to apierr factory calls.
//
// Example error response (keyed envelope):
//
//	HTTP/1.1 404 Not Found
//	{ "Error": { "status": 404, "message": "Movie not found" } }

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-movies-api/internal/apierr"
	"github.com/tbourn/go-movies-api/internal/services"
)

// ErrorBody documents the keyed error envelope in the OpenAPI spec. The
// top-level key is the error name ("Error", "ValidationError",
// "SyntaxError").
type ErrorBody struct {
	Error apierr.Detail `json:"Error"`
}

// StatusResponse is the health-check payload.
type StatusResponse struct {
	Status string `json:"status" example:"The server is running"`
}

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes an HTTP 204 No Content response.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// bindJSON decodes the request body into dst. On failure it reports a 400
// through apierr and returns false; the caller must return immediately.
//
//   - empty or truncated body, malformed JSON -> SyntaxError
//   - a value of the wrong JSON type -> ValidationError for model
//   - body over the size limit -> Error
func bindJSON(c *gin.Context, model string, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var (
		syn     *json.SyntaxError
		typ     *json.UnmarshalTypeError
		tooBig  *http.MaxBytesError
		invalid *json.InvalidUnmarshalError
	)
	switch {
	case errors.Is(err, io.EOF):
		apierr.Init(c, apierr.StatusBadRequest, apierr.MsgEmptyBody, apierr.NameSyntax)
	case errors.As(err, &tooBig):
		apierr.Init(c, apierr.StatusBadRequest, apierr.MsgBodyTooLarge)
	case errors.As(err, &syn), errors.Is(err, io.ErrUnexpectedEOF):
		apierr.Init(c, apierr.StatusBadRequest, err.Error(), apierr.NameSyntax)
	case errors.As(err, &typ):
		ve := &services.ValidationError{
			Model:  model,
			Fields: []services.FieldError{{Field: typeErrorField(typ), Message: typeErrorMessage(typ)}},
		}
		apierr.Init(c, apierr.StatusBadRequest, ve.Error(), apierr.NameValidation)
	case errors.As(err, &invalid):
		apierr.Wrap(c, err, apierr.StatusInternalServerError, apierr.MsgServerError)
	default:
		apierr.Init(c, apierr.StatusBadRequest, err.Error(), apierr.NameSyntax)
	}
	return false
}

func typeErrorField(e *json.UnmarshalTypeError) string {
	if f := strings.TrimSpace(e.Field); f != "" {
		return f
	}
	return "body"
}

func typeErrorMessage(e *json.UnmarshalTypeError) string {
	want := "a valid value"
	if e.Type != nil {
		want = e.Type.String()
	}
	return fmt.Sprintf("expected %s, got %s", want, e.Value)
}

// failFrom reports a service error through apierr. Known service conditions
// map to their status and message; anything else is a server fault whose
// cause is kept for the operator log.
func failFrom(c *gin.Context, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		apierr.Init(c, apierr.StatusBadRequest, ve.Error(), apierr.NameValidation)
	case errors.Is(err, services.ErrMovieNotFound):
		apierr.Init(c, apierr.StatusNotFound, apierr.MsgMovieNotFound)
	case errors.Is(err, services.ErrGenreNotFound):
		apierr.Init(c, apierr.StatusNotFound, apierr.MsgGenreNotFound)
	case errors.Is(err, services.ErrCourseNotFound):
		apierr.Init(c, apierr.StatusNotFound, apierr.MsgCourseNotFound)
	case errors.Is(err, services.ErrMovieConflict):
		apierr.Init(c, apierr.StatusConflict, apierr.MsgMovieConflict)
	case errors.Is(err, services.ErrGenreConflict):
		apierr.Init(c, apierr.StatusConflict, apierr.MsgGenreConflict)
	default:
		apierr.Wrap(c, err, apierr.StatusInternalServerError, apierr.MsgServerError)
	}
}
