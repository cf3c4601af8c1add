// Package services defines the business logic for movies, genres and the
// course catalogue. This file centralizes common service-level error values so
// that they can be consistently returned by service methods and checked by
// callers.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import (
	"errors"
	"strings"
)

var (
	// ErrMovieNotFound indicates that the requested movie does not exist. Ids
	// that are not UUIDs are reported the same way.
	ErrMovieNotFound = errors.New("movie not found")

	// ErrMovieConflict is returned when another movie already has the same
	// case-insensitive title and release date.
	ErrMovieConflict = errors.New("movie already exists")

	// ErrGenreNotFound indicates that the requested genre does not exist.
	ErrGenreNotFound = errors.New("genre not found")

	// ErrGenreConflict is returned when another genre already has the same
	// normalized name.
	ErrGenreConflict = errors.New("genre already exists")

	// ErrCourseNotFound indicates that no catalogue course has the id.
	ErrCourseNotFound = errors.New("course not found")
)

// FieldError is a single rule violation on an input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError reports every rule violation of one input model.
type ValidationError struct {
	// Model is the resource name used as message prefix ("Movie", "Genre").
	Model  string
	Fields []FieldError
}

// Error renders "<Model> validation failed: field: msg, field: msg".
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Model)
	b.WriteString(" validation failed")
	for i, f := range e.Fields {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString(", ")
		}
		b.WriteString(f.Field)
		b.WriteString(": ")
		b.WriteString(f.Message)
	}
	return b.String()
}

// add appends a violation.
func (e *ValidationError) add(field, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: msg})
}

// has reports whether the exact violation was already recorded.
func (e *ValidationError) has(field, msg string) bool {
	for _, f := range e.Fields {
		if f.Field == field && f.Message == msg {
			return true
		}
	}
	return false
}

// orNil returns e when it holds at least one violation, nil otherwise.
func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
