// Package apierr holds the shared HTTP error vocabulary of the API and the
// factory handlers use to report a failure.
//
// This file declares the immutable status and message tables. They are plain
// constants: loaded once with the binary, never mutated at runtime, and safe
// to read from any goroutine.
package apierr

import "net/http"

// Status codes used by the API. Only these values are emitted by handlers.
const (
	StatusOK                  = http.StatusOK
	StatusCreated             = http.StatusCreated
	StatusNoContent           = http.StatusNoContent
	StatusFound               = http.StatusFound
	StatusBadRequest          = http.StatusBadRequest
	StatusNotFound            = http.StatusNotFound
	StatusConflict            = http.StatusConflict
	StatusTooManyRequests     = http.StatusTooManyRequests
	StatusInternalServerError = http.StatusInternalServerError
)

// Human-readable error messages returned in error bodies.
const (
	MsgMovieNotFound      = "Movie not found"
	MsgMoviesListNotFound = "Movies not found"
	MsgMovieConflict      = "Movie already exists"
	MsgGenreNotFound      = "Genre not found"
	MsgGenresListNotFound = "Genres not found"
	MsgGenreConflict      = "Genre already exists"
	MsgCourseNotFound     = "Course not found"
	MsgPageNotFound       = "Page not found"
	MsgServerError        = "An unexpected error occurred on the server"
	MsgTooManyRequests    = "Too many requests"
	MsgInvalidIdempotency = "Invalid Idempotency-Key"
	MsgBodyTooLarge       = "Request body too large"
	MsgEmptyBody          = "Unexpected end of JSON input"
)

// Validation messages attached to individual fields.
const (
	ValGenreName              = "Genre name is required"
	ValGenreNameLength        = "Genre name must be at most 255 characters long"
	ValMovieTitle             = "Movie title is required"
	ValMovieTitleLength       = "Movie title must be at most 255 characters long"
	ValMovieDescription       = "Movie description is required"
	ValMovieDescriptionLength = "Movie description must be at least 10 characters long"
	ValMovieReleaseDate       = "Movie release date is required"
	ValMovieReleaseDateFormat = "Movie release date must be a valid date"
	ValMovieGenre             = "Movie must have at least one genre"
	ValMovieGenreLength       = "Movie genre names must be at most 255 characters long"
)

// MinTextLength is the minimum rune length of a movie description.
const MinTextLength = 10

// MaxNameLength is the maximum rune length of genre names and movie titles,
// matching their varchar(255) columns.
const MaxNameLength = 255

// Error discriminators. The name becomes the top-level key of a keyed error
// body (or the "kind" field of a flat one).
const (
	NameDefault    = "Error"
	NameValidation = "ValidationError"
	NameSyntax     = "SyntaxError"
)
