// Package services – input normalization and validation.
//
// Inputs are normalized first (trimmed, genre names lowercased) and then
// checked with go-playground/validator. Each failing rule is mapped to one of
// the fixed validation messages in apierr, keyed by field and tag.
package services

import (
	"errors"
	"reflect"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tbourn/go-movies-api/internal/apierr"
)

// GenreInput is the writable part of a genre.
type GenreInput struct {
	Name string `json:"name" validate:"required,max=255" example:"action"`
}

// MovieInput is the writable part of a movie. ReleaseDate accepts
// "YYYY-MM-DD" or RFC 3339.
type MovieInput struct {
	Title       string   `json:"title"       validate:"required,max=255" example:"Movie Title"`
	Description string   `json:"description" validate:"required,min=10" example:"Movie description"`
	ReleaseDate string   `json:"releaseDate" validate:"required" example:"2023-10-31"`
	Genre       []string `json:"genre"       validate:"min=1,dive,max=255" example:"action,adventure"`
}

// validate is safe for concurrent use once built.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ruleMessages maps "<field>.<tag>" to the message shown to clients.
var ruleMessages = map[string]string{
	"name.required":        apierr.ValGenreName,
	"name.max":             apierr.ValGenreNameLength,
	"title.required":       apierr.ValMovieTitle,
	"title.max":            apierr.ValMovieTitleLength,
	"description.required": apierr.ValMovieDescription,
	"description.min":      apierr.ValMovieDescriptionLength,
	"releaseDate.required": apierr.ValMovieReleaseDate,
	"genre.min":            apierr.ValMovieGenre,
	"genre.max":            apierr.ValMovieGenreLength,
}

// check runs the struct rules on in and collects the violations into a
// ValidationError for model.
func check(model string, in any) *ValidationError {
	verr := &ValidationError{Model: model}
	err := validate.Struct(in)
	if err == nil {
		return verr
	}
	var fes validator.ValidationErrors
	if !errors.As(err, &fes) {
		verr.add("", err.Error())
		return verr
	}
	for _, fe := range fes {
		// Element rules report "genre[2]"; all elements share one message.
		field := fe.Field()
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		msg, ok := ruleMessages[field+"."+fe.Tag()]
		if !ok {
			msg = fe.Error()
		}
		if !verr.has(field, msg) {
			verr.add(field, msg)
		}
	}
	return verr
}

// NormalizeGenreName trims s and lowercases it with Unicode case rules.
func NormalizeGenreName(s string) string {
	// cases.Caser is stateful, so one per call.
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

// normalizeGenres normalizes every name, dropping blanks and duplicates while
// keeping first-seen order.
func normalizeGenres(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, g := range in {
		n := NormalizeGenreName(g)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// titleKeyFits reports whether the folded title still fits its column.
// Folding can lengthen a title ("ß" becomes "ss").
func titleKeyFits(key string) bool {
	return utf8.RuneCountInString(key) <= apierr.MaxNameLength
}

// titleKey is the case-insensitive form of a movie title used for duplicate
// detection.
func titleKey(title string) string {
	return cases.Fold().String(title)
}

// releaseLayouts are tried in order by parseReleaseDate.
var releaseLayouts = []string{time.DateOnly, time.RFC3339Nano}

// parseReleaseDate parses s and returns it at UTC.
func parseReleaseDate(s string) (time.Time, bool) {
	for _, layout := range releaseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
