// Package handlers provides HTTP handler implementations for the public API.
//
// Handlers are transport-thin: they bind input, call application services,
// and either write the success response or report the failure through
// apierr. They never format error JSON themselves; the terminal
// middleware.ErrorHandler owns every failure response.
package handlers

import (
	"context"
	"time"

	"github.com/tbourn/go-movies-api/internal/domain"
	"github.com/tbourn/go-movies-api/internal/services"
)

//
// Service contracts (context-aware)
//

// MovieService defines the movie operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type MovieService interface {
	// List returns all movies, most recent release first.
	List(ctx context.Context) ([]domain.Movie, error)
	// ListByGenre returns the movies tagged with genre.
	ListByGenre(ctx context.Context, genre string) ([]domain.Movie, error)
	// Stats returns the movie count and the latest update time (for ETags).
	Stats(ctx context.Context) (int64, *time.Time, error)
	Get(ctx context.Context, id string) (*domain.Movie, error)
	Create(ctx context.Context, in services.MovieInput) (*domain.Movie, error)
	Update(ctx context.Context, id string, in services.MovieInput) (*domain.Movie, error)
	Delete(ctx context.Context, id string) error
}

// GenreService defines the genre operations consumed by HTTP handlers.
type GenreService interface {
	List(ctx context.Context) ([]domain.Genre, error)
	Stats(ctx context.Context) (int64, *time.Time, error)
	Get(ctx context.Context, id string) (*domain.Genre, error)
	Create(ctx context.Context, in services.GenreInput) (*domain.Genre, error)
	Update(ctx context.Context, id string, in services.GenreInput) (*domain.Genre, error)
	Delete(ctx context.Context, id string) error
}

// CourseService exposes the read-only course catalogue.
type CourseService interface {
	List(ctx context.Context) ([]domain.Course, error)
	Get(ctx context.Context, id string) (*domain.Course, error)
}

// IdempotencyStore records the outcome of create requests sent with an
// Idempotency-Key so that retries can be answered without a second insert.
// Retries are detected upstream by middleware.IdempotencyValidator.
type IdempotencyStore interface {
	// Save stores the created resource id and status for (scope, key).
	Save(ctx context.Context, scope, key, resourceID string, status int) error
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for movies, genres and courses.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	movies  MovieService
	genres  GenreService
	courses CourseService
	idem    IdempotencyStore
}

// New constructs a Handlers instance bound to the given services. idem may be
// nil, which disables replay of create requests.
func New(movies MovieService, genres GenreService, courses CourseService, idem IdempotencyStore) *Handlers {
	return &Handlers{movies: movies, genres: genres, courses: courses, idem: idem}
}
