// Package services – MovieService
//
// This file implements the MovieService. A movie's natural key is its
// case-insensitive title plus its release date; the duplicate check, the
// creation of any genres the movie references and the write all run in one
// transaction, and the unique index on (title_key, release_date) backs the
// check against concurrent writers.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-movies-api/internal/apierr"
	"github.com/tbourn/go-movies-api/internal/domain"
)

// MovieRepo defines the repository contract required by MovieService.
type MovieRepo interface {
	CreateMovie(ctx context.Context, db *gorm.DB, m *domain.Movie) error
	ListMovies(ctx context.Context, db *gorm.DB) ([]domain.Movie, error)
	ListMoviesByGenre(ctx context.Context, db *gorm.DB, genre string) ([]domain.Movie, error)
	GetMovie(ctx context.Context, db *gorm.DB, id string) (*domain.Movie, error)
	FindMovieByNaturalKey(ctx context.Context, db *gorm.DB, titleKey string, releaseDate time.Time, excludeID string) (*domain.Movie, error)
	UpdateMovie(ctx context.Context, db *gorm.DB, id string, m *domain.Movie) (*domain.Movie, error)
	DeleteMovie(ctx context.Context, db *gorm.DB, id string) error
	MoviesStats(ctx context.Context, db *gorm.DB) (int64, *time.Time, error)
	// EnsureGenres inserts the genre names that do not exist yet.
	EnsureGenres(ctx context.Context, db *gorm.DB, names []string) error
}

// MovieService provides movie CRUD, genre search and duplicate detection.
type MovieService struct {
	DB   *gorm.DB
	Repo MovieRepo
}

// NewMovieService constructs a MovieService.
func NewMovieService(db *gorm.DB, r MovieRepo) *MovieService {
	return &MovieService{DB: db, Repo: r}
}

// List returns all movies, most recent release first.
func (s *MovieService) List(ctx context.Context) ([]domain.Movie, error) {
	return s.Repo.ListMovies(ctx, s.DB)
}

// ListByGenre returns the movies tagged with genre (normalized like genre
// names), most recent release first.
func (s *MovieService) ListByGenre(ctx context.Context, genre string) ([]domain.Movie, error) {
	name := NormalizeGenreName(genre)
	if name == "" {
		return []domain.Movie{}, nil
	}
	return s.Repo.ListMoviesByGenre(ctx, s.DB, name)
}

// Stats returns the number of movies and their latest update time.
func (s *MovieService) Stats(ctx context.Context) (int64, *time.Time, error) {
	return s.Repo.MoviesStats(ctx, s.DB)
}

// Get returns the movie with id, or ErrMovieNotFound.
func (s *MovieService) Get(ctx context.Context, id string) (*domain.Movie, error) {
	if !isUUID(id) {
		return nil, ErrMovieNotFound
	}
	m, err := s.Repo.GetMovie(ctx, s.DB, id)
	if err != nil {
		return nil, mapNotFound(err, ErrMovieNotFound)
	}
	return m, nil
}

// Create validates in and stores it as a new movie. Missing genres are
// created on the way. Returns a *ValidationError for invalid input and
// ErrMovieConflict when the natural key is taken.
func (s *MovieService) Create(ctx context.Context, in MovieInput) (*domain.Movie, error) {
	m, err := buildMovie(in)
	if err != nil {
		return nil, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ensureKeyFree(ctx, tx, m, ""); err != nil {
			return err
		}
		if err := s.Repo.EnsureGenres(ctx, tx, m.Genre); err != nil {
			return err
		}
		return mapDuplicate(s.Repo.CreateMovie(ctx, tx, m), ErrMovieConflict)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Update replaces the editable fields of the movie with id. The movie's own
// natural key never counts as a conflict.
func (s *MovieService) Update(ctx context.Context, id string, in MovieInput) (*domain.Movie, error) {
	if !isUUID(id) {
		return nil, ErrMovieNotFound
	}
	m, err := buildMovie(in)
	if err != nil {
		return nil, err
	}

	var out *domain.Movie
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.Repo.GetMovie(ctx, tx, id); err != nil {
			return mapNotFound(err, ErrMovieNotFound)
		}
		if err := s.ensureKeyFree(ctx, tx, m, id); err != nil {
			return err
		}
		if err := s.Repo.EnsureGenres(ctx, tx, m.Genre); err != nil {
			return err
		}
		stored, err := s.Repo.UpdateMovie(ctx, tx, id, m)
		if err != nil {
			return mapDuplicate(mapNotFound(err, ErrMovieNotFound), ErrMovieConflict)
		}
		out = stored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the movie with id, or returns ErrMovieNotFound.
func (s *MovieService) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return ErrMovieNotFound
	}
	return mapNotFound(s.Repo.DeleteMovie(ctx, s.DB, id), ErrMovieNotFound)
}

func (s *MovieService) ensureKeyFree(ctx context.Context, tx *gorm.DB, m *domain.Movie, excludeID string) error {
	_, err := s.Repo.FindMovieByNaturalKey(ctx, tx, m.TitleKey, m.ReleaseDate, excludeID)
	switch {
	case err == nil:
		return ErrMovieConflict
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	default:
		return err
	}
}

// buildMovie normalizes and validates in and turns it into a domain.Movie
// without id or timestamps.
func buildMovie(in MovieInput) (*domain.Movie, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.ReleaseDate = strings.TrimSpace(in.ReleaseDate)
	in.Genre = normalizeGenres(in.Genre)

	verr := check("Movie", in)
	var rel time.Time
	if in.ReleaseDate != "" {
		t, ok := parseReleaseDate(in.ReleaseDate)
		if !ok {
			verr.add("releaseDate", apierr.ValMovieReleaseDateFormat)
		}
		rel = t
	}
	key := titleKey(in.Title)
	if !titleKeyFits(key) && !verr.has("title", apierr.ValMovieTitleLength) {
		verr.add("title", apierr.ValMovieTitleLength)
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	return &domain.Movie{
		Title:       in.Title,
		TitleKey:    key,
		Description: in.Description,
		ReleaseDate: rel,
		Genre:       in.Genre,
	}, nil
}
