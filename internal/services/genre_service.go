// Package services – GenreService
//
// This file implements the GenreService, which manages the genre catalogue.
// Names are normalized (trimmed, Unicode-lowercased) before they are checked
// or stored, and the duplicate check runs in the same transaction as the
// write. The unique index on genres.name is the final guard; a violation it
// reports is mapped to ErrGenreConflict as well.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-movies-api/internal/domain"
	"github.com/tbourn/go-movies-api/internal/repo"
)

// GenreRepo defines the repository contract required by GenreService.
type GenreRepo interface {
	// CreateGenre inserts a genre with the given normalized name.
	CreateGenre(ctx context.Context, db *gorm.DB, name string) (*domain.Genre, error)
	// ListGenres returns every genre ordered by name.
	ListGenres(ctx context.Context, db *gorm.DB) ([]domain.Genre, error)
	// GetGenre fetches a genre by id.
	GetGenre(ctx context.Context, db *gorm.DB, id string) (*domain.Genre, error)
	// FindGenreByName looks a genre up by name, ignoring excludeID.
	FindGenreByName(ctx context.Context, db *gorm.DB, name, excludeID string) (*domain.Genre, error)
	// UpdateGenreName renames a genre and returns the stored row.
	UpdateGenreName(ctx context.Context, db *gorm.DB, id, name string) (*domain.Genre, error)
	// DeleteGenre removes a genre.
	DeleteGenre(ctx context.Context, db *gorm.DB, id string) error
	// GenresStats returns the row count and latest update time.
	GenresStats(ctx context.Context, db *gorm.DB) (int64, *time.Time, error)
}

// GenreService provides genre CRUD with name normalization and duplicate
// detection.
type GenreService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the genre repository used by this service.
	Repo GenreRepo
}

// NewGenreService constructs a GenreService.
func NewGenreService(db *gorm.DB, r GenreRepo) *GenreService {
	return &GenreService{DB: db, Repo: r}
}

// List returns all genres ordered by name ascending.
func (s *GenreService) List(ctx context.Context) ([]domain.Genre, error) {
	return s.Repo.ListGenres(ctx, s.DB)
}

// Stats returns the number of genres and their latest update time.
func (s *GenreService) Stats(ctx context.Context) (int64, *time.Time, error) {
	return s.Repo.GenresStats(ctx, s.DB)
}

// Get returns the genre with id, or ErrGenreNotFound.
func (s *GenreService) Get(ctx context.Context, id string) (*domain.Genre, error) {
	if !isUUID(id) {
		return nil, ErrGenreNotFound
	}
	g, err := s.Repo.GetGenre(ctx, s.DB, id)
	if err != nil {
		return nil, mapNotFound(err, ErrGenreNotFound)
	}
	return g, nil
}

// Create normalizes and validates in, then inserts it. Returns a
// *ValidationError for invalid input and ErrGenreConflict when the normalized
// name is taken.
func (s *GenreService) Create(ctx context.Context, in GenreInput) (*domain.Genre, error) {
	in.Name = NormalizeGenreName(in.Name)
	if err := check("Genre", in).orNil(); err != nil {
		return nil, err
	}

	var out *domain.Genre
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ensureNameFree(ctx, tx, in.Name, ""); err != nil {
			return err
		}
		g, err := s.Repo.CreateGenre(ctx, tx, in.Name)
		if err != nil {
			return mapDuplicate(err, ErrGenreConflict)
		}
		out = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update renames the genre with id. The genre's own name never counts as a
// conflict.
func (s *GenreService) Update(ctx context.Context, id string, in GenreInput) (*domain.Genre, error) {
	if !isUUID(id) {
		return nil, ErrGenreNotFound
	}
	in.Name = NormalizeGenreName(in.Name)
	if err := check("Genre", in).orNil(); err != nil {
		return nil, err
	}

	var out *domain.Genre
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.Repo.GetGenre(ctx, tx, id); err != nil {
			return mapNotFound(err, ErrGenreNotFound)
		}
		if err := s.ensureNameFree(ctx, tx, in.Name, id); err != nil {
			return err
		}
		g, err := s.Repo.UpdateGenreName(ctx, tx, id, in.Name)
		if err != nil {
			return mapDuplicate(mapNotFound(err, ErrGenreNotFound), ErrGenreConflict)
		}
		out = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the genre with id, or returns ErrGenreNotFound.
func (s *GenreService) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return ErrGenreNotFound
	}
	return mapNotFound(s.Repo.DeleteGenre(ctx, s.DB, id), ErrGenreNotFound)
}

func (s *GenreService) ensureNameFree(ctx context.Context, tx *gorm.DB, name, excludeID string) error {
	_, err := s.Repo.FindGenreByName(ctx, tx, name, excludeID)
	switch {
	case err == nil:
		return ErrGenreConflict
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	default:
		return err
	}
}

// isUUID reports whether id is a well-formed UUID. Other ids can never match
// a stored record.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// mapNotFound replaces a record-not-found error with sentinel.
func mapNotFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// mapDuplicate replaces a unique-constraint violation with sentinel.
func mapDuplicate(err, sentinel error) error {
	if repo.IsDuplicate(err) {
		return sentinel
	}
	return err
}
