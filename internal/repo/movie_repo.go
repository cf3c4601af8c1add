// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Movie model.
//
// Error semantics:
//   - When a movie is not found, functions return ErrNotFound.
//   - Unique violations on (title_key, release_date) are returned raw; the
//     service layer detects them with IsDuplicate.
package repo

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-movies-api/internal/domain"
)

// movieColumns are the user-editable columns written by UpdateMovie.
var movieColumns = []string{"title", "title_key", "description", "release_date", "genre", "updated_at"}

// CreateMovie inserts m, assigning a UUID and UTC timestamps.
func CreateMovie(ctx context.Context, db *gorm.DB, m *domain.Movie) error {
	now := time.Now().UTC()
	m.ID = uuid.NewString()
	m.CreatedAt = now
	m.UpdatedAt = now
	return db.WithContext(ctx).Create(m).Error
}

// ListMovies returns every movie, most recent release first.
func ListMovies(ctx context.Context, db *gorm.DB) ([]domain.Movie, error) {
	var out []domain.Movie
	err := db.WithContext(ctx).Order("release_date desc, id asc").Find(&out).Error
	return out, err
}

// ListMoviesByGenre returns movies tagged with genre, most recent release
// first. The genre column holds a JSON array, so the match is made on the
// JSON-encoded element (quotes included) to avoid prefix hits, with LIKE
// wildcards escaped.
func ListMoviesByGenre(ctx context.Context, db *gorm.DB, genre string) ([]domain.Movie, error) {
	enc, err := json.Marshal(genre)
	if err != nil {
		return nil, err
	}
	var out []domain.Movie
	err = db.WithContext(ctx).
		Where(`genre LIKE ? ESCAPE '\'`, "%"+escapeLike(string(enc))+"%").
		Order("release_date desc, id asc").
		Find(&out).Error
	return out, err
}

// GetMovie fetches a movie by id, or ErrNotFound.
func GetMovie(ctx context.Context, db *gorm.DB, id string) (*domain.Movie, error) {
	var m domain.Movie
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// FindMovieByNaturalKey returns the movie with the given lowercased title and
// release date, ignoring the record identified by excludeID ("" for none).
func FindMovieByNaturalKey(ctx context.Context, db *gorm.DB, titleKey string, releaseDate time.Time, excludeID string) (*domain.Movie, error) {
	q := db.WithContext(ctx).Where("title_key = ? AND release_date = ?", titleKey, releaseDate)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var m domain.Movie
	if err := q.First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateMovie overwrites the editable columns of the movie identified by id
// with the values in m and returns the stored row. ErrNotFound when no row
// has the id.
func UpdateMovie(ctx context.Context, db *gorm.DB, id string, m *domain.Movie) (*domain.Movie, error) {
	m.UpdatedAt = time.Now().UTC()
	res := db.WithContext(ctx).
		Model(&domain.Movie{}).
		Where("id = ?", id).
		Select(movieColumns).
		Updates(m)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return GetMovie(ctx, db, id)
}

// DeleteMovie removes a movie permanently. ErrNotFound when no row has the id.
func DeleteMovie(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Movie{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
