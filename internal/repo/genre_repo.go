// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Genre model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions. They follow the "thin repository"
// approach: no business rules, only persistence and query composition.
// Callers pass names already normalized (trimmed, lowercased).
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-movies-api/internal/domain"
)

// CreateGenre inserts a genre with a fresh UUID and UTC timestamps.
func CreateGenre(ctx context.Context, db *gorm.DB, name string) (*domain.Genre, error) {
	now := time.Now().UTC()
	g := &domain.Genre{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.WithContext(ctx).Create(g).Error; err != nil {
		return nil, err
	}
	return g, nil
}

// ListGenres returns every genre ordered by name ascending.
func ListGenres(ctx context.Context, db *gorm.DB) ([]domain.Genre, error) {
	var out []domain.Genre
	err := db.WithContext(ctx).Order("name asc").Find(&out).Error
	return out, err
}

// GetGenre fetches a genre by id, or ErrNotFound.
func GetGenre(ctx context.Context, db *gorm.DB, id string) (*domain.Genre, error) {
	var g domain.Genre
	if err := db.WithContext(ctx).Where("id = ?", id).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

// FindGenreByName returns the genre with the given name, ignoring the record
// identified by excludeID (pass "" to exclude nothing). ErrNotFound when none.
func FindGenreByName(ctx context.Context, db *gorm.DB, name, excludeID string) (*domain.Genre, error) {
	q := db.WithContext(ctx).Where("name = ?", name)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var g domain.Genre
	if err := q.First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

// UpdateGenreName renames a genre and returns the updated row. ErrNotFound
// when no row has the id.
func UpdateGenreName(ctx context.Context, db *gorm.DB, id, name string) (*domain.Genre, error) {
	res := db.WithContext(ctx).
		Model(&domain.Genre{}).
		Where("id = ?", id).
		Updates(map[string]any{"name": name, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return GetGenre(ctx, db, id)
}

// DeleteGenre removes a genre permanently. ErrNotFound when no row has the id.
func DeleteGenre(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Genre{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureGenres inserts any of names that does not exist yet. Existing names
// are left untouched.
func EnsureGenres(ctx context.Context, db *gorm.DB, names []string) error {
	if len(names) == 0 {
		return nil
	}
	now := time.Now().UTC()
	rows := make([]domain.Genre, 0, len(names))
	for _, n := range names {
		rows = append(rows, domain.Genre{ID: uuid.NewString(), Name: n, CreatedAt: now, UpdatedAt: now})
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&rows).Error
}
