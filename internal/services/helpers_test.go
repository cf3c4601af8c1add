package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-movies-api/internal/domain"
	"github.com/tbourn/go-movies-api/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// sqlRepo forwards to the repo package functions.
type sqlRepo struct{}

func (sqlRepo) CreateGenre(ctx context.Context, db *gorm.DB, name string) (*domain.Genre, error) {
	return repo.CreateGenre(ctx, db, name)
}
func (sqlRepo) ListGenres(ctx context.Context, db *gorm.DB) ([]domain.Genre, error) {
	return repo.ListGenres(ctx, db)
}
func (sqlRepo) GetGenre(ctx context.Context, db *gorm.DB, id string) (*domain.Genre, error) {
	return repo.GetGenre(ctx, db, id)
}
func (sqlRepo) FindGenreByName(ctx context.Context, db *gorm.DB, name, excludeID string) (*domain.Genre, error) {
	return repo.FindGenreByName(ctx, db, name, excludeID)
}
func (sqlRepo) UpdateGenreName(ctx context.Context, db *gorm.DB, id, name string) (*domain.Genre, error) {
	return repo.UpdateGenreName(ctx, db, id, name)
}
func (sqlRepo) DeleteGenre(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeleteGenre(ctx, db, id)
}
func (sqlRepo) GenresStats(ctx context.Context, db *gorm.DB) (int64, *time.Time, error) {
	return repo.GenresStats(ctx, db)
}
func (sqlRepo) CreateMovie(ctx context.Context, db *gorm.DB, m *domain.Movie) error {
	return repo.CreateMovie(ctx, db, m)
}
func (sqlRepo) ListMovies(ctx context.Context, db *gorm.DB) ([]domain.Movie, error) {
	return repo.ListMovies(ctx, db)
}
func (sqlRepo) ListMoviesByGenre(ctx context.Context, db *gorm.DB, genre string) ([]domain.Movie, error) {
	return repo.ListMoviesByGenre(ctx, db, genre)
}
func (sqlRepo) GetMovie(ctx context.Context, db *gorm.DB, id string) (*domain.Movie, error) {
	return repo.GetMovie(ctx, db, id)
}
func (sqlRepo) FindMovieByNaturalKey(ctx context.Context, db *gorm.DB, key string, rel time.Time, excludeID string) (*domain.Movie, error) {
	return repo.FindMovieByNaturalKey(ctx, db, key, rel, excludeID)
}
func (sqlRepo) UpdateMovie(ctx context.Context, db *gorm.DB, id string, m *domain.Movie) (*domain.Movie, error) {
	return repo.UpdateMovie(ctx, db, id, m)
}
func (sqlRepo) DeleteMovie(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeleteMovie(ctx, db, id)
}
func (sqlRepo) MoviesStats(ctx context.Context, db *gorm.DB) (int64, *time.Time, error) {
	return repo.MoviesStats(ctx, db)
}
func (sqlRepo) EnsureGenres(ctx context.Context, db *gorm.DB, names []string) error {
	return repo.EnsureGenres(ctx, db, names)
}
