package services

import (
	"context"
	"errors"
	"testing"
)

func newMovieSvc(t *testing.T) (*MovieService, *GenreService) {
	t.Helper()
	db := newTestDB(t)
	return NewMovieService(db, sqlRepo{}), NewGenreService(db, sqlRepo{})
}

func inception() MovieInput {
	return MovieInput{
		Title:       "Inception",
		Description: "A thief who steals corporate secrets through dreams.",
		ReleaseDate: "2010-07-16",
		Genre:       []string{"Sci-Fi", " Action "},
	}
}

func TestMovieService_Create_AutoCreatesGenres(t *testing.T) {
	movies, genres := newMovieSvc(t)
	ctx := context.Background()

	if _, err := genres.Create(ctx, GenreInput{Name: "action"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	m, err := movies.Create(ctx, inception())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if m.ID == "" || m.Genre[0] != "sci-fi" || m.Genre[1] != "action" {
		t.Fatalf("unexpected movie: %+v", m)
	}

	list, err := genres.List(ctx)
	if err != nil || len(list) != 2 || list[0].Name != "action" || list[1].Name != "sci-fi" {
		t.Fatalf("genres after create: %v %+v", err, list)
	}
}

func TestMovieService_Create_ConflictCaseInsensitive(t *testing.T) {
	movies, _ := newMovieSvc(t)
	ctx := context.Background()

	if _, err := movies.Create(ctx, inception()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	dup := inception()
	dup.Title = "INCEPTION"
	if _, err := movies.Create(ctx, dup); !errors.Is(err, ErrMovieConflict) {
		t.Fatalf("want ErrMovieConflict, got %v", err)
	}

	// Same title, other date is a different movie.
	other := inception()
	other.ReleaseDate = "2011-07-16"
	if _, err := movies.Create(ctx, other); err != nil {
		t.Fatalf("different date should be accepted: %v", err)
	}
}

func TestMovieService_Create_Invalid(t *testing.T) {
	movies, _ := newMovieSvc(t)
	_, err := movies.Create(context.Background(), MovieInput{Title: "x"})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Model != "Movie" || len(verr.Fields) != 3 {
		t.Fatalf("want 3 violations, got %v", err)
	}
}

func TestMovieService_Update(t *testing.T) {
	movies, _ := newMovieSvc(t)
	ctx := context.Background()

	a, err := movies.Create(ctx, inception())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	b := inception()
	b.Title = "Tenet"
	b.ReleaseDate = "2020-08-26"
	bm, err := movies.Create(ctx, b)
	if err != nil {
		t.Fatalf("seed b: %v", err)
	}

	// Own key is not a conflict.
	self := inception()
	self.Description = "Dreams within dreams within dreams."
	got, err := movies.Update(ctx, a.ID, self)
	if err != nil || got.Description != self.Description {
		t.Fatalf("self update: %v %+v", err, got)
	}

	// Taking b's key conflicts.
	steal := inception()
	steal.Title = "tenet"
	steal.ReleaseDate = "2020-08-26"
	if _, err := movies.Update(ctx, a.ID, steal); !errors.Is(err, ErrMovieConflict) {
		t.Fatalf("want ErrMovieConflict, got %v", err)
	}

	stored, err := movies.Get(ctx, bm.ID)
	if err != nil || stored.Title != "Tenet" {
		t.Fatalf("b must be untouched: %v %+v", err, stored)
	}
}

func TestMovieService_NotFound(t *testing.T) {
	movies, _ := newMovieSvc(t)
	ctx := context.Background()
	missing := "3f1c6f0e-1b7c-4c55-9d43-6a0c3b1f2a10"

	for _, id := range []string{missing, "123"} {
		if _, err := movies.Get(ctx, id); !errors.Is(err, ErrMovieNotFound) {
			t.Fatalf("Get(%q): %v", id, err)
		}
		if _, err := movies.Update(ctx, id, inception()); !errors.Is(err, ErrMovieNotFound) {
			t.Fatalf("Update(%q): %v", id, err)
		}
		if err := movies.Delete(ctx, id); !errors.Is(err, ErrMovieNotFound) {
			t.Fatalf("Delete(%q): %v", id, err)
		}
	}
}

func TestMovieService_ListAndByGenre(t *testing.T) {
	movies, _ := newMovieSvc(t)
	ctx := context.Background()

	old := inception()
	old.Title = "Alien"
	old.ReleaseDate = "1979-05-25"
	old.Genre = []string{"Horror", "Sci-Fi"}
	for _, in := range []MovieInput{old, inception()} {
		if _, err := movies.Create(ctx, in); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	list, err := movies.List(ctx)
	if err != nil || len(list) != 2 || list[0].Title != "Inception" {
		t.Fatalf("List: %v %+v", err, list)
	}

	byGenre, err := movies.ListByGenre(ctx, " HORROR ")
	if err != nil || len(byGenre) != 1 || byGenre[0].Title != "Alien" {
		t.Fatalf("ListByGenre: %v %+v", err, byGenre)
	}

	empty, err := movies.ListByGenre(ctx, "  ")
	if err != nil || len(empty) != 0 {
		t.Fatalf("blank genre: %v %+v", err, empty)
	}
}

func TestMovieService_DeleteTwice(t *testing.T) {
	movies, _ := newMovieSvc(t)
	ctx := context.Background()

	m, err := movies.Create(ctx, inception())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := movies.Delete(ctx, m.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := movies.Delete(ctx, m.ID); !errors.Is(err, ErrMovieNotFound) {
		t.Fatalf("second Delete: %v", err)
	}
}
