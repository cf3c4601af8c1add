package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-movies-api/internal/apierr"
	"github.com/tbourn/go-movies-api/internal/domain"
	"github.com/tbourn/go-movies-api/internal/http/middleware"
	"github.com/tbourn/go-movies-api/internal/repo"
	"github.com/tbourn/go-movies-api/internal/services"
)

// ---------- flexible service stubs ----------

type stubMovieSvc struct {
	list        func(context.Context) ([]domain.Movie, error)
	listByGenre func(context.Context, string) ([]domain.Movie, error)
	stats       func(context.Context) (int64, *time.Time, error)
	get         func(context.Context, string) (*domain.Movie, error)
	create      func(context.Context, services.MovieInput) (*domain.Movie, error)
	update      func(context.Context, string, services.MovieInput) (*domain.Movie, error)
	del         func(context.Context, string) error
}

func (s stubMovieSvc) List(ctx context.Context) ([]domain.Movie, error) {
	if s.list != nil {
		return s.list(ctx)
	}
	return nil, nil
}

func (s stubMovieSvc) ListByGenre(ctx context.Context, g string) ([]domain.Movie, error) {
	if s.listByGenre != nil {
		return s.listByGenre(ctx, g)
	}
	return nil, nil
}

func (s stubMovieSvc) Stats(ctx context.Context) (int64, *time.Time, error) {
	if s.stats != nil {
		return s.stats(ctx)
	}
	return 0, nil, nil
}

func (s stubMovieSvc) Get(ctx context.Context, id string) (*domain.Movie, error) {
	if s.get != nil {
		return s.get(ctx, id)
	}
	return nil, services.ErrMovieNotFound
}

func (s stubMovieSvc) Create(ctx context.Context, in services.MovieInput) (*domain.Movie, error) {
	if s.create != nil {
		return s.create(ctx, in)
	}
	return &domain.Movie{ID: "m-1", Title: in.Title}, nil
}

func (s stubMovieSvc) Update(ctx context.Context, id string, in services.MovieInput) (*domain.Movie, error) {
	if s.update != nil {
		return s.update(ctx, id, in)
	}
	return &domain.Movie{ID: id, Title: in.Title}, nil
}

func (s stubMovieSvc) Delete(ctx context.Context, id string) error {
	if s.del != nil {
		return s.del(ctx, id)
	}
	return nil
}

type stubGenreSvc struct {
	list   func(context.Context) ([]domain.Genre, error)
	stats  func(context.Context) (int64, *time.Time, error)
	get    func(context.Context, string) (*domain.Genre, error)
	create func(context.Context, services.GenreInput) (*domain.Genre, error)
	update func(context.Context, string, services.GenreInput) (*domain.Genre, error)
	del    func(context.Context, string) error
}

func (s stubGenreSvc) List(ctx context.Context) ([]domain.Genre, error) {
	if s.list != nil {
		return s.list(ctx)
	}
	return nil, nil
}

func (s stubGenreSvc) Stats(ctx context.Context) (int64, *time.Time, error) {
	if s.stats != nil {
		return s.stats(ctx)
	}
	return 0, nil, nil
}

func (s stubGenreSvc) Get(ctx context.Context, id string) (*domain.Genre, error) {
	if s.get != nil {
		return s.get(ctx, id)
	}
	return nil, services.ErrGenreNotFound
}

func (s stubGenreSvc) Create(ctx context.Context, in services.GenreInput) (*domain.Genre, error) {
	if s.create != nil {
		return s.create(ctx, in)
	}
	return &domain.Genre{ID: "g-1", Name: in.Name}, nil
}

func (s stubGenreSvc) Update(ctx context.Context, id string, in services.GenreInput) (*domain.Genre, error) {
	if s.update != nil {
		return s.update(ctx, id, in)
	}
	return &domain.Genre{ID: id, Name: in.Name}, nil
}

func (s stubGenreSvc) Delete(ctx context.Context, id string) error {
	if s.del != nil {
		return s.del(ctx, id)
	}
	return nil
}

// memIdem is an in-memory IdempotencyStore. Its Lookup feeds the
// idempotency middleware in newEngine.
type memIdem struct {
	recs    map[string]domain.Idempotency
	saveErr error
	lookups int
}

func newMemIdem() *memIdem { return &memIdem{recs: map[string]domain.Idempotency{}} }

func (m *memIdem) Lookup(_ context.Context, scope, key string, _ time.Time) (*domain.Idempotency, error) {
	m.lookups++
	rec, found := m.recs[scope+"|"+key]
	if !found {
		return nil, repo.ErrNotFound
	}
	return &rec, nil
}

func (m *memIdem) Save(_ context.Context, scope, key, resourceID string, status int) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.recs[scope+"|"+key] = domain.Idempotency{Scope: scope, Key: key, ResourceID: resourceID, Status: status}
	return nil
}

// ---------- engine + request helpers ----------

// newEngine mounts h the way the router does, behind the terminal error
// handler and the idempotency validator.
func newEngine(t *testing.T, h *Handlers) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler(apierr.EnvelopeKeyed))
	var lookup middleware.IdempotencyLookup
	if m, ok := h.idem.(*memIdem); ok {
		lookup = m.Lookup
	}
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{}, lookup))
	r.NoRoute(PageNotFound)

	api := r.Group("/api")
	api.GET("/movies", h.ListMovies)
	api.POST("/movies", h.CreateMovie)
	api.GET("/movies/:id", h.GetMovie)
	api.PUT("/movies/:id", h.UpdateMovie)
	api.DELETE("/movies/:id", h.DeleteMovie)
	api.GET("/movies/genre/:genreName", h.ListMoviesByGenre)

	api.GET("/genres", h.ListGenres)
	api.POST("/genres", h.CreateGenre)
	api.GET("/genres/:id", h.GetGenre)
	api.PUT("/genres/:id", h.UpdateGenre)
	api.DELETE("/genres/:id", h.DeleteGenre)

	api.GET("/courses", h.ListCourses)
	api.GET("/courses/:id", h.GetCourse)

	r.GET("/health-check", HealthCheck)
	return r
}

func do(r http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	if rdr != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// errorDetail decodes a keyed error body and returns its single entry.
func errorDetail(t *testing.T, w *httptest.ResponseRecorder) (string, apierr.Detail) {
	t.Helper()
	var body map[string]apierr.Detail
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	if len(body) != 1 {
		t.Fatalf("want exactly one key, got %v", body)
	}
	for k, v := range body {
		return k, v
	}
	return "", apierr.Detail{}
}

func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, name, msg string) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status=%d want %d body=%s", w.Code, status, w.Body.String())
	}
	gotName, d := errorDetail(t, w)
	if gotName != name || d.Status != status || d.Message != msg {
		t.Fatalf("error = %s %+v, want %s {%d %q}", gotName, d, name, status, msg)
	}
}

var errBoom = errors.New("db down")
