// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, the terminal error handler,
// panic recovery, metrics, CORS, security headers, idempotency, and rate
// limiting.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-movies-api/docs"
	"github.com/tbourn/go-movies-api/internal/config"
	"github.com/tbourn/go-movies-api/internal/domain"
	"github.com/tbourn/go-movies-api/internal/http/handlers"
	"github.com/tbourn/go-movies-api/internal/http/middleware"
	"github.com/tbourn/go-movies-api/internal/repo"
	"github.com/tbourn/go-movies-api/internal/services"
)

// maxBodyBytes caps request bodies on every route.
const maxBodyBytes = 1 << 20

// repoShim adapts the repository free functions to the services.GenreRepo
// and services.MovieRepo interfaces. This keeps services decoupled from the
// concrete repo package while reusing existing functions.
type repoShim struct{}

func (repoShim) CreateGenre(ctx context.Context, db *gorm.DB, name string) (*domain.Genre, error) {
	return repo.CreateGenre(ctx, db, name)
}

func (repoShim) ListGenres(ctx context.Context, db *gorm.DB) ([]domain.Genre, error) {
	return repo.ListGenres(ctx, db)
}

func (repoShim) GetGenre(ctx context.Context, db *gorm.DB, id string) (*domain.Genre, error) {
	return repo.GetGenre(ctx, db, id)
}

func (repoShim) FindGenreByName(ctx context.Context, db *gorm.DB, name, excludeID string) (*domain.Genre, error) {
	return repo.FindGenreByName(ctx, db, name, excludeID)
}

func (repoShim) UpdateGenreName(ctx context.Context, db *gorm.DB, id, name string) (*domain.Genre, error) {
	return repo.UpdateGenreName(ctx, db, id, name)
}

func (repoShim) DeleteGenre(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeleteGenre(ctx, db, id)
}

func (repoShim) GenresStats(ctx context.Context, db *gorm.DB) (int64, *time.Time, error) {
	return repo.GenresStats(ctx, db)
}

func (repoShim) CreateMovie(ctx context.Context, db *gorm.DB, m *domain.Movie) error {
	return repo.CreateMovie(ctx, db, m)
}

func (repoShim) ListMovies(ctx context.Context, db *gorm.DB) ([]domain.Movie, error) {
	return repo.ListMovies(ctx, db)
}

func (repoShim) ListMoviesByGenre(ctx context.Context, db *gorm.DB, genre string) ([]domain.Movie, error) {
	return repo.ListMoviesByGenre(ctx, db, genre)
}

func (repoShim) GetMovie(ctx context.Context, db *gorm.DB, id string) (*domain.Movie, error) {
	return repo.GetMovie(ctx, db, id)
}

func (repoShim) FindMovieByNaturalKey(ctx context.Context, db *gorm.DB, titleKey string, releaseDate time.Time, excludeID string) (*domain.Movie, error) {
	return repo.FindMovieByNaturalKey(ctx, db, titleKey, releaseDate, excludeID)
}

func (repoShim) UpdateMovie(ctx context.Context, db *gorm.DB, id string, m *domain.Movie) (*domain.Movie, error) {
	return repo.UpdateMovie(ctx, db, id, m)
}

func (repoShim) DeleteMovie(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeleteMovie(ctx, db, id)
}

func (repoShim) MoviesStats(ctx context.Context, db *gorm.DB) (int64, *time.Time, error) {
	return repo.MoviesStats(ctx, db)
}

func (repoShim) EnsureGenres(ctx context.Context, db *gorm.DB, names []string) error {
	return repo.EnsureGenres(ctx, db, names)
}

// idempotencyStore persists create outcomes in the idempotency table. Lookup
// serves the middleware and Save serves the handlers.
type idempotencyStore struct {
	db  *gorm.DB
	ttl time.Duration
}

func (s idempotencyStore) Lookup(ctx context.Context, scope, key string, now time.Time) (*domain.Idempotency, error) {
	return repo.GetIdempotency(ctx, s.db, scope, key, now)
}

func (s idempotencyStore) Save(ctx context.Context, scope, key, resourceID string, status int) error {
	_, err := repo.CreateIdempotency(ctx, s.db, scope, key, resourceID, status, s.ttl)
	return err
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine.
//
// Middleware order matters. Everything that records the final status
// (logger, metrics) wraps ErrorHandler, which writes failure bodies on the
// way out:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured access logs, request-scoped logger
//  4. Metrics, then the /metrics endpoint itself
//  5. Compression: wraps the writer before any body is written
//  6. ErrorHandler: the single place failure responses are written
//  7. Recovery: panics become 500s on the failure channel
//  8. Body size limiter
//  9. Idempotency validator (before rate limiter to allow bypass on replay)
//  10. Rate limiter (per client IP, bypass on replay)
//  11. CORS and security headers
//
// Method mismatches are not distinguished from unknown paths: any unmatched
// request gets 404 "Page not found".
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = false

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{"X-API-Key"},
	}))
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.ErrorHandler(cfg.ErrorEnvelope))
	r.Use(middleware.Recovery())
	r.Use(limitBody(maxBodyBytes))

	idem := idempotencyStore{db: db, ttl: cfg.IdempotencyTTL}
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{MaxLen: 200}, idem.Lookup))

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIP())
	r.Use(rl.Handler())

	r.Use(corsMiddleware(cfg.CORS))
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		EnablePolicy: true,
	}))

	r.NoRoute(handlers.PageNotFound)

	// Dependency injection: services <- repo/db
	movieSvc := services.NewMovieService(db, repoShim{})
	genreSvc := services.NewGenreService(db, repoShim{})
	h := handlers.New(movieSvc, genreSvc, services.NewCourseCatalog(), idem)

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
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
	}

	r.GET("/", handlers.Redirect(joinPath(cfg.APIBasePath, "/movies")))
	r.GET("/health-check", handlers.HealthCheck)

	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		r.GET("/api-docs", handlers.Redirect("/api-docs/index.html"))
		r.GET("/api-docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// corsMiddleware returns the CORS posture: allow all origins when none are
// configured, otherwise only the allowlist.
func corsMiddleware(c config.CORSConfig) gin.HandlerFunc {
	base := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "If-None-Match", middleware.HeaderIdempotencyKey},
		ExposeHeaders:    []string{"X-Request-ID", "ETag", "Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(c.AllowedOrigins) == 0 {
		base.AllowAllOrigins = true
	} else {
		base.AllowOrigins = c.AllowedOrigins
	}
	return cors.New(base)
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}

// joinPath appends p to a normalized base path.
func joinPath(base, p string) string {
	if base == "" || base == "/" {
		return p
	}
	return base + p
}
