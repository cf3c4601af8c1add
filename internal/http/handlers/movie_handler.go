// Movie HTTP handlers.
//
// This file exposes REST endpoints for movie resources:
//   - GET    /movies                   (list, weak ETag support)
//   - POST   /movies                   (create, Idempotency-Key support)
//   - GET    /movies/{id}              (read)
//   - PUT    /movies/{id}              (replace)
//   - DELETE /movies/{id}              (delete)
//   - GET    /movies/genre/{genreName} (search by genre)
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-movies-api/internal/apierr"
	"github.com/tbourn/go-movies-api/internal/services"
)

// ListMovies godoc
// @ID          listMovies
// @Summary     List movies
// @Description Returns every movie, most recent release first. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Movies
// @Produce     json
//
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"  example(W/\"movies:3:1700000000000000000\")
//
// @Success     200  {array}   domain.Movie
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string  "Not Modified"
// @Failure     404  {object}  handlers.ErrorBody  "Movies not found"
// @Failure     500  {object}  handlers.ErrorBody  "Internal error"
// @Router      /movies [get]
func (h *Handlers) ListMovies(c *gin.Context) {
	ctx := c.Request.Context()

	etag := listETag(ctx, "movies", h.movies.Stats)
	if notModified(c, etag) {
		return
	}

	movies, err := h.movies.List(ctx)
	if err != nil {
		failFrom(c, err)
		return
	}
	if len(movies) == 0 {
		apierr.Init(c, apierr.StatusNotFound, apierr.MsgMoviesListNotFound)
		return
	}
	if etag != "" {
		c.Header("ETag", etag)
	}
	ok(c, http.StatusOK, movies)
}

// CreateMovie godoc
// @ID          createMovie
// @Summary     Create a movie
// @Description Creates a movie. Genres that do not exist yet are created too. Supports idempotency via the Idempotency-Key header (same key returns the same movie).
// @Tags        Movies
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string                 false  "Idempotency key for safe retries"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       body             body    services.MovieInput    true   "Movie payload"
//
// @Success     201  {object}  domain.Movie
// @Failure     400  {object}  handlers.ErrorBody  "Validation or syntax error"
// @Failure     409  {object}  handlers.ErrorBody  "Movie already exists"
// @Failure     500  {object}  handlers.ErrorBody  "Internal error"
// @Router      /movies [post]
func (h *Handlers) CreateMovie(c *gin.Context) {
	if h.replayCreate(c, func(ctx context.Context, id string) (any, error) {
		return h.movies.Get(ctx, id)
	}) {
		return
	}

	var in services.MovieInput
	if !bindJSON(c, "Movie", &in) {
		return
	}

	m, err := h.movies.Create(c.Request.Context(), in)
	if err != nil {
		failFrom(c, err)
		return
	}
	h.rememberCreate(c, m.ID, http.StatusCreated)
	ok(c, http.StatusCreated, m)
}

// GetMovie godoc
// @ID          getMovie
// @Summary     Get a movie
// @Tags        Movies
// @Produce     json
//
// @Param       id  path  string  true  "Movie ID (UUID)"  format(uuid)
//
// @Success     200  {object}  domain.Movie
// @Failure     404  {object}  handlers.ErrorBody  "Movie not found"
// @Failure     500  {object}  handlers.ErrorBody  "Internal error"
// @Router      /movies/{id} [get]
func (h *Handlers) GetMovie(c *gin.Context) {
	m, err := h.movies.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failFrom(c, err)
		return
	}
	ok(c, http.StatusOK, m)
}

// UpdateMovie godoc
// @ID          updateMovie
// @Summary     Update a movie
// @Description Replaces the editable fields of a movie. A movie never conflicts with itself.
// @Tags        Movies
// @Accept      json
// @Produce     json
//
// @Param       id    path  string               true  "Movie ID (UUID)"  format(uuid)
// @Param       body  body  services.MovieInput  true  "Movie payload"
//
// @Success     200  {object}  domain.Movie
// @Failure     400  {object}  handlers.ErrorBody  "Validation or syntax error"
// @Failure     404  {object}  handlers.ErrorBody  "Movie not found"
// @Failure     409  {object}  handlers.ErrorBody  "Movie already exists"
// @Failure     500  {object}  handlers.ErrorBody  "Internal error"
// @Router      /movies/{id} [put]
func (h *Handlers) UpdateMovie(c *gin.Context) {
	var in services.MovieInput
	if !bindJSON(c, "Movie", &in) {
		return
	}

	m, err := h.movies.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		failFrom(c, err)
		return
	}
	ok(c, http.StatusOK, m)
}

// DeleteMovie godoc
// @ID          deleteMovie
// @Summary     Delete a movie
// @Tags        Movies
//
// @Param       id  path  string  true  "Movie ID (UUID)"  format(uuid)
//
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorBody  "Movie not found"
// @Failure     500  {object}  handlers.ErrorBody  "Internal error"
// @Router      /movies/{id} [delete]
func (h *Handlers) DeleteMovie(c *gin.Context) {
	if err := h.movies.Delete(c.Request.Context(), c.Param("id")); err != nil {
		failFrom(c, err)
		return
	}
	noContent(c)
}

// ListMoviesByGenre godoc
// @ID          listMoviesByGenre
// @Summary     List movies of a genre
// @Description Genre names are matched after trimming and lowercasing.
// @Tags        Movies
// @Produce     json
//
// @Param       genreName  path  string  true  "Genre name"  example(action)
//
// @Success     200  {array}   domain.Movie
// @Failure     404  {object}  handlers.ErrorBody  "Movies not found"
// @Failure     500  {object}  handlers.ErrorBody  "Internal error"
// @Router      /movies/genre/{genreName} [get]
func (h *Handlers) ListMoviesByGenre(c *gin.Context) {
	movies, err := h.movies.ListByGenre(c.Request.Context(), c.Param("genreName"))
	if err != nil {
		failFrom(c, err)
		return
	}
	if len(movies) == 0 {
		apierr.Init(c, apierr.StatusNotFound, apierr.MsgMoviesListNotFound)
		return
	}
	ok(c, http.StatusOK, movies)
}
