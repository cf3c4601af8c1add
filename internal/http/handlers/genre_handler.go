// Genre HTTP handlers. They mirror the movie endpoints:
//   - GET    /genres       (list, weak ETag support)
//   - POST   /genres       (create, Idempotency-Key support)
//   - GET    /genres/{id}
//   - PUT    /genres/{id}
//   - DELETE /genres/{id}
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-movies-api/internal/apierr"
	"github.com/tbourn/go-movies-api/internal/services"
)

// ListGenres godoc
// @ID          listGenres
// @Summary     List genres
// @Description Returns every genre sorted by name. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Genres
// @Produce     json
//
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"
//
// @Success     200  {array}   domain.Genre
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string  "Not Modified"
// @Failure     404  {object}  handlers.ErrorBody  "Genres not found"
// @Failure     500  {object}  handlers.ErrorBody  "Internal error"
// @Router      /genres [get]
func (h *Handlers) ListGenres(c *gin.Context) {
	ctx := c.Request.Context()

	etag := listETag(ctx, "genres", h.genres.Stats)
	if notModified(c, etag) {
		return
	}

	genres, err := h.genres.List(ctx)
	if err != nil {
		failFrom(c, err)
		return
	}
	if len(genres) == 0 {
		apierr.Init(c, apierr.StatusNotFound, apierr.MsgGenresListNotFound)
		return
	}
	if etag != "" {
		c.Header("ETag", etag)
	}
	ok(c, http.StatusOK, genres)
}

// CreateGenre godoc
// @ID          createGenre
// @Summary     Create a genre
// @Description The name is stored trimmed and lowercased and must be unique.
// @Tags        Genres
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string               false  "Idempotency key for safe retries"
// @Param       body             body    services.GenreInput  true   "Genre payload"
//
// @Success     201  {object}  domain.Genre
// @Failure     400  {object}  handlers.ErrorBody  "Validation or syntax error"
// @Failure     409  {object}  handlers.ErrorBody  "Genre already exists"
// @Failure     500  {object}  handlers.ErrorBody  "Internal error"
// @Router      /genres [post]
func (h *Handlers) CreateGenre(c *gin.Context) {
	if h.replayCreate(c, func(ctx context.Context, id string) (any, error) {
		return h.genres.Get(ctx, id)
	}) {
		return
	}

	var in services.GenreInput
	if !bindJSON(c, "Genre", &in) {
		return
	}

	g, err := h.genres.Create(c.Request.Context(), in)
	if err != nil {
		failFrom(c, err)
		return
	}
	h.rememberCreate(c, g.ID, http.StatusCreated)
	ok(c, http.StatusCreated, g)
}

// GetGenre godoc
// @ID          getGenre
// @Summary     Get a genre
// @Tags        Genres
// @Produce     json
// @Param       id  path  string  true  "Genre ID (UUID)"  format(uuid)
// @Success     200  {object}  domain.Genre
// @Failure     404  {object}  handlers.ErrorBody  "Genre not found"
// @Router      /genres/{id} [get]
func (h *Handlers) GetGenre(c *gin.Context) {
	g, err := h.genres.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failFrom(c, err)
		return
	}
	ok(c, http.StatusOK, g)
}

// UpdateGenre godoc
// @ID          updateGenre
// @Summary     Rename a genre
// @Tags        Genres
// @Accept      json
// @Produce     json
// @Param       id    path  string               true  "Genre ID (UUID)"  format(uuid)
// @Param       body  body  services.GenreInput  true  "Genre payload"
// @Success     200  {object}  domain.Genre
// @Failure     400  {object}  handlers.ErrorBody  "Validation or syntax error"
// @Failure     404  {object}  handlers.ErrorBody  "Genre not found"
// @Failure     409  {object}  handlers.ErrorBody  "Genre already exists"
// @Router      /genres/{id} [put]
func (h *Handlers) UpdateGenre(c *gin.Context) {
	var in services.GenreInput
	if !bindJSON(c, "Genre", &in) {
		return
	}

	g, err := h.genres.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		failFrom(c, err)
		return
	}
	ok(c, http.StatusOK, g)
}

// DeleteGenre godoc
// @ID          deleteGenre
// @Summary     Delete a genre
// @Tags        Genres
// @Param       id  path  string  true  "Genre ID (UUID)"  format(uuid)
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorBody  "Genre not found"
// @Router      /genres/{id} [delete]
func (h *Handlers) DeleteGenre(c *gin.Context) {
	if err := h.genres.Delete(c.Request.Context(), c.Param("id")); err != nil {
		failFrom(c, err)
		return
	}
	noContent(c)
}
