package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-movies-api/internal/apierr"
)

// HealthMessage is the body of a successful health check.
const HealthMessage = "The server is running"

// HealthCheck godoc
// @ID          healthCheck
// @Summary     Liveness probe
// @Tags        Status
// @Produce     json
// @Success     200  {object}  handlers.StatusResponse
// @Router      /health-check [get]
func HealthCheck(c *gin.Context) {
	ok(c, http.StatusOK, StatusResponse{Status: HealthMessage})
}

// Redirect returns a handler answering 302 Found with the given location.
func Redirect(location string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Redirect(apierr.StatusFound, location)
	}
}

// PageNotFound reports an unmatched route, whatever the method.
func PageNotFound(c *gin.Context) {
	apierr.Init(c, apierr.StatusNotFound, apierr.MsgPageNotFound)
}
