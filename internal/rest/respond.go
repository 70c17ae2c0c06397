package rest

import (
	"errors"
	"net/http"

	"github.com/dfryer1193/onewheel-blog/api"
	"github.com/dfryer1193/onewheel-blog/blog/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// respond writes page for browsers and payload for clients that ask for JSON.
func respond(c *gin.Context, status int, page string, data gin.H, payload any) {
	switch c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) {
	case gin.MIMEJSON:
		c.JSON(status, payload)
	default:
		c.HTML(status, page, data)
	}
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrPostNotFound):
		return http.StatusNotFound, "Not found!"
	case errors.Is(err, domain.ErrMissingParameter), errors.Is(err, domain.ErrInvalidIntent):
		return http.StatusBadRequest, "Bad request!"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized!"
	default:
		return http.StatusInternalServerError, "Error!"
	}
}

// abortWithError maps err onto a status page; unexpected errors are logged, never shown.
func abortWithError(c *gin.Context, err error) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
	}
	_ = c.Error(err)

	respond(c, status, "error.html", gin.H{"PageTitle": message, "Message": message}, api.Error{Error: message})
	c.Abort()
}
