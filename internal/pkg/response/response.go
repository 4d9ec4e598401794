package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"shareit/internal/pkg/apperr"
)

// Envelope is the uniform error body: a numeric code and a
// human-readable message.
type Envelope struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Code: status, Error: message})
}

func AbortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{Code: status, Error: message})
}

// FromError maps the failure taxonomy to a status code. Unexpected
// errors collapse to a generic message and are logged with full detail.
func FromError(c *gin.Context, log *zerolog.Logger, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		Error(c, http.StatusNotFound, err.Error())
	case apperr.KindForbidden:
		Error(c, http.StatusForbidden, err.Error())
	case apperr.KindValidation:
		Error(c, http.StatusBadRequest, err.Error())
	case apperr.KindConflict:
		Error(c, http.StatusConflict, err.Error())
	default:
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("unhandled error")
		Error(c, http.StatusInternalServerError, "internal server error")
	}
}
