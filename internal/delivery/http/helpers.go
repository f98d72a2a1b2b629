package http

import (
	"errors"
	"net/http"

	"mapban/internal/application"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP statuses. Client rejections
// are surfaced verbatim, conflicts are retryable 409s, and anything else
// is an opaque 500 that does get logged.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrInvalidInput),
		errors.Is(err, application.ErrNotYourTurn),
		errors.Is(err, application.ErrUnknownMap),
		errors.Is(err, application.ErrAlreadyBanned),
		errors.Is(err, application.ErrMatchFinished):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, application.ErrTokenInvalid),
		errors.Is(err, application.ErrMatchNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, application.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "retryable": true})
	default:
		h.logger.Error("internal error", "error", err.Error(), "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
