package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"homekeeper/internal/pkg/apperr"
	"homekeeper/internal/pkg/logger"
)

// Success writes {"success": true, ...fields}.
func Success(c *gin.Context, statusCode int, fields gin.H) {
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// Error writes {"success": false, "error": message}.
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   message,
	})
}

// FromError maps an apperr kind to its HTTP status. The kind itself never
// reaches the wire; upstream causes are logged, not rendered.
func FromError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		Error(c, http.StatusBadRequest, apperr.Message(err, "Invalid request"))
	case errors.Is(err, apperr.ErrAuth):
		Error(c, http.StatusUnauthorized, apperr.Message(err, "Unauthorized"))
	case errors.Is(err, apperr.ErrNotFound):
		Error(c, http.StatusNotFound, apperr.Message(err, "Not found"))
	default:
		logger.Error(c.Request.Context(), fallback, "error", err)
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, apperr.Message(err, fallback))
	}
}
