package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"homekeeper/internal/pkg/logger"
	"homekeeper/internal/pkg/response"
)

// InboundToken protects the automation-platform callbacks and the webhook
// log with a static bearer token. An empty token leaves them open.
func InboundToken(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if expected == "" {
			c.Next()
			return
		}

		token, ok := bearerToken(c)
		if !ok {
			logAuthFailure(c, http.StatusUnauthorized, "missing_auth")
			response.Error(c, http.StatusUnauthorized, "Authorization header is required")
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
			logAuthFailure(c, http.StatusForbidden, "invalid_token")
			response.Error(c, http.StatusForbidden, "Invalid webhook token")
			c.Abort()
			return
		}

		c.Next()
	}
}

func logAuthFailure(c *gin.Context, status int, reason string) {
	logger.Warn(c.Request.Context(), "Inbound webhook auth failed",
		"status", status,
		"path", c.Request.URL.Path,
		"client_ip", c.ClientIP(),
		"reason", reason,
	)
}
