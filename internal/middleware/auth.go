package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"homekeeper/internal/identity"
	"homekeeper/internal/pkg/logger"
	"homekeeper/internal/pkg/response"
)

const UserIDKey = "user_id"

// Auth resolves the bearer token to a user id and stores it under
// UserIDKey. Requests without a valid token never reach the handler.
func Auth(verifier identity.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}

		userID, err := verifier.Verify(c.Request.Context(), token)
		if err != nil || userID == "" {
			logger.Debug(c.Request.Context(), "Bearer token rejected", "error", err)
			response.Error(c, http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Request = c.Request.WithContext(logger.With(c.Request.Context(), "user_id", userID))
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
