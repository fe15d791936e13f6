package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextUserKey is where the middleware stores the authenticated DNI.
const ContextUserKey = "user_dni"

// Middleware validates the bearer token and stores the caller's DNI in the
// gin context. Everything behind it can trust that identity.
func Middleware(tokens *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			// Websocket clients can't set headers from the browser; accept
			// the token as a query parameter there.
			header = "Bearer " + c.Query("token")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := tokens.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authorized or invalid token"})
			return
		}

		c.Set(ContextUserKey, claims.DNI)
		c.Next()
	}
}

// UserFromContext returns the authenticated DNI set by Middleware.
func UserFromContext(c *gin.Context) string {
	return c.GetString(ContextUserKey)
}
