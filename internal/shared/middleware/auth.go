package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bookshelf-backend/pkg/jwt"
)

const (
	// ContextProfileID and ContextUsername are the keys auth sets on the
	// request context.
	ContextProfileID = "profileID"
	ContextUsername  = "username"
)

// Auth validates the Bearer token and exposes the caller identity to
// downstream handlers.
func Auth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := manager.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(ContextProfileID, claims.ProfileID)
		c.Set(ContextUsername, claims.Username)
		c.Next()
	}
}
