package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kmwangi/netbill-golang/internal/auth"
	"github.com/kmwangi/netbill-golang/internal/models"
)

// AuthMiddleware validates the bearer token and stashes the caller's
// identity on the context for the handlers.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format (must be Bearer)"})
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("subject", claims.Subject)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// AdminMiddleware allows only console staff through. It must run after
// AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// SubscriberMiddleware allows only portal logins through.
func SubscriberMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != models.RoleSubscriber {
			c.JSON(http.StatusForbidden, gin.H{"error": "Subscriber access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
