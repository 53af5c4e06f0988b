package middleware

import (
	"net/http"
	"strings"

	"mealbox/internal/auth"

	"github.com/gin-gonic/gin"
)

const (
	ownerIDKey = "ownerID"
	emailKey   = "operatorEmail"
	roleKey    = "operatorRole"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format, use 'Bearer <token>'"})
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token: " + err.Error()})
			c.Abort()
			return
		}

		// Attach operator info to request context
		c.Set(ownerIDKey, claims.OwnerID)
		c.Set(emailKey, claims.Email)
		c.Set(roleKey, claims.Role)
		c.Next()
	}
}

// OwnerID reads the operator set by AuthMiddleware. When it is missing the
// request has already been answered with 401.
func OwnerID(c *gin.Context) (string, bool) {
	ownerID := c.GetString(ownerIDKey)
	if ownerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", false
	}
	return ownerID, true
}
