package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/tsuiketsu/tsuika-api-sub000/internal/auth"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the acting identity from a bearer token and puts
// user_id in the request context. Roles are not resolved here; they come
// from the folder's grants at decision time.
func AuthMiddleware(tokenSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		tokenString := strings.Replace(authHeader, "Bearer ", "", 1)
		claims, err := auth.ValidateToken(tokenString, tokenSecret)
		if err != nil {
			log.Printf("Token validation failed: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Next()
	}
}
