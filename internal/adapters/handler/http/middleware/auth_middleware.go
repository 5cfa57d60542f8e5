package middleware

import (
	"net/http"
	"strings"

	"github.com/castellanimarco/trainflow-engine/internal/core/services"
	"github.com/gin-gonic/gin"
)

// ContextUserIDKey is where the middleware stores the authenticated user id;
// handlers read it back through GetUserID.
const ContextUserIDKey = "userID"

const bearerPrefix = "Bearer "

// AuthMiddleware guards the program, schedule and progress routes: every
// request must carry a bearer token whose subject is a live user.
func AuthMiddleware(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		raw, ok := strings.CutPrefix(header, bearerPrefix)
		raw = strings.TrimSpace(raw)
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		userID, err := tokens.ValidateToken(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

func GetUserID(c *gin.Context) (string, bool) {
	id, exists := c.Get(ContextUserIDKey)
	if !exists {
		return "", false
	}
	idStr, ok := id.(string)
	return idStr, ok
}
