package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mealforge/backend/internal/service"
)

// UserIDKey is the gin context key that carries the authenticated user ID.
const UserIDKey = "user_id"

// RequireAuth rejects requests without a valid bearer token and stores the
// user ID (as a string) in the request context.
func RequireAuth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := bearerUserID(c, authService)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token"})
			c.Abort()
			return
		}
		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// OptionalAuth stores the user ID when a valid bearer token is present and
// lets the request through either way. Plan generation uses this: anonymous
// requests are served, they just skip persistence.
func OptionalAuth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := bearerUserID(c, authService); ok {
			c.Set(UserIDKey, userID)
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user ID from the context, or
// ("", false) for anonymous requests.
func CurrentUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

func bearerUserID(c *gin.Context, authService *service.AuthService) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	userID, err := authService.ValidateToken(parts[1])
	if err != nil {
		return "", false
	}
	return userID.String(), true
}
