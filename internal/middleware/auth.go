package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobboard/internal/models"
	"jobboard/internal/services"
)

const (
	currentUserKey  = "jobboard.user"
	currentTokenKey = "jobboard.token"
)

// Auth gates API routes behind bearer token auth. Requests without a
// resolvable token are rejected before reaching any persistence logic.
func Auth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
			return
		}

		c.Set(currentUserKey, user)
		c.Set(currentTokenKey, token)
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by Auth, or nil.
func CurrentUser(c *gin.Context) *models.User {
	user, _ := c.Get(currentUserKey)
	u, _ := user.(*models.User)
	return u
}

// CurrentToken returns the bearer token presented on this request.
func CurrentToken(c *gin.Context) string {
	token, _ := c.Get(currentTokenKey)
	t, _ := token.(string)
	return t
}
