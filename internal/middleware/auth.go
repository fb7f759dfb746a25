package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/kairyu/kanban-board-api/internal/constants"
	apierrors "github.com/kairyu/kanban-board-api/internal/errors"
	"github.com/kairyu/kanban-board-api/internal/models"
)

// RequireAuth validates the bearer token and stores the caller's identity in
// the context. Tokens carrying a role outside the known set are rejected
// rather than treated as restricted.
func RequireAuth(secret []byte) gin.HandlerFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		claims := jwt.MapClaims{}
		token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			return secret, nil
		})
		if err != nil || !token.Valid {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		name, _ := claims["sub"].(string)
		roleStr, _ := claims["role"].(string)
		role := models.Role(roleStr)
		if name == "" || !role.Valid() {
			apierrors.Unauthorized(c, "Invalid token claims")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyIdentity, models.Identity{Name: name, Role: role})
		c.Next()
	}
}

// GetIdentity retrieves the authenticated caller from the context.
func GetIdentity(c *gin.Context) (models.Identity, bool) {
	value, exists := c.Get(constants.ContextKeyIdentity)
	if !exists {
		return models.Identity{}, false
	}

	identity, ok := value.(models.Identity)
	if !ok {
		return models.Identity{}, false
	}
	return identity, true
}
