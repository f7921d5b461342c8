package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/user-management-api/internal/domain/entity"
	repo "github.com/oksasatya/user-management-api/internal/domain/repository"
	"github.com/oksasatya/user-management-api/pkg/helpers"
	"github.com/oksasatya/user-management-api/pkg/response"
)

const (
	CtxUserKey   = "authUser"
	CtxUserIDKey = "userID"

	bearerPrefix = "Bearer "
)

// bearerToken extracts the token from the Authorization header.
func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" || !strings.HasPrefix(h, bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, bearerPrefix))
}

// Auth validates the bearer token and resolves the identity claim against
// the user store by primary key. A failed lookup is terminal; there is no
// fallback resolution by email or any other attribute. On success the
// resolved user is attached to the Gin context.
func Auth(users repo.UserRepository, tokens *helpers.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "Access denied. No token provided.", nil)
			return
		}
		claims, err := tokens.Parse(token)
		if err != nil {
			// Expired and tampered tokens are indistinguishable to the client.
			response.Error(c, http.StatusUnauthorized, "Invalid token.", nil)
			return
		}
		u, err := users.GetByID(claims.UserID)
		if err != nil || u == nil {
			response.Error(c, http.StatusUnauthorized, "Invalid token. User not found.", nil)
			return
		}
		c.Set(CtxUserKey, u)
		c.Set(CtxUserIDKey, u.ID)
		c.Next()
	}
}

// CurrentUser returns the user attached by Auth, or nil.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}
