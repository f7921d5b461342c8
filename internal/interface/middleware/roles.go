package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/user-management-api/internal/domain/entity"
	"github.com/oksasatya/user-management-api/pkg/response"
)

// RequireRoles rejects the request unless the resolved identity's role is in
// the permitted set. It must run after Auth; a missing identity is treated
// as unauthorized, never as permitted.
func RequireRoles(roles ...entity.Role) gin.HandlerFunc {
	allowed := make(map[entity.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			response.Error(c, http.StatusUnauthorized, "Access denied. No token provided.", nil)
			return
		}
		if _, ok := allowed[u.Role]; !ok {
			response.Error(c, http.StatusForbidden, "You do not have permission to perform this action", nil)
			return
		}
		c.Next()
	}
}
