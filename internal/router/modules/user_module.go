package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/user-management-api/internal/domain/entity"
	repo "github.com/oksasatya/user-management-api/internal/domain/repository"
	handlers "github.com/oksasatya/user-management-api/internal/interface/http"
	"github.com/oksasatya/user-management-api/internal/interface/middleware"
	"github.com/oksasatya/user-management-api/pkg/helpers"
)

// UserModule wires the bearer-protected user CRUD routes.
// Admin-only operations carry an additional role gate.

type UserModule struct {
	Handler *handlers.UserHandler
	Users   repo.UserRepository
	Tokens  *helpers.TokenManager
}

func NewUserModule(h *handlers.UserHandler, users repo.UserRepository, tokens *helpers.TokenManager) *UserModule {
	return &UserModule{Handler: h, Users: users, Tokens: tokens}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	grp := rg.Group("/users")
	grp.Use(middleware.Auth(m.Users, m.Tokens))

	adminOnly := middleware.RequireRoles(entity.RoleAdmin)

	grp.GET("", m.Handler.List)
	grp.GET("/:id", m.Handler.GetByID)
	grp.POST("", adminOnly, m.Handler.Create)
	grp.PATCH("/:id", m.Handler.Update)
	grp.DELETE("/:id", adminOnly, m.Handler.Delete)
	grp.PATCH("/:id/deactivate", adminOnly, m.Handler.Deactivate)
}
