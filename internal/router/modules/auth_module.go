package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/user-management-api/internal/container"
	repo "github.com/oksasatya/user-management-api/internal/domain/repository"
	handlers "github.com/oksasatya/user-management-api/internal/interface/http"
	"github.com/oksasatya/user-management-api/internal/interface/middleware"
	"github.com/oksasatya/user-management-api/pkg/helpers"
)

// AuthModule wires registration/login and the protected profile endpoints.
// Public: POST /api/auth/register, POST /api/auth/login
// Protected: GET /api/auth/me, PATCH /api/auth/update-password

type AuthModule struct {
	Handler *handlers.AuthHandler
	Users   repo.UserRepository
	Tokens  *helpers.TokenManager
}

func NewAuthModule(h *handlers.AuthHandler, users repo.UserRepository, tokens *helpers.TokenManager) *AuthModule {
	return &AuthModule{Handler: h, Users: users, Tokens: tokens}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	cfg := container.GetConfig()
	signupLimiter := middleware.RateLimit(container.GetRedis(), cfg.RateLimitSignupMax, cfg.RateLimitSignupWindow, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), cfg.RateLimitLoginMax, cfg.RateLimitLoginWindow, middleware.KeyByIPAndPath(), nil)

	grp := rg.Group("/auth")
	grp.POST("/register", signupLimiter, m.Handler.Register)
	grp.POST("/login", loginLimiter, m.Handler.Login)

	protected := grp.Group("")
	protected.Use(middleware.Auth(m.Users, m.Tokens))
	{
		protected.GET("/me", m.Handler.Me)
		protected.PATCH("/update-password", m.Handler.UpdatePassword)
	}
}
