package router

import (
	userapp "github.com/oksasatya/user-management-api/internal/application"
	"github.com/oksasatya/user-management-api/internal/container"
	pginfra "github.com/oksasatya/user-management-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/user-management-api/internal/interface/http"
	"github.com/oksasatya/user-management-api/internal/router/modules"
)

// InitModules initializes all application modules and registers them with
// the router registry. Called once during application startup.
func InitModules(r *Registry) {
	repo := pginfra.NewUserRepository(container.GetPGPool())

	service := userapp.NewService(
		repo,
		container.GetTokens(),
		container.GetLogger(),
		container.GetRabbitPub(),
	)

	authHandler := handlers.NewAuthHandler(service, container.GetLogger())
	userHandler := handlers.NewUserHandler(service, container.GetLogger())

	r.Add(modules.NewAuthModule(authHandler, repo, container.GetTokens()))
	r.Add(modules.NewUserModule(userHandler, repo, container.GetTokens()))
}
