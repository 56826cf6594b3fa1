package router

import (
	"github.com/oksasatya/go-auth-portal/internal/container"
	handlers "github.com/oksasatya/go-auth-portal/internal/interface/http"
	"github.com/oksasatya/go-auth-portal/internal/interface/middleware"
	"github.com/oksasatya/go-auth-portal/internal/router/modules"
)

// InitModules builds the handlers from the container and registers each feature module.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	authHandler := handlers.NewAuthHandler(c.Auth, c.Cookies, c.Logger)
	newsHandler := handlers.NewNewsHandler(c.News, c.Logger)
	serviceHandler := handlers.NewServiceHandler(c.Catalog, c.Logger)

	r.Use(middleware.RealIP(), middleware.NoStore())

	r.Add(modules.NewAuthModule(authHandler, c.JWT, c.Redis))
	r.Add(modules.NewNewsModule(newsHandler, c.JWT, c.Redis))
	r.Add(modules.NewServiceModule(serviceHandler, c.JWT, c.Redis))
	r.AddIf(c.Config.DebugMetricsEnabled, modules.NewDebugModule(c.Redis))
}
