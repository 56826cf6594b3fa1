package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-auth-portal/internal/interface/http"
	"github.com/oksasatya/go-auth-portal/internal/interface/middleware"
)

type ServiceModule struct {
	Handler  *handlers.ServiceHandler
	Verifier middleware.TokenVerifier
	Redis    *redis.Client
}

func NewServiceModule(h *handlers.ServiceHandler, verifier middleware.TokenVerifier, rdb *redis.Client) *ServiceModule {
	return &ServiceModule{Handler: h, Verifier: verifier, Redis: rdb}
}

func (m *ServiceModule) Name() string { return "services" }

func (m *ServiceModule) Register(rg *gin.RouterGroup) {
	services := rg.Group("/services")
	services.GET("", m.Handler.List)
	services.GET("/:id", m.Handler.Get)

	write := services.Group("")
	write.Use(middleware.Auth(m.Verifier))
	{
		write.POST("", m.Handler.Create)
		write.PUT("/:id", m.Handler.Update)
		write.DELETE("/:id", m.Handler.Delete)
	}
}
