package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-auth-portal/internal/interface/http"
	"github.com/oksasatya/go-auth-portal/internal/interface/middleware"
)

type NewsModule struct {
	Handler  *handlers.NewsHandler
	Verifier middleware.TokenVerifier
	Redis    *redis.Client
}

func NewNewsModule(h *handlers.NewsHandler, verifier middleware.TokenVerifier, rdb *redis.Client) *NewsModule {
	return &NewsModule{Handler: h, Verifier: verifier, Redis: rdb}
}

func (m *NewsModule) Name() string { return "news" }

func (m *NewsModule) Register(rg *gin.RouterGroup) {
	news := rg.Group("/news")
	news.GET("", m.Handler.List)
	news.GET("/count", m.Handler.Count)
	news.GET("/:id", m.Handler.Get)

	write := news.Group("")
	write.Use(
		middleware.Auth(m.Verifier),
		middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByAccount(), nil),
	)
	{
		write.POST("", m.Handler.Create)
		write.PUT("/:id", m.Handler.Update)
		write.DELETE("/:id", m.Handler.Delete)
	}
}
