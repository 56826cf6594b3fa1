package router

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-auth-portal/config"
	handlers "github.com/oksasatya/go-auth-portal/internal/interface/http"
	"github.com/oksasatya/go-auth-portal/internal/interface/middleware"
)

// NewEngine returns a gin engine with the global middleware stack installed.
// Client IPs come from forwarding headers only when the peer is a trusted proxy.
func NewEngine(cfg *config.Config, serveUploads bool) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxyList()); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	switch cfg.TrustedPlatform {
	case "":
	case "cloudflare":
		r.TrustedPlatform = gin.PlatformCloudflare
	case "google":
		r.TrustedPlatform = gin.PlatformGoogleAppEngine
	default:
		return nil, fmt.Errorf("unknown trusted platform %q", cfg.TrustedPlatform)
	}
	r.Use(gin.Recovery())
	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}
	r.Use(middleware.RequestIDMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "x-auth-token", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// multipart parts above this spill to temp files
	r.MaxMultipartMemory = handlers.MaxImageBytes

	if serveUploads {
		r.Static(cfg.UploadPublicPath, cfg.UploadDir)
	}
	return r, nil
}
