package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-auth-portal/internal/interface/http"
	"github.com/oksasatya/go-auth-portal/internal/interface/middleware"
)

// AuthModule mounts the credential lifecycle under /auth.
// Public: signup, login, logout, verify-email, forgot-password, reset-password/:token, refresh-token
// Protected: check-auth
type AuthModule struct {
	Handler  *handlers.AuthHandler
	Verifier middleware.TokenVerifier
	Redis    *redis.Client
}

func NewAuthModule(h *handlers.AuthHandler, verifier middleware.TokenVerifier, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, Verifier: verifier, Redis: rdb}
}

func (m *AuthModule) Name() string { return "auth" }

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	signupLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIP(), nil)
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIP(), nil)
	verifyLimiter := middleware.RateLimit(m.Redis, 30, time.Minute, middleware.KeyByIPAndPath(), nil)
	forgotLimiter := middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetLimiter := middleware.RateLimit(m.Redis, 30, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByIP(), nil)

	auth := rg.Group("/auth")
	auth.POST("/signup", signupLimiter, m.Handler.Signup)
	auth.POST("/login", loginLimiter, m.Handler.Login)
	auth.POST("/logout", m.Handler.Logout)
	auth.POST("/verify-email", verifyLimiter, m.Handler.VerifyEmail)
	auth.POST("/forgot-password", forgotLimiter, m.Handler.ForgotPassword)
	auth.POST("/reset-password/:token", resetLimiter, m.Handler.ResetPassword)
	auth.POST("/refresh-token", refreshLimiter, m.Handler.RefreshToken)

	auth.GET("/check-auth", middleware.Auth(m.Verifier), m.Handler.CheckAuth)
}
