package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-auth-portal/internal/application"
	repo "github.com/oksasatya/go-auth-portal/internal/domain/repository"
	"github.com/oksasatya/go-auth-portal/internal/interface/middleware"
	"github.com/oksasatya/go-auth-portal/pkg/helpers"
	"github.com/oksasatya/go-auth-portal/pkg/response"
	"github.com/oksasatya/go-auth-portal/pkg/validation"
)

const (
	msgFieldsRequired     = "All fields are required"
	msgInvalidEmail       = "Invalid email"
	msgInvalidInput       = "Invalid input"
	msgInvalidBody        = "Invalid request body"
	msgUserExists         = "User already exists"
	msgInvalidCredentials = "Invalid credentials"
	msgUserNotFound       = "User not found"
	msgSomethingWrong     = "Something went wrong"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, cookies *helpers.Manager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: cookies, Logger: logger}
}

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type verifyEmailRequest struct {
	Code string `json:"code" binding:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type resetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	s, err := h.Svc.Signup(c.Request.Context(), application.SignupInput{Email: req.Email, Password: req.Password, Name: req.Name})
	switch {
	case err == nil:
	case errors.Is(err, application.ErrValidation):
		response.Error(c, http.StatusBadRequest, msgFieldsRequired, nil)
		return
	case errors.Is(err, repo.ErrDuplicateAccount):
		response.Error(c, http.StatusBadRequest, msgUserExists, nil)
		return
	default:
		h.unexpected(c, http.StatusInternalServerError, "signup failed", err)
		return
	}

	h.Cookies.SetAccess(c, s.Tokens.AccessToken)
	response.Success(c, http.StatusCreated, NewAccountView(s.Account), "User created successfully",
		gin.H{"access_expires_at": s.Tokens.AccessTokenExpiry})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	s, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error(c, http.StatusBadRequest, msgInvalidCredentials, nil)
		return
	case errors.Is(err, application.ErrValidation):
		response.Error(c, http.StatusBadRequest, msgFieldsRequired, nil)
		return
	default:
		h.unexpected(c, http.StatusBadRequest, "login failed", err)
		return
	}

	h.Cookies.SetPair(c, s.Tokens.AccessToken, s.Tokens.RefreshToken)
	response.Success(c, http.StatusOK, NewAccountView(s.Account), "Logged in successfully", gin.H{
		"access_expires_at":  s.Tokens.AccessTokenExpiry,
		"refresh_expires_at": s.Tokens.RefreshTokenExpiry,
	})
}

// Logout only clears cookies. Issued tokens stay valid until they expire.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, nil, "Logged out successfully", nil)
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	a, err := h.Svc.VerifyEmail(c.Request.Context(), req.Code)
	switch {
	case err == nil:
	case errors.Is(err, application.ErrInvalidOrExpiredCode):
		response.Error(c, http.StatusBadRequest, "Invalid or expired verification code", nil)
		return
	default:
		h.unexpected(c, http.StatusBadRequest, "verify email failed", err)
		return
	}
	response.Success(c, http.StatusOK, NewAccountView(a), "Email verified successfully", nil)
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	err := h.Svc.ForgotPassword(c.Request.Context(), req.Email)
	switch {
	case err == nil:
	case errors.Is(err, repo.ErrAccountNotFound):
		response.Error(c, http.StatusBadRequest, msgUserNotFound, nil)
		return
	case errors.Is(err, application.ErrValidation):
		response.Error(c, http.StatusBadRequest, msgFieldsRequired, nil)
		return
	default:
		h.unexpected(c, http.StatusBadRequest, "forgot password failed", err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Password reset link sent to your email", nil)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	err := h.Svc.ResetPassword(c.Request.Context(), c.Param("token"), req.Password)
	switch {
	case err == nil:
	case errors.Is(err, application.ErrInvalidOrExpiredToken):
		response.Error(c, http.StatusBadRequest, "Invalid or expired reset token", nil)
		return
	case errors.Is(err, application.ErrValidation):
		response.Error(c, http.StatusBadRequest, msgFieldsRequired, nil)
		return
	default:
		h.unexpected(c, http.StatusBadRequest, "reset password failed", err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Password reset successful", nil)
}

// CheckAuth runs behind middleware.Auth.
func (h *AuthHandler) CheckAuth(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized - no token provided", nil)
		return
	}

	a, err := h.Svc.CheckAuth(c.Request.Context(), p.AccountID)
	switch {
	case err == nil:
	case errors.Is(err, repo.ErrAccountNotFound):
		response.Error(c, http.StatusBadRequest, msgUserNotFound, nil)
		return
	default:
		h.unexpected(c, http.StatusBadRequest, "check auth failed", err)
		return
	}
	response.Success(c, http.StatusOK, NewAccountView(a), "Authenticated", nil)
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	refresh, _ := c.Cookie(helpers.RefreshCookieName)

	access, exp, err := h.Svc.RefreshAccessToken(c.Request.Context(), refresh)
	switch {
	case err == nil:
	case errors.Is(err, application.ErrMissingRefreshToken):
		response.Error(c, http.StatusUnauthorized, "Refresh token missing", nil)
		return
	case errors.Is(err, application.ErrInvalidRefreshToken):
		response.Error(c, http.StatusForbidden, "Invalid refresh token", nil)
		return
	default:
		h.unexpected(c, http.StatusForbidden, "refresh token failed", err)
		return
	}

	h.Cookies.SetAccess(c, access)
	response.Success[any](c, http.StatusOK, nil, "Access token refreshed", gin.H{"access_expires_at": exp})
}

// bindFailed answers a request whose body could not be bound.
func bindFailed(c *gin.Context, err error) {
	msg := msgInvalidBody
	switch {
	case validation.HasTag(err, "required"):
		msg = msgFieldsRequired
	case validation.HasTag(err, "email"):
		msg = msgInvalidEmail
	case validation.IsFieldError(err):
		msg = msgInvalidInput
	}
	response.Error(c, http.StatusBadRequest, msg, validation.ToDetails(err))
}

func (h *AuthHandler) unexpected(c *gin.Context, status int, msg string, err error) {
	helpers.LogError(h.Logger, msg, err, logrus.Fields{
		"request_id": c.GetString("request_id"),
		"path":       c.FullPath(),
	})
	response.Error(c, status, msgSomethingWrong, nil)
}
