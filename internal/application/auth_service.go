package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-auth-portal/internal/domain/entity"
	repo "github.com/oksasatya/go-auth-portal/internal/domain/repository"
	"github.com/oksasatya/go-auth-portal/pkg/helpers"
	tpl "github.com/oksasatya/go-auth-portal/pkg/mailer/templates"
)

var (
	ErrValidation            = errors.New("all fields are required")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidOrExpiredCode  = errors.New("invalid or expired verification code")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired reset token")
	ErrMissingRefreshToken   = errors.New("refresh token missing")
	ErrInvalidRefreshToken   = errors.New("invalid refresh token")
)

// AuthConfig holds the settings AuthService needs from the environment.
type AuthConfig struct {
	// ResetPasswordURL is the client page that receives "/<token>".
	ResetPasswordURL string
	// ConcealUnknownEmail makes ForgotPassword succeed for unknown addresses.
	ConcealUnknownEmail bool
}

type AuthService struct {
	Repo     repo.AccountRepository
	Hasher   *helpers.PasswordHasher
	JWT      *helpers.JWTManager
	Codes    *helpers.CodeGenerator
	Notifier Notifier
	Indexer  AccountIndexer
	Logger   *logrus.Logger
	Config   AuthConfig
	Clock    func() time.Time
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// Session is an account together with the tokens minted for it.
type Session struct {
	Account *entity.Account
	Tokens  TokenPair
}

type SignupInput struct {
	Email    string
	Password string
	Name     string
}

func NewAuthService(
	r repo.AccountRepository,
	hasher *helpers.PasswordHasher,
	jwt *helpers.JWTManager,
	codes *helpers.CodeGenerator,
	notifier Notifier,
	indexer AccountIndexer,
	logger *logrus.Logger,
	cfg AuthConfig,
) *AuthService {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &AuthService{
		Repo:     r,
		Hasher:   hasher,
		JWT:      jwt,
		Codes:    codes,
		Notifier: notifier,
		Indexer:  indexer,
		Logger:   logger,
		Config:   cfg,
		Clock:    time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates an unverified account, mints an access token and sends the
// verification code. A failed send is returned to the caller; the account stays.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*Session, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || in.Password == "" || name == "" {
		return nil, ErrValidation
	}

	digest, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	code, exp, err := s.Codes.NewVerificationCode()
	if err != nil {
		return nil, fmt.Errorf("generate verification code: %w", err)
	}

	a := &entity.Account{
		Email:        email,
		Name:         name,
		PasswordHash: digest,
		Verification: &entity.OneTimeCode{Value: code, ExpiresAt: exp},
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		return nil, err
	}
	countAuth("signup")
	s.index(ctx, a)

	access, aexp, err := s.JWT.IssueAccessToken(a.ID, a.Email)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	payload := tpl.Payload(tpl.WithName(a.Name), tpl.WithCode(code), tpl.WithExpiresAt(exp))
	if err := s.Notifier.Send(ctx, tpl.VerificationEmail, a.Email, payload); err != nil {
		helpers.LogError(s.Logger, "send verification email failed", err, logrus.Fields{"account_id": a.ID})
		return nil, fmt.Errorf("send verification email: %w", err)
	}

	return &Session{Account: a, Tokens: TokenPair{AccessToken: access, AccessTokenExpiry: aexp}}, nil
}

// VerifyEmail consumes a verification code and marks the account verified.
func (s *AuthService) VerifyEmail(ctx context.Context, code string) (*entity.Account, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrInvalidOrExpiredCode
	}
	a, err := s.Repo.ConsumeVerificationCode(ctx, code, s.Clock().UTC())
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			return nil, ErrInvalidOrExpiredCode
		}
		return nil, err
	}
	countAuth("verify_email")
	s.index(ctx, a)

	if err := s.Notifier.Send(ctx, tpl.WelcomeEmail, a.Email, tpl.Payload(tpl.WithName(a.Name))); err != nil {
		s.Logger.WithError(err).WithField("account_id", a.ID).Warn("welcome email failed")
	}
	return a, nil
}

// Login checks credentials and mints an access/refresh pair. Unknown email and
// wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrValidation
	}

	a, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			countAuth("login_failed")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.Hasher.Verify(password, a.PasswordHash)
	if err != nil {
		helpers.LogError(s.Logger, "stored password digest unreadable", err, logrus.Fields{"account_id": a.ID})
	}
	if !ok {
		countAuth("login_failed")
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issuePair(a)
	if err != nil {
		return nil, err
	}

	now := s.Clock().UTC()
	if err := s.Repo.UpdateLastLogin(ctx, a.ID, now); err != nil {
		return nil, err
	}
	a.LastLoginAt = &now
	countAuth("login")
	return &Session{Account: a, Tokens: pair}, nil
}

// ForgotPassword stores a fresh reset token and mails the reset link.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return ErrValidation
	}

	a, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) && s.Config.ConcealUnknownEmail {
			s.Logger.WithField("email", email).Info("password reset requested for unknown email")
			return nil
		}
		return err
	}

	token, exp, err := s.Codes.NewResetToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	if err := s.Repo.SetResetToken(ctx, a.ID, entity.OneTimeCode{Value: token, ExpiresAt: exp}); err != nil {
		return err
	}

	link := strings.TrimRight(s.Config.ResetPasswordURL, "/") + "/" + token
	payload := tpl.Payload(tpl.WithName(a.Name), tpl.WithResetURL(link), tpl.WithExpiresAt(exp))
	if err := s.Notifier.Send(ctx, tpl.PasswordReset, a.Email, payload); err != nil {
		return fmt.Errorf("send password reset email: %w", err)
	}
	countAuth("forgot_password")
	return nil
}

// ResetPassword consumes a reset token and replaces the password.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	token = strings.TrimSpace(token)
	if newPassword == "" {
		return ErrValidation
	}
	if token == "" {
		return ErrInvalidOrExpiredToken
	}

	digest, err := s.Hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	now := s.Clock().UTC()
	a, err := s.Repo.ConsumeResetToken(ctx, token, digest, now)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			return ErrInvalidOrExpiredToken
		}
		return err
	}
	countAuth("reset_password")

	payload := tpl.Payload(tpl.WithName(a.Name), tpl.WithTime(now))
	if err := s.Notifier.Send(ctx, tpl.ResetSuccess, a.Email, payload); err != nil {
		s.Logger.WithError(err).WithField("account_id", a.ID).Warn("reset success email failed")
	}
	return nil
}

// CheckAuth resolves the account behind an authenticated request.
func (s *AuthService) CheckAuth(ctx context.Context, accountID string) (*entity.Account, error) {
	return s.Repo.GetByID(ctx, accountID)
}

// RefreshAccessToken mints a new access token from a refresh token.
// The refresh token itself is not rotated.
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, time.Time, error) {
	if refreshToken == "" {
		return "", time.Time{}, ErrMissingRefreshToken
	}
	claims, err := s.JWT.Verify(refreshToken, helpers.RefreshToken)
	if err != nil {
		return "", time.Time{}, ErrInvalidRefreshToken
	}
	a, err := s.Repo.GetByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			return "", time.Time{}, ErrInvalidRefreshToken
		}
		return "", time.Time{}, err
	}
	access, exp, err := s.JWT.IssueAccessToken(a.ID, a.Email)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("issue access token: %w", err)
	}
	countAuth("refresh")
	return access, exp, nil
}

func (s *AuthService) issuePair(a *entity.Account) (TokenPair, error) {
	access, aexp, err := s.JWT.IssueAccessToken(a.ID, a.Email)
	if err != nil {
		helpers.LogError(s.Logger, "generate access token failed", err, logrus.Fields{"account_id": a.ID})
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.IssueRefreshToken(a.ID)
	if err != nil {
		helpers.LogError(s.Logger, "generate refresh token failed", err, logrus.Fields{"account_id": a.ID})
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// index is best-effort; the search index is never the source of truth.
func (s *AuthService) index(ctx context.Context, a *entity.Account) {
	if s.Indexer == nil {
		return
	}
	if err := s.Indexer.IndexAccount(ctx, a); err != nil {
		s.Logger.WithError(err).WithField("account_id", a.ID).Warn("account index failed")
	}
}
