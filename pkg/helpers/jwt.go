package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// TokenKind distinguishes access tokens from refresh tokens.
type TokenKind string

const (
	AccessToken  TokenKind = "access"
	RefreshToken TokenKind = "refresh"
)

// JWTConfig carries signing secrets and validity windows.
type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
}

// JWTManager handles generation and validation of JWT tokens
type JWTManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
	now           func() time.Time
}

func NewJWTManager(cfg JWTConfig) *JWTManager {
	return &JWTManager{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		issuer:        cfg.Issuer,
		now:           time.Now,
	}
}

// WithClock replaces the time source; used by tests to simulate expiry.
func (m *JWTManager) WithClock(now func() time.Time) *JWTManager {
	m.now = now
	return m
}

func (m *JWTManager) AccessTTL() time.Duration  { return m.accessTTL }
func (m *JWTManager) RefreshTTL() time.Duration { return m.refreshTTL }

type Claims struct {
	AccountID string    `json:"uid"`
	Email     string    `json:"email,omitempty"`
	Kind      TokenKind `json:"typ"`
	jwt.RegisteredClaims
}

func (m *JWTManager) IssueAccessToken(accountID, email string) (string, time.Time, error) {
	return m.issue(AccessToken, accountID, email)
}

func (m *JWTManager) IssueRefreshToken(accountID string) (string, time.Time, error) {
	return m.issue(RefreshToken, accountID, "")
}

func (m *JWTManager) issue(kind TokenKind, accountID, email string) (string, time.Time, error) {
	secret, ttl := m.keyFor(kind)
	now := m.now()
	exp := now.Add(ttl)
	claims := &Claims{
		AccountID: accountID,
		Email:     email,
		Kind:      kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			Issuer:    m.issuer,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(secret)
	return s, exp, err
}

// Verify checks the signature, expiry and kind of the token and returns its claims.
func (m *JWTManager) Verify(tokenStr string, kind TokenKind) (*Claims, error) {
	secret, _ := m.keyFor(kind)
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !tkn.Valid || claims.Kind != kind || claims.AccountID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (m *JWTManager) keyFor(kind TokenKind) ([]byte, time.Duration) {
	if kind == RefreshToken {
		return m.refreshSecret, m.refreshTTL
	}
	return m.accessSecret, m.accessTTL
}
