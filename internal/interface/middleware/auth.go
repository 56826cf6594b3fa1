package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-auth-portal/pkg/helpers"
	"github.com/oksasatya/go-auth-portal/pkg/response"
)

const principalKey = "principal"

// RoleUser is the only role accounts carry today.
const RoleUser = "user"

// Principal is the authenticated caller derived from a verified access token.
type Principal struct {
	AccountID string
	Email     string
	Role      string
}

// TokenVerifier is satisfied by *helpers.JWTManager.
type TokenVerifier interface {
	Verify(token string, kind helpers.TokenKind) (*helpers.Claims, error)
}

// Auth requires a valid access token. The token is taken from the accessToken
// cookie, then "Authorization: Bearer", then the x-auth-token header.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := accessTokenFrom(c)
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "Unauthorized - no token provided", nil)
			return
		}
		claims, err := verifier.Verify(token, helpers.AccessToken)
		if err != nil {
			reason := "invalid"
			if errors.Is(err, helpers.ErrExpiredToken) {
				reason = "expired"
			}
			response.Abort(c, http.StatusUnauthorized, "Unauthorized - invalid token", reason)
			return
		}
		c.Set(principalKey, Principal{AccountID: claims.AccountID, Email: claims.Email, Role: RoleUser})
		c.Next()
	}
}

func accessTokenFrom(c *gin.Context) string {
	if v, err := c.Cookie(helpers.AccessCookieName); err == nil && v != "" {
		return v
	}
	if h := c.GetHeader("Authorization"); len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return strings.TrimSpace(c.GetHeader("x-auth-token"))
}

// PrincipalFrom returns the principal set by Auth.
func PrincipalFrom(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}
