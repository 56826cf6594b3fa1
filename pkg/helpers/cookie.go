package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	AccessCookieName  = "accessToken"
	RefreshCookieName = "refreshToken"
)

// CookieConfig controls the attributes of the token cookies.
type CookieConfig struct {
	Domain     string
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type Manager struct {
	Domain     string
	Secure     bool
	accessAge  int
	refreshAge int
}

// NewCookie builds a cookie manager. Max-age mirrors the token validity windows
// so cookie expiry and token expiry never diverge.
func NewCookie(cfg CookieConfig) *Manager {
	return &Manager{
		Domain:     cfg.Domain,
		Secure:     cfg.Secure,
		accessAge:  int(cfg.AccessTTL.Seconds()),
		refreshAge: int(cfg.RefreshTTL.Seconds()),
	}
}

func (m *Manager) SetAccess(c *gin.Context, access string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AccessCookieName, access, m.accessAge, "/", m.Domain, m.Secure, true)
}

func (m *Manager) SetPair(c *gin.Context, access, refresh string) {
	m.SetAccess(c, access)
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(RefreshCookieName, refresh, m.refreshAge, "/", m.Domain, m.Secure, true)
}

func (m *Manager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AccessCookieName, "", -1, "/", m.Domain, m.Secure, true)
	c.SetCookie(RefreshCookieName, "", -1, "/", m.Domain, m.Secure, true)
}
