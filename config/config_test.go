package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg := Load()

	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, 24*time.Hour, cfg.VerificationTTL)
	assert.Equal(t, time.Hour, cfg.ResetTTL)
	assert.False(t, cfg.CookieSecure)
	assert.False(t, cfg.ConcealUnknownEmail)
	assert.Equal(t, "postgres", cfg.StoreDriver)
}

func TestLoad_ProductionTurnsOnSecureCookies(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.CookieSecure)
	assert.False(t, cfg.HTTPLogEnabled)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_ACCESS_TTL", "soon")
	t.Setenv("BCRYPT_COST", "many")
	t.Setenv("COOKIE_SECURE", "maybe")
	t.Setenv("APP_ENV", "staging")

	cfg := Load()

	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.False(t, cfg.CookieSecure)
}

func TestSplitLists(t *testing.T) {
	cfg := &Config{
		CORSAllowedOrigins: " http://a.test, ,http://b.test ",
		ElasticsearchAddrs: "",
		TrustedProxies:     "10.0.0.0/8, 192.168.1.4",
	}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
	assert.Empty(t, cfg.ESAddrs())
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.4"}, cfg.TrustedProxyList())
	assert.Empty(t, (&Config{}).TrustedProxyList())
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "1", DBName: "d", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:1/d?sslmode=disable", cfg.PostgresDSN())
}
