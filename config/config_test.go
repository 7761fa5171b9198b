package config

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetBasePath(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", "/"},
		{"panel", "/panel/"},
		{"/panel", "/panel/"},
		{"panel/", "/panel/"},
		{"/panel/", "/panel/"},
	}
	for _, tt := range tests {
		t.Run("raw="+tt.raw, func(t *testing.T) {
			t.Setenv("USERHUB_BASE_PATH", tt.raw)
			assert.Equal(t, tt.want, GetBasePath())
		})
	}
}

func TestGetSessionCookieSameSite(t *testing.T) {
	tests := []struct {
		raw  string
		want http.SameSite
	}{
		{"", http.SameSiteLaxMode},
		{"lax", http.SameSiteLaxMode},
		{"Strict", http.SameSiteStrictMode},
		{"none", http.SameSiteNoneMode},
		{"bogus", http.SameSiteLaxMode},
	}
	for _, tt := range tests {
		t.Run("raw="+tt.raw, func(t *testing.T) {
			t.Setenv("USERHUB_SESSION_COOKIE_SAMESITE", tt.raw)
			assert.Equal(t, tt.want, GetSessionCookieSameSite())
		})
	}
}

func TestGetCORSAllowedOrigins(t *testing.T) {
	t.Setenv("USERHUB_CORS_ALLOWED_ORIGINS", "")
	assert.Nil(t, GetCORSAllowedOrigins())

	t.Setenv("USERHUB_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, GetCORSAllowedOrigins())
}

func TestIntDefaults(t *testing.T) {
	assert.Equal(t, 86400, GetSessionMaxAge())
	assert.Equal(t, 10, GetLoginRateLimit())
	assert.Equal(t, 90, GetAuditRetentionDays())

	t.Setenv("USERHUB_SESSION_MAX_AGE", "not-a-number")
	assert.Equal(t, 86400, GetSessionMaxAge())

	t.Setenv("USERHUB_SESSION_MAX_AGE", "3600")
	assert.Equal(t, 3600, GetSessionMaxAge())
}
