package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PORT", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.NotEmpty(t, cfg.JWTSecret, "development should get a generated secret")
	assert.False(t, cfg.MinIO.Enabled())
	assert.False(t, cfg.SMTP.Enabled())
	assert.Equal(t, "portfolio-images", cfg.MinIO.Bucket)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CONTACT_RATE_LIMIT", "3")
	t.Setenv("CONTACT_RATE_WINDOW_SECONDS", "60")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("GITHUB_URL", "https://github.com/someone")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 3, cfg.ContactRateLimit)
	assert.Equal(t, time.Minute, cfg.ContactRateWindow)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)

	require.Len(t, cfg.Redirects, 3)
	assert.Equal(t, "https://github.com/someone", cfg.Redirects[2].Destination)
}

func TestDefaultRedirects(t *testing.T) {
	redirects := DefaultRedirects("https://github.com/x")

	assert.Equal(t, Redirect{Source: "/", Destination: "/portfolio", Permanent: true}, redirects[0])
	assert.False(t, redirects[1].Permanent)
	assert.Equal(t, "/projects/new-project", redirects[1].Destination)
}
