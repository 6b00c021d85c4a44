package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("SUPABASE_API_KEY", "key")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
}

func TestNewAppConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)
	for _, key := range []string{
		"SUPABASE_URL", "DB_URL", "PORT", "HOST", "ENVIRONMENT", "ALLOW_ORIGINS",
		"APP_BASE_URL", "SITE_NAME", "REVALIDATE_SECONDS", "CACHE_RETENTION_HOURS",
		"PRERENDER_INTERVAL_SECONDS", "PRERENDER_CONCURRENCY", "BACKEND_TIMEOUT_SECONDS", "BACKEND_MAX_ROWS",
	} {
		t.Setenv(key, "")
	}

	config := NewAppConfig()

	assert.Equal(t, "key", *config.SupabaseAPIKey)
	assert.Equal(t, defaultSupabaseURL, *config.SupabaseURL)
	assert.Empty(t, *config.DSN)
	assert.Equal(t, "8080", *config.Port)
	assert.Equal(t, "localhost:8080", *config.Host)
	assert.Equal(t, "https://peakyminds.com", *config.AppBaseURL)
	assert.Equal(t, "PeakyMinds", *config.SiteName)
	assert.Equal(t, 300*time.Second, *config.RevalidateInterval)
	assert.Equal(t, 24*time.Hour, *config.CacheRetention)
	assert.Equal(t, 300*time.Second, *config.PrerenderInterval)
	assert.Equal(t, 4, *config.PrerenderConcurrency)
	assert.Equal(t, 10*time.Second, *config.BackendTimeout)
	assert.Equal(t, 1000, *config.BackendMaxRows)
	assert.Equal(t, []string{"https://peakyminds.com"}, *config.AllowOrigins)
	assert.False(t, config.IsDev())
}

func TestNewAppConfig_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SUPABASE_URL", "https://example.supabase.co/")
	t.Setenv("ENVIRONMENT", "dev")
	t.Setenv("ALLOW_ORIGINS", "")
	t.Setenv("APP_BASE_URL", "https://staging.peakyminds.com/")
	t.Setenv("REVALIDATE_SECONDS", "60")
	t.Setenv("PRERENDER_CONCURRENCY", "not-a-number")

	config := NewAppConfig()

	assert.Equal(t, "https://example.supabase.co", *config.SupabaseURL)
	assert.Equal(t, "https://staging.peakyminds.com", *config.AppBaseURL)
	assert.Equal(t, time.Minute, *config.RevalidateInterval)
	assert.Equal(t, 4, *config.PrerenderConcurrency)
	assert.True(t, config.IsDev())
	assert.Equal(t, []string{"http://localhost:3000"}, *config.AllowOrigins)
}

func TestLoadCORSConfig_ParsesList(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ALLOW_ORIGINS", " https://a.com, ,https://b.com ")

	config := NewAppConfig()

	assert.Equal(t, []string{"https://a.com", "https://b.com"}, *config.AllowOrigins)
}
