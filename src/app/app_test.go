package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/peakyminds/challenge-seo/src/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(backendURL, redisAddr string) AppConfig {
	str := func(s string) *string { return &s }
	dur := func(d time.Duration) *time.Duration { return &d }
	concurrency := 2
	maxRows := 1000
	origins := []string{"https://peakyminds.com"}

	return AppConfig{
		SupabaseAPIKey:       str(testutil.TestAPIKey),
		RedisAddr:            str("redis://" + redisAddr),
		SupabaseURL:          str(backendURL),
		DSN:                  str(""),
		BackendTimeout:       dur(2 * time.Second),
		BackendMaxRows:       &maxRows,
		LogLevel:             str("disabled"),
		Environment:          str("dev"),
		Port:                 str("0"),
		Host:                 str("localhost"),
		AllowOrigins:         &origins,
		AppBaseURL:           str("https://peakyminds.com"),
		SiteName:             str("PeakyMinds"),
		RevalidateInterval:   dur(300 * time.Second),
		CacheRetention:       dur(time.Hour),
		CachePrefix:          str("test"),
		PrerenderInterval:    dur(0),
		PrerenderConcurrency: &concurrency,
	}
}

func TestApplication_ServesPrerenderedPage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	backend := testutil.NewBackend(t, testutil.Document{
		Slug:     "logic-101",
		Title:    "Logic Basics",
		ImageURL: "https://img/x.png",
	})
	redisServer := miniredis.RunT(t)
	ctx := context.Background()

	application, err := NewApplication(ctx, newTestConfig(backend.URL(), redisServer.Addr()))
	require.NoError(t, err)
	defer application.Shutdown(ctx)

	report := application.PrerenderService.Run(ctx)
	require.NoError(t, report.PathsErr)
	assert.Equal(t, 1, report.Rendered)

	router, err := application.Router(ctx)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/logic-101", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	assert.Contains(t, w.Body.String(), "<title>Logic Basics | PeakyMinds</title>")
}

func TestNewApplication_RedisUnavailable(t *testing.T) {
	redisServer := miniredis.RunT(t)
	addr := redisServer.Addr()
	redisServer.Close()

	_, err := NewApplication(context.Background(), newTestConfig("http://127.0.0.1:1", addr))
	assert.Error(t, err)
}
