package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/auth"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/domain"
	"github.com/Zachkp/portfolio/internal/metrics"
	"github.com/Zachkp/portfolio/internal/repository"
	"github.com/Zachkp/portfolio/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newVisitorService(t *testing.T) *service.VisitorService {
	t.Helper()
	db, err := repository.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, repository.Migrate(context.Background(), db))
	return service.NewVisitorService(repository.NewVisitorRepository(db), "salt")
}

func TestShouldTrack(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		dnt    bool
		want   bool
	}{
		{"portfolio page", http.MethodGet, "/portfolio", false, true},
		{"section fragment", http.MethodGet, "/sections/projects", false, true},
		{"public api", http.MethodGet, "/api/projects", false, true},
		{"do not track", http.MethodGet, "/portfolio", true, false},
		{"form post", http.MethodPost, "/contact", false, false},
		{"static asset", http.MethodGet, "/static/css/site.css", false, false},
		{"uploaded image", http.MethodGet, "/uploads/projects/1.png", false, false},
		{"admin dashboard", http.MethodGet, "/admin", false, false},
		{"admin api", http.MethodGet, "/admin/api/stats", false, false},
		{"privacy page", http.MethodGet, "/privacy", false, false},
		{"metrics", http.MethodGet, "/metrics", false, false},
		{"health check", http.MethodGet, "/healthz", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(tt.method, tt.path, nil)
			if tt.dnt {
				c.Request.Header.Set("DNT", "1")
			}
			assert.Equal(t, tt.want, shouldTrack(c))
		})
	}
}

func TestVisitorTrackingMiddleware(t *testing.T) {
	visitors := newVisitorService(t)

	r := gin.New()
	r.Use(visitorTrackingMiddleware(visitors))
	r.GET("/portfolio", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	skipped := httptest.NewRequest(http.MethodGet, "/portfolio", nil)
	skipped.Header.Set("DNT", "1")
	r.ServeHTTP(httptest.NewRecorder(), skipped)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	req := httptest.NewRequest(http.MethodGet, "/portfolio", nil)
	req.Header.Set("User-Agent", "test-agent")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Eventually(t, func() bool {
		stats, err := visitors.Stats(context.Background())
		return err == nil && stats.TotalVisitors == 1
	}, 2*time.Second, 10*time.Millisecond)

	recent, err := visitors.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "/portfolio", recent[0].Path)
	assert.Equal(t, visitors.HashIP("192.0.2.1"), recent[0].HashedIP)
}

func TestCleanupOldVisitorData(t *testing.T) {
	visitors := newVisitorService(t)
	require.NoError(t, visitors.Track(context.Background(), "192.0.2.1", "agent", "/portfolio"))

	cleanupOldVisitorData(context.Background(), visitors)

	stats, err := visitors.Stats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TotalVisitors, "recent views are kept")
}

func TestRegisterRedirects(t *testing.T) {
	r := gin.New()
	registerRedirects(r, []config.Redirect{
		{Source: "/", Destination: "/portfolio", Permanent: true},
		{Source: "/github", Destination: "https://github.com/Zachkp"},
	})

	tests := []struct {
		path     string
		status   int
		location string
	}{
		{"/", http.StatusPermanentRedirect, "/portfolio"},
		{"/github", http.StatusTemporaryRedirect, "https://github.com/Zachkp"},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
		assert.Equal(t, tt.status, w.Code, tt.path)
		assert.Equal(t, tt.location, w.Header().Get("Location"), tt.path)
	}
}

func TestWatchSessions(t *testing.T) {
	db, err := repository.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, repository.Migrate(context.Background(), db))

	authSvc := auth.NewService(repository.NewUserRepository(db), "test-secret", time.Hour)
	stop := watchSessions(authSvc)

	signedIn := metrics.SessionEvents.WithLabelValues("signed_in")
	signedOut := metrics.SessionEvents.WithLabelValues("signed_out")
	ins, outs := testutil.ToFloat64(signedIn), testutil.ToFloat64(signedOut)

	session, err := authSvc.SignUp(context.Background(), domain.Credentials{Email: "admin@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, ins+1, testutil.ToFloat64(signedIn))
	assert.Equal(t, outs, testutil.ToFloat64(signedOut))

	authSvc.SignOut(context.Background(), session)
	assert.Equal(t, ins+1, testutil.ToFloat64(signedIn), "sign-out never lowers sign-ins")
	assert.Equal(t, outs+1, testutil.ToFloat64(signedOut))

	stop()
	_, err = authSvc.SignIn(context.Background(), domain.Credentials{Email: "admin@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, ins+1, testutil.ToFloat64(signedIn), "no updates after stop")
}

func TestFallbackProfileIsValid(t *testing.T) {
	p := fallbackProfile()
	p.BeforeSave(time.Now())
	assert.NoError(t, p.Validate())
}
