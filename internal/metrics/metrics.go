package metrics

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// result: sent, invalid, rate_limited, error
	ContactSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_contact_submissions_total",
			Help: "Total number of contact form submissions",
		},
		[]string{"result"},
	)

	NotificationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portfolio_notification_failures_total",
			Help: "Contact notifications that could not be delivered",
		},
	)

	// action: signin, signup; result: success, failure
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_auth_attempts_total",
			Help: "Total number of sign-in and sign-up attempts",
		},
		[]string{"action", "result"},
	)

	PageViews = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_page_views_total",
			Help: "Tracked page views by section",
		},
		[]string{"section"},
	)

	// SessionEvents counts sign-ins and explicit sign-outs. Sessions that
	// simply expire are never signed out, so the two do not net to a
	// live session count.
	SessionEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_session_events_total",
			Help: "Session sign-ins and sign-outs",
		},
		[]string{"event"},
	)

	UploadBytes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_upload_bytes_total",
			Help: "Bytes of images uploaded by namespace",
		},
		[]string{"namespace"},
	)
)

// Handler serves the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// PathClass collapses a request path to a low-cardinality label.
func PathClass(path string) string {
	switch {
	case path == "/portfolio":
		return "portfolio"
	case strings.HasPrefix(path, "/sections/"):
		return "section:" + sectionName(strings.TrimPrefix(path, "/sections/"))
	case strings.HasPrefix(path, "/api/"):
		return "api"
	case strings.HasPrefix(path, "/auth"):
		return "auth"
	default:
		return "other"
	}
}

var knownSections = map[string]bool{
	"hero": true, "about": true, "skills": true, "experience": true, "education": true,
	"projects": true, "certifications": true, "contact": true,
}

func sectionName(s string) string {
	if knownSections[s] {
		return s
	}
	return "unknown"
}
