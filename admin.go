package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Zachkp/portfolio/internal/auth"
	"github.com/Zachkp/portfolio/internal/metrics"
	"github.com/Zachkp/portfolio/internal/service"
)

const trackTimeout = 5 * time.Second

var untrackedPrefixes = []string{
	"/static/", "/uploads/", "/admin", "/favicon", "/privacy", "/metrics", "/healthz",
}

// shouldTrack reports whether a request counts as a page view. Visitors
// sending Do Not Track are never recorded.
func shouldTrack(c *gin.Context) bool {
	if c.Request.Method != http.MethodGet || c.GetHeader("DNT") == "1" {
		return false
	}
	path := c.Request.URL.Path
	for _, prefix := range untrackedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

// visitorTrackingMiddleware records successful page views with the
// visitor's address hashed.
func visitorTrackingMiddleware(visitors *service.VisitorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if !shouldTrack(c) || c.Writer.Status() >= http.StatusMultipleChoices {
			return
		}
		path := c.Request.URL.Path
		metrics.PageViews.WithLabelValues(metrics.PathClass(path)).Inc()

		ip, userAgent := c.ClientIP(), c.Request.UserAgent()
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), trackTimeout)
			defer cancel()
			if err := visitors.Track(ctx, ip, userAgent, path); err != nil {
				log.Warn().Err(err).Str("path", path).Msg("error recording visitor")
			}
		}()
	}
}

// cleanupOldVisitorData drops page views past the retention period.
func cleanupOldVisitorData(ctx context.Context, visitors *service.VisitorService) {
	n, err := visitors.Cleanup(ctx)
	if err != nil {
		log.Error().Err(err).Msg("error cleaning up old visitor data")
		return
	}
	if n > 0 {
		log.Info().Int64("deleted", n).Msg("privacy cleanup removed old visitor records")
	}
}

// watchSessions counts session events and logs admin sign-ins. The returned func stops watching.
func watchSessions(authSvc *auth.Service) func() {
	return authSvc.Subscribe(func(ev auth.Event) {
		switch ev.Type {
		case auth.SignedIn:
			metrics.SessionEvents.WithLabelValues("signed_in").Inc()
			if ev.User != nil && ev.User.IsAdmin() {
				log.Info().Str("user_id", ev.User.ID).Time("at", ev.At).Msg("admin signed in")
			}
		case auth.SignedOut:
			metrics.SessionEvents.WithLabelValues("signed_out").Inc()
		}
	})
}
