package auth

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	CookieName = "portfolio_session"
	contextKey = "session"
)

// LoadSession attaches the session named by the cookie, if any. Requests
// without a valid cookie continue anonymously.
func LoadSession(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err == nil && token != "" {
			if s, err := svc.Session(c.Request.Context(), token); err == nil {
				c.Set(contextKey, s)
			}
		}
		c.Next()
	}
}

// FromContext returns the request's session or nil.
func FromContext(c *gin.Context) *Session {
	if v, ok := c.Get(contextKey); ok {
		if s, ok := v.(*Session); ok {
			return s
		}
	}
	return nil
}

// RequireAdmin lets only admin sessions through. JSON callers get 401/403;
// page requests are redirected.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := FromContext(c)
		switch {
		case s == nil:
			if wantsJSON(c) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
				return
			}
			c.Redirect(http.StatusFound, "/auth?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
		case !s.IsAdmin():
			if wantsJSON(c) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
				return
			}
			c.Redirect(http.StatusFound, "/portfolio")
			c.Abort()
		default:
			c.Next()
		}
	}
}

func SetCookie(c *gin.Context, s *Session, secure bool) {
	maxAge := int(time.Until(s.ExpiresAt).Seconds())
	if maxAge < 0 {
		maxAge = 0
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, s.Token, maxAge, "/", "", secure, true)
}

func ClearCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", secure, true)
}

func wantsJSON(c *gin.Context) bool {
	if strings.Contains(c.Request.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}
