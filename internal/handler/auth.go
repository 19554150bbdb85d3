package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Zachkp/portfolio/internal/auth"
	"github.com/Zachkp/portfolio/internal/domain"
)

func (h *Handler) AuthPage(c *gin.Context) {
	mode := c.DefaultQuery("mode", "signin")
	if mode != "signup" {
		mode = "signin"
	}
	c.HTML(http.StatusOK, "auth.html", h.authData(c, mode, domain.Credentials{}, safeNext(c.Query("next"))))
}

func (h *Handler) SignIn(c *gin.Context) {
	var creds domain.Credentials
	_ = c.ShouldBind(&creds)
	next := safeNext(c.PostForm("next"))

	session, err := h.auth.SignIn(c.Request.Context(), creds)
	if err != nil {
		data := h.authData(c, "signin", creds, next)
		status := http.StatusUnauthorized
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			data["Error"] = "Invalid email or password"
		case isValidation(err):
			status = http.StatusBadRequest
			data["Error"] = "Email and password are required"
		default:
			status = http.StatusInternalServerError
			logFailure(c, status, err)
			data["Error"] = "Sign in failed, please try again later"
		}
		c.HTML(status, "auth.html", data)
		return
	}

	h.startSession(c, session, next)
}

func (h *Handler) SignUp(c *gin.Context) {
	var creds domain.Credentials
	_ = c.ShouldBind(&creds)
	next := safeNext(c.PostForm("next"))

	session, err := h.auth.SignUp(c.Request.Context(), creds)
	if err != nil {
		data := h.authData(c, "signup", creds, next)
		status := http.StatusBadRequest
		if errs, ok := domain.AsValidation(err); ok {
			data["Errors"] = errs.Map()
		} else if errors.Is(err, domain.ErrConflict) {
			status = http.StatusConflict
			data["Error"] = "An account with this email already exists"
		} else {
			status = http.StatusInternalServerError
			logFailure(c, status, err)
			data["Error"] = "Sign up failed, please try again later"
		}
		c.HTML(status, "auth.html", data)
		return
	}

	log.Info().Str("user_id", session.User.ID).Str("role", string(session.User.Role)).Msg("account created")
	h.startSession(c, session, next)
}

func (h *Handler) SignOut(c *gin.Context) {
	h.auth.SignOut(c.Request.Context(), auth.FromContext(c))
	auth.ClearCookie(c, h.cfg.CookieSecure)
	c.Redirect(http.StatusSeeOther, "/portfolio")
}

// CurrentSession reports the caller's session, or null when signed out.
func (h *Handler) CurrentSession(c *gin.Context) {
	s := auth.FromContext(c)
	c.JSON(http.StatusOK, gin.H{"session": s, "is_admin": s.IsAdmin()})
}

func (h *Handler) startSession(c *gin.Context, s *auth.Session, next string) {
	auth.SetCookie(c, s, h.cfg.CookieSecure)
	if next == "" {
		next = "/portfolio"
		if s.IsAdmin() {
			next = "/admin"
		}
	}
	c.Redirect(http.StatusSeeOther, next)
}

func (h *Handler) authData(c *gin.Context, mode string, creds domain.Credentials, next string) gin.H {
	return h.page(c, "Sign in", gin.H{
		"Mode":     mode,
		"Email":    creds.Email,
		"FullName": creds.FullName,
		"Next":     next,
		"Errors":   map[string]string{},
	})
}

// safeNext only allows local paths as a post sign-in destination.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return ""
	}
	return next
}

func isValidation(err error) bool {
	_, ok := domain.AsValidation(err)
	return ok
}
