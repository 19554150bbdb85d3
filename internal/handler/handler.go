// Package handler serves the public site, its JSON API, the sign-in pages
// and the admin area.
package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Zachkp/portfolio/internal/auth"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/domain"
	"github.com/Zachkp/portfolio/internal/service"
)

type Handler struct {
	services *service.Services
	auth     *auth.Service
	cfg      *config.Config
	// fallback is shown in the hero and about sections until a profile
	// has been saved.
	fallback *domain.Profile
	managers map[string]manager
	now      func() time.Time
}

func New(services *service.Services, authSvc *auth.Service, cfg *config.Config, fallback *domain.Profile) *Handler {
	h := &Handler{
		services: services,
		auth:     authSvc,
		cfg:      cfg,
		fallback: fallback,
		now:      time.Now,
	}
	h.managers = map[string]manager{
		"projects": newManager[*domain.Project](h, "projects", services.Projects,
			func() *domain.Project { return &domain.Project{} }),
		"skills": newManager[*domain.Skill](h, "skills", services.Skills,
			func() *domain.Skill { return &domain.Skill{Proficiency: 3} }),
		"experience": newManager[*domain.Experience](h, "experience", services.Experience,
			func() *domain.Experience { return &domain.Experience{} }),
		"education": newManager[*domain.Education](h, "education", services.Education,
			func() *domain.Education { return &domain.Education{} }),
		"certifications": newManager[*domain.Certification](h, "certifications", services.Certifications,
			func() *domain.Certification { return &domain.Certification{} }),
	}
	return h
}

// page adds the keys every full page layout reads.
func (h *Handler) page(c *gin.Context, title string, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	data["Session"] = auth.FromContext(c)
	return data
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// errorStatus maps domain errors to a status and a message safe to show.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "Authentication required"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Admin access required"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "Already exists"
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, "Too many requests, please try again later"
	}
	return http.StatusInternalServerError, "Something went wrong, please try again later"
}

func logFailure(c *gin.Context, status int, err error) {
	if status < http.StatusInternalServerError {
		return
	}
	_ = c.Error(err)
	log.Error().Err(err).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("request failed")
}

// respondError writes err as JSON.
func respondError(c *gin.Context, err error) {
	if errs, ok := domain.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": errs})
		return
	}
	status, msg := errorStatus(err)
	logFailure(c, status, err)
	c.JSON(status, gin.H{"error": msg})
}

// htmxError appends a toast to the page. HTMX does not swap error
// responses, so the toast goes out with 200 and a retarget.
func (h *Handler) htmxError(c *gin.Context, err error) {
	status, msg := errorStatus(err)
	if errs, ok := domain.AsValidation(err); ok && len(errs) > 0 {
		msg = errs[0].Message
	} else {
		logFailure(c, status, err)
	}
	c.Header("HX-Retarget", "body")
	c.Header("HX-Reswap", "beforeend")
	c.HTML(http.StatusOK, "toast", msg)
}

// pageError renders the full status page.
func (h *Handler) pageError(c *gin.Context, err error) {
	status, msg := errorStatus(err)
	logFailure(c, status, err)
	c.HTML(status, "status.html", h.page(c, http.StatusText(status), gin.H{"Code": status, "Message": msg}))
}

// fail picks the error shape the caller can display.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case isHTMX(c):
		h.htmxError(c, err)
	case wantsHTML(c):
		h.pageError(c, err)
	default:
		respondError(c, err)
	}
}

func wantsHTML(c *gin.Context) bool {
	if strings.Contains(c.Request.URL.Path, "/api/") {
		return false
	}
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}

func (h *Handler) NotFound(c *gin.Context) {
	if strings.Contains(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.HTML(http.StatusNotFound, "status.html", h.page(c, "Not found", gin.H{
		"Code":    http.StatusNotFound,
		"Message": "This page does not exist.",
	}))
}

// formUpload returns the optional multipart image in field "file". The
// returned closer is never nil.
func formUpload(c *gin.Context) (*service.Upload, io.Closer, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return nil, nopCloser{}, nil
	}
	fh, err := c.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nopCloser{}, nil
	}
	if err != nil {
		return nil, nopCloser{}, domain.NewValidationError("image", "Could not read the uploaded file")
	}
	u, closer, err := service.UploadFromFile(fh)
	if err != nil {
		return nil, nopCloser{}, err
	}
	return u, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// bindError turns a gin binding failure into a validation error.
func bindError(err error) error {
	log.Debug().Err(err).Msg("request binding failed")
	return domain.NewValidationError("body", "Invalid request format")
}
