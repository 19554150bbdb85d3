package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/domain"
)

// Sections are the portfolio page's sections in display order.
var Sections = []string{"hero", "about", "skills", "experience", "education", "projects", "certifications", "contact"}

func (h *Handler) Portfolio(c *gin.Context) {
	c.HTML(http.StatusOK, "portfolio.html", h.page(c, "Portfolio", gin.H{"Sections": Sections}))
}

func (h *Handler) Privacy(c *gin.Context) {
	c.HTML(http.StatusOK, "privacy.html", h.page(c, "Privacy Policy", nil))
}

// Section renders one portfolio section as an HTMX fragment.
func (h *Handler) Section(c *gin.Context) {
	name := c.Param("name")
	ctx := c.Request.Context()
	data := gin.H{}

	var err error
	switch name {
	case "hero", "about":
		data["Profile"], err = h.profile(ctx)
	case "skills":
		data["Groups"], err = h.services.Skills.Grouped(ctx)
	case "experience":
		data["Experience"], err = h.services.Experience.List(ctx)
	case "education":
		data["Education"], err = h.services.Education.List(ctx)
	case "projects":
		data["Projects"], err = h.services.Projects.List(ctx)
	case "certifications":
		data["Certifications"], err = h.services.Certifications.WithStatus(ctx, h.now())
	case "contact":
		data["ContactInfo"], err = h.services.ContactInfo.Get(ctx)
		data["Form"] = &domain.ContactMessage{}
		data["Errors"] = map[string]string{}
	default:
		h.NotFound(c)
		return
	}
	if err != nil {
		h.htmxError(c, err)
		return
	}
	c.HTML(http.StatusOK, "section-"+name, data)
}

// profile returns the saved profile, or the built-in copy when none has
// been saved yet.
func (h *Handler) profile(ctx context.Context) (*domain.Profile, error) {
	p, err := h.services.Profile.Get(ctx)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return h.fallback, nil
	}
	return p, nil
}

func (h *Handler) GetProfile(c *gin.Context) {
	p, err := h.profile(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) GetContactInfo(c *gin.Context) {
	info, err := h.services.ContactInfo.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *Handler) ListSkills(c *gin.Context) {
	skills, err := h.services.Skills.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, skills)
}

func (h *Handler) GroupedSkills(c *gin.Context) {
	groups, err := h.services.Skills.Grouped(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if groups == nil {
		groups = []domain.SkillGroup{}
	}
	c.JSON(http.StatusOK, groups)
}

func (h *Handler) ListExperience(c *gin.Context) {
	items, err := h.services.Experience.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) ListEducation(c *gin.Context) {
	items, err := h.services.Education.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// ListProjects serves every project, or only featured ones with
// ?filter=featured.
func (h *Handler) ListProjects(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		projects []*domain.Project
		err      error
	)
	switch c.Query("filter") {
	case "":
		projects, err = h.services.Projects.List(ctx)
	case "featured":
		projects, err = h.services.Projects.Featured(ctx)
	default:
		respondError(c, domain.NewValidationError("filter", "Filter must be featured"))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *Handler) ListCertifications(c *gin.Context) {
	certs, err := h.services.Certifications.WithStatus(c.Request.Context(), h.now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, certs)
}
