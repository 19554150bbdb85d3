package handler

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Zachkp/portfolio/internal/domain"
	"github.com/Zachkp/portfolio/internal/service"
)

// AdminViews are the dashboard views selectable with ?view=.
var AdminViews = []string{
	"overview", "profile", "contact", "projects", "skills",
	"experience", "education", "certifications", "messages", "visitors",
}

const savedFlash = "Saved"

// viewState overrides what a view would load on its own, for re-rendering
// after a save.
type viewState struct {
	editID string
	edit   any
	errors map[string]string
	flash  string
}

func (h *Handler) Dashboard(c *gin.Context) {
	view := c.DefaultQuery("view", "overview")
	if !slices.Contains(AdminViews, view) {
		view = "overview"
	}
	h.renderView(c, view, viewState{editID: c.Query("edit")})
}

// renderView renders view as the #admin-view fragment for HTMX requests
// and as the full dashboard otherwise.
func (h *Handler) renderView(c *gin.Context, view string, st viewState) {
	data, err := h.loadView(c.Request.Context(), view, st.editID)
	if err != nil {
		h.fail(c, err)
		return
	}
	if st.edit != nil {
		data["Edit"] = st.edit
	}
	if st.errors != nil {
		data["Errors"] = st.errors
	}
	data["Flash"] = st.flash

	if isHTMX(c) {
		c.HTML(http.StatusOK, "admin-view", data)
		return
	}
	c.HTML(http.StatusOK, "admin.html", h.page(c, "Admin", data))
}

func (h *Handler) loadView(ctx context.Context, view, editID string) (gin.H, error) {
	data := gin.H{
		"View":   view,
		"Views":  AdminViews,
		"Errors": map[string]string{},
	}

	switch view {
	case "overview", "visitors":
		stats, err := h.services.AdminStats(ctx)
		if err != nil {
			return nil, err
		}
		data["Stats"] = stats
	case "profile":
		p, err := h.services.Profile.Get(ctx)
		if err != nil {
			return nil, err
		}
		if p == nil {
			p = &domain.Profile{}
		}
		data["Edit"] = p
	case "contact":
		info, err := h.services.ContactInfo.Get(ctx)
		if err != nil {
			return nil, err
		}
		if info == nil {
			info = &domain.ContactInfo{}
		}
		data["Edit"] = info
	case "messages":
		messages, err := h.services.Messages.List(ctx)
		if err != nil {
			return nil, err
		}
		data["Messages"] = messages
	default:
		m, ok := h.managers[view]
		if !ok {
			return nil, fmt.Errorf("unknown admin view %q: %w", view, domain.ErrNotFound)
		}
		if err := m.load(ctx, editID, data); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// GetAdminProfile returns the stored profile, null before the first save.
func (h *Handler) GetAdminProfile(c *gin.Context) {
	p, err := h.services.Profile.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) SaveProfile(c *gin.Context) {
	input := &domain.Profile{}
	if err := c.ShouldBind(input); err != nil {
		h.fail(c, bindError(err))
		return
	}
	upload, closer, err := formUpload(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	defer closer.Close()

	saved, err := h.services.Profile.Save(c.Request.Context(), input, upload)
	h.afterSave(c, "profile", saved, input, err, http.StatusOK)
}

func (h *Handler) UploadProfileImage(c *gin.Context) {
	upload, closer, err := formUpload(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	defer closer.Close()
	if upload == nil {
		h.fail(c, domain.NewValidationError("image", "Choose an image to upload"))
		return
	}

	saved, err := h.services.Profile.UploadImage(c.Request.Context(), upload)
	h.afterSave(c, "profile", saved, nil, err, http.StatusOK)
}

func (h *Handler) GetAdminContactInfo(c *gin.Context) {
	info, err := h.services.ContactInfo.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *Handler) SaveContactInfo(c *gin.Context) {
	input := &domain.ContactInfo{}
	if err := c.ShouldBind(input); err != nil {
		h.fail(c, bindError(err))
		return
	}
	saved, err := h.services.ContactInfo.Save(c.Request.Context(), input)
	h.afterSave(c, "contact", saved, input, err, http.StatusOK)
}

// afterSave answers a save. HTMX callers get the view back, with field
// errors next to the submitted values when validation failed.
func (h *Handler) afterSave(c *gin.Context, view string, saved, submitted any, err error, status int) {
	if err != nil {
		errs, invalid := domain.AsValidation(err)
		if isHTMX(c) && invalid && submitted != nil {
			h.renderView(c, view, viewState{edit: submitted, errors: errs.Map()})
			return
		}
		h.fail(c, err)
		return
	}
	if isHTMX(c) {
		h.renderView(c, view, viewState{flash: savedFlash})
		return
	}
	c.JSON(status, saved)
}

func (h *Handler) ListMessages(c *gin.Context) {
	messages, err := h.services.Messages.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *Handler) UpdateMessageStatus(c *gin.Context) {
	var req struct {
		Status domain.MessageStatus `json:"status" form:"status"`
	}
	if err := c.ShouldBind(&req); err != nil {
		h.fail(c, bindError(err))
		return
	}

	msg, err := h.services.Messages.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	if isHTMX(c) {
		c.HTML(http.StatusOK, "admin-message-row", msg)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (h *Handler) DeleteMessage(c *gin.Context) {
	if err := h.services.Messages.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	deleted(c, "Message deleted")
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.services.AdminStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ExportStats serves the admin stats as a JSON download.
func (h *Handler) ExportStats(c *gin.Context) {
	stats, err := h.services.AdminStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
	log.Info().Str("by", h.clientKey(c)).Msg("admin stats exported")
	c.JSON(http.StatusOK, stats)
}

// PrivacyCleanup deletes page views past the retention period.
func (h *Handler) PrivacyCleanup(c *gin.Context) {
	n, err := h.services.Visitors.Cleanup(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	log.Info().Int64("deleted", n).Msg("privacy cleanup")
	if isHTMX(c) {
		c.String(http.StatusOK, "Removed %d old page views", n)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup completed", "deleted": n})
}

// deleted answers a delete. An empty 200 lets HTMX swap the row away.
func deleted(c *gin.Context, msg string) {
	if isHTMX(c) {
		c.Status(http.StatusOK)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// contentService is the part of service.ContentService the admin
// managers use.
type contentService[T domain.ImageEntity] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, record T, image *service.Upload) (T, error)
	Update(ctx context.Context, id string, record T, image *service.Upload) (T, error)
	UploadImage(ctx context.Context, id string, image *service.Upload) (T, error)
	Delete(ctx context.Context, id string) error
}

// manager is the admin API and dashboard view of one content type.
type manager struct {
	load     func(ctx context.Context, editID string, data gin.H) error
	register func(g *gin.RouterGroup)
}

func newManager[T domain.ImageEntity](h *Handler, name string, svc contentService[T], newRecord func() T) manager {
	load := func(ctx context.Context, editID string, data gin.H) error {
		items, err := svc.List(ctx)
		if err != nil {
			return err
		}
		edit := newRecord()
		if editID != "" {
			if edit, err = svc.Get(ctx, editID); err != nil {
				return err
			}
		}
		data["Items"] = items
		data["Edit"] = edit
		return nil
	}

	save := func(c *gin.Context, id string) {
		record := newRecord()
		if err := c.ShouldBind(record); err != nil {
			h.fail(c, bindError(err))
			return
		}
		upload, closer, err := formUpload(c)
		if err != nil {
			h.fail(c, err)
			return
		}
		defer closer.Close()

		var saved T
		status := http.StatusOK
		if id == "" {
			status = http.StatusCreated
			saved, err = svc.Create(c.Request.Context(), record, upload)
		} else {
			saved, err = svc.Update(c.Request.Context(), id, record, upload)
		}
		h.afterSave(c, name, saved, record, err, status)
	}

	register := func(g *gin.RouterGroup) {
		base := "/api/" + name
		g.GET(base, func(c *gin.Context) {
			items, err := svc.List(c.Request.Context())
			if err != nil {
				respondError(c, err)
				return
			}
			c.JSON(http.StatusOK, items)
		})
		g.POST(base, func(c *gin.Context) { save(c, "") })
		g.GET(base+"/:id", func(c *gin.Context) {
			record, err := svc.Get(c.Request.Context(), c.Param("id"))
			if err != nil {
				respondError(c, err)
				return
			}
			c.JSON(http.StatusOK, record)
		})
		g.PUT(base+"/:id", func(c *gin.Context) { save(c, c.Param("id")) })
		g.DELETE(base+"/:id", func(c *gin.Context) {
			if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
				h.fail(c, err)
				return
			}
			deleted(c, "Deleted")
		})
		g.POST(base+"/:id/image", func(c *gin.Context) {
			upload, closer, err := formUpload(c)
			if err != nil {
				h.fail(c, err)
				return
			}
			defer closer.Close()
			if upload == nil {
				h.fail(c, domain.NewValidationError("image", "Choose an image to upload"))
				return
			}
			saved, err := svc.UploadImage(c.Request.Context(), c.Param("id"), upload)
			h.afterSave(c, name, saved, nil, err, http.StatusOK)
		})
	}

	return manager{load: load, register: register}
}
