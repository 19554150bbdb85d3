package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/auth"
)

// Routes registers every page, fragment and API route. apiMiddleware runs
// on the public /api group only.
func (h *Handler) Routes(r *gin.Engine, apiMiddleware ...gin.HandlerFunc) {
	r.GET("/portfolio", h.Portfolio)
	r.GET("/sections/:name", h.Section)
	r.GET("/privacy", h.Privacy)
	r.POST("/contact", h.SubmitContact)

	r.GET("/auth", h.AuthPage)
	r.POST("/auth/signin", h.SignIn)
	r.POST("/auth/signup", h.SignUp)
	r.POST("/auth/signout", h.SignOut)

	api := r.Group("/api", apiMiddleware...)
	api.GET("/profile", h.GetProfile)
	api.GET("/contact-info", h.GetContactInfo)
	api.GET("/skills", h.ListSkills)
	api.GET("/skills/grouped", h.GroupedSkills)
	api.GET("/experience", h.ListExperience)
	api.GET("/education", h.ListEducation)
	api.GET("/projects", h.ListProjects)
	api.GET("/certifications", h.ListCertifications)
	api.POST("/contact", h.SubmitContactJSON)
	api.GET("/auth/session", h.CurrentSession)

	admin := r.Group("/admin", auth.RequireAdmin())
	admin.GET("", h.Dashboard)
	admin.GET("/api/profile", h.GetAdminProfile)
	admin.PUT("/api/profile", h.SaveProfile)
	admin.POST("/api/profile/image", h.UploadProfileImage)
	admin.GET("/api/contact-info", h.GetAdminContactInfo)
	admin.PUT("/api/contact-info", h.SaveContactInfo)
	admin.GET("/api/messages", h.ListMessages)
	admin.PATCH("/api/messages/:id", h.UpdateMessageStatus)
	admin.DELETE("/api/messages/:id", h.DeleteMessage)
	admin.GET("/api/stats", h.Stats)
	admin.GET("/export/stats", h.ExportStats)
	admin.POST("/privacy/cleanup", h.PrivacyCleanup)
	for _, m := range h.managers {
		m.register(admin)
	}

	r.NoRoute(h.NotFound)
}
