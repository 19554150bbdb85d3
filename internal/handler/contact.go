package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/domain"
)

const (
	contactSent        = "Thank you for your message! I'll get back to you soon."
	contactFailed      = "Sorry, there was an error sending your message. Please try again later."
	contactRateLimited = "You have sent several messages already. Please try again later."
)

// SubmitContact handles the HTMX contact form. A successful submission
// renders an empty form; a failed one keeps what the visitor typed.
func (h *Handler) SubmitContact(c *gin.Context) {
	form := &domain.ContactMessage{}
	data := gin.H{"Form": form, "Errors": map[string]string{}}

	if err := c.ShouldBind(form); err != nil {
		data["Error"] = contactFailed
		c.HTML(http.StatusOK, "contact-form", data)
		return
	}

	_, err := h.services.Contact.Submit(c.Request.Context(), form, h.clientKey(c))
	if errs, ok := domain.AsValidation(err); ok {
		data["Errors"] = errs.Map()
	} else if errors.Is(err, domain.ErrRateLimited) {
		data["Error"] = contactRateLimited
	} else if err != nil {
		logFailure(c, http.StatusInternalServerError, err)
		data["Error"] = contactFailed
	} else {
		data["Form"] = &domain.ContactMessage{}
		data["Success"] = contactSent
	}
	c.HTML(http.StatusOK, "contact-form", data)
}

func (h *Handler) SubmitContactJSON(c *gin.Context) {
	var form domain.ContactMessage
	if err := c.ShouldBindJSON(&form); err != nil {
		respondError(c, bindError(err))
		return
	}
	msg, err := h.services.Contact.Submit(c.Request.Context(), &form, h.clientKey(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// clientKey identifies a sender for rate limiting without keeping the raw
// address.
func (h *Handler) clientKey(c *gin.Context) string {
	return h.services.Visitors.HashIP(c.ClientIP())
}
