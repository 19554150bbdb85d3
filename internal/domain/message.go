package domain

import (
	"strings"
	"time"
)

type MessageStatus string

const (
	MessageUnread  MessageStatus = "unread"
	MessageRead    MessageStatus = "read"
	MessageReplied MessageStatus = "replied"
)

func (s MessageStatus) Valid() bool {
	switch s {
	case MessageUnread, MessageRead, MessageReplied:
		return true
	}
	return false
}

// ContactMessage is a submission of the public contact form.
type ContactMessage struct {
	ID        string        `json:"id"`
	Name      string        `json:"name" form:"name" validate:"required,min=2,max=100"`
	Email     string        `json:"email" form:"email" validate:"required,email,max=255"`
	Subject   string        `json:"subject" form:"subject" validate:"max=200"`
	Message   string        `json:"message" form:"message" validate:"required,min=10,max=1000"`
	Status    MessageStatus `json:"status" validate:"omitempty,oneof=unread read replied"`
	CreatedAt time.Time     `json:"created_at"`
}

// Validate checks the fields a visitor typed. Call it after Clean and
// before BeforeSave, so length rules apply to the text that will be stored
// and the defaulted subject does not hide a too-long input.
func (m *ContactMessage) Validate() error {
	return ValidateStruct(m)
}

// Clean strips markup and surrounding whitespace from every typed field.
func (m *ContactMessage) Clean() {
	m.Name = CleanText(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Subject = CleanText(m.Subject)
	m.Message = CleanText(m.Message)
}

// BeforeSave fills the defaults of a cleaned, validated message.
func (m *ContactMessage) BeforeSave(now time.Time) {
	if m.Subject == "" {
		m.Subject = "Message from " + m.Name
	}
	if m.Status == "" {
		m.Status = MessageUnread
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
}

func CountUnread(messages []*ContactMessage) int {
	n := 0
	for _, m := range messages {
		if m.Status == MessageUnread {
			n++
		}
	}
	return n
}
