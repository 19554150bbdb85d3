package notify

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/domain"
)

func testMessage() *domain.ContactMessage {
	return &domain.ContactMessage{
		ID:        "msg-1",
		Name:      "Ada",
		Email:     "ada@example.com",
		Subject:   "Hi\r\nBcc: evil@example.com",
		Message:   "<b>Hello</b> there",
		Status:    domain.MessageUnread,
		CreatedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestSMTPNotifierComposesMail(t *testing.T) {
	n := NewSMTPNotifier(config.SMTPConfig{Host: "smtp.example.com", Port: "587", User: "me@example.com", Pass: "secret"})

	var gotAddr string
	var gotTo []string
	var gotBody string
	n.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotBody = addr, to, string(msg)
		return nil
	}

	require.NoError(t, n.NotifyContact(context.Background(), testMessage()))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, []string{"me@example.com"}, gotTo)
	assert.Contains(t, gotBody, "Reply-To: ada@example.com\r\n")
	assert.Contains(t, gotBody, "Subject: New Portfolio Message: Hi  Bcc: evil@example.com\r\n")
	assert.Contains(t, gotBody, "&lt;b&gt;Hello&lt;/b&gt; there")
	headers, _, _ := strings.Cut(gotBody, "\r\n\r\n")
	assert.NotContains(t, headers, "\r\nBcc:")
}

func TestSMTPNotifierWithoutCredentials(t *testing.T) {
	n := NewSMTPNotifier(config.SMTPConfig{Host: "smtp.example.com", Port: "587"})
	assert.Error(t, n.NotifyContact(context.Background(), testMessage()))
}

func TestSMTPNotifierSendError(t *testing.T) {
	n := NewSMTPNotifier(config.SMTPConfig{Host: "h", Port: "25", User: "u@example.com", Pass: "p"})
	n.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("refused") }

	err := n.NotifyContact(context.Background(), testMessage())
	assert.ErrorContains(t, err, "refused")
}

func TestDisabledAMQPNotifierSkips(t *testing.T) {
	n, err := NewAMQPNotifier("")
	require.NoError(t, err)
	assert.False(t, n.Enabled())
	assert.NoError(t, n.NotifyContact(context.Background(), testMessage()))
	assert.NoError(t, n.Close())
}

func TestContactEventBody(t *testing.T) {
	ev := newContactEvent(testMessage())
	assert.Equal(t, ContactCreatedRouting, ev.EventType)
	assert.Equal(t, "msg-1", ev.MessageID)
	assert.Equal(t, "ada@example.com", ev.Email)
}

type failingNotifier struct{ calls int }

func (f *failingNotifier) NotifyContact(context.Context, *domain.ContactMessage) error {
	f.calls++
	return errors.New("down")
}

func TestMultiTriesEveryNotifier(t *testing.T) {
	first, second := &failingNotifier{}, &failingNotifier{}
	err := Multi{first, LogNotifier{}, second}.NotifyContact(context.Background(), testMessage())

	assert.EqualError(t, err, "down")
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}
