package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/domain"
)

var emailTemplate = template.Must(template.New("contact").Parse(`<h2>New contact form submission</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
<p><strong>Subject:</strong> {{.Subject}}</p>
<p><strong>Message:</strong></p>
<p style="white-space: pre-wrap">{{.Message}}</p>
<hr>
<p><small>Sent from your portfolio contact form</small></p>
`))

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier mails each contact message to the site owner with the
// visitor as Reply-To.
type SMTPNotifier struct {
	cfg  config.SMTPConfig
	send sendFunc
}

func NewSMTPNotifier(cfg config.SMTPConfig) *SMTPNotifier {
	if cfg.ToEmail == "" {
		cfg.ToEmail = cfg.User
	}
	return &SMTPNotifier{cfg: cfg, send: smtp.SendMail}
}

func (n *SMTPNotifier) NotifyContact(ctx context.Context, msg *domain.ContactMessage) error {
	if !n.cfg.Enabled() {
		return fmt.Errorf("SMTP credentials not configured")
	}

	body, err := n.compose(msg)
	if err != nil {
		return err
	}

	auth := smtp.PlainAuth("", n.cfg.User, n.cfg.Pass, n.cfg.Host)
	done := make(chan error, 1)
	go func() {
		done <- n.send(n.cfg.Host+":"+n.cfg.Port, auth, n.cfg.User, []string{n.cfg.ToEmail}, body)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send email: %w", err)
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	log.Info().Str("message_id", msg.ID).Msg("contact email sent")
	return nil
}

func (n *SMTPNotifier) compose(msg *domain.ContactMessage) ([]byte, error) {
	var html bytes.Buffer
	if err := emailTemplate.Execute(&html, msg); err != nil {
		return nil, fmt.Errorf("render email: %w", err)
	}

	var b bytes.Buffer
	b.WriteString("To: " + n.cfg.ToEmail + "\r\n")
	b.WriteString("From: " + n.cfg.User + "\r\n")
	b.WriteString("Reply-To: " + headerValue(msg.Email) + "\r\n")
	b.WriteString("Subject: New Portfolio Message: " + headerValue(msg.Subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.Write(html.Bytes())
	b.WriteString("\r\n")
	return b.Bytes(), nil
}

// headerValue strips line breaks so visitor input cannot add headers.
func headerValue(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
