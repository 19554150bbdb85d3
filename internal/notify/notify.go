package notify

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/Zachkp/portfolio/internal/domain"
)

// Notifier tells the site owner about a new contact message.
type Notifier interface {
	NotifyContact(ctx context.Context, msg *domain.ContactMessage) error
}

// LogNotifier only logs. It is used when no mail or broker is configured.
type LogNotifier struct{}

func (LogNotifier) NotifyContact(ctx context.Context, msg *domain.ContactMessage) error {
	log.Info().
		Str("message_id", msg.ID).
		Str("subject", msg.Subject).
		Msg("new contact message (no notifier configured)")
	return nil
}

// Multi fans a notification out to several notifiers and returns the
// first error after trying all of them.
type Multi []Notifier

func (m Multi) NotifyContact(ctx context.Context, msg *domain.ContactMessage) error {
	var firstErr error
	for _, n := range m {
		if err := n.NotifyContact(ctx, msg); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
