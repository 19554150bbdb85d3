package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Zachkp/portfolio/internal/domain"
	"github.com/Zachkp/portfolio/internal/metrics"
	"github.com/Zachkp/portfolio/internal/notify"
	"github.com/Zachkp/portfolio/internal/ratelimit"
)

const notifyTimeout = 10 * time.Second

// ContactService accepts public contact form submissions.
type ContactService struct {
	messages domain.MessageRepository
	notifier notify.Notifier
	limiter  ratelimit.Limiter
	now      func() time.Time
}

func NewContactService(messages domain.MessageRepository, notifier notify.Notifier, limiter ratelimit.Limiter) *ContactService {
	if notifier == nil {
		notifier = notify.LogNotifier{}
	}
	if limiter == nil {
		limiter = ratelimit.Unlimited{}
	}
	return &ContactService{messages: messages, notifier: notifier, limiter: limiter, now: time.Now}
}

// Submit stores a message and then notifies the owner. clientKey
// identifies the sender for rate limiting. A failed notification is logged
// and does not fail the submission.
func (s *ContactService) Submit(ctx context.Context, input *domain.ContactMessage, clientKey string) (*domain.ContactMessage, error) {
	allowed, err := s.limiter.Allow(ctx, clientKey)
	if err != nil {
		log.Warn().Err(err).Msg("rate limiter unavailable, allowing contact submission")
		allowed = true
	}
	if !allowed {
		metrics.ContactSubmissions.WithLabelValues("rate_limited").Inc()
		return nil, domain.ErrRateLimited
	}

	msg := &domain.ContactMessage{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
	}
	msg.Clean()
	if err := msg.Validate(); err != nil {
		metrics.ContactSubmissions.WithLabelValues("invalid").Inc()
		return nil, err
	}
	msg.ID = domain.NewID()
	msg.BeforeSave(s.now().UTC())

	if err := s.messages.Create(ctx, msg); err != nil {
		metrics.ContactSubmissions.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("save contact message: %w", err)
	}
	metrics.ContactSubmissions.WithLabelValues("sent").Inc()

	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	if err := s.notifier.NotifyContact(notifyCtx, msg); err != nil {
		metrics.NotificationFailures.Inc()
		log.Error().Err(err).Str("message_id", msg.ID).Msg("contact notification failed")
	}

	return msg, nil
}

// MessageService is the admin view of received messages.
type MessageService struct {
	repo domain.MessageRepository
}

func NewMessageService(repo domain.MessageRepository) *MessageService {
	return &MessageService{repo: repo}
}

func (s *MessageService) List(ctx context.Context) ([]*domain.ContactMessage, error) {
	messages, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

func (s *MessageService) UpdateStatus(ctx context.Context, id string, status domain.MessageStatus) (*domain.ContactMessage, error) {
	if !status.Valid() {
		return nil, domain.NewValidationError("status", "Status must be one of unread, read, replied")
	}
	if !domain.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update message %s: %w", id, err)
	}
	msg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get message %s: %w", id, err)
	}
	return msg, nil
}

func (s *MessageService) Delete(ctx context.Context, id string) error {
	if !domain.ValidID(id) {
		return domain.ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete message %s: %w", id, err)
	}
	return nil
}

func (s *MessageService) UnreadCount(ctx context.Context) (int, error) {
	messages, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	return domain.CountUnread(messages), nil
}
