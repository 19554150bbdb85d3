package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/Zachkp/portfolio/internal/domain"
)

const (
	EventsExchange        = "portfolio.events"
	ContactCreatedRouting = "contact.message.created"
)

// ContactEvent is the body published for every new contact message.
type ContactEvent struct {
	EventType string    `json:"event_type"`
	MessageID string    `json:"message_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// AMQPNotifier publishes contact events to a topic exchange so another
// process can deliver them.
type AMQPNotifier struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	enabled  bool
}

// NewAMQPNotifier connects to RabbitMQ. An empty URL gives a disabled
// notifier that skips every event.
func NewAMQPNotifier(rabbitURL string) (*AMQPNotifier, error) {
	if rabbitURL == "" {
		log.Warn().Msg("RabbitMQ URL is empty, event publishing is disabled")
		return &AMQPNotifier{exchange: EventsExchange}, nil
	}

	conn, err := amqp091.Dial(rabbitURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		EventsExchange, // name
		"topic",        // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	log.Info().Str("exchange", EventsExchange).Msg("event publisher initialized")
	return &AMQPNotifier{conn: conn, channel: channel, exchange: EventsExchange, enabled: true}, nil
}

func (n *AMQPNotifier) Enabled() bool { return n.enabled }

func (n *AMQPNotifier) NotifyContact(ctx context.Context, msg *domain.ContactMessage) error {
	if !n.enabled {
		log.Debug().Str("message_id", msg.ID).Msg("event publishing disabled, skipping contact event")
		return nil
	}

	body, err := json.Marshal(newContactEvent(msg))
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = n.channel.PublishWithContext(ctx,
		n.exchange,            // exchange
		ContactCreatedRouting, // routing key
		false,                 // mandatory
		false,                 // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
			Headers: amqp091.Table{
				"event_type": ContactCreatedRouting,
				"message_id": msg.ID,
			},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

func (n *AMQPNotifier) Close() error {
	if !n.enabled {
		return nil
	}
	if n.channel != nil {
		if err := n.channel.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing RabbitMQ channel")
		}
	}
	if n.conn != nil {
		if err := n.conn.Close(); err != nil {
			return fmt.Errorf("error closing RabbitMQ connection: %w", err)
		}
	}
	return nil
}

func newContactEvent(msg *domain.ContactMessage) ContactEvent {
	return ContactEvent{
		EventType: ContactCreatedRouting,
		MessageID: msg.ID,
		Name:      msg.Name,
		Email:     msg.Email,
		Subject:   msg.Subject,
		Message:   msg.Message,
		CreatedAt: msg.CreatedAt,
	}
}
