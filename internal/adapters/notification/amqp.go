package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/bank_demo_app/internal/core/domain"
	"github.com/SscSPs/bank_demo_app/internal/middleware"
	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
)

// EmailRequestedRoutingKey is the routing key of published email requests.
const EmailRequestedRoutingKey = "email.requested"

// EmailRequested is the event consumed by the mail gateway.
type EmailRequested struct {
	MessageID   string    `json:"message_id"`
	RequestID   string    `json:"request_id,omitempty"`
	To          string    `json:"to"`
	Subject     string    `json:"subject"`
	Text        string    `json:"text"`
	RequestedAt time.Time `json:"requested_at"`
}

// publisher sends one message and reports whether the broker confirmed it.
type publisher interface {
	Publish(ctx context.Context, exchange, routingKey string, msg amqp091.Publishing) (bool, error)
	Close() error
}

// AMQPSender publishes EmailRequested events to a topic exchange.
type AMQPSender struct {
	exchange string
	pub      publisher
	now      func() time.Time
}

var _ domain.Notifier = (*AMQPSender)(nil)

// NewAMQPSender connects to the broker, declares exchange and enables publisher confirms.
func NewAMQPSender(amqpURL, exchange string) (*AMQPSender, error) {
	pub, err := dialPublisher(amqpURL, exchange)
	if err != nil {
		return nil, err
	}
	return newAMQPSender(pub, exchange), nil
}

func newAMQPSender(pub publisher, exchange string) *AMQPSender {
	return &AMQPSender{exchange: exchange, pub: pub, now: time.Now}
}

// Send publishes the email request and reports true once the broker acknowledges it.
func (s *AMQPSender) Send(ctx context.Context, subject, text, address string) (bool, error) {
	event := EmailRequested{
		MessageID:   uuid.NewString(),
		To:          address,
		Subject:     subject,
		Text:        text,
		RequestedAt: s.now().UTC(),
	}
	if requestID, ok := middleware.GetRequestID(ctx); ok {
		event.RequestID = requestID
	}

	body, err := json.Marshal(event)
	if err != nil {
		return false, fmt.Errorf("failed to marshal email request: %w", err)
	}

	acked, err := s.pub.Publish(ctx, s.exchange, EmailRequestedRoutingKey, amqp091.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp091.Persistent,
		MessageId:     event.MessageID,
		CorrelationId: event.RequestID,
		Timestamp:     event.RequestedAt,
		Body:          body,
	})
	if err != nil {
		return false, fmt.Errorf("failed to publish email request: %w", err)
	}

	middleware.LoggerOrDefault(ctx).Info("Published email request",
		slog.String("exchange", s.exchange),
		slog.String("message_id", event.MessageID),
		slog.Bool("acked", acked))
	return acked, nil
}

// Close releases the broker channel and connection.
func (s *AMQPSender) Close() error {
	return s.pub.Close()
}

type amqpPublisher struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func dialPublisher(amqpURL, exchange string) (*amqpPublisher, error) {
	cleanURL, err := sanitizeAMQPURL(amqpURL)
	if err != nil {
		return nil, err
	}

	conn, err := amqp091.Dial(cleanURL)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	p := &amqpPublisher{conn: conn, channel: channel}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		p.Close()
		return nil, err
	}

	if err := channel.Confirm(false); err != nil {
		p.Close()
		return nil, err
	}

	return p, nil
}

func (p *amqpPublisher) Publish(ctx context.Context, exchange, routingKey string, msg amqp091.Publishing) (bool, error) {
	confirm, err := p.channel.PublishWithDeferredConfirmWithContext(ctx,
		exchange,   // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		msg)
	if err != nil {
		return false, err
	}
	return confirm.WaitContext(ctx)
}

func (p *amqpPublisher) Close() error {
	var errs []error
	if p.channel != nil {
		errs = append(errs, p.channel.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	return errors.Join(errs...)
}

func sanitizeAMQPURL(raw string) (string, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.Trim(clean, "\"'")
	if !strings.HasSuffix(clean, "/") {
		clean += "/"
	}
	u, err := url.Parse(clean)
	if err != nil {
		return "", err
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("AMQP scheme must be either 'amqp://' or 'amqps://'")
	}
	return clean, nil
}
