package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Publisher interface {
	PublishBookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error
}

// AMQPPublisher publishes persistent messages to RabbitMQ. The connection is
// opened lazily and re-dialed after the broker drops it.
type AMQPPublisher struct {
	url    string
	logger *slog.Logger

	mu   sync.Mutex
	conn *amqp.Connection
}

func NewAMQPPublisher(url string, logger *slog.Logger) *AMQPPublisher {
	return &AMQPPublisher{
		url:    url,
		logger: logger,
	}
}

func (p *AMQPPublisher) PublishBookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ch, err := p.channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	_, err = ch.QueueDeclare(BookingConfirmedQueue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.BookingID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	err = ch.PublishWithContext(ctx, "", BookingConfirmedQueue, false, false, msg)
	if err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	p.logger.Debug("event published", "queue", BookingConfirmedQueue, "booking_id", event.BookingID)
	return nil
}

func (p *AMQPPublisher) channel() (*amqp.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqp.Dial(p.url)
		if err != nil {
			return nil, fmt.Errorf("dial broker: %w", err)
		}
		p.conn = conn
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("channel open: %w", err)
	}

	return ch, nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || p.conn.IsClosed() {
		return nil
	}

	return p.conn.Close()
}

// NopPublisher drops events. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishBookingConfirmed(context.Context, BookingConfirmedEvent) error {
	return nil
}
