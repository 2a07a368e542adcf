package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Handler interface {
	HandleBookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error
}

// Consumer delivers booking.confirmed messages to a Handler. Messages the
// handler rejects are dropped, not requeued.
type Consumer struct {
	url      string
	handler  Handler
	logger   *slog.Logger
	prefetch int
}

func NewConsumer(url string, handler Handler, logger *slog.Logger) *Consumer {
	return &Consumer{
		url:      url,
		handler:  handler,
		logger:   logger,
		prefetch: 50,
	}
}

// Run consumes until ctx is done, reconnecting with backoff when the broker
// connection is lost.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second

	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.logger.Warn("failed to dial broker", "error", err, "retry_in", backoff)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}

			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consume(ctx, conn)
		_ = conn.Close()

		if ctx.Err() != nil {
			return ctx.Err()
		}

		c.logger.Warn("consume loop ended, reconnecting", "error", err)
	}
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		c.logger.Warn("set qos failed", "error", err)
	}

	_, err = ch.QueueDeclare(BookingConfirmedQueue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	deliveries, err := ch.ConsumeWithContext(ctx, BookingConfirmedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range deliveries {
		c.process(ctx, d)
	}

	return errors.New("deliveries channel closed")
}

func (c *Consumer) process(ctx context.Context, d amqp.Delivery) {
	var event BookingConfirmedEvent

	err := json.Unmarshal(d.Body, &event)
	if err == nil {
		err = c.handler.HandleBookingConfirmed(ctx, event)
	}

	if err != nil {
		c.logger.Error("failed to handle message", "message_id", d.MessageId, "error", err)
		_ = d.Nack(false, false)
		return
	}

	_ = d.Ack(false)
}
