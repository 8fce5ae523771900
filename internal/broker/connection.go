// Package broker runs engine requests received over RabbitMQ.
package broker

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Channel is the subset of *amqp.Channel the worker needs.
type Channel interface {
	Qos(prefetchCount, prefetchSize int, global bool) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

var _ Channel = (*amqp.Channel)(nil) // Compile-time check

// Connection owns the AMQP connection and the one channel the worker uses.
type Connection struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// Dial connects to url, retrying until the broker is reachable or maxRetries is spent.
func Dial(ctx context.Context, url string, maxRetries int, retryInterval time.Duration) (*Connection, error) {
	logger := zerolog.Ctx(ctx)
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		conn, err := amqp.Dial(url)
		if err == nil {
			ch, err := conn.Channel()
			if err != nil {
				_ = conn.Close()
				return nil, fmt.Errorf("failed to open channel: %w", err)
			}
			return &Connection{conn: conn, ch: ch}, nil
		}
		lastErr = err
		logger.Debug().Err(err).Int("attempt", attempt).Msg("broker not reachable yet")

		if attempt == maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d retries: %w", maxRetries, lastErr)
}

// Channel returns the worker channel.
func (c *Connection) Channel() Channel {
	return c.ch
}

// Close closes the channel, then the connection.
func (c *Connection) Close() error {
	chErr := c.ch.Close()
	if err := c.conn.Close(); err != nil {
		return err
	}
	return chErr
}
