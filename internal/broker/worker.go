package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/pivotrend/core"
	"github.com/huangsam/pivotrend/internal/contract"
	"github.com/huangsam/pivotrend/schema"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// ErrDeliveriesClosed is returned by Run when the broker closes the consumer.
var ErrDeliveriesClosed = errors.New("delivery channel closed")

// Config holds the worker settings.
type Config struct {
	RequestQueue string
	ResultQueue  string
	Base         *contract.Config // defaults every request starts from
	Open         core.SourceOpener
}

// Worker consumes one request at a time and publishes its response.
type Worker struct {
	ch     Channel
	logger zerolog.Logger
	config Config
}

// NewWorker returns a worker publishing and consuming on ch.
func NewWorker(ch Channel, logger zerolog.Logger, config Config) *Worker {
	return &Worker{ch: ch, logger: logger, config: config}
}

// Setup limits prefetch to one message and declares both queues.
func (w *Worker) Setup() error {
	if err := w.ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}
	for _, q := range []string{w.config.RequestQueue, w.config.ResultQueue} {
		if _, err := w.ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return fmt.Errorf("failed to declare queue %q: %w", q, err)
		}
	}
	return nil
}

// Run handles deliveries until ctx is cancelled or the broker closes the consumer.
func (w *Worker) Run(ctx context.Context) error {
	deliveries, err := w.ch.Consume(w.config.RequestQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming %q: %w", w.config.RequestQueue, err)
	}
	w.logger.Info().Str("queue", w.config.RequestQueue).Msg("worker started")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("worker stopping")
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return ErrDeliveriesClosed
			}
			w.handle(ctx, d)
		}
	}
}

// handle acks a delivery once its response is published. Requests that can
// never succeed are answered with an error response and dropped; other
// failures are requeued once.
func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	logger := w.logger.With().Uint64("tag", d.DeliveryTag).Str("correlation", d.CorrelationId).Logger()
	ctx = logger.WithContext(ctx)

	var req schema.Request
	if err := json.Unmarshal(d.Body, &req); err != nil {
		logger.Warn().Err(err).Msg("dropping undecodable request")
		w.settle(logger, d.Nack(false, false))
		return
	}

	resp, err := core.HandleRequest(ctx, w.config.Base, &req, w.config.Open)
	if err != nil {
		permanent := errors.Is(err, core.ErrInvalidRequest) || errors.Is(err, core.ErrShapeMismatch)
		if !permanent && !d.Redelivered {
			logger.Warn().Err(err).Msg("request failed, requeueing")
			w.settle(logger, d.Nack(false, true))
			return
		}
		logger.Error().Err(err).Bool("redelivered", d.Redelivered).Msg("request rejected")
		resp = &schema.Response{ID: req.ID, Kind: req.Kind, Error: err.Error()}
		if pubErr := w.publish(ctx, d, resp); pubErr != nil {
			logger.Error().Err(pubErr).Msg("failed to publish error response")
		}
		w.settle(logger, d.Nack(false, false))
		return
	}

	if err := w.publish(ctx, d, resp); err != nil {
		logger.Error().Err(err).Msg("failed to publish response")
		w.settle(logger, d.Nack(false, !d.Redelivered))
		return
	}
	w.settle(logger, d.Ack(false))
	logger.Debug().Str("kind", string(req.Kind)).Msg("request served")
}

// publish sends resp to the reply-to queue of d, or the result queue.
func (w *Worker) publish(ctx context.Context, d amqp.Delivery, resp *schema.Response) error {
	body, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	key := d.ReplyTo
	if key == "" {
		key = w.config.ResultQueue
	}
	correlation := d.CorrelationId
	if correlation == "" {
		correlation = resp.ID
	}
	return w.ch.PublishWithContext(ctx, "", key, false, false, amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		CorrelationId: correlation,
		Timestamp:     time.Now(),
		Body:          body,
	})
}

func (w *Worker) settle(logger zerolog.Logger, err error) {
	if err != nil {
		logger.Error().Err(err).Msg("failed to settle delivery")
	}
}
