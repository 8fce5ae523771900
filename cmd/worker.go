package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/huangsam/pivotrend/internal/broker"
	"github.com/huangsam/pivotrend/internal/contract"
	"github.com/huangsam/pivotrend/internal/dataset"
	"github.com/spf13/cobra"
)

// Broker connection retries before the worker gives up.
const (
	dialRetries  = 30
	dialInterval = time.Second
)

// workerCmd consumes engine requests from RabbitMQ.
var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Process pivot, boxplot and trend requests from a RabbitMQ queue.",
	Long: `Consume JSON requests one at a time from --request-queue and publish
each response to the reply-to queue of the message, or --result-queue.

Malformed requests are answered with an error response and dropped; other
failures are requeued once.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		conn, err := broker.Dial(ctx, cfg.AMQPURL, dialRetries, dialInterval)
		if err != nil {
			contract.LogFatal("Cannot connect to broker", err)
		}
		defer func() { _ = conn.Close() }()

		w := broker.NewWorker(conn.Channel(), *contract.Logger(), broker.Config{
			RequestQueue: cfg.RequestQueue,
			ResultQueue:  cfg.ResultQueue,
			Base:         cfg,
			Open:         dataset.Open,
		})
		if err := w.Setup(); err != nil {
			contract.LogFatal("Cannot set up worker", err)
		}
		if err := w.Run(ctx); err != nil {
			contract.LogFatal("Worker stopped", err)
		}
	},
}
