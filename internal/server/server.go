// Package server exposes the pivot, boxplot and trend computations over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/huangsam/pivotrend/core"
	"github.com/huangsam/pivotrend/internal/contract"
	"github.com/rs/zerolog"
)

// DefaultShutdownTimeout bounds how long in-flight requests may finish after shutdown.
const DefaultShutdownTimeout = 10 * time.Second

// WebAPI is the HTTP front end of the engine.
type WebAPI struct {
	router *chi.Mux
	logger *zerolog.Logger
	server *http.Server
	config Config
}

// Config holds the server settings.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Base            *contract.Config // defaults every request starts from
	Open            core.SourceOpener
}

// NewWebAPI wires the routes and middleware.
func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = DefaultShutdownTimeout
	}
	h := &handler{base: config.Base, open: config.Open}

	router := chi.NewRouter()

	router.Use(Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", h.Health)
	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/pivot", h.Pivot)
		r.Post("/boxplot", h.Boxplot)
		r.Post("/trend", h.Trend)
	})

	return &WebAPI{
		router: router,
		logger: &logger,
		config: config,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler returns the routed handler, for tests and embedding.
func (w *WebAPI) Handler() http.Handler {
	return w.router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (w *WebAPI) Start(ctx context.Context) error {
	serverErrors := make(chan error, 1)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), w.config.ShutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(shutdownCtx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}
		return err
	}
}
