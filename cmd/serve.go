package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/huangsam/pivotrend/internal/contract"
	"github.com/huangsam/pivotrend/internal/dataset"
	"github.com/huangsam/pivotrend/internal/server"
	"github.com/spf13/cobra"
)

// serveCmd exposes the engine over HTTP.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve pivot, boxplot and trend requests over HTTP.",
	Long: `Start an HTTP server with the endpoints

  POST /api/v1/pivot
  POST /api/v1/boxplot
  POST /api/v1/trend
  GET  /healthz

Request bodies carry an inline dataset, an input location or a stored
dataset name plus per-request options. The format query parameter picks
the response encoding (json by default).`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		api := server.NewWebAPI(*contract.Logger(), server.Config{
			Addr: cfg.Addr,
			Base: cfg,
			Open: dataset.Open,
		})
		if err := api.Start(ctx); err != nil {
			contract.LogFatal("Server stopped", err)
		}
	},
}
