package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docqa/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/docqa/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the HTTP server exposing document upload, listing, deletion,
question answering, and health endpoints.

Examples:
  # Listen on the configured address (default :8000)
  docqa serve

  # Override the listen address
  docqa serve --addr :9000`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides configuration)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.ListenAddr
	}

	server := httpapi.NewServer(&httpapi.Ports{
		Ingestion: ingestionService,
		Query:     queryService,
		Health:    healthService,
	}, cfg.Upload.MaxFileSizeMB)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Best effort: the store may come up after the server does, and every
	// operation ensures the collection again before touching it.
	if err := vectorStore.EnsureCollection(ctx); err != nil {
		logger.Warn("Vector store not ready at startup: %v", err)
	}

	return server.Run(ctx, addr)
}
