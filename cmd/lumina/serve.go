package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"lumina/internal/api"
	"lumina/internal/journal"
	"lumina/internal/slogutil"
)

var (
	servePort int
	serveHost string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP API server",
	Long: `Start the Lumina HTTP API server. It exposes POST /analyze, GET /system-health,
POST /chat, GET /history and GET /health. The project snapshot lives in memory and
starts from the configured defaults on every start.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides server.port)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (overrides server.host)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	if serveHost != "" {
		cfg.Server.Host = serveHost
	}

	factory := slogutil.NewLoggerFactory(rootDir, cfg, cliLevel())
	defer func() { _ = factory.Close() }()
	logger := factory.Logger("api")

	responder, err := newResponder(cfg)
	if err != nil {
		return err
	}

	// The snapshot store is seeded from cfg.Snapshot by NewServer
	deps := api.Deps{Responder: responder}

	if cfg.Journal.Enabled {
		store, err := journal.Open(journalPath(cfg), factory.Logger("journal"))
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer func() { _ = store.Close() }()
		deps.Journal = store
	}

	server, err := api.NewServer(cfg, deps, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		fmt.Fprintf(cmd.OutOrStdout(), "Lumina HTTP API server listening on http://%s\n", server.Addr())
		fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")
		serverErr <- server.Start()
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("Server error", "error", err.Error())
			return err
		}
	case <-ctx.Done():
		logger.Info("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error during shutdown", "error", err.Error())
			return err
		}

		logger.Info("Server stopped gracefully")
	}

	return nil
}
