package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ekurt/newspulse/internal/api"
	"github.com/ekurt/newspulse/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the REST API and websocket server.

This command:
- Serves the leaderboard, pool, and accuracy metrics
- Exposes cron-guarded scan/measure trigger endpoints
- Pushes leaderboard updates to websocket subscribers

Endpoints:
  GET  /health               - Health check
  GET  /api/leaderboard      - Ranked impact view
  GET  /api/pool             - Scored event pool
  GET  /api/metrics          - Scoring accuracy report
  GET  /api/comments         - AI commentary on top events
  GET  /api/history          - Measured-event archive
  POST /api/scan             - Trigger a scan pass (cron secret)
  POST /api/measure          - Trigger a measurement pass (cron secret)
  GET  /ws                   - Leaderboard websocket feed

Example:
  go run ./cmd/newspulse api
  go run ./cmd/newspulse api --port 8090`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== NewsPulse API Server ===")

	st, err := initStack()
	if err != nil {
		return fmt.Errorf("init stack: %w", err)
	}
	defer st.Close()

	// Override port if flag is set
	if apiPort != "" {
		st.cfg.Port = apiPort
	}

	log := st.logger
	log.WithFields(map[string]interface{}{
		"port": st.cfg.Port,
		"env":  st.cfg.Env,
	}).Info("Initializing API server")

	// Create handler, router, server
	h := handlers.New(st.repo, st.poolMgr, st.scanner, st.measurer, st.gemini, st.history, st.hub, log)
	router := api.NewRouter(h, st.cfg, log)
	server := api.New(st.cfg, log, router)

	// Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", st.cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  GET  /api/leaderboard")
	fmt.Println("  GET  /api/pool")
	fmt.Println("  GET  /api/metrics")
	fmt.Println("  GET  /api/comments")
	fmt.Println("  GET  /api/history")
	fmt.Println("  POST /api/scan")
	fmt.Println("  POST /api/measure")
	fmt.Println("  GET  /ws")
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
