package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/imagesleuth/imagesleuth/internal/config"
	"github.com/imagesleuth/imagesleuth/internal/handlers"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Long: `Starts the imagesleuth web interface on the specified port.

The web interface accepts an image upload (drag-and-drop or file pick),
classifies it as AI-generated or real, and renders its frequency-domain
spectrum with a heuristic artifact summary.`,
		Example: `  # Start server on the default port
  imagesleuth serve

  # Start server on a custom port
  imagesleuth serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if port != "" {
				cfg.Port = port
			}

			handler, err := handlers.New(cfg)
			if err != nil {
				return err
			}

			// Touch the model in the background so the first upload does
			// not pay the cold-load cost.
			go handler.Service().Warm(cmd.Context())

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/analyze", handler.HandleAnalyze)
			mux.HandleFunc("/api/reports", handler.HandleReports)
			mux.HandleFunc("/api/reports/", handler.HandleReportDetail)
			mux.HandleFunc("/", handler.HandleStatic)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + cfg.Port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Imagesleuth interface available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (default from IMAGESLEUTH_PORT or 8787)")

	return cmd
}
