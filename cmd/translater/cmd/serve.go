package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/katelkum/translater/internal/auth"
	"github.com/katelkum/translater/internal/server"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP translation server",
	Long: `Start an HTTP server that provides REST API endpoints for document
translation.

The server provides the following endpoints:
  POST /translate/text  - Translate raw text
  POST /translate/pdf   - Translate an uploaded PDF
  POST /translate/image - Translate an uploaded page image
  POST /translate/docx  - Translate an uploaded Word document
  GET  /ws/translate    - WebSocket with chunk-level progress
  GET  /health          - Health check endpoint
  GET  /languages       - Configured language pair
  GET  /metrics         - Prometheus metrics

Examples:
  translater serve
  translater serve --port 8080
  translater serve --host 0.0.0.0 --port 3000 --auth`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		host := cfg.Server.Host
		if cmd.Flags().Changed("host") {
			host, _ = cmd.Flags().GetString("host")
		}

		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}

		corsOrigin := cfg.Server.CORSOrigin
		if cmd.Flags().Changed("cors-origin") {
			corsOrigin, _ = cmd.Flags().GetString("cors-origin")
		}

		maxUploadMB := cfg.Server.MaxUploadMB
		if cmd.Flags().Changed("max-upload-size") {
			maxUploadMB, _ = cmd.Flags().GetInt("max-upload-size")
		}

		timeout := cfg.Server.TimeoutSec
		if cmd.Flags().Changed("timeout") {
			timeout, _ = cmd.Flags().GetInt("timeout")
		}

		shutdownTimeout := cfg.Server.ShutdownTimeout
		if cmd.Flags().Changed("shutdown-timeout") {
			shutdownTimeout, _ = cmd.Flags().GetInt("shutdown-timeout")
		}

		rateLimitPerMin := cfg.Server.RateLimitPerMin
		if cmd.Flags().Changed("rate-limit") {
			rateLimitPerMin, _ = cmd.Flags().GetInt("rate-limit")
		}

		authEnabled := cfg.Auth.Enabled
		if cmd.Flags().Changed("auth") {
			authEnabled, _ = cmd.Flags().GetBool("auth")
		}

		credentialsFile := cfg.Auth.CredentialsFile
		if cmd.Flags().Changed("credentials-file") {
			credentialsFile, _ = cmd.Flags().GetString("credentials-file")
		}

		if port < 1 || port > 65535 {
			return fmt.Errorf("invalid port number: %d (must be between 1 and 65535)", port)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		builder, err := newPipelineBuilder(ctx, cfg)
		if err != nil {
			return err
		}
		pl, err := builder.Build()
		if err != nil {
			return err
		}

		var authStore *auth.Store
		if authEnabled {
			authStore, err = auth.NewStore(credentialsFile)
			if err != nil {
				_ = pl.Close()
				return fmt.Errorf("failed to open credentials store: %w", err)
			}
			slog.Info("Authentication enabled", "credentials_file", credentialsFile)
		}

		srv := server.NewServer(server.Config{
			Host:            host,
			Port:            port,
			CORSOrigin:      corsOrigin,
			MaxUploadMB:     int64(maxUploadMB),
			TimeoutSec:      timeout,
			ShutdownTimeout: shutdownTimeout,
			RateLimitPerMin: rateLimitPerMin,
			SourceLang:      cfg.Translator.SourceLang,
			TargetLang:      cfg.Translator.TargetLang,
		}, pl, authStore)

		httpServer := srv.HTTPServer(host, port)

		go func() {
			slog.Info("Starting translation server", "host", host, "port", port)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Server error", "error", err)
				cancel()
			}
		}()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

		select {
		case sig := <-sigChan:
			slog.Info("Received shutdown signal", "signal", sig.String())
		case <-ctx.Done():
			slog.Info("Context cancelled, initiating shutdown")
		}

		slog.Info("Starting graceful shutdown", "timeout", fmt.Sprintf("%ds", shutdownTimeout))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(shutdownTimeout)*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP server shutdown error", "error", err)
		} else {
			slog.Info("HTTP server shutdown completed")
		}

		if err := srv.Close(); err != nil {
			slog.Error("Server cleanup error", "error", err)
		}

		slog.Info("Graceful shutdown completed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("host", "H", "localhost", "server host")
	serveCmd.Flags().IntP("port", "p", 8080, "server port")
	serveCmd.Flags().String("cors-origin", "*", "CORS allowed origins")
	serveCmd.Flags().Int("max-upload-size", 50, "maximum upload size in MB")
	serveCmd.Flags().Int("timeout", 300, "request timeout in seconds")
	serveCmd.Flags().Int("shutdown-timeout", 10, "shutdown timeout in seconds")
	serveCmd.Flags().Int("rate-limit", 30, "maximum requests per minute per client (0 disables)")
	serveCmd.Flags().Bool("auth", false, "require HTTP basic authentication")
	serveCmd.Flags().String("credentials-file", "credentials.json", "path to the credentials store")
}
