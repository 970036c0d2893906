// Package serve implements the hrhub serve command.
package serve

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hrsuite/hrhub/internal/api"
	"github.com/hrsuite/hrhub/internal/conf"
	"github.com/hrsuite/hrhub/internal/kvstore"
	"github.com/hrsuite/hrhub/internal/notification"
	"github.com/hrsuite/hrhub/internal/observability"
)

const shutdownTimeout = 10 * time.Second

// Command returns the serve subcommand: it runs the notification REST API
// until interrupted.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the notification center API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(settings)
		},
	}
}

func runServer(settings *conf.Settings) error {
	kv, err := kvstore.Open(settings.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open data directory: %w", err)
	}

	metrics, err := observability.NewMetrics()
	if err != nil {
		return fmt.Errorf("failed to set up metrics: %w", err)
	}

	svc := notification.NewService(&notification.ServiceConfig{
		Debug:         settings.Debug,
		RetentionDays: settings.RetentionDays,
		SeedUsers:     settings.SeedUsers,
	}, kv)
	svc.SetMetrics(metrics)

	logger := slog.Default().With("module", "api")
	controller := api.New(settings, svc, metrics, logger)

	errCh := make(chan error, 1)
	go func() {
		if err := controller.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := controller.Echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
