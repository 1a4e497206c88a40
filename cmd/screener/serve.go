package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"resume-screener/internal/bootstrap"
	"resume-screener/internal/shared/server"
	"resume-screener/internal/shared/storage/db"
	"resume-screener/internal/shared/telemetry"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		migrate, _ := cmd.Flags().GetBool("migrate")
		return serve(cmd.Context(), migrate)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("port", "", "listen port")
	serveCmd.Flags().Bool("migrate", false, "apply database migrations before serving")
	bindFlag(v, serveCmd, "PORT", "port")
}

func serve(ctx context.Context, migrate bool) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := loadConfig()
	app, err := bootstrap.BuildContext(ctx, cfg)
	if err != nil {
		telemetry.Error("serve.bootstrap_failed", map[string]any{"error": err})
		return err
	}
	defer app.Close()

	if migrate && app.DB != nil {
		version, err := db.RunMigrations(ctx, app.DB)
		if err != nil {
			telemetry.Error("serve.migrate_failed", map[string]any{"error": err})
			return err
		}
		telemetry.Info("serve.migrated", map[string]any{"version": version})
	}

	srv := &http.Server{
		Addr:              server.Addr(cfg.Port),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		telemetry.Info("serve.listening", map[string]any{"addr": srv.Addr, "env": cfg.Env})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		telemetry.Error("serve.failed", map[string]any{"error": err})
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	telemetry.Info("serve.shutdown", map[string]any{"timeout": shutdownTimeout.String()})
	return srv.Shutdown(shutdownCtx)
}
