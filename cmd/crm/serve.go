package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"crm/internal/config"
	"crm/internal/server"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var addr, staticDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ws, cfg, logger, closeStore, err := openWorkspace(ctx, flags)
			if err != nil {
				return err
			}
			defer closeStore()

			if addr != "" {
				cfg.Addr = addr
			}
			if staticDir != "" {
				cfg.StaticDir = staticDir
			}

			logger.Info("crm dashboard", slog.String("version", Version), slog.String("storage", cfg.Storage.Driver))

			schedule, err := config.ParseSchedule(cfg.FlushSchedule)
			if err != nil {
				return err
			}
			flushed := ws.StartFlusher(ctx, schedule)

			srv := server.New(ws, logger, cfg.StaticDir)
			httpServer := &http.Server{
				Addr:    cfg.Addr,
				Handler: srv.Engine(),
			}

			go func() {
				logger.Info("starting server", slog.String("addr", httpServer.Addr))
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
					stop()
				}
			}()

			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("failed to shutdown server", slog.String("error", err.Error()))
			}
			<-flushed
			if err := ws.Flush(shutdownCtx); err != nil {
				logger.Warn("unpersisted changes at shutdown", slog.String("error", err.Error()))
			}

			logger.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (overrides config)")
	cmd.Flags().StringVar(&staticDir, "static", "", "Directory with built frontend (overrides config)")
	return cmd
}
