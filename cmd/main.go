package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tinoosan/finboard/internal/backup"
	"github.com/tinoosan/finboard/internal/bootstrap"
	"github.com/tinoosan/finboard/internal/config"
	httpapi "github.com/tinoosan/finboard/internal/httpapi/v1"
	"github.com/tinoosan/finboard/internal/service/finance"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}
	logger := cfg.Log.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	backend, err := bootstrap.OpenBackend(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Error("failed to open storage", "backend", cfg.Storage.Backend, "err", err)
		os.Exit(1)
	}
	defer backend.Close()
	logger.Info("storage backend: " + backend.Name)

	svc, err := bootstrap.Load(ctx, backend.Slots, cfg.Ledger, logger, finance.WithObserver(httpapi.ObserveMutation))
	if err != nil {
		logger.Error("failed to load ledger", "err", err)
		os.Exit(1)
	}

	opts := []httpapi.Option{
		httpapi.WithLocation(cfg.Ledger.Location),
		httpapi.WithJWT(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience),
	}
	if backend.Checker != nil {
		opts = append(opts, httpapi.WithReadiness(backend.Checker))
	}
	if cfg.BackupURI != "" {
		sink, err := backup.Open(ctx, cfg.BackupURI)
		if err != nil {
			logger.Warn("backups disabled", "uri", cfg.BackupURI, "err", err)
		} else {
			opts = append(opts, httpapi.WithBackupSink(sink))
			if c, ok := sink.(interface{ Close() error }); ok {
				defer c.Close()
			}
		}
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           httpapi.New(svc.Ledger, svc.Prefs, logger, opts...).Handler(),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("finboard listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", "err", err)
		}
	case err := <-errCh:
		logger.Error("server error", "err", err)
	}
}
