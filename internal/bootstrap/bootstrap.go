// Package bootstrap opens the configured slot backend and the services that
// sit on it. Both the HTTP server and financectl start through here.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tinoosan/finboard/internal/config"
	"github.com/tinoosan/finboard/internal/service/finance"
	"github.com/tinoosan/finboard/internal/service/prefs"
	"github.com/tinoosan/finboard/internal/storage"
	"github.com/tinoosan/finboard/internal/storage/file"
	"github.com/tinoosan/finboard/internal/storage/memory"
	"github.com/tinoosan/finboard/internal/storage/mongodb"
	pgstore "github.com/tinoosan/finboard/internal/storage/postgres"
)

// Checker reports backend readiness.
type Checker interface {
	Ready(ctx context.Context) error
}

// Backend is an opened slot store. Checker is nil for local backends.
type Backend struct {
	Name    string
	Slots   storage.Slots
	Checker Checker
	close   func()
}

// Close releases connections held by the backend.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// OpenBackend connects the backend named in cfg.
func OpenBackend(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (*Backend, error) {
	switch cfg.Backend {
	case config.StorageMemory:
		return &Backend{Name: cfg.Backend, Slots: memory.New()}, nil
	case config.StorageFile:
		fs, err := file.Open(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return &Backend{Name: cfg.Backend, Slots: fs}, nil
	case config.StoragePostgres:
		pg, err := pgstore.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return &Backend{Name: cfg.Backend, Slots: pg, Checker: pg, close: pg.Close}, nil
	case config.StorageMongo:
		m, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, logger)
		if err != nil {
			return nil, err
		}
		closeFn := func() {
			if err := m.Close(context.Background()); err != nil {
				logger.Error("mongo disconnect failed", "err", err)
			}
		}
		return &Backend{Name: cfg.Backend, Slots: m, Checker: m, close: closeFn}, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}

// Services are the loaded ledger and preference stores.
type Services struct {
	Ledger *finance.Store
	Prefs  *prefs.Service
}

// Load builds both stores over slots and reads their persisted state.
// Extra store options are applied after the config-derived ones.
func Load(ctx context.Context, slots storage.Slots, cfg config.LedgerConfig, logger *slog.Logger, opts ...finance.Option) (*Services, error) {
	base := []finance.Option{finance.WithLogger(logger)}
	if cfg.StrictEdit {
		base = append(base, finance.WithResyncOnEdit())
	}
	store := finance.New(slots, append(base, opts...)...)
	store.Load(ctx)
	p := prefs.New(slots, logger)
	p.Load(ctx)

	if cfg.DevSeed && len(store.Snapshot().Accounts) == 0 {
		acc, err := store.AddAccount(ctx, finance.NewAccount{Name: "Carteira"})
		if err != nil {
			return nil, fmt.Errorf("dev seed: %w", err)
		}
		logger.InfoContext(ctx, "DEV seed", "account_id", acc.ID, "account", acc.Name)
	}
	return &Services{Ledger: store, Prefs: p}, nil
}
