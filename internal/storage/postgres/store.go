// Package postgres provides a pgx-backed slot store. Each slot is one row of
// the slots table; values are kept as jsonb so they stay queryable from psql.
//
// Migrations that create the expected schema live under db/migrations.
package postgres

import (
    "context"
    "errors"
    "fmt"

    "github.com/jackc/pgx/v5"
    "github.com/jackc/pgx/v5/pgxpool"

    "github.com/tinoosan/finboard/internal/errs"
    "github.com/tinoosan/finboard/internal/storage"
)

// Store holds a pgx connection pool. All methods are safe for concurrent use.
type Store struct {
    pool *pgxpool.Pool
}

// Open establishes a pgx pool using the provided connection string.
func Open(ctx context.Context, dsn string) (*Store, error) {
    cfg, err := pgxpool.ParseConfig(dsn)
    if err != nil { return nil, err }
    pool, err := pgxpool.NewWithConfig(ctx, cfg)
    if err != nil { return nil, err }
    if err := pool.Ping(ctx); err != nil { pool.Close(); return nil, err }
    return &Store{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() { if s.pool != nil { s.pool.Close() } }

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

// Load implements storage.Slots.
func (s *Store) Load(ctx context.Context, key string) ([]byte, bool, error) {
    var value []byte
    err := s.pool.QueryRow(ctx, `select value from slots where key = $1`, key).Scan(&value)
    if errors.Is(err, pgx.ErrNoRows) { return nil, false, nil }
    if err != nil { return nil, false, fmt.Errorf("load slot %s: %w", key, err) }
    return value, true, nil
}

// Save implements storage.Slots. Values must be valid JSON.
func (s *Store) Save(ctx context.Context, key string, value []byte) error {
    if key == "" { return fmt.Errorf("%w: empty slot key", errs.ErrInvalid) }
    _, err := s.pool.Exec(ctx, `
        insert into slots (key, value, updated_at)
        values ($1, $2::jsonb, now())
        on conflict (key) do update set value = excluded.value, updated_at = excluded.updated_at
    `, key, string(value))
    if err != nil { return fmt.Errorf("save slot %s: %w", key, err) }
    return nil
}

// Clear removes every slot row inside one transaction.
func (s *Store) Clear(ctx context.Context) error {
    tx, err := s.pool.Begin(ctx)
    if err != nil { return err }
    defer func() { _ = tx.Rollback(ctx) }()
    if _, err := tx.Exec(ctx, `delete from slots where key = any($1)`, storage.Keys()); err != nil { return err }
    return tx.Commit(ctx)
}

var _ storage.Slots = (*Store)(nil)
