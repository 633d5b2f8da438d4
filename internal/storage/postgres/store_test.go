package postgres

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/tinoosan/finboard/internal/storage"
)

func getTestDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping Postgres store tests")
	}
	return dsn
}

func mustOpen(t *testing.T, dsn string) *Store {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s
}

func applyInitSQL(t *testing.T, s *Store) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// Resolve init SQL path relative to this test file so CWD doesn't matter
	_, thisFile, _, _ := runtime.Caller(0)
	repoRoot := filepath.Clean(filepath.Join(filepath.Dir(thisFile), "../../../"))
	b, err := os.ReadFile(filepath.Join(repoRoot, "db", "migrations", "0001_init.sql"))
	if err != nil {
		t.Fatalf("read init sql: %v", err)
	}
	if _, err := s.pool.Exec(ctx, string(b)); err != nil {
		t.Fatalf("apply init sql: %v", err)
	}
	if _, err := s.pool.Exec(ctx, `truncate table slots`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

func TestStore_Slots(t *testing.T) {
	dsn := getTestDSN(t)
	s := mustOpen(t, dsn)
	defer s.Close()
	applyInitSQL(t, s)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, ok, err := s.Load(ctx, storage.KeyCards); err != nil || ok {
		t.Fatalf("expected missing slot, ok=%v err=%v", ok, err)
	}
	storage.Save(ctx, s, storage.KeyBudgetLimit, 1500, nil)
	if got := storage.Load(ctx, s, storage.KeyBudgetLimit, 2000, nil); got != 1500 {
		t.Fatalf("budget slot got %d", got)
	}
	storage.Save(ctx, s, storage.KeyBudgetLimit, 1800, nil)
	if got := storage.Load(ctx, s, storage.KeyBudgetLimit, 2000, nil); got != 1800 {
		t.Fatalf("upsert got %d", got)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := s.Load(ctx, storage.KeyBudgetLimit); ok {
		t.Fatalf("expected cleared slot")
	}
}
