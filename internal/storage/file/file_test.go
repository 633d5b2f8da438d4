package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tinoosan/finboard/internal/errs"
	"github.com/tinoosan/finboard/internal/storage"
)

func TestStore_SaveLoadClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "profile"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok, err := s.Load(ctx, storage.KeyAccounts); err != nil || ok {
		t.Fatalf("expected missing slot, ok=%v err=%v", ok, err)
	}
	if err := s.Save(ctx, storage.KeyAccounts, []byte(`[{"id":"a1"}]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	b, ok, err := s.Load(ctx, storage.KeyAccounts)
	if err != nil || !ok || string(b) != `[{"id":"a1"}]` {
		t.Fatalf("load got %q ok=%v err=%v", b, ok, err)
	}
	// overwrite replaces content
	if err := s.Save(ctx, storage.KeyAccounts, []byte(`[]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if b, _, _ := s.Load(ctx, storage.KeyAccounts); string(b) != `[]` {
		t.Fatalf("overwrite got %q", b)
	}
	entries, _ := os.ReadDir(s.Dir())
	if len(entries) != 1 {
		t.Fatalf("expected exactly one file (no temp leftovers), got %d", len(entries))
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := s.Load(ctx, storage.KeyAccounts); ok {
		t.Fatalf("expected slot cleared")
	}
}

func TestStore_RejectsPathKeys(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for _, k := range []string{"", "../x", "a/b", ".hidden"} {
		if err := s.Save(context.Background(), k, []byte("1")); !errors.Is(err, errs.ErrInvalid) {
			t.Fatalf("key %q: expected ErrInvalid, got %v", k, err)
		}
	}
}

func TestStore_TypedHelpersFallBackOnCorruptSlot(t *testing.T) {
	ctx := context.Background()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := os.WriteFile(filepath.Join(s.Dir(), storage.KeyBudgetLimit+".json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	got := storage.Load(ctx, s, storage.KeyBudgetLimit, 2000.0, nil)
	if got != 2000 {
		t.Fatalf("expected default on corrupt slot, got %v", got)
	}
	storage.Save(ctx, s, storage.KeyBudgetLimit, 3500.0, nil)
	if got := storage.Load(ctx, s, storage.KeyBudgetLimit, 2000.0, nil); got != 3500 {
		t.Fatalf("expected saved value, got %v", got)
	}
}
