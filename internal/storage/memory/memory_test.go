package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/tinoosan/finboard/internal/storage"
)

func TestStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	s := New()
	v := []byte(`true`)
	if err := s.Save(ctx, storage.KeyVisibility, v); err != nil {
		t.Fatalf("save: %v", err)
	}
	v[0] = 'X'
	got, ok, _ := s.Load(ctx, storage.KeyVisibility)
	if !ok || string(got) != "true" {
		t.Fatalf("stored value aliased caller slice: %q", got)
	}
	got[0] = 'Y'
	again, _, _ := s.Load(ctx, storage.KeyVisibility)
	if string(again) != "true" {
		t.Fatalf("loaded value aliased store: %q", again)
	}
}

func TestStore_FailSavesAndClear(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.Seed(storage.KeyTheme, []byte(`"light"`))
	s.FailSaves = errors.New("disk full")
	if err := s.Save(ctx, storage.KeyTheme, []byte(`"dark"`)); err == nil {
		t.Fatalf("expected save failure")
	}
	// typed helper swallows the failure
	storage.Save(ctx, s, storage.KeyTheme, "dark", nil)
	if got := storage.Load(ctx, s, storage.KeyTheme, "dark", nil); got != "light" {
		t.Fatalf("expected seeded value to survive failed save, got %q", got)
	}
	if err := s.Clear(ctx); err != nil || s.Len() != 0 {
		t.Fatalf("clear: err=%v len=%d", err, s.Len())
	}
}

func TestLoad_MissingSlotUsesDefault(t *testing.T) {
	got := storage.Load(context.Background(), New(), storage.KeyDashboardOrder, []string{"a"}, nil)
	if len(got) != 1 || got[0] != "a" {
		t.Fatalf("unexpected %v", got)
	}
}
