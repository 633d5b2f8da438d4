package memory

// Package memory provides an in-memory slot store used for development and tests.
import (
    "context"
    "sync"
)

// Store keeps slots in a map guarded by an RWMutex. Values are copied on the
// way in and out so callers can't alias stored bytes.
type Store struct {
    mu    sync.RWMutex
    slots map[string][]byte
    // FailSaves makes every Save return the error; used to exercise best-effort persistence.
    FailSaves error
}

// New constructs an empty in-memory store.
func New() *Store { return &Store{slots: make(map[string][]byte)} }

// Seed stores a raw value for key, bypassing FailSaves. Handy for loading fixtures.
func (s *Store) Seed(key string, value []byte) {
    s.mu.Lock(); s.slots[key] = append([]byte(nil), value...); s.mu.Unlock()
}

// Load implements storage.Slots.
func (s *Store) Load(_ context.Context, key string) ([]byte, bool, error) {
    s.mu.RLock(); defer s.mu.RUnlock()
    v, ok := s.slots[key]
    if !ok { return nil, false, nil }
    return append([]byte(nil), v...), true, nil
}

// Save implements storage.Slots.
func (s *Store) Save(_ context.Context, key string, value []byte) error {
    s.mu.Lock(); defer s.mu.Unlock()
    if s.FailSaves != nil { return s.FailSaves }
    s.slots[key] = append([]byte(nil), value...)
    return nil
}

// Clear implements storage.Slots.
func (s *Store) Clear(_ context.Context) error {
    s.mu.Lock()
    s.slots = make(map[string][]byte)
    s.mu.Unlock()
    return nil
}

// Len reports how many slots are stored.
func (s *Store) Len() int { s.mu.RLock(); defer s.mu.RUnlock(); return len(s.slots) }
