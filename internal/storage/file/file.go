// Package file stores each slot as a JSON file inside a directory, the
// on-disk analog of the browser's local storage.
package file

import (
    "context"
    "errors"
    "fmt"
    "io/fs"
    "os"
    "path/filepath"
    "strings"
    "sync"

    "github.com/tinoosan/finboard/internal/errs"
    "github.com/tinoosan/finboard/internal/storage"
)

const ext = ".json"

// Store writes slots under Dir. Writes go to a temp file and are renamed into
// place so a crash never leaves a half-written slot behind.
type Store struct {
    dir string
    mu  sync.Mutex
}

// Open creates dir if needed and returns a store rooted there.
func Open(dir string) (*Store, error) {
    if strings.TrimSpace(dir) == "" { return nil, fmt.Errorf("%w: empty data dir", errs.ErrInvalid) }
    if err := os.MkdirAll(dir, 0o700); err != nil { return nil, err }
    return &Store{dir: dir}, nil
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(key string) (string, error) {
    if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
        return "", fmt.Errorf("%w: slot key %q", errs.ErrInvalid, key)
    }
    return filepath.Join(s.dir, key+ext), nil
}

// Load implements storage.Slots.
func (s *Store) Load(_ context.Context, key string) ([]byte, bool, error) {
    p, err := s.path(key)
    if err != nil { return nil, false, err }
    b, err := os.ReadFile(p)
    if errors.Is(err, fs.ErrNotExist) { return nil, false, nil }
    if err != nil { return nil, false, err }
    return b, true, nil
}

// Save implements storage.Slots.
func (s *Store) Save(_ context.Context, key string, value []byte) error {
    p, err := s.path(key)
    if err != nil { return err }
    s.mu.Lock(); defer s.mu.Unlock()
    tmp, err := os.CreateTemp(s.dir, "."+key+"-*")
    if err != nil { return err }
    name := tmp.Name()
    if _, err := tmp.Write(value); err != nil { tmp.Close(); os.Remove(name); return err }
    if err := tmp.Close(); err != nil { os.Remove(name); return err }
    if err := os.Rename(name, p); err != nil { os.Remove(name); return err }
    return nil
}

// Clear removes every known slot file. Unrelated files in the directory are left alone.
func (s *Store) Clear(_ context.Context) error {
    s.mu.Lock(); defer s.mu.Unlock()
    var errList []error
    for _, k := range storage.Keys() {
        err := os.Remove(filepath.Join(s.dir, k+ext))
        if err != nil && !errors.Is(err, fs.ErrNotExist) { errList = append(errList, err) }
    }
    return errors.Join(errList...)
}

var _ storage.Slots = (*Store)(nil)
