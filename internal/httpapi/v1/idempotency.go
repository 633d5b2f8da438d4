package v1

import (
    "bytes"
    "crypto/sha256"
    "encoding/hex"
    "io"
    "net/http"
    "sync"
)

// IdempotencyHeader lets clients retry creates without duplicating records.
const IdempotencyHeader = "Idempotency-Key"

type storedResponse struct {
    BodyHash string
    Status   int
    Payload  []byte
}

// idempotencyStore remembers successful create responses by key, per route.
type idempotencyStore struct {
    mu    sync.Mutex
    items map[string]storedResponse
}

func newIdempotencyStore() *idempotencyStore {
    return &idempotencyStore{items: make(map[string]storedResponse)}
}

func hashBytes(b []byte) string {
    h := sha256.Sum256(b)
    return hex.EncodeToString(h[:])
}

// captureWriter tees the response so it can be replayed.
type captureWriter struct {
    http.ResponseWriter
    status int
    buf    bytes.Buffer
}

func (c *captureWriter) WriteHeader(status int) {
    c.status = status
    c.ResponseWriter.WriteHeader(status)
}

func (c *captureWriter) Write(b []byte) (int, error) {
    if c.status == 0 { c.status = http.StatusOK }
    c.buf.Write(b)
    return c.ResponseWriter.Write(b)
}

// idempotent replays the stored response when a request repeats an
// Idempotency-Key with the same body, and answers 409 when the body differs.
// Only 2xx responses are stored. Requests without the header pass through.
func (s *Server) idempotent(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        key := r.Header.Get(IdempotencyHeader)
        if key == "" {
            next.ServeHTTP(w, r)
            return
        }
        body, err := io.ReadAll(r.Body)
        if err != nil { badRequest(w, "unreadable body"); return }
        r.Body = io.NopCloser(bytes.NewReader(body))
        hash := hashBytes(body)
        scoped := r.Method + " " + r.URL.Path + " " + key

        s.idem.mu.Lock()
        defer s.idem.mu.Unlock()
        if prev, ok := s.idem.items[scoped]; ok {
            if prev.BodyHash != hash {
                conflict(w, "idempotency key reused with a different body")
                return
            }
            w.Header().Set("Content-Type", "application/json")
            w.Header().Set("Idempotent-Replay", "true")
            w.WriteHeader(prev.Status)
            _, _ = w.Write(prev.Payload)
            return
        }
        cw := &captureWriter{ResponseWriter: w}
        next.ServeHTTP(cw, r)
        if cw.status >= 200 && cw.status < 300 {
            s.idem.items[scoped] = storedResponse{BodyHash: hash, Status: cw.status, Payload: cw.buf.Bytes()}
        }
    })
}
