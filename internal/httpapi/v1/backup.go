package v1

import (
    "fmt"
    "io"
    "net/http"

    "github.com/tinoosan/finboard/internal/backup"
)

// maxImportBytes bounds an uploaded backup document.
const maxImportBytes = 16 << 20

// GET /v1/export downloads the export document.
func (s *Server) export(w http.ResponseWriter, r *http.Request) {
    b := s.ledger.Export()
    data, err := backup.Encode(b)
    if err != nil { writeDomainErr(w, err); return }
    w.Header().Set("Content-Type", "application/json")
    w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, backup.FileName(b.ExportDate)))
    w.WriteHeader(http.StatusOK)
    _, _ = w.Write(data)
}

// POST /v1/import merges an export document into the ledger.
func (s *Server) importBackup(w http.ResponseWriter, r *http.Request) {
    if !requireJSON(w, r) { return }
    data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
    if err != nil { badRequest(w, "unreadable body"); return }
    b, err := backup.Decode(data)
    if err != nil { writeDomainErr(w, err); return }
    res, err := s.ledger.Import(r.Context(), b)
    if err != nil { writeDomainErr(w, err); return }
    toJSON(w, http.StatusOK, res)
}

// POST /v1/backups writes the export document to the configured sink.
func (s *Server) postBackup(w http.ResponseWriter, r *http.Request) {
    if s.sink == nil {
        writeErr(w, http.StatusNotImplemented, "no backup sink configured", "not_configured")
        return
    }
    where, err := backup.Save(r.Context(), s.sink, s.ledger.Export())
    if err != nil {
        s.log.ErrorContext(r.Context(), "backup failed", "err", err)
        writeErr(w, http.StatusBadGateway, "backup failed", "backup_failed")
        return
    }
    toJSON(w, http.StatusCreated, map[string]string{"location": where})
}

// POST /v1/reset wipes the ledger, every slot and the in-memory preferences.
func (s *Server) reset(w http.ResponseWriter, r *http.Request) {
    if err := s.ledger.Reset(r.Context()); err != nil { writeDomainErr(w, err); return }
    s.prefs.Reset()
    w.WriteHeader(http.StatusNoContent)
}
