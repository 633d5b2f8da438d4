// Package backup encodes export documents and stores them in a sink: a local
// directory or a Google Cloud Storage prefix.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tinoosan/finboard/internal/errs"
	"github.com/tinoosan/finboard/internal/ledger"
	"github.com/tinoosan/finboard/internal/service/finance"
)

// Sink stores and fetches backup documents by file name.
type Sink interface {
	// Write stores data under name and returns where it landed.
	Write(ctx context.Context, name string, data []byte) (string, error)
	Read(ctx context.Context, name string) ([]byte, error)
}

// FileName is the default document name for an export taken at t.
func FileName(t time.Time) string {
	return "backup_finance_" + t.UTC().Format(ledger.DateLayout) + ".json"
}

// Encode writes b as indented JSON.
func Encode(b finance.Backup) ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}

// document accepts the legacy "date" field next to "exportDate".
type document struct {
	Transactions *[]ledger.Transaction `json:"transactions"`
	Accounts     *[]ledger.Account     `json:"accounts"`
	Cards        *[]ledger.Card        `json:"cards"`
	Goals        []ledger.Goal         `json:"goals"`
	ExportDate   string                `json:"exportDate"`
	Date         string                `json:"date"`
}

// Decode parses an export document. The transactions, accounts and cards
// arrays must be present; goals and the export date are optional.
func Decode(data []byte) (finance.Backup, error) {
	var doc document
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return finance.Backup{}, fmt.Errorf("%w: backup document: %v", errs.ErrInvalid, err)
	}
	var missing []string
	if doc.Transactions == nil {
		missing = append(missing, "transactions")
	}
	if doc.Accounts == nil {
		missing = append(missing, "accounts")
	}
	if doc.Cards == nil {
		missing = append(missing, "cards")
	}
	if len(missing) > 0 {
		return finance.Backup{}, fmt.Errorf("%w: backup document missing %s", errs.ErrUnprocessable, strings.Join(missing, ", "))
	}
	b := finance.Backup{
		Transactions: *doc.Transactions,
		Accounts:     *doc.Accounts,
		Cards:        *doc.Cards,
		Goals:        doc.Goals,
	}
	if b.Goals == nil {
		b.Goals = []ledger.Goal{}
	}
	stamp := doc.ExportDate
	if stamp == "" {
		stamp = doc.Date
	}
	if stamp != "" {
		t, err := ledger.ParseDate(stamp, time.UTC)
		if err != nil {
			return finance.Backup{}, fmt.Errorf("%w: exportDate: %v", errs.ErrInvalid, err)
		}
		b.ExportDate = t
	}
	return b, nil
}

// Open returns the sink for uri: "gs://bucket/prefix" for Cloud Storage,
// anything else is a local directory (an optional "file://" scheme is
// stripped).
func Open(ctx context.Context, uri string) (Sink, error) {
	if strings.HasPrefix(uri, "gs://") {
		return NewGCSSink(ctx, uri)
	}
	return NewFileSink(strings.TrimPrefix(uri, "file://"))
}

// Save encodes b and writes it to sink under the default file name.
func Save(ctx context.Context, sink Sink, b finance.Backup) (string, error) {
	data, err := Encode(b)
	if err != nil {
		return "", fmt.Errorf("encode backup: %w", err)
	}
	return sink.Write(ctx, FileName(b.ExportDate), data)
}

// Load reads name from sink and decodes it.
func Load(ctx context.Context, sink Sink, name string) (finance.Backup, error) {
	data, err := sink.Read(ctx, name)
	if err != nil {
		return finance.Backup{}, err
	}
	return Decode(data)
}
