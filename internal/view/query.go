package view

import (
	"sort"
	"strings"
	"time"

	"github.com/tinoosan/finboard/internal/ledger"
)

// Query narrows the transaction list page.
type Query struct {
	// Search matches descriptions case-insensitively.
	Search   string
	Type     ledger.TransactionType
	Category string
	// CurrentMonth keeps only records in now's calendar month.
	CurrentMonth bool
	// ExcludeCards drops card-linked records, which live on the card pages.
	ExcludeCards bool
}

// Find applies q to txs, newest first.
func Find(txs []ledger.Transaction, q Query, now time.Time) []ledger.Transaction {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]ledger.Transaction, 0, len(txs))
	for _, t := range txs {
		if q.ExcludeCards && t.IsCardLinked() {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(t.Description), needle) {
			continue
		}
		if q.Type != "" && t.Type != q.Type {
			continue
		}
		if q.Category != "" && t.Category != q.Category {
			continue
		}
		if q.CurrentMonth && !SameMonth(t.Date, now, now.Location()) {
			continue
		}
		out = append(out, t)
	}
	SortNewestFirst(out)
	return out
}

// Categories lists the distinct categories in txs, sorted.
func Categories(txs []ledger.Transaction) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0)
	for _, t := range txs {
		if _, ok := seen[t.Category]; ok || t.Category == "" {
			continue
		}
		seen[t.Category] = struct{}{}
		out = append(out, t.Category)
	}
	sort.Strings(out)
	return out
}
