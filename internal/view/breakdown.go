package view

import (
	"sort"

	"github.com/govalues/decimal"

	"github.com/tinoosan/finboard/internal/ledger"
)

// Dashboard and report cutoffs for Breakdown.
const (
	DashboardCategories = 4
	ReportCategories    = 6
)

// CategoryShare is one slice of an expense breakdown.
type CategoryShare struct {
	Category string
	Amount   decimal.Decimal
	Percent  decimal.Decimal
}

// Breakdown groups expense amounts by category, sorted by amount descending.
// With topN > 0 and more than topN+1 categories, everything past the first
// topN is folded into one trailing CategoryOther bucket. topN <= 0 keeps
// every category.
func Breakdown(txs []ledger.Transaction, topN int) []CategoryShare {
	byCat := map[string]decimal.Decimal{}
	total := decimal.Zero
	for _, t := range txs {
		if t.Type != ledger.TypeExpense {
			continue
		}
		c := ledger.NormalizeCategory(t.Category)
		if _, ok := byCat[c]; !ok {
			byCat[c] = decimal.Zero
		}
		byCat[c] = ledger.Add(byCat[c], t.Amount)
		total = ledger.Add(total, t.Amount)
	}
	shares := make([]CategoryShare, 0, len(byCat))
	for c, amt := range byCat {
		shares = append(shares, CategoryShare{Category: c, Amount: amt})
	}
	sortShares(shares)

	if topN > 0 && len(shares) > topN+1 {
		other := CategoryShare{Category: ledger.CategoryOther, Amount: decimal.Zero}
		head := make([]CategoryShare, 0, topN+1)
		for i, s := range shares {
			if i < topN && s.Category != ledger.CategoryOther {
				head = append(head, s)
				continue
			}
			other.Amount = ledger.Add(other.Amount, s.Amount)
		}
		shares = append(head, other)
	}
	for i := range shares {
		shares[i].Percent = ledger.Percent(shares[i].Amount, total)
	}
	return shares
}

// TopCategories returns the n largest expense categories with no "other"
// bucket.
func TopCategories(txs []ledger.Transaction, n int) []CategoryShare {
	shares := Breakdown(txs, 0)
	if n > 0 && len(shares) > n {
		shares = shares[:n]
	}
	return shares
}

func sortShares(s []CategoryShare) {
	sort.Slice(s, func(i, j int) bool {
		if c := s[i].Amount.Cmp(s[j].Amount); c != 0 {
			return c > 0
		}
		return s[i].Category < s[j].Category
	})
}
