package finance

import (
	"github.com/govalues/decimal"

	"github.com/tinoosan/finboard/internal/ledger"
)

// Adjustment is a signed change to one account balance.
type Adjustment struct {
	AccountID string
	Delta     decimal.Decimal
}

// BalancePolicy decides which balance adjustments an edit causes, given the
// effects the record had before and has after the merge.
type BalancePolicy interface {
	OnEdit(before, after []Adjustment) []Adjustment
}

// PreserveBalances leaves balances untouched on edit. Changing the amount,
// status or account of an applied transaction therefore leaves the balance
// stale; this is the historical behavior and the default.
type PreserveBalances struct{}

func (PreserveBalances) OnEdit(_, _ []Adjustment) []Adjustment { return nil }

// ResyncBalances reverses the old effect and applies the new one.
type ResyncBalances struct{}

func (ResyncBalances) OnEdit(before, after []Adjustment) []Adjustment {
	out := make([]Adjustment, 0, len(before)+len(after))
	for _, a := range before {
		out = append(out, Adjustment{AccountID: a.AccountID, Delta: a.Delta.Neg()})
	}
	return append(out, after...)
}

// effects returns the balance adjustments t carries while applied. Only paid
// records linked to an account have any. A transfer debits its source and
// credits its destination.
func (s *Store) effects(t ledger.Transaction) []Adjustment {
	if t.Status != ledger.StatusPaid || t.AccountID == "" {
		return nil
	}
	out := []Adjustment{{AccountID: t.AccountID, Delta: t.SignedAmount()}}
	if t.IsTransfer() {
		if to := s.transferDestination(t); to != "" && to != t.AccountID {
			out = append(out, Adjustment{AccountID: to, Delta: t.Amount})
		}
	}
	return out
}

// transferDestination resolves the credited account of t. Legacy records
// without ToAccountID fall back to the display name, and only when exactly
// one account carries it; otherwise the source side stands alone.
func (s *Store) transferDestination(t ledger.Transaction) string {
	if t.ToAccountID != "" {
		return t.ToAccountID
	}
	if t.ToAccount == "" {
		return ""
	}
	match := ""
	for _, a := range s.accounts {
		if a.Name != t.ToAccount {
			continue
		}
		if match != "" {
			return ""
		}
		match = a.ID
	}
	return match
}

// apply adds each delta to its account. Adjustments for accounts that no
// longer exist are dropped: orphaned references are tolerated.
func (s *Store) apply(adj []Adjustment) bool {
	changed := false
	for _, a := range adj {
		if i := s.accountIndex(a.AccountID); i >= 0 {
			s.accounts[i].Balance = ledger.Add(s.accounts[i].Balance, a.Delta)
			changed = true
		}
	}
	return changed
}

func reverse(adj []Adjustment) []Adjustment {
	out := make([]Adjustment, len(adj))
	for i, a := range adj {
		out[i] = Adjustment{AccountID: a.AccountID, Delta: a.Delta.Neg()}
	}
	return out
}
