package finance

import (
	"context"
	"time"

	"github.com/govalues/decimal"

	"github.com/tinoosan/finboard/internal/errs"
	"github.com/tinoosan/finboard/internal/ledger"
	"github.com/tinoosan/finboard/internal/storage"
)

// TransferDescription is the description written on transfer records.
const TransferDescription = "Transferência bancária"

// AddTransfer moves amount from one account to another and records a single
// transfer transaction referencing the source account. The total of all
// balances is unchanged.
func (s *Store) AddTransfer(ctx context.Context, fromID, toID string, amount decimal.Decimal, date time.Time) (tx ledger.Transaction, err error) {
	defer func() { s.observe(OpAddTransfer, err) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	if fromID == toID {
		return ledger.Transaction{}, invalid("%w: source and destination are the same account", errs.ErrSameAccount)
	}
	if !ledger.Positive(amount) {
		return ledger.Transaction{}, invalid("amount must be greater than zero")
	}
	fi, ti := s.accountIndex(fromID), s.accountIndex(toID)
	if fi < 0 {
		return ledger.Transaction{}, notFound("account", fromID)
	}
	if ti < 0 {
		return ledger.Transaction{}, notFound("account", toID)
	}

	s.accounts[fi].Balance = ledger.Sub(s.accounts[fi].Balance, amount)
	s.accounts[ti].Balance = ledger.Add(s.accounts[ti].Balance, amount)
	t := ledger.Transaction{
		ID:          s.newID(),
		Description: TransferDescription,
		Amount:      amount,
		Type:        ledger.TypeTransfer,
		Category:    ledger.CategoryTransfer,
		Date:        s.dateOr(date),
		Status:      ledger.StatusPaid,
		AccountID:   fromID,
		FromAccount: s.accounts[fi].Name,
		ToAccount:   s.accounts[ti].Name,
		ToAccountID: toID,
	}
	s.txs = append([]ledger.Transaction{t}, s.txs...)
	s.persist(ctx, storage.KeyTransactions, storage.KeyAccounts)
	return t, nil
}
