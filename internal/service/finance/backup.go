package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/tinoosan/finboard/internal/ledger"
	"github.com/tinoosan/finboard/internal/storage"
)

// Backup is the export document. Goals ride along with the three original
// collections.
type Backup struct {
	Transactions []ledger.Transaction `json:"transactions"`
	Accounts     []ledger.Account     `json:"accounts"`
	Cards        []ledger.Card        `json:"cards"`
	Goals        []ledger.Goal        `json:"goals"`
	ExportDate   time.Time            `json:"exportDate"`
}

// ImportResult counts what an import added and skipped.
type ImportResult struct {
	Transactions int `json:"transactions"`
	Accounts     int `json:"accounts"`
	Cards        int `json:"cards"`
	Goals        int `json:"goals"`
	Skipped      int `json:"skipped"`
}

// Export bundles the current collections.
func (s *Store) Export() Backup {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snapshotLocked()
	return Backup{
		Transactions: snap.Transactions,
		Accounts:     snap.Accounts,
		Cards:        snap.Cards,
		Goals:        snap.Goals,
		ExportDate:   s.now(),
	}
}

// Validate checks every record of b before anything is merged.
func (b Backup) Validate() error {
	for i, t := range b.Transactions {
		if t.ID == "" {
			return invalid("transactions[%d]: id is required", i)
		}
		if err := validateRecord(t); err != nil {
			return fmt.Errorf("transactions[%d]: %w", i, err)
		}
	}
	for i, a := range b.Accounts {
		if a.ID == "" || a.Name == "" {
			return invalid("accounts[%d]: id and name are required", i)
		}
	}
	for i, c := range b.Cards {
		if c.ID == "" {
			return invalid("cards[%d]: id is required", i)
		}
		if err := validateCard(c); err != nil {
			return fmt.Errorf("cards[%d]: %w", i, err)
		}
	}
	for i, g := range b.Goals {
		if g.ID == "" {
			return invalid("goals[%d]: id is required", i)
		}
		if err := validateGoal(g); err != nil {
			return fmt.Errorf("goals[%d]: %w", i, err)
		}
	}
	return nil
}

// Import validates b and merges it into the store. Records whose id already
// exists are skipped. Imported accounts carry their own balances, so imported
// transactions apply no balance effects.
func (s *Store) Import(ctx context.Context, b Backup) (res ImportResult, err error) {
	defer func() { s.observe(OpImport, err) }()
	if err := b.Validate(); err != nil {
		return ImportResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range b.Accounts {
		if s.accountIndex(a.ID) >= 0 {
			res.Skipped++
			continue
		}
		s.accounts = append(s.accounts, a)
		res.Accounts++
	}
	for _, c := range b.Cards {
		if s.cardIndex(c.ID) >= 0 {
			res.Skipped++
			continue
		}
		s.cards = append(s.cards, c)
		res.Cards++
	}
	for _, g := range b.Goals {
		if s.goalIndex(g.ID) >= 0 {
			res.Skipped++
			continue
		}
		s.goals = append(s.goals, g)
		res.Goals++
	}
	for _, t := range b.Transactions {
		if s.txIndex(t.ID) >= 0 {
			res.Skipped++
			continue
		}
		s.txs = append(s.txs, t)
		res.Transactions++
	}
	s.persist(ctx, storage.KeyTransactions, storage.KeyAccounts, storage.KeyCards, storage.KeyGoals)
	s.logger.InfoContext(ctx, "backup imported",
		"transactions", res.Transactions, "accounts", res.Accounts, "cards", res.Cards, "goals", res.Goals, "skipped", res.Skipped)
	return res, nil
}

// Reset empties every collection and clears the slots, preferences included.
func (s *Store) Reset(ctx context.Context) (err error) {
	defer func() { s.observe(OpReset, err) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.txs, s.accounts, s.cards, s.goals = nil, nil, nil, nil
	if err := s.slots.Clear(ctx); err != nil {
		s.logger.ErrorContext(ctx, "slot clear failed", "err", err)
	}
	s.logger.WarnContext(ctx, "ledger reset")
	return nil
}
