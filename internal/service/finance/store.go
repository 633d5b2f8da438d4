// Package finance implements the ledger store: it owns the canonical
// transactions, accounts, cards and goals, applies every mutation to them and
// is the only writer of account balances. Card invoices are never stored here;
// they are derived by the view package from pending card expenses.
package finance

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tinoosan/finboard/internal/errs"
	"github.com/tinoosan/finboard/internal/ledger"
	"github.com/tinoosan/finboard/internal/storage"
)

// Store serializes every operation behind one mutex, so a composite
// operation runs to completion before the next one starts. Slot saves happen
// after the in-memory mutation and are best effort.
type Store struct {
	mu       sync.Mutex
	slots    storage.Slots
	logger   *slog.Logger
	policy   BalancePolicy
	now      func() time.Time
	newID    func() string
	observer func(op string, err error)

	txs      []ledger.Transaction
	accounts []ledger.Account
	cards    []ledger.Card
	goals    []ledger.Goal
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence failures and mutation traces.
func WithLogger(l *slog.Logger) Option { return func(s *Store) { s.logger = l } }

// WithClock overrides the time source used for defaulted dates.
func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

// WithIDs overrides id generation.
func WithIDs(gen func() string) Option { return func(s *Store) { s.newID = gen } }

// WithBalancePolicy sets how edits of already applied transactions touch balances.
func WithBalancePolicy(p BalancePolicy) Option { return func(s *Store) { s.policy = p } }

// WithResyncOnEdit makes EditTransaction reverse the old balance effect and
// apply the new one.
func WithResyncOnEdit() Option { return WithBalancePolicy(ResyncBalances{}) }

// WithObserver registers a callback invoked after every mutation with its
// operation name and result.
func WithObserver(fn func(op string, err error)) Option { return func(s *Store) { s.observer = fn } }

// New constructs an empty store over slots. Call Load to read persisted state.
func New(slots storage.Slots, opts ...Option) *Store {
	s := &Store{
		slots:  slots,
		logger: slog.Default(),
		policy: PreserveBalances{},
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load replaces the in-memory collections with the persisted ones. Absent or
// corrupt slots load as empty collections.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = storage.Load(ctx, s.slots, storage.KeyTransactions, []ledger.Transaction{}, s.logger)
	s.accounts = storage.Load(ctx, s.slots, storage.KeyAccounts, []ledger.Account{}, s.logger)
	s.cards = storage.Load(ctx, s.slots, storage.KeyCards, []ledger.Card{}, s.logger)
	s.goals = storage.Load(ctx, s.slots, storage.KeyGoals, []ledger.Goal{}, s.logger)
	s.logger.InfoContext(ctx, "ledger loaded",
		"transactions", len(s.txs), "accounts", len(s.accounts), "cards", len(s.cards), "goals", len(s.goals))
}

// Snapshot returns a copy of the current collections.
func (s *Store) Snapshot() ledger.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() ledger.Snapshot {
	return ledger.Snapshot{Transactions: s.txs, Accounts: s.accounts, Cards: s.cards, Goals: s.goals}.Clone()
}

// Transaction returns a single transaction by id.
func (s *Store) Transaction(id string) (ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.txIndex(id)
	if i < 0 {
		return ledger.Transaction{}, notFound("transaction", id)
	}
	return s.txs[i], nil
}

// Account returns a single account by id.
func (s *Store) Account(id string) (ledger.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.accountIndex(id)
	if i < 0 {
		return ledger.Account{}, notFound("account", id)
	}
	return s.accounts[i], nil
}

// Card returns a single card by id.
func (s *Store) Card(id string) (ledger.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.cardIndex(id)
	if i < 0 {
		return ledger.Card{}, notFound("card", id)
	}
	return s.cards[i], nil
}

// Goal returns a single goal by id.
func (s *Store) Goal(id string) (ledger.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.goalIndex(id)
	if i < 0 {
		return ledger.Goal{}, notFound("goal", id)
	}
	return s.goals[i], nil
}

func (s *Store) txIndex(id string) int {
	for i := range s.txs {
		if s.txs[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) accountIndex(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) cardIndex(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.cards {
		if s.cards[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) goalIndex(id string) int {
	for i := range s.goals {
		if s.goals[i].ID == id {
			return i
		}
	}
	return -1
}

// persist saves the named collections. Failures are logged by storage.Save.
func (s *Store) persist(ctx context.Context, keys ...string) {
	for _, k := range keys {
		switch k {
		case storage.KeyTransactions:
			storage.Save(ctx, s.slots, k, s.txs, s.logger)
		case storage.KeyAccounts:
			storage.Save(ctx, s.slots, k, s.accounts, s.logger)
		case storage.KeyCards:
			storage.Save(ctx, s.slots, k, s.cards, s.logger)
		case storage.KeyGoals:
			storage.Save(ctx, s.slots, k, s.goals, s.logger)
		}
	}
}

func (s *Store) observe(op string, err error) {
	if s.observer != nil {
		s.observer(op, err)
	}
	if err != nil {
		s.logger.Debug("ledger mutation refused", "op", op, "err", err)
	}
}

func (s *Store) dateOr(t time.Time) time.Time {
	if t.IsZero() {
		return s.now()
	}
	return t
}

func notFound(kind, id string) error { return fmt.Errorf("%w: %s %q", errs.ErrNotFound, kind, id) }

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errs.ErrInvalid}, args...)...)
}
