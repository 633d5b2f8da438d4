package finance

import (
	"context"
	"strings"

	"github.com/govalues/decimal"

	"github.com/tinoosan/finboard/internal/ledger"
	"github.com/tinoosan/finboard/internal/storage"
)

// DefaultAccountType is used when an account is created without a type.
const DefaultAccountType = "checking"

// NewAccount is the input to AddAccount. Balance is the opening balance.
type NewAccount struct {
	Name    string
	Balance decimal.Decimal
	Type    string
}

// AccountPatch renames or retypes an account. Balances only move through
// ledger operations, so there is no balance field.
type AccountPatch struct {
	Name *string
	Type *string
}

// AddAccount creates an account holding the opening balance.
func (s *Store) AddAccount(ctx context.Context, in NewAccount) (acc ledger.Account, err error) {
	defer func() { s.observe(OpAddAccount, err) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	a := ledger.Account{ID: s.newID(), Name: strings.TrimSpace(in.Name), Balance: in.Balance, Type: strings.TrimSpace(in.Type)}
	if a.Name == "" {
		return ledger.Account{}, invalid("name is required")
	}
	if a.Type == "" {
		a.Type = DefaultAccountType
	}
	s.accounts = append(s.accounts, a)
	s.persist(ctx, storage.KeyAccounts)
	return a, nil
}

// EditAccount merges patch into the account.
func (s *Store) EditAccount(ctx context.Context, id string, patch AccountPatch) (acc ledger.Account, err error) {
	defer func() { s.observe(OpEditAccount, err) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.accountIndex(id)
	if i < 0 {
		return ledger.Account{}, notFound("account", id)
	}
	a := s.accounts[i]
	if patch.Name != nil {
		a.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Type != nil {
		a.Type = strings.TrimSpace(*patch.Type)
	}
	if a.Name == "" {
		return ledger.Account{}, invalid("name is required")
	}
	if a.Type == "" {
		a.Type = DefaultAccountType
	}
	s.accounts[i] = a
	s.persist(ctx, storage.KeyAccounts)
	return a, nil
}

// RemoveAccount deletes the account. Transactions referencing it are kept
// as orphaned references.
func (s *Store) RemoveAccount(ctx context.Context, id string) (err error) {
	defer func() { s.observe(OpRemoveAccount, err) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.accountIndex(id)
	if i < 0 {
		return notFound("account", id)
	}
	s.accounts = append(s.accounts[:i:i], s.accounts[i+1:]...)
	s.persist(ctx, storage.KeyAccounts)
	return nil
}
