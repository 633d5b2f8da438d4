package finance

import (
	"context"
	"strings"
	"time"

	"github.com/govalues/decimal"

	"github.com/tinoosan/finboard/internal/dictionary"
	"github.com/tinoosan/finboard/internal/errs"
	"github.com/tinoosan/finboard/internal/ledger"
	"github.com/tinoosan/finboard/internal/storage"
)

// NewTransaction is the input to AddTransaction. Status may be left empty:
// card-linked records then default to pending and everything else to paid.
type NewTransaction struct {
	Description string
	Amount      decimal.Decimal
	Type        ledger.TransactionType
	Category    string
	Date        time.Time
	Status      ledger.Status
	Recurrence  ledger.Recurrence
	CardID      string
	AccountID   string
}

// TransactionPatch carries the fields to merge into an existing record; nil
// fields are left unchanged.
type TransactionPatch struct {
	Description *string
	Amount      *decimal.Decimal
	Type        *ledger.TransactionType
	Category    *string
	Date        *time.Time
	Status      *ledger.Status
	Recurrence  *ledger.Recurrence
	CardID      *string
	AccountID   *string
}

// Operation names reported to the observer.
const (
	OpAddTransaction    = "add_transaction"
	OpDeleteTransaction = "delete_transaction"
	OpEditTransaction   = "edit_transaction"
	OpPayTransaction    = "pay_transaction"
	OpPayCardInvoice    = "pay_card_invoice"
	OpAddAccount        = "add_account"
	OpEditAccount       = "edit_account"
	OpRemoveAccount     = "remove_account"
	OpAddCard           = "add_card"
	OpEditCard          = "edit_card"
	OpRemoveCard        = "remove_card"
	OpAddTransfer       = "add_transfer"
	OpAddGoal           = "add_goal"
	OpEditGoal          = "edit_goal"
	OpRemoveGoal        = "remove_goal"
	OpAddValueToGoal    = "add_value_to_goal"
	OpImport            = "import"
	OpReset             = "reset"
)

// settlesOnInvoice reports whether t may only become paid through its card's
// invoice payment.
func settlesOnInvoice(t ledger.Transaction) bool {
	return t.IsCardLinked() && t.Type == ledger.TypeExpense
}

var errInvoiceOnly = invalid("card expenses are settled by paying the card invoice")

// validateRecord checks the shape rules every stored transaction obeys.
func validateRecord(t ledger.Transaction) error {
	if strings.TrimSpace(t.Description) == "" {
		return invalid("description is required")
	}
	if t.Amount.Sign() < 0 {
		return invalid("amount must not be negative")
	}
	if !t.Type.Valid() {
		return invalid("unknown type %q", t.Type)
	}
	if !t.Status.Valid() {
		return invalid("unknown status %q", t.Status)
	}
	if !t.Recurrence.Valid() {
		return invalid("unknown recurrence %q", t.Recurrence)
	}
	if t.CardID != "" && t.AccountID != "" {
		return invalid("a transaction references either a card or an account, not both")
	}
	if t.Date.IsZero() {
		return invalid("date is required")
	}
	return nil
}

// AddTransaction stores a new income or expense and applies its balance
// effect when it is paid and linked to an account.
func (s *Store) AddTransaction(ctx context.Context, in NewTransaction) (tx ledger.Transaction, err error) {
	defer func() { s.observe(OpAddTransaction, err) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	if in.Type == ledger.TypeTransfer {
		return ledger.Transaction{}, invalid("%w: transfers are created with AddTransfer", errs.ErrReserved)
	}
	if !ledger.Positive(in.Amount) {
		return ledger.Transaction{}, invalid("amount must be greater than zero")
	}
	if dictionary.IsReserved(strings.TrimSpace(in.Category)) {
		return ledger.Transaction{}, invalid("%w: category %q is written by the ledger", errs.ErrReserved, strings.TrimSpace(in.Category))
	}
	t := ledger.Transaction{
		ID:          s.newID(),
		Description: strings.TrimSpace(in.Description),
		Amount:      in.Amount,
		Type:        in.Type,
		Category:    ledger.NormalizeCategory(in.Category),
		Date:        s.dateOr(in.Date),
		Status:      in.Status,
		Recurrence:  in.Recurrence,
		CardID:      in.CardID,
		AccountID:   in.AccountID,
	}
	if t.Status == "" {
		t.Status = ledger.StatusPaid
		if t.IsCardLinked() {
			t.Status = ledger.StatusPending
		}
	}
	// card expenses settle only through the invoice
	if settlesOnInvoice(t) {
		t.Status = ledger.StatusPending
	}
	if err := validateRecord(t); err != nil {
		return ledger.Transaction{}, err
	}
	if t.AccountID != "" && s.accountIndex(t.AccountID) < 0 {
		return ledger.Transaction{}, notFound("account", t.AccountID)
	}
	if t.CardID != "" && s.cardIndex(t.CardID) < 0 {
		return ledger.Transaction{}, notFound("card", t.CardID)
	}

	s.txs = append([]ledger.Transaction{t}, s.txs...)
	keys := []string{storage.KeyTransactions}
	if s.apply(s.effects(t)) {
		keys = append(keys, storage.KeyAccounts)
	}
	s.persist(ctx, keys...)
	s.logger.DebugContext(ctx, "transaction added", "id", t.ID, "type", t.Type, "status", t.Status)
	return t, nil
}

// DeleteTransaction removes a record and reverses its balance effect if it
// had been applied. Deleting a transfer restores both accounts.
func (s *Store) DeleteTransaction(ctx context.Context, id string) (err error) {
	defer func() { s.observe(OpDeleteTransaction, err) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.txIndex(id)
	if i < 0 {
		return notFound("transaction", id)
	}
	t := s.txs[i]
	s.txs = append(s.txs[:i:i], s.txs[i+1:]...)
	keys := []string{storage.KeyTransactions}
	if s.apply(reverse(s.effects(t))) {
		keys = append(keys, storage.KeyAccounts)
	}
	s.persist(ctx, keys...)
	return nil
}

// EditTransaction merges patch into the record. Balance handling is delegated
// to the store's BalancePolicy; the default leaves balances as they were.
func (s *Store) EditTransaction(ctx context.Context, id string, patch TransactionPatch) (tx ledger.Transaction, err error) {
	defer func() { s.observe(OpEditTransaction, err) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.txIndex(id)
	if i < 0 {
		return ledger.Transaction{}, notFound("transaction", id)
	}
	before := s.txs[i]
	after := before
	if patch.Description != nil {
		after.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Amount != nil {
		after.Amount = *patch.Amount
	}
	if patch.Type != nil {
		after.Type = *patch.Type
	}
	if patch.Category != nil {
		after.Category = ledger.NormalizeCategory(*patch.Category)
	}
	if patch.Date != nil {
		after.Date = *patch.Date
	}
	if patch.Status != nil {
		after.Status = *patch.Status
	}
	if patch.Recurrence != nil {
		after.Recurrence = *patch.Recurrence
	}
	if patch.CardID != nil {
		after.CardID = *patch.CardID
	}
	if patch.AccountID != nil {
		after.AccountID = *patch.AccountID
	}

	if (before.Type == ledger.TypeTransfer) != (after.Type == ledger.TypeTransfer) {
		return ledger.Transaction{}, invalid("%w: a record cannot be turned into or out of a transfer", errs.ErrReserved)
	}
	if after.Category != before.Category && dictionary.IsReserved(after.Category) {
		return ledger.Transaction{}, invalid("%w: category %q is written by the ledger", errs.ErrReserved, after.Category)
	}
	if before.Status == ledger.StatusPaid && after.Status == ledger.StatusPending {
		return ledger.Transaction{}, invalid("a paid transaction cannot return to pending")
	}
	if before.IsPending() && after.Status == ledger.StatusPaid && settlesOnInvoice(after) {
		return ledger.Transaction{}, errInvoiceOnly
	}
	if err := validateRecord(after); err != nil {
		return ledger.Transaction{}, err
	}

	s.txs[i] = after
	keys := []string{storage.KeyTransactions}
	if s.apply(s.policy.OnEdit(s.effects(before), s.effects(after))) {
		keys = append(keys, storage.KeyAccounts)
	}
	s.persist(ctx, keys...)
	return after, nil
}

// PayTransaction settles a pending record and applies its balance effect
// once. Paying an already paid record changes nothing. Pending card expenses
// are refused.
func (s *Store) PayTransaction(ctx context.Context, id string) (tx ledger.Transaction, err error) {
	defer func() { s.observe(OpPayTransaction, err) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.txIndex(id)
	if i < 0 {
		return ledger.Transaction{}, notFound("transaction", id)
	}
	if !s.txs[i].IsPending() {
		return s.txs[i], nil
	}
	if settlesOnInvoice(s.txs[i]) {
		return ledger.Transaction{}, errInvoiceOnly
	}
	s.txs[i].Status = ledger.StatusPaid
	keys := []string{storage.KeyTransactions}
	if s.apply(s.effects(s.txs[i])) {
		keys = append(keys, storage.KeyAccounts)
	}
	s.persist(ctx, keys...)
	return s.txs[i], nil
}

// PayCardInvoice debits accountID by amount, records one paid invoice
// payment expense and marks every pending transaction of the card as paid.
// The whole pending invoice is cleared whatever amount is paid.
func (s *Store) PayCardInvoice(ctx context.Context, cardID, accountID string, amount decimal.Decimal, date time.Time) (tx ledger.Transaction, err error) {
	defer func() { s.observe(OpPayCardInvoice, err) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	if !ledger.Positive(amount) {
		return ledger.Transaction{}, invalid("amount must be greater than zero")
	}
	if s.cardIndex(cardID) < 0 {
		return ledger.Transaction{}, notFound("card", cardID)
	}
	if s.accountIndex(accountID) < 0 {
		return ledger.Transaction{}, notFound("account", accountID)
	}

	t := ledger.Transaction{
		ID:          s.newID(),
		Description: ledger.CategoryInvoicePayment,
		Amount:      amount,
		Type:        ledger.TypeExpense,
		Category:    ledger.CategoryInvoicePayment,
		Date:        s.dateOr(date),
		Status:      ledger.StatusPaid,
		Recurrence:  ledger.RecurrenceVariable,
		AccountID:   accountID,
	}
	s.apply(s.effects(t))
	cleared := 0
	for i := range s.txs {
		if s.txs[i].CardID == cardID && s.txs[i].IsPending() {
			s.txs[i].Status = ledger.StatusPaid
			cleared++
		}
	}
	s.txs = append([]ledger.Transaction{t}, s.txs...)
	s.persist(ctx, storage.KeyTransactions, storage.KeyAccounts)
	s.logger.InfoContext(ctx, "card invoice paid", "card_id", cardID, "account_id", accountID, "amount", amount.String(), "cleared", cleared)
	return t, nil
}
