package v1

import (
    "context"
    "time"

    "github.com/govalues/decimal"

    "github.com/tinoosan/finboard/internal/ledger"
    "github.com/tinoosan/finboard/internal/service/finance"
    "github.com/tinoosan/finboard/internal/service/prefs"
)

// Ledger abstracts the ledger store operations used by the API.
type Ledger interface {
    // Snapshot returns a copy of every collection for the read-side views.
    Snapshot() ledger.Snapshot
    Transaction(id string) (ledger.Transaction, error)
    Account(id string) (ledger.Account, error)
    Card(id string) (ledger.Card, error)
    Goal(id string) (ledger.Goal, error)

    AddTransaction(ctx context.Context, in finance.NewTransaction) (ledger.Transaction, error)
    EditTransaction(ctx context.Context, id string, patch finance.TransactionPatch) (ledger.Transaction, error)
    DeleteTransaction(ctx context.Context, id string) error
    PayTransaction(ctx context.Context, id string) (ledger.Transaction, error)
    PayCardInvoice(ctx context.Context, cardID, accountID string, amount decimal.Decimal, date time.Time) (ledger.Transaction, error)
    AddTransfer(ctx context.Context, fromID, toID string, amount decimal.Decimal, date time.Time) (ledger.Transaction, error)

    AddAccount(ctx context.Context, in finance.NewAccount) (ledger.Account, error)
    EditAccount(ctx context.Context, id string, patch finance.AccountPatch) (ledger.Account, error)
    RemoveAccount(ctx context.Context, id string) error

    AddCard(ctx context.Context, in finance.NewCard) (ledger.Card, error)
    EditCard(ctx context.Context, id string, patch finance.CardPatch) (ledger.Card, error)
    RemoveCard(ctx context.Context, id string) error

    AddGoal(ctx context.Context, in finance.NewGoal) (ledger.Goal, error)
    EditGoal(ctx context.Context, id string, patch finance.GoalPatch) (ledger.Goal, error)
    RemoveGoal(ctx context.Context, id string) error
    AddValueToGoal(ctx context.Context, goalID string, amount decimal.Decimal, accountID string) (ledger.Goal, error)

    Export() finance.Backup
    Import(ctx context.Context, b finance.Backup) (finance.ImportResult, error)
    Reset(ctx context.Context) error
}

// Preferences abstracts the preference store.
type Preferences interface {
    Get() prefs.Preferences
    ToggleVisibility(ctx context.Context) bool
    ToggleTheme(ctx context.Context) prefs.Theme
    SetLayout(ctx context.Context, order, hidden []string) (prefs.Preferences, error)
    SetBudgetLimit(ctx context.Context, limit decimal.Decimal) (prefs.Preferences, error)
    Reset()
}

// ReadyChecker is optionally implemented by slot backends to indicate readiness.
type ReadyChecker interface {
    Ready(ctx context.Context) error
}
