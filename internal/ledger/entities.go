package ledger

import (
    "strings"
    "time"

    "github.com/govalues/decimal"
)

// TransactionType conveys the direction of a transaction; amounts are always stored non-negative.
type TransactionType string

const (
    // TypeIncome credits the linked account when paid.
    TypeIncome TransactionType = "income"
    // TypeExpense debits the linked account when paid, or adds to a card invoice while pending.
    TypeExpense TransactionType = "expense"
    // TypeTransfer records a movement between two accounts. Only the transfer operation creates it.
    TypeTransfer TransactionType = "transfer"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
    switch t {
    case TypeIncome, TypeExpense, TypeTransfer:
        return true
    }
    return false
}

// Status is the settlement state of a transaction. It only moves pending -> paid.
type Status string

const (
    StatusPaid    Status = "paid"
    StatusPending Status = "pending"
)

func (s Status) Valid() bool { return s == StatusPaid || s == StatusPending }

// Recurrence classifies how often a transaction repeats. Empty means unset.
type Recurrence string

const (
    RecurrenceVariable     Recurrence = "variable"
    RecurrenceFixed        Recurrence = "fixed"
    RecurrenceSubscription Recurrence = "subscription"
)

func (r Recurrence) Valid() bool {
    switch r {
    case "", RecurrenceVariable, RecurrenceFixed, RecurrenceSubscription:
        return true
    }
    return false
}

// Categories the ledger writes on its own synthesized records.
const (
    CategoryInvoicePayment = "Pagamento de Fatura"
    CategoryInvestment     = "Investimento"
    CategoryTransfer       = "Transferência"
    // CategoryOther is used for uncategorized records and for collapsed breakdown tails.
    CategoryOther = "Outros"
)

// Account is a funding source holding a balance. The balance is only ever
// changed by ledger operations.
type Account struct {
    ID      string
    Name    string
    Balance decimal.Decimal
    // Type is free text describing the account (e.g., checking, savings, wallet).
    Type string
}

// Card is a credit card. It has no stored balance: its invoice is always
// derived from pending expenses that reference it.
type Card struct {
    ID    string
    Name  string
    Limit decimal.Decimal
    // ClosingDay and DueDay are days of the month (1..31).
    ClosingDay int
    DueDay     int
}

// Transaction is a single ledger record.
type Transaction struct {
    ID          string
    Description string
    Amount      decimal.Decimal
    Type        TransactionType
    Category    string
    Date        time.Time
    Status      Status
    Recurrence  Recurrence
    // CardID and AccountID reference the funding source; at most one is set.
    CardID    string
    AccountID string
    // FromAccount and ToAccount carry display names on transfer records.
    FromAccount string
    ToAccount   string
    // ToAccountID is the credited account of a transfer. Records written
    // before it existed only carry ToAccount.
    ToAccountID string
}

// IsTransfer reports whether t moves money between accounts.
func (t Transaction) IsTransfer() bool { return t.Type == TypeTransfer }

// IsCardLinked reports whether t is charged to a credit card.
func (t Transaction) IsCardLinked() bool { return t.CardID != "" }

// IsPending reports whether t has not been settled yet.
func (t Transaction) IsPending() bool { return t.Status == StatusPending }

// SignedAmount returns the effect a paid t has on its account: +amount for
// income, -amount for expense and transfer (the source account side).
func (t Transaction) SignedAmount() decimal.Decimal {
    if t.Type == TypeIncome {
        return t.Amount
    }
    return t.Amount.Neg()
}

// Goal is a savings target.
type Goal struct {
    ID            string
    Name          string
    TargetAmount  decimal.Decimal
    CurrentAmount decimal.Decimal
    Deadline      time.Time
    Icon          string
    Color         string
}

// NormalizeCategory trims the category and falls back to CategoryOther.
func NormalizeCategory(c string) string {
    c = strings.TrimSpace(c)
    if c == "" {
        return CategoryOther
    }
    return c
}
