package view

import (
	"time"

	"github.com/govalues/decimal"

	"github.com/tinoosan/finboard/internal/ledger"
)

// Scope selects which records count toward income and expense.
type Scope int

const (
	// ScopeAll counts every income and expense.
	ScopeAll Scope = iota
	// ScopeBank counts only records not charged to a card: the cash flow of
	// the bank accounts.
	ScopeBank
)

// Sums are income and expense totals. Transfers never count.
type Sums struct {
	Income       decimal.Decimal
	Expense      decimal.Decimal
	Balance      decimal.Decimal
	CardExpenses decimal.Decimal
}

// Totals sums txs under scope. CardExpenses always holds the card-linked
// expenses, whatever the scope.
func Totals(txs []ledger.Transaction, scope Scope) Sums {
	s := Sums{Income: decimal.Zero, Expense: decimal.Zero, CardExpenses: decimal.Zero}
	for _, t := range txs {
		if t.IsTransfer() {
			continue
		}
		if t.Type == ledger.TypeExpense && t.IsCardLinked() {
			s.CardExpenses = ledger.Add(s.CardExpenses, t.Amount)
		}
		if scope == ScopeBank && t.IsCardLinked() {
			continue
		}
		switch t.Type {
		case ledger.TypeIncome:
			s.Income = ledger.Add(s.Income, t.Amount)
		case ledger.TypeExpense:
			s.Expense = ledger.Add(s.Expense, t.Amount)
		}
	}
	s.Balance = ledger.Sub(s.Income, s.Expense)
	return s
}

// TotalBalance sums the balances of accounts.
func TotalBalance(accounts []ledger.Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		total = ledger.Add(total, a.Balance)
	}
	return total
}

// ForecastWindow is how far ahead Forecast looks.
const ForecastWindow = 30 * 24 * time.Hour

// Projection breaks a forecast into its parts.
type Projection struct {
	Current        decimal.Decimal
	PendingIncome  decimal.Decimal
	PendingExpense decimal.Decimal
	Forecast       decimal.Decimal
}

// Forecast projects the account total 30 days ahead: pending income minus
// pending non-card expenses dated strictly after now and strictly before
// now+30d. Records dated exactly now are outside the window.
func Forecast(snap ledger.Snapshot, now time.Time) Projection {
	p := Projection{Current: TotalBalance(snap.Accounts), PendingIncome: decimal.Zero, PendingExpense: decimal.Zero}
	end := now.Add(ForecastWindow)
	for _, t := range snap.Transactions {
		if !t.IsPending() || !t.Date.After(now) || !t.Date.Before(end) {
			continue
		}
		switch {
		case t.Type == ledger.TypeIncome:
			p.PendingIncome = ledger.Add(p.PendingIncome, t.Amount)
		case t.Type == ledger.TypeExpense && !t.IsCardLinked():
			p.PendingExpense = ledger.Add(p.PendingExpense, t.Amount)
		}
	}
	p.Forecast = ledger.Sub(ledger.Add(p.Current, p.PendingIncome), p.PendingExpense)
	return p
}
