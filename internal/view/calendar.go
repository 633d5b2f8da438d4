package view

import (
	"time"

	"github.com/govalues/decimal"

	"github.com/tinoosan/finboard/internal/ledger"
)

// DayFlags marks what happens on a calendar day.
type DayFlags struct {
	Date           time.Time
	HasIncome      bool
	HasExpense     bool
	HasPendingBill bool
}

// DayStatus reports the flags for day, compared by calendar day in day's location.
func DayStatus(txs []ledger.Transaction, day time.Time) DayFlags {
	loc := day.Location()
	f := DayFlags{Date: StartOfDay(day, loc)}
	for _, t := range txs {
		if !SameDay(t.Date, day, loc) {
			continue
		}
		switch t.Type {
		case ledger.TypeIncome:
			f.HasIncome = true
		case ledger.TypeExpense:
			f.HasExpense = true
			if t.IsPending() {
				f.HasPendingBill = true
			}
		}
	}
	return f
}

// MonthStatus returns DayStatus for every day of month's calendar month.
func MonthStatus(txs []ledger.Transaction, month time.Time) []DayFlags {
	loc := month.Location()
	y, m, _ := month.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, loc)
	out := make([]DayFlags, 0, 31)
	for d := first; d.Month() == m; d = d.AddDate(0, 0, 1) {
		out = append(out, DayStatus(txs, d))
	}
	return out
}

// Day is the detail panel for one calendar day.
type Day struct {
	Date         time.Time
	Income       decimal.Decimal
	Expense      decimal.Decimal
	Balance      decimal.Decimal
	Transactions []ledger.Transaction
	PendingBills []ledger.Transaction
}

// DaySummary collects day's transactions and their totals. Transfers are
// listed but excluded from the sums.
func DaySummary(txs []ledger.Transaction, day time.Time) Day {
	loc := day.Location()
	d := Day{Date: StartOfDay(day, loc), Transactions: []ledger.Transaction{}, PendingBills: []ledger.Transaction{}}
	for _, t := range txs {
		if SameDay(t.Date, day, loc) {
			d.Transactions = append(d.Transactions, t)
			if t.Type == ledger.TypeExpense && t.IsPending() {
				d.PendingBills = append(d.PendingBills, t)
			}
		}
	}
	SortNewestFirst(d.Transactions)
	sums := Totals(d.Transactions, ScopeAll)
	d.Income, d.Expense, d.Balance = sums.Income, sums.Expense, sums.Balance
	return d
}
