package view

import (
	"sort"
	"time"

	"github.com/govalues/decimal"

	"github.com/tinoosan/finboard/internal/ledger"
)

// TopExpenseCount is how many single expenses a month report lists.
const TopExpenseCount = 5

// MonthReport summarizes one calendar month.
type MonthReport struct {
	Month       time.Time
	Income      decimal.Decimal
	Expense     decimal.Decimal
	Balance     decimal.Decimal
	SavingsRate decimal.Decimal
	Categories  []CategoryShare
	TopExpenses []ledger.Transaction
}

// Month returns the transactions in month's calendar month.
func Month(txs []ledger.Transaction, month time.Time) []ledger.Transaction {
	loc := month.Location()
	out := make([]ledger.Transaction, 0)
	for _, t := range txs {
		if SameMonth(t.Date, month, loc) {
			out = append(out, t)
		}
	}
	return out
}

// Report builds the month report: totals, savings rate
// ((income-expense)/income*100, zero without income), the top categories
// and the largest single expenses.
func Report(txs []ledger.Transaction, month time.Time) MonthReport {
	in := Month(txs, month)
	sums := Totals(in, ScopeAll)
	r := MonthReport{
		Month:       StartOfDay(month, month.Location()).AddDate(0, 0, 1-month.Day()),
		Income:      sums.Income,
		Expense:     sums.Expense,
		Balance:     sums.Balance,
		SavingsRate: ledger.Percent(sums.Balance, sums.Income),
		Categories:  TopCategories(in, ReportCategories),
	}
	expenses := make([]ledger.Transaction, 0)
	for _, t := range in {
		if t.Type == ledger.TypeExpense {
			expenses = append(expenses, t)
		}
	}
	sort.SliceStable(expenses, func(i, j int) bool { return expenses[i].Amount.Cmp(expenses[j].Amount) > 0 })
	if len(expenses) > TopExpenseCount {
		expenses = expenses[:TopExpenseCount]
	}
	r.TopExpenses = expenses
	return r
}

// MonthTotals is one point of a monthly income/expense series.
type MonthTotals struct {
	Month   time.Time
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// MonthlySeries returns income and expense for the n months ending with
// now's month, oldest first.
func MonthlySeries(txs []ledger.Transaction, now time.Time, n int) []MonthTotals {
	loc := now.Location()
	y, m, _ := now.In(loc).Date()
	current := time.Date(y, m, 1, 0, 0, 0, 0, loc)
	out := make([]MonthTotals, 0, n)
	for i := n - 1; i >= 0; i-- {
		month := current.AddDate(0, -i, 0)
		sums := Totals(Month(txs, month), ScopeAll)
		out = append(out, MonthTotals{Month: month, Income: sums.Income, Expense: sums.Expense})
	}
	return out
}
