package view

import (
	"time"

	"github.com/govalues/decimal"

	"github.com/tinoosan/finboard/internal/ledger"
)

// Budget compares this month's spending with the monthly limit.
type Budget struct {
	Limit     decimal.Decimal
	Spent     decimal.Decimal
	Remaining decimal.Decimal
	Percent   decimal.Decimal
	Exceeded  bool
}

// BudgetProgress sums the expenses of now's calendar month against limit.
func BudgetProgress(txs []ledger.Transaction, now time.Time, limit decimal.Decimal) Budget {
	spent := Totals(Month(txs, now), ScopeAll).Expense
	return Budget{
		Limit:     limit,
		Spent:     spent,
		Remaining: ledger.Sub(limit, spent),
		Percent:   ledger.Percent(spent, limit),
		Exceeded:  spent.Cmp(limit) > 0,
	}
}

// GoalProgress is a goal with its completion percent, capped at 100.
type GoalProgress struct {
	Goal      ledger.Goal
	Percent   decimal.Decimal
	Remaining decimal.Decimal
	Completed bool
}

// Goals summarizes all goals.
type Goals struct {
	Items   []GoalProgress
	Saved   decimal.Decimal
	Target  decimal.Decimal
	Percent decimal.Decimal
}

var hundred = decimal.MustNew(100, 0)

// GoalsProgress computes per-goal and overall progress.
func GoalsProgress(goals []ledger.Goal) Goals {
	out := Goals{Items: make([]GoalProgress, 0, len(goals)), Saved: decimal.Zero, Target: decimal.Zero}
	for _, g := range goals {
		pct := ledger.Percent(g.CurrentAmount, g.TargetAmount)
		if pct.Cmp(hundred) > 0 {
			pct = hundred
		}
		remaining := ledger.Sub(g.TargetAmount, g.CurrentAmount)
		if remaining.Sign() < 0 {
			remaining = decimal.Zero
		}
		out.Items = append(out.Items, GoalProgress{
			Goal:      g,
			Percent:   pct,
			Remaining: remaining,
			Completed: g.CurrentAmount.Cmp(g.TargetAmount) >= 0,
		})
		out.Saved = ledger.Add(out.Saved, g.CurrentAmount)
		out.Target = ledger.Add(out.Target, g.TargetAmount)
	}
	out.Percent = ledger.Percent(out.Saved, out.Target)
	return out
}
