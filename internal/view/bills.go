package view

import (
	"time"

	"github.com/govalues/decimal"

	"github.com/tinoosan/finboard/internal/ledger"
)

// BillGroups partitions pending expenses by urgency. Each group is sorted
// oldest first.
type BillGroups struct {
	Overdue  []ledger.Transaction
	DueToday []ledger.Transaction
	Upcoming []ledger.Transaction
}

// Total sums every bill in the groups.
func (g BillGroups) Total() decimal.Decimal {
	total := decimal.Zero
	for _, group := range [][]ledger.Transaction{g.Overdue, g.DueToday, g.Upcoming} {
		for _, t := range group {
			total = ledger.Add(total, t.Amount)
		}
	}
	return total
}

func isBill(t ledger.Transaction) bool { return t.Type == ledger.TypeExpense && t.IsPending() }

// Bills groups pending expenses into overdue (before today), due today and
// upcoming (after today) using now's calendar day.
func Bills(txs []ledger.Transaction, now time.Time) BillGroups {
	loc := now.Location()
	today := StartOfDay(now, loc)
	g := BillGroups{Overdue: []ledger.Transaction{}, DueToday: []ledger.Transaction{}, Upcoming: []ledger.Transaction{}}
	for _, t := range txs {
		if !isBill(t) {
			continue
		}
		switch {
		case t.Date.Before(today):
			g.Overdue = append(g.Overdue, t)
		case SameDay(t.Date, now, loc):
			g.DueToday = append(g.DueToday, t)
		default:
			g.Upcoming = append(g.Upcoming, t)
		}
	}
	SortOldestFirst(g.Overdue)
	SortOldestFirst(g.DueToday)
	SortOldestFirst(g.Upcoming)
	return g
}

// UpcomingWindowDays is the dashboard's "bills due soon" horizon.
const UpcomingWindowDays = 7

// Upcoming is the dashboard's bills-due-soon card.
type Upcoming struct {
	Bills []ledger.Transaction
	Total decimal.Decimal
}

// UpcomingBills returns pending expenses dated today, or after now up to the
// end of the day days ahead, oldest first.
func UpcomingBills(txs []ledger.Transaction, now time.Time, days int) Upcoming {
	loc := now.Location()
	end := StartOfDay(now, loc).AddDate(0, 0, days+1)
	u := Upcoming{Bills: []ledger.Transaction{}, Total: decimal.Zero}
	for _, t := range txs {
		if !isBill(t) {
			continue
		}
		if SameDay(t.Date, now, loc) || (t.Date.After(now) && t.Date.Before(end)) {
			u.Bills = append(u.Bills, t)
			u.Total = ledger.Add(u.Total, t.Amount)
		}
	}
	SortOldestFirst(u.Bills)
	return u
}
