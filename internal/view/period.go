// Package view derives read-only aggregates from a ledger snapshot. Every
// function is a pure function of its inputs plus a reference time; nothing
// is cached and nothing computed here is ever stored back.
package view

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tinoosan/finboard/internal/errs"
	"github.com/tinoosan/finboard/internal/ledger"
)

// Period names a date window relative to now.
type Period string

const (
	PeriodToday  Period = "today"
	PeriodWeek   Period = "week"
	PeriodMonth  Period = "month"
	PeriodAll    Period = "all"
	PeriodCustom Period = "custom"
)

// ParsePeriod accepts the English names and the dashboard's Portuguese ones
// (hoje, semana, mes, tudo). Empty means all.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "tudo":
		return PeriodAll, nil
	case "today", "hoje":
		return PeriodToday, nil
	case "week", "semana":
		return PeriodWeek, nil
	case "month", "mes", "mês":
		return PeriodMonth, nil
	case "custom":
		return PeriodCustom, nil
	}
	return "", fmt.Errorf("%w: unknown period %q", errs.ErrInvalid, s)
}

// PeriodFilter selects a window. From and To are only read for PeriodCustom;
// both are needed, otherwise the filter passes everything through.
type PeriodFilter struct {
	Period Period
	From   time.Time
	To     time.Time
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func endOfDay(t time.Time, loc *time.Location) time.Time {
	return StartOfDay(t, loc).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// SameMonth reports whether a and b fall in the same calendar month in loc.
func SameMonth(a, b time.Time, loc *time.Location) bool {
	ay, am, _ := a.In(loc).Date()
	by, bm, _ := b.In(loc).Date()
	return ay == by && am == bm
}

// Range returns the inclusive window f selects, and false when f selects
// everything.
func (f PeriodFilter) Range(now time.Time) (from, to time.Time, bounded bool) {
	loc := now.Location()
	switch f.Period {
	case PeriodToday:
		return StartOfDay(now, loc), endOfDay(now, loc), true
	case PeriodWeek:
		start := StartOfDay(now, loc).AddDate(0, 0, -int(now.In(loc).Weekday()))
		return start, start.AddDate(0, 0, 7).Add(-time.Nanosecond), true
	case PeriodMonth:
		y, m, _ := now.In(loc).Date()
		start := time.Date(y, m, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond), true
	case PeriodCustom:
		if f.From.IsZero() || f.To.IsZero() {
			return time.Time{}, time.Time{}, false
		}
		return StartOfDay(f.From, loc), endOfDay(f.To, loc), true
	}
	return time.Time{}, time.Time{}, false
}

// Filter returns the transactions inside f's window, newest first.
func Filter(txs []ledger.Transaction, f PeriodFilter, now time.Time) []ledger.Transaction {
	from, to, bounded := f.Range(now)
	out := make([]ledger.Transaction, 0, len(txs))
	for _, t := range txs {
		if bounded && (t.Date.Before(from) || t.Date.After(to)) {
			continue
		}
		out = append(out, t)
	}
	SortNewestFirst(out)
	return out
}

// SortNewestFirst orders txs by date descending, keeping input order on ties.
func SortNewestFirst(txs []ledger.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date.After(txs[j].Date) })
}

// SortOldestFirst orders txs by date ascending, keeping input order on ties.
func SortOldestFirst(txs []ledger.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date.Before(txs[j].Date) })
}
