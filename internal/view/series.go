package view

import (
	"fmt"
	"time"

	"github.com/govalues/decimal"

	"github.com/tinoosan/finboard/internal/errs"
	"github.com/tinoosan/finboard/internal/ledger"
)

// ChartPeriod selects the buckets of the dashboard balance chart.
type ChartPeriod string

const (
	Chart7Days   ChartPeriod = "7d"
	Chart4Weeks  ChartPeriod = "4w"
	ChartMonth   ChartPeriod = "month"
	Chart12Month ChartPeriod = "12m"
)

// ParseChartPeriod validates a chart period; empty means 7d.
func ParseChartPeriod(s string) (ChartPeriod, error) {
	switch p := ChartPeriod(s); p {
	case "":
		return Chart7Days, nil
	case Chart7Days, Chart4Weeks, ChartMonth, Chart12Month:
		return p, nil
	}
	return "", fmt.Errorf("%w: unknown chart period %q", errs.ErrInvalid, s)
}

// Point is one chart bucket. Outflow counts expenses and transfers.
type Point struct {
	Start   time.Time
	Income  decimal.Decimal
	Outflow decimal.Decimal
}

// BalanceSeries buckets txs for the balance chart: daily for 7d (last 7
// days), 4w (last 29 days) and month (every day of the current month),
// monthly for 12m (last 12 months).
func BalanceSeries(txs []ledger.Transaction, now time.Time, p ChartPeriod) []Point {
	loc := now.Location()
	today := StartOfDay(now, loc)
	var starts []time.Time
	monthly := false
	switch p {
	case Chart4Weeks:
		starts = days(today.AddDate(0, 0, -28), today)
	case ChartMonth:
		first := today.AddDate(0, 0, 1-today.Day())
		starts = days(first, first.AddDate(0, 1, -1))
	case Chart12Month:
		monthly = true
		first := today.AddDate(0, 0, 1-today.Day())
		for i := 11; i >= 0; i-- {
			starts = append(starts, first.AddDate(0, -i, 0))
		}
	default:
		starts = days(today.AddDate(0, 0, -6), today)
	}
	out := make([]Point, 0, len(starts))
	for _, s := range starts {
		pt := Point{Start: s, Income: decimal.Zero, Outflow: decimal.Zero}
		for _, t := range txs {
			match := SameDay(t.Date, s, loc)
			if monthly {
				match = SameMonth(t.Date, s, loc)
			}
			if !match {
				continue
			}
			if t.Type == ledger.TypeIncome {
				pt.Income = ledger.Add(pt.Income, t.Amount)
			} else {
				pt.Outflow = ledger.Add(pt.Outflow, t.Amount)
			}
		}
		out = append(out, pt)
	}
	return out
}

func days(from, to time.Time) []time.Time {
	var out []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}
