package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/tinoosan/finboard/internal/ledger"
	"github.com/tinoosan/finboard/internal/render"
	"github.com/tinoosan/finboard/internal/view"
)

type summaryCmd struct {
	env  *Env
	bank bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "show the dashboard for the current month" }
func (*summaryCmd) Usage() string {
	return `financectl summary [-bank]

  Shows balances, month totals, cards, the spending limit, the category
  breakdown and the bills due in the next days.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.bank, "bank", false, "Leave card expenses out of the month totals.")
}

func (c *summaryCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fm, err := c.env.formatter()
	if err != nil {
		return c.env.fail(err)
	}
	now := c.env.now()
	snap := c.env.Ledger.Snapshot()
	month := view.Month(snap.Transactions, now)
	scope := view.ScopeAll
	if c.bank {
		scope = view.ScopeBank
	}
	d := render.Dashboard{
		Now:        now,
		Accounts:   snap.Accounts,
		Total:      view.TotalBalance(snap.Accounts),
		Month:      view.Totals(month, scope),
		Projection: view.Forecast(snap, now),
		Cards:      view.CardSummaries(snap),
		Upcoming:   view.UpcomingBills(snap.Transactions, now, view.UpcomingWindowDays),
		Budget:     view.BudgetProgress(snap.Transactions, now, c.env.Prefs.Get().BudgetLimit),
		Categories: view.Breakdown(month, view.DashboardCategories),
	}
	return c.env.print(render.Summary(fm, d))
}

type billsCmd struct{ env *Env }

func (*billsCmd) Name() string     { return "bills" }
func (*billsCmd) Synopsis() string { return "list pending bills by urgency" }
func (*billsCmd) Usage() string {
	return `financectl bills

  Lists pending expenses grouped into overdue, due today and upcoming.
`
}
func (*billsCmd) SetFlags(*flag.FlagSet) {}

func (c *billsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fm, err := c.env.formatter()
	if err != nil {
		return c.env.fail(err)
	}
	return c.env.print(render.Bills(fm, view.Bills(c.env.Ledger.Snapshot().Transactions, c.env.now())))
}

type reportCmd struct {
	env   *Env
	month string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "show the report of one month" }
func (*reportCmd) Usage() string {
	return `financectl report [-m YYYY-MM]

  Shows income, expense, savings rate, top categories and largest expenses.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month to report (YYYY-MM). Defaults to the current month.")
}

func (c *reportCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	month, err := c.env.parseMonth(c.month)
	if err != nil {
		return c.env.usage("%v", err)
	}
	fm, err := c.env.formatter()
	if err != nil {
		return c.env.fail(err)
	}
	return c.env.print(render.Report(fm, view.Report(c.env.Ledger.Snapshot().Transactions, month)))
}

type cardCmd struct{ env *Env }

func (*cardCmd) Name() string     { return "card" }
func (*cardCmd) Synopsis() string { return "show a card's open invoice" }
func (*cardCmd) Usage() string {
	return `financectl card <card-id>

  Shows the card's limit, open invoice and the expenses it holds.
`
}
func (*cardCmd) SetFlags(*flag.FlagSet) {}

func (c *cardCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, err := positional(f.Args(), "card id")
	if err != nil {
		return c.env.usage("%v", err)
	}
	card, err := c.env.Ledger.Card(id)
	if err != nil {
		return c.env.fail(err)
	}
	fm, err := c.env.formatter()
	if err != nil {
		return c.env.fail(err)
	}
	txs := c.env.Ledger.Snapshot().Transactions
	return c.env.print(render.CardStatement(fm, view.Summarize(txs, card), view.CardStatement(txs, id)))
}

type txCmd struct {
	env      *Env
	period   string
	search   string
	typ      string
	category string
	head     int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list transactions" }
func (*txCmd) Usage() string {
	return `financectl tx [-p <period>] [-q <text>] [-type <type>] [-c <category>] [-head <n>]

  Lists transactions newest first. Periods: all, today, week, month.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "", "Predefined period (all, today, week, month).")
	f.StringVar(&c.search, "q", "", "Case-insensitive text to look for in descriptions.")
	f.StringVar(&c.typ, "type", "", "Only this type (income, expense, transfer).")
	f.StringVar(&c.category, "c", "", "Only this category.")
	f.IntVar(&c.head, "head", 0, "Show only the first N transactions.")
}

func (c *txCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := view.ParsePeriod(c.period)
	if err != nil || p == view.PeriodCustom {
		return c.env.usage("invalid period %q", c.period)
	}
	typ := ledger.TransactionType(c.typ)
	if typ != "" && !typ.Valid() {
		return c.env.usage("invalid type %q", c.typ)
	}
	fm, err := c.env.formatter()
	if err != nil {
		return c.env.fail(err)
	}
	now := c.env.now()
	txs := view.Filter(c.env.Ledger.Snapshot().Transactions, view.PeriodFilter{Period: p}, now)
	txs = view.Find(txs, view.Query{Search: c.search, Type: typ, Category: c.category}, now)
	if c.head > 0 && len(txs) > c.head {
		txs = txs[:c.head]
	}
	return c.env.print(render.Transactions(fm, fmt.Sprintf("Transações (%d)", len(txs)), txs))
}
