package v1

import (
    "net/http"

    chi "github.com/go-chi/chi/v5"

    "github.com/tinoosan/finboard/internal/ledger"
    "github.com/tinoosan/finboard/internal/view"
)

// GET /v1/views/summary?period=&scope=
// The dashboard: totals for the period (current month by default), balances,
// forecast, cards, category breakdown, bills due soon, budget and goals.
func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
    if r.URL.Query().Get("period") == "" {
        q := r.URL.Query()
        q.Set("period", string(view.PeriodMonth))
        r.URL.RawQuery = q.Encode()
    }
    f, err := s.periodFilter(r)
    if err != nil { writeDomainErr(w, err); return }
    scope := view.ScopeAll
    if r.URL.Query().Get("scope") == "bank" { scope = view.ScopeBank }

    now := s.clock()
    snap := s.ledger.Snapshot()
    inPeriod := view.Filter(snap.Transactions, f, now)
    p := s.prefs.Get()

    accounts := make([]accountResponse, 0, len(snap.Accounts))
    for _, a := range snap.Accounts { accounts = append(accounts, toAccountResponse(a)) }
    cards := make([]cardResponse, 0, len(snap.Cards))
    for _, c := range view.CardSummaries(snap) { cards = append(cards, toCardResponse(c)) }
    up := view.UpcomingBills(snap.Transactions, now, view.UpcomingWindowDays)

    toJSON(w, http.StatusOK, summaryResponse{
        Period:       f.Period,
        Visible:      p.Visible,
        TotalBalance: amount(view.TotalBalance(snap.Accounts)),
        Totals:       toSumsResponse(view.Totals(inPeriod, scope)),
        Forecast:     toForecastResponse(view.Forecast(snap, now)),
        Accounts:     accounts,
        Cards:        cards,
        Categories:   toSharesResponse(view.Breakdown(inPeriod, view.DashboardCategories)),
        Upcoming:     upcomingResponse{Items: toTransactionsResponse(up.Bills), Total: amount(up.Total)},
        Budget:       toBudgetResponse(view.BudgetProgress(snap.Transactions, now, p.BudgetLimit)),
        Goals:        toGoalsResponse(view.GoalsProgress(snap.Goals)),
    })
}

// GET /v1/views/forecast
func (s *Server) forecast(w http.ResponseWriter, r *http.Request) {
    toJSON(w, http.StatusOK, toForecastResponse(view.Forecast(s.ledger.Snapshot(), s.clock())))
}

// GET /v1/views/breakdown?period=&top=
// top=0 keeps every category.
func (s *Server) breakdown(w http.ResponseWriter, r *http.Request) {
    f, err := s.periodFilter(r)
    if err != nil { writeDomainErr(w, err); return }
    top, err := queryInt(r.URL.Query().Get("top"), view.DashboardCategories)
    if err != nil { writeDomainErr(w, err); return }
    txs := view.Filter(s.ledger.Snapshot().Transactions, f, s.clock())
    toJSON(w, http.StatusOK, map[string]any{"items": toSharesResponse(view.Breakdown(txs, top))})
}

// GET /v1/views/calendar?month=YYYY-MM
func (s *Server) calendarMonth(w http.ResponseWriter, r *http.Request) {
    month, err := s.parseMonth(r.URL.Query().Get("month"))
    if err != nil { writeDomainErr(w, err); return }
    days := view.MonthStatus(s.ledger.Snapshot().Transactions, month)
    items := make([]dayFlagsResponse, 0, len(days))
    for _, d := range days {
        items = append(items, dayFlagsResponse{Date: d.Date.Format(ledger.DateLayout), HasIncome: d.HasIncome, HasExpense: d.HasExpense, HasPendingBill: d.HasPendingBill})
    }
    toJSON(w, http.StatusOK, map[string]any{"month": month.Format("2006-01"), "days": items})
}

// GET /v1/views/calendar/{date}
func (s *Server) calendarDay(w http.ResponseWriter, r *http.Request) {
    day, err := s.parseDate(chi.URLParam(r, "date"))
    if err != nil { writeDomainErr(w, err); return }
    if day.IsZero() { badRequest(w, "date is required"); return }
    d := view.DaySummary(s.ledger.Snapshot().Transactions, day.In(s.loc))
    toJSON(w, http.StatusOK, dayResponse{
        Date:         d.Date.Format(ledger.DateLayout),
        Income:       amount(d.Income),
        Expense:      amount(d.Expense),
        Balance:      amount(d.Balance),
        Transactions: toTransactionsResponse(d.Transactions),
        PendingBills: toTransactionsResponse(d.PendingBills),
    })
}

// GET /v1/views/bills
func (s *Server) bills(w http.ResponseWriter, r *http.Request) {
    g := view.Bills(s.ledger.Snapshot().Transactions, s.clock())
    toJSON(w, http.StatusOK, billsResponse{
        Overdue:  toTransactionsResponse(g.Overdue),
        DueToday: toTransactionsResponse(g.DueToday),
        Upcoming: toTransactionsResponse(g.Upcoming),
        Total:    amount(g.Total()),
    })
}

// maxSeriesMonths bounds the monthly series length.
const maxSeriesMonths = 120

// GET /v1/views/reports/monthly?month=YYYY-MM&months=6
func (s *Server) monthlyReport(w http.ResponseWriter, r *http.Request) {
    month, err := s.parseMonth(r.URL.Query().Get("month"))
    if err != nil { writeDomainErr(w, err); return }
    n, err := queryInt(r.URL.Query().Get("months"), 6)
    if err != nil { writeDomainErr(w, err); return }
    if n < 1 || n > maxSeriesMonths { badRequest(w, "months must be between 1 and 120"); return }
    txs := s.ledger.Snapshot().Transactions
    rep := view.Report(txs, month)
    series := view.MonthlySeries(txs, month, n)
    items := make([]monthTotalsResponse, 0, len(series))
    for _, m := range series {
        items = append(items, monthTotalsResponse{Month: m.Month.Format("2006-01"), Income: amount(m.Income), Expense: amount(m.Expense)})
    }
    toJSON(w, http.StatusOK, monthReportResponse{
        Month:       rep.Month.Format("2006-01"),
        Income:      amount(rep.Income),
        Expense:     amount(rep.Expense),
        Balance:     amount(rep.Balance),
        SavingsRate: amount(rep.SavingsRate),
        Categories:  toSharesResponse(rep.Categories),
        TopExpenses: toTransactionsResponse(rep.TopExpenses),
        Series:      items,
    })
}

// GET /v1/views/series/balance?period=7d|4w|month|12m
func (s *Server) balanceSeries(w http.ResponseWriter, r *http.Request) {
    p, err := view.ParseChartPeriod(r.URL.Query().Get("period"))
    if err != nil { writeDomainErr(w, err); return }
    points := view.BalanceSeries(s.ledger.Snapshot().Transactions, s.clock(), p)
    items := make([]pointResponse, 0, len(points))
    for _, pt := range points {
        items = append(items, pointResponse{Start: pt.Start, Income: amount(pt.Income), Outflow: amount(pt.Outflow)})
    }
    toJSON(w, http.StatusOK, map[string]any{"period": p, "points": items})
}

// GET /v1/views/budget
func (s *Server) budget(w http.ResponseWriter, r *http.Request) {
    b := view.BudgetProgress(s.ledger.Snapshot().Transactions, s.clock(), s.prefs.Get().BudgetLimit)
    toJSON(w, http.StatusOK, toBudgetResponse(b))
}

// GET /v1/views/goals
func (s *Server) goalsView(w http.ResponseWriter, r *http.Request) {
    toJSON(w, http.StatusOK, toGoalsResponse(view.GoalsProgress(s.ledger.Snapshot().Goals)))
}

// GET /v1/categories lists the categories already used by transactions.
func (s *Server) usedCategories(w http.ResponseWriter, r *http.Request) {
    toJSON(w, http.StatusOK, map[string]any{"items": view.Categories(s.ledger.Snapshot().Transactions)})
}
