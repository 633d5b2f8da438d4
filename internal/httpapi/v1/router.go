// Package v1 wires the HTTP surface of the finance ledger.
// It keeps handlers thin, delegating business rules to the ledger store and
// the pure view functions.
package v1

import (
    "net/http"
    "time"

    chi "github.com/go-chi/chi/v5"
    chimw "github.com/go-chi/chi/v5/middleware"
    "log/slog"

    "github.com/tinoosan/finboard/internal/backup"
)

// Server wires handlers and middleware using Chi.
type Server struct {
    ledger Ledger
    prefs  Preferences
    ready  []ReadyChecker
    sink   backup.Sink
    auth   func(http.Handler) http.Handler
    now    func() time.Time
    loc    *time.Location
    idem   *idempotencyStore
    log    *slog.Logger
    rt     *chi.Mux
}

// Option configures a Server.
type Option func(*Server)

// WithReadiness adds a backend checked by /readyz.
func WithReadiness(rc ReadyChecker) Option { return func(s *Server) { s.ready = append(s.ready, rc) } }

// WithBackupSink enables POST /v1/backups.
func WithBackupSink(sink backup.Sink) Option { return func(s *Server) { s.sink = sink } }

// WithClock overrides the time source used by the views.
func WithClock(now func() time.Time) Option { return func(s *Server) { s.now = now } }

// WithLocation sets the time zone calendar days are computed in.
func WithLocation(loc *time.Location) Option { return func(s *Server) { s.loc = loc } }

// WithJWT enforces HS256 bearer tokens when secret is non-empty.
func WithJWT(secret, issuer, audience string) Option {
    return func(s *Server) { s.auth = authJWT(secret, issuer, audience) }
}

// New constructs the HTTP server with routes and middleware.
// The logger is used by request logging and panic recovery.
func New(l Ledger, p Preferences, logger *slog.Logger, opts ...Option) *Server {
    s := &Server{
        ledger: l,
        prefs:  p,
        now:    time.Now,
        loc:    time.Local,
        idem:   newIdempotencyStore(),
        log:    logger,
    }
    for _, o := range opts { o(s) }

    r := chi.NewRouter()
    r.Use(chimw.RequestID)
    r.Use(requestLogger(logger))
    r.Use(recoverer(logger))
    r.Use(metricsMiddleware)
    if s.auth != nil { r.Use(s.auth) }
    s.rt = r
    s.routes()
    return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// clock is now in the configured location.
func (s *Server) clock() time.Time { return s.now().In(s.loc) }

// routes declares the public HTTP API endpoints and attaches any per-route middleware.
func (s *Server) routes() {
    // Transactions
    s.rt.With(s.validateListTransactions()).Get("/v1/transactions", s.listTransactions)
    s.rt.With(s.idempotent, s.validatePostTransaction()).Post("/v1/transactions", s.postTransaction)
    s.rt.Get("/v1/transactions/{id}", s.getTransaction)
    s.rt.Patch("/v1/transactions/{id}", s.patchTransaction)
    s.rt.Delete("/v1/transactions/{id}", s.deleteTransaction)
    s.rt.Post("/v1/transactions/{id}/pay", s.payTransaction)
    s.rt.With(s.idempotent).Post("/v1/transfers", s.postTransfer)
    // Accounts
    s.rt.Get("/v1/accounts", s.listAccounts)
    s.rt.Post("/v1/accounts", s.postAccount)
    s.rt.Get("/v1/accounts/{id}", s.getAccount)
    s.rt.Patch("/v1/accounts/{id}", s.patchAccount)
    s.rt.Delete("/v1/accounts/{id}", s.deleteAccount)
    // Cards
    s.rt.Get("/v1/cards", s.listCards)
    s.rt.Post("/v1/cards", s.postCard)
    s.rt.Get("/v1/cards/{id}", s.getCard)
    s.rt.Patch("/v1/cards/{id}", s.patchCard)
    s.rt.Delete("/v1/cards/{id}", s.deleteCard)
    s.rt.Get("/v1/cards/{id}/statement", s.cardStatement)
    s.rt.With(s.idempotent).Post("/v1/cards/{id}/pay-invoice", s.payInvoice)
    // Goals
    s.rt.Get("/v1/goals", s.listGoals)
    s.rt.Post("/v1/goals", s.postGoal)
    s.rt.Patch("/v1/goals/{id}", s.patchGoal)
    s.rt.Delete("/v1/goals/{id}", s.deleteGoal)
    s.rt.With(s.idempotent).Post("/v1/goals/{id}/contributions", s.postContribution)
    // Views
    s.rt.Get("/v1/views/summary", s.summary)
    s.rt.Get("/v1/views/forecast", s.forecast)
    s.rt.Get("/v1/views/breakdown", s.breakdown)
    s.rt.Get("/v1/views/calendar", s.calendarMonth)
    s.rt.Get("/v1/views/calendar/{date}", s.calendarDay)
    s.rt.Get("/v1/views/bills", s.bills)
    s.rt.Get("/v1/views/reports/monthly", s.monthlyReport)
    s.rt.Get("/v1/views/series/balance", s.balanceSeries)
    s.rt.Get("/v1/views/budget", s.budget)
    s.rt.Get("/v1/views/goals", s.goalsView)
    s.rt.Get("/v1/categories", s.usedCategories)
    // Preferences
    s.rt.Get("/v1/preferences", s.getPreferences)
    s.rt.Post("/v1/preferences/visibility/toggle", s.toggleVisibility)
    s.rt.Post("/v1/preferences/theme/toggle", s.toggleTheme)
    s.rt.Put("/v1/preferences/layout", s.putLayout)
    s.rt.Put("/v1/preferences/budget", s.putBudget)
    // Backup
    s.rt.Get("/v1/export", s.export)
    s.rt.Post("/v1/import", s.importBackup)
    s.rt.Post("/v1/backups", s.postBackup)
    s.rt.Post("/v1/reset", s.reset)
    // Dictionary
    s.rt.Get("/v1/dictionary/categories", s.getCategoriesDictionary)
    s.rt.Get("/v1/dictionary/widgets", s.getWidgetsDictionary)
    // Health (unversioned)
    s.rt.Get("/healthz", s.healthz)
    s.rt.Get("/readyz", s.readyz)
    s.rt.Method(http.MethodGet, "/metrics", metricsHandler())
}
