package v1

import (
    "context"
    "encoding/json"
    "fmt"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/govalues/decimal"

    "github.com/tinoosan/finboard/internal/errs"
    "github.com/tinoosan/finboard/internal/ledger"
    "github.com/tinoosan/finboard/internal/service/finance"
    "github.com/tinoosan/finboard/internal/view"
)

type ctxKey string

const ctxKeyPostTransaction ctxKey = "validatedPostTransaction"
const ctxKeyListTransactions ctxKey = "validatedListTransactions"

// listTransactionsQuery holds validated query params for GET /v1/transactions.
type listTransactionsQuery struct {
    Filter view.PeriodFilter
    Query  view.Query
}

// validatePostTransaction decodes POST /v1/transactions and stores the
// finance.NewTransaction in the request context for the handler to use.
func (s *Server) validatePostTransaction() func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            var req postTransactionRequest
            if !decodeJSON(w, r, &req) { return }
            amt, err := parseAmount(req.Amount)
            if err != nil { writeDomainErr(w, err); return }
            date, err := s.parseDate(req.Date)
            if err != nil { writeDomainErr(w, err); return }
            in := finance.NewTransaction{
                Description: req.Description,
                Amount:      amt,
                Type:        req.Type,
                Category:    req.Category,
                Date:        date,
                Status:      req.Status,
                Recurrence:  req.Recurrence,
                CardID:      req.CardID,
                AccountID:   req.AccountID,
            }
            ctx := context.WithValue(r.Context(), ctxKeyPostTransaction, in)
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}

// validateListTransactions parses the period and search params of GET /v1/transactions.
func (s *Server) validateListTransactions() func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            q := r.URL.Query()
            f, err := s.periodFilter(r)
            if err != nil { writeDomainErr(w, err); return }
            query := view.Query{
                Search:       q.Get("q"),
                Type:         ledger.TransactionType(q.Get("type")),
                Category:     q.Get("category"),
                CurrentMonth: queryBool(q.Get("current_month")),
                ExcludeCards: queryBool(q.Get("exclude_cards")),
            }
            if query.Type != "" && !query.Type.Valid() {
                badRequest(w, fmt.Sprintf("invalid type %q", query.Type))
                return
            }
            ctx := context.WithValue(r.Context(), ctxKeyListTransactions, listTransactionsQuery{Filter: f, Query: query})
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}

// periodFilter reads period, from and to.
func (s *Server) periodFilter(r *http.Request) (view.PeriodFilter, error) {
    q := r.URL.Query()
    p, err := view.ParsePeriod(q.Get("period"))
    if err != nil { return view.PeriodFilter{}, err }
    f := view.PeriodFilter{Period: p}
    if f.From, err = s.parseDate(q.Get("from")); err != nil { return view.PeriodFilter{}, err }
    if f.To, err = s.parseDate(q.Get("to")); err != nil { return view.PeriodFilter{}, err }
    return f, nil
}

// parseDate accepts date-only and RFC 3339 values in the server location.
// Empty yields the zero time.
func (s *Server) parseDate(raw string) (time.Time, error) {
    if strings.TrimSpace(raw) == "" { return time.Time{}, nil }
    t, err := ledger.ParseDate(raw, s.loc)
    if err != nil { return time.Time{}, fmt.Errorf("%w: %v", errs.ErrInvalid, err) }
    return t, nil
}

// parseMonth accepts YYYY-MM; empty means the current month.
func (s *Server) parseMonth(raw string) (time.Time, error) {
    if raw == "" { return s.clock(), nil }
    t, err := time.ParseInLocation("2006-01", raw, s.loc)
    if err != nil { return time.Time{}, fmt.Errorf("%w: month %q, want YYYY-MM", errs.ErrInvalid, raw) }
    return t, nil
}

func parseAmount(n json.Number) (decimal.Decimal, error) {
    d, err := ledger.ParseAmount(n.String())
    if err != nil { return decimal.Zero, fmt.Errorf("%w: amount %q", errs.ErrInvalid, n) }
    return d, nil
}

func parseOptionalAmount(n *json.Number) (*decimal.Decimal, error) {
    if n == nil { return nil, nil }
    d, err := parseAmount(*n)
    if err != nil { return nil, err }
    return &d, nil
}

func queryBool(v string) bool {
    b, _ := strconv.ParseBool(v)
    return b
}

func queryInt(v string, def int) (int, error) {
    if v == "" { return def, nil }
    n, err := strconv.Atoi(v)
    if err != nil { return 0, fmt.Errorf("%w: %q is not a number", errs.ErrInvalid, v) }
    return n, nil
}
