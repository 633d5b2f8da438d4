package v1

import (
    "bytes"
    "context"
    "crypto/hmac"
    "crypto/sha256"
    "encoding/base64"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "log/slog"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/tinoosan/finboard/internal/service/finance"
    "github.com/tinoosan/finboard/internal/service/prefs"
    "github.com/tinoosan/finboard/internal/storage/memory"
)

func testLogger() *slog.Logger {
    return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

var testNow = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

type errResp struct {
    Error string `json:"error"`
    Code  string `json:"code"`
}

type env struct {
    t     *testing.T
    h     http.Handler
    store *finance.Store
    prefs *prefs.Service
    slots *memory.Store
}

func setup(t *testing.T, opts ...Option) *env {
    t.Helper()
    slots := memory.New()
    n := 0
    store := finance.New(slots,
        finance.WithLogger(testLogger()),
        finance.WithClock(func() time.Time { return testNow }),
        finance.WithIDs(func() string { n++; return fmt.Sprintf("id-%d", n) }),
        finance.WithObserver(ObserveMutation),
    )
    store.Load(context.Background())
    p := prefs.New(slots, testLogger())
    p.Load(context.Background())
    base := []Option{WithClock(func() time.Time { return testNow }), WithLocation(time.UTC)}
    h := New(store, p, testLogger(), append(base, opts...)...).Handler()
    return &env{t: t, h: h, store: store, prefs: p, slots: slots}
}

// do sends body as JSON (unless nil) and returns the recorder.
func (e *env) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
    e.t.Helper()
    var rd io.Reader
    if body != nil {
        b, err := json.Marshal(body)
        if err != nil { e.t.Fatalf("marshal: %v", err) }
        rd = bytes.NewReader(b)
    }
    req := httptest.NewRequest(method, path, rd)
    if body != nil { req.Header.Set("Content-Type", "application/json") }
    for i := 0; i+1 < len(headers); i += 2 { req.Header.Set(headers[i], headers[i+1]) }
    rec := httptest.NewRecorder()
    e.h.ServeHTTP(rec, req)
    return rec
}

func expect(t *testing.T, rec *httptest.ResponseRecorder, code int) {
    t.Helper()
    if rec.Code != code {
        t.Fatalf("expected %d, got %d: %s", code, rec.Code, rec.Body.String())
    }
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
    t.Helper()
    var v T
    if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
        t.Fatalf("decode: %v (%s)", err, rec.Body.String())
    }
    return v
}

func (e *env) account(name, balance string) accountResponse {
    e.t.Helper()
    rec := e.do(http.MethodPost, "/v1/accounts", map[string]any{"name": name, "balance": balance})
    expect(e.t, rec, http.StatusCreated)
    return decode[accountResponse](e.t, rec)
}

func (e *env) balance(id string) string {
    e.t.Helper()
    rec := e.do(http.MethodGet, "/v1/accounts/"+id, nil)
    expect(e.t, rec, http.StatusOK)
    return decode[accountResponse](e.t, rec).Balance
}

func TestAccounts_CRUD(t *testing.T) {
    e := setup(t)
    acc := e.account("Nubank", "1000")
    if acc.Type != finance.DefaultAccountType || acc.Balance != "1000" {
        t.Fatalf("unexpected account: %+v", acc)
    }
    e.account("Itaú", "250.50")

    list := decode[listAccountsResponse](t, e.do(http.MethodGet, "/v1/accounts", nil))
    if len(list.Items) != 2 || list.Total != "1250.50" {
        t.Fatalf("unexpected list: %+v", list)
    }

    rec := e.do(http.MethodPatch, "/v1/accounts/"+acc.ID, map[string]any{"name": "Nu", "type": "savings"})
    expect(t, rec, http.StatusOK)
    if got := decode[accountResponse](t, rec); got.Name != "Nu" || got.Type != "savings" || got.Balance != "1000" {
        t.Fatalf("patch: %+v", got)
    }
    // balance is not patchable
    expect(t, e.do(http.MethodPatch, "/v1/accounts/"+acc.ID, map[string]any{"balance": "5"}), http.StatusBadRequest)

    expect(t, e.do(http.MethodDelete, "/v1/accounts/"+acc.ID, nil), http.StatusNoContent)
    rec = e.do(http.MethodGet, "/v1/accounts/"+acc.ID, nil)
    expect(t, rec, http.StatusNotFound)
    if er := decode[errResp](t, rec); er.Code != "not_found" {
        t.Fatalf("unexpected error: %+v", er)
    }
}

func TestTransactions_LifecycleMovesBalance(t *testing.T) {
    e := setup(t)
    acc := e.account("Nubank", "1000")

    rec := e.do(http.MethodPost, "/v1/transactions", map[string]any{
        "description": "Mercado", "amount": 150, "type": "expense", "category": "Alimentação",
        "date": "2025-03-15", "account_id": acc.ID,
    })
    expect(t, rec, http.StatusCreated)
    paid := decode[transactionResponse](t, rec)
    if paid.Status != "paid" || paid.Amount != "150" {
        t.Fatalf("unexpected tx: %+v", paid)
    }
    if got := e.balance(acc.ID); got != "850" {
        t.Fatalf("balance after paid expense = %s", got)
    }

    rec = e.do(http.MethodPost, "/v1/transactions", map[string]any{
        "description": "Aluguel", "amount": "900", "type": "expense", "category": "Moradia",
        "date": "2025-03-20", "status": "pending", "account_id": acc.ID,
    })
    expect(t, rec, http.StatusCreated)
    pending := decode[transactionResponse](t, rec)
    if got := e.balance(acc.ID); got != "850" {
        t.Fatalf("pending expense moved balance: %s", got)
    }

    expect(t, e.do(http.MethodPost, "/v1/transactions/"+pending.ID+"/pay", nil), http.StatusOK)
    if got := e.balance(acc.ID); got != "-50" {
        t.Fatalf("balance after pay = %s", got)
    }
    // paying twice is a no-op
    expect(t, e.do(http.MethodPost, "/v1/transactions/"+pending.ID+"/pay", nil), http.StatusOK)
    if got := e.balance(acc.ID); got != "-50" {
        t.Fatalf("second pay moved balance: %s", got)
    }

    list := decode[listTransactionsResponse](t, e.do(http.MethodGet, "/v1/transactions?q=merc", nil))
    if list.Total != 1 || list.Items[0].ID != paid.ID {
        t.Fatalf("search: %+v", list)
    }
    list = decode[listTransactionsResponse](t, e.do(http.MethodGet, "/v1/transactions?period=hoje", nil))
    if list.Total != 1 || list.Items[0].ID != paid.ID {
        t.Fatalf("today filter: %+v", list)
    }
    list = decode[listTransactionsResponse](t, e.do(http.MethodGet, "/v1/transactions", nil))
    if list.Total != 2 || list.Items[0].ID != pending.ID {
        t.Fatalf("expected newest first: %+v", list)
    }

    rec = e.do(http.MethodPatch, "/v1/transactions/"+paid.ID, map[string]any{"description": "Feira"})
    expect(t, rec, http.StatusOK)
    if got := decode[transactionResponse](t, rec); got.Description != "Feira" {
        t.Fatalf("patch: %+v", got)
    }

    expect(t, e.do(http.MethodDelete, "/v1/transactions/"+paid.ID, nil), http.StatusNoContent)
    if got := e.balance(acc.ID); got != "100" {
        t.Fatalf("balance after delete = %s", got)
    }
    expect(t, e.do(http.MethodDelete, "/v1/transactions/"+paid.ID, nil), http.StatusNotFound)
}

func TestTransactions_Validation(t *testing.T) {
    e := setup(t)
    acc := e.account("Nubank", "100")

    // missing content type
    req := httptest.NewRequest(http.MethodPost, "/v1/transactions", strings.NewReader(`{}`))
    rec := httptest.NewRecorder()
    e.h.ServeHTTP(rec, req)
    expect(t, rec, http.StatusUnsupportedMediaType)

    expect(t, e.do(http.MethodPost, "/v1/transactions", map[string]any{"bogus": true}), http.StatusBadRequest)

    cases := []struct {
        name   string
        body   map[string]any
        code   string
        status int
    }{
        {"zero amount", map[string]any{"description": "x", "amount": "0", "type": "expense", "account_id": acc.ID}, "validation_error", http.StatusUnprocessableEntity},
        {"bad amount", map[string]any{"description": "x", "amount": "abc", "type": "expense"}, "", http.StatusBadRequest},
        {"transfer type", map[string]any{"description": "x", "amount": "10", "type": "transfer", "account_id": acc.ID}, "reserved", http.StatusUnprocessableEntity},
        {"bad date", map[string]any{"description": "x", "amount": "10", "type": "expense", "date": "15/03/2025"}, "validation_error", http.StatusUnprocessableEntity},
        {"unknown account", map[string]any{"description": "x", "amount": "10", "type": "expense", "account_id": "nope"}, "not_found", http.StatusNotFound},
    }
    for _, c := range cases {
        t.Run(c.name, func(t *testing.T) {
            rec := e.do(http.MethodPost, "/v1/transactions", c.body)
            expect(t, rec, c.status)
            if c.code != "" {
                if er := decode[errResp](t, rec); er.Code != c.code {
                    t.Fatalf("code = %q, want %q", er.Code, c.code)
                }
            }
        })
    }
    if got := e.balance(acc.ID); got != "100" {
        t.Fatalf("refused mutations moved balance: %s", got)
    }
    expect(t, e.do(http.MethodGet, "/v1/transactions?period=decade", nil), http.StatusUnprocessableEntity)
    expect(t, e.do(http.MethodGet, "/v1/transactions?type=gift", nil), http.StatusBadRequest)
}

func TestTransfers(t *testing.T) {
    e := setup(t)
    a := e.account("Nubank", "1000")
    b := e.account("Itaú", "0")

    rec := e.do(http.MethodPost, "/v1/transfers", map[string]any{"from_account_id": a.ID, "to_account_id": a.ID, "amount": "10"})
    expect(t, rec, http.StatusUnprocessableEntity)
    if er := decode[errResp](t, rec); er.Code != "same_account" {
        t.Fatalf("code = %q", er.Code)
    }

    rec = e.do(http.MethodPost, "/v1/transfers", map[string]any{"from_account_id": a.ID, "to_account_id": b.ID, "amount": "300"})
    expect(t, rec, http.StatusCreated)
    tx := decode[transactionResponse](t, rec)
    if tx.Type != "transfer" || tx.FromAccount != "Nubank" || tx.ToAccount != "Itaú" {
        t.Fatalf("unexpected transfer: %+v", tx)
    }
    if e.balance(a.ID) != "700" || e.balance(b.ID) != "300" {
        t.Fatalf("balances = %s / %s", e.balance(a.ID), e.balance(b.ID))
    }
    // transfers never count as income or expense
    sum := decode[summaryResponse](t, e.do(http.MethodGet, "/v1/views/summary", nil))
    if sum.Totals.Income != "0" || sum.Totals.Expense != "0" || sum.TotalBalance != "1000" {
        t.Fatalf("summary totals: %+v", sum.Totals)
    }
}

func TestCards_StatementAndInvoicePayment(t *testing.T) {
    e := setup(t)
    acc := e.account("Nubank", "2000")
    rec := e.do(http.MethodPost, "/v1/cards", map[string]any{"name": "Visa", "limit": "3000", "closing_day": 5, "due_day": 12})
    expect(t, rec, http.StatusCreated)
    card := decode[cardResponse](t, rec)

    expect(t, e.do(http.MethodPost, "/v1/cards", map[string]any{"name": "Bad", "limit": "10", "closing_day": 40, "due_day": 1}), http.StatusUnprocessableEntity)

    for _, amt := range []string{"100", "250"} {
        rec = e.do(http.MethodPost, "/v1/transactions", map[string]any{
            "description": "Compra", "amount": amt, "type": "expense", "category": "Lazer", "card_id": card.ID,
        })
        expect(t, rec, http.StatusCreated)
        if tx := decode[transactionResponse](t, rec); tx.Status != "pending" {
            t.Fatalf("card expense status = %s", tx.Status)
        }
    }

    st := decode[cardStatementResponse](t, e.do(http.MethodGet, "/v1/cards/"+card.ID+"/statement", nil))
    if st.Card.Invoice != "350" || st.Card.Available != "2650" || len(st.Items) != 2 {
        t.Fatalf("statement: %+v", st)
    }

    rec = e.do(http.MethodPost, "/v1/cards/"+card.ID+"/pay-invoice", map[string]any{"account_id": acc.ID, "amount": "350"})
    expect(t, rec, http.StatusCreated)
    if pay := decode[transactionResponse](t, rec); pay.Category != "Pagamento de Fatura" || pay.Status != "paid" {
        t.Fatalf("payment: %+v", pay)
    }
    got := decode[cardResponse](t, e.do(http.MethodGet, "/v1/cards/"+card.ID, nil))
    if got.Invoice != "0" {
        t.Fatalf("invoice after payment = %s", got.Invoice)
    }
    if e.balance(acc.ID) != "1650" {
        t.Fatalf("balance = %s", e.balance(acc.ID))
    }
    expect(t, e.do(http.MethodDelete, "/v1/cards/"+card.ID, nil), http.StatusNoContent)
    expect(t, e.do(http.MethodGet, "/v1/cards/"+card.ID+"/statement", nil), http.StatusNotFound)
}

func TestGoals_Contribution(t *testing.T) {
    e := setup(t)
    acc := e.account("Nubank", "1000")
    rec := e.do(http.MethodPost, "/v1/goals", map[string]any{"name": "Viagem", "target_amount": "2000", "current_amount": "500", "deadline": "2025-12-31"})
    expect(t, rec, http.StatusCreated)
    g := decode[goalResponse](t, rec)
    if g.Deadline != "2025-12-31" || g.Completed || g.Remaining != "1500" {
        t.Fatalf("goal: %+v", g)
    }

    rec = e.do(http.MethodPost, "/v1/goals/"+g.ID+"/contributions", map[string]any{"amount": "500", "account_id": acc.ID})
    expect(t, rec, http.StatusOK)
    if got := decode[goalResponse](t, rec); got.CurrentAmount != "1000" {
        t.Fatalf("after contribution: %+v", got)
    }
    if e.balance(acc.ID) != "500" {
        t.Fatalf("balance = %s", e.balance(acc.ID))
    }
    all := decode[goalsResponse](t, e.do(http.MethodGet, "/v1/views/goals", nil))
    if all.Saved != "1000" || all.Target != "2000" || len(all.Items) != 1 {
        t.Fatalf("goals view: %+v", all)
    }
    expect(t, e.do(http.MethodPost, "/v1/goals/nope/contributions", map[string]any{"amount": "1"}), http.StatusNotFound)
    expect(t, e.do(http.MethodDelete, "/v1/goals/"+g.ID, nil), http.StatusNoContent)
}

func TestViews(t *testing.T) {
    e := setup(t)
    acc := e.account("Nubank", "1000")
    post := func(body map[string]any) {
        t.Helper()
        body["account_id"] = acc.ID
        expect(t, e.do(http.MethodPost, "/v1/transactions", body), http.StatusCreated)
    }
    post(map[string]any{"description": "Salário", "amount": "5000", "type": "income", "category": "Salário", "date": "2025-03-05"})
    post(map[string]any{"description": "Mercado", "amount": "300", "type": "expense", "category": "Alimentação", "date": "2025-03-10"})
    post(map[string]any{"description": "Luz", "amount": "120", "type": "expense", "category": "Moradia", "date": "2025-03-01", "status": "pending"})
    post(map[string]any{"description": "Internet", "amount": "100", "type": "expense", "category": "Moradia", "date": "2025-03-18", "status": "pending"})

    bills := decode[billsResponse](t, e.do(http.MethodGet, "/v1/views/bills", nil))
    if len(bills.Overdue) != 1 || len(bills.DueToday) != 0 || len(bills.Upcoming) != 1 || bills.Total != "220" {
        t.Fatalf("bills: %+v", bills)
    }

    fc := decode[forecastResponse](t, e.do(http.MethodGet, "/v1/views/forecast", nil))
    if fc.Current != "5700" || fc.PendingExpense != "100" || fc.Forecast != "5600" {
        t.Fatalf("forecast: %+v", fc)
    }

    day := decode[dayResponse](t, e.do(http.MethodGet, "/v1/views/calendar/2025-03-10", nil))
    if day.Expense != "300" || len(day.Transactions) != 1 {
        t.Fatalf("day: %+v", day)
    }
    cal := decode[struct {
        Month string             `json:"month"`
        Days  []dayFlagsResponse `json:"days"`
    }](t, e.do(http.MethodGet, "/v1/views/calendar?month=2025-03", nil))
    if cal.Month != "2025-03" || len(cal.Days) != 31 || !cal.Days[4].HasIncome || !cal.Days[0].HasPendingBill {
        t.Fatalf("calendar: %+v", cal)
    }

    rep := decode[monthReportResponse](t, e.do(http.MethodGet, "/v1/views/reports/monthly?month=2025-03&months=3", nil))
    if rep.Income != "5000" || rep.Expense != "520" || len(rep.Series) != 3 || rep.Series[2].Month != "2025-03" {
        t.Fatalf("report: %+v", rep)
    }
    expect(t, e.do(http.MethodGet, "/v1/views/reports/monthly?month=março", nil), http.StatusUnprocessableEntity)
    expect(t, e.do(http.MethodGet, "/v1/views/reports/monthly?months=0", nil), http.StatusBadRequest)

    br := decode[struct {
        Items []shareResponse `json:"items"`
    }](t, e.do(http.MethodGet, "/v1/views/breakdown?period=month&top=0", nil))
    if len(br.Items) != 2 || br.Items[0].Category != "Alimentação" {
        t.Fatalf("breakdown: %+v", br)
    }

    expect(t, e.do(http.MethodGet, "/v1/views/series/balance?period=12m", nil), http.StatusOK)
    expect(t, e.do(http.MethodGet, "/v1/views/series/balance?period=3y", nil), http.StatusUnprocessableEntity)

    bud := decode[budgetResponse](t, e.do(http.MethodGet, "/v1/views/budget", nil))
    if bud.Limit != "2000" {
        t.Fatalf("budget: %+v", bud)
    }

    cats := decode[struct {
        Items []string `json:"items"`
    }](t, e.do(http.MethodGet, "/v1/categories", nil))
    if len(cats.Items) != 3 {
        t.Fatalf("categories: %+v", cats)
    }
}

func TestPreferences(t *testing.T) {
    e := setup(t)
    p := decode[preferencesResponse](t, e.do(http.MethodGet, "/v1/preferences", nil))
    if !p.Visible || p.Theme != "dark" || p.BudgetLimit != "2000" {
        t.Fatalf("defaults: %+v", p)
    }
    p = decode[preferencesResponse](t, e.do(http.MethodPost, "/v1/preferences/visibility/toggle", nil))
    if p.Visible {
        t.Fatal("visibility not toggled")
    }
    p = decode[preferencesResponse](t, e.do(http.MethodPost, "/v1/preferences/theme/toggle", nil))
    if p.Theme != "light" {
        t.Fatalf("theme = %s", p.Theme)
    }
    rec := e.do(http.MethodPut, "/v1/preferences/layout", map[string]any{"order": []string{"faturas"}, "hidden": []string{"gastos-mes"}})
    expect(t, rec, http.StatusOK)
    if p = decode[preferencesResponse](t, rec); p.Order[0] != "faturas" || len(p.Hidden) != 1 {
        t.Fatalf("layout: %+v", p)
    }
    expect(t, e.do(http.MethodPut, "/v1/preferences/layout", map[string]any{"order": []string{"Widget X"}}), http.StatusUnprocessableEntity)
    expect(t, e.do(http.MethodPut, "/v1/preferences/budget", map[string]any{"limit": "-1"}), http.StatusUnprocessableEntity)
    rec = e.do(http.MethodPut, "/v1/preferences/budget", map[string]any{"limit": 3500})
    expect(t, rec, http.StatusOK)
    if p = decode[preferencesResponse](t, rec); p.BudgetLimit != "3500" {
        t.Fatalf("budget = %s", p.BudgetLimit)
    }
}

func TestExportImportReset(t *testing.T) {
    e := setup(t)
    acc := e.account("Nubank", "1000")
    expect(t, e.do(http.MethodPost, "/v1/transactions", map[string]any{"description": "Mercado", "amount": "100", "type": "expense", "account_id": acc.ID}), http.StatusCreated)

    rec := e.do(http.MethodGet, "/v1/export", nil)
    expect(t, rec, http.StatusOK)
    if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "backup_finance_2025-03-15.json") {
        t.Fatalf("content disposition = %q", cd)
    }
    doc := rec.Body.Bytes()

    other := setup(t)
    req := httptest.NewRequest(http.MethodPost, "/v1/import", bytes.NewReader(doc))
    req.Header.Set("Content-Type", "application/json")
    rec = httptest.NewRecorder()
    other.h.ServeHTTP(rec, req)
    expect(t, rec, http.StatusOK)
    res := decode[finance.ImportResult](t, rec)
    if res.Accounts != 1 || res.Transactions != 1 {
        t.Fatalf("import result: %+v", res)
    }
    if other.balance(acc.ID) != "900" {
        t.Fatalf("imported balance = %s", other.balance(acc.ID))
    }

    req = httptest.NewRequest(http.MethodPost, "/v1/import", strings.NewReader(`{"accounts":[]}`))
    req.Header.Set("Content-Type", "application/json")
    rec = httptest.NewRecorder()
    other.h.ServeHTTP(rec, req)
    expect(t, rec, http.StatusUnprocessableEntity)

    expect(t, e.do(http.MethodPost, "/v1/preferences/theme/toggle", nil), http.StatusOK)
    expect(t, e.do(http.MethodPost, "/v1/reset", nil), http.StatusNoContent)
    list := decode[listAccountsResponse](t, e.do(http.MethodGet, "/v1/accounts", nil))
    if len(list.Items) != 0 || e.slots.Len() != 0 {
        t.Fatalf("reset left data: %+v slots=%d", list, e.slots.Len())
    }
    if p := decode[preferencesResponse](t, e.do(http.MethodGet, "/v1/preferences", nil)); p.Theme != "dark" {
        t.Fatalf("preferences not reset: %+v", p)
    }

    expect(t, e.do(http.MethodPost, "/v1/backups", nil), http.StatusNotImplemented)
}

func TestIdempotencyKey(t *testing.T) {
    e := setup(t)
    acc := e.account("Nubank", "1000")
    body := map[string]any{"description": "Mercado", "amount": "100", "type": "expense", "account_id": acc.ID}

    first := e.do(http.MethodPost, "/v1/transactions", body, IdempotencyHeader, "k1")
    expect(t, first, http.StatusCreated)
    replay := e.do(http.MethodPost, "/v1/transactions", body, IdempotencyHeader, "k1")
    expect(t, replay, http.StatusCreated)
    if replay.Header().Get("Idempotent-Replay") != "true" || replay.Body.String() != first.Body.String() {
        t.Fatalf("expected replay, got %s", replay.Body.String())
    }
    if e.balance(acc.ID) != "900" {
        t.Fatalf("replay applied twice: %s", e.balance(acc.ID))
    }
    body["amount"] = "200"
    expect(t, e.do(http.MethodPost, "/v1/transactions", body, IdempotencyHeader, "k1"), http.StatusConflict)
    expect(t, e.do(http.MethodPost, "/v1/transactions", body, IdempotencyHeader, "k2"), http.StatusCreated)
}

func signHS256(t *testing.T, secret string, claims map[string]any) string {
    t.Helper()
    enc := base64.RawURLEncoding
    header := enc.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
    payload, _ := json.Marshal(claims)
    body := header + "." + enc.EncodeToString(payload)
    mac := hmac.New(sha256.New, []byte(secret))
    mac.Write([]byte(body))
    return body + "." + enc.EncodeToString(mac.Sum(nil))
}

func TestAuth_HS256(t *testing.T) {
    e := setup(t, WithJWT("s3cret", "finboard", "web"))
    expect(t, e.do(http.MethodGet, "/healthz", nil), http.StatusOK)
    expect(t, e.do(http.MethodGet, "/v1/dictionary/categories", nil), http.StatusOK)
    expect(t, e.do(http.MethodGet, "/v1/accounts", nil), http.StatusUnauthorized)

    exp := time.Now().Add(time.Hour).Unix()
    good := signHS256(t, "s3cret", map[string]any{"iss": "finboard", "aud": []string{"web"}, "exp": exp})
    expect(t, e.do(http.MethodGet, "/v1/accounts", nil, "Authorization", "Bearer "+good), http.StatusOK)

    cases := map[string]string{
        "wrong secret": signHS256(t, "other", map[string]any{"iss": "finboard", "aud": "web", "exp": exp}),
        "expired":      signHS256(t, "s3cret", map[string]any{"iss": "finboard", "aud": "web", "exp": time.Now().Add(-time.Minute).Unix()}),
        "wrong issuer": signHS256(t, "s3cret", map[string]any{"iss": "other", "aud": "web", "exp": exp}),
        "wrong aud":    signHS256(t, "s3cret", map[string]any{"iss": "finboard", "aud": "mobile", "exp": exp}),
        "garbage":      "a.b",
    }
    for name, tok := range cases {
        if rec := e.do(http.MethodGet, "/v1/accounts", nil, "Authorization", "Bearer "+tok); rec.Code != http.StatusUnauthorized {
            t.Errorf("%s: expected 401, got %d", name, rec.Code)
        }
    }
}

type fakeReady struct{ err error }

func (f fakeReady) Ready(context.Context) error { return f.err }

func TestHealthReadyAndMetrics(t *testing.T) {
    e := setup(t, WithReadiness(fakeReady{}))
    expect(t, e.do(http.MethodGet, "/readyz", nil), http.StatusOK)

    down := setup(t, WithReadiness(fakeReady{}), WithReadiness(fakeReady{err: errors.New("down")}))
    expect(t, down.do(http.MethodGet, "/readyz", nil), http.StatusServiceUnavailable)

    e.account("Nubank", "1")
    rec := e.do(http.MethodGet, "/metrics", nil)
    expect(t, rec, http.StatusOK)
    out := rec.Body.String()
    for _, want := range []string{"finboard_http_requests_total", `finboard_ledger_mutations_total{op="add_account",result="ok"}`} {
        if !strings.Contains(out, want) {
            t.Errorf("metrics missing %s", want)
        }
    }
}

type categoriesDictionary struct {
    Items []struct {
        Type       string `json:"type"`
        Categories []struct {
            Label    string `json:"label"`
            Reserved bool   `json:"reserved"`
        } `json:"categories"`
    } `json:"items"`
}

func TestDictionary(t *testing.T) {
    e := setup(t)
    rec := e.do(http.MethodGet, "/v1/dictionary/categories?type=income", nil)
    expect(t, rec, http.StatusOK)
    out := decode[categoriesDictionary](t, rec)
    if len(out.Items) != 1 || out.Items[0].Type != "income" || len(out.Items[0].Categories) != 2 {
        t.Fatalf("income categories: %+v", out)
    }
    all := decode[categoriesDictionary](t, e.do(http.MethodGet, "/v1/dictionary/categories", nil))
    if len(all.Items) != 3 || !all.Items[2].Categories[0].Reserved {
        t.Fatalf("all categories: %+v", all)
    }
    expect(t, e.do(http.MethodGet, "/v1/dictionary/categories?type=gift", nil), http.StatusBadRequest)

    w := decode[struct {
        Items        []map[string]string `json:"items"`
        DefaultOrder []string            `json:"default_order"`
    }](t, e.do(http.MethodGet, "/v1/dictionary/widgets", nil))
    if len(w.Items) != 5 || w.DefaultOrder[0] != "minhas-contas" {
        t.Fatalf("widgets: %+v", w)
    }
}
