package v1

import (
    "encoding/json"
    "time"

    "github.com/govalues/decimal"

    "github.com/tinoosan/finboard/internal/ledger"
    "github.com/tinoosan/finboard/internal/view"
)

// Amounts travel as decimal strings in responses; requests accept strings or
// JSON numbers.

func amount(d decimal.Decimal) string { return d.String() }

// Transactions

type postTransactionRequest struct {
    Description string                 `json:"description"`
    Amount      json.Number            `json:"amount"`
    Type        ledger.TransactionType `json:"type"`
    Category    string                 `json:"category"`
    Date        string                 `json:"date"`
    Status      ledger.Status          `json:"status"`
    Recurrence  ledger.Recurrence      `json:"recurrence"`
    CardID      string                 `json:"card_id"`
    AccountID   string                 `json:"account_id"`
}

type patchTransactionRequest struct {
    Description *string                 `json:"description"`
    Amount      *json.Number            `json:"amount"`
    Type        *ledger.TransactionType `json:"type"`
    Category    *string                 `json:"category"`
    Date        *string                 `json:"date"`
    Status      *ledger.Status          `json:"status"`
    Recurrence  *ledger.Recurrence      `json:"recurrence"`
    CardID      *string                 `json:"card_id"`
    AccountID   *string                 `json:"account_id"`
}

type transactionResponse struct {
    ID          string                 `json:"id"`
    Description string                 `json:"description"`
    Amount      string                 `json:"amount"`
    Type        ledger.TransactionType `json:"type"`
    Category    string                 `json:"category"`
    Date        time.Time              `json:"date"`
    Status      ledger.Status          `json:"status"`
    Recurrence  ledger.Recurrence      `json:"recurrence,omitempty"`
    CardID      string                 `json:"card_id,omitempty"`
    AccountID   string                 `json:"account_id,omitempty"`
    FromAccount string                 `json:"from_account,omitempty"`
    ToAccount   string                 `json:"to_account,omitempty"`
    ToAccountID string                 `json:"to_account_id,omitempty"`
}

func toTransactionResponse(t ledger.Transaction) transactionResponse {
    return transactionResponse{
        ID:          t.ID,
        Description: t.Description,
        Amount:      amount(t.Amount),
        Type:        t.Type,
        Category:    t.Category,
        Date:        t.Date,
        Status:      t.Status,
        Recurrence:  t.Recurrence,
        CardID:      t.CardID,
        AccountID:   t.AccountID,
        FromAccount: t.FromAccount,
        ToAccount:   t.ToAccount,
        ToAccountID: t.ToAccountID,
    }
}

func toTransactionsResponse(txs []ledger.Transaction) []transactionResponse {
    out := make([]transactionResponse, 0, len(txs))
    for _, t := range txs { out = append(out, toTransactionResponse(t)) }
    return out
}

type listTransactionsResponse struct {
    Items []transactionResponse `json:"items"`
    Total int                   `json:"total"`
}

type payInvoiceRequest struct {
    AccountID string      `json:"account_id"`
    Amount    json.Number `json:"amount"`
    Date      string      `json:"date"`
}

type postTransferRequest struct {
    FromAccountID string      `json:"from_account_id"`
    ToAccountID   string      `json:"to_account_id"`
    Amount        json.Number `json:"amount"`
    Date          string      `json:"date"`
}

// Accounts

type postAccountRequest struct {
    Name    string      `json:"name"`
    Balance json.Number `json:"balance"`
    Type    string      `json:"type"`
}

type patchAccountRequest struct {
    Name *string `json:"name"`
    Type *string `json:"type"`
}

type accountResponse struct {
    ID      string `json:"id"`
    Name    string `json:"name"`
    Balance string `json:"balance"`
    Type    string `json:"type"`
}

func toAccountResponse(a ledger.Account) accountResponse {
    return accountResponse{ID: a.ID, Name: a.Name, Balance: amount(a.Balance), Type: a.Type}
}

type listAccountsResponse struct {
    Items []accountResponse `json:"items"`
    Total string            `json:"total"`
}

// Cards

type postCardRequest struct {
    Name       string      `json:"name"`
    Limit      json.Number `json:"limit"`
    ClosingDay int         `json:"closing_day"`
    DueDay     int         `json:"due_day"`
}

type patchCardRequest struct {
    Name       *string      `json:"name"`
    Limit      *json.Number `json:"limit"`
    ClosingDay *int         `json:"closing_day"`
    DueDay     *int         `json:"due_day"`
}

type cardResponse struct {
    ID           string `json:"id"`
    Name         string `json:"name"`
    Limit        string `json:"limit"`
    ClosingDay   int    `json:"closing_day"`
    DueDay       int    `json:"due_day"`
    Invoice      string `json:"invoice"`
    Available    string `json:"available"`
    UsagePercent string `json:"usage_percent"`
}

func toCardResponse(s view.CardSummary) cardResponse {
    return cardResponse{
        ID:           s.Card.ID,
        Name:         s.Card.Name,
        Limit:        amount(s.Card.Limit),
        ClosingDay:   s.Card.ClosingDay,
        DueDay:       s.Card.DueDay,
        Invoice:      amount(s.Invoice),
        Available:    amount(s.Available),
        UsagePercent: amount(s.UsagePercent),
    }
}

type cardStatementResponse struct {
    Card  cardResponse          `json:"card"`
    Items []transactionResponse `json:"items"`
}

// Goals

type postGoalRequest struct {
    Name          string      `json:"name"`
    TargetAmount  json.Number `json:"target_amount"`
    CurrentAmount json.Number `json:"current_amount"`
    Deadline      string      `json:"deadline"`
    Icon          string      `json:"icon"`
    Color         string      `json:"color"`
}

type patchGoalRequest struct {
    Name         *string      `json:"name"`
    TargetAmount *json.Number `json:"target_amount"`
    Deadline     *string      `json:"deadline"`
    Icon         *string      `json:"icon"`
    Color        *string      `json:"color"`
}

type contributionRequest struct {
    Amount    json.Number `json:"amount"`
    AccountID string      `json:"account_id"`
}

type goalResponse struct {
    ID            string `json:"id"`
    Name          string `json:"name"`
    TargetAmount  string `json:"target_amount"`
    CurrentAmount string `json:"current_amount"`
    Deadline      string `json:"deadline,omitempty"`
    Icon          string `json:"icon,omitempty"`
    Color         string `json:"color,omitempty"`
    Percent       string `json:"percent"`
    Remaining     string `json:"remaining"`
    Completed     bool   `json:"completed"`
}

func toGoalResponse(p view.GoalProgress) goalResponse {
    g := p.Goal
    resp := goalResponse{
        ID:            g.ID,
        Name:          g.Name,
        TargetAmount:  amount(g.TargetAmount),
        CurrentAmount: amount(g.CurrentAmount),
        Icon:          g.Icon,
        Color:         g.Color,
        Percent:       amount(p.Percent),
        Remaining:     amount(p.Remaining),
        Completed:     p.Completed,
    }
    if !g.Deadline.IsZero() { resp.Deadline = g.Deadline.Format(ledger.DateLayout) }
    return resp
}

type goalsResponse struct {
    Items   []goalResponse `json:"items"`
    Saved   string         `json:"saved"`
    Target  string         `json:"target"`
    Percent string         `json:"percent"`
}

// Views

type sumsResponse struct {
    Income       string `json:"income"`
    Expense      string `json:"expense"`
    Balance      string `json:"balance"`
    CardExpenses string `json:"card_expenses"`
}

func toSumsResponse(s view.Sums) sumsResponse {
    return sumsResponse{Income: amount(s.Income), Expense: amount(s.Expense), Balance: amount(s.Balance), CardExpenses: amount(s.CardExpenses)}
}

type forecastResponse struct {
    Current        string `json:"current"`
    PendingIncome  string `json:"pending_income"`
    PendingExpense string `json:"pending_expense"`
    Forecast       string `json:"forecast"`
}

func toForecastResponse(p view.Projection) forecastResponse {
    return forecastResponse{Current: amount(p.Current), PendingIncome: amount(p.PendingIncome), PendingExpense: amount(p.PendingExpense), Forecast: amount(p.Forecast)}
}

type shareResponse struct {
    Category string `json:"category"`
    Amount   string `json:"amount"`
    Percent  string `json:"percent"`
}

func toSharesResponse(s []view.CategoryShare) []shareResponse {
    out := make([]shareResponse, 0, len(s))
    for _, c := range s { out = append(out, shareResponse{Category: c.Category, Amount: amount(c.Amount), Percent: amount(c.Percent)}) }
    return out
}

type budgetResponse struct {
    Limit     string `json:"limit"`
    Spent     string `json:"spent"`
    Remaining string `json:"remaining"`
    Percent   string `json:"percent"`
    Exceeded  bool   `json:"exceeded"`
}

func toBudgetResponse(b view.Budget) budgetResponse {
    return budgetResponse{Limit: amount(b.Limit), Spent: amount(b.Spent), Remaining: amount(b.Remaining), Percent: amount(b.Percent), Exceeded: b.Exceeded}
}

type upcomingResponse struct {
    Items []transactionResponse `json:"items"`
    Total string                `json:"total"`
}

type summaryResponse struct {
    Period       view.Period      `json:"period"`
    Visible      bool             `json:"visible"`
    TotalBalance string           `json:"total_balance"`
    Totals       sumsResponse     `json:"totals"`
    Forecast     forecastResponse `json:"forecast"`
    Accounts     []accountResponse `json:"accounts"`
    Cards        []cardResponse   `json:"cards"`
    Categories   []shareResponse  `json:"categories"`
    Upcoming     upcomingResponse `json:"upcoming"`
    Budget       budgetResponse   `json:"budget"`
    Goals        goalsResponse    `json:"goals"`
}

type billsResponse struct {
    Overdue  []transactionResponse `json:"overdue"`
    DueToday []transactionResponse `json:"due_today"`
    Upcoming []transactionResponse `json:"upcoming"`
    Total    string                `json:"total"`
}

type dayFlagsResponse struct {
    Date           string `json:"date"`
    HasIncome      bool   `json:"has_income"`
    HasExpense     bool   `json:"has_expense"`
    HasPendingBill bool   `json:"has_pending_bill"`
}

type dayResponse struct {
    Date         string                `json:"date"`
    Income       string                `json:"income"`
    Expense      string                `json:"expense"`
    Balance      string                `json:"balance"`
    Transactions []transactionResponse `json:"transactions"`
    PendingBills []transactionResponse `json:"pending_bills"`
}

type monthTotalsResponse struct {
    Month   string `json:"month"`
    Income  string `json:"income"`
    Expense string `json:"expense"`
}

type monthReportResponse struct {
    Month       string                `json:"month"`
    Income      string                `json:"income"`
    Expense     string                `json:"expense"`
    Balance     string                `json:"balance"`
    SavingsRate string                `json:"savings_rate"`
    Categories  []shareResponse       `json:"categories"`
    TopExpenses []transactionResponse `json:"top_expenses"`
    Series      []monthTotalsResponse `json:"series"`
}

type pointResponse struct {
    Start   time.Time `json:"start"`
    Income  string    `json:"income"`
    Outflow string    `json:"outflow"`
}

// Preferences

type preferencesResponse struct {
    Visible     bool     `json:"visible"`
    Theme       string   `json:"theme"`
    Order       []string `json:"order"`
    Hidden      []string `json:"hidden"`
    BudgetLimit string   `json:"budget_limit"`
}

type layoutRequest struct {
    Order  []string `json:"order"`
    Hidden []string `json:"hidden"`
}

type budgetRequest struct {
    Limit json.Number `json:"limit"`
}
