package ledger

import (
    "encoding/json"
    "errors"
    "fmt"
    "strconv"
    "strings"
    "time"

    "github.com/govalues/decimal"
)

// JSON mapping for the persisted slot layout. Amounts are written as JSON
// numbers and read from numbers or numeric strings; dates are ISO-8601.

// DateLayout is the calendar-date layout used for deadlines and date-only input.
const DateLayout = "2006-01-02"

// isoLayout mirrors the millisecond UTC timestamps the slots were first written with.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// ParseDate accepts a calendar date (local midnight in loc) or an RFC 3339 timestamp.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
    s = strings.TrimSpace(s)
    if s == "" {
        return time.Time{}, errors.New("empty date")
    }
    if loc == nil {
        loc = time.Local
    }
    if len(s) == len(DateLayout) {
        return time.ParseInLocation(DateLayout, s, loc)
    }
    if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
        return t, nil
    }
    return time.ParseInLocation("2006-01-02T15:04:05", s, loc)
}

// ParseAmount decodes an amount from its textual form. Float renderings such
// as "1e-7" are accepted as a fallback.
func ParseAmount(s string) (decimal.Decimal, error) {
    s = strings.TrimSpace(s)
    if s == "" {
        return decimal.Zero, nil
    }
    d, err := decimal.Parse(s)
    if err == nil {
        return d, nil
    }
    f, ferr := strconv.ParseFloat(s, 64)
    if ferr != nil {
        return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", s, err)
    }
    return decimal.NewFromFloat64(f)
}

func number(d decimal.Decimal) json.Number { return json.Number(d.String()) }

type accountJSON struct {
    ID      string      `json:"id"`
    Name    string      `json:"name"`
    Balance json.Number `json:"balance"`
    Type    string      `json:"type"`
}

func (a Account) MarshalJSON() ([]byte, error) {
    return json.Marshal(accountJSON{ID: a.ID, Name: a.Name, Balance: number(a.Balance), Type: a.Type})
}

func (a *Account) UnmarshalJSON(b []byte) error {
    var raw accountJSON
    if err := json.Unmarshal(b, &raw); err != nil {
        return err
    }
    bal, err := ParseAmount(raw.Balance.String())
    if err != nil {
        return err
    }
    *a = Account{ID: raw.ID, Name: raw.Name, Balance: bal, Type: raw.Type}
    return nil
}

type cardJSON struct {
    ID          string      `json:"id"`
    Name        string      `json:"name"`
    Limit       json.Number `json:"limit"`
    ClosingDate int         `json:"closingDate"`
    DueDate     int         `json:"dueDate"`
}

func (c Card) MarshalJSON() ([]byte, error) {
    return json.Marshal(cardJSON{ID: c.ID, Name: c.Name, Limit: number(c.Limit), ClosingDate: c.ClosingDay, DueDate: c.DueDay})
}

func (c *Card) UnmarshalJSON(b []byte) error {
    var raw cardJSON
    if err := json.Unmarshal(b, &raw); err != nil {
        return err
    }
    limit, err := ParseAmount(raw.Limit.String())
    if err != nil {
        return err
    }
    *c = Card{ID: raw.ID, Name: raw.Name, Limit: limit, ClosingDay: raw.ClosingDate, DueDay: raw.DueDate}
    return nil
}

type transactionJSON struct {
    ID          string          `json:"id"`
    Description string          `json:"description"`
    Amount      json.Number     `json:"amount"`
    Type        TransactionType `json:"type"`
    Category    string          `json:"category"`
    Date        string          `json:"date"`
    Status      Status          `json:"status"`
    Recurrence  Recurrence      `json:"recurrence,omitempty"`
    CardID      string          `json:"cardId,omitempty"`
    AccountID   string          `json:"accountId,omitempty"`
    FromAccount string          `json:"fromAccount,omitempty"`
    ToAccount   string          `json:"toAccount,omitempty"`
    ToAccountID string          `json:"toAccountId,omitempty"`
}

func (t Transaction) MarshalJSON() ([]byte, error) {
    return json.Marshal(transactionJSON{
        ID:          t.ID,
        Description: t.Description,
        Amount:      number(t.Amount),
        Type:        t.Type,
        Category:    t.Category,
        Date:        t.Date.UTC().Format(isoLayout),
        Status:      t.Status,
        Recurrence:  t.Recurrence,
        CardID:      t.CardID,
        AccountID:   t.AccountID,
        FromAccount: t.FromAccount,
        ToAccount:   t.ToAccount,
        ToAccountID: t.ToAccountID,
    })
}

func (t *Transaction) UnmarshalJSON(b []byte) error {
    var raw transactionJSON
    if err := json.Unmarshal(b, &raw); err != nil {
        return err
    }
    amt, err := ParseAmount(raw.Amount.String())
    if err != nil {
        return err
    }
    date, err := ParseDate(raw.Date, nil)
    if err != nil {
        return fmt.Errorf("transaction %s: %w", raw.ID, err)
    }
    *t = Transaction{
        ID:          raw.ID,
        Description: raw.Description,
        Amount:      amt,
        Type:        raw.Type,
        Category:    raw.Category,
        Date:        date,
        Status:      raw.Status,
        Recurrence:  raw.Recurrence,
        CardID:      raw.CardID,
        AccountID:   raw.AccountID,
        FromAccount: raw.FromAccount,
        ToAccount:   raw.ToAccount,
        ToAccountID: raw.ToAccountID,
    }
    return nil
}

type goalJSON struct {
    ID            string      `json:"id"`
    Name          string      `json:"name"`
    TargetAmount  json.Number `json:"targetAmount"`
    CurrentAmount json.Number `json:"currentAmount"`
    Deadline      string      `json:"deadline"`
    Icon          string      `json:"icon"`
    Color         string      `json:"color"`
}

func (g Goal) MarshalJSON() ([]byte, error) {
    raw := goalJSON{
        ID:            g.ID,
        Name:          g.Name,
        TargetAmount:  number(g.TargetAmount),
        CurrentAmount: number(g.CurrentAmount),
        Icon:          g.Icon,
        Color:         g.Color,
    }
    if !g.Deadline.IsZero() {
        raw.Deadline = g.Deadline.Format(DateLayout)
    }
    return json.Marshal(raw)
}

func (g *Goal) UnmarshalJSON(b []byte) error {
    var raw goalJSON
    if err := json.Unmarshal(b, &raw); err != nil {
        return err
    }
    target, err := ParseAmount(raw.TargetAmount.String())
    if err != nil {
        return err
    }
    current, err := ParseAmount(raw.CurrentAmount.String())
    if err != nil {
        return err
    }
    var deadline time.Time
    if raw.Deadline != "" {
        if deadline, err = ParseDate(raw.Deadline, nil); err != nil {
            return fmt.Errorf("goal %s: %w", raw.ID, err)
        }
    }
    *g = Goal{ID: raw.ID, Name: raw.Name, TargetAmount: target, CurrentAmount: current, Deadline: deadline, Icon: raw.Icon, Color: raw.Color}
    return nil
}
