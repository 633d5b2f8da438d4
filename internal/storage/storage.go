// Package storage defines the slot-based persistence surface the ledger and
// preferences are saved through, and tolerant typed helpers on top of it.
package storage

import (
    "context"
    "encoding/json"
    "log/slog"
)

// Slot keys. They match the names the browser dashboard used in local storage
// so an exported profile directory can be read back unchanged.
const (
    KeyTransactions    = "finance_transactions"
    KeyAccounts        = "finance_accounts"
    KeyCards           = "finance_cards"
    KeyGoals           = "finance_goals"
    KeyVisibility      = "finance_visibility"
    KeyTheme           = "finance_theme"
    KeyDashboardOrder  = "finance_dashboard_order"
    KeyDashboardHidden = "finance_dashboard_hidden"
    KeyBudgetLimit     = "finance_budget_limit"
)

// Keys returns every slot key in a stable order.
func Keys() []string {
    return []string{
        KeyTransactions, KeyAccounts, KeyCards, KeyGoals,
        KeyVisibility, KeyTheme, KeyDashboardOrder, KeyDashboardHidden, KeyBudgetLimit,
    }
}

// Slots is a durable key-value store holding one JSON document per key.
// Load reports ok=false for a key that was never saved.
type Slots interface {
    Load(ctx context.Context, key string) (value []byte, ok bool, err error)
    Save(ctx context.Context, key string, value []byte) error
    Clear(ctx context.Context) error
}

// Load decodes the slot at key into a T. An absent slot, a read failure or a
// corrupt document all yield def; failures are logged and never returned.
func Load[T any](ctx context.Context, s Slots, key string, def T, logger *slog.Logger) T {
    if logger == nil { logger = slog.Default() }
    b, ok, err := s.Load(ctx, key)
    if err != nil {
        logger.WarnContext(ctx, "slot load failed", "key", key, "err", err)
        return def
    }
    if !ok || len(b) == 0 { return def }
    var v T
    if err := json.Unmarshal(b, &v); err != nil {
        logger.WarnContext(ctx, "slot corrupt; using default", "key", key, "err", err)
        return def
    }
    return v
}

// Save encodes v and writes it to key. Persistence is best effort: errors are
// logged and swallowed so the in-memory state stays authoritative.
func Save(ctx context.Context, s Slots, key string, v any, logger *slog.Logger) {
    if logger == nil { logger = slog.Default() }
    b, err := json.Marshal(v)
    if err != nil {
        logger.ErrorContext(ctx, "slot encode failed", "key", key, "err", err)
        return
    }
    if err := s.Save(ctx, key, b); err != nil {
        logger.ErrorContext(ctx, "slot save failed", "key", key, "err", err)
    }
}
