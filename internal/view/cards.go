package view

import (
	"github.com/govalues/decimal"

	"github.com/tinoosan/finboard/internal/ledger"
)

// Invoice is the sum of pending expenses charged to cardID.
func Invoice(txs []ledger.Transaction, cardID string) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txs {
		if t.CardID == cardID && t.Type == ledger.TypeExpense && t.IsPending() {
			total = ledger.Add(total, t.Amount)
		}
	}
	return total
}

// CardSummary is a card with its derived invoice figures.
type CardSummary struct {
	Card      ledger.Card
	Invoice   decimal.Decimal
	Available decimal.Decimal
	// UsagePercent is zero for cards without a limit.
	UsagePercent decimal.Decimal
}

// Summarize derives card's invoice, available limit and usage.
func Summarize(txs []ledger.Transaction, card ledger.Card) CardSummary {
	inv := Invoice(txs, card.ID)
	return CardSummary{
		Card:         card,
		Invoice:      inv,
		Available:    ledger.Sub(card.Limit, inv),
		UsagePercent: ledger.Percent(inv, card.Limit),
	}
}

// CardSummaries summarizes every card in snap, in card order.
func CardSummaries(snap ledger.Snapshot) []CardSummary {
	out := make([]CardSummary, 0, len(snap.Cards))
	for _, c := range snap.Cards {
		out = append(out, Summarize(snap.Transactions, c))
	}
	return out
}

// CardStatement lists the pending expenses making up the card's invoice,
// newest first.
func CardStatement(txs []ledger.Transaction, cardID string) []ledger.Transaction {
	out := make([]ledger.Transaction, 0)
	for _, t := range txs {
		if t.CardID == cardID && t.Type == ledger.TypeExpense && t.IsPending() {
			out = append(out, t)
		}
	}
	SortNewestFirst(out)
	return out
}
