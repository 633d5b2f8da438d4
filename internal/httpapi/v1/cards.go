package v1

import (
    "net/http"

    chi "github.com/go-chi/chi/v5"

    "github.com/tinoosan/finboard/internal/service/finance"
    "github.com/tinoosan/finboard/internal/view"
)

// GET /v1/cards
func (s *Server) listCards(w http.ResponseWriter, r *http.Request) {
    sums := view.CardSummaries(s.ledger.Snapshot())
    items := make([]cardResponse, 0, len(sums))
    for _, c := range sums { items = append(items, toCardResponse(c)) }
    toJSON(w, http.StatusOK, map[string]any{"items": items})
}

// POST /v1/cards
func (s *Server) postCard(w http.ResponseWriter, r *http.Request) {
    var req postCardRequest
    if !decodeJSON(w, r, &req) { return }
    limit, err := parseAmount(req.Limit)
    if err != nil { writeDomainErr(w, err); return }
    card, err := s.ledger.AddCard(r.Context(), finance.NewCard{Name: req.Name, Limit: limit, ClosingDay: req.ClosingDay, DueDay: req.DueDay})
    if err != nil { writeDomainErr(w, err); return }
    toJSON(w, http.StatusCreated, toCardResponse(view.Summarize(s.ledger.Snapshot().Transactions, card)))
}

// GET /v1/cards/{id}
func (s *Server) getCard(w http.ResponseWriter, r *http.Request) {
    card, err := s.ledger.Card(chi.URLParam(r, "id"))
    if err != nil { writeDomainErr(w, err); return }
    toJSON(w, http.StatusOK, toCardResponse(view.Summarize(s.ledger.Snapshot().Transactions, card)))
}

// PATCH /v1/cards/{id}
func (s *Server) patchCard(w http.ResponseWriter, r *http.Request) {
    var req patchCardRequest
    if !decodeJSON(w, r, &req) { return }
    patch := finance.CardPatch{Name: req.Name, ClosingDay: req.ClosingDay, DueDay: req.DueDay}
    var err error
    if patch.Limit, err = parseOptionalAmount(req.Limit); err != nil { writeDomainErr(w, err); return }
    card, err := s.ledger.EditCard(r.Context(), chi.URLParam(r, "id"), patch)
    if err != nil { writeDomainErr(w, err); return }
    toJSON(w, http.StatusOK, toCardResponse(view.Summarize(s.ledger.Snapshot().Transactions, card)))
}

// DELETE /v1/cards/{id}
func (s *Server) deleteCard(w http.ResponseWriter, r *http.Request) {
    if err := s.ledger.RemoveCard(r.Context(), chi.URLParam(r, "id")); err != nil {
        writeDomainErr(w, err)
        return
    }
    w.WriteHeader(http.StatusNoContent)
}

// GET /v1/cards/{id}/statement
func (s *Server) cardStatement(w http.ResponseWriter, r *http.Request) {
    card, err := s.ledger.Card(chi.URLParam(r, "id"))
    if err != nil { writeDomainErr(w, err); return }
    txs := s.ledger.Snapshot().Transactions
    toJSON(w, http.StatusOK, cardStatementResponse{
        Card:  toCardResponse(view.Summarize(txs, card)),
        Items: toTransactionsResponse(view.CardStatement(txs, card.ID)),
    })
}

// POST /v1/cards/{id}/pay-invoice
func (s *Server) payInvoice(w http.ResponseWriter, r *http.Request) {
    var req payInvoiceRequest
    if !decodeJSON(w, r, &req) { return }
    amt, err := parseAmount(req.Amount)
    if err != nil { writeDomainErr(w, err); return }
    date, err := s.parseDate(req.Date)
    if err != nil { writeDomainErr(w, err); return }
    tx, err := s.ledger.PayCardInvoice(r.Context(), chi.URLParam(r, "id"), req.AccountID, amt, date)
    if err != nil { writeDomainErr(w, err); return }
    toJSON(w, http.StatusCreated, toTransactionResponse(tx))
}
