package v1

import (
    "net/http"

    chi "github.com/go-chi/chi/v5"

    "github.com/tinoosan/finboard/internal/service/finance"
    "github.com/tinoosan/finboard/internal/view"
)

// GET /v1/transactions?period=&from=&to=&q=&type=&category=&current_month=&exclude_cards=
func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
    q, _ := r.Context().Value(ctxKeyListTransactions).(listTransactionsQuery)
    now := s.clock()
    txs := view.Filter(s.ledger.Snapshot().Transactions, q.Filter, now)
    txs = view.Find(txs, q.Query, now)
    toJSON(w, http.StatusOK, listTransactionsResponse{Items: toTransactionsResponse(txs), Total: len(txs)})
}

// POST /v1/transactions
func (s *Server) postTransaction(w http.ResponseWriter, r *http.Request) {
    in, ok := r.Context().Value(ctxKeyPostTransaction).(finance.NewTransaction)
    if !ok {
        badRequest(w, "missing validated transaction")
        return
    }
    tx, err := s.ledger.AddTransaction(r.Context(), in)
    if err != nil { writeDomainErr(w, err); return }
    toJSON(w, http.StatusCreated, toTransactionResponse(tx))
}

// GET /v1/transactions/{id}
func (s *Server) getTransaction(w http.ResponseWriter, r *http.Request) {
    tx, err := s.ledger.Transaction(chi.URLParam(r, "id"))
    if err != nil { writeDomainErr(w, err); return }
    toJSON(w, http.StatusOK, toTransactionResponse(tx))
}

// PATCH /v1/transactions/{id}
func (s *Server) patchTransaction(w http.ResponseWriter, r *http.Request) {
    var req patchTransactionRequest
    if !decodeJSON(w, r, &req) { return }
    patch := finance.TransactionPatch{
        Description: req.Description,
        Type:        req.Type,
        Category:    req.Category,
        Status:      req.Status,
        Recurrence:  req.Recurrence,
        CardID:      req.CardID,
        AccountID:   req.AccountID,
    }
    var err error
    if patch.Amount, err = parseOptionalAmount(req.Amount); err != nil { writeDomainErr(w, err); return }
    if req.Date != nil {
        d, err := s.parseDate(*req.Date)
        if err != nil { writeDomainErr(w, err); return }
        patch.Date = &d
    }
    tx, err := s.ledger.EditTransaction(r.Context(), chi.URLParam(r, "id"), patch)
    if err != nil { writeDomainErr(w, err); return }
    toJSON(w, http.StatusOK, toTransactionResponse(tx))
}

// DELETE /v1/transactions/{id}
func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request) {
    if err := s.ledger.DeleteTransaction(r.Context(), chi.URLParam(r, "id")); err != nil {
        writeDomainErr(w, err)
        return
    }
    w.WriteHeader(http.StatusNoContent)
}

// POST /v1/transactions/{id}/pay
func (s *Server) payTransaction(w http.ResponseWriter, r *http.Request) {
    tx, err := s.ledger.PayTransaction(r.Context(), chi.URLParam(r, "id"))
    if err != nil { writeDomainErr(w, err); return }
    toJSON(w, http.StatusOK, toTransactionResponse(tx))
}

// POST /v1/transfers
func (s *Server) postTransfer(w http.ResponseWriter, r *http.Request) {
    var req postTransferRequest
    if !decodeJSON(w, r, &req) { return }
    amt, err := parseAmount(req.Amount)
    if err != nil { writeDomainErr(w, err); return }
    date, err := s.parseDate(req.Date)
    if err != nil { writeDomainErr(w, err); return }
    tx, err := s.ledger.AddTransfer(r.Context(), req.FromAccountID, req.ToAccountID, amt, date)
    if err != nil { writeDomainErr(w, err); return }
    toJSON(w, http.StatusCreated, toTransactionResponse(tx))
}
