package v1

import (
    "net/http"

    chi "github.com/go-chi/chi/v5"

    "github.com/tinoosan/finboard/internal/service/finance"
    "github.com/tinoosan/finboard/internal/view"
)

// GET /v1/accounts
func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
    accounts := s.ledger.Snapshot().Accounts
    items := make([]accountResponse, 0, len(accounts))
    for _, a := range accounts { items = append(items, toAccountResponse(a)) }
    toJSON(w, http.StatusOK, listAccountsResponse{Items: items, Total: amount(view.TotalBalance(accounts))})
}

// POST /v1/accounts
func (s *Server) postAccount(w http.ResponseWriter, r *http.Request) {
    var req postAccountRequest
    if !decodeJSON(w, r, &req) { return }
    bal, err := parseAmount(req.Balance)
    if err != nil { writeDomainErr(w, err); return }
    acc, err := s.ledger.AddAccount(r.Context(), finance.NewAccount{Name: req.Name, Balance: bal, Type: req.Type})
    if err != nil { writeDomainErr(w, err); return }
    toJSON(w, http.StatusCreated, toAccountResponse(acc))
}

// GET /v1/accounts/{id}
func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
    acc, err := s.ledger.Account(chi.URLParam(r, "id"))
    if err != nil { writeDomainErr(w, err); return }
    toJSON(w, http.StatusOK, toAccountResponse(acc))
}

// PATCH /v1/accounts/{id}
// Only name and type change; balances move through transactions.
func (s *Server) patchAccount(w http.ResponseWriter, r *http.Request) {
    var req patchAccountRequest
    if !decodeJSON(w, r, &req) { return }
    acc, err := s.ledger.EditAccount(r.Context(), chi.URLParam(r, "id"), finance.AccountPatch{Name: req.Name, Type: req.Type})
    if err != nil { writeDomainErr(w, err); return }
    toJSON(w, http.StatusOK, toAccountResponse(acc))
}

// DELETE /v1/accounts/{id}
// Linked transactions are kept and keep pointing at the removed id.
func (s *Server) deleteAccount(w http.ResponseWriter, r *http.Request) {
    if err := s.ledger.RemoveAccount(r.Context(), chi.URLParam(r, "id")); err != nil {
        writeDomainErr(w, err)
        return
    }
    w.WriteHeader(http.StatusNoContent)
}
