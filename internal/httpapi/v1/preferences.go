package v1

import (
    "net/http"

    "github.com/tinoosan/finboard/internal/service/prefs"
)

func toPreferencesResponse(p prefs.Preferences) preferencesResponse {
    return preferencesResponse{
        Visible:     p.Visible,
        Theme:       string(p.Theme),
        Order:       p.Order,
        Hidden:      p.Hidden,
        BudgetLimit: amount(p.BudgetLimit),
    }
}

// GET /v1/preferences
func (s *Server) getPreferences(w http.ResponseWriter, r *http.Request) {
    toJSON(w, http.StatusOK, toPreferencesResponse(s.prefs.Get()))
}

// POST /v1/preferences/visibility/toggle
func (s *Server) toggleVisibility(w http.ResponseWriter, r *http.Request) {
    s.prefs.ToggleVisibility(r.Context())
    toJSON(w, http.StatusOK, toPreferencesResponse(s.prefs.Get()))
}

// POST /v1/preferences/theme/toggle
func (s *Server) toggleTheme(w http.ResponseWriter, r *http.Request) {
    s.prefs.ToggleTheme(r.Context())
    toJSON(w, http.StatusOK, toPreferencesResponse(s.prefs.Get()))
}

// PUT /v1/preferences/layout
func (s *Server) putLayout(w http.ResponseWriter, r *http.Request) {
    var req layoutRequest
    if !decodeJSON(w, r, &req) { return }
    p, err := s.prefs.SetLayout(r.Context(), req.Order, req.Hidden)
    if err != nil { writeDomainErr(w, err); return }
    toJSON(w, http.StatusOK, toPreferencesResponse(p))
}

// PUT /v1/preferences/budget
func (s *Server) putBudget(w http.ResponseWriter, r *http.Request) {
    var req budgetRequest
    if !decodeJSON(w, r, &req) { return }
    limit, err := parseAmount(req.Limit)
    if err != nil { writeDomainErr(w, err); return }
    p, err := s.prefs.SetBudgetLimit(r.Context(), limit)
    if err != nil { writeDomainErr(w, err); return }
    toJSON(w, http.StatusOK, toPreferencesResponse(p))
}
