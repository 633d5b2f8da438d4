package v1

import (
    "net/http"

    chi "github.com/go-chi/chi/v5"

    "github.com/tinoosan/finboard/internal/ledger"
    "github.com/tinoosan/finboard/internal/service/finance"
    "github.com/tinoosan/finboard/internal/view"
)

func goalResponseOf(g ledger.Goal) goalResponse {
    return toGoalResponse(view.GoalsProgress([]ledger.Goal{g}).Items[0])
}

func toGoalsResponse(g view.Goals) goalsResponse {
    items := make([]goalResponse, 0, len(g.Items))
    for _, p := range g.Items { items = append(items, toGoalResponse(p)) }
    return goalsResponse{Items: items, Saved: amount(g.Saved), Target: amount(g.Target), Percent: amount(g.Percent)}
}

// GET /v1/goals
func (s *Server) listGoals(w http.ResponseWriter, r *http.Request) {
    toJSON(w, http.StatusOK, toGoalsResponse(view.GoalsProgress(s.ledger.Snapshot().Goals)))
}

// POST /v1/goals
func (s *Server) postGoal(w http.ResponseWriter, r *http.Request) {
    var req postGoalRequest
    if !decodeJSON(w, r, &req) { return }
    target, err := parseAmount(req.TargetAmount)
    if err != nil { writeDomainErr(w, err); return }
    current, err := parseAmount(req.CurrentAmount)
    if err != nil { writeDomainErr(w, err); return }
    deadline, err := s.parseDate(req.Deadline)
    if err != nil { writeDomainErr(w, err); return }
    g, err := s.ledger.AddGoal(r.Context(), finance.NewGoal{
        Name:          req.Name,
        TargetAmount:  target,
        CurrentAmount: current,
        Deadline:      deadline,
        Icon:          req.Icon,
        Color:         req.Color,
    })
    if err != nil { writeDomainErr(w, err); return }
    toJSON(w, http.StatusCreated, goalResponseOf(g))
}

// PATCH /v1/goals/{id}
func (s *Server) patchGoal(w http.ResponseWriter, r *http.Request) {
    var req patchGoalRequest
    if !decodeJSON(w, r, &req) { return }
    patch := finance.GoalPatch{Name: req.Name, Icon: req.Icon, Color: req.Color}
    var err error
    if patch.TargetAmount, err = parseOptionalAmount(req.TargetAmount); err != nil { writeDomainErr(w, err); return }
    if req.Deadline != nil {
        d, err := s.parseDate(*req.Deadline)
        if err != nil { writeDomainErr(w, err); return }
        patch.Deadline = &d
    }
    g, err := s.ledger.EditGoal(r.Context(), chi.URLParam(r, "id"), patch)
    if err != nil { writeDomainErr(w, err); return }
    toJSON(w, http.StatusOK, goalResponseOf(g))
}

// DELETE /v1/goals/{id}
func (s *Server) deleteGoal(w http.ResponseWriter, r *http.Request) {
    if err := s.ledger.RemoveGoal(r.Context(), chi.URLParam(r, "id")); err != nil {
        writeDomainErr(w, err)
        return
    }
    w.WriteHeader(http.StatusNoContent)
}

// POST /v1/goals/{id}/contributions
// With account_id the contribution is also booked as a paid investment
// expense on that account.
func (s *Server) postContribution(w http.ResponseWriter, r *http.Request) {
    var req contributionRequest
    if !decodeJSON(w, r, &req) { return }
    amt, err := parseAmount(req.Amount)
    if err != nil { writeDomainErr(w, err); return }
    g, err := s.ledger.AddValueToGoal(r.Context(), chi.URLParam(r, "id"), amt, req.AccountID)
    if err != nil { writeDomainErr(w, err); return }
    toJSON(w, http.StatusOK, goalResponseOf(g))
}
