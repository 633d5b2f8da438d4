package finance

import (
	"context"
	"strings"
	"time"

	"github.com/govalues/decimal"

	"github.com/tinoosan/finboard/internal/ledger"
	"github.com/tinoosan/finboard/internal/storage"
)

// ContributionPrefix starts the description of goal contribution expenses.
const ContributionPrefix = "Aporte: "

// NewGoal is the input to AddGoal.
type NewGoal struct {
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      time.Time
	Icon          string
	Color         string
}

// GoalPatch carries goal fields to change. CurrentAmount moves only through
// AddValueToGoal.
type GoalPatch struct {
	Name         *string
	TargetAmount *decimal.Decimal
	Deadline     *time.Time
	Icon         *string
	Color        *string
}

func validateGoal(g ledger.Goal) error {
	if g.Name == "" {
		return invalid("name is required")
	}
	if !ledger.Positive(g.TargetAmount) {
		return invalid("target amount must be greater than zero")
	}
	if g.CurrentAmount.Sign() < 0 {
		return invalid("current amount must not be negative")
	}
	return nil
}

// AddGoal creates a savings goal.
func (s *Store) AddGoal(ctx context.Context, in NewGoal) (goal ledger.Goal, err error) {
	defer func() { s.observe(OpAddGoal, err) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	g := ledger.Goal{
		ID:            s.newID(),
		Name:          strings.TrimSpace(in.Name),
		TargetAmount:  in.TargetAmount,
		CurrentAmount: in.CurrentAmount,
		Deadline:      in.Deadline,
		Icon:          in.Icon,
		Color:         in.Color,
	}
	if err := validateGoal(g); err != nil {
		return ledger.Goal{}, err
	}
	s.goals = append(s.goals, g)
	s.persist(ctx, storage.KeyGoals)
	return g, nil
}

// EditGoal merges patch into the goal.
func (s *Store) EditGoal(ctx context.Context, id string, patch GoalPatch) (goal ledger.Goal, err error) {
	defer func() { s.observe(OpEditGoal, err) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.goalIndex(id)
	if i < 0 {
		return ledger.Goal{}, notFound("goal", id)
	}
	g := s.goals[i]
	if patch.Name != nil {
		g.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.TargetAmount != nil {
		g.TargetAmount = *patch.TargetAmount
	}
	if patch.Deadline != nil {
		g.Deadline = *patch.Deadline
	}
	if patch.Icon != nil {
		g.Icon = *patch.Icon
	}
	if patch.Color != nil {
		g.Color = *patch.Color
	}
	if err := validateGoal(g); err != nil {
		return ledger.Goal{}, err
	}
	s.goals[i] = g
	s.persist(ctx, storage.KeyGoals)
	return g, nil
}

// RemoveGoal deletes the goal. Contribution expenses already recorded stay.
func (s *Store) RemoveGoal(ctx context.Context, id string) (err error) {
	defer func() { s.observe(OpRemoveGoal, err) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.goalIndex(id)
	if i < 0 {
		return notFound("goal", id)
	}
	s.goals = append(s.goals[:i:i], s.goals[i+1:]...)
	s.persist(ctx, storage.KeyGoals)
	return nil
}

// AddValueToGoal increments the goal's current amount. With an accountID it
// also withdraws the amount from that account through a paid "Investimento"
// expense; without one it is a pure bookkeeping increment.
func (s *Store) AddValueToGoal(ctx context.Context, goalID string, amount decimal.Decimal, accountID string) (goal ledger.Goal, err error) {
	defer func() { s.observe(OpAddValueToGoal, err) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	if !ledger.Positive(amount) {
		return ledger.Goal{}, invalid("amount must be greater than zero")
	}
	gi := s.goalIndex(goalID)
	if gi < 0 {
		return ledger.Goal{}, notFound("goal", goalID)
	}
	if accountID != "" && s.accountIndex(accountID) < 0 {
		return ledger.Goal{}, notFound("account", accountID)
	}

	s.goals[gi].CurrentAmount = ledger.Add(s.goals[gi].CurrentAmount, amount)
	keys := []string{storage.KeyGoals}
	if accountID != "" {
		t := ledger.Transaction{
			ID:          s.newID(),
			Description: ContributionPrefix + s.goals[gi].Name,
			Amount:      amount,
			Type:        ledger.TypeExpense,
			Category:    ledger.CategoryInvestment,
			Date:        s.now(),
			Status:      ledger.StatusPaid,
			Recurrence:  ledger.RecurrenceVariable,
			AccountID:   accountID,
		}
		s.txs = append([]ledger.Transaction{t}, s.txs...)
		s.apply(s.effects(t))
		keys = append(keys, storage.KeyTransactions, storage.KeyAccounts)
	}
	s.persist(ctx, keys...)
	return s.goals[gi], nil
}
