package finance

import (
	"context"
	"strings"

	"github.com/govalues/decimal"

	"github.com/tinoosan/finboard/internal/ledger"
	"github.com/tinoosan/finboard/internal/storage"
)

// NewCard is the input to AddCard.
type NewCard struct {
	Name       string
	Limit      decimal.Decimal
	ClosingDay int
	DueDay     int
}

// CardPatch carries the card fields to change.
type CardPatch struct {
	Name       *string
	Limit      *decimal.Decimal
	ClosingDay *int
	DueDay     *int
}

func validateCard(c ledger.Card) error {
	if c.Name == "" {
		return invalid("name is required")
	}
	if c.Limit.Sign() < 0 {
		return invalid("limit must not be negative")
	}
	if c.ClosingDay < 1 || c.ClosingDay > 31 {
		return invalid("closing day must be between 1 and 31")
	}
	if c.DueDay < 1 || c.DueDay > 31 {
		return invalid("due day must be between 1 and 31")
	}
	return nil
}

// AddCard creates a card.
func (s *Store) AddCard(ctx context.Context, in NewCard) (card ledger.Card, err error) {
	defer func() { s.observe(OpAddCard, err) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	c := ledger.Card{ID: s.newID(), Name: strings.TrimSpace(in.Name), Limit: in.Limit, ClosingDay: in.ClosingDay, DueDay: in.DueDay}
	if err := validateCard(c); err != nil {
		return ledger.Card{}, err
	}
	s.cards = append(s.cards, c)
	s.persist(ctx, storage.KeyCards)
	return c, nil
}

// EditCard merges patch into the card.
func (s *Store) EditCard(ctx context.Context, id string, patch CardPatch) (card ledger.Card, err error) {
	defer func() { s.observe(OpEditCard, err) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.cardIndex(id)
	if i < 0 {
		return ledger.Card{}, notFound("card", id)
	}
	c := s.cards[i]
	if patch.Name != nil {
		c.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Limit != nil {
		c.Limit = *patch.Limit
	}
	if patch.ClosingDay != nil {
		c.ClosingDay = *patch.ClosingDay
	}
	if patch.DueDay != nil {
		c.DueDay = *patch.DueDay
	}
	if err := validateCard(c); err != nil {
		return ledger.Card{}, err
	}
	s.cards[i] = c
	s.persist(ctx, storage.KeyCards)
	return c, nil
}

// RemoveCard deletes the card. Its transactions are left untouched.
func (s *Store) RemoveCard(ctx context.Context, id string) (err error) {
	defer func() { s.observe(OpRemoveCard, err) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.cardIndex(id)
	if i < 0 {
		return notFound("card", id)
	}
	s.cards = append(s.cards[:i:i], s.cards[i+1:]...)
	s.persist(ctx, storage.KeyCards)
	return nil
}
