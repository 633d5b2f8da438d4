// Package prefs implements the preference store: value masking, theme,
// dashboard layout and the monthly budget limit. Each preference lives in its
// own slot, independent of the ledger collections.
package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/govalues/decimal"

	"github.com/tinoosan/finboard/internal/dictionary"
	"github.com/tinoosan/finboard/internal/errs"
	"github.com/tinoosan/finboard/internal/ledger"
	"github.com/tinoosan/finboard/internal/slug"
	"github.com/tinoosan/finboard/internal/storage"
)

// Theme is the UI color scheme.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// DefaultBudgetLimit is the monthly spending ceiling before the user sets one.
var DefaultBudgetLimit = decimal.MustNew(2000, 0)

// Preferences is the full preference state.
type Preferences struct {
	Visible     bool
	Theme       Theme
	Order       []string
	Hidden      []string
	BudgetLimit decimal.Decimal
}

// Defaults returns the preferences of a fresh profile.
func Defaults() Preferences {
	return Preferences{
		Visible:     true,
		Theme:       ThemeDark,
		Order:       dictionary.DefaultWidgetOrder(),
		Hidden:      []string{},
		BudgetLimit: DefaultBudgetLimit,
	}
}

// Service holds preferences in memory and saves each change best effort.
type Service struct {
	mu     sync.Mutex
	slots  storage.Slots
	logger *slog.Logger
	p      Preferences
}

// New constructs a service with default preferences. Call Load to read the slots.
func New(slots storage.Slots, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{slots: slots, logger: logger, p: Defaults()}
}

// Load reads every preference slot; absent or invalid values keep their default.
func (s *Service) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := Defaults()
	s.p.Visible = storage.Load(ctx, s.slots, storage.KeyVisibility, d.Visible, s.logger)
	if b, ok, err := s.slots.Load(ctx, storage.KeyTheme); err != nil {
		s.logger.WarnContext(ctx, "slot load failed", "key", storage.KeyTheme, "err", err)
	} else if t, valid := parseTheme(b); ok && valid {
		s.p.Theme = t
	}
	order := storage.Load(ctx, s.slots, storage.KeyDashboardOrder, d.Order, s.logger)
	hidden := storage.Load(ctx, s.slots, storage.KeyDashboardHidden, d.Hidden, s.logger)
	if o, h, err := normalizeLayout(order, hidden); err == nil {
		s.p.Order, s.p.Hidden = o, h
	} else {
		s.logger.WarnContext(ctx, "stored dashboard layout ignored", "err", err)
	}
	// the budget slot holds a bare JSON number
	raw := storage.Load(ctx, s.slots, storage.KeyBudgetLimit, json.Number("0"), s.logger)
	if v, err := ledger.ParseAmount(raw.String()); err == nil && ledger.Positive(v) {
		s.p.BudgetLimit = v
	}
}

// parseTheme reads a theme slot written either as a JSON string or as the
// bare word the browser app stored.
func parseTheme(b []byte) (Theme, bool) {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		v = string(b)
	}
	t := Theme(strings.TrimSpace(v))
	return t, t == ThemeDark || t == ThemeLight
}

// Get returns a copy of the current preferences.
func (s *Service) Get() Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

func (s *Service) copyLocked() Preferences {
	p := s.p
	p.Order = append([]string{}, s.p.Order...)
	p.Hidden = append([]string{}, s.p.Hidden...)
	return p
}

// ToggleVisibility flips value masking and returns the new state.
func (s *Service) ToggleVisibility(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p.Visible = !s.p.Visible
	storage.Save(ctx, s.slots, storage.KeyVisibility, s.p.Visible, s.logger)
	return s.p.Visible
}

// ToggleTheme switches between dark and light and returns the new theme.
func (s *Service) ToggleTheme(ctx context.Context) Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.p.Theme == ThemeDark {
		s.p.Theme = ThemeLight
	} else {
		s.p.Theme = ThemeDark
	}
	storage.Save(ctx, s.slots, storage.KeyTheme, s.p.Theme, s.logger)
	return s.p.Theme
}

// SetLayout stores the widget order and hidden set. Ids must be known widget
// slugs; widgets missing from order are appended in default order.
func (s *Service) SetLayout(ctx context.Context, order, hidden []string) (Preferences, error) {
	o, h, err := normalizeLayout(order, hidden)
	if err != nil {
		return Preferences{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p.Order, s.p.Hidden = o, h
	storage.Save(ctx, s.slots, storage.KeyDashboardOrder, o, s.logger)
	storage.Save(ctx, s.slots, storage.KeyDashboardHidden, h, s.logger)
	return s.copyLocked(), nil
}

// SetBudgetLimit stores the monthly budget limit; it must be positive.
func (s *Service) SetBudgetLimit(ctx context.Context, limit decimal.Decimal) (Preferences, error) {
	if !ledger.Positive(limit) {
		return Preferences{}, fmt.Errorf("%w: budget limit must be greater than zero", errs.ErrInvalid)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p.BudgetLimit = limit
	storage.Save(ctx, s.slots, storage.KeyBudgetLimit, json.Number(limit.String()), s.logger)
	return s.copyLocked(), nil
}

// Reset restores defaults in memory. The slots themselves are cleared by the
// ledger reset.
func (s *Service) Reset() {
	s.mu.Lock()
	s.p = Defaults()
	s.mu.Unlock()
}

func normalizeLayout(order, hidden []string) ([]string, []string, error) {
	seen := map[string]bool{}
	o := make([]string, 0, len(dictionary.Widgets))
	for _, id := range order {
		id = strings.TrimSpace(id)
		if !slug.IsSlug(id) || !dictionary.IsWidget(id) {
			return nil, nil, fmt.Errorf("%w: unknown widget %q", errs.ErrInvalid, id)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		o = append(o, id)
	}
	for _, id := range dictionary.DefaultWidgetOrder() {
		if !seen[id] {
			o = append(o, id)
		}
	}
	h := make([]string, 0, len(hidden))
	hiddenSeen := map[string]bool{}
	for _, id := range hidden {
		id = strings.TrimSpace(id)
		if !slug.IsSlug(id) || !dictionary.IsWidget(id) {
			return nil, nil, fmt.Errorf("%w: unknown widget %q", errs.ErrInvalid, id)
		}
		if !hiddenSeen[id] {
			hiddenSeen[id] = true
			h = append(h, id)
		}
	}
	return o, h, nil
}
