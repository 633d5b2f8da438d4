package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"

	"github.com/tinoosan/finboard/internal/service/prefs"
)

// DefaultWordWrap is the terminal width documents wrap at.
const DefaultWordWrap = 100

// Terminal renders Markdown for a terminal using the theme's style.
type Terminal struct {
	r *glamour.TermRenderer
}

// NewTerminal builds a renderer for theme. A non-positive width disables
// wrapping.
func NewTerminal(theme prefs.Theme, width int) (*Terminal, error) {
	style := "dark"
	if theme == prefs.ThemeLight {
		style = "light"
	}
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle(style)}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("terminal renderer: %w", err)
	}
	return &Terminal{r: r}, nil
}

// Print renders md and writes it to w.
func (t *Terminal) Print(w io.Writer, md string) error {
	out, err := t.r.Render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
