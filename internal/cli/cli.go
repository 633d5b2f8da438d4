// Package cli implements the financectl subcommands. Each command reads or
// mutates the ledger through the same finance and prefs services the HTTP
// API uses and prints Markdown, styled for the terminal unless Raw is set.
package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/google/subcommands"

	"github.com/tinoosan/finboard/internal/errs"
	"github.com/tinoosan/finboard/internal/ledger"
	"github.com/tinoosan/finboard/internal/render"
	"github.com/tinoosan/finboard/internal/service/finance"
	"github.com/tinoosan/finboard/internal/service/prefs"
)

// Env is what every command runs against.
type Env struct {
	Ledger   *finance.Store
	Prefs    *prefs.Service
	Currency string
	Location *time.Location
	Now      func() time.Time
	Out      io.Writer
	Err      io.Writer
	// Raw prints plain Markdown instead of terminal-styled output.
	Raw   bool
	Width int
}

// Register adds every command to c.
func Register(c *subcommands.Commander, env *Env) {
	c.Register(&summaryCmd{env: env}, "views")
	c.Register(&billsCmd{env: env}, "views")
	c.Register(&reportCmd{env: env}, "views")
	c.Register(&cardCmd{env: env}, "views")
	c.Register(&txCmd{env: env}, "views")

	c.Register(&addCmd{env: env}, "transactions")
	c.Register(&payCmd{env: env}, "transactions")
	c.Register(&transferCmd{env: env}, "transactions")
	c.Register(&accountCmd{env: env}, "transactions")

	c.Register(&exportCmd{env: env}, "data")
	c.Register(&importCmd{env: env}, "data")

	c.Register(&themeCmd{env: env}, "preferences")
	c.Register(&maskCmd{env: env}, "preferences")
}

func (e *Env) now() time.Time {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	if e.Location == nil {
		return now()
	}
	return now().In(e.Location)
}

func (e *Env) loc() *time.Location {
	if e.Location == nil {
		return time.Local
	}
	return e.Location
}

func (e *Env) formatter() (render.Formatter, error) {
	return render.NewFormatter(e.Currency, e.Prefs.Get().Visible)
}

// print writes md to Out, through glamour unless Raw.
func (e *Env) print(md string) subcommands.ExitStatus {
	if e.Raw {
		fmt.Fprint(e.Out, md)
		return subcommands.ExitSuccess
	}
	width := e.Width
	if width == 0 {
		width = render.DefaultWordWrap
	}
	term, err := render.NewTerminal(e.Prefs.Get().Theme, width)
	if err != nil {
		return e.fail(err)
	}
	if err := term.Print(e.Out, md); err != nil {
		return e.fail(err)
	}
	return subcommands.ExitSuccess
}

func (e *Env) fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(e.Err, "Error:", err)
	return subcommands.ExitFailure
}

func (e *Env) usage(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(e.Err, "Error: "+format+"\n", args...)
	return subcommands.ExitUsageError
}

// parseDate reads an optional YYYY-MM-DD flag; empty means the zero time.
func (e *Env) parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return ledger.ParseDate(s, e.loc())
}

// parseMonth reads an optional YYYY-MM flag; empty means the current month.
func (e *Env) parseMonth(s string) (time.Time, error) {
	if s == "" {
		return e.now(), nil
	}
	t, err := time.ParseInLocation("2006-01", s, e.loc())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: month %q, want YYYY-MM", errs.ErrInvalid, s)
	}
	return t, nil
}

// positional returns the single positional argument of f.
func positional(args []string, what string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("expected exactly one %s", what)
	}
	return args[0], nil
}

