package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type themeCmd struct{ env *Env }

func (*themeCmd) Name() string           { return "theme" }
func (*themeCmd) Synopsis() string       { return "switch between the dark and light theme" }
func (*themeCmd) Usage() string          { return "financectl theme\n" }
func (*themeCmd) SetFlags(*flag.FlagSet) {}

func (c *themeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Fprintf(c.env.Out, "theme: %s\n", c.env.Prefs.ToggleTheme(ctx))
	return subcommands.ExitSuccess
}

type maskCmd struct{ env *Env }

func (*maskCmd) Name() string     { return "mask" }
func (*maskCmd) Synopsis() string { return "hide or show monetary values" }
func (*maskCmd) Usage() string {
	return `financectl mask

  Toggles value visibility. Hidden values print as a mask in every view.
`
}
func (*maskCmd) SetFlags(*flag.FlagSet) {}

func (c *maskCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.env.Prefs.ToggleVisibility(ctx) {
		fmt.Fprintln(c.env.Out, "values visible")
	} else {
		fmt.Fprintln(c.env.Out, "values hidden")
	}
	return subcommands.ExitSuccess
}
