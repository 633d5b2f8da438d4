package cli

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"

	"github.com/google/subcommands"

	"github.com/tinoosan/finboard/internal/backup"
)

type exportCmd struct {
	env *Env
	to  string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the ledger to a backup document" }
func (*exportCmd) Usage() string {
	return `financectl export [-to <dir | gs://bucket/prefix>]

  Writes backup_finance_YYYY-MM-DD.json. Without -to the document is printed.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.to, "to", "", "Directory or gs:// location to write the backup to.")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b := c.env.Ledger.Export()
	if c.to == "" {
		data, err := backup.Encode(b)
		if err != nil {
			return c.env.fail(err)
		}
		fmt.Fprintln(c.env.Out, string(data))
		return subcommands.ExitSuccess
	}
	sink, err := backup.Open(ctx, c.to)
	if err != nil {
		return c.env.fail(err)
	}
	if cl, ok := sink.(interface{ Close() error }); ok {
		defer cl.Close()
	}
	where, err := backup.Save(ctx, sink, b)
	if err != nil {
		return c.env.fail(err)
	}
	fmt.Fprintf(c.env.Out, "backup written to %s\n", where)
	return subcommands.ExitSuccess
}

type importCmd struct {
	env *Env
	gcs string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "merge a backup document into the ledger" }
func (*importCmd) Usage() string {
	return `financectl import <file>
financectl import -gcs gs://bucket/prefix <name>

  Adds the records of a backup whose ids are not in the ledger yet.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.gcs, "gcs", "", "Read the named backup from this gs:// location.")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name, err := positional(f.Args(), "backup file")
	if err != nil {
		return c.env.usage("%v", err)
	}
	location := c.gcs
	if location == "" {
		location = filepath.Dir(name)
		name = filepath.Base(name)
	}
	sink, err := backup.Open(ctx, location)
	if err != nil {
		return c.env.fail(err)
	}
	if cl, ok := sink.(interface{ Close() error }); ok {
		defer cl.Close()
	}
	b, err := backup.Load(ctx, sink, name)
	if err != nil {
		return c.env.fail(err)
	}
	res, err := c.env.Ledger.Import(ctx, b)
	if err != nil {
		return c.env.fail(err)
	}
	fmt.Fprintf(c.env.Out, "imported %d transactions, %d accounts, %d cards, %d goals (%d skipped)\n",
		res.Transactions, res.Accounts, res.Cards, res.Goals, res.Skipped)
	return subcommands.ExitSuccess
}

