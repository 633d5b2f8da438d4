package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/google/subcommands"

	"github.com/tinoosan/finboard/internal/bootstrap"
	"github.com/tinoosan/finboard/internal/cli"
	"github.com/tinoosan/finboard/internal/config"
)

var raw = flag.Bool("raw", false, "Print plain Markdown instead of styled output.")

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(int(subcommands.ExitFailure))
	}
	// the CLI is short-lived; keep data on disk unless a database is configured
	if cfg.Storage.Backend == config.StorageMemory {
		cfg.Storage.Backend = config.StorageFile
	}
	logger := cfg.Log.NewLogger(os.Stderr)

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	env := &cli.Env{Currency: cfg.Ledger.Currency, Location: cfg.Ledger.Location, Out: os.Stdout, Err: os.Stderr}
	cli.Register(commander, env)
	flag.Parse()
	env.Raw = *raw

	backend, err := bootstrap.OpenBackend(ctx, cfg.Storage, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(int(subcommands.ExitFailure))
	}
	svc, err := bootstrap.Load(ctx, backend.Slots, cfg.Ledger, logger)
	if err != nil {
		backend.Close()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(int(subcommands.ExitFailure))
	}
	env.Ledger, env.Prefs = svc.Ledger, svc.Prefs

	status := commander.Execute(ctx)
	backend.Close()
	os.Exit(int(status))
}
