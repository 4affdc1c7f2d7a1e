package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/google/uuid"
	"github.com/ledgerline/bookstmt/logger"
	"github.com/ledgerline/bookstmt/renderer"
)

// runCmd holds the flags for the 'run' subcommand.
type runCmd struct {
	date string
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "reconcile the trade book and write one statement per fund" }
func (*runCmd) Usage() string {
	return `stmt run [-d <date>]

  Resolves the valuation feed for the as-of date, merges it onto the trade
  book, computes amortized P&L and bid/offer, and writes one statement
  document per fund into the output directory. A failure on one fund does
  not stop the remaining funds; partial runs exit with a failure status.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "As-of date for the run (defaults to today)")
}

func (c *runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log := logger.New().With().Str("run", uuid.NewString()).Logger()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	asOf, err := parseAsOf(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	log.Info().Stringer("asOf", asOf).Msg("starting reconciliation run")

	groups, err := reconcile(cfg, asOf, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	tpl, err := renderer.LoadTemplate(cfg.TemplatePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := renderer.WriteStatements(groups, tpl, cfg, log); err != nil {
		fmt.Fprintf(os.Stderr, "Error: some statements were not written:\n%v\n", err)
		return subcommands.ExitFailure
	}
	log.Info().Int("funds", len(groups)).Msg("run complete")
	return subcommands.ExitSuccess
}
