package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/ledgerline/bookstmt/logger"
	"github.com/ledgerline/bookstmt/renderer"
)

// previewCmd holds the flags for the 'preview' subcommand.
type previewCmd struct {
	date string
	fund string
}

func (*previewCmd) Name() string     { return "preview" }
func (*previewCmd) Synopsis() string { return "display one fund's statement in the terminal" }
func (*previewCmd) Usage() string {
	return `stmt preview -fund <fund> [-d <date>]

  Runs the reconciliation in memory and renders the selected fund's
  statement as a table in the terminal. Nothing is written to disk.
`
}

func (c *previewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "As-of date for the preview (defaults to today)")
	f.StringVar(&c.fund, "fund", "", "Fund identifier to preview")
}

func (c *previewCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.fund == "" {
		fmt.Fprintln(os.Stderr, "Error: -fund is required")
		return subcommands.ExitUsageError
	}
	log := logger.New()

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

	for _, g := range groups {
		if g.Fund == c.fund {
			printMarkdown(renderer.StatementMarkdown(g, tpl, cfg))
			return subcommands.ExitSuccess
		}
	}
	fmt.Fprintf(os.Stderr, "Error: no trades for fund %q on %s\n", c.fund, asOf)
	return subcommands.ExitFailure
}
