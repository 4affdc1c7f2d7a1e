package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/ledgerline/bookstmt"
)

// locateCmd holds the flags for the 'locate' subcommand.
type locateCmd struct {
	date string
}

func (*locateCmd) Name() string     { return "locate" }
func (*locateCmd) Synopsis() string { return "resolve the valuation feed file for an as-of date" }
func (*locateCmd) Usage() string {
	return `stmt locate [-d <date>]

  Prints the path of the valuation feed for the as-of date, copying it
  from the secondary location into the primary one when needed.
`
}

func (c *locateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "As-of date (defaults to today)")
}

func (c *locateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	path, err := bookstmt.LocateFeed(cfg, asOf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(path)
	return subcommands.ExitSuccess
}
