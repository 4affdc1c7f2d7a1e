// Package cmd implements the CLI application that reconciles the trade
// book and generates statements.
package cmd

import (
	"flag"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/ledgerline/bookstmt"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package calls Register() and then Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&runCmd{}, "pipeline")
	c.Register(&previewCmd{}, "pipeline")
	c.Register(&locateCmd{}, "pipeline")

	c.Register(&addCmd{}, "trade book")
	c.Register(&listCmd{}, "trade book")
}

// as a CLI application with a short lived lifecycle, a global flag for the
// config file location is acceptable; the parsed Config itself is passed
// around explicitly.
var configFile = flag.String("config", "stmt.yaml", "Path to the configuration file")

func loadConfig() (bookstmt.Config, error) {
	return bookstmt.LoadConfig(*configFile)
}

// parseAsOf returns the operator-selected as-of date, defaulting to today.
func parseAsOf(s string) (bookstmt.Date, error) {
	if s == "" {
		return bookstmt.Today(), nil
	}
	return bookstmt.ParseDate(s)
}

// reconcile runs the in-memory part of the pipeline for one as-of date:
// locate the feed, load the book, merge, amortize, and group by fund.
func reconcile(cfg bookstmt.Config, asOf bookstmt.Date, log zerolog.Logger) ([]bookstmt.StatementGroup, error) {
	feedPath, err := bookstmt.LocateFeed(cfg, asOf)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("feed", feedPath).Msg("valuation feed resolved")

	book, err := bookstmt.LoadBook(cfg.BookPath)
	if err != nil {
		return nil, err
	}
	feed, err := bookstmt.LoadFeed(feedPath)
	if err != nil {
		return nil, err
	}

	table, err := bookstmt.Merge(book, feed)
	if err != nil {
		return nil, err
	}
	bookstmt.AmortizeTable(table, asOf)

	groups, dropped, err := bookstmt.GroupByFund(table, asOf)
	if err != nil {
		return nil, err
	}
	if dropped > 0 {
		log.Warn().Int("rows", dropped).Msg("rows without a fund id were excluded from all statements")
	}
	return groups, nil
}

// printMarkdown renders markdown for the terminal, falling back to the
// raw text when the terminal renderer is unavailable.
func printMarkdown(text string) {
	out, err := glamour.Render(text, "auto")
	if err != nil {
		fmt.Println(text)
		return
	}
	fmt.Print(out)
}
