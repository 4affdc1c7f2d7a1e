package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/subcommands"
	"github.com/ledgerline/bookstmt"
)

// addCmd holds the flags for the 'add' subcommand.
type addCmd struct {
	id       string
	date     string
	notional string
	spread   string
	pnl      string
	fund     string
	fields   fieldFlags
}

// fieldFlags collects repeated -field NAME=VALUE pass-through columns.
type fieldFlags map[string]string

func (f fieldFlags) String() string { return fmt.Sprint(map[string]string(f)) }

func (f fieldFlags) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("want NAME=VALUE, got %q", s)
	}
	f[name] = value
	return nil
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "append a trade to the trade book" }
func (*addCmd) Usage() string {
	return `stmt add -id <trade id> -fund <fund> [-date <date>] [-notional <n>] [-spread <n>] [-pnl <n>] [-field NAME=VALUE]...

  Appends one trade record to the trade book and saves it. Date and P&L
  may be omitted for a newly booked trade; such records are carried but
  not amortized until both are present.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	c.fields = make(fieldFlags)
	f.StringVar(&c.id, "id", "", "Trade identifier (canonical, up to 7 characters)")
	f.StringVar(&c.date, "date", "", "Trade date")
	f.StringVar(&c.notional, "notional", "", "Notional amount")
	f.StringVar(&c.spread, "spread", "", "Spread amount")
	f.StringVar(&c.pnl, "pnl", "", "Raw profit/loss amount")
	f.StringVar(&c.fund, "fund", "", "Fund/client identifier")
	f.Var(c.fields, "field", "Additional pass-through column as NAME=VALUE (repeatable)")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required")
		return subcommands.ExitUsageError
	}

	rec, err := c.record()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	book, err := bookstmt.LoadBook(cfg.BookPath)
	var notFound *bookstmt.SourceNotFoundError
	if errors.As(err, &notFound) {
		fmt.Fprintln(os.Stderr, "warning, trade book does not exist, starting an empty one")
		book, err = bookstmt.NewBook(), nil
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	book.Append(rec)
	if err := bookstmt.SaveBook(cfg.BookPath, book); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Appended trade %s to %s\n", rec.ID, cfg.BookPath)
	return subcommands.ExitSuccess
}

func (c *addCmd) record() (bookstmt.TradeRecord, error) {
	rec := bookstmt.TradeRecord{ID: c.id, Fund: c.fund}

	if c.date != "" {
		d, err := bookstmt.ParseDate(c.date)
		if err != nil {
			return rec, err
		}
		rec.TradeDate = d
	}
	for _, v := range []struct {
		name  string
		raw   string
		apply func(float64)
	}{
		{"notional", c.notional, func(f float64) { rec.Notional = &f }},
		{"spread", c.spread, func(f float64) { rec.Spread = f }},
		{"pnl", c.pnl, func(f float64) { rec.RawPnL = &f }},
	} {
		if v.raw == "" {
			continue
		}
		f, err := strconv.ParseFloat(v.raw, 64)
		if err != nil {
			return rec, fmt.Errorf("invalid -%s %q", v.name, v.raw)
		}
		v.apply(f)
	}
	if len(c.fields) > 0 {
		rec.Extra = map[string]string(c.fields)
	}
	return rec, nil
}
