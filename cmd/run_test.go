package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRun lays out a complete working directory for a pipeline run:
// config, trade book, valuation feed and template.
func setupRun(t *testing.T) (dir string) {
	t.Helper()
	dir = t.TempDir()

	write := func(name, content string) {
		t.Helper()
		require.NoError(t, os.MkdirAll(filepath.Dir(filepath.Join(dir, name)), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}

	write("stmt.yaml", fmt.Sprintf(`book: %[1]s/tradebook.csv
template: %[1]s/template.csv
primary_dir: %[1]s/feeds
output_dir: %[1]s/statements
feed_label: Daily Valuation
product_label: Total Return Swap
`, dir))

	write("tradebook.csv", `TRADEIDENTIFIER,TRADE DATE,NOTIONAL,SPREAD,P&L,FUND ID
SWP0001,2024-01-01,1000000,30,1200,ALPHA
SWP0002,2024-03-15,500000,20,800,BETA
SWP0004,2024-02-01,750000,10,950,ALPHA
`)

	write("feeds/valuations_20240701.csv", `TRADEIDENTIFIER,PV
SWP0001XYZ,500
SWP0004,120
`)

	write("template.csv", `Statement,
As of:,
Trade Ref,Trade Date,Notional,Valuation,Amortised P&L,Total Value,Bid,Offer
Figures are indicative only.,
`)

	prev := *configFile
	*configFile = filepath.Join(dir, "stmt.yaml")
	t.Cleanup(func() { *configFile = prev })
	return dir
}

func TestRunCmd(t *testing.T) {
	dir := setupRun(t)

	cmd := &runCmd{}
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	cmd.SetFlags(fs)
	cmd.date = "2024-07-01"

	status := cmd.Execute(context.Background(), fs)
	require.Equal(t, subcommands.ExitSuccess, status)

	// one statement per fund, named from fund id and compact date
	for _, name := range []string{"ALPHA_20240701.csv", "BETA_20240701.csv"} {
		_, err := os.Stat(filepath.Join(dir, "statements", name))
		assert.NoError(t, err, name)
	}
}

func TestRunCmdMissingFeed(t *testing.T) {
	setupRun(t)

	cmd := &runCmd{date: "2024-07-02"} // no feed published for that date
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	cmd.SetFlags(fs)
	cmd.date = "2024-07-02"

	status := cmd.Execute(context.Background(), fs)
	assert.Equal(t, subcommands.ExitFailure, status)
}

func TestRunCmdBadDate(t *testing.T) {
	setupRun(t)

	cmd := &runCmd{date: "yesterday-ish"}
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	cmd.SetFlags(fs)
	cmd.date = "yesterday-ish"

	status := cmd.Execute(context.Background(), fs)
	assert.Equal(t, subcommands.ExitUsageError, status)
}

func TestLocateCmd(t *testing.T) {
	setupRun(t)

	cmd := &locateCmd{date: "2024-07-01"}
	fs := flag.NewFlagSet("locate", flag.ContinueOnError)
	cmd.SetFlags(fs)
	cmd.date = "2024-07-01"

	status := cmd.Execute(context.Background(), fs)
	assert.Equal(t, subcommands.ExitSuccess, status)
}
