package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/ledgerline/bookstmt/cmd"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion declares the shell completion tree. Complete() exits the
// process early when the shell is asking for completions.
func completion() {
	dateFlag := map[string]complete.Predictor{"d": predict.Nothing}
	root := &complete.Command{
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.yaml"),
		},
		Sub: map[string]*complete.Command{
			"run":     {Flags: dateFlag},
			"locate":  {Flags: dateFlag},
			"preview": {Flags: map[string]complete.Predictor{"d": predict.Nothing, "fund": predict.Nothing}},
			"add":     {},
			"list":    {},
		},
	}
	root.Complete("stmt")
}
