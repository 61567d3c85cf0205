package cmd

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/etnz/wealthflow/renderer"
	"github.com/google/subcommands"
)

// adviseCmd holds the flags for the 'advise' subcommand.
type adviseCmd struct {
	save    bool
	history bool
}

func (*adviseCmd) Name() string     { return "advise" }
func (*adviseCmd) Synopsis() string { return "ask Gemini for an analysis of the live financials" }
func (*adviseCmd) Usage() string {
	return `wf advise [-save] [-history]

  Displays a health score, immediate actions and a strategic advice about the
  live financials. -save keeps the analysis in the history, -history lists
  the saved analyses instead.
`
}

func (c *adviseCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.save, "save", false, "save the analysis in the history")
	f.BoolVar(&c.history, "history", false, "list the saved analyses")
}

func (c *adviseCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) error {
		if c.history {
			printMarkdown(renderer.SavedAdvicesMarkdown(a.ws.Advices()))
			return nil
		}
		advice, err := a.gemini.Analyze(ctx, a.ws.Financials.Snapshot())
		if err != nil {
			return err
		}
		printMarkdown(renderer.AdviceMarkdown(advice))
		if c.save {
			saved := a.ws.SaveAdvice(advice, time.Now())
			fmt.Printf("Saved %q\n", saved.Title)
		}
		return nil
	})
}
