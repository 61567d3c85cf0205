package cmd

import (
	"context"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/etnz/wealthflow"
	"github.com/etnz/wealthflow/renderer"
	"github.com/google/subcommands"
)

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import items from a YAML file" }
func (*importCmd) Usage() string {
	return `wf import <file.yaml>

  Adds every item of the file to the live financials, with new ids. Amounts
  without currency use the file currency, or the configured one.
`
}

func (*importCmd) SetFlags(*flag.FlagSet) {}

func (*importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(a *app) error {
		file, err := os.Open(f.Arg(0))
		if err != nil {
			return err
		}
		defer file.Close()
		s, err := wealthflow.DecodeSnapshotYAML(file, a.cfg.Currency)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Arg(0), err)
		}
		return importSnapshot(a, s)
	})
}

func importSnapshot(a *app, s wealthflow.Snapshot) error {
	added, err := a.ws.Financials.Import(s)
	fmt.Printf("Imported %d items\n", len(added))
	return err
}

type scanCmd struct{}

func (*scanCmd) Name() string     { return "scan" }
func (*scanCmd) Synopsis() string { return "import the assets and liabilities shown on a screenshot" }
func (*scanCmd) Usage() string {
	return `wf scan <image>

  Sends the screenshot of a bank or brokerage statement to Gemini, displays
  the assets and liabilities it read, and adds them to the live financials.
`
}

func (*scanCmd) SetFlags(*flag.FlagSet) {}

func (*scanCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(a *app) error {
		image, err := os.ReadFile(f.Arg(0))
		if err != nil {
			return err
		}
		s, err := a.gemini.ParseStatement(ctx, image, mime.TypeByExtension(filepath.Ext(f.Arg(0))))
		if err != nil {
			return err
		}
		printMarkdown(renderer.DashboardMarkdown(s))
		return importSnapshot(a, s)
	})
}
