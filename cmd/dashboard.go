package cmd

import (
	"context"
	"flag"

	"github.com/etnz/wealthflow/renderer"
	"github.com/google/subcommands"
)

type dashboardCmd struct{}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "display the metrics and items of the live financials" }
func (*dashboardCmd) Usage() string {
	return `wf dashboard

  Displays the net worth, the monthly cash flow and one table per category.
`
}

func (*dashboardCmd) SetFlags(*flag.FlagSet) {}

func (*dashboardCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) error {
		printMarkdown(renderer.DashboardMarkdown(a.ws.Financials.Snapshot()))
		return nil
	})
}
