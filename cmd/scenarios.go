package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/wealthflow/renderer"
	"github.com/google/subcommands"
)

type scenariosCmd struct{}

func (*scenariosCmd) Name() string     { return "scenarios" }
func (*scenariosCmd) Synopsis() string { return "list the saved scenarios" }
func (*scenariosCmd) Usage() string {
	return `wf scenarios

  Lists the saved scenarios with their net worth, cash flow and summary.
`
}

func (*scenariosCmd) SetFlags(*flag.FlagSet) {}

func (*scenariosCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) error {
		sim := a.ws.Simulator
		printMarkdown(renderer.ScenariosMarkdown(sim.Scenarios(), sim.Limit()))
		return nil
	})
}

type delScenarioCmd struct{}

func (*delScenarioCmd) Name() string     { return "delscenario" }
func (*delScenarioCmd) Synopsis() string { return "delete a saved scenario" }
func (*delScenarioCmd) Usage() string {
	return `wf delscenario <scenario>

  Deletes the saved scenario with that id, id prefix or name.
`
}

func (*delScenarioCmd) SetFlags(*flag.FlagSet) {}

func (*delScenarioCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(a *app) error {
		sc, err := resolveScenario(a.ws.Simulator.Scenarios(), f.Arg(0))
		if err != nil {
			return err
		}
		if err := a.ws.Simulator.Delete(sc.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted scenario %q\n", sc.Name)
		return nil
	})
}
