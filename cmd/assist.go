package cmd

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/etnz/wealthflow/agent"
	"github.com/google/subcommands"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct {
	model string
}

func (*assistCmd) Name() string { return "assist" }
func (*assistCmd) Synopsis() string {
	return "start an interactive session with the financial assistant"
}
func (*assistCmd) Usage() string {
	return `wf assist [-model <model>] [<question>]

  Starts a chat with an assistant that can read the dashboard and the saved
  scenarios, and search the web. The question, if any, is asked first.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.model, "model", agent.DefaultChatModel, "Gemini model of the chat")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := strings.Join(f.Args(), " ")

	return withApp(ctx, func(a *app) error {
		client, _, err := a.gemini.connect(ctx)
		if err != nil {
			return err
		}
		planner := agent.NewPlanner(a.ws, c.model)
		researcher := agent.NewResearcher(c.model)
		assistant := agent.New(os.Stdout, os.Stdin, c.model, planner, researcher)
		assistant.Print = printMarkdown
		return assistant.Run(ctx, client, initialPrompt)
	})
}
