package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/wealthflow"
	"github.com/etnz/wealthflow/renderer"
	"github.com/google/subcommands"
)

// simulateCmd holds the flags for the 'simulate' subcommand.
type simulateCmd struct {
	load string
}

func (*simulateCmd) Name() string     { return "simulate" }
func (*simulateCmd) Synopsis() string { return "edit a what-if scenario interactively" }
func (*simulateCmd) Usage() string {
	return `wf simulate [-load <scenario>]

  Opens a scenario on the live financials, or on a saved scenario with -load,
  and reads commands:

    toggle <category> <id>  release or keep an item
    rename <name>           rename the scenario
    status                  show the projection
    save                    save the scenario and exit
    exit                    exit without saving
`
}

func (c *simulateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.load, "load", "", "id, id prefix or name of the saved scenario to edit")
}

func (c *simulateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) error {
		sim := &simulation{ws: a.ws, w: os.Stdout, print: printMarkdown}
		if err := sim.open(c.load); err != nil {
			return err
		}
		return sim.run(ctx, os.Stdin)
	})
}

const simulatePrompt = "simulate> "

// simulation is the read-eval loop of a scenario session.
type simulation struct {
	ws    *wealthflow.Workspace
	w     io.Writer
	print func(markdown string)
}

// open starts a session, on the saved scenario ref when not empty.
func (s *simulation) open(ref string) error {
	sim := s.ws.Simulator
	if ref == "" {
		_, err := sim.Start()
		return err
	}
	sc, err := resolveScenario(sim.Scenarios(), ref)
	if err != nil {
		return err
	}
	_, err = sim.Load(sc.ID)
	return err
}

// run reads commands from r until the session is saved or exited. At the end
// of input the session is discarded.
func (s *simulation) run(ctx context.Context, r io.Reader) error {
	s.status()
	in := bufio.NewScanner(r)
	for {
		fmt.Fprint(s.w, simulatePrompt)
		if !in.Scan() {
			fmt.Fprintln(s.w)
			if s.ws.Simulator.Session() != nil {
				return s.ws.Simulator.Exit()
			}
			return in.Err()
		}
		done, err := s.exec(ctx, in.Text())
		if err != nil {
			fmt.Fprintf(s.w, "Error: %v\n", err)
		}
		if done {
			return nil
		}
	}
}

// exec runs one command line, and reports whether the session is over.
func (s *simulation) exec(ctx context.Context, line string) (done bool, err error) {
	sim := s.ws.Simulator
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)
	switch cmd {
	case "":
		return false, nil
	case "toggle":
		catName, ref, _ := strings.Cut(rest, " ")
		cat, err := wealthflow.ParseCategory(catName)
		if err != nil {
			return false, err
		}
		it, err := resolveID(s.candidates(cat), strings.TrimSpace(ref))
		if err != nil {
			return false, err
		}
		if _, err := sim.Toggle(cat, it.ItemID()); err != nil {
			return false, err
		}
		state := "kept"
		if !sim.Session().Kept(cat, it.ItemID()) {
			state = "released"
		}
		fmt.Fprintf(s.w, "%s %q %s\n", cat, it.ItemName(), state)
		return false, nil
	case "rename":
		if rest == "" {
			return false, errors.New("rename needs a name")
		}
		return false, sim.Rename(rest)
	case "status":
		s.status()
		return false, nil
	case "save":
		fmt.Fprintln(s.w, "Summarizing the scenario...")
		sc, err := sim.Save(ctx)
		if err != nil {
			var se *wealthflow.SummaryError
			if errors.As(err, &se) {
				return false, fmt.Errorf("%w\nThe scenario is still open, try again or exit", err)
			}
			return false, err
		}
		fmt.Fprintf(s.w, "Saved %q: %s\n", sc.Name, sc.Summary)
		return true, nil
	case "exit", "quit", "bye":
		return true, sim.Exit()
	}
	fmt.Fprintln(s.w, "Commands: toggle <category> <id>, rename <name>, status, save, exit")
	return false, nil
}

// candidates are the items of a category that can be toggled: the baseline
// ones and the kept ones.
func (s *simulation) candidates(c wealthflow.Category) []wealthflow.Item {
	sess := s.ws.Simulator.Session()
	if sess == nil {
		return nil
	}
	list := sess.Original.Items(c)
	for _, it := range sess.Current.Items(c) {
		if !sess.Original.Contains(c, it.ItemID()) {
			list = append(list, it)
		}
	}
	return list
}

func (s *simulation) status() {
	sess := s.ws.Simulator.Session()
	if sess == nil {
		return
	}
	p, err := sess.Project(s.ws.Financials.Snapshot())
	if err != nil {
		fmt.Fprintf(s.w, "Cannot project the scenario: %v\n", err)
		return
	}
	s.print(renderer.ProjectionMarkdown(sess, p))
}
