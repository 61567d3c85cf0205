// Package cmd implements the wf command line application.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/wealthflow"
	"github.com/etnz/wealthflow/autosave"
	"github.com/etnz/wealthflow/config"
	"github.com/etnz/wealthflow/logging"
	"github.com/etnz/wealthflow/storage"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&dashboardCmd{}, "financials")
	c.Register(&addCmd{}, "financials")
	c.Register(&rmCmd{}, "financials")
	c.Register(&importCmd{}, "financials")
	c.Register(&scanCmd{}, "financials")

	c.Register(&simulateCmd{}, "scenarios")
	c.Register(&scenariosCmd{}, "scenarios")
	c.Register(&delScenarioCmd{}, "scenarios")

	c.Register(&adviseCmd{}, "assistant")
	c.Register(&assistCmd{}, "assistant")

	c.Register(&serveCmd{}, "server")
	c.Register(&tokenCmd{}, "server")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var userID = flag.String("user", "local", "User whose workspace is opened")

// Verbose enables debug logs.
var Verbose = flag.Bool("v", false, "Verbose logging")

// app is what a command needs: the configuration, the store and the
// workspace of the user.
type app struct {
	cfg    config.Config
	log    *logrus.Logger
	store  storage.Store
	closer io.Closer
	gemini *lazyGemini
	ws     *wealthflow.Workspace
	saver  *autosave.Saver
}

// openApp loads the configuration, opens the store and the workspace of the user.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logging.New(cfg.Log.Level, cfg.Log.Format)
	if *Verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	store, closer, err := storage.Open(ctx, cfg.Storage.Driver, cfg.Storage.DSN, log)
	if err != nil {
		return nil, err
	}
	a, err := newApp(ctx, cfg, log, store, *userID)
	if err != nil {
		closer.Close()
		return nil, err
	}
	a.closer = closer
	return a, nil
}

// newApp loads the workspace of user from store. Every change is written
// back when the app is closed, or after the autosave delay.
func newApp(ctx context.Context, cfg config.Config, log *logrus.Logger, store storage.Store, user string) (*app, error) {
	doc, err := store.Load(ctx, user)
	if errors.Is(err, storage.ErrNotFound) {
		log.WithField("user", user).Debug("no document yet, starting empty")
		doc, err = wealthflow.Document{}, nil
	}
	if err != nil {
		return nil, err
	}
	a := &app{
		cfg:    cfg,
		log:    log,
		store:  store,
		closer: io.NopCloser(nil),
		gemini: &lazyGemini{cfg: cfg, log: log},
	}
	a.ws = wealthflow.NewWorkspace(doc, a.gemini, a.options()...)
	a.saver = autosave.New(store, user, cfg.Autosave.Delay, log)
	a.saver.Watch(a.ws)
	return a, nil
}

// options of the scenario simulator.
func (a *app) options() []wealthflow.Option {
	return []wealthflow.Option{
		wealthflow.WithLimit(a.cfg.Scenario.Limit),
		wealthflow.WithLinker(a.cfg.Linker()),
		wealthflow.WithLogger(a.log),
	}
}

// Close writes pending changes and closes the store.
func (a *app) Close(ctx context.Context) error {
	a.ws.Close()
	return errors.Join(a.saver.Close(ctx), a.closer.Close())
}

// withApp opens the app, runs f and reports its error:
// a message on stderr and a failure status.
func withApp(ctx context.Context, f func(a *app) error) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	err = f(a)
	if cerr := a.Close(ctx); cerr != nil {
		fmt.Fprintf(os.Stderr, "Error saving changes: %v\n", cerr)
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var usage usageError
		if errors.As(err, &usage) {
			return subcommands.ExitUsageError
		}
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// usageError is an error of the command line itself.
type usageError struct{ error }

func usagef(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

// printMarkdown renders markdown for the terminal, or prints it as is when
// it cannot be rendered.
func printMarkdown(s string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		var out string
		if out, err = r.Render(s); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Println(s)
}

// resolveID finds the item of list whose id is ref or starts with ref.
func resolveID(list []wealthflow.Item, ref string) (wealthflow.Item, error) {
	if ref == "" {
		return nil, usagef("missing id")
	}
	var found []wealthflow.Item
	for _, it := range list {
		if it.ItemID() == ref {
			return it, nil
		}
		if strings.HasPrefix(it.ItemID(), ref) {
			found = append(found, it)
		}
	}
	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: no item with id %q", wealthflow.ErrUnknownItem, ref)
	case 1:
		return found[0], nil
	}
	return nil, fmt.Errorf("id %q is ambiguous, it matches %d items", ref, len(found))
}

// resolveScenario finds a saved scenario by id, id prefix or name.
func resolveScenario(list []wealthflow.Scenario, ref string) (wealthflow.Scenario, error) {
	var found []wealthflow.Scenario
	for _, sc := range list {
		if sc.ID == ref || sc.Name == ref {
			return sc, nil
		}
		if ref != "" && strings.HasPrefix(sc.ID, ref) {
			found = append(found, sc)
		}
	}
	switch len(found) {
	case 0:
		return wealthflow.Scenario{}, fmt.Errorf("%w: %q", wealthflow.ErrScenarioNotFound, ref)
	case 1:
		return found[0], nil
	}
	return wealthflow.Scenario{}, fmt.Errorf("scenario %q is ambiguous, it matches %d scenarios", ref, len(found))
}
