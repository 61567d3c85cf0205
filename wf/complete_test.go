package main

import (
	"flag"
	"testing"

	"github.com/etnz/wealthflow/cmd"
	"github.com/google/subcommands"
)

func TestCompletion(t *testing.T) {
	commander := subcommands.NewCommander(flag.NewFlagSet("wf", flag.ContinueOnError), "wf")
	cmd.Register(commander)

	c := completion(commander)
	for _, name := range []string{"dashboard", "add", "rm", "simulate", "serve", "topic"} {
		if _, ok := c.Sub[name]; !ok {
			t.Errorf("completion has no %q command", name)
		}
	}
	if _, ok := c.Sub["add"].Flags["category"]; !ok {
		t.Error("completion of add has no -category flag")
	}
	if c.Sub["topic"].Args == nil {
		t.Error("completion of topic has no argument predictor")
	}
	if !registered(commander, "scenarios") || registered(commander, "hello") {
		t.Error("registered() does not tell commands apart")
	}
}
