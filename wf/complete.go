package main

import (
	"flag"

	"github.com/etnz/wealthflow"
	"github.com/etnz/wealthflow/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the command line for shell completion: every
// registered command with its flags.
func completion(commander *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flags(flag.CommandLine, nil),
	}
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		root.Sub[c.Name()] = &complete.Command{
			Flags: flags(fs, flagPredictors),
			Args:  argPredictors[c.Name()],
		}
	})
	return root
}

func categories() predict.Set {
	var s predict.Set
	for _, c := range wealthflow.Categories {
		s = append(s, string(c))
	}
	return s
}

func topics() predict.Set {
	list, _ := docs.GetAllTopics()
	return predict.Set(list)
}

var flagPredictors = map[string]complete.Predictor{
	"category":  categories(),
	"liquidity": predict.Set{"High", "Medium", "Low"},
}

var argPredictors = map[string]complete.Predictor{
	"import": predict.Files("*.yaml"),
	"scan":   predict.Files("*"),
	"topic":  topics(),
}

// flags predicts the flags of fs, using known predictors by flag name.
func flags(fs *flag.FlagSet, known map[string]complete.Predictor) map[string]complete.Predictor {
	m := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := known[f.Name]; ok {
			m[f.Name] = p
			return
		}
		m[f.Name] = predict.Something
	})
	return m
}
