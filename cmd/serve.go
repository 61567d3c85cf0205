package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/wealthflow"
	"github.com/etnz/wealthflow/config"
	"github.com/etnz/wealthflow/logging"
	"github.com/etnz/wealthflow/server"
	"github.com/etnz/wealthflow/storage"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

// serveCmd holds the flags for the 'serve' subcommand.
type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the HTTP API" }
func (*serveCmd) Usage() string {
	return `wf serve [-addr <addr>]

  Serves the workspaces of every user over HTTP, see 'wf topic server'.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "address to listen on, defaults to server.addr")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	log := logging.New(cfg.Log.Level, cfg.Log.Format)
	if *Verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	if c.addr == "" {
		c.addr = cfg.Server.Addr
	}
	if cfg.Server.JWTSecret == "" {
		log.Warn("server.jwt_secret is empty, only guests will be served")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closer, err := storage.Open(ctx, cfg.Storage.Driver, cfg.Storage.DSN, log)
	if err != nil {
		log.WithError(err).Error("could not open storage")
		return subcommands.ExitFailure
	}
	defer closer.Close()

	srv := server.New(server.Config{
		Store:         store,
		Assistant:     &lazyGemini{cfg: cfg, log: log},
		Secret:        []byte(cfg.Server.JWTSecret),
		Currency:      cfg.Currency,
		AutosaveDelay: cfg.Autosave.Delay,
		Options: []wealthflow.Option{
			wealthflow.WithLimit(cfg.Scenario.Limit),
			wealthflow.WithLinker(cfg.Linker()),
		},
		Log: log,
	})
	if err := srv.Run(ctx, c.addr); err != nil {
		log.WithError(err).Error("server stopped")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// tokenCmd holds the flags for the 'token' subcommand.
type tokenCmd struct {
	ttl time.Duration
}

func (*tokenCmd) Name() string     { return "token" }
func (*tokenCmd) Synopsis() string { return "print a bearer token for the HTTP API" }
func (*tokenCmd) Usage() string {
	return `wf token [-ttl <duration>] [<user>]

  Prints a token signed with server.jwt_secret for the user, by default the
  one given by -user.
`
}

func (c *tokenCmd) SetFlags(f *flag.FlagSet) {
	f.DurationVar(&c.ttl, "ttl", 30*24*time.Hour, "validity of the token")
}

func (c *tokenCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	user := *userID
	if f.NArg() > 0 {
		user = f.Arg(0)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	token, err := server.NewToken([]byte(cfg.Server.JWTSecret), user, c.ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(token)
	return subcommands.ExitSuccess
}
