package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/willibrandon/gohintpath/cmd/gohintpath/cli"
	"github.com/willibrandon/gohintpath/cmd/gohintpath/commands"
)

// Version information (set via ldflags during build)
var (
	version = "0.0.0-dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date
	cli.SetupVersion()

	cli.AddCommand(commands.NewVersionCommand(cli.Console))
	cli.AddCommand(commands.NewFixCommand(cli.Console))
	cli.AddCommand(commands.NewRevertCommand(cli.Console))
	cli.AddCommand(commands.NewWatchCommand(cli.Console))

	// Cancelling the context stops watch and lets fix/revert finish the current project.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
