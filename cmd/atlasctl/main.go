// Package main is the entry point for the atlasctl CLI.
//
// atlasctl converges MongoDB Atlas clusters and database users towards a
// declared state. Every run reads the current state from the Atlas Admin API
// and makes at most one change per resource; nothing is stored locally.
//
// Commands: cluster, user, apply, version.
//
// For detailed usage information, run:
//
//	atlasctl --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/imamik/atlasctl/cmd/atlasctl/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
