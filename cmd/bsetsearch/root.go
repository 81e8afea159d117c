// Package main is the bsetsearch CLI entrypoint: a cobra.Command tree over
// search, workerpool, and resultstore.
//
// Command wiring follows DataDog-datadog-agent/cmd/agent/command's
// GlobalParams + SubcommandFactory pattern (command_test.go): a single
// params struct threaded by closure into every subcommand factory, rather
// than package-level globals or cobra's built-in flag binding to struct
// fields directly.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/bsetsearch/logging"
	"github.com/katalvlaran/bsetsearch/resultstore"
)

// errInterrupted signals that a subcommand completed but at least one
// solve was cut short by the shared stop flag; main translates this into
// spec §6's exit code 1. Not wrapped or logged again at this layer — the
// search itself already logged the interruption.
var errInterrupted = errors.New("bsetsearch: interrupted")

// GlobalParams holds flags shared by every subcommand.
type GlobalParams struct {
	DBPath  string
	Verbose bool
}

// SubcommandFactory builds the subcommands that share params, mirroring the
// teacher's factory-of-factories composition for a multi-command CLI.
type SubcommandFactory func(params *GlobalParams) []*cobra.Command

func main() {
	root := makeRootCommand()
	err := root.Execute()
	switch {
	case err == nil:
		return
	case errors.Is(err, errInterrupted):
		os.Exit(1)
	default:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func makeRootCommand() *cobra.Command {
	params := &GlobalParams{}

	root := &cobra.Command{
		Use:   "bsetsearch",
		Short: "Exact branch-and-bound search for minimal-max B-sequences",
	}

	root.PersistentFlags().StringVarP(&params.DBPath, "db", "d", "bsetsearch.db", "result-store database path")
	root.PersistentFlags().BoolVarP(&params.Verbose, "verbose", "v", false, "debug-level logging")

	for _, factory := range []SubcommandFactory{solveCommands, showCommands, statsCommands} {
		root.AddCommand(factory(params)...)
	}

	return root
}

// withStore opens params.DBPath, runs fn, and closes the store regardless of
// fn's outcome — every subcommand's body is one of these.
func withStore(params *GlobalParams, fn func(*resultstore.Store) error) error {
	logging.SetVerbose(params.Verbose)

	store, err := resultstore.Open(params.DBPath)
	if err != nil {
		return fmt.Errorf("bsetsearch: %w", err)
	}
	defer store.Close()

	return fn(store)
}

// notifyContext derives a context canceled on SIGINT/SIGTERM, the stdlib
// idiomatic replacement for a hand-rolled signal-to-atomic-bool bridge
// (spec §4.5's "shared stop flag wired to SIGINT/SIGTERM").
func notifyContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
