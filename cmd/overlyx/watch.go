// Package main provides the entry point for the overlyx CLI.
package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/overlyx/overlyx/internal/git"
	"github.com/overlyx/overlyx/internal/output"
	"github.com/overlyx/overlyx/internal/watch"
)

// newWatchCmd creates the watch command.
func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the tex directory and export on change",
		Long: `Watch the tex directory and re-export documents as they change.

Runs until interrupted. Each change to an authoring document triggers one
export (plus the body filter for the root document); events are handled
one at a time. There is no built-in restart policy: keep the process
alive with your supervisor of choice (systemd, runit, a tmux pane).`,
		Args: cobra.NoArgs,
		RunE: runWatch,
	}
}

// runWatch executes the watch command.
func runWatch(cmd *cobra.Command, _ []string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout())).
		WithStderr(cmd.ErrOrStderr())

	if !git.IsRepo() {
		err := output.NewSystemError("not in a git repository")
		printer.Error(err)
		return err
	}

	p, err := repoPipeline()
	if err != nil {
		printer.Error(err)
		return err
	}

	watcher := watch.New(p.Dir(), p.Config().IsAuthoringDocument,
		func(ctx context.Context, path string) error {
			res, syncErr := p.SyncDocument(ctx, path)
			if syncErr != nil {
				return syncErr
			}
			if res.Filtered {
				printer.Println("synced " + res.Document + " (filtered)")
			} else {
				printer.Println("synced " + res.Document)
			}
			return nil
		})
	watcher.OnError = func(err error) {
		printer.Warn("%v", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printer.Println("watching " + p.Dir())
	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		printer.Error(err)
		return err
	}
	return nil
}
