// Package main provides the entry point for the overlyx CLI.
package main

import (
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/overlyx/overlyx/internal/config"
	"github.com/overlyx/overlyx/internal/git"
	"github.com/overlyx/overlyx/internal/output"
	"github.com/overlyx/overlyx/internal/pipeline"
)

// newHookCmd creates the hidden hook parent command for internal hook execution.
func newHookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "hook",
		Short:  "Internal hook runner",
		Long:   `Internal command for running hook logic. Called by git hooks.`,
		Hidden: true,
	}

	cmd.AddCommand(newHookRunCmd())
	return cmd
}

// newHookRunCmd creates the hook run subcommand.
func newHookRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <hook-name>",
		Short: "Execute hook logic",
		Long:  `Execute the logic for the specified hook. Called by installed git hooks.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runHookRun,
	}
}

// runHookRun executes the hook run command.
func runHookRun(cmd *cobra.Command, args []string) error {
	switch args[0] {
	case "pre-commit":
		return runPreCommitHook(cmd)
	case "post-merge":
		return runPostMergeHook(cmd)
	default:
		// Unknown hook - silently succeed to not block operations
		return nil
	}
}

// runPreCommitHook exports every authoring document before a commit lands
// and touches the sentinel file. Failures are logged but never block the
// commit: the worst case is a stale markup file in the commit, which the
// watcher or a manual export corrects later.
func runPreCommitHook(cmd *cobra.Command) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), false, output.IsTTY(cmd.OutOrStdout())).
		WithStderr(cmd.ErrOrStderr())

	if !git.IsRepo() {
		// Not in a repo - silently succeed
		return nil
	}

	p, err := repoPipeline()
	if err != nil {
		printer.Warn("[overlyx] %v", err)
		return nil //nolint:nilerr // intentional: hook must not block git operations
	}

	log, err := pipeline.OpenRunLog(filepath.Join(p.Dir(), "pre-commit.log"), cmd.ErrOrStderr())
	if err != nil {
		printer.Warn("[overlyx] %v", err)
	}
	defer log.Close()
	p.WithLog(log)

	results, err := p.SyncAll(cmd.Context())
	if err != nil {
		printer.Warn("[overlyx] %v", err)
		return nil //nolint:nilerr // intentional: hook must not block git operations
	}

	// The sentinel is touched regardless of per-document outcomes.
	if err := p.TouchSentinel(); err != nil {
		printer.Warn("[overlyx] %v", err)
	}

	if failed := pipeline.Failed(results); failed > 0 {
		log.Printf("Processing complete: %d/%d files successful", len(results)-failed, len(results))
		printer.Warn("[overlyx] %d of %d documents failed to export; committing anyway", failed, len(results))
	} else {
		log.Printf("Processing complete: %d/%d files successful", len(results), len(results))
	}

	// Always succeed - export trouble must not block the commit
	return nil
}

// runPostMergeHook delegates to the external post-merge program under the
// overlyx home directory, unless the disable flag file is present.
// Fire-and-forget: the program's exit status is reported but never
// propagated to git.
func runPostMergeHook(cmd *cobra.Command) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), false, output.IsTTY(cmd.OutOrStdout())).
		WithStderr(cmd.ErrOrStderr())

	if config.HooksDisabled() {
		printer.Warn("[overlyx] post-merge processing disabled by %s", config.DisableHooksPath())
		return nil
	}

	script := config.PostMergeScriptPath()
	delegate := exec.CommandContext(cmd.Context(), script)
	delegate.Stdout = cmd.OutOrStdout()
	delegate.Stderr = cmd.ErrOrStderr()

	if err := delegate.Run(); err != nil {
		printer.Warn("[overlyx] %s: %v", script, err)
	}

	// Always succeed - the delegation is fire-and-forget
	return nil
}
