// Package main provides the entry point for the overlyx CLI.
package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/overlyx/overlyx/internal/git"
	"github.com/overlyx/overlyx/internal/output"
	"github.com/overlyx/overlyx/internal/setup"
)

// hooksListResult holds the data for hooks list output.
type hooksListResult struct {
	PreCommit setup.HookStatus `json:"pre_commit"`
	PostMerge setup.HookStatus `json:"post_merge"`
}

// newHooksCmd creates the hooks parent command with subcommands.
func newHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "Manage git hooks for overlyx",
		Long: `Manage the git hooks that integrate overlyx into your workflow.

OverLyX installs two hooks:
  pre-commit  Re-exports every document so the committed .tex files are fresh
  post-merge  Delegates to the external post-merge script, gated by a flag file

The hook directory honors core.hooksPath when configured.

Subcommands:
  install    Install overlyx git hooks
  uninstall  Remove overlyx git hooks
  list       Show status of hooks

Examples:
  overlyx hooks list              # Show hook status
  overlyx hooks install           # Install both hooks
  overlyx hooks install --chain   # Install and preserve existing hooks
  overlyx hooks uninstall         # Remove hooks, restore backups`,
	}

	cmd.AddCommand(newHooksListCmd())
	cmd.AddCommand(newHooksInstallCmd())
	cmd.AddCommand(newHooksUninstallCmd())
	return cmd
}

// newHooksListCmd creates the hooks list subcommand.
func newHooksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show status of git hooks",
		Long:  `Show the installation status of each overlyx hook.`,
		RunE:  runHooksList,
	}
}

// runHooksList executes the hooks list command.
func runHooksList(cmd *cobra.Command, _ []string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout()))

	if !git.IsRepo() {
		err := output.NewSystemError("not in a git repository")
		printer.Error(err)
		return err
	}

	result, err := gatherHooksStatus()
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"pre_commit": map[string]any{
				"installed": result.PreCommit.Installed,
				"chained":   result.PreCommit.Chained,
			},
			"post_merge": map[string]any{
				"installed": result.PostMerge.Installed,
				"chained":   result.PostMerge.Chained,
			},
		})
	}

	printHumanHooksList(printer, result)
	return nil
}

// gatherHooksStatus collects hook status information.
func gatherHooksStatus() (*hooksListResult, error) {
	hooksDir, err := setup.HooksDir()
	if err != nil {
		return nil, err
	}

	result := &hooksListResult{}
	result.PreCommit = setup.CheckHookStatus(filepath.Join(hooksDir, "pre-commit"))
	result.PostMerge = setup.CheckHookStatus(filepath.Join(hooksDir, "post-merge"))

	return result, nil
}

// printHumanHooksList outputs hooks status in human-readable format.
func printHumanHooksList(printer *output.Printer, result *hooksListResult) {
	printer.Section("Git Hooks")
	printer.KeyValue("pre-commit", describeHookStatus(result.PreCommit))
	printer.KeyValue("post-merge", describeHookStatus(result.PostMerge))
}

// describeHookStatus renders one status as a short phrase.
func describeHookStatus(status setup.HookStatus) string {
	if !status.Installed {
		return "not installed"
	}
	if status.Chained {
		return "installed (chained)"
	}
	return "installed"
}
