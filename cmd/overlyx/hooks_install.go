// Package main provides the entry point for the overlyx CLI.
package main

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/overlyx/overlyx/internal/git"
	"github.com/overlyx/overlyx/internal/output"
	"github.com/overlyx/overlyx/internal/setup"
)

// newHooksInstallCmd creates the hooks install subcommand.
func newHooksInstallCmd() *cobra.Command {
	var chain bool
	var force bool
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install overlyx git hooks",
		Long: `Install the overlyx pre-commit and post-merge hooks.

Use --chain to preserve existing hooks (runs them after overlyx).
Use --force to overwrite existing hooks without backup.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHooksInstall(cmd, chain, force, dryRun)
		},
	}

	cmd.Flags().BoolVar(&chain, "chain", false, "Preserve existing hooks, run them after")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing hooks without backup")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without doing it")

	return cmd
}

// runHooksInstall executes the hooks install command.
func runHooksInstall(cmd *cobra.Command, chain, force, dryRun bool) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout()))

	if !git.IsRepo() {
		err := output.NewSystemError("not in a git repository")
		printer.Error(err)
		return err
	}

	hooksDir, err := setup.HooksDir()
	if err != nil {
		printer.Error(err)
		return err
	}

	if dryRun {
		return handleInstallDryRun(printer, hooksDir, chain, force)
	}

	chainedHooks := make(map[string]bool, len(setup.HookNames))
	for _, name := range setup.HookNames {
		chained, installErr := setup.Install(hooksDir, name, chain, force)
		if installErr != nil {
			printer.Error(installErr)
			return installErr
		}
		chainedHooks[name] = chained
	}

	return outputInstallSuccess(printer, chainedHooks)
}

// outputInstallSuccess outputs the success message for install.
func outputInstallSuccess(printer *output.Printer, chainedHooks map[string]bool) error {
	if printer.IsJSON() {
		data := map[string]any{"status": "ok"}
		for _, name := range setup.HookNames {
			data[jsonHookKey(name)] = map[string]any{
				"installed": true,
				"chained":   chainedHooks[name],
			}
		}
		return printer.Success(data)
	}

	for _, name := range setup.HookNames {
		msg := "Installed " + name + " hook"
		if chainedHooks[name] {
			msg += " (existing hook backed up and chained)"
		}
		if err := printer.Success(map[string]any{"message": msg}); err != nil {
			return err
		}
	}
	return nil
}

// handleInstallDryRun handles dry-run output for install.
func handleInstallDryRun(printer *output.Printer, hooksDir string, chain, force bool) error {
	if printer.IsJSON() {
		data := map[string]any{"status": "dry_run"}
		for _, name := range setup.HookNames {
			exists := setup.HookExists(filepath.Join(hooksDir, name))
			data[jsonHookKey(name)] = map[string]any{
				"exists":          exists,
				"would_chain":     chain && exists,
				"would_overwrite": force && exists,
			}
		}
		return printer.Success(data)
	}

	printer.Section("Dry Run")
	for _, name := range setup.HookNames {
		exists := setup.HookExists(filepath.Join(hooksDir, name))
		printer.KeyValue(name, setup.DescribeInstallAction(exists, chain, force))
	}
	printer.KeyValue("Directory", hooksDir)

	return nil
}

// newHooksUninstallCmd creates the hooks uninstall subcommand.
func newHooksUninstallCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove overlyx git hooks",
		Long:  `Remove the overlyx git hooks and restore any backups.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHooksUninstall(cmd, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without doing it")

	return cmd
}

// runHooksUninstall executes the hooks uninstall command.
func runHooksUninstall(cmd *cobra.Command, dryRun bool) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout()))

	if !git.IsRepo() {
		err := output.NewSystemError("not in a git repository")
		printer.Error(err)
		return err
	}

	hooksDir, err := setup.HooksDir()
	if err != nil {
		printer.Error(err)
		return err
	}

	if dryRun {
		return handleUninstallDryRun(printer, hooksDir)
	}

	restoredHooks := make(map[string]bool, len(setup.HookNames))
	removed := 0
	for _, name := range setup.HookNames {
		installed := setup.CheckHookStatus(filepath.Join(hooksDir, name)).Installed
		restored, uninstallErr := setup.Uninstall(hooksDir, name)
		if uninstallErr != nil {
			printer.Error(uninstallErr)
			return uninstallErr
		}
		if installed {
			removed++
		}
		restoredHooks[name] = restored
	}

	return outputUninstallSuccess(printer, removed, restoredHooks)
}

// outputUninstallSuccess outputs the success message for uninstall.
func outputUninstallSuccess(printer *output.Printer, removed int, restoredHooks map[string]bool) error {
	if printer.IsJSON() {
		data := map[string]any{"status": "ok", "removed": removed}
		for _, name := range setup.HookNames {
			data[jsonHookKey(name)] = map[string]any{"restored": restoredHooks[name]}
		}
		return printer.Success(data)
	}

	if removed == 0 {
		return printer.Success(map[string]any{"message": "No overlyx hooks installed"})
	}

	for _, name := range setup.HookNames {
		if !restoredHooks[name] {
			continue
		}
		if err := printer.Success(map[string]any{"message": "Restored original " + name + " hook"}); err != nil {
			return err
		}
	}
	return printer.Success(map[string]any{"message": "Removed overlyx hooks"})
}

// handleUninstallDryRun handles dry-run output for uninstall.
func handleUninstallDryRun(printer *output.Printer, hooksDir string) error {
	if printer.IsJSON() {
		data := map[string]any{"status": "dry_run"}
		for _, name := range setup.HookNames {
			hookPath := filepath.Join(hooksDir, name)
			installed := setup.CheckHookStatus(hookPath).Installed
			hasBackup := setup.HookExists(hookPath + ".backup")
			data[jsonHookKey(name)] = map[string]any{
				"installed":     installed,
				"has_backup":    hasBackup,
				"would_restore": hasBackup,
			}
		}
		return printer.Success(data)
	}

	printer.Section("Dry Run")
	for _, name := range setup.HookNames {
		hookPath := filepath.Join(hooksDir, name)
		installed := setup.CheckHookStatus(hookPath).Installed
		hasBackup := setup.HookExists(hookPath + ".backup")
		printer.KeyValue(name, setup.DescribeUninstallAction(installed, hasBackup))
	}

	return nil
}

// jsonHookKey converts a hook name to its JSON field ("pre-commit" -> "pre_commit").
func jsonHookKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
