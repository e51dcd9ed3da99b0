// Package main provides the entry point for the overlyx CLI.
package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/overlyx/overlyx/internal/config"
	"github.com/overlyx/overlyx/internal/git"
	"github.com/overlyx/overlyx/internal/output"
	"github.com/overlyx/overlyx/internal/setup"
)

// newInitCmd creates the init command.
func newInitCmd() *cobra.Command {
	var force bool
	var noHooks bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Set up overlyx in the current repository",
		Long: `Set up overlyx in the current repository.

Writes ` + config.FileName + ` with the default settings (unless present),
and installs the pre-commit and post-merge hooks.

Examples:
  overlyx init             # Write config and install hooks
  overlyx init --no-hooks  # Write config only
  overlyx init --force     # Overwrite an existing config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, force, noHooks)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	cmd.Flags().BoolVar(&noHooks, "no-hooks", false, "Skip hook installation")

	return cmd
}

// runInit executes the init command.
func runInit(cmd *cobra.Command, force, noHooks bool) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout()))

	if !git.IsRepo() {
		err := output.NewSystemError("not in a git repository")
		printer.Error(err)
		return err
	}

	root, err := git.RepoRoot()
	if err != nil {
		printer.Error(err)
		return err
	}

	configWritten, err := writeInitConfig(root, force)
	if err != nil {
		printer.Error(err)
		return err
	}

	cfg, err := config.Load(root)
	if err != nil {
		printer.Error(err)
		return err
	}
	texDir := cfg.ResolveTexDir(root)
	texDirExists := false
	if info, statErr := os.Stat(texDir); statErr == nil && info.IsDir() {
		texDirExists = true
	}

	hooksInstalled := false
	if !noHooks {
		hooksDir, hooksErr := setup.HooksDir()
		if hooksErr != nil {
			printer.Error(hooksErr)
			return hooksErr
		}
		for _, name := range setup.HookNames {
			// Re-running init over our own hooks is a no-op, not a conflict.
			if setup.CheckHookStatus(filepath.Join(hooksDir, name)).Installed {
				continue
			}
			if _, installErr := setup.Install(hooksDir, name, false, false); installErr != nil {
				printer.Error(installErr)
				return installErr
			}
		}
		hooksInstalled = true
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status":         "ok",
			"config_written": configWritten,
			"tex_dir":        texDir,
			"tex_dir_exists": texDirExists,
			"hooks":          hooksInstalled,
		})
	}

	if configWritten {
		printer.Println("wrote " + config.FileName)
	} else {
		printer.Println(config.FileName + " already present")
	}
	if !texDirExists {
		printer.Warn("tex directory %s does not exist yet", texDir)
	}
	if hooksInstalled {
		printer.Println("installed git hooks")
	}
	return printer.Success(map[string]any{"message": "overlyx is set up"})
}

// writeInitConfig writes a default config file, honoring --force.
// Returns whether the file was written.
func writeInitConfig(root string, force bool) (bool, error) {
	path := filepath.Join(root, config.FileName)
	if _, err := os.Stat(path); err == nil && !force {
		return false, nil
	}
	if err := config.Default().Save(root); err != nil {
		return false, err
	}
	return true, nil
}
