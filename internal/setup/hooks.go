// Package setup installs and inspects the git hooks that wire overlyx
// into the commit lifecycle.
package setup

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/overlyx/overlyx/internal/git"
	"github.com/overlyx/overlyx/internal/output"
)

// HookNames lists the hooks overlyx manages.
var HookNames = []string{"pre-commit", "post-merge"}

// HookStatus represents the status of a single git hook.
type HookStatus struct {
	Installed bool
	Chained   bool
}

// HooksDir returns the hook script directory for the current repository.
// A configured core.hooksPath wins, resolved against the repo root when
// relative; otherwise .git/hooks.
func HooksDir() (string, error) {
	root, err := git.RepoRoot()
	if err != nil {
		return "", err
	}
	if hooksPath := git.HooksPath(); hooksPath != "" {
		if filepath.IsAbs(hooksPath) {
			return hooksPath, nil
		}
		return filepath.Join(root, hooksPath), nil
	}
	return filepath.Join(root, ".git", "hooks"), nil
}

// HookExists checks if a hook file exists at the given path.
func HookExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// CheckHookStatus checks if a hook is installed and whether it chains to a backup.
func CheckHookStatus(hookPath string) HookStatus {
	status := HookStatus{}

	content, err := os.ReadFile(hookPath)
	if err != nil {
		return status // Not installed
	}

	contentStr := string(content)
	if strings.Contains(contentStr, "overlyx hook run") {
		status.Installed = true
		status.Chained = strings.Contains(contentStr, ".backup")
	}

	return status
}

// GenerateHook generates the script content for the named hook.
// If withChain is true, the script chains to the backed-up original hook.
func GenerateHook(name string, withChain bool) string {
	script := `#!/bin/sh
# overlyx ` + name + ` hook
# Keeps the LaTeX mirror of the LyX documents in sync

if command -v overlyx >/dev/null 2>&1; then
  overlyx hook run ` + name + ` "$@"
fi
`

	if withChain {
		script += `
# Chain to original hook if it exists
if [ -x "$(dirname "$0")/` + name + `.backup" ]; then
  exec "$(dirname "$0")/` + name + `.backup" "$@"
fi
`
	}

	return script
}

// Install writes the named hook into hooksDir, handling an existing hook
// per the chain/force flags. Returns whether the previous hook was
// backed up and chained.
func Install(hooksDir, name string, chain, force bool) (chained bool, err error) {
	hookPath := filepath.Join(hooksDir, name)
	existing := HookExists(hookPath)

	if existing && !force {
		if !chain {
			return false, output.NewConflictError(
				name + " hook already exists; use --chain to preserve or --force to overwrite")
		}
		if err := BackupExistingHook(hookPath); err != nil {
			return false, err
		}
	}

	content := GenerateHook(name, chain && existing)
	// #nosec G306 -- hook needs execute permission
	if err := os.WriteFile(hookPath, []byte(content), 0o755); err != nil {
		return false, output.NewSystemErrorWithCause("failed to write "+name+" hook", err)
	}
	return chain && existing, nil
}

// Uninstall removes the named hook from hooksDir and restores a backup
// when present. Returns whether a backup was restored.
func Uninstall(hooksDir, name string) (restored bool, err error) {
	hookPath := filepath.Join(hooksDir, name)
	backupPath := hookPath + ".backup"

	if !CheckHookStatus(hookPath).Installed {
		return false, nil
	}

	if err := os.Remove(hookPath); err != nil {
		return false, output.NewSystemErrorWithCause("failed to remove "+name+" hook", err)
	}
	if HookExists(backupPath) {
		if err := os.Rename(backupPath, hookPath); err != nil {
			return false, output.NewSystemErrorWithCause("failed to restore "+name+" backup", err)
		}
		return true, nil
	}
	return false, nil
}

// BackupExistingHook moves an existing hook to a .backup location.
func BackupExistingHook(hookPath string) error {
	backupPath := hookPath + ".backup"
	if err := os.Rename(hookPath, backupPath); err != nil {
		return output.NewSystemErrorWithCause("failed to backup existing hook", err)
	}
	return nil
}

// DescribeInstallAction returns a human-readable description of what the
// install operation would do given the current state.
func DescribeInstallAction(existingHook, chain, force bool) string {
	if !existingHook {
		return "would install"
	}
	switch {
	case force:
		return "would overwrite existing hook"
	case chain:
		return "would backup and chain existing hook"
	default:
		return "would fail (hook exists, use --chain or --force)"
	}
}

// DescribeUninstallAction returns a human-readable description of what the
// uninstall operation would do given the current state.
func DescribeUninstallAction(installed, hasBackup bool) string {
	switch {
	case !installed:
		return "no overlyx hook installed"
	case hasBackup:
		return "would remove and restore backup"
	default:
		return "would remove"
	}
}
