// Package git provides Git operations via exec for the overlyx CLI.
//
// This package wraps git commands by shelling out to the git executable,
// capturing stdout/stderr and translating failures into *output.ExitError
// values with appropriate exit codes. Pure Go git implementations are not
// used: hooks run inside git's own lifecycle, so the git binary is always
// present, and exec keeps behavior identical to what the user sees.
//
// Common operations:
//
//	git.IsRepo()        // Check if current directory is a git repository
//	git.RepoRoot()      // Get the root directory of the repository
//	git.HooksPath()     // Get core.hooksPath if configured
//	git.IsMerging()     // Check for an in-progress merge
//
// For custom git commands, use Run or RunContext:
//
//	out, err := git.Run("status", "--porcelain")
//	out, err := git.RunContext(ctx, "config", "--get", "core.hooksPath")
//
// All errors are wrapped with exit codes: ExitSystemError (2) for git
// failures such as git missing from PATH or a command exiting non-zero.
package git
