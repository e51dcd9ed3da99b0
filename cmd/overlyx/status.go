// Package main provides the entry point for the overlyx CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/overlyx/overlyx/internal/config"
	"github.com/overlyx/overlyx/internal/git"
	"github.com/overlyx/overlyx/internal/output"
)

// statusResult holds the data for status output.
type statusResult struct {
	Repo          string   `json:"repo"`
	Branch        string   `json:"branch"`
	TexDir        string   `json:"tex_dir"`
	TexDirExists  bool     `json:"tex_dir_exists"`
	RootDocument  string   `json:"root_document"`
	RootPresent   bool     `json:"root_present"`
	Documents     []string `json:"documents"`
	Sentinel      bool     `json:"sentinel"`
	HooksDisabled bool     `json:"hooks_disabled"`
}

// newStatusCmd creates the status command.
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show repository and sync state",
		Long: `Show the current state of the repository and the sync setup.

Displays repository info, the tex directory, the document inventory, and
the filesystem flags (pre-commit sentinel, post-merge disable flag).

Examples:
  overlyx status          # Show human-readable status
  overlyx status --json   # Output status as JSON for scripting`,
		RunE: runStatus,
	}
}

// runStatus executes the status command.
func runStatus(cmd *cobra.Command, _ []string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout()))

	if !git.IsRepo() {
		err := output.NewSystemError("not in a git repository")
		printer.Error(err)
		return err
	}

	result, err := gatherStatus()
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}

	printHumanStatus(printer, result)
	return nil
}

// gatherStatus collects status information.
func gatherStatus() (*statusResult, error) {
	root, err := git.RepoRoot()
	if err != nil {
		return nil, err
	}

	branch, err := git.CurrentBranch()
	if err != nil {
		branch = "(unknown)"
	}

	p, err := repoPipeline()
	if err != nil {
		return nil, err
	}

	result := &statusResult{
		Repo:          filepath.Base(root),
		Branch:        branch,
		TexDir:        p.Dir(),
		RootDocument:  p.Config().RootDocument,
		Sentinel:      p.SentinelExists(),
		HooksDisabled: config.HooksDisabled(),
	}

	if info, statErr := os.Stat(p.Dir()); statErr == nil && info.IsDir() {
		result.TexDirExists = true
		docs, docsErr := p.Documents()
		if docsErr != nil {
			return nil, docsErr
		}
		for _, doc := range docs {
			name := filepath.Base(doc)
			result.Documents = append(result.Documents, name)
			if name == result.RootDocument {
				result.RootPresent = true
			}
		}
	}

	return result, nil
}

// printHumanStatus outputs status in human-readable format.
func printHumanStatus(printer *output.Printer, result *statusResult) {
	printer.Section("Repository")
	printer.KeyValue("Repo", result.Repo)
	printer.KeyValue("Branch", result.Branch)

	printer.Section("Documents")
	texDir := result.TexDir
	if !result.TexDirExists {
		texDir += " (missing)"
	}
	printer.KeyValue("Tex directory", texDir)
	rootDoc := result.RootDocument
	if !result.RootPresent {
		rootDoc += " (not found)"
	}
	printer.KeyValue("Root document", rootDoc)
	printer.KeyValue("Documents", fmt.Sprintf("%d", len(result.Documents)))
	for _, name := range result.Documents {
		printer.Println("  " + name)
	}

	printer.Section("Flags")
	printer.KeyValue("Sentinel ("+filepath.Join(result.TexDir, ".commit")+")", boolWord(result.Sentinel, "present", "absent"))
	printer.KeyValue("Post-merge disabled", boolWord(result.HooksDisabled, "yes", "no"))
}

// boolWord picks a word for a boolean.
func boolWord(b bool, yes, no string) string {
	if b {
		return yes
	}
	return no
}
