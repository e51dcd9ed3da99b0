// Package main provides the entry point for the overlyx CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/overlyx/overlyx/internal/git"
	"github.com/overlyx/overlyx/internal/output"
)

// checkStatus represents the result of a health check.
type checkStatus string

const (
	checkPass checkStatus = "pass"
	checkWarn checkStatus = "warn"
	checkFail checkStatus = "fail"
)

// checkResult holds the result of a single health check.
type checkResult struct {
	Name    string      `json:"name"`
	Status  checkStatus `json:"status"`
	Message string      `json:"message"`
	Hint    string      `json:"hint,omitempty"`
}

// doctorResult holds all check results organized by category.
type doctorResult struct {
	Version string        `json:"version"`
	Core    []checkResult `json:"core"`
	Hooks   []checkResult `json:"hooks"`
	Home    []checkResult `json:"home"`
	Summary doctorSummary `json:"summary"`
}

// doctorSummary holds the counts of check results.
type doctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Failed   int `json:"failed"`
}

// newDoctorCmd creates the doctor command.
func newDoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check installation health and suggest fixes",
		Long: `Check overlyx installation health and suggest fixes.

Runs a series of health checks across three categories:
  CORE   - Git repository, LyX binary, tex directory
  HOOKS  - Installation status of the overlyx git hooks
  HOME   - The overlyx home directory and delegated post-merge script

Each check reports:
  Pass    - Check passed successfully
  Warning - Non-critical issue found
  Fail    - Critical issue that needs attention

Examples:
  overlyx doctor           # Run all health checks
  overlyx doctor --quiet   # Only show failures and warnings
  overlyx doctor --json    # Output results as JSON`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, quiet)
		},
	}

	cmd.Flags().BoolVar(&quiet, "quiet", false, "Only show failures and warnings")

	return cmd
}

// runDoctor executes the doctor command.
func runDoctor(cmd *cobra.Command, quiet bool) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout()))

	if !git.IsRepo() {
		err := output.NewSystemError("not in a git repository")
		printer.Error(err)
		return err
	}

	result := &doctorResult{
		Version: buildVersion(),
		Core:    runCoreChecks(),
		Hooks:   runHookChecks(),
		Home:    runHomeChecks(),
	}
	result.Summary = summarize(result)

	if printer.IsJSON() {
		if err := printer.WriteJSON(result); err != nil {
			return err
		}
	} else {
		printHumanDoctor(printer, result, quiet)
	}

	if result.Summary.Failed > 0 {
		return output.NewSystemError("doctor found failing checks")
	}
	return nil
}

// summarize counts check outcomes across all categories.
func summarize(result *doctorResult) doctorSummary {
	summary := doctorSummary{}
	for _, checks := range [][]checkResult{result.Core, result.Hooks, result.Home} {
		for _, check := range checks {
			switch check.Status {
			case checkPass:
				summary.Passed++
			case checkWarn:
				summary.Warnings++
			case checkFail:
				summary.Failed++
			}
		}
	}
	return summary
}

// printHumanDoctor outputs the checks in human-readable format.
func printHumanDoctor(printer *output.Printer, result *doctorResult, quiet bool) {
	categories := []struct {
		title  string
		checks []checkResult
	}{
		{"Core", result.Core},
		{"Hooks", result.Hooks},
		{"Home", result.Home},
	}

	for _, category := range categories {
		shown := 0
		for _, check := range category.checks {
			if quiet && check.Status == checkPass {
				continue
			}
			if shown == 0 {
				printer.Section(category.title)
			}
			shown++
			printer.KeyValue(check.Name, string(check.Status)+" - "+check.Message)
			if check.Hint != "" {
				printer.Println("    hint: " + check.Hint)
			}
		}
	}

	printer.Section("Summary")
	printer.Print("%d passed, %d warnings, %d failed\n",
		result.Summary.Passed, result.Summary.Warnings, result.Summary.Failed)
}

// check builds a checkResult.
func check(name string, status checkStatus, message, hint string) checkResult {
	return checkResult{Name: name, Status: status, Message: message, Hint: hint}
}

// statOK reports whether a path exists.
func statOK(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
