// Package main provides the entry point for the overlyx CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/overlyx/overlyx/internal/git"
	"github.com/overlyx/overlyx/internal/output"
	"github.com/overlyx/overlyx/internal/pipeline"
)

// newExportCmd creates the export command.
func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [document...]",
		Short: "Export documents to their LaTeX mirror",
		Long: `Export LyX documents to their LaTeX mirror files.

With no arguments, every authoring document in the tex directory is
exported. Document arguments are file names resolved against the tex
directory, or paths.

The root document's export is additionally filtered down to the body
between \begin{document} and \end{document}; other documents are left
exactly as the export tool wrote them.

Examples:
  overlyx export                # Export all documents
  overlyx export chapter1.lyx   # Export one document
  overlyx export --json         # Structured per-document results`,
		RunE: runExport,
	}
}

// runExport executes the export command.
func runExport(cmd *cobra.Command, args []string) error {
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

	results, err := exportDocuments(cmd, p, args)
	if err != nil {
		printer.Error(err)
		return err
	}

	return outputExportResults(printer, results)
}

// exportDocuments syncs the requested documents, or all of them.
func exportDocuments(cmd *cobra.Command, p *pipeline.Pipeline, args []string) ([]pipeline.Result, error) {
	if len(args) == 0 {
		return p.SyncAll(cmd.Context())
	}

	results := make([]pipeline.Result, 0, len(args))
	for _, arg := range args {
		docPath := arg
		if !filepath.IsAbs(docPath) {
			docPath = filepath.Join(p.Dir(), arg)
		}
		if _, statErr := os.Stat(docPath); statErr != nil {
			return nil, output.NewUserError("no such document: " + arg)
		}
		res, _ := p.SyncDocument(cmd.Context(), docPath)
		results = append(results, res)
	}
	return results, nil
}

// outputExportResults reports per-document outcomes and surfaces failures.
func outputExportResults(printer *output.Printer, results []pipeline.Result) error {
	failed := pipeline.Failed(results)

	if printer.IsJSON() {
		docs := make([]map[string]any, 0, len(results))
		for _, res := range results {
			doc := map[string]any{
				"document": res.Document,
				"filtered": res.Filtered,
			}
			if res.Err != nil {
				doc["error"] = res.Err.Error()
			}
			docs = append(docs, doc)
		}
		if err := printer.WriteJSON(map[string]any{
			"documents": docs,
			"failed":    failed,
		}); err != nil {
			return err
		}
	} else {
		for _, res := range results {
			switch {
			case res.Err != nil:
				printer.Warn("failed to export %s: %v", res.Document, res.Err)
			case res.Filtered:
				printer.Println("exported " + res.Document + " (filtered)")
			default:
				printer.Println("exported " + res.Document)
			}
		}
	}

	if failed > 0 {
		return output.NewSystemError(fmt.Sprintf("%d of %d documents failed to export", failed, len(results)))
	}
	return nil
}
