package mcp

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/overlyx/overlyx/internal/config"
	"github.com/overlyx/overlyx/internal/pipeline"
)

// --- Status tool ---

// StatusInput is the input for the status tool (no parameters needed).
type StatusInput struct{}

// StatusOutput is the output for the status tool.
type StatusOutput struct {
	TexDir        string   `json:"tex_dir"        jsonschema:"directory holding the documents"`
	RootDocument  string   `json:"root_document"  jsonschema:"designated root document name"`
	Documents     []string `json:"documents"      jsonschema:"authoring documents present"`
	Sentinel      bool     `json:"sentinel"       jsonschema:"whether the pre-commit sentinel file exists"`
	HooksDisabled bool     `json:"hooks_disabled" jsonschema:"whether the post-merge disable flag is set"`
}

func handleStatus(p *pipeline.Pipeline) mcp.ToolHandlerFor[StatusInput, StatusOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ StatusInput) (*mcp.CallToolResult, StatusOutput, error) {
		docs, err := p.Documents()
		if err != nil {
			return nil, StatusOutput{}, fmt.Errorf("listing documents: %w", err)
		}

		names := make([]string, 0, len(docs))
		for _, doc := range docs {
			names = append(names, filepath.Base(doc))
		}

		out := StatusOutput{
			TexDir:        p.Dir(),
			RootDocument:  p.Config().RootDocument,
			Documents:     names,
			Sentinel:      p.SentinelExists(),
			HooksDisabled: config.HooksDisabled(),
		}
		return nil, out, nil
	}
}

// --- Export tool ---

// ExportInput is the input for the export tool.
type ExportInput struct {
	Document string `json:"document,omitempty" jsonschema:"document to export by file name; empty exports all"`
}

// DocResult is the per-document outcome.
type DocResult struct {
	Document string `json:"document"        jsonschema:"document file name"`
	Filtered bool   `json:"filtered"        jsonschema:"whether the body filter ran (root document only)"`
	Error    string `json:"error,omitempty" jsonschema:"export error, if any"`
}

// ExportOutput is the output for the export tool.
type ExportOutput struct {
	Results []DocResult `json:"results" jsonschema:"per-document outcomes"`
	Failed  int         `json:"failed"  jsonschema:"number of documents that failed to export"`
}

func handleExport(p *pipeline.Pipeline) mcp.ToolHandlerFor[ExportInput, ExportOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ExportInput) (*mcp.CallToolResult, ExportOutput, error) {
		var results []pipeline.Result
		if input.Document != "" {
			docPath := filepath.Join(p.Dir(), input.Document)
			res, _ := p.SyncDocument(ctx, docPath)
			results = []pipeline.Result{res}
		} else {
			var err error
			results, err = p.SyncAll(ctx)
			if err != nil {
				return nil, ExportOutput{}, fmt.Errorf("syncing documents: %w", err)
			}
		}

		out := ExportOutput{
			Results: make([]DocResult, 0, len(results)),
			Failed:  pipeline.Failed(results),
		}
		for _, res := range results {
			docRes := DocResult{Document: res.Document, Filtered: res.Filtered}
			if res.Err != nil {
				docRes.Error = res.Err.Error()
			}
			out.Results = append(out.Results, docRes)
		}
		return nil, out, nil
	}
}
