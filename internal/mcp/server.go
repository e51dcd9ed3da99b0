// Package mcp provides a Model Context Protocol server for overlyx.
// It exposes the sync pipeline as MCP tools so an agent environment can
// inspect and regenerate the LaTeX mirror without shelling out.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/overlyx/overlyx/internal/pipeline"
)

// NewServer creates an MCP server with all overlyx tools registered.
func NewServer(version string, p *pipeline.Pipeline) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "overlyx",
		Version: version,
	}, nil)
	registerTools(server, p)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for tools that regenerate files.
// Regeneration is idempotent: markup files are derived output.
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		IdempotentHint:  true,
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all overlyx tools to the server.
func registerTools(server *mcp.Server, p *pipeline.Pipeline) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "status",
		Description: "Show sync state: tex directory, documents, root document, sentinel and disable-flag files.",
		Annotations: readOnlyAnnotations(),
	}, handleStatus(p))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "export",
		Description: "Regenerate the LaTeX mirror for one document or all documents. The root document's output is filtered to its body.",
		Annotations: writeAnnotations(),
	}, handleExport(p))
}
