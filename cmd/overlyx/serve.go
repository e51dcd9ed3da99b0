// Package main provides the entry point for the overlyx CLI.
package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	overlyxmcp "github.com/overlyx/overlyx/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run overlyx as a Model Context Protocol (MCP) server over stdio.

This exposes the sync pipeline as MCP tools that any MCP-capable agent
environment can use (Claude Code, Cursor, Windsurf, Gemini CLI, etc).

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "overlyx": {
        "command": "overlyx",
        "args": ["serve"]
      }
    }
  }

Available tools: status, export`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := repoPipeline()
			if err != nil {
				return err
			}
			server := overlyxmcp.NewServer(buildVersion(), p)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
