// File: cmd/mcp.go
package cmd

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"huddle/config"
	"huddle/mcpserver"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server on stdio",
		Long: `Starts a Model Context Protocol server over stdin/stdout exposing
the team calendar and brain tools to a connected assistant.

Set API_URL to the HTTP API base URL and MCP_API_KEY to the member's
relay API key. Tools also accept a per-call api_key argument.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.LoadConfig()
			if err := server.ServeStdio(mcpserver.New(version)); err != nil {
				return fmt.Errorf("MCP server stopped with error: %w", err)
			}
			return nil
		},
	}
}
