// File: mcpserver/server.go
package mcpserver

import (
	"huddle/config"

	"github.com/mark3labs/mcp-go/server"
)

// New builds the MCP server that fronts the coordination API for
// assistant runtimes. The tools are a stateless translation layer;
// a member's API key travels with each call.
func New(version string) *server.MCPServer {
	s := server.NewMCPServer("huddle", version,
		server.WithToolCapabilities(true),
	)

	c := newAPIClient(config.AppConfig.APIURL, config.AppConfig.MCPAPIKey)
	registerCalendarTools(s, c)
	registerBrainTools(s, c)
	return s
}
