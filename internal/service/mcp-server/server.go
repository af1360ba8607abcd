package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"jira_adapter/internal/service/jira"
)

// NewServer creates a new MCP server instance wired to the given adapter
func NewServer(adapter *jira.Adapter) (*server.MCPServer, error) {
	// Create MCP server
	s := server.NewMCPServer(
		"Jira Adapter MCP Server",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithPromptCapabilities(true),
		server.WithInstructions("A jira adapter server to list, create, update, and change status from slash jira"),
	)

	// Add Jira tools and prompts
	if err := registerJiraTools(s, adapter); err != nil {
		return nil, err
	}
	registerJiraPrompts(s)

	return s, nil
}

// Serve starts the MCP server on the stdio transport
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
