package mcpclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// Client wraps an MCP stdio client talking to a spawned server process.
type Client struct {
	mcp *client.Client
}

// Dial starts serverCmd as an MCP stdio subprocess and performs the
// initialize handshake. The subprocess inherits the caller's environment.
// Close must be called to reap it.
func Dial(ctx context.Context, serverCmd string, args ...string) (*Client, error) {
	mcpClient, err := client.NewStdioMCPClient(serverCmd, []string{}, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP client: %v", err)
	}

	initRequest := mcp.InitializeRequest{}
	initRequest.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initRequest.Params.ClientInfo = mcp.Implementation{
		Name:    "jira-adapter-cli",
		Version: "1.0.0",
	}

	if _, err := mcpClient.Initialize(ctx, initRequest); err != nil {
		mcpClient.Close()
		return nil, fmt.Errorf("failed to initialize MCP client: %v", err)
	}

	return &Client{mcp: mcpClient}, nil
}

// ListTools returns the tools the server advertises
func (c *Client) ListTools(ctx context.Context) ([]mcp.Tool, error) {
	result, err := c.mcp.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, err
	}
	return result.Tools, nil
}

// CallTool invokes a tool by name and returns the text of its result
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	request := mcp.CallToolRequest{}
	request.Params.Name = name
	request.Params.Arguments = args

	result, err := c.mcp.CallTool(ctx, request)
	if err != nil {
		return "", err
	}
	return ResultText(result), nil
}

// GetPrompt renders a prompt template by name
func (c *Client) GetPrompt(ctx context.Context, name string, args map[string]string) (*mcp.GetPromptResult, error) {
	request := mcp.GetPromptRequest{}
	request.Params.Name = name
	request.Params.Arguments = args
	return c.mcp.GetPrompt(ctx, request)
}

// Close shuts down the server subprocess
func (c *Client) Close() error {
	return c.mcp.Close()
}

// ResultText extracts the text content of a tool result, falling back to
// indented JSON for anything else. An empty string means the result
// carried no content.
func ResultText(result *mcp.CallToolResult) string {
	for _, content := range result.Content {
		if textContent, ok := content.(mcp.TextContent); ok {
			return textContent.Text
		}
		jsonBytes, _ := json.MarshalIndent(content, "", "  ")
		return string(jsonBytes)
	}
	return ""
}
