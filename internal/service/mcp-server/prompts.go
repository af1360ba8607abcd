package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// registerJiraPrompts registers reusable prompt templates with the server
func registerJiraPrompts(s *server.MCPServer) {
	summarizePrompt := mcp.NewPrompt("summarize_ticket",
		mcp.WithPromptDescription("Prompt for summarizing a Jira ticket"),
		mcp.WithArgument("ticket_key",
			mcp.ArgumentDescription("Key of the ticket to summarize (e.g., 'PROJ-123')"),
			mcp.RequiredArgument(),
		),
	)

	templatePrompt := mcp.NewPrompt("create_ticket_template",
		mcp.WithPromptDescription("Template for creating well-structured Jira tickets"),
	)

	analyzePrompt := mcp.NewPrompt("analyze_ticket_comments",
		mcp.WithPromptDescription("Prompt for analyzing the discussion on a Jira ticket"),
		mcp.WithArgument("ticket_key",
			mcp.ArgumentDescription("Key of the ticket whose comments to analyze"),
			mcp.RequiredArgument(),
		),
	)

	s.AddPrompt(summarizePrompt, handleSummarizeTicket)
	s.AddPrompt(templatePrompt, handleCreateTicketTemplate)
	s.AddPrompt(analyzePrompt, handleAnalyzeTicketComments)
}

func handleSummarizeTicket(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	ticketKey := request.Params.Arguments["ticket_key"]
	if ticketKey == "" {
		return nil, fmt.Errorf("missing ticket_key argument")
	}

	text := fmt.Sprintf("Please summarize the key details of Jira ticket %s, including status, priority, and main issues.", ticketKey)
	return promptResult("Summarize a Jira ticket", text), nil
}

func handleCreateTicketTemplate(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	text := "Create a Jira ticket with the following structure:\n- Clear title\n- Detailed description\n- Acceptance criteria\n- Priority level"
	return promptResult("Structure for a new Jira ticket", text), nil
}

func handleAnalyzeTicketComments(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	ticketKey := request.Params.Arguments["ticket_key"]
	if ticketKey == "" {
		return nil, fmt.Errorf("missing ticket_key argument")
	}

	text := fmt.Sprintf("Analyze the comments and discussions in Jira ticket %s. Identify key decisions, blockers, and action items.", ticketKey)
	return promptResult("Analyze ticket discussion", text), nil
}

func promptResult(description, text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Description: description,
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.TextContent{Type: "text", Text: text},
			},
		},
	}
}
