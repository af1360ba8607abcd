package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"jira_adapter/internal/logger"
	"jira_adapter/internal/service/jira"
)

// jiraTools holds the adapter the tool handlers delegate to
type jiraTools struct {
	adapter *jira.Adapter
}

// registerJiraTools registers all Jira-related tools with the server
func registerJiraTools(s *server.MCPServer, adapter *jira.Adapter) error {
	t := &jiraTools{adapter: adapter}

	// Create ticket tool
	createTool := mcp.NewTool("create_jira_ticket",
		mcp.WithDescription("Create a new Jira ticket with a title and description"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Summary line for the new ticket"),
		),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("Detailed description for the new ticket"),
		),
	)

	// Update ticket tool
	updateTool := mcp.NewTool("update_jira_ticket",
		mcp.WithDescription("Update the title and description of an existing Jira ticket"),
		mcp.WithString("issue_key",
			mcp.Required(),
			mcp.Description("Jira issue key (e.g., 'PROJ-123')"),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("New summary line"),
		),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("New description"),
		),
	)

	// List tickets tool
	listTool := mcp.NewTool("list_jira_tickets",
		mcp.WithDescription("List Jira tickets visible to the configured account"),
		mcp.WithNumber("max_result",
			mcp.Required(),
			mcp.Description("Maximum number of tickets to return"),
		),
	)

	// List statuses tool
	listStatusesTool := mcp.NewTool("list_jira_statuses",
		mcp.WithDescription("List the statuses a Jira ticket can transition to"),
		mcp.WithString("ticket_no",
			mcp.Required(),
			mcp.Description("Jira issue key (e.g., 'PROJ-123')"),
		),
	)

	// Update status tool
	updateStatusTool := mcp.NewTool("update_jira_status",
		mcp.WithDescription("Move a Jira ticket to the named status"),
		mcp.WithString("ticket_no",
			mcp.Required(),
			mcp.Description("Jira issue key (e.g., 'PROJ-123')"),
		),
		mcp.WithString("status",
			mcp.Required(),
			mcp.Description("Target status name, matched exactly against the available transitions"),
		),
	)

	// Add comment tool
	addCommentTool := mcp.NewTool("add_comment_to_jira_ticket",
		mcp.WithDescription("Add a comment to a Jira ticket"),
		mcp.WithString("ticket_no",
			mcp.Required(),
			mcp.Description("Jira issue key (e.g., 'PROJ-123')"),
		),
		mcp.WithString("comment",
			mcp.Required(),
			mcp.Description("Comment text"),
		),
	)

	// Register tools with handlers
	s.AddTool(createTool, t.handleCreateTicket)
	s.AddTool(updateTool, t.handleUpdateTicket)
	s.AddTool(listTool, t.handleListTickets)
	s.AddTool(listStatusesTool, t.handleListStatuses)
	s.AddTool(updateStatusTool, t.handleUpdateStatus)
	s.AddTool(addCommentTool, t.handleAddComment)

	return nil
}

// emptyResult is the no-content result returned by operations whose
// failure contract is silence rather than an error string.
func emptyResult() *mcp.CallToolResult {
	return &mcp.CallToolResult{}
}

func (t *jiraTools) handleCreateTicket(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	title, ok := args["title"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid title parameter")
	}
	description, ok := args["description"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid description parameter")
	}

	msg, err := t.adapter.CreateTicket(ctx, title, description)
	if err != nil {
		logger.GetLogger().Warn("create ticket failed", zap.Error(err))
		return mcp.NewToolResultText(fmt.Sprintf("Error creating jira ticket: %v", err)), nil
	}
	return mcp.NewToolResultText(msg), nil
}

func (t *jiraTools) handleUpdateTicket(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	issueKey, ok := args["issue_key"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid issue_key parameter")
	}
	title, ok := args["title"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid title parameter")
	}
	description, ok := args["description"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid description parameter")
	}

	msg, err := t.adapter.UpdateTicket(ctx, issueKey, title, description)
	if err != nil {
		logger.GetLogger().Warn("update ticket failed", zap.String("issue_key", issueKey), zap.Error(err))
		return mcp.NewToolResultText(fmt.Sprintf("Error updating jira ticket: %v", err)), nil
	}
	return mcp.NewToolResultText(msg), nil
}

func (t *jiraTools) handleListTickets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	maxResult, ok := request.GetArguments()["max_result"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid max_result parameter")
	}

	issues, err := t.adapter.ListTickets(ctx, int(maxResult))
	if err != nil {
		logger.GetLogger().Warn("list tickets failed", zap.Error(err))
		return emptyResult(), nil
	}

	// convert result to json string
	jsonResult, err := json.Marshal(issues)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %v", err)
	}
	return mcp.NewToolResultText(string(jsonResult)), nil
}

func (t *jiraTools) handleListStatuses(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ticketNo, ok := request.GetArguments()["ticket_no"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid ticket_no parameter")
	}

	transitions, err := t.adapter.GetTransitions(ctx, ticketNo)
	if err != nil {
		logger.GetLogger().Warn("list statuses failed", zap.String("ticket_no", ticketNo), zap.Error(err))
		return emptyResult(), nil
	}

	// convert result to json string
	jsonResult, err := json.Marshal(transitions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %v", err)
	}
	return mcp.NewToolResultText(string(jsonResult)), nil
}

func (t *jiraTools) handleUpdateStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	ticketNo, ok := args["ticket_no"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid ticket_no parameter")
	}
	status, ok := args["status"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid status parameter")
	}

	transitions, err := t.adapter.GetTransitions(ctx, ticketNo)
	if err != nil {
		logger.GetLogger().Warn("get transitions failed", zap.String("ticket_no", ticketNo), zap.Error(err))
		return emptyResult(), nil
	}

	// Exact, case-sensitive match; first match wins when names repeat.
	for _, transition := range transitions {
		if transition.Name != status {
			continue
		}
		msg, err := t.adapter.TransitionTicket(ctx, ticketNo, transition.ID)
		if err != nil {
			logger.GetLogger().Warn("transition ticket failed",
				zap.String("ticket_no", ticketNo),
				zap.String("transition_id", transition.ID),
				zap.Error(err))
			return emptyResult(), nil
		}
		return mcp.NewToolResultText(msg), nil
	}
	return mcp.NewToolResultText("Status is unknown"), nil
}

func (t *jiraTools) handleAddComment(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	ticketNo, ok := args["ticket_no"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid ticket_no parameter")
	}
	comment, ok := args["comment"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid comment parameter")
	}

	msg, err := t.adapter.AddComment(ctx, ticketNo, comment)
	if err != nil {
		logger.GetLogger().Warn("add comment failed", zap.String("ticket_no", ticketNo), zap.Error(err))
		return emptyResult(), nil
	}
	return mcp.NewToolResultText(msg), nil
}
