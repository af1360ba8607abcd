package model

import "strings"

// JiraIssue represents a Jira issue response
type JiraIssue struct {
	Key    string     `json:"key"`
	Fields JiraFields `json:"fields"`
}

// JiraFields represents the fields in a Jira issue. The same shape is used
// for create/update request bodies, so response-only and request-only
// members are pointers with omitempty.
type JiraFields struct {
	Summary     string         `json:"summary"`
	Description *ADFDocument   `json:"description,omitempty"`
	Status      *JiraStatus    `json:"status,omitempty"`
	Assignee    *JiraUser      `json:"assignee,omitempty"`
	Project     *JiraProject   `json:"project,omitempty"`
	IssueType   *JiraIssueType `json:"issuetype,omitempty"`
}

// JiraStatus represents the status of a Jira issue
type JiraStatus struct {
	Name string `json:"name"`
}

// JiraUser represents a Jira user
type JiraUser struct {
	DisplayName string `json:"displayName"`
}

// JiraProject references a project by key
type JiraProject struct {
	Key string `json:"key"`
}

// JiraIssueType references an issue type by name
type JiraIssueType struct {
	Name string `json:"name"`
}

// JiraSearchResponse represents the response from a Jira search
type JiraSearchResponse struct {
	StartAt    int         `json:"startAt"`
	MaxResults int         `json:"maxResults"`
	Total      int         `json:"total"`
	Issues     []JiraIssue `json:"issues"`
}

// JiraCreatedIssue represents the body returned by issue creation
type JiraCreatedIssue struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`
}

// JiraTransition represents one available workflow transition
type JiraTransition struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// JiraTransitionsResponse represents the body of a transitions listing
type JiraTransitionsResponse struct {
	Transitions []JiraTransition `json:"transitions"`
}

// JiraIssuePayload is the request body for issue create/update
type JiraIssuePayload struct {
	Fields JiraFields `json:"fields"`
}

// JiraTransitionPayload is the request body for applying a transition
type JiraTransitionPayload struct {
	Transition JiraTransitionID `json:"transition"`
}

// JiraTransitionID references a transition by id
type JiraTransitionID struct {
	ID string `json:"id"`
}

// JiraCommentPayload is the request body for adding a comment
type JiraCommentPayload struct {
	Body *ADFDocument `json:"body"`
}

// ADFDocument is an Atlassian Document Format rich-text value as used by
// the v3 REST API for descriptions and comments.
type ADFDocument struct {
	Type    string    `json:"type"`
	Version int       `json:"version"`
	Content []ADFNode `json:"content"`
}

// ADFNode is a single node in an ADF document tree.
type ADFNode struct {
	Type    string    `json:"type"`
	Text    string    `json:"text,omitempty"`
	Content []ADFNode `json:"content,omitempty"`
}

// NewADFDocument wraps plain text in the single-paragraph, single-run
// document shape expected for rich-text fields.
func NewADFDocument(text string) *ADFDocument {
	return &ADFDocument{
		Type:    "doc",
		Version: 1,
		Content: []ADFNode{
			{
				Type: "paragraph",
				Content: []ADFNode{
					{Type: "text", Text: text},
				},
			},
		},
	}
}

// PlainText flattens the document back to its concatenated text runs.
func (d *ADFDocument) PlainText() string {
	if d == nil {
		return ""
	}
	var sb strings.Builder
	for _, node := range d.Content {
		collectText(&sb, node)
	}
	return sb.String()
}

func collectText(sb *strings.Builder, node ADFNode) {
	if node.Text != "" {
		sb.WriteString(node.Text)
	}
	for _, child := range node.Content {
		collectText(sb, child)
	}
}
