package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"jira_adapter/internal/model"
)

// Config is the connection configuration for one Jira site. It is built
// once at adapter construction and never mutated afterwards.
type Config struct {
	BaseURL    string // Full REST base, e.g. https://example.atlassian.net/rest/api/3
	ProjectKey string // Project new tickets are created in
	Email      string // Basic-auth user
	APIToken   string // Basic-auth secret
}

// BaseURL maps a Jira Cloud domain to its v3 REST base URL.
func BaseURL(domain string) string {
	return fmt.Sprintf("https://%s/rest/api/3", domain)
}

// Adapter performs ticket operations against the Jira REST API. Every
// operation is one request, one status-code check, and one response
// transform; there are no retries and no per-call overrides.
type Adapter struct {
	cfg        Config
	httpClient *http.Client
}

// NewAdapter creates an adapter for the given connection configuration.
func NewAdapter(cfg Config) *Adapter {
	return &Adapter{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError reports a response whose status code is not the expected one
// for the operation. Body is the raw response text, unparsed.
type APIError struct {
	Op     string // operation phrase, e.g. "creating ticket"
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("error %s: status %d: %s", e.Op, e.Status, e.Body)
}

// CreateTicket creates a Task in the configured project and returns a
// confirmation containing the new issue key.
func (a *Adapter) CreateTicket(ctx context.Context, summary, description string) (string, error) {
	payload := model.JiraIssuePayload{
		Fields: model.JiraFields{
			Summary:     summary,
			Description: model.NewADFDocument(description),
			Project:     &model.JiraProject{Key: a.cfg.ProjectKey},
			IssueType:   &model.JiraIssueType{Name: "Task"},
		},
	}

	status, body, err := a.do(ctx, http.MethodPost, "/issue", payload)
	if err != nil {
		return "", fmt.Errorf("creating ticket: %w", err)
	}
	if status != http.StatusCreated {
		return "", &APIError{Op: "creating ticket", Status: status, Body: string(body)}
	}

	var created model.JiraCreatedIssue
	if err := json.Unmarshal(body, &created); err != nil {
		return "", fmt.Errorf("creating ticket: decoding response: %w", err)
	}
	return fmt.Sprintf("ticket %s is successfully created", created.Key), nil
}

// UpdateTicket replaces the summary and description of an existing issue.
func (a *Adapter) UpdateTicket(ctx context.Context, issueKey, summary, description string) (string, error) {
	payload := model.JiraIssuePayload{
		Fields: model.JiraFields{
			Summary:     summary,
			Description: model.NewADFDocument(description),
		},
	}

	status, body, err := a.do(ctx, http.MethodPut, "/issue/"+url.PathEscape(issueKey), payload)
	if err != nil {
		return "", fmt.Errorf("updating ticket: %w", err)
	}
	if status != http.StatusNoContent {
		return "", &APIError{Op: "updating ticket", Status: status, Body: string(body)}
	}
	return "ticket is successfully updated", nil
}

// ListTickets returns up to maxResults issues in the order the API sends
// them. Nested field structure is preserved for the caller to navigate.
func (a *Adapter) ListTickets(ctx context.Context, maxResults int) ([]model.JiraIssue, error) {
	status, body, err := a.do(ctx, http.MethodGet, "/search?maxResults="+strconv.Itoa(maxResults), nil)
	if err != nil {
		return nil, fmt.Errorf("listing tickets: %w", err)
	}
	if status != http.StatusOK {
		return nil, &APIError{Op: "listing tickets", Status: status, Body: string(body)}
	}

	var search model.JiraSearchResponse
	if err := json.Unmarshal(body, &search); err != nil {
		return nil, fmt.Errorf("listing tickets: decoding response: %w", err)
	}
	return search.Issues, nil
}

// GetTransitions returns the workflow transitions currently available for
// the issue.
func (a *Adapter) GetTransitions(ctx context.Context, issueKey string) ([]model.JiraTransition, error) {
	status, body, err := a.do(ctx, http.MethodGet, "/issue/"+url.PathEscape(issueKey)+"/transitions", nil)
	if err != nil {
		return nil, fmt.Errorf("getting transitions: %w", err)
	}
	if status != http.StatusOK {
		return nil, &APIError{Op: "getting transitions", Status: status, Body: string(body)}
	}

	var transitions model.JiraTransitionsResponse
	if err := json.Unmarshal(body, &transitions); err != nil {
		return nil, fmt.Errorf("getting transitions: decoding response: %w", err)
	}
	return transitions.Transitions, nil
}

// TransitionTicket applies the transition with the given id to the issue.
func (a *Adapter) TransitionTicket(ctx context.Context, issueKey, transitionID string) (string, error) {
	payload := model.JiraTransitionPayload{
		Transition: model.JiraTransitionID{ID: transitionID},
	}

	status, body, err := a.do(ctx, http.MethodPost, "/issue/"+url.PathEscape(issueKey)+"/transitions", payload)
	if err != nil {
		return "", fmt.Errorf("transitioning ticket: %w", err)
	}
	if status != http.StatusNoContent {
		return "", &APIError{Op: "transitioning ticket", Status: status, Body: string(body)}
	}
	return "Ticket status is successfully updated", nil
}

// AddComment appends a comment to the issue.
func (a *Adapter) AddComment(ctx context.Context, issueKey, comment string) (string, error) {
	payload := model.JiraCommentPayload{
		Body: model.NewADFDocument(comment),
	}

	status, body, err := a.do(ctx, http.MethodPost, "/issue/"+url.PathEscape(issueKey)+"/comment", payload)
	if err != nil {
		return "", fmt.Errorf("adding comment: %w", err)
	}
	if status != http.StatusCreated {
		return "", &APIError{Op: "adding comment", Status: status, Body: string(body)}
	}
	return "Comment is successfully added", nil
}

// do issues one request with the configured credentials and JSON headers
// and returns the status code and raw body.
func (a *Adapter) do(ctx context.Context, method, path string, payload any) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.cfg.BaseURL+path, body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(a.cfg.Email, a.cfg.APIToken)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, respBody, nil
}
