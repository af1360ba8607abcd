package jira

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"jira_adapter/internal/model"
)

func newTestAdapter(baseURL string) *Adapter {
	return NewAdapter(Config{
		BaseURL:    baseURL,
		ProjectKey: "TEST",
		Email:      "user@example.com",
		APIToken:   "token123",
	})
}

func TestNewAdapter(t *testing.T) {
	a := newTestAdapter("https://test.atlassian.net/rest/api/3")
	if a.cfg.ProjectKey != "TEST" {
		t.Errorf("ProjectKey = %q, want %q", a.cfg.ProjectKey, "TEST")
	}
	if a.httpClient == nil {
		t.Fatal("httpClient is nil")
	}
	if a.httpClient.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want %v", a.httpClient.Timeout, 30*time.Second)
	}
}

func TestBaseURL(t *testing.T) {
	got := BaseURL("test.atlassian.net")
	want := "https://test.atlassian.net/rest/api/3"
	if got != want {
		t.Errorf("BaseURL() = %q, want %q", got, want)
	}
}

func TestCreateTicketSuccess(t *testing.T) {
	var (
		method, path, user, pass string
		accept, contentType      string
		payload                  model.JiraIssuePayload
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		user, pass, _ = r.BasicAuth()
		accept = r.Header.Get("Accept")
		contentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decoding request payload: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(model.JiraCreatedIssue{ID: "10001", Key: "TEST-123"})
	}))
	defer ts.Close()

	msg, err := newTestAdapter(ts.URL).CreateTicket(context.Background(), "Fix login", "Users cannot log in")
	if err != nil {
		t.Fatalf("CreateTicket() error = %v", err)
	}
	if want := "ticket TEST-123 is successfully created"; msg != want {
		t.Errorf("CreateTicket() = %q, want %q", msg, want)
	}

	if method != http.MethodPost || path != "/issue" {
		t.Errorf("request = %s %s, want POST /issue", method, path)
	}
	if user != "user@example.com" || pass != "token123" {
		t.Errorf("basic auth = %q/%q, want configured credentials", user, pass)
	}
	if accept != "application/json" || contentType != "application/json" {
		t.Errorf("headers = Accept %q, Content-Type %q, want application/json", accept, contentType)
	}

	fields := payload.Fields
	if fields.Summary != "Fix login" {
		t.Errorf("payload summary = %q, want %q", fields.Summary, "Fix login")
	}
	if fields.Project == nil || fields.Project.Key != "TEST" {
		t.Errorf("payload project = %+v, want key TEST", fields.Project)
	}
	if fields.IssueType == nil || fields.IssueType.Name != "Task" {
		t.Errorf("payload issuetype = %+v, want Task", fields.IssueType)
	}
	if fields.Description == nil {
		t.Fatal("payload description missing")
	}
	if fields.Description.Type != "doc" || fields.Description.Version != 1 {
		t.Errorf("description envelope = %s v%d, want doc v1", fields.Description.Type, fields.Description.Version)
	}
	if got := fields.Description.PlainText(); got != "Users cannot log in" {
		t.Errorf("description text = %q, want %q", got, "Users cannot log in")
	}
}

func TestUpdateTicketSuccess(t *testing.T) {
	var (
		method, path string
		payload      model.JiraIssuePayload
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decoding request payload: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	msg, err := newTestAdapter(ts.URL).UpdateTicket(context.Background(), "TEST-123", "New title", "New description")
	if err != nil {
		t.Fatalf("UpdateTicket() error = %v", err)
	}
	if want := "ticket is successfully updated"; msg != want {
		t.Errorf("UpdateTicket() = %q, want %q", msg, want)
	}
	if method != http.MethodPut || path != "/issue/TEST-123" {
		t.Errorf("request = %s %s, want PUT /issue/TEST-123", method, path)
	}
	if payload.Fields.Project != nil || payload.Fields.IssueType != nil {
		t.Errorf("update payload carries create-only fields: %+v", payload.Fields)
	}
	if got := payload.Fields.Description.PlainText(); got != "New description" {
		t.Errorf("description text = %q, want %q", got, "New description")
	}
}

func TestListTicketsSuccess(t *testing.T) {
	var maxResults string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %q, want /search", r.URL.Path)
		}
		maxResults = r.URL.Query().Get("maxResults")
		json.NewEncoder(w).Encode(model.JiraSearchResponse{
			StartAt:    0,
			MaxResults: 2,
			Total:      2,
			Issues: []model.JiraIssue{
				{
					Key: "TEST-123",
					Fields: model.JiraFields{
						Summary:     "First issue",
						Description: model.NewADFDocument("First description"),
						Status:      &model.JiraStatus{Name: "To Do"},
					},
				},
				{
					Key: "TEST-124",
					Fields: model.JiraFields{
						Summary: "Second issue",
						Status:  &model.JiraStatus{Name: "In Progress"},
					},
				},
			},
		})
	}))
	defer ts.Close()

	issues, err := newTestAdapter(ts.URL).ListTickets(context.Background(), 2)
	if err != nil {
		t.Fatalf("ListTickets() error = %v", err)
	}
	if maxResults != "2" {
		t.Errorf("maxResults query = %q, want %q", maxResults, "2")
	}
	if len(issues) != 2 {
		t.Fatalf("len(issues) = %d, want 2", len(issues))
	}
	if issues[0].Key != "TEST-123" || issues[1].Key != "TEST-124" {
		t.Errorf("issue order = %s, %s; want TEST-123, TEST-124", issues[0].Key, issues[1].Key)
	}
	// Nested description structure survives the round trip for the caller
	// to navigate.
	if got := issues[0].Fields.Description.PlainText(); got != "First description" {
		t.Errorf("description text = %q, want %q", got, "First description")
	}
	if issues[1].Fields.Status.Name != "In Progress" {
		t.Errorf("status = %q, want %q", issues[1].Fields.Status.Name, "In Progress")
	}
}

func TestListTicketsIdempotent(t *testing.T) {
	requests := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		json.NewEncoder(w).Encode(model.JiraSearchResponse{
			Total: 1,
			Issues: []model.JiraIssue{
				{Key: "TEST-1", Fields: model.JiraFields{Summary: "Only issue"}},
			},
		})
	}))
	defer ts.Close()

	a := newTestAdapter(ts.URL)
	first, err := a.ListTickets(context.Background(), 5)
	if err != nil {
		t.Fatalf("first ListTickets() error = %v", err)
	}
	second, err := a.ListTickets(context.Background(), 5)
	if err != nil {
		t.Fatalf("second ListTickets() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ between identical calls: %+v vs %+v", first, second)
	}
	if requests != 2 {
		t.Errorf("requests = %d, want 2", requests)
	}
}

func TestGetTransitionsSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/issue/TEST-123/transitions" {
			t.Errorf("path = %q, want /issue/TEST-123/transitions", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Errorf("method = %q, want GET", r.Method)
		}
		json.NewEncoder(w).Encode(model.JiraTransitionsResponse{
			Transitions: []model.JiraTransition{
				{ID: "11", Name: "To Do"},
				{ID: "21", Name: "In Progress"},
				{ID: "31", Name: "Done"},
			},
		})
	}))
	defer ts.Close()

	transitions, err := newTestAdapter(ts.URL).GetTransitions(context.Background(), "TEST-123")
	if err != nil {
		t.Fatalf("GetTransitions() error = %v", err)
	}
	if len(transitions) != 3 {
		t.Fatalf("len(transitions) = %d, want 3", len(transitions))
	}
	if transitions[1].ID != "21" || transitions[1].Name != "In Progress" {
		t.Errorf("transitions[1] = %+v, want {21 In Progress}", transitions[1])
	}
}

func TestTransitionTicketSuccess(t *testing.T) {
	var (
		method, path string
		payload      model.JiraTransitionPayload
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decoding request payload: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	msg, err := newTestAdapter(ts.URL).TransitionTicket(context.Background(), "TEST-123", "21")
	if err != nil {
		t.Fatalf("TransitionTicket() error = %v", err)
	}
	if want := "Ticket status is successfully updated"; msg != want {
		t.Errorf("TransitionTicket() = %q, want %q", msg, want)
	}
	if method != http.MethodPost || path != "/issue/TEST-123/transitions" {
		t.Errorf("request = %s %s, want POST /issue/TEST-123/transitions", method, path)
	}
	if payload.Transition.ID != "21" {
		t.Errorf("transition id = %q, want %q", payload.Transition.ID, "21")
	}
}

func TestAddCommentSuccess(t *testing.T) {
	var (
		method, path string
		payload      model.JiraCommentPayload
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decoding request payload: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"id": "10500"})
	}))
	defer ts.Close()

	msg, err := newTestAdapter(ts.URL).AddComment(context.Background(), "TEST-123", "Looks good")
	if err != nil {
		t.Fatalf("AddComment() error = %v", err)
	}
	if want := "Comment is successfully added"; msg != want {
		t.Errorf("AddComment() = %q, want %q", msg, want)
	}
	if method != http.MethodPost || path != "/issue/TEST-123/comment" {
		t.Errorf("request = %s %s, want POST /issue/TEST-123/comment", method, path)
	}
	if payload.Body == nil || payload.Body.PlainText() != "Looks good" {
		t.Errorf("comment body = %+v, want ADF wrapping %q", payload.Body, "Looks good")
	}
}

func TestUnexpectedStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		opPhrase string
		call     func(a *Adapter) error
	}{
		{
			name:     "create",
			status:   http.StatusBadRequest,
			opPhrase: "creating ticket",
			call: func(a *Adapter) error {
				_, err := a.CreateTicket(context.Background(), "t", "d")
				return err
			},
		},
		{
			name:     "update",
			status:   http.StatusNotFound,
			opPhrase: "updating ticket",
			call: func(a *Adapter) error {
				_, err := a.UpdateTicket(context.Background(), "TEST-404", "t", "d")
				return err
			},
		},
		{
			name:     "list",
			status:   http.StatusUnauthorized,
			opPhrase: "listing tickets",
			call: func(a *Adapter) error {
				_, err := a.ListTickets(context.Background(), 10)
				return err
			},
		},
		{
			name:     "transitions",
			status:   http.StatusNotFound,
			opPhrase: "getting transitions",
			call: func(a *Adapter) error {
				_, err := a.GetTransitions(context.Background(), "TEST-404")
				return err
			},
		},
		{
			name:     "transition",
			status:   http.StatusBadRequest,
			opPhrase: "transitioning ticket",
			call: func(a *Adapter) error {
				_, err := a.TransitionTicket(context.Background(), "TEST-1", "99")
				return err
			},
		},
		{
			name:     "comment",
			status:   http.StatusBadRequest,
			opPhrase: "adding comment",
			call: func(a *Adapter) error {
				_, err := a.AddComment(context.Background(), "TEST-1", "c")
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte("boom"))
			}))
			defer ts.Close()

			err := tt.call(newTestAdapter(ts.URL))
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error type = %T, want *APIError", err)
			}
			if apiErr.Status != tt.status {
				t.Errorf("Status = %d, want %d", apiErr.Status, tt.status)
			}
			if apiErr.Body != "boom" {
				t.Errorf("Body = %q, want %q", apiErr.Body, "boom")
			}
			if !strings.Contains(err.Error(), tt.opPhrase) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.opPhrase)
			}
			if !strings.Contains(err.Error(), "boom") {
				t.Errorf("error %q does not carry the response body", err.Error())
			}
		})
	}
}

func TestTransportFailure(t *testing.T) {
	// Closed server: the request never yields a status code.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	_, err := newTestAdapter(ts.URL).ListTickets(context.Background(), 5)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Errorf("transport failure classified as *APIError: %v", err)
	}
	if !strings.Contains(err.Error(), "listing tickets") {
		t.Errorf("error %q does not mention the operation", err.Error())
	}
}
