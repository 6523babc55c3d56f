// Package jira wraps the Jira REST client with the operation surface the
// CLI exposes: issue lookup, creation, search, comments, transitions and
// the current user's worklist.
package jira

import (
	"fmt"
	"strings"

	gojira "github.com/andygrunwald/go-jira"
)

// Client wraps a go-jira client authenticated with basic auth (email +
// API token).
type Client struct {
	api *gojira.Client
}

// New builds a client for the given Jira server.
func New(serverURL, email, apiToken string) (*Client, error) {
	tp := gojira.BasicAuthTransport{
		Username: email,
		Password: apiToken,
	}
	api, err := gojira.NewClient(tp.Client(), serverURL)
	if err != nil {
		return nil, fmt.Errorf("jira client: %w", err)
	}
	return &Client{api: api}, nil
}

// Issue fetches an issue by key.
func (c *Client) Issue(key string) (*gojira.Issue, error) {
	issue, _, err := c.api.Issue.Get(key, nil)
	if err != nil {
		return nil, fmt.Errorf("get issue %s: %w", key, err)
	}
	return issue, nil
}

// Create creates a new issue. issueType defaults to "Task".
func (c *Client) Create(projectKey, summary, description, issueType string) (*gojira.Issue, error) {
	if issueType == "" {
		issueType = "Task"
	}
	issue := &gojira.Issue{
		Fields: &gojira.IssueFields{
			Project:     gojira.Project{Key: projectKey},
			Summary:     summary,
			Description: description,
			Type:        gojira.IssueType{Name: issueType},
		},
	}
	created, _, err := c.api.Issue.Create(issue)
	if err != nil {
		return nil, fmt.Errorf("create issue: %w", err)
	}
	return created, nil
}

// Search runs a JQL query.
func (c *Client) Search(jql string) ([]gojira.Issue, error) {
	issues, _, err := c.api.Issue.Search(jql, &gojira.SearchOptions{MaxResults: 100})
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", jql, err)
	}
	return issues, nil
}

// AddComment adds a comment to an issue.
func (c *Client) AddComment(key, body string) (*gojira.Comment, error) {
	comment, _, err := c.api.Issue.AddComment(key, &gojira.Comment{Body: body})
	if err != nil {
		return nil, fmt.Errorf("comment on %s: %w", key, err)
	}
	return comment, nil
}

// MyIssues returns issues assigned to the authenticated user, optionally
// filtered by status and priority.
func (c *Client) MyIssues(status, priority string) ([]gojira.Issue, error) {
	return c.Search(myIssuesJQL(status, priority))
}

// Overdue returns the current user's overdue, unresolved issues.
func (c *Client) Overdue() ([]gojira.Issue, error) {
	return c.Search("assignee = currentUser() AND duedate < now() AND status not in (Closed, Done, Resolved)")
}

// SprintIssues returns all issues in the project's open sprints.
func (c *Client) SprintIssues(projectKey string) ([]gojira.Issue, error) {
	return c.Search(fmt.Sprintf("project = %s AND sprint in openSprints()", projectKey))
}

// Related returns issues linked to the given issue, in either direction.
func (c *Client) Related(key string) ([]gojira.Issue, error) {
	issue, err := c.Issue(key)
	if err != nil {
		return nil, err
	}
	var related []gojira.Issue
	for _, link := range issue.Fields.IssueLinks {
		if link.OutwardIssue != nil {
			related = append(related, *link.OutwardIssue)
		} else if link.InwardIssue != nil {
			related = append(related, *link.InwardIssue)
		}
	}
	return related, nil
}

// TransitionTo moves an issue to the named status. The match against the
// available transitions is case-insensitive. Returns false with no error
// when no transition leads to that status.
func (c *Client) TransitionTo(key, status string) (bool, error) {
	transitions, _, err := c.api.Issue.GetTransitions(key)
	if err != nil {
		return false, fmt.Errorf("transitions for %s: %w", key, err)
	}
	for _, t := range transitions {
		if strings.EqualFold(t.Name, status) {
			if _, err := c.api.Issue.DoTransition(key, t.ID); err != nil {
				return false, fmt.Errorf("transition %s to %s: %w", key, status, err)
			}
			return true, nil
		}
	}
	return false, nil
}

// UpdateDescription replaces an issue's description. Literal `\n`
// sequences in the input become real newlines, matching the CLI
// convention for multi-line flags.
func (c *Client) UpdateDescription(key, description string) error {
	fields := map[string]any{
		"fields": map[string]any{
			"description": Unescape(description),
		},
	}
	if _, err := c.api.Issue.UpdateIssue(key, fields); err != nil {
		return fmt.Errorf("update description of %s: %w", key, err)
	}
	return nil
}

// Unescape turns literal `\n` sequences into newlines.
func Unescape(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
