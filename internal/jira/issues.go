package jira

import (
	"fmt"
	"sort"
	"strings"
	"time"

	gojira "github.com/andygrunwald/go-jira"
)

// IssueDetails is the flattened view of an issue the CLI prints.
type IssueDetails struct {
	Key         string        `json:"key"`
	Summary     string        `json:"summary"`
	Description string        `json:"description"`
	Status      string        `json:"status"`
	Priority    string        `json:"priority,omitempty"`
	Assignee    string        `json:"assignee,omitempty"`
	Created     time.Time     `json:"created"`
	Updated     time.Time     `json:"updated"`
	Comments    []Comment     `json:"comments"`
	Components  []string      `json:"components"`
	Labels      []string      `json:"labels"`
	Linked      []LinkedIssue `json:"linked_issues"`
}

// Comment is one issue comment.
type Comment struct {
	Author string `json:"author"`
	Body   string `json:"body"`
}

// LinkedIssue is an outward link from an issue.
type LinkedIssue struct {
	Key  string `json:"key"`
	Type string `json:"type"`
}

// HistoryEntry is one field change from an issue's changelog.
type HistoryEntry struct {
	Date   string `json:"date"`
	Author string `json:"author"`
	Field  string `json:"field"`
	From   string `json:"from"`
	To     string `json:"to"`
}

// Metrics holds an issue's time-tracking figures.
type Metrics struct {
	TimeEstimateSeconds int       `json:"time_estimate_seconds"`
	TimeSpentSeconds    int       `json:"time_spent_seconds"`
	Created             time.Time `json:"created_date"`
	Updated             time.Time `json:"updated_date"`
	Resolved            time.Time `json:"resolution_date,omitempty"`
}

// IssueDetails fetches an issue and flattens it for display.
func (c *Client) IssueDetails(key string) (*IssueDetails, error) {
	issue, err := c.Issue(key)
	if err != nil {
		return nil, err
	}
	return flattenIssue(issue), nil
}

// History returns the issue's changelog as flat entries.
func (c *Client) History(key string) ([]HistoryEntry, error) {
	issue, _, err := c.api.Issue.Get(key, &gojira.GetQueryOptions{Expand: "changelog"})
	if err != nil {
		return nil, fmt.Errorf("changelog for %s: %w", key, err)
	}
	var history []HistoryEntry
	if issue.Changelog == nil {
		return history, nil
	}
	for _, h := range issue.Changelog.Histories {
		for _, item := range h.Items {
			history = append(history, HistoryEntry{
				Date:   h.Created,
				Author: h.Author.DisplayName,
				Field:  item.Field,
				From:   item.FromString,
				To:     item.ToString,
			})
		}
	}
	return history, nil
}

// Metrics returns time-tracking figures for an issue.
func (c *Client) Metrics(key string) (*Metrics, error) {
	issue, err := c.Issue(key)
	if err != nil {
		return nil, err
	}
	return &Metrics{
		TimeEstimateSeconds: issue.Fields.TimeEstimate,
		TimeSpentSeconds:    issue.Fields.TimeSpent,
		Created:             time.Time(issue.Fields.Created),
		Updated:             time.Time(issue.Fields.Updated),
		Resolved:            time.Time(issue.Fields.Resolutiondate),
	}, nil
}

func flattenIssue(issue *gojira.Issue) *IssueDetails {
	f := issue.Fields
	d := &IssueDetails{
		Key:         issue.Key,
		Summary:     f.Summary,
		Description: f.Description,
		Created:     time.Time(f.Created),
		Updated:     time.Time(f.Updated),
		Labels:      f.Labels,
	}
	if f.Status != nil {
		d.Status = f.Status.Name
	}
	if f.Priority != nil {
		d.Priority = f.Priority.Name
	}
	if f.Assignee != nil {
		d.Assignee = f.Assignee.DisplayName
	}
	if f.Comments != nil {
		for _, comment := range f.Comments.Comments {
			d.Comments = append(d.Comments, Comment{
				Author: comment.Author.DisplayName,
				Body:   comment.Body,
			})
		}
	}
	for _, component := range f.Components {
		d.Components = append(d.Components, component.Name)
	}
	for _, link := range f.IssueLinks {
		if link.OutwardIssue != nil {
			d.Linked = append(d.Linked, LinkedIssue{
				Key:  link.OutwardIssue.Key,
				Type: link.Type.Name,
			})
		}
	}
	return d
}

// myIssuesJQL builds the worklist query for the authenticated user.
func myIssuesJQL(status, priority string) string {
	jql := "assignee = currentUser()"
	if status != "" {
		jql += fmt.Sprintf(" AND status = '%s'", status)
	}
	if priority != "" {
		jql += fmt.Sprintf(" AND priority = '%s'", priority)
	}
	return jql
}

// closedStatuses are excluded from the worklist view.
var closedStatuses = map[string]bool{
	"done":      true,
	"completed": true,
	"closed":    true,
	"resolved":  true,
}

// FilterOpen drops issues whose status marks them finished.
func FilterOpen(issues []gojira.Issue) []gojira.Issue {
	var open []gojira.Issue
	for _, issue := range issues {
		if issue.Fields == nil || issue.Fields.Status == nil {
			open = append(open, issue)
			continue
		}
		if !closedStatuses[strings.ToLower(issue.Fields.Status.Name)] {
			open = append(open, issue)
		}
	}
	return open
}

// SortByCreated orders issues by creation date, oldest first.
func SortByCreated(issues []gojira.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		return time.Time(issues[i].Fields.Created).Before(time.Time(issues[j].Fields.Created))
	})
}
