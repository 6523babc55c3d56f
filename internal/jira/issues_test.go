package jira

import (
	"testing"
	"time"

	gojira "github.com/andygrunwald/go-jira"
	"github.com/stretchr/testify/assert"
)

func issueWith(key, status string, created time.Time) gojira.Issue {
	return gojira.Issue{
		Key: key,
		Fields: &gojira.IssueFields{
			Status:  &gojira.Status{Name: status},
			Created: gojira.Time(created),
		},
	}
}

func TestMyIssuesJQL(t *testing.T) {
	assert.Equal(t, "assignee = currentUser()", myIssuesJQL("", ""))
	assert.Equal(t,
		"assignee = currentUser() AND status = 'In Progress'",
		myIssuesJQL("In Progress", ""))
	assert.Equal(t,
		"assignee = currentUser() AND status = 'To Do' AND priority = 'High'",
		myIssuesJQL("To Do", "High"))
}

func TestFilterOpen(t *testing.T) {
	now := time.Now()
	issues := []gojira.Issue{
		issueWith("CC-1", "In Progress", now),
		issueWith("CC-2", "Done", now),
		issueWith("CC-3", "CLOSED", now),
		issueWith("CC-4", "To Do", now),
		issueWith("CC-5", "Resolved", now),
		issueWith("CC-6", "Completed", now),
	}

	open := FilterOpen(issues)
	keys := make([]string, len(open))
	for i, issue := range open {
		keys[i] = issue.Key
	}
	assert.Equal(t, []string{"CC-1", "CC-4"}, keys)
}

func TestSortByCreated(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	issues := []gojira.Issue{
		issueWith("CC-3", "To Do", base.Add(48*time.Hour)),
		issueWith("CC-1", "To Do", base),
		issueWith("CC-2", "To Do", base.Add(24*time.Hour)),
	}

	SortByCreated(issues)

	assert.Equal(t, "CC-1", issues[0].Key)
	assert.Equal(t, "CC-2", issues[1].Key)
	assert.Equal(t, "CC-3", issues[2].Key)
}

func TestUnescape(t *testing.T) {
	assert.Equal(t, "line one\nline two", Unescape(`line one\nline two`))
	assert.Equal(t, "no escapes", Unescape("no escapes"))
}

func TestFlattenIssue(t *testing.T) {
	created := time.Date(2025, 5, 2, 9, 30, 0, 0, time.UTC)
	issue := &gojira.Issue{
		Key: "CC-42",
		Fields: &gojira.IssueFields{
			Summary:     "Ship the report",
			Description: "All of it",
			Status:      &gojira.Status{Name: "In Progress"},
			Priority:    &gojira.Priority{Name: "High"},
			Assignee:    &gojira.User{DisplayName: "Joaco"},
			Created:     gojira.Time(created),
			Labels:      []string{"reporting"},
			Components:  []*gojira.Component{{Name: "warehouse"}},
			Comments: &gojira.Comments{Comments: []*gojira.Comment{
				{Author: gojira.User{DisplayName: "Mina"}, Body: "on it"},
			}},
			IssueLinks: []*gojira.IssueLink{
				{
					Type:         gojira.IssueLinkType{Name: "Blocks"},
					OutwardIssue: &gojira.Issue{Key: "CC-43"},
				},
				{
					Type:        gojira.IssueLinkType{Name: "Relates"},
					InwardIssue: &gojira.Issue{Key: "CC-40"},
				},
			},
		},
	}

	d := flattenIssue(issue)
	assert.Equal(t, "CC-42", d.Key)
	assert.Equal(t, "In Progress", d.Status)
	assert.Equal(t, "High", d.Priority)
	assert.Equal(t, "Joaco", d.Assignee)
	assert.Equal(t, created, d.Created)
	assert.Equal(t, []string{"warehouse"}, d.Components)
	assert.Equal(t, []Comment{{Author: "Mina", Body: "on it"}}, d.Comments)
	// Only outward links are listed.
	assert.Equal(t, []LinkedIssue{{Key: "CC-43", Type: "Blocks"}}, d.Linked)
}
