package main

import (
	"fmt"
	"time"

	gojira "github.com/andygrunwald/go-jira"
	"github.com/spf13/cobra"

	"github.com/joacominatel/trident/internal/jira"
)

var (
	jiraStatus    string
	jiraPriority  string
	jiraProject   string
	jiraSummary   string
	jiraDesc      string
	jiraIssueType string
)

var jiraCmd = &cobra.Command{
	Use:   "jira",
	Short: "Jira issue operations",
}

var jiraMyIssuesCmd = &cobra.Command{
	Use:   "my-issues",
	Short: "List your open issues, oldest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := jiraClient()
		if err != nil {
			return err
		}
		issues, err := client.MyIssues(jiraStatus, jiraPriority)
		if err != nil {
			return err
		}
		open := jira.FilterOpen(issues)
		jira.SortByCreated(open)
		for _, issue := range open {
			fmt.Printf("%s: %s\n", issue.Key, issue.Fields.Summary)
			fmt.Printf("Status: %s\n", issue.Fields.Status.Name)
			fmt.Printf("Created: %s\n", time.Time(issue.Fields.Created).Format(time.RFC3339))
			fmt.Println("---")
		}
		return nil
	},
}

var jiraGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Show full issue details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := jiraClient()
		if err != nil {
			return err
		}
		details, err := client.IssueDetails(args[0])
		if err != nil {
			return err
		}
		return printResult(details)
	},
}

var jiraOverdueCmd = &cobra.Command{
	Use:   "overdue",
	Short: "List your overdue issues",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := jiraClient()
		if err != nil {
			return err
		}
		issues, err := client.Overdue()
		if err != nil {
			return err
		}
		for _, issue := range issues {
			fmt.Printf("%s: %s (Due: %s)\n", issue.Key, issue.Fields.Summary, time.Time(issue.Fields.Duedate).Format("2006-01-02"))
		}
		return nil
	},
}

var jiraSprintCmd = &cobra.Command{
	Use:   "sprint",
	Short: "List issues in the project's open sprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		if jiraProject == "" {
			return fmt.Errorf("--project is required")
		}
		client, err := jiraClient()
		if err != nil {
			return err
		}
		issues, err := client.SprintIssues(jiraProject)
		if err != nil {
			return err
		}
		printIssueLines(issues)
		return nil
	},
}

var jiraRelatedCmd = &cobra.Command{
	Use:   "related KEY",
	Short: "List issues linked to an issue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := jiraClient()
		if err != nil {
			return err
		}
		issues, err := client.Related(args[0])
		if err != nil {
			return err
		}
		printIssueLines(issues)
		return nil
	},
}

var jiraCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an issue",
	RunE: func(cmd *cobra.Command, args []string) error {
		if jiraProject == "" || jiraSummary == "" || jiraDesc == "" {
			return fmt.Errorf("--project, --summary and --description are required")
		}
		client, err := jiraClient()
		if err != nil {
			return err
		}
		issue, err := client.Create(jiraProject, jiraSummary, jira.Unescape(jiraDesc), jiraIssueType)
		if err != nil {
			return err
		}
		fmt.Printf("Created issue: %s\n", issue.Key)
		return nil
	},
}

var jiraCommentCmd = &cobra.Command{
	Use:   "comment KEY TEXT",
	Short: "Add a comment to an issue (use \\n for newlines)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := jiraClient()
		if err != nil {
			return err
		}
		if _, err := client.AddComment(args[0], jira.Unescape(args[1])); err != nil {
			return err
		}
		fmt.Printf("Added comment to %s\n", args[0])
		return nil
	},
}

var jiraTransitionCmd = &cobra.Command{
	Use:   "transition KEY STATUS",
	Short: "Move an issue to a new status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := jiraClient()
		if err != nil {
			return err
		}
		moved, err := client.TransitionTo(args[0], args[1])
		if err != nil {
			return err
		}
		if !moved {
			return fmt.Errorf("no available transition leads to %q", args[1])
		}
		fmt.Printf("Updated %s to status: %s\n", args[0], args[1])
		return nil
	},
}

var jiraSetDescriptionCmd = &cobra.Command{
	Use:   "set-description KEY TEXT",
	Short: "Replace an issue's description (use \\n for newlines)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := jiraClient()
		if err != nil {
			return err
		}
		if err := client.UpdateDescription(args[0], args[1]); err != nil {
			return err
		}
		details, err := client.IssueDetails(args[0])
		if err != nil {
			return err
		}
		return printResult(details)
	},
}

var jiraHistoryCmd = &cobra.Command{
	Use:   "history KEY",
	Short: "Show an issue's change history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := jiraClient()
		if err != nil {
			return err
		}
		history, err := client.History(args[0])
		if err != nil {
			return err
		}
		return printResult(history)
	},
}

var jiraMetricsCmd = &cobra.Command{
	Use:   "metrics KEY",
	Short: "Show an issue's time-tracking metrics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := jiraClient()
		if err != nil {
			return err
		}
		metrics, err := client.Metrics(args[0])
		if err != nil {
			return err
		}
		return printResult(metrics)
	},
}

func jiraClient() (*jira.Client, error) {
	if err := cfg.Jira.Validate(); err != nil {
		return nil, err
	}
	return jira.New(cfg.Jira.URL, cfg.Jira.Email, cfg.Jira.APIToken)
}

func printIssueLines(issues []gojira.Issue) {
	for _, issue := range issues {
		fmt.Printf("%s: %s\n", issue.Key, issue.Fields.Summary)
	}
}

func init() {
	jiraMyIssuesCmd.Flags().StringVar(&jiraStatus, "status", "", "filter by status")
	jiraMyIssuesCmd.Flags().StringVar(&jiraPriority, "priority", "", "filter by priority")
	jiraSprintCmd.Flags().StringVar(&jiraProject, "project", "", "project key")
	jiraCreateCmd.Flags().StringVar(&jiraProject, "project", "", "project key")
	jiraCreateCmd.Flags().StringVar(&jiraSummary, "summary", "", "issue summary")
	jiraCreateCmd.Flags().StringVar(&jiraDesc, "description", "", "issue description")
	jiraCreateCmd.Flags().StringVar(&jiraIssueType, "type", "Task", "issue type")

	jiraCmd.AddCommand(
		jiraMyIssuesCmd,
		jiraGetCmd,
		jiraOverdueCmd,
		jiraSprintCmd,
		jiraRelatedCmd,
		jiraCreateCmd,
		jiraCommentCmd,
		jiraTransitionCmd,
		jiraSetDescriptionCmd,
		jiraHistoryCmd,
		jiraMetricsCmd,
	)
}
