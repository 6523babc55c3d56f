package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joacominatel/trident/internal/confluence"
)

var (
	confSpace  string
	confTitle  string
	confBody   string
	confParent string
	confLimit  int
)

var confluenceCmd = &cobra.Command{
	Use:     "confluence",
	Aliases: []string{"wiki"},
	Short:   "Confluence page operations",
}

var confGetCmd = &cobra.Command{
	Use:   "get PAGE_ID",
	Short: "Show a page with its body and version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := confluenceClient()
		if err != nil {
			return err
		}
		page, err := client.Page(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printResult(page)
	},
}

var confCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a page in your personal space",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := confluenceClient()
		if err != nil {
			return err
		}
		space := confSpace
		if space == "" {
			space = client.PersonalSpace()
		}
		if confTitle == "" || confBody == "" {
			return fmt.Errorf("--title and --body are required")
		}
		page, err := client.CreatePage(cmd.Context(), space, confTitle, confBody, confParent)
		if err != nil {
			return err
		}
		return printResult(page)
	},
}

var confUpdateCmd = &cobra.Command{
	Use:   "update PAGE_ID",
	Short: "Replace a page's title and body",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if confTitle == "" || confBody == "" {
			return fmt.Errorf("--title and --body are required")
		}
		client, err := confluenceClient()
		if err != nil {
			return err
		}
		page, err := client.UpdatePage(cmd.Context(), args[0], confTitle, confBody)
		if err != nil {
			return err
		}
		return printResult(page)
	},
}

var confDeleteCmd = &cobra.Command{
	Use:   "delete PAGE_ID",
	Short: "Delete a page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := confluenceClient()
		if err != nil {
			return err
		}
		if err := client.DeletePage(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted page %s\n", args[0])
		return nil
	},
}

var confChildrenCmd = &cobra.Command{
	Use:   "children PAGE_ID",
	Short: "List a page's child pages",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := confluenceClient()
		if err != nil {
			return err
		}
		children, err := client.Children(cmd.Context(), args[0], confLimit)
		if err != nil {
			return err
		}
		return printResult(children)
	},
}

var confSearchCmd = &cobra.Command{
	Use:   "search CQL",
	Short: "Search content with CQL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := confluenceClient()
		if err != nil {
			return err
		}
		results, err := client.Search(cmd.Context(), args[0], confLimit)
		if err != nil {
			return err
		}
		return printResult(results)
	},
}

var confSpaceContentCmd = &cobra.Command{
	Use:   "space-content SPACE_KEY",
	Short: "List pages in a space",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := confluenceClient()
		if err != nil {
			return err
		}
		pages, err := client.SpaceContent(cmd.Context(), args[0], confLimit)
		if err != nil {
			return err
		}
		return printResult(pages)
	},
}

var confCommentCmd = &cobra.Command{
	Use:   "comment PAGE_ID TEXT",
	Short: "Add a comment to a page",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := confluenceClient()
		if err != nil {
			return err
		}
		if _, err := client.AddComment(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Added comment to page %s\n", args[0])
		return nil
	},
}

var confCommentsCmd = &cobra.Command{
	Use:   "comments PAGE_ID",
	Short: "List a page's comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := confluenceClient()
		if err != nil {
			return err
		}
		comments, err := client.Comments(cmd.Context(), args[0], confLimit)
		if err != nil {
			return err
		}
		return printResult(comments)
	},
}

var confSpacesCmd = &cobra.Command{
	Use:   "spaces",
	Short: "List accessible spaces",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := confluenceClient()
		if err != nil {
			return err
		}
		spaces, err := client.Spaces(cmd.Context(), confLimit)
		if err != nil {
			return err
		}
		return printResult(spaces)
	},
}

var confAttachCmd = &cobra.Command{
	Use:   "attach PAGE_ID FILE",
	Short: "Attach a file to a page",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := confluenceClient()
		if err != nil {
			return err
		}
		if _, err := client.Attach(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Attached %s to page %s\n", args[1], args[0])
		return nil
	},
}

var confAttachmentsCmd = &cobra.Command{
	Use:   "attachments PAGE_ID",
	Short: "List a page's attachments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := confluenceClient()
		if err != nil {
			return err
		}
		attachments, err := client.Attachments(cmd.Context(), args[0], confLimit)
		if err != nil {
			return err
		}
		return printResult(attachments)
	},
}

func confluenceClient() (*confluence.Client, error) {
	if err := cfg.Confluence.Validate(); err != nil {
		return nil, err
	}
	return confluence.New(
		cfg.Confluence.URL,
		cfg.Confluence.Username,
		cfg.Confluence.APIToken,
		cfg.Confluence.PersonalSpace,
	)
}

func init() {
	confCreateCmd.Flags().StringVar(&confSpace, "space", "", "space key (defaults to the personal space)")
	confCreateCmd.Flags().StringVar(&confTitle, "title", "", "page title")
	confCreateCmd.Flags().StringVar(&confBody, "body", "", "page body in storage format")
	confCreateCmd.Flags().StringVar(&confParent, "parent", "", "parent page ID")
	confUpdateCmd.Flags().StringVar(&confTitle, "title", "", "new page title")
	confUpdateCmd.Flags().StringVar(&confBody, "body", "", "new page body in storage format")
	confluenceCmd.PersistentFlags().IntVar(&confLimit, "limit", 100, "maximum items for list operations")

	confluenceCmd.AddCommand(
		confGetCmd,
		confCreateCmd,
		confUpdateCmd,
		confDeleteCmd,
		confChildrenCmd,
		confSearchCmd,
		confSpaceContentCmd,
		confCommentCmd,
		confCommentsCmd,
		confSpacesCmd,
		confAttachCmd,
		confAttachmentsCmd,
	)
}
