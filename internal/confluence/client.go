// Package confluence wraps the Confluence REST client. Page creation is
// restricted to the user's personal space; everything else is read or
// update operations on existing content.
package confluence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	conf "github.com/ctreminiom/go-atlassian/v2/confluence"
	"github.com/ctreminiom/go-atlassian/v2/pkg/infra/models"
)

// pageExpand is what a full page fetch asks for.
var pageExpand = []string{"body.storage", "version", "space"}

// PersonalSpaceError is returned when a page creation targets a space
// other than the configured personal one.
type PersonalSpaceError struct {
	Requested string
	Personal  string
}

func (e *PersonalSpaceError) Error() string {
	return fmt.Sprintf("pages can only be created in your personal space (%s), not %s", e.Personal, e.Requested)
}

// Client wraps a go-atlassian Confluence client.
type Client struct {
	api           *conf.Client
	personalSpace string
}

// New builds a client. The personal space key is required because the
// creation guard depends on it.
func New(instanceURL, username, apiToken, personalSpace string) (*Client, error) {
	if personalSpace == "" {
		return nil, fmt.Errorf("CONFLUENCE_PERSONAL_SPACE is not set")
	}
	api, err := conf.New(nil, instanceURL)
	if err != nil {
		return nil, fmt.Errorf("confluence client: %w", err)
	}
	api.Auth.SetBasicAuth(username, apiToken)
	return &Client{api: api, personalSpace: personalSpace}, nil
}

// PersonalSpace returns the configured personal space key.
func (c *Client) PersonalSpace() string {
	return c.personalSpace
}

// Page fetches a page with its storage body, version and space.
func (c *Client) Page(ctx context.Context, pageID string) (*models.ContentScheme, error) {
	page, _, err := c.api.Content.Get(ctx, pageID, pageExpand, 0)
	if err != nil {
		return nil, fmt.Errorf("get page %s: %w", pageID, err)
	}
	return page, nil
}

// CreatePage creates a page in the personal space. Any other space is
// refused before the API is touched.
func (c *Client) CreatePage(ctx context.Context, spaceKey, title, body, parentID string) (*models.ContentScheme, error) {
	if spaceKey != c.personalSpace {
		return nil, &PersonalSpaceError{Requested: spaceKey, Personal: c.personalSpace}
	}
	payload := &models.ContentScheme{
		Type:  "page",
		Title: title,
		Space: &models.SpaceScheme{Key: spaceKey},
		Body: &models.BodyScheme{
			Storage: &models.BodyNodeScheme{
				Value:          body,
				Representation: "storage",
			},
		},
	}
	if parentID != "" {
		payload.Ancestors = []*models.ContentScheme{{ID: parentID}}
	}
	created, _, err := c.api.Content.Create(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("create page %q: %w", title, err)
	}
	return created, nil
}

// UpdatePage replaces a page's title and body, bumping the version from
// the current one.
func (c *Client) UpdatePage(ctx context.Context, pageID, title, body string) (*models.ContentScheme, error) {
	current, err := c.Page(ctx, pageID)
	if err != nil {
		return nil, err
	}
	version := 1
	if current.Version != nil {
		version = current.Version.Number + 1
	}
	payload := &models.ContentScheme{
		ID:    pageID,
		Type:  "page",
		Title: title,
		Body: &models.BodyScheme{
			Storage: &models.BodyNodeScheme{
				Value:          body,
				Representation: "storage",
			},
		},
		Version: &models.ContentVersionScheme{Number: version},
	}
	updated, _, err := c.api.Content.Update(ctx, pageID, payload)
	if err != nil {
		return nil, fmt.Errorf("update page %s: %w", pageID, err)
	}
	return updated, nil
}

// DeletePage removes a page.
func (c *Client) DeletePage(ctx context.Context, pageID string) error {
	if _, err := c.api.Content.Delete(ctx, pageID, ""); err != nil {
		return fmt.Errorf("delete page %s: %w", pageID, err)
	}
	return nil
}

// Children returns the child pages of a page.
func (c *Client) Children(ctx context.Context, pageID string, limit int) (*models.ContentPageScheme, error) {
	children, _, err := c.api.Content.ChildrenDescendant.ChildrenByType(ctx, pageID, "page", 0, []string{"version"}, 0, limit)
	if err != nil {
		return nil, fmt.Errorf("children of %s: %w", pageID, err)
	}
	return children, nil
}

// Search runs a CQL query.
func (c *Client) Search(ctx context.Context, cql string, limit int) (*models.SearchPageScheme, error) {
	results, _, err := c.api.Search.Content(ctx, cql, &models.SearchContentOptions{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", cql, err)
	}
	return results, nil
}

// SpaceContent lists pages in a space via CQL.
func (c *Client) SpaceContent(ctx context.Context, spaceKey string, limit int) (*models.SearchPageScheme, error) {
	return c.Search(ctx, fmt.Sprintf("space = '%s' AND type = 'page'", spaceKey), limit)
}

// AddComment adds a comment to a page.
func (c *Client) AddComment(ctx context.Context, pageID, body string) (*models.ContentScheme, error) {
	payload := &models.ContentScheme{
		Type: "comment",
		Container: &models.ContainerScheme{
			ID:   pageID,
			Type: "page",
		},
		Body: &models.BodyScheme{
			Storage: &models.BodyNodeScheme{
				Value:          body,
				Representation: "storage",
			},
		},
	}
	comment, _, err := c.api.Content.Create(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("comment on %s: %w", pageID, err)
	}
	return comment, nil
}

// Comments lists the comments on a page.
func (c *Client) Comments(ctx context.Context, pageID string, limit int) (*models.ContentPageScheme, error) {
	comments, _, err := c.api.Content.Comment.Gets(ctx, pageID, []string{"body.storage"}, nil, 0, limit)
	if err != nil {
		return nil, fmt.Errorf("comments of %s: %w", pageID, err)
	}
	return comments, nil
}

// Spaces lists accessible spaces.
func (c *Client) Spaces(ctx context.Context, limit int) (*models.SpacePageScheme, error) {
	spaces, _, err := c.api.Space.Gets(ctx, &models.GetSpacesOptionScheme{}, 0, limit)
	if err != nil {
		return nil, fmt.Errorf("list spaces: %w", err)
	}
	return spaces, nil
}

// Attach uploads a file as a page attachment.
func (c *Client) Attach(ctx context.Context, pageID, path string) (*models.ContentPageScheme, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	attachment, _, err := c.api.Content.Attachment.Create(ctx, pageID, "current", filepath.Base(path), file)
	if err != nil {
		return nil, fmt.Errorf("attach %s to %s: %w", path, pageID, err)
	}
	return attachment, nil
}

// Attachments lists a page's attachments.
func (c *Client) Attachments(ctx context.Context, pageID string, limit int) (*models.ContentPageScheme, error) {
	attachments, _, err := c.api.Content.Attachment.Gets(ctx, pageID, 0, limit, nil)
	if err != nil {
		return nil, fmt.Errorf("attachments of %s: %w", pageID, err)
	}
	return attachments, nil
}
