package confluence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresPersonalSpace(t *testing.T) {
	_, err := New("https://example.atlassian.net/wiki", "a@b.c", "token", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CONFLUENCE_PERSONAL_SPACE")
}

func TestCreatePageGuardsPersonalSpace(t *testing.T) {
	c := &Client{personalSpace: "~joaco"}

	_, err := c.CreatePage(context.Background(), "TEAM", "Title", "<p>body</p>", "")
	var guard *PersonalSpaceError
	require.ErrorAs(t, err, &guard)
	assert.Equal(t, "TEAM", guard.Requested)
	assert.Equal(t, "~joaco", guard.Personal)
	assert.Contains(t, err.Error(), "~joaco")
}
