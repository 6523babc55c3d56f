package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joacominatel/trident/internal/warehouse"
)

func TestJSON(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, JSON(&buf, map[string]any{"key": "CC-1", "open": true}))
	assert.JSONEq(t, `{"key":"CC-1","open":true}`, buf.String())
	assert.Contains(t, buf.String(), "\n  ", "output is indented")
}

func TestTextMap(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, Text(&buf, map[string]any{
		"summary": "Ship it",
		"key":     "CC-1",
		"labels":  []string{"a", "b"},
	}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"key: CC-1",
		`labels: ["a","b"]`,
		"summary: Ship it",
	}, lines, "keys are sorted, nested values stay JSON")
}

func TestTextSliceSeparators(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, Text(&buf, []map[string]string{
		{"key": "CC-1"},
		{"key": "CC-2"},
	}))

	assert.Equal(t, "key: CC-1\n---\nkey: CC-2\n", buf.String())
}

func TestTextScalar(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, Text(&buf, 42))
	assert.Equal(t, "42\n", buf.String())
}

func TestFrameTable(t *testing.T) {
	f := &warehouse.Frame{
		Columns: []string{"id", "name"},
		Rows: [][]any{
			{int64(1), "ada"},
			{int64(2), nil},
		},
	}

	out := FrameTable(f)
	assert.Contains(t, out, "id")
	assert.Contains(t, out, "name")
	assert.Contains(t, out, "ada")
	assert.Contains(t, out, "NULL")
}

func TestFrameTableEmpty(t *testing.T) {
	assert.Equal(t, "(no rows)", FrameTable(&warehouse.Frame{}))
}

func TestCell(t *testing.T) {
	assert.Equal(t, "NULL", Cell(nil))
	assert.Equal(t, "7", Cell(int64(7)))
	assert.Equal(t, "hi", Cell("hi"))
}
