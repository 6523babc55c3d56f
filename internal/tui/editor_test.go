package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUppercaseKeywords(t *testing.T) {
	assert.Equal(t,
		"SELECT id FROM orders WHERE note = 'select me'",
		uppercaseKeywords("select id from orders where note = 'select me'"),
		"keywords inside string literals stay untouched")
	assert.Equal(t, "SELECT count(*) FROM cc.orders",
		uppercaseKeywords("select count(*) from cc.orders"))
}

func TestLastWord(t *testing.T) {
	assert.Equal(t, "ord", lastWord("SELECT * FROM ord"))
	assert.Equal(t, "cc.ord", lastWord("SELECT * FROM cc.ord"))
	assert.Equal(t, "", lastWord("SELECT * FROM "))
}

func TestEditorCompletionCycles(t *testing.T) {
	m := newEditor()
	m.setFocused(true)
	m.setTableNames([]string{"orders", "order_items", "customers"})
	m.textarea.SetValue("SELECT * FROM ord")

	assert.True(t, m.tryCompletion())
	assert.Equal(t, "SELECT * FROM orders", m.textarea.Value())

	assert.True(t, m.tryCompletion())
	assert.Equal(t, "SELECT * FROM order_items", m.textarea.Value())

	// Cycling wraps around.
	assert.True(t, m.tryCompletion())
	assert.Equal(t, "SELECT * FROM orders", m.textarea.Value())
}

func TestEditorCompletionNoMatch(t *testing.T) {
	m := newEditor()
	m.setFocused(true)
	m.setTableNames([]string{"orders"})
	m.textarea.SetValue("SELECT * FROM zzz")

	assert.False(t, m.tryCompletion())
	assert.Equal(t, "SELECT * FROM zzz", m.textarea.Value())
}
