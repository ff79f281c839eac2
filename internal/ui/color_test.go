package ui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chriserin/catchr/internal/render"
)

func TestLines(t *testing.T) {
	var buf bytes.Buffer
	NewLine(&buf, "login.catchr", 3)
	UpdLine(&buf, "signup.catchr", 1)
	TrkLine(&buf, "cart.catchr")
	DelLine(&buf, "gone.catchr")
	WarnLine(&buf, "foo_bar.catchr", "shares namespace foo_bar with foo-bar.catchr")
	ErrLine(&buf, "bad.catchr", errors.New("bad.catchr:1:6: invalid name: boom"))
	SummaryLine(&buf, 3, 4)

	out := buf.String()
	assert.Contains(t, out, "new")
	assert.Contains(t, out, "login.catchr (3)")
	assert.Contains(t, out, "signup.catchr (1)")
	assert.Contains(t, out, "cart.catchr")
	assert.Contains(t, out, "gone.catchr")
	assert.Contains(t, out, "wrn  foo_bar.catchr shares namespace foo_bar with foo-bar.catchr")
	assert.Contains(t, out, "invalid name: boom")
	assert.Contains(t, out, "synced 3 files, 4 procedures\n")
}

func TestListRow_PadsColumns(t *testing.T) {
	var buf bytes.Buffer
	ListRow(&buf, "Test_a", "a.catchr", "sync", 10, 12)
	assert.Contains(t, buf.String(), "Test_a      ")
	assert.Contains(t, buf.String(), "a.catchr    ")
}

func TestOutlineNode(t *testing.T) {
	var buf bytes.Buffer
	OutlineNode(&buf, render.Node{Depth: 0, Name: "login"})
	OutlineNode(&buf, render.Node{Depth: 1, Name: "then_ok", Leaf: true, Marker: "sync", Statements: 2})

	out := buf.String()
	assert.Contains(t, out, "login/")
	assert.Contains(t, out, "  then_ok")
	assert.Contains(t, out, "[sync]")
	assert.Contains(t, out, "(2)")
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab  ", pad("ab", 4))
	assert.Equal(t, "abcd", pad("abcd", 2))
}
