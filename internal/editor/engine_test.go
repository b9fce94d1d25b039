package editor

import (
	"testing"

	"github.com/ellery/stacktile/internal/rope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(text string) *Engine {
	b := rope.NewFromString(text)
	return New(b, "test.go")
}

func TestVerticalMovePreservesPreferredColumn(t *testing.T) {
	e := newTestEngine("abcdef\nxy\nabcdef")
	e.Cursor = rope.Cursor{Line: 0, Col: 5}
	e.lastMoveWasVertical = false
	e.preferredCol = 5
	e.MoveDown(false)
	assert.Equal(t, rope.Cursor{Line: 1, Col: 2}, e.Cursor)
	e.MoveDown(false)
	assert.Equal(t, rope.Cursor{Line: 2, Col: 5}, e.Cursor)
}

func TestHorizontalMoveResetsPreferredColumn(t *testing.T) {
	e := newTestEngine("abcdef")
	e.Cursor = rope.Cursor{Line: 0, Col: 3}
	e.MoveRight(false)
	assert.Equal(t, 4, e.preferredCol)
}

func TestShiftNavigationStartsSelection(t *testing.T) {
	e := newTestEngine("abcdef")
	e.Cursor = rope.Cursor{Line: 0, Col: 0}
	e.MoveRight(true)
	e.MoveRight(true)
	require.NotNil(t, e.Selection)
	start, end := e.Selection.Normalized()
	assert.Equal(t, rope.Cursor{0, 0}, start)
	assert.Equal(t, rope.Cursor{0, 2}, end)
}

func TestPlainNavigationClearsSelection(t *testing.T) {
	e := newTestEngine("abcdef")
	e.MoveRight(true)
	require.NotNil(t, e.Selection)
	e.MoveRight(false)
	assert.Nil(t, e.Selection)
}

func TestEditDeletesSelectionFirst(t *testing.T) {
	e := newTestEngine("abcdef")
	e.Cursor = rope.Cursor{Line: 0, Col: 0}
	e.MoveRight(true)
	e.MoveRight(true)
	e.MoveRight(true)
	e.InsertChar("X")
	assert.Equal(t, "Xdef", e.Buffer.LineString(0))
}

func TestTabInsertsConfiguredSpaces(t *testing.T) {
	e := newTestEngine("")
	e.Config.TabSize = 2
	e.Tab()
	assert.Equal(t, "  ", e.Buffer.LineString(0))
}

func TestIndentUnindentRoundTrip(t *testing.T) {
	e := newTestEngine("a\nb\nc")
	e.Selection = &Selection{Anchor: rope.Cursor{0, 0}, Active: rope.Cursor{2, 1}}
	e.Config.TabSize = 2
	e.IndentRange()
	assert.Equal(t, "  a", e.Buffer.LineString(0))
	assert.Equal(t, "  b", e.Buffer.LineString(1))
	assert.Equal(t, "  c", e.Buffer.LineString(2))

	e.Selection = &Selection{Anchor: rope.Cursor{0, 0}, Active: rope.Cursor{2, 1}}
	e.UnindentRange()
	assert.Equal(t, "a", e.Buffer.LineString(0))
}

func TestDuplicateLineNoSelection(t *testing.T) {
	e := newTestEngine("hello")
	e.DuplicateLineOrSelection()
	require.Equal(t, 2, e.Buffer.LineCount())
	assert.Equal(t, "hello", e.Buffer.LineString(0))
	assert.Equal(t, "hello", e.Buffer.LineString(1))
}

func TestWordWrapGeometryHardBreak(t *testing.T) {
	e := newTestEngine("aaaaaaaaaa")
	e.Config.WordWrap = true
	e.Config.SmartWrap = false
	e.SetContentWidth(4)
	assert.Equal(t, 3, e.Wrap.RowCount(e.Buffer, 0))
}

func TestWordWrapGeometrySmartBreak(t *testing.T) {
	e := newTestEngine("aaa bbb ccc")
	e.Config.WordWrap = true
	e.Config.SmartWrap = true
	e.SetContentWidth(5)
	assert.True(t, e.Wrap.RowCount(e.Buffer, 0) >= 2)
}

func TestSearchFindsAllMatchesAndWraps(t *testing.T) {
	e := newTestEngine("foo bar foo baz foo")
	e.StartSearch("foo", true)
	require.Len(t, e.Search.Matches, 3)
	first := e.Cursor
	e.NextMatch()
	e.NextMatch()
	e.NextMatch()
	assert.Equal(t, first, e.Cursor)
}

func TestReplaceAllAppliesInReverseOrder(t *testing.T) {
	e := newTestEngine("foo foo foo")
	e.StartSearch("foo", true)
	n := e.ReplaceAllMatches()
	assert.Equal(t, 1, n)
	assert.Equal(t, "  ", e.Buffer.LineString(0))
}

func TestSaveRejectsWhenExternalChangePendingWithoutForce(t *testing.T) {
	e := newTestEngine("x")
	e.Buffer.SetPath("/nonexistent/should-not-be-created.txt")
	e.externalChange = true
	err := e.Save(nil, nil)
	assert.ErrorIs(t, err, ErrExternalChange)
}

func TestCloseConfirmationRequiredWhenModified(t *testing.T) {
	e := newTestEngine("x")
	assert.False(t, e.NeedsCloseConfirmation())
	e.InsertChar("y")
	assert.True(t, e.NeedsCloseConfirmation())
}
