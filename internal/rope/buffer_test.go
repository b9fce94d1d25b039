package rope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertSingleLine(t *testing.T) {
	b := New()
	cur := b.Insert(Cursor{0, 0}, "hello")
	assert.Equal(t, Cursor{0, 5}, cur)
	assert.Equal(t, "hello", b.LineString(0))
	assert.True(t, b.Modified())
}

func TestInsertSplitsLine(t *testing.T) {
	b := NewFromString("abcdef")
	cur := b.Insert(Cursor{0, 3}, "\n")
	require.Equal(t, 2, b.LineCount())
	assert.Equal(t, "abc", b.LineString(0))
	assert.Equal(t, "def", b.LineString(1))
	assert.Equal(t, Cursor{1, 0}, cur)
}

func TestInsertMultiLinePaste(t *testing.T) {
	b := NewFromString("ac")
	cur := b.Insert(Cursor{0, 1}, "XX\nYY")
	require.Equal(t, 2, b.LineCount())
	assert.Equal(t, "aXX", b.LineString(0))
	assert.Equal(t, "YYc", b.LineString(1))
	assert.Equal(t, Cursor{1, 2}, cur)
}

func TestDeleteRangeSameLine(t *testing.T) {
	b := NewFromString("hello world")
	text := b.DeleteRange(Cursor{0, 5}, Cursor{0, 11})
	assert.Equal(t, " world", text)
	assert.Equal(t, "hello", b.LineString(0))
}

func TestDeleteRangeAcrossLines(t *testing.T) {
	b := NewFromString("foo\nbar\nbaz")
	text := b.DeleteRange(Cursor{0, 1}, Cursor{2, 1})
	assert.Equal(t, "oo\nbar\nb", text)
	require.Equal(t, 1, b.LineCount())
	assert.Equal(t, "faz", b.LineString(0))
}

func TestBackspaceMergesLines(t *testing.T) {
	b := NewFromString("foo\nbar")
	cur, ok := b.Backspace(Cursor{1, 0})
	require.True(t, ok)
	assert.Equal(t, Cursor{0, 3}, cur)
	assert.Equal(t, "foobar", b.LineString(0))
}

func TestBackspaceAtOriginIsNoop(t *testing.T) {
	b := New()
	_, ok := b.Backspace(Cursor{0, 0})
	assert.False(t, ok)
	assert.False(t, b.Modified())
}

func TestDeleteCharAtEOFIsNoop(t *testing.T) {
	b := NewFromString("a")
	ok := b.DeleteChar(Cursor{0, 1})
	assert.False(t, ok)
}

func TestUndoRedoRoundTrip(t *testing.T) {
	b := NewFromString("abc")
	b.Insert(Cursor{0, 3}, "def")
	assert.Equal(t, "abcdef", b.LineString(0))

	cur, ok := b.Undo()
	require.True(t, ok)
	assert.Equal(t, Cursor{0, 3}, cur)
	assert.Equal(t, "abc", b.LineString(0))

	cur, ok = b.Redo()
	require.True(t, ok)
	assert.Equal(t, Cursor{0, 6}, cur)
	assert.Equal(t, "abcdef", b.LineString(0))
}

func TestNewEditDropsRedoBranch(t *testing.T) {
	b := NewFromString("a")
	b.Insert(Cursor{0, 1}, "b")
	b.Undo()
	b.Insert(Cursor{0, 1}, "c")
	assert.False(t, b.history.CanRedo())
	assert.Equal(t, "ac", b.LineString(0))
}

func TestCursorClampedWithinLine(t *testing.T) {
	b := NewFromString("abc")
	got := b.clampCursor(Cursor{0, 99})
	assert.Equal(t, Cursor{0, 3}, got)
	got = b.clampCursor(Cursor{99, 0})
	assert.Equal(t, Cursor{0, 0}, got)
}

func TestGraphemeAwareInsert(t *testing.T) {
	b := New()
	// Family emoji is one grapheme cluster spanning several runes.
	family := "\U0001F468‍\U0001F469‍\U0001F467"
	b.Insert(Cursor{0, 0}, family+"x")
	assert.Equal(t, 2, b.LineLen(0))
}

func TestSelectionNormalized(t *testing.T) {
	s := Selection{Anchor: Cursor{1, 0}, Active: Cursor{0, 0}}
	start, end := s.Normalized()
	assert.Equal(t, Cursor{0, 0}, start)
	assert.Equal(t, Cursor{1, 0}, end)
}
