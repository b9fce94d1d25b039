// Package rope implements the text buffer at the core of the editor: a
// line-indexed sequence of Unicode scalar values with grapheme-aware cursor
// arithmetic, reversible edits, and atomic file persistence.
//
// The buffer is not a balanced tree. It is an array of lines, each a slice of
// grapheme clusters, which gives O(1) line lookup and O(line length) edits within a
// line; multi-line inserts/deletes are O(line count). This satisfies the
// "per-line indexing... survive arbitrary edits" contract a true rope or
// piece table would also satisfy, without the rebalancing machinery a
// terminal-IDE-scale buffer rarely needs.
package rope

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rivo/uniseg"
)

// Cursor is a position in grapheme coordinates, never a byte offset.
type Cursor struct {
	Line, Col int
}

// Less reports whether c sorts before other in row-major order.
func (c Cursor) Less(other Cursor) bool {
	if c.Line != other.Line {
		return c.Line < other.Line
	}
	return c.Col < other.Col
}

// Buffer is the rope: an ordered sequence of lines of graphemes.
type Buffer struct {
	lines    []Line
	path     string
	modified bool
	history  *History
}

// Line is one physical line, stored as a slice of extended grapheme
// clusters so that cursor columns always land on a user-perceived character.
type Line []string

// Graphemes splits s into extended grapheme clusters using uniseg.
func Graphemes(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		out = append(out, gr.Str())
	}
	return out
}

// New creates an empty buffer (one empty line).
func New() *Buffer {
	return &Buffer{
		lines:   []Line{{}},
		history: NewHistory(),
	}
}

// NewFromString creates a buffer from text, splitting on '\n'. A trailing
// newline does not create a spurious extra empty final line beyond the one
// mandated by line_count >= 1 semantics: "a\nb\n" yields two lines, "a\nb"
// also yields two lines, matching common editor behavior.
func NewFromString(text string) *Buffer {
	b := &Buffer{history: NewHistory()}
	raw := strings.Split(text, "\n")
	if len(raw) > 1 && raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}
	if len(raw) == 0 {
		raw = []string{""}
	}
	b.lines = make([]Line, len(raw))
	for i, s := range raw {
		b.lines[i] = Graphemes(s)
	}
	return b
}

// Load reads path and returns a new buffer over its contents.
func Load(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	b := NewFromString(string(data))
	b.path = path
	return b, nil
}

// Path returns the backing file path, or "" for an unnamed buffer.
func (b *Buffer) Path() string { return b.path }

// SetPath updates the backing file path (used by save-as).
func (b *Buffer) SetPath(p string) { b.path = p }

// Modified reports whether the buffer has unsaved edits.
func (b *Buffer) Modified() bool { return b.modified }

// ClearModified resets the modified flag (after a successful save).
func (b *Buffer) ClearModified() { b.modified = false }

// LineCount returns the number of physical lines. Always >= 1.
func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns a read-only view of line i, or nil if out of range.
func (b *Buffer) Line(i int) Line {
	if i < 0 || i >= len(b.lines) {
		return nil
	}
	return b.lines[i]
}

// LineString renders line i back to a plain string.
func (b *Buffer) LineString(i int) string {
	return strings.Join(b.Line(i), "")
}

// LineLen returns the grapheme length of line i.
func (b *Buffer) LineLen(i int) int {
	return len(b.Line(i))
}

// Text returns the full buffer contents joined by '\n'.
func (b *Buffer) Text() string {
	var sb strings.Builder
	for i, l := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strings.Join(l, ""))
	}
	return sb.String()
}

// clampCursor enforces 0<=line<LineCount and 0<=col<=LineLen(line).
func (b *Buffer) clampCursor(c Cursor) Cursor {
	if c.Line < 0 {
		c.Line = 0
	}
	if c.Line >= len(b.lines) {
		c.Line = len(b.lines) - 1
	}
	ll := b.LineLen(c.Line)
	if c.Col < 0 {
		c.Col = 0
	}
	if c.Col > ll {
		c.Col = ll
	}
	return c
}

// Insert inserts text at cursor and returns the resulting cursor position.
// text may contain newlines, splitting the current line.
func (b *Buffer) Insert(at Cursor, text string) Cursor {
	at = b.clampCursor(at)
	newCur := b.insertRaw(at, text)
	b.modified = true
	b.history.Push(Edit{Kind: EditInsert, At: at, Text: text, CursorBefore: at, CursorAfter: newCur})
	return newCur
}

func (b *Buffer) insertRaw(at Cursor, text string) Cursor {
	pieces := strings.Split(text, "\n")
	line := b.lines[at.Line]
	before := append(Line{}, line[:at.Col]...)
	after := append(Line{}, line[at.Col:]...)

	if len(pieces) == 1 {
		mid := Graphemes(pieces[0])
		newLine := append(before, append(mid, after...)...)
		b.lines[at.Line] = newLine
		return Cursor{Line: at.Line, Col: at.Col + len(mid)}
	}

	// Multi-line insert: splice pieces[0] onto `before`, pieces[last] onto
	// `after`, and insert the middle pieces as whole new lines.
	newLines := make([]Line, 0, len(pieces))
	newLines = append(newLines, append(before, Graphemes(pieces[0])...))
	for i := 1; i < len(pieces)-1; i++ {
		newLines = append(newLines, Graphemes(pieces[i]))
	}
	lastCol := len(Graphemes(pieces[len(pieces)-1]))
	newLines = append(newLines, append(Graphemes(pieces[len(pieces)-1]), after...))

	tail := append([]Line{}, b.lines[at.Line+1:]...)
	b.lines = append(b.lines[:at.Line], append(newLines, tail...)...)

	return Cursor{Line: at.Line + len(pieces) - 1, Col: lastCol}
}

// DeleteRange removes [start,end) in row-major order and returns the deleted
// text so callers (undo, cut) can keep it.
func (b *Buffer) DeleteRange(start, end Cursor) string {
	start, end = b.clampCursor(start), b.clampCursor(end)
	if end.Less(start) {
		start, end = end, start
	}
	if start == end {
		return ""
	}
	text := b.textRange(start, end)
	b.deleteRangeRaw(start, end)
	b.modified = true
	b.history.Push(Edit{Kind: EditDelete, At: start, Text: text, CursorBefore: end, CursorAfter: start})
	return text
}

func (b *Buffer) textRange(start, end Cursor) string {
	if start.Line == end.Line {
		return strings.Join(b.lines[start.Line][start.Col:end.Col], "")
	}
	var sb strings.Builder
	sb.WriteString(strings.Join(b.lines[start.Line][start.Col:], ""))
	for l := start.Line + 1; l < end.Line; l++ {
		sb.WriteByte('\n')
		sb.WriteString(strings.Join(b.lines[l], ""))
	}
	sb.WriteByte('\n')
	sb.WriteString(strings.Join(b.lines[end.Line][:end.Col], ""))
	return sb.String()
}

func (b *Buffer) deleteRangeRaw(start, end Cursor) {
	if start.Line == end.Line {
		line := b.lines[start.Line]
		merged := append(append(Line{}, line[:start.Col]...), line[end.Col:]...)
		b.lines[start.Line] = merged
		return
	}
	head := b.lines[start.Line][:start.Col]
	tail := b.lines[end.Line][end.Col:]
	merged := append(append(Line{}, head...), tail...)
	newLines := append([]Line{}, b.lines[:start.Line]...)
	newLines = append(newLines, merged)
	newLines = append(newLines, b.lines[end.Line+1:]...)
	b.lines = newLines
}

// Backspace removes the grapheme before cursor. No-op at (0,0).
func (b *Buffer) Backspace(at Cursor) (Cursor, bool) {
	if at.Line == 0 && at.Col == 0 {
		return at, false
	}
	var start Cursor
	if at.Col > 0 {
		start = Cursor{Line: at.Line, Col: at.Col - 1}
	} else {
		start = Cursor{Line: at.Line - 1, Col: b.LineLen(at.Line - 1)}
	}
	b.DeleteRange(start, at)
	return start, true
}

// DeleteChar removes the grapheme at cursor (forward delete). No-op at EOF.
func (b *Buffer) DeleteChar(at Cursor) bool {
	if at.Line == b.LineCount()-1 && at.Col == b.LineLen(at.Line) {
		return false
	}
	var end Cursor
	if at.Col < b.LineLen(at.Line) {
		end = Cursor{Line: at.Line, Col: at.Col + 1}
	} else {
		end = Cursor{Line: at.Line + 1, Col: 0}
	}
	b.DeleteRange(at, end)
	return true
}

// Undo reverses the most recent edit and returns the cursor to restore to.
func (b *Buffer) Undo() (Cursor, bool) {
	e, ok := b.history.Undo()
	if !ok {
		return Cursor{}, false
	}
	b.applyInverse(e)
	b.modified = true
	return e.CursorBefore, true
}

// Redo re-applies the most recently undone edit.
func (b *Buffer) Redo() (Cursor, bool) {
	e, ok := b.history.Redo()
	if !ok {
		return Cursor{}, false
	}
	b.applyForward(e)
	b.modified = true
	return e.CursorAfter, true
}

func (b *Buffer) applyForward(e Edit) {
	switch e.Kind {
	case EditInsert:
		b.insertRaw(e.At, e.Text)
	case EditDelete:
		end := b.endOf(e.At, e.Text)
		b.deleteRangeRaw(e.At, end)
	}
}

func (b *Buffer) applyInverse(e Edit) {
	switch e.Kind {
	case EditInsert:
		end := b.endOf(e.At, e.Text)
		b.deleteRangeRaw(e.At, end)
	case EditDelete:
		b.insertRaw(e.At, e.Text)
	}
}

// endOf computes the end cursor of text inserted/deleted starting at start.
func (b *Buffer) endOf(start Cursor, text string) Cursor {
	pieces := strings.Split(text, "\n")
	if len(pieces) == 1 {
		return Cursor{Line: start.Line, Col: start.Col + len(Graphemes(pieces[0]))}
	}
	return Cursor{Line: start.Line + len(pieces) - 1, Col: len(Graphemes(pieces[len(pieces)-1]))}
}

// Save writes the buffer to its backing path using a write-temp-then-rename
// for near-atomicity, and clears the modified flag.
func (b *Buffer) Save() error {
	if b.path == "" {
		return fmt.Errorf("rope: buffer has no path, use SaveTo")
	}
	return b.SaveTo(b.path)
}

// SaveTo writes the buffer to path atomically and adopts path as the new
// backing file.
func (b *Buffer) SaveTo(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".stacktile-tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(b.Text()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	b.path = path
	b.modified = false
	return nil
}
