package editor

import (
	"time"

	"github.com/ellery/stacktile/internal/rope"
)

// ScrollWheel scrolls the viewport by n rows (negative = up) without moving
// the cursor, except that the cursor is dragged back into view only if it
// would otherwise fall outside the new viewport.
func (e *Engine) ScrollWheel(n int) {
	total := e.virtualRowCountForScroll()
	if n < 0 {
		e.Viewport.ScrollUp(-n)
	} else {
		e.Viewport.ScrollDown(n, total)
	}
	row := e.cursorVisualRow()
	if row < e.Viewport.Top || row >= e.Viewport.Top+e.Viewport.Height {
		e.Viewport.EnsureCursorVisible(row, total)
	}
}

func (e *Engine) virtualRowCountForScroll() int {
	if e.useVisualNav() {
		return e.Wrap.TotalVisualRows(e.Buffer)
	}
	return e.Buffer.LineCount()
}

func (e *Engine) cursorVisualRow() int {
	if e.useVisualNav() {
		return e.Wrap.VisualRowForCursor(e.Buffer, e.Cursor.Line, e.Cursor.Col)
	}
	return e.Cursor.Line
}

// MousePress handles a left-button press at the given row/col within the
// content area: sets the cursor and begins a selection, unless it is the
// second click of a double-click, in which case the word under the cursor
// is selected instead.
func (e *Engine) MousePress(row, col int, now time.Time) {
	pos := e.hitTest(row, col)
	if !now.IsZero() && now.Sub(e.lastClickAt) <= e.doubleClickWindow && pos == e.lastClickPos {
		e.selectWordAt(pos)
		e.lastClickAt = time.Time{}
		return
	}
	e.Cursor = pos
	e.Selection = &Selection{Anchor: pos, Active: pos}
	e.lastClickAt = now
	e.lastClickPos = pos
}

// MouseDrag extends the in-progress selection to the new position.
func (e *Engine) MouseDrag(row, col int) {
	pos := e.hitTest(row, col)
	e.Cursor = pos
	if e.Selection != nil {
		e.Selection.Active = pos
	}
}

// MouseRelease finalizes the selection, clearing it if it ended up empty.
func (e *Engine) MouseRelease() {
	if e.Selection != nil && e.Selection.Empty() {
		e.Selection = nil
	}
}

func (e *Engine) hitTest(row, col int) rope.Cursor {
	if e.useVisualNav() {
		visualRow := e.Viewport.Top + row
		line, startCol := e.Wrap.VisualRowToBufferPosition(e.Buffer, visualRow)
		c := startCol + col
		if c > e.Buffer.LineLen(line) {
			c = e.Buffer.LineLen(line)
		}
		return rope.Cursor{Line: line, Col: c}
	}
	line := e.Viewport.Top + row
	if line < 0 {
		line = 0
	}
	if line >= e.Buffer.LineCount() {
		line = e.Buffer.LineCount() - 1
	}
	c := e.Viewport.Left + col
	if c > e.Buffer.LineLen(line) {
		c = e.Buffer.LineLen(line)
	}
	if c < 0 {
		c = 0
	}
	return rope.Cursor{Line: line, Col: c}
}

func (e *Engine) selectWordAt(pos rope.Cursor) {
	line := e.Buffer.Line(pos.Line)
	start, end := pos.Col, pos.Col
	for start > 0 && isWordGrapheme(line[start-1]) {
		start--
	}
	for end < len(line) && isWordGrapheme(line[end]) {
		end++
	}
	e.Selection = &Selection{
		Anchor: rope.Cursor{Line: pos.Line, Col: start},
		Active: rope.Cursor{Line: pos.Line, Col: end},
	}
	e.Cursor = e.Selection.Active
}

func isWordGrapheme(g string) bool {
	if g == "" {
		return false
	}
	r := []rune(g)[0]
	return r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// --- Search wiring --------------------------------------------------------

// StartSearch begins (or restarts) an incremental search.
func (e *Engine) StartSearch(query string, caseSensitive bool) {
	e.Search.Start(e.Buffer, query, caseSensitive, e.Cursor)
	if e.Search.Current >= 0 {
		e.Cursor = e.Search.Matches[e.Search.Current]
	}
}

// NextMatch advances to the next search match and moves the cursor there.
func (e *Engine) NextMatch() bool {
	c, ok := e.Search.Next()
	if ok {
		e.Cursor = c
	}
	return ok
}

// PrevMatch moves to the previous search match.
func (e *Engine) PrevMatch() bool {
	c, ok := e.Search.Prev()
	if ok {
		e.Cursor = c
	}
	return ok
}

// CloseSearch ends the active search, keeping the last query for reopen.
func (e *Engine) CloseSearch() {
	e.Search.Close()
}

// ReplaceCurrentMatch replaces the current match and advances.
func (e *Engine) ReplaceCurrentMatch() bool {
	ok := ReplaceCurrent(e.Buffer, e.Search)
	if ok {
		e.Highlight.Invalidate(0, -1)
		e.Wrap.Invalidate(0, -1)
	}
	return ok
}

// ReplaceAllMatches replaces every match and invalidates touched lines.
func (e *Engine) ReplaceAllMatches() int {
	touched := ReplaceAll(e.Buffer, e.Search)
	for l := range touched {
		e.Highlight.Invalidate(l, l)
	}
	e.Wrap.Invalidate(0, -1)
	return len(touched)
}
