package editor

import (
	"github.com/ellery/stacktile/internal/highlight"
	"github.com/ellery/stacktile/internal/rope"
	"github.com/ellery/stacktile/internal/vt"
	"github.com/micro-editor/tcell/v2"
)

// gutterWidth is the width reserved for the git-diff status column when
// shouldDiff() is true.
const gutterWidth = 2

// Render draws the visible viewport into Width*Height cells, honoring
// word-wrap, syntax highlighting, the current selection, and the git-diff
// gutter. Search matches are not highlighted: SearchState is not read
// here. focused controls whether the cursor cell is drawn in reverse video.
func (e *Engine) Render(focused bool) [][]vt.Cell {
	width, height := e.Viewport.Width, e.Viewport.Height
	if width <= 0 || height <= 0 {
		return nil
	}
	textWidth := width
	if e.shouldDiff() {
		textWidth = width - gutterWidth
		if textWidth < 1 {
			textWidth = 1
		}
	}
	e.SetContentWidth(textWidth)

	rows := make([][]vt.Cell, height)
	total := e.Wrap.TotalVisualRows(e.Buffer)
	selStart, selEnd, hasSel := e.selectionRange()

	for r := 0; r < height; r++ {
		rows[r] = blankRow(width)
		visualRow := e.Viewport.Top + r
		if visualRow >= total {
			continue
		}
		line, startCol := e.Wrap.VisualRowToBufferPosition(e.Buffer, visualRow)
		endCol := e.rowEndCol(line, startCol)

		if e.shouldDiff() {
			e.drawGutter(rows[r], line, startCol == 0)
		}
		e.drawText(rows[r][offsetFor(width, e.shouldDiff()):], line, startCol, endCol)
		if hasSel {
			e.applySelection(rows[r], line, startCol, endCol, selStart, selEnd)
		}
		cursorOnRow := e.Cursor.Line == line && e.Cursor.Col >= startCol &&
			(e.Cursor.Col < endCol || endCol == e.Buffer.LineLen(line))
		if focused && cursorOnRow {
			col := offsetFor(width, e.shouldDiff()) + (e.Cursor.Col - startCol)
			if col >= 0 && col < len(rows[r]) {
				rows[r][col].Style = rows[r][col].Style.Reverse(true)
			}
		}
	}
	return rows
}

func offsetFor(width int, hasGutter bool) int {
	if hasGutter {
		return gutterWidth
	}
	return 0
}

func blankRow(width int) []vt.Cell {
	row := make([]vt.Cell, width)
	for i := range row {
		row[i] = vt.Cell{Ch: ' ', Style: tcell.StyleDefault}
	}
	return row
}

// rowEndCol finds the grapheme column one past the last column shown on
// the visual row starting at (line, startCol): the next wrap break, or the
// line's length if this is the row's final segment.
func (e *Engine) rowEndCol(line, startCol int) int {
	breaks := e.wrapBreaksFor(line)
	for _, b := range breaks {
		if b > startCol {
			return b
		}
	}
	return e.Buffer.LineLen(line)
}

func (e *Engine) wrapBreaksFor(line int) []int {
	// Calls WrapCache's unexported breaksFor directly and then reads its
	// memoized breaks; VisualRowToBufferPosition already forced computation,
	// so this second call is a cache hit.
	e.Wrap.breaksFor(e.Buffer, line)
	return e.Wrap.breaks[line]
}

func (e *Engine) drawText(dst []vt.Cell, line, startCol, endCol int) {
	text := e.Buffer.Line(line)
	var segments []highlight.Segment
	if e.shouldHighlight() {
		segments = e.Highlight.Line(e.Buffer, line)
	}
	col := startCol
	di := 0
	if segments == nil {
		for col < endCol && col < len(text) && di < len(dst) {
			dst[di] = vt.Cell{Ch: firstRune(text[col]), Style: tcell.StyleDefault}
			col++
			di++
		}
		return
	}
	// Segments are contiguous runs over the full line in rune order; walk
	// them alongside the grapheme slice, advancing by rune count per
	// grapheme so multi-rune graphemes still consume the right amount of
	// segment text.
	segIdx, segOff := 0, 0
	skipCols(segments, &segIdx, &segOff, startCol, text)
	for col < endCol && col < len(text) && di < len(dst) {
		style := tcell.StyleDefault
		if segIdx < len(segments) {
			style = segments[segIdx].Style
		}
		dst[di] = vt.Cell{Ch: firstRune(text[col]), Style: style}
		advanceSeg(segments, &segIdx, &segOff, len([]rune(text[col])))
		col++
		di++
	}
}

func firstRune(g string) rune {
	for _, r := range g {
		return r
	}
	return ' '
}

func skipCols(segments []highlight.Segment, segIdx *int, segOff *int, cols int, text rope.Line) {
	runes := 0
	for i := 0; i < cols && i < len(text); i++ {
		runes += len([]rune(text[i]))
	}
	advanceSeg(segments, segIdx, segOff, runes)
}

func advanceSeg(segments []highlight.Segment, segIdx *int, segOff *int, n int) {
	for n > 0 && *segIdx < len(segments) {
		remaining := len([]rune(segments[*segIdx].Text)) - *segOff
		if n < remaining {
			*segOff += n
			return
		}
		n -= remaining
		*segIdx++
		*segOff = 0
	}
}

func (e *Engine) drawGutter(row []vt.Cell, line int, isFirstRowOfLine bool) {
	if !isFirstRowOfLine || e.GitDiff == nil {
		return
	}
	diff := e.GitDiff.Get(line)
	var ch rune
	var style tcell.Style
	switch diff.Status {
	case LineAdded:
		ch, style = '+', tcell.StyleDefault.Foreground(tcell.ColorGreen)
	case LineModified:
		ch, style = '~', tcell.StyleDefault.Foreground(tcell.ColorYellow)
	case LineDeleted:
		ch, style = '-', tcell.StyleDefault.Foreground(tcell.ColorRed)
	default:
		return
	}
	if len(row) > 0 {
		row[0] = vt.Cell{Ch: ch, Style: style}
	}
}

func (e *Engine) selectionRange() (start, end rope.Cursor, ok bool) {
	if e.Selection == nil || e.Selection.Empty() {
		return rope.Cursor{}, rope.Cursor{}, false
	}
	start, end = e.Selection.Normalized()
	return start, end, true
}

func (e *Engine) applySelection(row []vt.Cell, line, startCol, endCol int, selStart, selEnd rope.Cursor) {
	offset := 0
	if e.shouldDiff() {
		offset = gutterWidth
	}
	for col := startCol; col < endCol; col++ {
		pos := rope.Cursor{Line: line, Col: col}
		if !pos.Less(selStart) && pos.Less(selEnd) {
			idx := offset + (col - startCol)
			if idx >= 0 && idx < len(row) {
				row[idx].Style = row[idx].Style.Reverse(true)
			}
		}
	}
}
