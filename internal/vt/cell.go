// Package vt implements the VT100/xterm terminal emulator: a byte-stream
// parser (built on govte's Performer callbacks) driving a cell-grid screen
// with scrollback, alternate screen, SGR styling, and the mouse/paste mode
// flags a PTY-backed panel needs.
package vt

import "github.com/micro-editor/tcell/v2"

// Cell is one terminal character cell.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// blankCell is what ED/EL erasure and new rows are filled with.
var blankCell = Cell{Ch: ' ', Style: tcell.StyleDefault}

// Row is one line of cells.
type Row []Cell

// NewRow returns a row of width cols, all blank.
func NewRow(cols int) Row {
	r := make(Row, cols)
	for i := range r {
		r[i] = blankCell
	}
	return r
}

// Grid is a fixed-size rows x cols cell buffer.
type Grid struct {
	Rows []Row
	Cols int
}

// NewGrid returns a blank grid of the given size.
func NewGrid(rows, cols int) *Grid {
	g := &Grid{Rows: make([]Row, rows), Cols: cols}
	for i := range g.Rows {
		g.Rows[i] = NewRow(cols)
	}
	return g
}

// Resize adds/removes rows at the bottom and resizes every row's column
// count, per spec.md 4.D's resize invariant.
func (g *Grid) Resize(rows, cols int) {
	if rows > len(g.Rows) {
		for len(g.Rows) < rows {
			g.Rows = append(g.Rows, NewRow(cols))
		}
	} else if rows < len(g.Rows) {
		g.Rows = g.Rows[:rows]
	}
	for i := range g.Rows {
		g.Rows[i] = resizeRow(g.Rows[i], cols)
	}
	g.Cols = cols
}

func resizeRow(r Row, cols int) Row {
	if len(r) == cols {
		return r
	}
	out := make(Row, cols)
	n := len(r)
	if n > cols {
		n = cols
	}
	copy(out, r[:n])
	for i := n; i < cols; i++ {
		out[i] = blankCell
	}
	return out
}

// ClearRow blanks columns [from,to) of row i.
func (g *Grid) ClearRow(i, from, to int) {
	if i < 0 || i >= len(g.Rows) {
		return
	}
	if to > g.Cols {
		to = g.Cols
	}
	for c := from; c < to; c++ {
		g.Rows[i][c] = blankCell
	}
}

// ClearAll blanks the entire grid.
func (g *Grid) ClearAll() {
	for i := range g.Rows {
		g.ClearRow(i, 0, g.Cols)
	}
}
