package ptypanel

import "strings"

// Loc is a virtual line position used by the local copy-selection: Row
// addresses scrollback lines first (0..ScrollbackLen-1), then the live
// grid's rows, so a drag can cross the scrollback/live boundary.
type Loc struct{ Row, Col int }

func locLess(a, b Loc) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}

// Selection is the panel's local copy-selection, independent of any PTY
// mouse-reporting mode.
type Selection struct {
	Active     bool
	Start, End Loc
}

// virtualRowCount is the total number of addressable rows: scrollback plus
// the live grid.
func (p *Panel) virtualRowCount() int {
	return p.screen.Scrollback().Len() + p.rows
}

// BeginSelection starts (or, on a held button, extends) the local
// selection at the given content-relative (row, col).
func (p *Panel) BeginSelection(row, col int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	loc := Loc{Row: row, Col: col}
	if !p.mouseDown {
		p.sel = Selection{Active: true, Start: loc, End: loc}
		p.mouseDown = true
		return
	}
	p.sel.End = loc
}

// ExtendSelection updates the drag endpoint of an in-progress selection.
func (p *Panel) ExtendSelection(row, col int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sel.Active {
		p.sel.End = Loc{Row: row, Col: col}
	}
}

// EndSelection finalizes the selection, returning the selected text (with
// each line right-trimmed) so the caller can write it to the clipboard,
// and clears the selection.
func (p *Panel) EndSelection() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mouseDown = false
	if !p.sel.Active {
		return ""
	}
	text := p.selectedTextLocked()
	p.sel = Selection{}
	return text
}

// HasSelection reports whether a selection is currently active.
func (p *Panel) HasSelection() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.sel.Active
}

// ClearSelection drops the current selection without copying it.
func (p *Panel) ClearSelection() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sel = Selection{}
}

// runesAt returns the plain-rune content of virtual row, right-trimmed of
// trailing blanks, reading from scrollback or the live grid as needed.
func (p *Panel) runesAt(row int) []rune {
	scrollbackLen := p.screen.Scrollback().Len()

	var line []rune
	if row < scrollbackLen {
		for _, c := range p.screen.Scrollback().Row(row) {
			line = append(line, cellRune(c.Ch))
		}
	} else {
		liveRow := row - scrollbackLen
		grid := p.screen.Grid()
		if liveRow >= 0 && liveRow < len(grid.Rows) {
			for _, c := range grid.Rows[liveRow] {
				line = append(line, cellRune(c.Ch))
			}
		}
	}
	return []rune(strings.TrimRight(string(line), " "))
}

func cellRune(ch rune) rune {
	if ch == 0 {
		return ' '
	}
	return ch
}

func (p *Panel) selectedTextLocked() string {
	start, end := p.sel.Start, p.sel.End
	if locLess(end, start) {
		start, end = end, start
	}

	var out []string
	for row := start.Row; row <= end.Row; row++ {
		runes := p.runesAt(row)
		from, to := 0, len(runes)
		if row == start.Row {
			from = start.Col
		}
		if row == end.Row {
			to = end.Col + 1
		}
		if from < 0 {
			from = 0
		}
		if to > len(runes) {
			to = len(runes)
		}
		if from > to {
			from = to
		}
		out = append(out, string(runes[from:to]))
	}
	return strings.Join(out, "\n")
}
