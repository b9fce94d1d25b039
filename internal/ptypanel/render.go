package ptypanel

import "github.com/ellery/stacktile/internal/vt"

// Line is one rendered row of the panel's visible viewport.
type Line struct {
	Cells []vt.Cell
}

type renderCache struct {
	valid        bool
	focused      bool
	scrollOffset int
	lines        []Line
}

// Render returns the styled lines for the panel's visible viewport,
// honoring ScrollOffset. Per spec.md 4.E it is cached and reused while the
// screen is not dirty, no selection is active, and focus hasn't changed;
// a cache hit shares the cached slice rather than rebuilding it.
func (p *Panel) Render(focused bool) []Line {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.renderCache.valid && !p.screen.Dirty && !p.sel.Active &&
		p.renderCache.focused == focused && p.renderCache.scrollOffset == p.screen.ScrollOffset {
		return p.renderCache.lines
	}

	lines := p.renderLinesLocked()
	p.renderCache = renderCache{valid: true, focused: focused, scrollOffset: p.screen.ScrollOffset, lines: lines}
	p.screen.Dirty = false
	return lines
}

func (p *Panel) renderLinesLocked() []Line {
	grid := p.screen.Grid()
	scrollbackLen := p.screen.Scrollback().Len()
	offset := p.screen.ScrollOffset
	if offset > scrollbackLen {
		offset = scrollbackLen
	}

	lines := make([]Line, p.rows)
	for y := 0; y < p.rows; y++ {
		virtualRow := scrollbackLen - offset + y
		var row vt.Row
		if virtualRow < scrollbackLen {
			row = p.screen.Scrollback().Row(virtualRow)
		} else if virtualRow-scrollbackLen < len(grid.Rows) {
			row = grid.Rows[virtualRow-scrollbackLen]
		}
		cells := make([]vt.Cell, p.cols)
		for x := 0; x < p.cols && x < len(row); x++ {
			cells[x] = row[x]
		}
		lines[y] = Line{Cells: cells}
	}
	return lines
}
