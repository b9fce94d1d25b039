package modal

import (
	"github.com/micro-editor/tcell/v2"
	"github.com/sahilm/fuzzy"
)

// Select is spec.md 4.I's list-pick variant. Items are plain labels;
// narrowing them down with a query is the EditableSelect variant below.
type Select struct {
	Active  bool
	Title   string
	Items   []string
	Cursor  int
	ScreenW int
	ScreenH int
}

func NewSelect(title string, items []string, screenW, screenH int) *Select {
	return &Select{Active: true, Title: title, Items: items, ScreenW: screenW, ScreenH: screenH}
}

func (m *Select) Hide() { m.Active = false }

// HandleKey returns a Result[int] holding the chosen item's index.
func (m *Select) HandleKey(ev *tcell.EventKey) (*Result[int], bool) {
	if !m.Active {
		return nil, false
	}
	switch ev.Key() {
	case tcell.KeyEscape:
		m.Hide()
		return &Result[int]{Confirmed: false}, true
	case tcell.KeyEnter:
		chosen := m.Cursor
		m.Hide()
		return &Result[int]{Confirmed: true, Value: chosen}, true
	case tcell.KeyUp:
		if m.Cursor > 0 {
			m.Cursor--
		}
	case tcell.KeyDown:
		if m.Cursor < len(m.Items)-1 {
			m.Cursor++
		}
	case tcell.KeyHome:
		m.Cursor = 0
	case tcell.KeyEnd:
		m.Cursor = len(m.Items) - 1
	}
	return nil, true
}

// HandleMouse selects the row under the click and confirms on a second
// click of the already-selected row (single-click-to-move, double to pick).
func (m *Select) HandleMouse(row int, buttons tcell.ButtonMask) (*Result[int], bool) {
	if !m.Active {
		return nil, false
	}
	if buttons&tcell.Button1 == 0 || row < 0 || row >= len(m.Items) {
		return nil, true
	}
	if row == m.Cursor {
		chosen := m.Cursor
		m.Hide()
		return &Result[int]{Confirmed: true, Value: chosen}, true
	}
	m.Cursor = row
	return nil, true
}

func (m *Select) Render(screen tcell.Screen) {
	if !m.Active {
		return
	}
	b := box{Title: m.Title, ScreenW: m.ScreenW, ScreenH: m.ScreenH}
	w := contentWidth(40, append([]string{m.Title}, m.Items...)...)
	if w > m.ScreenW-4 {
		w = m.ScreenW - 4
	}
	visibleRows := len(m.Items)
	maxRows := m.ScreenH - 8
	if visibleRows > maxRows {
		visibleRows = maxRows
	}
	h := visibleRows + 4
	startX, startY := b.drawFrame(screen, w, h)

	top := 0
	if m.Cursor >= visibleRows {
		top = m.Cursor - visibleRows + 1
	}
	for i := 0; i < visibleRows && top+i < len(m.Items); i++ {
		idx := top + i
		style := b.textStyle()
		if idx == m.Cursor {
			style = b.accentStyle()
		}
		b.drawLeft(screen, m.Items[idx], startX+3, startY+3+i, style)
	}
}

// fuzzyFilter narrows items by query, returning them in fuzzy.Find's score
// order; an empty query returns items unchanged.
func fuzzyFilter(items []string, query string) []string {
	if query == "" {
		return items
	}
	matches := fuzzy.Find(query, items)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, items[m.Index])
	}
	return out
}
