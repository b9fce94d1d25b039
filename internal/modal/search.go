package modal

import "github.com/micro-editor/tcell/v2"

// Search is spec.md 4.I's live-incremental search variant. Unlike the
// other variants it resolves repeatedly rather than once: every keystroke
// and every Enter (next match) produces a Result the caller re-runs the
// search with, and the modal stays Active until Escape.
type Search struct {
	Active  bool
	field   textField
	ScreenW int
	ScreenH int
}

func NewSearch(screenW, screenH int) *Search {
	return &Search{Active: true, ScreenW: screenW, ScreenH: screenH}
}

func (m *Search) Hide() { m.Active = false }

// HandleKey returns a non-nil Result on every query change and on Enter
// ("find next"); ok reports whether the key was consumed by the modal.
func (m *Search) HandleKey(ev *tcell.EventKey) (*Result[string], bool) {
	if !m.Active {
		return nil, false
	}
	switch ev.Key() {
	case tcell.KeyEscape:
		m.Hide()
		return &Result[string]{Confirmed: false}, true
	case tcell.KeyEnter:
		return &Result[string]{Confirmed: true, Value: m.field.Value}, true
	}
	if m.field.HandleKey(ev) {
		return &Result[string]{Confirmed: true, Value: m.field.Value}, true
	}
	return nil, true
}

func (m *Search) Query() string { return m.field.Value }

func (m *Search) Render(screen tcell.Screen) {
	if !m.Active {
		return
	}
	b := box{Title: "Search", ScreenW: m.ScreenW, ScreenH: m.ScreenH}
	w := contentWidth(40)
	h := 7
	startX, startY := b.drawFrame(screen, w, h)
	b.drawInputField(screen, &m.field, startX+3, startY+3, w-6)
	b.drawCentered(screen, "(enter) next  (esc) close", startX, startY+5, w, b.accentStyle())
}
