package modal

import "github.com/micro-editor/tcell/v2"

// RenamePattern is spec.md 4.I's rename-pattern variant: a single pattern
// template (see filemanager.EvaluateRenamePattern for the token language)
// applied to every remaining source in the batch that reached the
// conflict modal's Rename/RenameAll choice.
type RenamePattern struct {
	Active  bool
	field   textField
	ScreenW int
	ScreenH int
}

func NewRenamePattern(defaultPattern string, screenW, screenH int) *RenamePattern {
	return &RenamePattern{
		Active:  true,
		field:   textField{Value: defaultPattern, CursorPos: len(defaultPattern)},
		ScreenW: screenW,
		ScreenH: screenH,
	}
}

func (m *RenamePattern) Hide() { m.Active = false }

// HandleKey resolves with the pattern string on Enter. Escape cancels the
// rename step but, per spec.md 4.I, the dispatcher must route that
// cancellation back to the originating Conflict modal rather than dropping
// the pending action entirely.
func (m *RenamePattern) HandleKey(ev *tcell.EventKey) (*Result[string], bool) {
	if !m.Active {
		return nil, false
	}
	switch ev.Key() {
	case tcell.KeyEscape:
		m.Hide()
		return &Result[string]{Confirmed: false}, true
	case tcell.KeyEnter:
		pattern := m.field.Value
		m.Hide()
		return &Result[string]{Confirmed: true, Value: pattern}, true
	}
	m.field.HandleKey(ev)
	return nil, true
}

func (m *RenamePattern) Render(screen tcell.Screen) {
	if !m.Active {
		return
	}
	b := box{Title: "Rename Pattern", ScreenW: m.ScreenW, ScreenH: m.ScreenH}
	help := "$0 name  $I counter  $Y-$M-$D $h:$m:$s"
	w := contentWidth(52, help)
	h := 9
	startX, startY := b.drawFrame(screen, w, h)
	b.drawLeft(screen, help, startX+3, startY+3, b.hintStyle())
	b.drawInputField(screen, &m.field, startX+3, startY+5, w-6)
	b.drawCentered(screen, "(enter) apply  (esc) back", startX, startY+7, w, b.accentStyle())
}
