package modal

import "github.com/micro-editor/tcell/v2"

// Confirm is spec.md 4.I's confirm variant: a yes/no/cancel dialog,
// grounded on the teacher's internal/layout.ConfirmModal.
type Confirm struct {
	Active  bool
	Title   string
	Message string
	Warning string
	ScreenW int
	ScreenH int
}

func NewConfirm(title, message, warning string, screenW, screenH int) *Confirm {
	return &Confirm{Active: true, Title: title, Message: message, Warning: warning, ScreenW: screenW, ScreenH: screenH}
}

func (m *Confirm) Hide() { m.Active = false }

// HandleKey returns a Result[bool] once y/n/enter/esc resolves the dialog;
// the Result is nil while more input is needed, and the bool reports
// whether the key was consumed (true whenever the dialog is active).
func (m *Confirm) HandleKey(ev *tcell.EventKey) (*Result[bool], bool) {
	if !m.Active {
		return nil, false
	}
	switch ev.Key() {
	case tcell.KeyEscape:
		m.Hide()
		return &Result[bool]{Confirmed: false}, true
	case tcell.KeyEnter:
		m.Hide()
		return &Result[bool]{Confirmed: true, Value: true}, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'y', 'Y':
			m.Hide()
			return &Result[bool]{Confirmed: true, Value: true}, true
		case 'n', 'N':
			m.Hide()
			return &Result[bool]{Confirmed: true, Value: false}, true
		}
	}
	return nil, true
}

func (m *Confirm) HandleMouse(tcell.ButtonMask) (*Result[bool], bool) {
	return nil, m.Active
}

func (m *Confirm) Render(screen tcell.Screen) {
	if !m.Active {
		return
	}
	options := "(y)es  (n)o  (esc)ape"
	b := box{Title: m.Title, ScreenW: m.ScreenW, ScreenH: m.ScreenH}
	w := contentWidth(45, m.Title, m.Message, m.Warning, options)
	h := 9
	startX, startY := b.drawFrame(screen, w, h)
	b.drawCentered(screen, m.Message, startX, startY+4, w, b.textStyle())
	if m.Warning != "" {
		b.drawCentered(screen, m.Warning, startX, startY+5, w, b.warningStyle())
	}
	b.drawCentered(screen, options, startX, startY+7, w, b.accentStyle())
}
