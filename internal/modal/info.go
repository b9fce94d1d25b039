package modal

import "github.com/micro-editor/tcell/v2"

// Info is spec.md 4.I's info variant: a message dialog dismissed by any
// key, used for the "File Exists" / save errors / plain notices that don't
// need a choice.
type Info struct {
	Active  bool
	Title   string
	Message string
	ScreenW int
	ScreenH int
}

func NewInfo(title, message string, screenW, screenH int) *Info {
	return &Info{Active: true, Title: title, Message: message, ScreenW: screenW, ScreenH: screenH}
}

func (m *Info) Hide() { m.Active = false }

func (m *Info) HandleKey(ev *tcell.EventKey) (*Result[struct{}], bool) {
	if !m.Active {
		return nil, false
	}
	m.Hide()
	return &Result[struct{}]{Confirmed: true}, true
}

func (m *Info) Render(screen tcell.Screen) {
	if !m.Active {
		return
	}
	dismiss := "press any key"
	b := box{Title: m.Title, ScreenW: m.ScreenW, ScreenH: m.ScreenH}
	w := contentWidth(40, m.Title, m.Message, dismiss)
	h := 7
	startX, startY := b.drawFrame(screen, w, h)
	b.drawCentered(screen, m.Message, startX, startY+3, w, b.textStyle())
	b.drawCentered(screen, dismiss, startX, startY+5, w, b.hintStyle())
}
