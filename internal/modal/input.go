package modal

import "github.com/micro-editor/tcell/v2"

// Input is spec.md 4.I's single-line text input variant, grounded on the
// teacher's internal/layout.InputModal.
type Input struct {
	Active  bool
	Title   string
	Prompt  string
	field   textField
	ScreenW int
	ScreenH int
}

func NewInput(title, prompt, defaultValue string, screenW, screenH int) *Input {
	return &Input{
		Active:  true,
		Title:   title,
		Prompt:  prompt,
		field:   textField{Value: defaultValue, CursorPos: len(defaultValue)},
		ScreenW: screenW,
		ScreenH: screenH,
	}
}

func (m *Input) Hide() { m.Active = false }

func (m *Input) HandleKey(ev *tcell.EventKey) (*Result[string], bool) {
	if !m.Active {
		return nil, false
	}
	switch ev.Key() {
	case tcell.KeyEscape:
		m.Hide()
		return &Result[string]{Confirmed: false}, true
	case tcell.KeyEnter:
		value := m.field.Value
		m.Hide()
		return &Result[string]{Confirmed: true, Value: value}, true
	}
	m.field.HandleKey(ev)
	return nil, true
}

func (m *Input) HandleMouse(tcell.ButtonMask) (*Result[string], bool) {
	return nil, m.Active
}

func (m *Input) Render(screen tcell.Screen) {
	if !m.Active {
		return
	}
	options := "(enter) save  (esc) cancel"
	b := box{Title: m.Title, ScreenW: m.ScreenW, ScreenH: m.ScreenH}
	inputFieldWidth := 30
	if len(m.Prompt)+10 > inputFieldWidth {
		inputFieldWidth = len(m.Prompt) + 10
	}
	w := contentWidth(50, m.Title, m.Prompt)
	if inputFieldWidth+6 > w {
		w = inputFieldWidth + 6
	}
	h := 9
	startX, startY := b.drawFrame(screen, w, h)
	b.drawLeft(screen, m.Prompt, startX+3, startY+3, b.textStyle())
	b.drawInputField(screen, &m.field, startX+3, startY+5, w-6)
	b.drawCentered(screen, options, startX, startY+7, w, b.accentStyle())
}
