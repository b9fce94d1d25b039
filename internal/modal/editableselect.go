package modal

import "github.com/micro-editor/tcell/v2"

// EditableSelect is spec.md 4.I's text-input-plus-dropdown variant,
// generalized from the teacher's ToolSelector (internal/layout/tool_selector.go),
// which picked a shell/AI tool for a new terminal panel from a fixed radio
// list. Here the list is narrowed live by a fuzzy-filtered query instead of
// being fixed. Nothing in the module opens one for new terminal panels.
type EditableSelect struct {
	Active   bool
	Title    string
	Items    []string
	field    textField
	filtered []string
	Cursor   int
	ScreenW  int
	ScreenH  int
}

func NewEditableSelect(title string, items []string, screenW, screenH int) *EditableSelect {
	return &EditableSelect{
		Active:   true,
		Title:    title,
		Items:    items,
		filtered: items,
		ScreenW:  screenW,
		ScreenH:  screenH,
	}
}

func (m *EditableSelect) Hide() { m.Active = false }

func (m *EditableSelect) refilter() {
	m.filtered = fuzzyFilter(m.Items, m.field.Value)
	if m.Cursor >= len(m.filtered) {
		m.Cursor = len(m.filtered) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

// HandleKey returns a Result[string] holding the chosen item, or the typed
// query verbatim if the list is empty (lets a caller fall through to a
// freeform value, e.g. a shell command the user typed rather than picked).
func (m *EditableSelect) HandleKey(ev *tcell.EventKey) (*Result[string], bool) {
	if !m.Active {
		return nil, false
	}
	switch ev.Key() {
	case tcell.KeyEscape:
		m.Hide()
		return &Result[string]{Confirmed: false}, true
	case tcell.KeyEnter:
		var value string
		if m.Cursor < len(m.filtered) {
			value = m.filtered[m.Cursor]
		} else {
			value = m.field.Value
		}
		m.Hide()
		return &Result[string]{Confirmed: true, Value: value}, true
	case tcell.KeyUp:
		if m.Cursor > 0 {
			m.Cursor--
		}
		return nil, true
	case tcell.KeyDown:
		if m.Cursor < len(m.filtered)-1 {
			m.Cursor++
		}
		return nil, true
	}
	if m.field.HandleKey(ev) {
		m.refilter()
	}
	return nil, true
}

func (m *EditableSelect) HandleMouse(row int, buttons tcell.ButtonMask) (*Result[string], bool) {
	if !m.Active {
		return nil, false
	}
	if buttons&tcell.Button1 == 0 || row < 0 || row >= len(m.filtered) {
		return nil, true
	}
	m.Cursor = row
	return nil, true
}

func (m *EditableSelect) Render(screen tcell.Screen) {
	if !m.Active {
		return
	}
	b := box{Title: m.Title, ScreenW: m.ScreenW, ScreenH: m.ScreenH}
	w := contentWidth(48, append([]string{m.Title}, m.Items...)...)
	visibleRows := len(m.filtered)
	maxRows := m.ScreenH - 10
	if visibleRows > maxRows {
		visibleRows = maxRows
	}
	h := visibleRows + 6
	startX, startY := b.drawFrame(screen, w, h)
	b.drawInputField(screen, &m.field, startX+3, startY+3, w-6)

	for i := 0; i < visibleRows && i < len(m.filtered); i++ {
		style := b.textStyle()
		if i == m.Cursor {
			style = b.accentStyle()
		}
		b.drawLeft(screen, m.filtered[i], startX+3, startY+5+i, style)
	}
	hint := "type to filter  enter:select  esc:cancel"
	b.drawCentered(screen, hint, startX, startY+h-2, w, b.hintStyle())
}
