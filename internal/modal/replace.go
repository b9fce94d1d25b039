package modal

import "github.com/micro-editor/tcell/v2"

// ReplaceQuery is the find/replace pair spec.md §8 scenario 4 drives
// ("start_replace", "replace_current").
type ReplaceQuery struct {
	Find    string
	Replace string
}

// replaceField tracks which of the two text fields on the Replace modal
// Tab currently targets.
type replaceField int

const (
	replaceFieldFind replaceField = iota
	replaceFieldReplace
)

// Replace is spec.md 4.I's two-phase replace variant: a find field and a
// replace field, Tab switching between them, Enter committing both.
type Replace struct {
	Active  bool
	find    textField
	replace textField
	focus   replaceField
	ScreenW int
	ScreenH int
}

func NewReplace(screenW, screenH int) *Replace {
	return &Replace{Active: true, ScreenW: screenW, ScreenH: screenH}
}

func (m *Replace) Hide() { m.Active = false }

func (m *Replace) HandleKey(ev *tcell.EventKey) (*Result[ReplaceQuery], bool) {
	if !m.Active {
		return nil, false
	}
	switch ev.Key() {
	case tcell.KeyEscape:
		m.Hide()
		return &Result[ReplaceQuery]{Confirmed: false}, true
	case tcell.KeyTab:
		if m.focus == replaceFieldFind {
			m.focus = replaceFieldReplace
		} else {
			m.focus = replaceFieldFind
		}
		return nil, true
	case tcell.KeyEnter:
		q := ReplaceQuery{Find: m.find.Value, Replace: m.replace.Value}
		m.Hide()
		return &Result[ReplaceQuery]{Confirmed: true, Value: q}, true
	}
	if m.focus == replaceFieldFind {
		m.find.HandleKey(ev)
	} else {
		m.replace.HandleKey(ev)
	}
	return nil, true
}

func (m *Replace) Render(screen tcell.Screen) {
	if !m.Active {
		return
	}
	b := box{Title: "Replace", ScreenW: m.ScreenW, ScreenH: m.ScreenH}
	w := contentWidth(44, "Find:", "Replace:")
	h := 11
	startX, startY := b.drawFrame(screen, w, h)
	b.drawLeft(screen, "Find:", startX+3, startY+3, b.textStyle())
	b.drawInputField(screen, &m.find, startX+3, startY+4, w-6)
	b.drawLeft(screen, "Replace:", startX+3, startY+6, b.textStyle())
	b.drawInputField(screen, &m.replace, startX+3, startY+7, w-6)
	b.drawCentered(screen, "(tab) switch field  (enter) replace  (esc) cancel", startX, startY+9, w, b.accentStyle())
}
