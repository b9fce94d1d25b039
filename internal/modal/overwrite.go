package modal

import "github.com/micro-editor/tcell/v2"

// OverwriteChoice is the 4-choice variant spec.md 4.I names for a single
// batch-operation conflict when renaming isn't offered (e.g. a plain
// save-as collision).
type OverwriteChoice int

const (
	OverwriteCancel OverwriteChoice = iota
	OverwriteConfirm
	OverwriteSkip
	OverwriteAll
	OverwriteSkipAll
)

// Overwrite is spec.md 4.I's overwrite variant: 4 choices over a single
// destination path that already exists.
type Overwrite struct {
	Active  bool
	Path    string
	Cursor  int
	ScreenW int
	ScreenH int
}

var overwriteOptions = []struct {
	label  string
	choice OverwriteChoice
}{
	{"(o) Overwrite", OverwriteConfirm},
	{"(s) Skip", OverwriteSkip},
	{"(a) Overwrite All", OverwriteAll},
	{"(k) Skip All", OverwriteSkipAll},
}

func NewOverwrite(path string, screenW, screenH int) *Overwrite {
	return &Overwrite{Active: true, Path: path, ScreenW: screenW, ScreenH: screenH}
}

func (m *Overwrite) Hide() { m.Active = false }

func (m *Overwrite) HandleKey(ev *tcell.EventKey) (*Result[OverwriteChoice], bool) {
	if !m.Active {
		return nil, false
	}
	switch ev.Key() {
	case tcell.KeyEscape:
		m.Hide()
		return &Result[OverwriteChoice]{Confirmed: true, Value: OverwriteCancel}, true
	case tcell.KeyEnter:
		choice := overwriteOptions[m.Cursor].choice
		m.Hide()
		return &Result[OverwriteChoice]{Confirmed: true, Value: choice}, true
	case tcell.KeyUp:
		if m.Cursor > 0 {
			m.Cursor--
		}
		return nil, true
	case tcell.KeyDown:
		if m.Cursor < len(overwriteOptions)-1 {
			m.Cursor++
		}
		return nil, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'o', 'O':
			m.Hide()
			return &Result[OverwriteChoice]{Confirmed: true, Value: OverwriteConfirm}, true
		case 's', 'S':
			m.Hide()
			return &Result[OverwriteChoice]{Confirmed: true, Value: OverwriteSkip}, true
		case 'a', 'A':
			m.Hide()
			return &Result[OverwriteChoice]{Confirmed: true, Value: OverwriteAll}, true
		case 'k', 'K':
			m.Hide()
			return &Result[OverwriteChoice]{Confirmed: true, Value: OverwriteSkipAll}, true
		}
	}
	return nil, true
}

func (m *Overwrite) Render(screen tcell.Screen) {
	if !m.Active {
		return
	}
	message := m.Path + " already exists"
	b := box{Title: "File Exists", ScreenW: m.ScreenW, ScreenH: m.ScreenH}
	lines := []string{message}
	for _, o := range overwriteOptions {
		lines = append(lines, o.label)
	}
	w := contentWidth(45, lines...)
	h := len(overwriteOptions) + 6
	startX, startY := b.drawFrame(screen, w, h)
	b.drawCentered(screen, message, startX, startY+3, w, b.textStyle())
	for i, o := range overwriteOptions {
		style := b.accentStyle()
		if i == m.Cursor {
			style = b.titleStyle()
		}
		b.drawLeft(screen, o.label, startX+3, startY+5+i, style)
	}
}
