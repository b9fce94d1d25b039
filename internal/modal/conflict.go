package modal

import "github.com/micro-editor/tcell/v2"

// ConflictChoice is the 6-choice variant spec.md 4.I and §8 name for a
// batch-operation conflict, matching the option set driven by
// original_source's src/app/modal/batch_handler.rs. Deliberately distinct
// from filemanager.ConflictChoice, so this package does not depend on
// filemanager's batch state machine; no code in the module converts
// between the two types.
type ConflictChoice int

const (
	ConflictCancel ConflictChoice = iota
	ConflictOverwrite
	ConflictSkip
	ConflictOverwriteAll
	ConflictSkipAll
	ConflictRename
	ConflictRenameAll
)

var conflictOptions = []struct {
	label  string
	choice ConflictChoice
}{
	{"(o) Overwrite", ConflictOverwrite},
	{"(s) Skip", ConflictSkip},
	{"(a) Overwrite All", ConflictOverwriteAll},
	{"(k) Skip All", ConflictSkipAll},
	{"(r) Rename", ConflictRename},
	{"(R) Rename All", ConflictRenameAll},
}

// Conflict is spec.md 4.I's conflict variant. Resolving with Rename or
// RenameAll does not end the pending action: the dispatcher must transition
// to a RenamePattern modal, keeping the originating PendingAction (and its
// BatchOperation) alive, per spec.md 4.I's "Cancelled drops the action,
// except for rename-pattern" rule.
type Conflict struct {
	Active  bool
	Path    string
	Cursor  int
	ScreenW int
	ScreenH int
}

func NewConflict(path string, screenW, screenH int) *Conflict {
	return &Conflict{Active: true, Path: path, ScreenW: screenW, ScreenH: screenH}
}

func (m *Conflict) Hide() { m.Active = false }

func (m *Conflict) HandleKey(ev *tcell.EventKey) (*Result[ConflictChoice], bool) {
	if !m.Active {
		return nil, false
	}
	switch ev.Key() {
	case tcell.KeyEscape:
		m.Hide()
		return &Result[ConflictChoice]{Confirmed: true, Value: ConflictCancel}, true
	case tcell.KeyEnter:
		choice := conflictOptions[m.Cursor].choice
		m.Hide()
		return &Result[ConflictChoice]{Confirmed: true, Value: choice}, true
	case tcell.KeyUp:
		if m.Cursor > 0 {
			m.Cursor--
		}
		return nil, true
	case tcell.KeyDown:
		if m.Cursor < len(conflictOptions)-1 {
			m.Cursor++
		}
		return nil, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'o':
			m.Hide()
			return &Result[ConflictChoice]{Confirmed: true, Value: ConflictOverwrite}, true
		case 's':
			m.Hide()
			return &Result[ConflictChoice]{Confirmed: true, Value: ConflictSkip}, true
		case 'a':
			m.Hide()
			return &Result[ConflictChoice]{Confirmed: true, Value: ConflictOverwriteAll}, true
		case 'k':
			m.Hide()
			return &Result[ConflictChoice]{Confirmed: true, Value: ConflictSkipAll}, true
		case 'r':
			m.Hide()
			return &Result[ConflictChoice]{Confirmed: true, Value: ConflictRename}, true
		case 'R':
			m.Hide()
			return &Result[ConflictChoice]{Confirmed: true, Value: ConflictRenameAll}, true
		}
	}
	return nil, true
}

func (m *Conflict) Render(screen tcell.Screen) {
	if !m.Active {
		return
	}
	message := m.Path + " already exists"
	b := box{Title: "Conflict", ScreenW: m.ScreenW, ScreenH: m.ScreenH}
	lines := []string{message}
	for _, o := range conflictOptions {
		lines = append(lines, o.label)
	}
	w := contentWidth(45, lines...)
	h := len(conflictOptions) + 6
	startX, startY := b.drawFrame(screen, w, h)
	b.drawCentered(screen, message, startX, startY+3, w, b.textStyle())
	for i, o := range conflictOptions {
		style := b.accentStyle()
		if i == m.Cursor {
			style = b.titleStyle()
		}
		b.drawLeft(screen, o.label, startX+3, startY+5+i, style)
	}
}
