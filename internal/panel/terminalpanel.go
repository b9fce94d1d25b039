package panel

import (
	"github.com/ellery/stacktile/internal/ptypanel"
	"github.com/ellery/stacktile/internal/vt"
	"github.com/micro-editor/tcell/v2"
)

// terminalPanel adapts *ptypanel.Panel. ptypanel.Panel doesn't retain its
// own working directory after construction (only Config.WorkingDir, used
// once to set cmd.Dir), so this adapter keeps its own copy for
// WorkingDirectory()/ToSession() — the one piece of state the dispatcher
// needs that the wrapped engine doesn't expose itself.
type terminalPanel struct {
	pty        *ptypanel.Panel
	workingDir string
	title      string
}

// NewTerminalPanel wraps an already-constructed ptypanel.Panel. workingDir
// should be the same directory passed as Config.WorkingDir at construction.
func NewTerminalPanel(p *ptypanel.Panel, workingDir, title string) Panel {
	if title == "" {
		title = "terminal"
	}
	return &terminalPanel{pty: p, workingDir: workingDir, title: title}
}

func (p *terminalPanel) Name() string  { return "terminal" }
func (p *terminalPanel) Title() string { return p.title }

func (p *terminalPanel) PrepareRender() {}

func (p *terminalPanel) Render(focused bool) [][]vt.Cell {
	lines := p.pty.Render(focused)
	rows := make([][]vt.Cell, len(lines))
	for i, l := range lines {
		rows[i] = l.Cells
	}
	return rows
}

func (p *terminalPanel) HandleKey(ev *tcell.EventKey) []Event {
	if p.pty.HandleKey(ev) {
		return nil
	}
	return nil
}

func (p *terminalPanel) HandleMouse(row, col int, buttons tcell.ButtonMask, mods tcell.ModMask) []Event {
	p.pty.HandleMouse(row, col, buttons, mods)
	return nil
}

func (p *terminalPanel) HandleCommand(cmd Command) CommandResult {
	switch cmd.Kind {
	case CommandResize:
		p.pty.Resize(cmd.Rows, cmd.Cols)
		return CommandResult{Kind: ResultNeedsRedraw, NeedsRedraw: true}
	}
	return CommandResult{}
}

func (p *terminalPanel) NeedsCloseConfirmation() (string, bool) {
	if msg := p.pty.NeedsCloseConfirmation(); msg != "" {
		return msg, true
	}
	return "", false
}

func (p *terminalPanel) CapturesEscape() bool  { return p.pty.CapturesEscape() }
func (p *terminalPanel) ShouldAutoClose() bool { return p.pty.ShouldAutoClose() }

func (p *terminalPanel) ToSession(sessionDir string) (SessionRecord, bool) {
	return SessionRecord{Terminal: &TerminalRecord{WorkingDir: p.workingDir}}, true
}

func (p *terminalPanel) WorkingDirectory() (string, bool) {
	if p.workingDir == "" {
		return "", false
	}
	return p.workingDir, true
}
