package panel

import (
	"path/filepath"
	"time"

	"github.com/ellery/stacktile/internal/editor"
	"github.com/ellery/stacktile/internal/vt"
	"github.com/micro-editor/tcell/v2"
)

// editorPanel adapts *editor.Engine to the Panel interface. Key handling
// is deliberately thin here: editor.Engine's navigation/editing methods
// take no tcell.EventKey of their own, so this adapter owns the one
// keymap translating keys into Engine calls (mirroring how ptypanel.Panel
// keeps its own keymap internally, rather than repeating the teacher's
// layout.Manager-level giant switch for every panel kind).
type editorPanel struct {
	engine        *editor.Engine
	unsavedPath   string // reported by ToSession for unnamed buffers; nothing assigns it
	isConfigFile  editor.ConfigFilePredicate
	validateCfg   editor.ConfigValidator
}

// NewEditorPanel wraps an already-constructed editor.Engine.
func NewEditorPanel(e *editor.Engine, isConfigFile editor.ConfigFilePredicate, validate editor.ConfigValidator) Panel {
	return &editorPanel{engine: e, isConfigFile: isConfigFile, validateCfg: validate}
}

func (p *editorPanel) Name() string { return "editor" }

func (p *editorPanel) Title() string {
	base := p.engine.Buffer.Path()
	if base == "" {
		base = "untitled"
	} else {
		base = filepath.Base(base)
	}
	return p.engine.Title(base)
}

func (p *editorPanel) PrepareRender() {}

func (p *editorPanel) Render(focused bool) [][]vt.Cell {
	return p.engine.Render(focused)
}

func (p *editorPanel) HandleKey(ev *tcell.EventKey) []Event {
	e := p.engine
	extend := ev.Modifiers()&tcell.ModShift != 0
	switch ev.Key() {
	case tcell.KeyUp:
		e.MoveUp(extend)
	case tcell.KeyDown:
		e.MoveDown(extend)
	case tcell.KeyLeft:
		e.MoveLeft(extend)
	case tcell.KeyRight:
		e.MoveRight(extend)
	case tcell.KeyHome:
		e.MoveHome(extend)
	case tcell.KeyEnd:
		e.MoveEnd(extend)
	case tcell.KeyPgUp:
		e.PageUp(extend)
	case tcell.KeyPgDn:
		e.PageDown(extend)
	case tcell.KeyEnter:
		e.InsertNewline()
	case tcell.KeyTab:
		e.Tab()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		e.Backspace()
	case tcell.KeyDelete:
		e.Delete()
	case tcell.KeyCtrlS:
		if err := e.Save(p.isConfigFile, p.validateCfg); err != nil {
			return []Event{{Kind: EventStatusMessage, Message: err.Error(), IsError: true}}
		}
		return []Event{{Kind: EventStatusMessage, Message: "saved"}}
	case tcell.KeyCtrlD:
		e.DuplicateLineOrSelection()
	case tcell.KeyRune:
		e.InsertChar(string(ev.Rune()))
	}
	return nil
}

func (p *editorPanel) HandleMouse(row, col int, buttons tcell.ButtonMask, mods tcell.ModMask) []Event {
	p.engine.MousePress(row, col, time.Now())
	return nil
}

func (p *editorPanel) HandleCommand(cmd Command) CommandResult {
	switch cmd.Kind {
	case CommandCheckExternalModification:
		changed := p.engine.CheckExternalModification()
		return CommandResult{Kind: ResultModificationStatus, Modified: p.engine.Buffer.Modified(), ExternallyChanged: changed}
	case CommandGetModificationStatus:
		return CommandResult{Kind: ResultModificationStatus, Modified: p.engine.Buffer.Modified()}
	case CommandSave:
		err := p.engine.Save(p.isConfigFile, p.validateCfg)
		if err != nil {
			return CommandResult{Kind: ResultSaveResult, SaveSucceeded: false, SaveError: err.Error()}
		}
		return CommandResult{Kind: ResultSaveResult, SaveSucceeded: true}
	case CommandReload:
		p.engine.ReloadPreservingCursor()
		return CommandResult{Kind: ResultNeedsRedraw, NeedsRedraw: true}
	case CommandResize:
		p.engine.Viewport.Width = cmd.Cols
		p.engine.Viewport.Height = cmd.Rows
		return CommandResult{Kind: ResultNeedsRedraw, NeedsRedraw: true}
	}
	return CommandResult{}
}

func (p *editorPanel) NeedsCloseConfirmation() (string, bool) {
	if p.engine.NeedsCloseConfirmation() {
		return "unsaved changes will be lost", true
	}
	return "", false
}

func (p *editorPanel) CapturesEscape() bool { return false }
func (p *editorPanel) ShouldAutoClose() bool { return false }

func (p *editorPanel) ToSession(sessionDir string) (SessionRecord, bool) {
	path := p.engine.Buffer.Path()
	rec := EditorRecord{Path: path}
	if path == "" {
		rec.UnsavedBufferFile = p.unsavedPath
	}
	return SessionRecord{Editor: &rec}, true
}

func (p *editorPanel) WorkingDirectory() (string, bool) {
	path := p.engine.Buffer.Path()
	if path == "" {
		return "", false
	}
	return filepath.Dir(path), true
}
