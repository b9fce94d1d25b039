package panel

import (
	"path/filepath"

	"github.com/ellery/stacktile/internal/filemanager"
	"github.com/ellery/stacktile/internal/vt"
	"github.com/micro-editor/tcell/v2"
)

// fileManagerPanel adapts *filemanager.State. Its HandleKey/HandleMouse
// already return filemanager.Event with nearly the same shape as
// panel.Event, so this adapter is mostly a field-by-field translation plus
// mapping ModalRequest.Variant strings to ModalKind.
type fileManagerPanel struct {
	state  *filemanager.State
	width  int
	height int
}

func NewFileManagerPanel(s *filemanager.State) Panel {
	return &fileManagerPanel{state: s}
}

func (p *fileManagerPanel) Name() string  { return "filemanager" }
func (p *fileManagerPanel) Title() string { return filepath.Base(p.state.CurrentPath) }

func (p *fileManagerPanel) PrepareRender() {}

func (p *fileManagerPanel) Render(focused bool) [][]vt.Cell {
	return p.state.Render(p.width, p.height, focused)
}

func (p *fileManagerPanel) HandleKey(ev *tcell.EventKey) []Event {
	return translateFMEvents(p.state.HandleKey(ev))
}

func (p *fileManagerPanel) HandleMouse(row, col int, buttons tcell.ButtonMask, mods tcell.ModMask) []Event {
	return translateFMEvents(p.state.HandleMouse(row, buttons, mods))
}

func translateFMEvents(in []filemanager.Event) []Event {
	if len(in) == 0 {
		return nil
	}
	out := make([]Event, 0, len(in))
	for _, e := range in {
		switch e.Kind {
		case filemanager.EventOpenFile:
			out = append(out, Event{Kind: EventOpenFile, Path: e.OpenFilePath})
		case filemanager.EventStatusMessage:
			out = append(out, Event{Kind: EventStatusMessage, Message: e.StatusMessage, IsError: e.IsError})
		case filemanager.EventShowModal:
			if e.ShowModal != nil {
				out = append(out, Event{
					Kind:      EventRequestModal,
					ModalKind: modalKindForVariant(e.ShowModal.Variant),
					ModalData: e.ShowModal,
				})
			}
		case filemanager.EventStartBatch:
			out = append(out, Event{Kind: EventStatusMessage, Message: "batch operation started"})
		}
	}
	return out
}

func modalKindForVariant(variant string) ModalKind {
	switch variant {
	case "input":
		return ModalInputNewDir
	case "confirm":
		return ModalConfirmDelete
	case "copy-destination", "move-destination":
		return ModalInputSaveAs
	default:
		return ModalNone
	}
}

func (p *fileManagerPanel) HandleCommand(cmd Command) CommandResult {
	switch cmd.Kind {
	case CommandRefreshDirectory, CommandReload:
		p.state.Reload()
		return CommandResult{Kind: ResultNeedsRedraw, NeedsRedraw: true}
	case CommandOnFsUpdate:
		p.state.OnFsUpdate([]string{cmd.ChangedPath})
		return CommandResult{Kind: ResultNeedsRedraw, NeedsRedraw: true}
	case CommandGetFsWatchInfo:
		info := p.state.WatchInfo()
		return CommandResult{Kind: ResultFsWatchInfo, FsWatchPath: info.WatchedRoot, FsWatchActive: info.WatchedRoot != ""}
	case CommandResize:
		p.width, p.height = cmd.Cols, cmd.Rows
		return CommandResult{Kind: ResultNeedsRedraw, NeedsRedraw: true}
	}
	return CommandResult{}
}

func (p *fileManagerPanel) NeedsCloseConfirmation() (string, bool) { return "", false }
func (p *fileManagerPanel) CapturesEscape() bool                   { return false }
func (p *fileManagerPanel) ShouldAutoClose() bool                  { return false }

func (p *fileManagerPanel) ToSession(sessionDir string) (SessionRecord, bool) {
	return SessionRecord{FileManager: &FileManagerRecord{Path: p.state.CurrentPath}}, true
}

func (p *fileManagerPanel) WorkingDirectory() (string, bool) {
	return p.state.CurrentPath, true
}
