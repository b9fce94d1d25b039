// Package panel implements spec.md 4.H's uniform panel abstraction and
// central dispatcher: every editor/file-manager/terminal panel satisfies
// the same Panel interface, and one Dispatcher routes input through modal
// -> menu -> global hotkeys -> active panel, in that order.
package panel

import (
	"github.com/ellery/stacktile/internal/vt"
	"github.com/micro-editor/tcell/v2"
)

// Region is a rectangular screen area, grounded on the teacher's
// internal/layout.Region.
type Region struct {
	X, Y, Width, Height int
}

// FocusContext tells a panel whether it currently holds input focus and
// whether the application itself has terminal focus (for cursor blink /
// dimming decisions).
type FocusContext struct {
	Focused    bool
	AppFocused bool
}

// SessionRecord is the tagged union spec.md §6 persists per panel:
// exactly one of Editor/FileManager/Terminal is populated.
type SessionRecord struct {
	Editor      *EditorRecord
	FileManager *FileManagerRecord
	Terminal    *TerminalRecord
}

type EditorRecord struct {
	Path               string
	UnsavedBufferFile  string
}

type FileManagerRecord struct {
	Path string
}

type TerminalRecord struct {
	WorkingDir string
}

// EventKind tags the side-effect a panel wants the dispatcher to perform
// next, per spec.md 4.H ("OpenFile(path), SetStatusMessage{...}, and
// (indirectly) modal requests").
type EventKind int

const (
	EventNone EventKind = iota
	EventOpenFile
	EventStatusMessage
	EventRequestModal
)

// Event is the common shape every panel's HandleKey/HandleMouse return;
// ModalKind and ModalData are set only for EventRequestModal. The panel
// puts its request (the file manager's *filemanager.ModalRequest) in
// ModalData, and the dispatcher's openRequestedModal picks the concrete
// modal from ModalKind, since panels don't know about modal.Result[T] types.
type Event struct {
	Kind      EventKind
	Path      string
	Message   string
	IsError   bool
	ModalKind ModalKind
	ModalData any
}

// ModalKind names which modal variant a panel wants opened; the dispatcher
// maps this (plus ModalData) to a concrete modal.* constructor.
type ModalKind int

const (
	ModalNone ModalKind = iota
	ModalConfirmDelete
	ModalConfirmCloseUnsaved
	ModalInputNewFile
	ModalInputNewDir
	ModalInputRenameFile
	ModalInputSaveAs
	ModalOverwrite
	ModalConflict
	ModalRenamePattern
	ModalSearch
	ModalReplace
	ModalSelectTool
	ModalInfo
)

// Panel is spec.md 4.H's panel trait, adapted to Go: a stable Name, a
// dynamic Title (carries unsaved/external-change decorations), render
// preparation + render, key/mouse/command handling, and the
// close/session/cwd introspection hooks the dispatcher needs.
type Panel interface {
	Name() string
	Title() string
	PrepareRender()
	Render(focused bool) [][]vt.Cell
	HandleKey(ev *tcell.EventKey) []Event
	HandleMouse(row, col int, buttons tcell.ButtonMask, mods tcell.ModMask) []Event
	HandleCommand(cmd Command) CommandResult
	NeedsCloseConfirmation() (string, bool)
	CapturesEscape() bool
	ShouldAutoClose() bool
	ToSession(sessionDir string) (SessionRecord, bool)
	WorkingDirectory() (string, bool)
}
