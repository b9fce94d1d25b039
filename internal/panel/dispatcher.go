package panel

import (
	"github.com/ellery/stacktile/internal/filemanager"
	"github.com/ellery/stacktile/internal/modal"
	"github.com/micro-editor/tcell/v2"
)

// Dispatcher is the central event loop spec.md 4.H describes: it owns the
// panel set, the single open modal (if any), and the single pending_action
// tied to that modal, and routes every input event through the fixed
// 5-step order: modal -> menu -> global hotkeys -> active panel -> consume
// emitted events.
type Dispatcher struct {
	Panels       []Panel
	ActiveIndex  int
	ScreenW      int
	ScreenH      int

	modal   activeModal
	pending modal.PendingAction

	menuOpen bool

	StatusMessage string
	StatusIsError bool

	Quit bool

	// OnPendingResolved lets the embedding application (cmd/stacktile)
	// react to a resolved pending action — create
	// file, delete list, batch copy/move, save-as, close editor, etc. —
	// without this package needing to know those domain specifics.
	OnPendingResolved func(d *Dispatcher, action modal.PendingAction, outcome ModalOutcome)

	// OnGlobalHotkey is tried at dispatch step 3, before delivery to the
	// active panel; it returns true if it consumed the event.
	OnGlobalHotkey func(d *Dispatcher, ev *tcell.EventKey) bool
}

func NewDispatcher(screenW, screenH int) *Dispatcher {
	return &Dispatcher{ScreenW: screenW, ScreenH: screenH}
}

func (d *Dispatcher) ActivePanel() Panel {
	if d.ActiveIndex < 0 || d.ActiveIndex >= len(d.Panels) {
		return nil
	}
	return d.Panels[d.ActiveIndex]
}

// OpenModal installs m as the active modal along with the PendingAction it
// resolves into; any previously open modal is discarded.
func (d *Dispatcher) OpenModal(m activeModal, action modal.PendingAction) {
	d.modal = m
	d.pending = action
}

func (d *Dispatcher) ModalOpen() bool { return d.modal != nil }

// The OpenXxx helpers below construct the concrete internal/modal variant,
// wrap it in its activeModal host, and install it as the dispatcher's one
// open modal along with the PendingAction it resolves into — the only way
// application code should open a modal, so callers never need to know
// about the unexported host types.

func (d *Dispatcher) OpenConfirm(title, message, warning string, action modal.PendingAction) {
	d.OpenModal(confirmHost{modal.NewConfirm(title, message, warning, d.ScreenW, d.ScreenH)}, action)
}

func (d *Dispatcher) OpenInput(title, prompt, defaultValue string, action modal.PendingAction) {
	d.OpenModal(inputHost{modal.NewInput(title, prompt, defaultValue, d.ScreenW, d.ScreenH)}, action)
}

func (d *Dispatcher) OpenSelect(title string, items []string, action modal.PendingAction) {
	d.OpenModal(selectHost{modal.NewSelect(title, items, d.ScreenW, d.ScreenH)}, action)
}

func (d *Dispatcher) OpenEditableSelect(title string, items []string, action modal.PendingAction) {
	d.OpenModal(editableSelectHost{modal.NewEditableSelect(title, items, d.ScreenW, d.ScreenH)}, action)
}

func (d *Dispatcher) OpenOverwrite(path string, action modal.PendingAction) {
	d.OpenModal(overwriteHost{modal.NewOverwrite(path, d.ScreenW, d.ScreenH)}, action)
}

func (d *Dispatcher) OpenConflict(path string, action modal.PendingAction) {
	d.OpenModal(conflictHost{modal.NewConflict(path, d.ScreenW, d.ScreenH)}, action)
}

func (d *Dispatcher) OpenRenamePattern(defaultPattern string, action modal.PendingAction) {
	d.OpenModal(renamePatternHost{modal.NewRenamePattern(defaultPattern, d.ScreenW, d.ScreenH)}, action)
}

func (d *Dispatcher) OpenSearch(action modal.PendingAction) {
	d.OpenModal(searchHost{modal.NewSearch(d.ScreenW, d.ScreenH)}, action)
}

func (d *Dispatcher) OpenReplace(action modal.PendingAction) {
	d.OpenModal(replaceHost{modal.NewReplace(d.ScreenW, d.ScreenH)}, action)
}

func (d *Dispatcher) OpenInfo(title, message string, action modal.PendingAction) {
	d.OpenModal(infoHost{modal.NewInfo(title, message, d.ScreenW, d.ScreenH)}, action)
}

// HandleKey implements spec.md 4.H's 5-step dispatch order for one key
// event.
func (d *Dispatcher) HandleKey(ev *tcell.EventKey) {
	if d.modal != nil {
		outcome, consumed := d.modal.HandleKey(ev)
		if outcome != nil {
			d.resolveModal(*outcome)
		}
		if consumed {
			return
		}
	}
	if d.menuOpen {
		if d.handleMenuKey(ev) {
			return
		}
	}
	if d.OnGlobalHotkey != nil && d.OnGlobalHotkey(d, ev) {
		return
	}
	active := d.ActivePanel()
	if active == nil {
		return
	}
	events := active.HandleKey(ev)
	d.consumeEvents(events)
}

// handleMenuKey is the menu step of the dispatch order. No menu model
// (entries, submenus) exists in the module and nothing sets menuOpen, so
// this only closes the menu on Escape.
func (d *Dispatcher) handleMenuKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape {
		d.menuOpen = false
		return true
	}
	return false
}

// resolveModal runs when the active modal produces a non-nil result. A
// Cancelled result drops the pending action, except when the modal that
// just resolved was a rename-pattern prompt spawned from a conflict modal
// — per spec.md 4.I, cancelling that one must return to the conflict modal
// rather than abandon the batch operation. Since the rename-pattern modal
// itself doesn't know about the conflict modal that spawned it, that
// transition is the embedder's job (wired through OnPendingResolved) when
// it sees PendingRenameWithPattern cancelled: it should call OpenModal
// again with a reconstructed Conflict modal rather than leaving the modal
// closed.
func (d *Dispatcher) resolveModal(outcome ModalOutcome) {
	action := d.pending
	d.modal = nil
	d.pending = modal.PendingAction{}
	if d.OnPendingResolved != nil {
		d.OnPendingResolved(d, action, outcome)
	}
}

func (d *Dispatcher) consumeEvents(events []Event) {
	for _, e := range events {
		switch e.Kind {
		case EventStatusMessage:
			d.StatusMessage = e.Message
			d.StatusIsError = e.IsError
		case EventOpenFile:
			// No editor panel is opened: this package has no notion of
			// how panels are created, and no hook passes OpenFile on to
			// the embedder, so only a status message is recorded.
			d.StatusMessage = "opening " + e.Path
		case EventRequestModal:
			d.openRequestedModal(e)
		}
	}
}

// openRequestedModal opens the concrete modal a panel asked for (e.g. the
// file manager's delete-confirmation or new-directory prompt), carrying
// the panel-supplied request data forward as the PendingAction's payload
// so OnPendingResolved can act on it once the modal resolves.
func (d *Dispatcher) openRequestedModal(e Event) {
	req, _ := e.ModalData.(*filemanager.ModalRequest)
	switch e.ModalKind {
	case ModalConfirmDelete:
		action := modal.NewPendingAction(modal.PendingDeleteList, req)
		d.OpenConfirm("Confirm", req.Prompt, "", action)
	case ModalInputNewDir:
		action := modal.NewPendingAction(modal.PendingCreateDir, req)
		d.OpenInput("New Directory", req.Prompt, "", action)
	case ModalInputSaveAs:
		action := modal.NewPendingAction(modal.PendingSaveAs, req)
		d.OpenInput("Destination", req.Prompt, "", action)
	}
}

// Resize propagates a terminal resize to every panel via HandleCommand.
func (d *Dispatcher) Resize(rows, cols int) {
	d.ScreenW, d.ScreenH = cols, rows
	for _, p := range d.Panels {
		p.HandleCommand(Command{Kind: CommandResize, Rows: rows, Cols: cols})
	}
}

// RenderModal draws the open modal, if any, on top of the screen; panels
// are rendered by the caller (the modal owns drawing itself via
// tcell.Screen, matching the teacher's box-drawing convention, rather than
// through the cell-buffer path panels use).
func (d *Dispatcher) RenderModal(screen tcell.Screen) {
	if d.modal != nil {
		d.modal.Render(screen)
	}
}
