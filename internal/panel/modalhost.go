package panel

import (
	"github.com/ellery/stacktile/internal/modal"
	"github.com/micro-editor/tcell/v2"
)

// ModalOutcome is the non-generic shape every modal.Result[T] collapses
// into once it reaches the dispatcher: Confirmed mirrors the generic
// Result's field, Value carries whatever payload that variant produced
// (type-asserted by the caller that knows which PendingKind is in flight).
type ModalOutcome struct {
	Confirmed bool
	Value     any
}

// activeModal is the interface the dispatcher holds polymorphically: one
// of the ten modal.* variants, each wrapped so its generic Result[T]
// collapses to ModalOutcome. This is the bridge the generic Result[T]
// design needs in order to be stored behind a single field on Dispatcher.
type activeModal interface {
	HandleKey(ev *tcell.EventKey) (*ModalOutcome, bool)
	// HandleMouse takes the row clicked within the modal (meaningful only
	// for list-like variants) and the button mask; variants without their
	// own mouse handling just consume while active.
	HandleMouse(row int, buttons tcell.ButtonMask) (*ModalOutcome, bool)
	Render(screen tcell.Screen)
}

type confirmHost struct{ m *modal.Confirm }

func (h confirmHost) HandleKey(ev *tcell.EventKey) (*ModalOutcome, bool) {
	r, consumed := h.m.HandleKey(ev)
	return wrap(r), consumed
}
func (h confirmHost) HandleMouse(row int, buttons tcell.ButtonMask) (*ModalOutcome, bool) {
	r, consumed := h.m.HandleMouse(buttons)
	return wrap(r), consumed
}
func (h confirmHost) Render(s tcell.Screen) { h.m.Render(s) }

type inputHost struct{ m *modal.Input }

func (h inputHost) HandleKey(ev *tcell.EventKey) (*ModalOutcome, bool) {
	r, consumed := h.m.HandleKey(ev)
	return wrap(r), consumed
}
func (h inputHost) HandleMouse(row int, buttons tcell.ButtonMask) (*ModalOutcome, bool) {
	r, consumed := h.m.HandleMouse(buttons)
	return wrap(r), consumed
}
func (h inputHost) Render(s tcell.Screen) { h.m.Render(s) }

type selectHost struct{ m *modal.Select }

func (h selectHost) HandleKey(ev *tcell.EventKey) (*ModalOutcome, bool) {
	r, consumed := h.m.HandleKey(ev)
	return wrap(r), consumed
}
func (h selectHost) HandleMouse(row int, buttons tcell.ButtonMask) (*ModalOutcome, bool) {
	r, consumed := h.m.HandleMouse(row, buttons)
	return wrap(r), consumed
}
func (h selectHost) Render(s tcell.Screen) { h.m.Render(s) }

type editableSelectHost struct{ m *modal.EditableSelect }

func (h editableSelectHost) HandleKey(ev *tcell.EventKey) (*ModalOutcome, bool) {
	r, consumed := h.m.HandleKey(ev)
	return wrap(r), consumed
}
func (h editableSelectHost) HandleMouse(row int, buttons tcell.ButtonMask) (*ModalOutcome, bool) {
	r, consumed := h.m.HandleMouse(row, buttons)
	return wrap(r), consumed
}
func (h editableSelectHost) Render(s tcell.Screen) { h.m.Render(s) }

type overwriteHost struct{ m *modal.Overwrite }

func (h overwriteHost) HandleKey(ev *tcell.EventKey) (*ModalOutcome, bool) {
	r, consumed := h.m.HandleKey(ev)
	return wrap(r), consumed
}
func (h overwriteHost) HandleMouse(row int, buttons tcell.ButtonMask) (*ModalOutcome, bool) {
	return nil, h.m.Active
}
func (h overwriteHost) Render(s tcell.Screen) { h.m.Render(s) }

type conflictHost struct{ m *modal.Conflict }

func (h conflictHost) HandleKey(ev *tcell.EventKey) (*ModalOutcome, bool) {
	r, consumed := h.m.HandleKey(ev)
	return wrap(r), consumed
}
func (h conflictHost) HandleMouse(row int, buttons tcell.ButtonMask) (*ModalOutcome, bool) {
	return nil, h.m.Active
}
func (h conflictHost) Render(s tcell.Screen) { h.m.Render(s) }

type renamePatternHost struct{ m *modal.RenamePattern }

func (h renamePatternHost) HandleKey(ev *tcell.EventKey) (*ModalOutcome, bool) {
	r, consumed := h.m.HandleKey(ev)
	return wrap(r), consumed
}
func (h renamePatternHost) HandleMouse(row int, buttons tcell.ButtonMask) (*ModalOutcome, bool) {
	return nil, h.m.Active
}
func (h renamePatternHost) Render(s tcell.Screen) { h.m.Render(s) }

type searchHost struct{ m *modal.Search }

func (h searchHost) HandleKey(ev *tcell.EventKey) (*ModalOutcome, bool) {
	r, consumed := h.m.HandleKey(ev)
	return wrap(r), consumed
}
func (h searchHost) HandleMouse(row int, buttons tcell.ButtonMask) (*ModalOutcome, bool) {
	return nil, h.m.Active
}
func (h searchHost) Render(s tcell.Screen) { h.m.Render(s) }

type replaceHost struct{ m *modal.Replace }

func (h replaceHost) HandleKey(ev *tcell.EventKey) (*ModalOutcome, bool) {
	r, consumed := h.m.HandleKey(ev)
	return wrap(r), consumed
}
func (h replaceHost) HandleMouse(row int, buttons tcell.ButtonMask) (*ModalOutcome, bool) {
	return nil, h.m.Active
}
func (h replaceHost) Render(s tcell.Screen) { h.m.Render(s) }

type infoHost struct{ m *modal.Info }

func (h infoHost) HandleKey(ev *tcell.EventKey) (*ModalOutcome, bool) {
	r, consumed := h.m.HandleKey(ev)
	return wrap(r), consumed
}
func (h infoHost) HandleMouse(row int, buttons tcell.ButtonMask) (*ModalOutcome, bool) {
	return nil, h.m.Active
}
func (h infoHost) Render(s tcell.Screen) { h.m.Render(s) }

// wrap collapses any modal.Result[T] into *ModalOutcome; a nil Result (the
// common "still active, nothing resolved" case) stays nil.
func wrap[T any](r *modal.Result[T]) *ModalOutcome {
	if r == nil {
		return nil
	}
	return &ModalOutcome{Confirmed: r.Confirmed, Value: r.Value}
}
