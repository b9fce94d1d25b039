package modal

import "github.com/google/uuid"

// PendingKind tags the action the main loop takes once its modal resolves,
// per spec.md 4.I's "single pending_action linked to the open modal".
type PendingKind int

const (
	PendingNone PendingKind = iota
	PendingCreateFile
	PendingCreateDir
	PendingDeleteList
	PendingBatchCopy
	PendingBatchMove
	PendingSaveAs
	PendingCloseEditor
	PendingRenameWithPattern
	PendingStartSearch
	PendingReplaceStep2
	PendingQuit
)

// PendingAction carries whatever state a resolving modal needs handed back
// to the dispatcher. ID lets the conflict->rename-pattern transition (the
// one case where Cancelled doesn't just drop the action) re-associate the
// rename-pattern modal's result with the BatchOperation that spawned it.
type PendingAction struct {
	ID   string
	Kind PendingKind
	Data any
}

func NewPendingAction(kind PendingKind, data any) PendingAction {
	return PendingAction{ID: uuid.NewString(), Kind: kind, Data: data}
}
