package filemanager

import (
	"strings"

	"github.com/micro-editor/tcell/v2"
	"github.com/mitchellh/go-homedir"
)

// Event is a side effect HandleKey asks the caller (the central dispatcher)
// to perform next, mirroring spec.md 4.H's panel-event model.
type Event struct {
	Kind EventKind

	OpenFilePath string

	StatusMessage string
	IsError       bool

	// Batch is set on EventStartBatch (a clipboard paste); ShowModal carries
	// the modal-open request the batch operation or a direct key suspended on.
	Batch     *BatchOperation
	ShowModal *ModalRequest
}

type EventKind int

const (
	EventNone EventKind = iota
	EventOpenFile
	EventStatusMessage
	EventStartBatch
	EventShowModal
)

// ModalRequest is the minimal shape filemanager hands to internal/modal;
// the actual modal variants live there.
type ModalRequest struct {
	Variant string
	Prompt  string
	Data    any
}

// HandleKey applies spec.md 4.F's key-binding table and returns any events
// the caller must act on.
func (s *State) HandleKey(ev *tcell.EventKey) []Event {
	mods := ev.Modifiers()

	switch ev.Key() {
	case tcell.KeyUp:
		s.moveCursor(-1, mods)
		return nil
	case tcell.KeyDown:
		s.moveCursor(1, mods)
		return nil
	case tcell.KeyHome:
		s.jumpTo(0)
		return nil
	case tcell.KeyEnd:
		s.mu.RLock()
		last := len(s.Entries) - 1
		s.mu.RUnlock()
		s.jumpTo(last)
		return nil
	case tcell.KeyInsert:
		s.toggleCurrentAndAdvance()
		return nil
	case tcell.KeyCtrlA:
		s.selectAll()
		return nil
	case tcell.KeyEsc:
		s.clearSelection()
		return nil
	case tcell.KeyEnter:
		return s.openCurrent()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return s.ascend()
	case tcell.KeyF4:
		return s.openCurrent()
	case tcell.KeyF5:
		return s.requestBatch(BatchCopy)
	case tcell.KeyF6:
		return s.requestBatch(BatchMove)
	case tcell.KeyF7:
		return s.requestMakeDir()
	case tcell.KeyF8, tcell.KeyDelete:
		return s.requestDelete()
	case tcell.KeyCtrlC:
		s.copyPathsToClipboard()
		return nil
	case tcell.KeyCtrlX:
		s.cutPathsToClipboard()
		return nil
	case tcell.KeyCtrlV:
		return s.pasteFromClipboard()
	case tcell.KeyRune:
		if ev.Rune() == '~' {
			return s.goHome()
		}
		if ev.Rune() == 'c' || ev.Rune() == 'C' {
			return s.requestBatch(BatchCopy)
		}
		if ev.Rune() == 'm' || ev.Rune() == 'M' {
			return s.requestBatch(BatchMove)
		}
		if ev.Rune() == 'd' || ev.Rune() == 'D' {
			return s.requestMakeDir()
		}
	}
	return nil
}

func (s *State) moveCursor(delta int, mods tcell.ModMask) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Entries) == 0 {
		return
	}
	from := s.Selected
	to := clamp(from+delta, 0, len(s.Entries)-1)
	if to == from {
		return
	}

	switch {
	case mods&tcell.ModShift != 0:
		s.extendRangeLocked(from, to)
	case mods&tcell.ModCtrl != 0:
		if s.MultiSelect == nil {
			s.MultiSelect = make(map[int]bool)
		}
		s.MultiSelect[from] = !s.MultiSelect[from]
	}
	s.Selected = to
}

func (s *State) extendRangeLocked(from, to int) {
	if s.MultiSelect == nil {
		s.MultiSelect = make(map[int]bool)
	}
	lo, hi := from, to
	if lo > hi {
		lo, hi = hi, lo
	}
	for i := lo; i <= hi; i++ {
		s.MultiSelect[i] = true
	}
}

func (s *State) jumpTo(idx int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Entries) == 0 {
		return
	}
	s.Selected = clamp(idx, 0, len(s.Entries)-1)
}

func (s *State) toggleCurrentAndAdvance() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Entries) == 0 {
		return
	}
	if s.MultiSelect == nil {
		s.MultiSelect = make(map[int]bool)
	}
	s.MultiSelect[s.Selected] = !s.MultiSelect[s.Selected]
	if s.Selected < len(s.Entries)-1 {
		s.Selected++
	}
}

func (s *State) selectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.MultiSelect = make(map[int]bool, len(s.Entries))
	for i := range s.Entries {
		if !s.Entries[i].IsParent {
			s.MultiSelect[i] = true
		}
	}
}

func (s *State) clearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.MultiSelect = make(map[int]bool)
}

func (s *State) openCurrent() []Event {
	entry, ok := s.CurrentEntry()
	if !ok || entry.Deleted {
		return nil
	}
	if entry.IsDir {
		_ = s.LoadDirectory(entry.Path)
		return nil
	}
	return []Event{{Kind: EventOpenFile, OpenFilePath: entry.Path}}
}

func (s *State) ascend() []Event {
	s.mu.RLock()
	dir := s.CurrentPath
	s.mu.RUnlock()
	parent := parentDir(dir)
	if parent == dir {
		return nil
	}
	_ = s.LoadDirectory(parent)
	return nil
}

func (s *State) goHome() []Event {
	home, err := homedir.Dir()
	if err != nil {
		return nil
	}
	_ = s.LoadDirectory(home)
	return nil
}

func parentDir(dir string) string {
	if dir == "/" || dir == "" {
		return dir
	}
	idx := strings.LastIndexByte(strings.TrimSuffix(dir, "/"), '/')
	if idx <= 0 {
		return "/"
	}
	return dir[:idx]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// requestBatch, requestMakeDir, requestDelete, and the clipboard helpers
// are defined in ops.go, which depends on State's selection helpers
// defined here.
