package filemanager

import "github.com/micro-editor/tcell/v2"

// HandleMouse implements spec.md 4.F's drag-selection state machine: a
// Shift-drag press adds the range from the previously focused row to the
// clicked row; a Ctrl-drag toggles each newly crossed row once; the set of
// rows processed during the drag is cleared on button-up.
func (s *State) HandleMouse(row int, buttons tcell.ButtonMask, mods tcell.ModMask) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := row + s.ScrollOffset
	if idx < 0 || idx >= len(s.Entries) {
		if buttons == tcell.ButtonNone {
			s.Drag = DragState{}
		}
		return nil
	}

	switch {
	case buttons&tcell.Button1 != 0 && !s.Drag.Active:
		prev := s.Selected
		s.Selected = idx
		mode := DragNone
		switch {
		case mods&tcell.ModShift != 0:
			mode = DragSelect
		case mods&tcell.ModCtrl != 0:
			mode = DragToggle
		}
		if mode == DragNone {
			s.MultiSelect = make(map[int]bool)
		} else {
			s.Drag = DragState{Active: true, StartIndex: prev, Mode: mode, ProcessedIndices: map[int]bool{idx: true}}
			if mode == DragToggle {
				s.applyDragLocked(idx, idx)
			} else {
				s.applyDragLocked(prev, idx)
			}
		}

	case buttons&tcell.Button1 != 0 && s.Drag.Active:
		s.Selected = idx
		if !s.Drag.ProcessedIndices[idx] {
			s.Drag.ProcessedIndices[idx] = true
			if s.Drag.Mode == DragToggle {
				s.applyDragLocked(idx, idx)
			} else {
				s.applyDragLocked(s.Drag.StartIndex, idx)
			}
		}

	case buttons == tcell.ButtonNone:
		s.Drag = DragState{}
	}

	return nil
}

// applyDragLocked applies the current drag mode to the range [from, to],
// must be called with s.mu held.
func (s *State) applyDragLocked(from, to int) {
	if s.MultiSelect == nil {
		s.MultiSelect = make(map[int]bool)
	}
	lo, hi := from, to
	if lo > hi {
		lo, hi = hi, lo
	}
	for i := lo; i <= hi; i++ {
		if s.Drag.Mode == DragToggle {
			s.MultiSelect[i] = !s.MultiSelect[i]
		} else {
			s.MultiSelect[i] = true
		}
	}
}
