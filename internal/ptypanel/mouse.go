package ptypanel

import (
	"strconv"

	"github.com/ellery/stacktile/internal/clipboard"
	"github.com/ellery/stacktile/internal/vt"
	"github.com/micro-editor/tcell/v2"
)

// HandleMouse dispatches a mouse event relative to the panel's content
// area (row, col already clamped into [0,rows)x[0,cols) by the caller).
// Wheel scroll is always handled locally; button press/drag/release drive
// the local copy-selection and are additionally forwarded to the PTY when
// a mouse-tracking mode is enabled, per spec.md 4.E.
func (p *Panel) HandleMouse(row, col int, buttons tcell.ButtonMask, mods tcell.ModMask) bool {
	if buttons == tcell.WheelUp {
		p.mu.Lock()
		p.screen.ScrollOffset += 3
		if max := p.screen.Scrollback().Len(); p.screen.ScrollOffset > max {
			p.screen.ScrollOffset = max
		}
		p.mu.Unlock()
		return true
	}
	if buttons == tcell.WheelDown {
		p.mu.Lock()
		p.screen.ScrollOffset -= 3
		if p.screen.ScrollOffset < 0 {
			p.screen.ScrollOffset = 0
		}
		p.mu.Unlock()
		return true
	}

	p.mu.RLock()
	scrollbackLen := p.screen.Scrollback().Len()
	offset := p.screen.ScrollOffset
	tracking := p.screen.MouseTracking
	p.mu.RUnlock()
	virtualRow := scrollbackLen - offset + row

	switch buttons {
	case tcell.Button1:
		p.BeginSelection(virtualRow, col)
		p.forwardMouse(row, col, 0, mods, true, tracking)
		return true
	case tcell.ButtonNone:
		if p.HasSelection() {
			text := p.EndSelection()
			if p.clip != nil && text != "" {
				_ = p.clip.Write(text, clipboard.ClipboardReg)
			}
			p.forwardMouse(row, col, 0, mods, false, tracking)
			return true
		}
		return false
	default:
		return true
	}
}

// forwardMouse encodes and sends a button event to the PTY when a
// mouse-tracking mode is active, in legacy or SGR form per the screen's
// current mode.
func (p *Panel) forwardMouse(row, col, button int, mods tcell.ModMask, press bool, tracking vt.MouseTracking) {
	if tracking == vt.MouseNone {
		return
	}
	p.mu.RLock()
	sgr := p.screen.SGRMouseMode
	p.mu.RUnlock()

	cb := button
	if mods&tcell.ModShift != 0 {
		cb |= 4
	}
	if mods&tcell.ModAlt != 0 {
		cb |= 8
	}
	if mods&tcell.ModCtrl != 0 {
		cb |= 16
	}

	if sgr {
		final := byte('M')
		if !press {
			final = 'm'
		}
		seq := []byte("\x1b[<" + strconv.Itoa(cb) + ";" + strconv.Itoa(col+1) + ";" + strconv.Itoa(row+1))
		seq = append(seq, final)
		_, _ = p.Write(seq)
		return
	}

	// Legacy X10/normal mode: release is always reported as button code 3.
	if !press {
		cb = 3
	}
	cx, cy := col+1+32, row+1+32
	if cx > 255 {
		cx = 255
	}
	if cy > 255 {
		cy = 255
	}
	_, _ = p.Write([]byte{0x1b, '[', 'M', byte(cb + 32), byte(cx), byte(cy)})
}
