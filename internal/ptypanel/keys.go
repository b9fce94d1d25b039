package ptypanel

import (
	"unicode/utf8"

	"github.com/ellery/stacktile/internal/clipboard"
	"github.com/micro-editor/tcell/v2"
)

// HandleKey translates a key event into PTY bytes (or a local action) and
// writes it, following spec.md 4.E's key-translation rules. It returns
// false if the event was not consumed (e.g. panel not running).
func (p *Panel) HandleKey(ev *tcell.EventKey) bool {
	if p.QuickCommandMode {
		p.handleQuickCommand(ev)
		return true
	}
	if ev.Key() == tcell.KeyCtrlBackslash {
		p.QuickCommandMode = true
		return true
	}

	if ev.Modifiers()&tcell.ModShift != 0 {
		switch ev.Key() {
		case tcell.KeyPgUp:
			p.mu.Lock()
			p.screen.ScrollOffset += p.rows - 1
			max := p.screen.Scrollback().Len()
			if p.screen.ScrollOffset > max {
				p.screen.ScrollOffset = max
			}
			p.mu.Unlock()
			return true
		case tcell.KeyPgDn:
			p.mu.Lock()
			p.screen.ScrollOffset -= p.rows - 1
			if p.screen.ScrollOffset < 0 {
				p.screen.ScrollOffset = 0
			}
			p.mu.Unlock()
			return true
		case tcell.KeyHome:
			p.mu.Lock()
			p.screen.ScrollOffset = p.screen.Scrollback().Len()
			p.mu.Unlock()
			return true
		case tcell.KeyEnd:
			p.mu.Lock()
			p.screen.ScrollOffset = 0
			p.mu.Unlock()
			return true
		case tcell.KeyEnter:
			_, err := p.Write([]byte("\x1b[13;2u"))
			return err == nil
		}
	}

	if ev.Key() == tcell.KeyCtrlC && p.HasSelection() {
		text := p.EndSelection()
		if p.clip != nil {
			_ = p.clip.Write(text, clipboard.ClipboardReg)
		}
		return true
	}

	data := p.keyToBytes(ev)
	if data == nil {
		return false
	}
	_, err := p.Write(data)
	return err == nil
}

func (p *Panel) handleQuickCommand(ev *tcell.EventKey) {
	p.QuickCommandMode = false
	if ev.Key() == tcell.KeyEscape {
		return
	}
	if ev.Key() == tcell.KeyRune {
		switch ev.Rune() {
		case 'q', 'Q':
			if p.OnQuickQuit != nil {
				p.OnQuickQuit()
			}
		case 'w', 'W':
			if p.OnQuickNextPane != nil {
				p.OnQuickNextPane()
			}
		}
	}
}

// keyToBytes converts a key event to the bytes the shell expects,
// respecting the screen's application-cursor-keys mode for the keys that
// vary under it.
func (p *Panel) keyToBytes(ev *tcell.EventKey) []byte {
	p.mu.RLock()
	appCursor := p.screen.AppCursorKeys
	p.mu.RUnlock()

	ss3 := func(b byte) []byte {
		if appCursor {
			return []byte{0x1b, 'O', b}
		}
		return []byte{0x1b, '[', b}
	}

	switch ev.Key() {
	case tcell.KeyEnter:
		return []byte{'\r'}
	case tcell.KeyTab:
		return []byte{'\t'}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return []byte{0x7f}
	case tcell.KeyEscape:
		return []byte{0x1b}
	case tcell.KeyUp:
		return ss3('A')
	case tcell.KeyDown:
		return ss3('B')
	case tcell.KeyRight:
		return ss3('C')
	case tcell.KeyLeft:
		return ss3('D')
	case tcell.KeyHome:
		return ss3('H')
	case tcell.KeyEnd:
		return ss3('F')
	case tcell.KeyPgUp:
		return []byte{0x1b, '[', '5', '~'}
	case tcell.KeyPgDn:
		return []byte{0x1b, '[', '6', '~'}
	case tcell.KeyInsert:
		return []byte{0x1b, '[', '2', '~'}
	case tcell.KeyDelete:
		return []byte{0x1b, '[', '3', '~'}
	case tcell.KeyF1:
		return []byte{0x1b, 'O', 'P'}
	case tcell.KeyF2:
		return []byte{0x1b, 'O', 'Q'}
	case tcell.KeyF3:
		return []byte{0x1b, 'O', 'R'}
	case tcell.KeyF4:
		return []byte{0x1b, 'O', 'S'}
	case tcell.KeyF5:
		return []byte{0x1b, '[', '1', '5', '~'}
	case tcell.KeyF6:
		return []byte{0x1b, '[', '1', '7', '~'}
	case tcell.KeyF7:
		return []byte{0x1b, '[', '1', '8', '~'}
	case tcell.KeyF8:
		return []byte{0x1b, '[', '1', '9', '~'}
	case tcell.KeyF9:
		return []byte{0x1b, '[', '2', '0', '~'}
	case tcell.KeyF10:
		return []byte{0x1b, '[', '2', '1', '~'}
	case tcell.KeyF11:
		return []byte{0x1b, '[', '2', '3', '~'}
	case tcell.KeyF12:
		return []byte{0x1b, '[', '2', '4', '~'}
	case tcell.KeyCtrlA:
		return []byte{0x01}
	case tcell.KeyCtrlB:
		return []byte{0x02}
	case tcell.KeyCtrlC:
		return []byte{0x03}
	case tcell.KeyCtrlD:
		return []byte{0x04}
	case tcell.KeyCtrlE:
		return []byte{0x05}
	case tcell.KeyCtrlF:
		return []byte{0x06}
	case tcell.KeyCtrlG:
		return []byte{0x07}
	case tcell.KeyCtrlJ:
		return []byte{'\n'}
	case tcell.KeyCtrlK:
		return []byte{0x0b}
	case tcell.KeyCtrlL:
		return []byte{0x0c}
	case tcell.KeyCtrlN:
		return []byte{0x0e}
	case tcell.KeyCtrlO:
		return []byte{0x0f}
	case tcell.KeyCtrlP:
		return []byte{0x10}
	case tcell.KeyCtrlQ:
		return []byte{0x11}
	case tcell.KeyCtrlR:
		return []byte{0x12}
	case tcell.KeyCtrlS:
		return []byte{0x13}
	case tcell.KeyCtrlT:
		return []byte{0x14}
	case tcell.KeyCtrlU:
		return []byte{0x15}
	case tcell.KeyCtrlV:
		return []byte{0x16}
	case tcell.KeyCtrlW:
		return []byte{0x17}
	case tcell.KeyCtrlX:
		return []byte{0x18}
	case tcell.KeyCtrlY:
		return []byte{0x19}
	case tcell.KeyCtrlZ:
		return []byte{0x1a}
	case tcell.KeyCtrlBackslash:
		return []byte{0x1c}
	case tcell.KeyCtrlRightSq:
		return []byte{0x1d}
	case tcell.KeyCtrlCarat:
		return []byte{0x1e}
	case tcell.KeyCtrlUnderscore:
		return []byte{0x1f}
	case tcell.KeyRune:
		r := ev.Rune()
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			if r >= 'a' && r <= 'z' {
				return []byte{byte(r - 'a' + 1)}
			}
			if r >= 'A' && r <= 'Z' {
				return []byte{byte(r - 'A' + 1)}
			}
		}
		if r < 128 {
			return []byte{byte(r)}
		}
		buf := make([]byte, 4)
		n := utf8.EncodeRune(buf, r)
		return buf[:n]
	}
	return nil
}

// Paste sends clipboard text to the PTY, bracketed if the screen has
// bracketed-paste mode enabled.
func (p *Panel) Paste(text string) (int, error) {
	p.mu.RLock()
	bracketed := p.screen.BracketedPaste
	p.mu.RUnlock()
	if !bracketed {
		return p.Write([]byte(text))
	}
	data := append([]byte("\x1b[200~"), []byte(text)...)
	data = append(data, []byte("\x1b[201~")...)
	return p.Write(data)
}
