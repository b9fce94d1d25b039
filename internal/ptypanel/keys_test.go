package ptypanel

import (
	"testing"

	"github.com/ellery/stacktile/internal/vt"
	"github.com/micro-editor/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func newTestPanel(rows, cols int) *Panel {
	return &Panel{
		screen: vt.NewScreen(rows, cols, 100),
		parser: vt.NewParser(),
		rows:   rows,
		cols:   cols,
	}
}

func TestArrowKeyNormalMode(t *testing.T) {
	p := newTestPanel(10, 10)
	b := p.keyToBytes(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	assert.Equal(t, []byte{0x1b, '[', 'A'}, b)
}

func TestArrowKeyAppCursorMode(t *testing.T) {
	p := newTestPanel(10, 10)
	p.screen.AppCursorKeys = true
	b := p.keyToBytes(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	assert.Equal(t, []byte{0x1b, 'O', 'A'}, b)
}

func TestBackspaceSendsDEL(t *testing.T) {
	p := newTestPanel(10, 10)
	b := p.keyToBytes(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	assert.Equal(t, []byte{0x7f}, b)
}

func TestCtrlLetterRuneMapsToControlByte(t *testing.T) {
	p := newTestPanel(10, 10)
	b := p.keyToBytes(tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModCtrl))
	assert.Equal(t, []byte{0x03}, b)
}

func TestFunctionKeyF5(t *testing.T) {
	p := newTestPanel(10, 10)
	b := p.keyToBytes(tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone))
	assert.Equal(t, []byte{0x1b, '[', '1', '5', '~'}, b)
}
