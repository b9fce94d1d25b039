package vt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feed(s *Screen, text string) {
	p := NewParser()
	p.Feed(s, []byte(text))
}

func TestPrintAdvancesCursor(t *testing.T) {
	s := NewScreen(5, 10, 100)
	feed(s, "hi")
	assert.Equal(t, 2, s.cursorCol)
	assert.Equal(t, 'h', s.Grid().Rows[0][0].Ch)
	assert.Equal(t, 'i', s.Grid().Rows[0][1].Ch)
}

func TestNewlineScrollsAtBottom(t *testing.T) {
	s := NewScreen(2, 5, 100)
	feed(s, "aaaaa\r\nbbbbb\r\nccccc")
	assert.Equal(t, 1, s.Scrollback().Len())
	assert.Equal(t, 'b', s.Grid().Rows[0][0].Ch)
	assert.Equal(t, 'c', s.Grid().Rows[1][0].Ch)
}

func TestCursorPositionCSI(t *testing.T) {
	s := NewScreen(10, 10, 0)
	feed(s, "\x1b[3;5H")
	row, col := s.Cursor()
	assert.Equal(t, 2, row)
	assert.Equal(t, 4, col)
}

func TestEraseDisplayMode2ClearsAll(t *testing.T) {
	s := NewScreen(3, 3, 0)
	feed(s, "abc")
	feed(s, "\x1b[2J")
	for _, c := range s.Grid().Rows[0] {
		assert.Equal(t, ' ', c.Ch)
	}
}

func TestSGRBoldAndColor(t *testing.T) {
	s := NewScreen(2, 10, 0)
	feed(s, "\x1b[1;31mX")
	cell := s.Grid().Rows[0][0]
	assert.Equal(t, 'X', cell.Ch)
	fg, _, _ := cell.Style.Decompose()
	assert.Equal(t, xterm256(1), fg)
}

func TestAltScreenSwitchPreservesPrimaryScrollback(t *testing.T) {
	s := NewScreen(2, 5, 100)
	feed(s, "aaaaa\r\nbbbbb\r\nccccc")
	n := s.Scrollback().Len()
	feed(s, "\x1b[?1049h")
	require.True(t, s.AltScreenActive())
	feed(s, "zzzzz\r\nyyyyy\r\nxxxxx")
	assert.Equal(t, n, s.Scrollback().Len())
	feed(s, "\x1b[?1049l")
	assert.False(t, s.AltScreenActive())
}

func TestResizeClampsCursor(t *testing.T) {
	s := NewScreen(10, 10, 0)
	feed(s, "\x1b[10;10H")
	s.Resize(5, 5)
	row, col := s.Cursor()
	assert.True(t, row < 5)
	assert.True(t, col < 5)
}

func TestPrivateModeCursorVisibility(t *testing.T) {
	s := NewScreen(5, 5, 0)
	assert.True(t, s.CursorVisible)
	feed(s, "\x1b[?25l")
	assert.False(t, s.CursorVisible)
	feed(s, "\x1b[?25h")
	assert.True(t, s.CursorVisible)
}

func TestMouseTrackingModeSGR(t *testing.T) {
	s := NewScreen(5, 5, 0)
	feed(s, "\x1b[?1000h\x1b[?1006h")
	assert.Equal(t, MouseNormal, s.MouseTracking)
	assert.True(t, s.SGRMouseMode)
}
