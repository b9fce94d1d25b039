package ptypanel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionWithinSingleLine(t *testing.T) {
	p := newTestPanel(5, 20)
	feedScreen(p, "hello world")

	p.BeginSelection(0, 0)
	p.ExtendSelection(0, 4)
	text := p.EndSelection()

	assert.Equal(t, "hello", text)
	assert.False(t, p.HasSelection())
}

func TestSelectionAcrossLinesTrimsTrailingBlanks(t *testing.T) {
	p := newTestPanel(5, 20)
	feedScreen(p, "foo\r\nbar")

	p.BeginSelection(0, 0)
	p.ExtendSelection(1, 2)
	text := p.EndSelection()

	assert.Equal(t, "foo\nbar", text)
}

func TestSelectionNormalizesReversedDrag(t *testing.T) {
	p := newTestPanel(5, 20)
	feedScreen(p, "abcdef")

	p.BeginSelection(0, 4)
	p.ExtendSelection(0, 1)
	text := p.EndSelection()

	assert.Equal(t, "bcde", text)
}

func feedScreen(p *Panel, text string) {
	parser := p.parser
	parser.Feed(p.screen, []byte(text))
}
