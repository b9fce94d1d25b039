package ptypanel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderProducesLivePaneText(t *testing.T) {
	p := newTestPanel(3, 10)
	feedScreen(p, "hi")

	lines := p.Render(true)
	require.Len(t, lines, 3)
	assert.Equal(t, 'h', lines[0].Cells[0].Ch)
	assert.Equal(t, 'i', lines[0].Cells[1].Ch)
}

func TestRenderCacheHitReturnsSameSliceWhenNotDirty(t *testing.T) {
	p := newTestPanel(3, 10)
	feedScreen(p, "hi")

	first := p.Render(true)
	p.screen.Dirty = false
	second := p.Render(true)

	assert.Same(t, &first[0], &second[0])
}

func TestRenderCacheMissOnFocusChange(t *testing.T) {
	p := newTestPanel(3, 10)
	feedScreen(p, "hi")

	p.Render(true)
	p.screen.Dirty = false
	lines := p.Render(false)
	require.Len(t, lines, 3)
}
