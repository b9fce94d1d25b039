package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource []string

func (f fakeSource) LineCount() int        { return len(f) }
func (f fakeSource) LineString(i int) string { return f[i] }

func TestLineProducesSegments(t *testing.T) {
	c := NewCache("main.go", DefaultTheme())
	src := fakeSource{`func main() {}`}
	segs := c.Line(src, 0)
	require.NotEmpty(t, segs)

	var joined string
	for _, s := range segs {
		joined += s.Text
	}
	assert.Equal(t, "func main() {}", joined)
}

func TestLineIsMemoized(t *testing.T) {
	c := NewCache("main.go", DefaultTheme())
	src := fakeSource{"package main"}
	first := c.Line(src, 0)
	second := c.Line(src, 0)
	assert.Equal(t, first, second)
	_, cached := c.lines[0]
	assert.True(t, cached)
}

func TestInvalidateDropsCachedLine(t *testing.T) {
	c := NewCache("main.go", DefaultTheme())
	src := fakeSource{"package main"}
	c.Line(src, 0)
	c.Invalidate(0, 0)
	_, cached := c.lines[0]
	assert.False(t, cached)
}

func TestInvalidateOpenRange(t *testing.T) {
	c := NewCache("main.go", DefaultTheme())
	src := fakeSource{"a", "b", "c"}
	c.Line(src, 0)
	c.Line(src, 1)
	c.Line(src, 2)
	c.Invalidate(1, -1)
	_, c0 := c.lines[0]
	_, c1 := c.lines[1]
	_, c2 := c.lines[2]
	assert.True(t, c0)
	assert.False(t, c1)
	assert.False(t, c2)
}

func TestEmptyLineHasNoSegments(t *testing.T) {
	c := NewCache("main.go", DefaultTheme())
	src := fakeSource{""}
	segs := c.Line(src, 0)
	assert.Empty(t, segs)
}

func TestUnknownExtensionFallsBack(t *testing.T) {
	c := NewCache("notes.unknownext12345", DefaultTheme())
	src := fakeSource{"plain text"}
	segs := c.Line(src, 0)
	require.NotEmpty(t, segs)
}
