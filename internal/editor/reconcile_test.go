package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ellery/stacktile/internal/rope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReloadPreservingCursorKeepsRelativePosition(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("line1\nline2\nline3"), 0644))

	b, err := rope.Load(path)
	require.NoError(t, err)
	e := New(b, path)
	e.Cursor = rope.Cursor{Line: 2, Col: 3}

	require.NoError(t, os.WriteFile(path, []byte("line0\nline1\nline2\nline3"), 0644))
	e.externalChange = true
	require.NoError(t, e.ReloadPreservingCursor())

	assert.Equal(t, "line0\nline1\nline2\nline3", e.Buffer.Text())
	assert.Equal(t, rope.Cursor{Line: 3, Col: 3}, e.Cursor)
	assert.False(t, e.ExternalChangePending())
}

func TestGitDiffCacheGetDefaultsToUnmodified(t *testing.T) {
	c := NewGitDiffCache("/tmp/does-not-matter.go")
	ld := c.Get(5)
	assert.Equal(t, LineUnmodified, ld.Status)
}
