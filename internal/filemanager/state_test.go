package filemanager

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateLoadsDirectoryWithParentRow(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "a-dir"), 0o755))

	s, err := NewState(dir)
	require.NoError(t, err)

	require.Len(t, s.Entries, 3)
	assert.Equal(t, "..", s.Entries[0].Name)
	assert.True(t, s.Entries[1].IsDir)
	assert.Equal(t, "a-dir", s.Entries[1].Name)
	assert.Equal(t, "b.txt", s.Entries[2].Name)
}

func TestReloadRestoresSelectionByName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "zzz.txt"), []byte("x"), 0o644))

	s, err := NewState(dir)
	require.NoError(t, err)

	for i, e := range s.Entries {
		if e.Name == "keep.txt" {
			s.Selected = i
		}
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "aaa-new.txt"), []byte("x"), 0o644))
	s.forceNextReload()
	require.NoError(t, s.Reload())

	entry, ok := s.CurrentEntry()
	require.True(t, ok)
	assert.Equal(t, "keep.txt", entry.Name)
}

func TestReloadDebounceDropsRapidCalls(t *testing.T) {
	dir := t.TempDir()
	s, err := NewState(dir)
	require.NoError(t, err)

	s.lastReload = time.Now()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), []byte("x"), 0o644))
	require.NoError(t, s.Reload())

	found := false
	for _, e := range s.Entries {
		if e.Name == "new.txt" {
			found = true
		}
	}
	assert.False(t, found, "reload within the debounce window should have been dropped")
}

func TestSelectedEntriesFallsBackToCursorEntry(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "only.txt"), []byte("x"), 0o644))

	s, err := NewState(dir)
	require.NoError(t, err)
	for i, e := range s.Entries {
		if e.Name == "only.txt" {
			s.Selected = i
		}
	}

	sel := s.SelectedEntries()
	require.Len(t, sel, 1)
	assert.Equal(t, "only.txt", sel[0].Name)
}
