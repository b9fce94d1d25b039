package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWatchesCreatedFile(t *testing.T) {
	dir := t.TempDir()

	dw, err := New(dir, nil)
	require.NoError(t, err)
	defer dw.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hi"), 0o644))

	select {
	case batch := <-dw.Changes():
		assert.Contains(t, batch, filepath.Join(dir, "a.txt"))
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}
}

func TestSkipDirsAreNotWatched(t *testing.T) {
	dir := t.TempDir()
	skip := filepath.Join(dir, "node_modules")
	require.NoError(t, os.Mkdir(skip, 0o755))

	dw, err := New(dir, map[string]bool{"node_modules": true})
	require.NoError(t, err)
	defer dw.Close()

	require.NoError(t, os.WriteFile(filepath.Join(skip, "ignored.txt"), []byte("x"), 0o644))

	select {
	case batch := <-dw.Changes():
		t.Fatalf("expected no notification for skipped dir, got %v", batch)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestBurstOfEventsCoalescesIntoOneBatch(t *testing.T) {
	dir := t.TempDir()

	dw, err := New(dir, nil)
	require.NoError(t, err)
	defer dw.Close()

	for i := 0; i < 5; i++ {
		name := filepath.Join(dir, "f"+string(rune('0'+i)))
		require.NoError(t, os.WriteFile(name, []byte("x"), 0o644))
	}

	select {
	case batch := <-dw.Changes():
		assert.LessOrEqual(t, len(batch), 5)
		assert.NotEmpty(t, batch)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for coalesced batch")
	}

	select {
	case extra := <-dw.Changes():
		t.Fatalf("expected exactly one coalesced batch, got a second: %v", extra)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestInfoShouldReloadGitRepoWithinTree(t *testing.T) {
	info := Info{WatchedRoot: "/repo", CurrentPath: "/repo/src", IsGitRepo: true}

	assert.True(t, info.ShouldReload("/repo/src/main.go", nil))
	assert.False(t, info.ShouldReload("/other/main.go", nil))

	ignored := func(p string) bool { return p == "/repo/target/out" }
	assert.False(t, info.ShouldReload("/repo/target/out", ignored))
}

func TestInfoShouldReloadNonGitOnlyDirectChildren(t *testing.T) {
	info := Info{WatchedRoot: "/proj", CurrentPath: "/proj/src", IsGitRepo: false}

	assert.True(t, info.ShouldReload("/proj/src/main.go", nil))
	assert.False(t, info.ShouldReload("/proj/src/nested/deep.go", nil))
}
