package filemanager

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchCopySingleSourceUsesExplicitDestination(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()
	srcFile := filepath.Join(srcDir, "a.txt")
	require.NoError(t, os.WriteFile(srcFile, []byte("hello"), 0o644))

	info, err := os.Stat(srcFile)
	require.NoError(t, err)

	dest := filepath.Join(destDir, "renamed.txt")
	op := NewBatchOperation(BatchCopy, []Entry{{Name: "a.txt", Path: srcFile, Info: info}}, dest)

	result := op.Step()
	require.True(t, result.Done)
	assert.Equal(t, 1, op.SuccessCount)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestBatchCopySuspendsOnConflictAndResumesOverwrite(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()
	srcFile := filepath.Join(srcDir, "a.txt")
	require.NoError(t, os.WriteFile(srcFile, []byte("new"), 0o644))
	existing := filepath.Join(destDir, "a.txt")
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0o644))

	info, _ := os.Stat(srcFile)
	op := NewBatchOperation(BatchCopy, []Entry{{Name: "a.txt", Path: srcFile, Info: info}}, destDir)

	result := op.Step()
	require.True(t, result.Suspended)
	require.NotNil(t, result.Conflict)

	final := op.Resume(ConflictOverwrite, result.Conflict)
	assert.True(t, final.Done)
	assert.Equal(t, 1, op.SuccessCount)

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestBatchMoveRemovesSource(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()
	srcFile := filepath.Join(srcDir, "a.txt")
	require.NoError(t, os.WriteFile(srcFile, []byte("x"), 0o644))
	info, _ := os.Stat(srcFile)

	dest := filepath.Join(destDir, "a.txt")
	op := NewBatchOperation(BatchMove, []Entry{{Name: "a.txt", Path: srcFile, Info: info}}, dest)

	result := op.Step()
	require.True(t, result.Done)
	assert.NoFileExists(t, srcFile)
	assert.FileExists(t, dest)
}

func TestBatchSkipAllAppliesToRemainingSources(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()
	var sources []Entry
	for _, name := range []string{"a.txt", "b.txt"} {
		p := filepath.Join(srcDir, name)
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(destDir, name), []byte("y"), 0o644))
		info, _ := os.Stat(p)
		sources = append(sources, Entry{Name: name, Path: p, Info: info})
	}

	op := NewBatchOperation(BatchCopy, sources, destDir)
	result := op.Step()
	require.True(t, result.Suspended)

	final := op.Resume(ConflictSkipAllChoice, result.Conflict)
	assert.True(t, final.Done)
	assert.Equal(t, 2, op.SkippedCount)
}

func TestBatchSummaryFormat(t *testing.T) {
	op := &BatchOperation{Kind: BatchCopy, SuccessCount: 2, SkippedCount: 1, ErrorCount: 0}
	assert.Equal(t, "Copied: 2, Skipped: 1, Errors: 0", op.Summary())
}
