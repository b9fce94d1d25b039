package filemanager

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateRenamePatternOriginalNameAndCounter(t *testing.T) {
	got := EvaluateRenamePattern("backup-$0-$I", "file.txt", 3, time.Time{})
	assert.Equal(t, "backup-file.txt-3", got)
}

func TestEvaluateRenamePatternDateTokens(t *testing.T) {
	modTime := time.Date(2026, 7, 30, 14, 5, 9, 0, time.UTC)
	got := EvaluateRenamePattern("$Y-$M-$D_$h$m$s", "ignored", 1, modTime)
	assert.Equal(t, "2026-07-30_140509", got)
}

func TestEvaluateRenamePatternLiteralTextPassesThrough(t *testing.T) {
	got := EvaluateRenamePattern("plain-name", "x", 1, time.Time{})
	assert.Equal(t, "plain-name", got)
}
