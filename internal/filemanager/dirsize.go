package filemanager

import (
	"os"
	"path/filepath"
)

// DirSizeResult is posted back once RequestDirSize's worker finishes walking a
// subtree, per SPEC_FULL.md 4.F's directory-size background calculation.
type DirSizeResult struct {
	Path  string
	Bytes int64
	Err   error
}

// RequestDirSize spawns a one-shot worker that walks path and posts the
// total byte count back on the returned channel, per spec.md §5's
// "Directory-size calculation... one-shot worker" bullet. The caller
// drains the channel on its next tick rather than blocking on it.
func RequestDirSize(path string) <-chan DirSizeResult {
	out := make(chan DirSizeResult, 1)
	go func() {
		var total int64
		err := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return nil // best-effort: skip unreadable entries
			}
			if !info.IsDir() {
				total += info.Size()
			}
			return nil
		})
		out <- DirSizeResult{Path: path, Bytes: total, Err: err}
	}()
	return out
}
