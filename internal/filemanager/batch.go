package filemanager

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// BatchKind distinguishes copy from move.
type BatchKind int

const (
	BatchCopy BatchKind = iota
	BatchMove
)

// ConflictMode tracks how destination conflicts are resolved for the rest
// of a batch operation once the user picks OverwriteAll/SkipAll.
type ConflictMode int

const (
	ConflictAsk ConflictMode = iota
	ConflictOverwriteAll
	ConflictSkipAll
)

// ConflictChoice is the resolution picked from the conflict modal.
type ConflictChoice int

const (
	ConflictOverwrite ConflictChoice = iota
	ConflictSkip
	ConflictOverwriteAllChoice
	ConflictSkipAllChoice
	ConflictRename
	ConflictRenameAll
)

// BatchOperation is spec.md §3's batch-operation record: a finite state
// machine where each Step either completes an item or suspends waiting for
// a modal (a destination conflict, or a rename-pattern prompt).
type BatchOperation struct {
	Kind          BatchKind
	Sources       []Entry
	Destination   string
	CurrentIndex  int
	ConflictMode  ConflictMode
	RenamePattern string
	RenameCounter int

	SuccessCount int
	ErrorCount   int
	SkippedCount int
}

// NewBatchOperation starts a batch of kind over sources, landing at
// destination (a directory for multi-source; for a single source, the
// literal target path, or an existing directory to place it in).
func NewBatchOperation(kind BatchKind, sources []Entry, destination string) *BatchOperation {
	return &BatchOperation{
		Kind:          kind,
		Sources:       sources,
		Destination:   destination,
		RenameCounter: 1,
	}
}

// StepResult reports what Step did: either the operation advanced (and
// Done reports whether every source has been processed), or it suspended
// waiting on a conflict/rename modal.
type StepResult struct {
	Done      bool
	Suspended bool
	Conflict  *ConflictInfo
}

// ConflictInfo describes the destination-exists conflict a Step suspended
// on; Resume(choice) continues the operation from here.
type ConflictInfo struct {
	Source      Entry
	Destination string
}

// destinationFor resolves spec.md 4.F step 1: single-source uses the
// explicit destination path, unless that path is an existing directory, in
// which case it joins destination/source-name like multi-source does;
// multi-source joins destination/source-name, applying the rename pattern
// to the name if one is set.
func (b *BatchOperation) destinationFor(src Entry) string {
	name := src.Name
	if b.RenamePattern != "" {
		modTime := time.Time{}
		if src.Info != nil {
			modTime = src.Info.ModTime()
		}
		name = EvaluateRenamePattern(b.RenamePattern, src.Name, b.RenameCounter, modTime)
	}
	if len(b.Sources) == 1 && b.RenamePattern == "" {
		if info, err := os.Stat(b.Destination); err == nil && info.IsDir() {
			return filepath.Join(b.Destination, name)
		}
		return b.Destination
	}
	return filepath.Join(b.Destination, name)
}

// Step processes the current source. It returns Suspended with a
// ConflictInfo when the destination exists and ConflictMode is Ask;
// otherwise it performs the copy/move, advances CurrentIndex, and reports
// Done once every source has been handled.
func (b *BatchOperation) Step() StepResult {
	for b.CurrentIndex < len(b.Sources) {
		src := b.Sources[b.CurrentIndex]
		if src.Deleted {
			b.SkippedCount++
			b.CurrentIndex++
			continue
		}

		dest := b.destinationFor(src)
		if pathExistsFM(dest) {
			switch b.ConflictMode {
			case ConflictSkipAll:
				b.SkippedCount++
				b.CurrentIndex++
				continue
			case ConflictOverwriteAll:
				// fall through to perform
			default:
				return StepResult{Suspended: true, Conflict: &ConflictInfo{Source: src, Destination: dest}}
			}
		}

		if err := b.perform(src, dest); err != nil {
			b.ErrorCount++
		} else {
			b.SuccessCount++
		}
		b.RenameCounter++
		b.CurrentIndex++
	}
	return StepResult{Done: true}
}

// Resume applies the user's conflict-modal choice and continues the
// operation. RenameAll/Rename transition to a rename-pattern prompt
// instead of immediately resuming; the caller is expected to set
// RenamePattern and call Step again once that modal resolves.
func (b *BatchOperation) Resume(choice ConflictChoice, info *ConflictInfo) StepResult {
	switch choice {
	case ConflictSkip:
		b.SkippedCount++
		b.CurrentIndex++
		return b.Step()
	case ConflictSkipAllChoice:
		b.ConflictMode = ConflictSkipAll
		b.SkippedCount++
		b.CurrentIndex++
		return b.Step()
	case ConflictOverwrite:
		if err := b.perform(info.Source, info.Destination); err != nil {
			b.ErrorCount++
		} else {
			b.SuccessCount++
		}
		b.RenameCounter++
		b.CurrentIndex++
		return b.Step()
	case ConflictOverwriteAllChoice:
		b.ConflictMode = ConflictOverwriteAll
		if err := b.perform(info.Source, info.Destination); err != nil {
			b.ErrorCount++
		} else {
			b.SuccessCount++
		}
		b.RenameCounter++
		b.CurrentIndex++
		return b.Step()
	case ConflictRename, ConflictRenameAll:
		// Caller opens the rename-pattern modal; once it resolves with a
		// pattern, set b.RenamePattern and call Step again.
		return StepResult{Suspended: true, Conflict: info}
	}
	return StepResult{Suspended: true, Conflict: info}
}

// perform copies or moves src to dest, recursing for directories.
func (b *BatchOperation) perform(src Entry, dest string) error {
	if b.Kind == BatchMove {
		if err := os.Rename(src.Path, dest); err == nil {
			return nil
		}
		// Cross-device moves fall back to copy+remove.
	}
	if err := copyPath(src.Path, dest); err != nil {
		return err
	}
	if b.Kind == BatchMove {
		return os.RemoveAll(src.Path)
	}
	return nil
}

// Summary formats the completion status line spec.md 4.F calls for:
// "Copied: n, Skipped: m, Errors: k".
func (b *BatchOperation) Summary() string {
	verb := "Copied"
	if b.Kind == BatchMove {
		verb = "Moved"
	}
	return verb + ": " + strconv.Itoa(b.SuccessCount) + ", Skipped: " + strconv.Itoa(b.SkippedCount) + ", Errors: " + strconv.Itoa(b.ErrorCount)
}

func copyPath(src, dest string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return copyDir(src, dest, info)
	}
	return copyFile(src, dest, info)
}

func copyDir(src, dest string, info os.FileInfo) error {
	if err := os.MkdirAll(dest, info.Mode()); err != nil {
		return err
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, e := range entries {
		srcChild := filepath.Join(src, e.Name())
		destChild := filepath.Join(dest, e.Name())
		if err := copyPath(srcChild, destChild); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dest string, info os.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

func pathExistsFM(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
