package editor

import (
	"os"

	"github.com/ellery/stacktile/internal/rope"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// ReloadPreservingCursor re-reads the backing file from disk (used when the
// user accepts an external change) and attempts to keep the cursor at the
// same logical position by diffing old and new content with
// diffmatchpatch and mapping the old cursor's byte offset through the
// diff's edit script.
func (e *Engine) ReloadPreservingCursor() error {
	path := e.Buffer.Path()
	if path == "" {
		return nil
	}
	newText, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	oldText := e.Buffer.Text()
	oldOffset := byteOffsetOf(e.Buffer, e.Cursor)

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText, string(newText), false)
	newOffset := mapOffsetThroughDiffs(diffs, oldOffset)

	e.Buffer = rope.NewFromString(string(newText))
	e.Buffer.SetPath(path)
	e.Cursor = cursorAtByteOffset(e.Buffer, newOffset)
	e.Selection = nil
	e.Highlight.InvalidateAll()
	e.Wrap.Invalidate(0, -1)
	e.externalChange = false
	e.forceSaveArmed = false
	e.snapshotMtime()
	if e.shouldDiff() {
		e.GitDiff.ScheduleRefresh(nil)
	}
	return nil
}

// mapOffsetThroughDiffs walks the diff script tracking how many bytes of
// "old" text have been consumed, and returns the corresponding offset into
// "new" text: equal runs advance both sides together, deletions consume old
// only, insertions consume new only.
func mapOffsetThroughDiffs(diffs []diffmatchpatch.Diff, oldOffset int) int {
	oldPos, newPos := 0, 0
	for _, d := range diffs {
		n := len(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			if oldOffset <= oldPos+n {
				return newPos + (oldOffset - oldPos)
			}
			oldPos += n
			newPos += n
		case diffmatchpatch.DiffDelete:
			if oldOffset <= oldPos+n {
				return newPos
			}
			oldPos += n
		case diffmatchpatch.DiffInsert:
			newPos += n
		}
	}
	return newPos
}

func byteOffsetOf(b *rope.Buffer, c rope.Cursor) int {
	offset := 0
	for i := 0; i < c.Line; i++ {
		offset += len(b.LineString(i)) + 1
	}
	line := b.Line(c.Line)
	for i := 0; i < c.Col && i < len(line); i++ {
		offset += len(line[i])
	}
	return offset
}

func cursorAtByteOffset(b *rope.Buffer, offset int) rope.Cursor {
	for l := 0; l < b.LineCount(); l++ {
		lineText := b.LineString(l)
		lineBytes := len(lineText) + 1
		if offset <= len(lineText) {
			return rope.Cursor{Line: l, Col: runeColAtByte(b.Line(l), offset)}
		}
		offset -= lineBytes
		if offset < 0 {
			offset = 0
		}
	}
	last := b.LineCount() - 1
	return rope.Cursor{Line: last, Col: b.LineLen(last)}
}

func runeColAtByte(line rope.Line, byteOffset int) int {
	pos := 0
	for i, g := range line {
		if pos >= byteOffset {
			return i
		}
		pos += len(g)
	}
	return len(line)
}
