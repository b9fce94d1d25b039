// Package editor implements the text-editing engine: navigation, selection,
// editing commands, word-wrap geometry, the git-diff overlay, search and
// replace, and the save/external-change policy, all composed on top of
// internal/rope's buffer and internal/highlight's syntax cache.
package editor

import (
	"fmt"
	"os"
	"time"

	"github.com/ellery/stacktile/internal/highlight"
	"github.com/ellery/stacktile/internal/rope"
	"github.com/go-errors/errors"
)

// Config is the subset of editor settings the engine needs. New fills it
// with DefaultConfig; no code in this module copies internal/config's
// editor settings into it.
type Config struct {
	TabSize               int
	WordWrap              bool
	SmartWrap             bool
	ShowGitDiff           bool
	LargeFileThresholdMB  int
}

// DefaultConfig matches the teacher's default-settings conventions.
func DefaultConfig() Config {
	return Config{TabSize: 4, WordWrap: false, SmartWrap: true, ShowGitDiff: true, LargeFileThresholdMB: 10}
}

// Engine is the stateful editing surface for one buffer.
type Engine struct {
	Buffer    *rope.Buffer
	Cursor    rope.Cursor
	Selection *Selection
	Viewport  Viewport
	Config    Config

	preferredCol int
	lastMoveWasVertical bool

	Highlight *highlight.Cache
	Wrap      *WrapCache
	GitDiff   *GitDiffCache
	Search    *SearchState

	contentWidth int // measured during last render; 0 means unknown

	lastSnapshot  time.Time
	externalChange bool
	forceSaveArmed bool

	doubleClickWindow time.Duration
	lastClickAt       time.Time
	lastClickPos      rope.Cursor
}

// Selection is a lens over the buffer: an anchor/active pair, not an owned
// copy of the text it spans.
type Selection struct {
	Anchor, Active rope.Cursor
}

// Empty reports whether the selection covers zero graphemes.
func (s *Selection) Empty() bool { return s == nil || s.Anchor == s.Active }

// Normalized returns (start, end) with start <= end.
func (s *Selection) Normalized() (rope.Cursor, rope.Cursor) {
	if s.Active.Less(s.Anchor) {
		return s.Active, s.Anchor
	}
	return s.Anchor, s.Active
}

// New creates an engine over an existing buffer with default config.
func New(b *rope.Buffer, filename string) *Engine {
	e := &Engine{
		Buffer:            b,
		Config:            DefaultConfig(),
		Search:            NewSearchState(),
		Wrap:              NewWrapCache(0, true),
		Highlight:         highlight.NewCache(filename, highlight.DefaultTheme()),
		doubleClickWindow: 400 * time.Millisecond,
	}
	if b.Path() != "" {
		e.GitDiff = NewGitDiffCache(b.Path())
		e.snapshotMtime()
	}
	return e
}

func (e *Engine) shouldHighlight() bool {
	return !e.isLargeFile()
}

func (e *Engine) shouldDiff() bool {
	return e.Config.ShowGitDiff && !e.isLargeFile()
}

func (e *Engine) isLargeFile() bool {
	if e.Config.LargeFileThresholdMB <= 0 {
		return false
	}
	path := e.Buffer.Path()
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Size() > int64(e.Config.LargeFileThresholdMB)*1024*1024
}

// --- Navigation --------------------------------------------------------

// useVisualNav reports whether vertical navigation should use wrapped rows
// instead of physical lines: word-wrap is on and a content width has been
// measured by the last render.
func (e *Engine) useVisualNav() bool {
	return e.Config.WordWrap && e.contentWidth > 0
}

// SetContentWidth records the measured render width and updates the wrap
// cache; call this once per render from the owning panel.
func (e *Engine) SetContentWidth(w int) {
	e.contentWidth = w
	if e.Config.WordWrap {
		e.Wrap.SetWidth(w, e.Config.SmartWrap)
	} else {
		e.Wrap.SetWidth(0, e.Config.SmartWrap)
	}
}

// MoveUp/MoveDown/MoveLeft/MoveRight/Home/End/PageUp/PageDown implement
// spec.md 4.C's navigation contract: vertical moves preserve a preferred
// column across lines of unequal length; horizontal moves are always
// physical and reset the preferred column.
func (e *Engine) MoveUp(extend bool) { e.verticalMove(-1, extend) }
func (e *Engine) MoveDown(extend bool) { e.verticalMove(1, extend) }

func (e *Engine) verticalMove(delta int, extend bool) {
	e.beginMove(extend)
	if e.useVisualNav() {
		row := e.Wrap.VisualRowForCursor(e.Buffer, e.Cursor.Line, e.Cursor.Col)
		row += delta
		if row < 0 {
			row = 0
		}
		total := e.Wrap.TotalVisualRows(e.Buffer)
		if row >= total {
			row = total - 1
		}
		line, col := e.Wrap.VisualRowToBufferPosition(e.Buffer, row)
		e.Cursor = rope.Cursor{Line: line, Col: clampToPreferred(e.Buffer, line, e.preferredCol, col)}
	} else {
		line := e.Cursor.Line + delta
		if line < 0 {
			line = 0
		}
		if line >= e.Buffer.LineCount() {
			line = e.Buffer.LineCount() - 1
		}
		e.Cursor = rope.Cursor{Line: line, Col: clampToPreferred(e.Buffer, line, e.preferredCol, e.Cursor.Col)}
	}
	e.lastMoveWasVertical = true
	e.finishMove(extend)
}

func clampToPreferred(b *rope.Buffer, line, preferred, fallback int) int {
	ll := b.LineLen(line)
	col := preferred
	if col < 0 {
		col = fallback
	}
	if col > ll {
		col = ll
	}
	return col
}

func (e *Engine) MoveLeft(extend bool) {
	e.beginMove(extend)
	if e.Cursor.Col > 0 {
		e.Cursor.Col--
	} else if e.Cursor.Line > 0 {
		e.Cursor.Line--
		e.Cursor.Col = e.Buffer.LineLen(e.Cursor.Line)
	}
	e.lastMoveWasVertical = false
	e.finishMove(extend)
}

func (e *Engine) MoveRight(extend bool) {
	e.beginMove(extend)
	if e.Cursor.Col < e.Buffer.LineLen(e.Cursor.Line) {
		e.Cursor.Col++
	} else if e.Cursor.Line < e.Buffer.LineCount()-1 {
		e.Cursor.Line++
		e.Cursor.Col = 0
	}
	e.lastMoveWasVertical = false
	e.finishMove(extend)
}

func (e *Engine) MoveHome(extend bool) {
	e.beginMove(extend)
	e.Cursor.Col = 0
	e.lastMoveWasVertical = false
	e.finishMove(extend)
}

func (e *Engine) MoveEnd(extend bool) {
	e.beginMove(extend)
	e.Cursor.Col = e.Buffer.LineLen(e.Cursor.Line)
	e.lastMoveWasVertical = false
	e.finishMove(extend)
}

func (e *Engine) PageUp(extend bool) { e.verticalMove(-e.pageSize(), extend) }
func (e *Engine) PageDown(extend bool) { e.verticalMove(e.pageSize(), extend) }

func (e *Engine) pageSize() int {
	if e.Viewport.Height <= 0 {
		return 1
	}
	return e.Viewport.Height
}

func (e *Engine) beginMove(extend bool) {
	if extend {
		if e.Selection == nil {
			e.Selection = &Selection{Anchor: e.Cursor, Active: e.Cursor}
		}
	}
}

func (e *Engine) finishMove(extend bool) {
	if extend {
		e.Selection.Active = e.Cursor
	} else {
		e.Selection = nil
	}
	if !e.lastMoveWasVertical {
		e.preferredCol = e.Cursor.Col
	}
}

// --- Editing -------------------------------------------------------------

// deleteSelectionIfAny removes the active selection (if non-empty) before
// an edit applies, per spec.md's "edits delete selection first" rule.
func (e *Engine) deleteSelectionIfAny() {
	if e.Selection == nil || e.Selection.Empty() {
		return
	}
	start, end := e.Selection.Normalized()
	e.Buffer.DeleteRange(start, end)
	e.Cursor = start
	e.Selection = nil
}

// afterEdit runs the three post-edit steps spec.md 4.C mandates: close
// search, invalidate highlight/wrap caches, schedule a git-diff refresh.
func (e *Engine) afterEdit(fromLine, toLine int) {
	e.Search.Close()
	if e.Highlight != nil {
		e.Highlight.Invalidate(fromLine, toLine)
	}
	e.Wrap.Invalidate(fromLine, toLine)
	if e.GitDiff != nil && e.shouldDiff() {
		e.GitDiff.ScheduleRefresh(nil)
	}
}

// InsertChar inserts text (typically one grapheme, but paste may pass a
// longer string) at the cursor.
func (e *Engine) InsertChar(text string) {
	e.deleteSelectionIfAny()
	startLine := e.Cursor.Line
	e.Cursor = e.Buffer.Insert(e.Cursor, text)
	invalidateEnd := e.Cursor.Line
	if invalidateEnd == startLine {
		e.afterEdit(startLine, startLine)
	} else {
		e.afterEdit(startLine, -1)
	}
	e.preferredCol = e.Cursor.Col
}

// InsertNewline inserts a line break at the cursor.
func (e *Engine) InsertNewline() {
	e.InsertChar("\n")
}

// Tab inserts tab_size spaces (this editor never emits literal tab bytes
// into the buffer, matching spec.md's "tab inserts tab_size spaces").
func (e *Engine) Tab() {
	n := e.Config.TabSize
	if n <= 0 {
		n = 4
	}
	spaces := ""
	for i := 0; i < n; i++ {
		spaces += " "
	}
	e.InsertChar(spaces)
}

// Backspace deletes the selection, or the grapheme before the cursor.
func (e *Engine) Backspace() {
	if e.Selection != nil && !e.Selection.Empty() {
		e.deleteSelectionIfAny()
		e.afterEdit(e.Cursor.Line, -1)
		return
	}
	startLine := e.Cursor.Line
	cur, ok := e.Buffer.Backspace(e.Cursor)
	if !ok {
		return
	}
	e.Cursor = cur
	if cur.Line == startLine {
		e.afterEdit(cur.Line, cur.Line)
	} else {
		e.afterEdit(cur.Line, -1)
	}
	e.preferredCol = e.Cursor.Col
}

// Delete deletes the selection, or the grapheme at the cursor (forward).
func (e *Engine) Delete() {
	if e.Selection != nil && !e.Selection.Empty() {
		e.deleteSelectionIfAny()
		e.afterEdit(e.Cursor.Line, -1)
		return
	}
	startLine := e.Cursor.Line
	ok := e.Buffer.DeleteChar(e.Cursor)
	if !ok {
		return
	}
	e.afterEdit(startLine, -1)
}

// IndentRange indents every line touched by the selection (or just the
// cursor line with no selection) by tab_size spaces.
func (e *Engine) IndentRange() {
	start, end := e.rangeLines()
	n := e.Config.TabSize
	pad := spacesOf(n)
	for l := start; l <= end; l++ {
		e.Buffer.Insert(rope.Cursor{Line: l, Col: 0}, pad)
	}
	e.afterEdit(start, -1)
}

// UnindentRange strips up to tab_size leading spaces from each touched line.
func (e *Engine) UnindentRange() {
	start, end := e.rangeLines()
	n := e.Config.TabSize
	for l := start; l <= end; l++ {
		line := e.Buffer.Line(l)
		strip := 0
		for strip < n && strip < len(line) && line[strip] == " " {
			strip++
		}
		if strip > 0 {
			e.Buffer.DeleteRange(rope.Cursor{Line: l, Col: 0}, rope.Cursor{Line: l, Col: strip})
		}
	}
	e.afterEdit(start, -1)
}

func (e *Engine) rangeLines() (start, end int) {
	if e.Selection != nil && !e.Selection.Empty() {
		s, en := e.Selection.Normalized()
		return s.Line, en.Line
	}
	return e.Cursor.Line, e.Cursor.Line
}

func spacesOf(n int) string {
	if n <= 0 {
		n = 4
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

// DuplicateLineOrSelection duplicates the current line (no selection) or
// the selected text (with selection), placing the copy immediately after.
func (e *Engine) DuplicateLineOrSelection() {
	if e.Selection != nil && !e.Selection.Empty() {
		start, end := e.Selection.Normalized()
		text := e.Buffer.DeleteRange(start, end)
		e.Buffer.Insert(start, text)
		e.Buffer.Insert(end, text)
		e.afterEdit(start.Line, -1)
		return
	}
	line := e.Buffer.LineString(e.Cursor.Line)
	at := rope.Cursor{Line: e.Cursor.Line, Col: e.Buffer.LineLen(e.Cursor.Line)}
	e.Buffer.Insert(at, "\n"+line)
	e.afterEdit(e.Cursor.Line, -1)
}

// --- Save policy -----------------------------------------------------

// ErrExternalChange is returned by Save when the file changed on disk since
// last load/save and no force-save has been armed.
var ErrExternalChange = errors.New("file changed on disk since last load")

// ErrInvalidConfig is returned when a config-file save fails schema
// validation.
var ErrInvalidConfig = errors.New("invalid configuration: save aborted")

// ConfigFilePredicate decides whether path should be schema-validated
// before saving. Supplied by the owning application (cmd/stacktile passes
// config.IsSettingsFile, which matches the settings file).
type ConfigFilePredicate func(path string) bool

// ConfigValidator parses candidate config text and returns an error if it
// is not well-formed.
type ConfigValidator func(text string) error

// Save writes the buffer to its current path, honoring the config-file
// validation and external-modification policy from spec.md 4.C.
func (e *Engine) Save(isConfigFile ConfigFilePredicate, validate ConfigValidator) error {
	return e.saveTo(e.Buffer.Path(), isConfigFile, validate)
}

// SaveTo writes to a possibly new path (save-as), same policy as Save.
func (e *Engine) SaveTo(path string, isConfigFile ConfigFilePredicate, validate ConfigValidator) error {
	return e.saveTo(path, isConfigFile, validate)
}

func (e *Engine) saveTo(path string, isConfigFile ConfigFilePredicate, validate ConfigValidator) error {
	if path == "" {
		return errors.New("editor: no path to save to")
	}
	if isConfigFile != nil && validate != nil && isConfigFile(path) {
		if err := validate(e.Buffer.Text()); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	if e.externalChange && !e.forceSaveArmed {
		return ErrExternalChange
	}
	if err := e.Buffer.SaveTo(path); err != nil {
		return err
	}
	e.externalChange = false
	e.forceSaveArmed = false
	e.snapshotMtime()
	e.GitDiff = NewGitDiffCache(path)
	if e.shouldDiff() {
		e.GitDiff.ScheduleRefresh(nil)
	}
	return nil
}

// ForceSave arms a one-shot override that clears the external-change flag
// on the next Save, even though the flag is currently set.
func (e *Engine) ForceSave() { e.forceSaveArmed = true }

// CheckExternalModification re-stats the backing file and sets the
// external-change flag if its mtime has advanced since the last load/save.
func (e *Engine) CheckExternalModification() bool {
	path := e.Buffer.Path()
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return e.externalChange
	}
	if info.ModTime().After(e.lastSnapshot) {
		e.externalChange = true
	}
	return e.externalChange
}

// ExternalChangePending reports the current external-modification flag.
func (e *Engine) ExternalChangePending() bool { return e.externalChange }

func (e *Engine) snapshotMtime() {
	path := e.Buffer.Path()
	if path == "" {
		return
	}
	if info, err := os.Stat(path); err == nil {
		e.lastSnapshot = info.ModTime()
	}
}

// Title returns the display title, appending the "[changed on disk]"
// decoration the spec requires when an external change is pending.
func (e *Engine) Title(base string) string {
	if e.Buffer.Modified() {
		base = "*" + base
	}
	if e.externalChange {
		base += " [changed on disk]"
	}
	return base
}

// NeedsCloseConfirmation reports whether closing this buffer should prompt,
// per spec.md's "modified or external change pending" rule.
func (e *Engine) NeedsCloseConfirmation() bool {
	return e.Buffer.Modified() || e.externalChange
}
