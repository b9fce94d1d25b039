package rope

import "github.com/mattn/go-runewidth"

// Selection is an anchored range: Anchor stays put while Active moves with
// the cursor. Normalized() returns it in row-major order for editing ops.
type Selection struct {
	Anchor, Active Cursor
}

// Empty reports whether the selection covers zero graphemes.
func (s Selection) Empty() bool {
	return s.Anchor == s.Active
}

// Normalized returns (start, end) with start <= end in row-major order.
func (s Selection) Normalized() (Cursor, Cursor) {
	if s.Active.Less(s.Anchor) {
		return s.Active, s.Anchor
	}
	return s.Anchor, s.Active
}

// DisplayWidth returns the terminal column width of line i up to (but not
// including) grapheme column col, accounting for double-width runes such as
// CJK ideographs. Used by the editor to map grapheme columns to screen
// columns and back.
func (b *Buffer) DisplayWidth(lineIdx, col int) int {
	line := b.Line(lineIdx)
	if col > len(line) {
		col = len(line)
	}
	width := 0
	for _, g := range line[:col] {
		width += clusterWidth(g)
	}
	return width
}

// ColumnAtDisplayWidth maps a target screen column back to the nearest
// grapheme column on lineIdx, rounding down when the target lands inside a
// double-width cluster.
func (b *Buffer) ColumnAtDisplayWidth(lineIdx, targetWidth int) int {
	line := b.Line(lineIdx)
	width := 0
	for i, g := range line {
		w := clusterWidth(g)
		if width+w > targetWidth {
			return i
		}
		width += w
	}
	return len(line)
}

func clusterWidth(g string) int {
	w := 0
	for _, r := range g {
		rw := runewidth.RuneWidth(r)
		if rw > w {
			w = rw
		}
	}
	if w == 0 {
		// Combining marks and zero-width joiners render with the base
		// rune's width, already accounted for; an isolated zero-width
		// cluster (e.g. a stray combining mark) still occupies no column.
		return 0
	}
	return w
}
