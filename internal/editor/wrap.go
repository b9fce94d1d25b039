package editor

import "github.com/ellery/stacktile/internal/rope"

// WrapCache memoizes, per physical line, the grapheme columns at which a
// word-wrapped line breaks into additional visual rows. Width 0 or word-wrap
// disabled means every line is exactly one visual row.
type WrapCache struct {
	width     int
	smartWrap bool
	breaks    map[int][]int // line -> break columns (start column of each row after the first)
}

// NewWrapCache creates an empty cache for the given content width.
func NewWrapCache(width int, smartWrap bool) *WrapCache {
	return &WrapCache{width: width, smartWrap: smartWrap, breaks: make(map[int][]int)}
}

// SetWidth updates the wrap width and drops all cached breaks if it changed.
func (w *WrapCache) SetWidth(width int, smartWrap bool) {
	if width == w.width && smartWrap == w.smartWrap {
		return
	}
	w.width = width
	w.smartWrap = smartWrap
	w.breaks = make(map[int][]int)
}

// Width reports the current wrap width (0 means wrapping is disabled).
func (w *WrapCache) Width() int { return w.width }

// Invalidate drops cached breaks for lines in [from,to]; to=-1 means to EOF.
func (w *WrapCache) Invalidate(from, to int) {
	if to < 0 {
		for k := range w.breaks {
			if k >= from {
				delete(w.breaks, k)
			}
		}
		return
	}
	for i := from; i <= to; i++ {
		delete(w.breaks, i)
	}
}

// breaksFor computes (and memoizes) the wrap break columns for line i.
func (w *WrapCache) breaksFor(b *rope.Buffer, i int) []int {
	if w.width <= 0 {
		return nil
	}
	if bs, ok := w.breaks[i]; ok {
		return bs
	}
	line := b.Line(i)
	bs := computeBreaks(line, w.width, w.smartWrap)
	w.breaks[i] = bs
	return bs
}

// computeBreaks returns the start column of every visual row after the
// first, for a line of W columns: hard break at width when not smart, or at
// the last whitespace <= width when smart and one exists past the line
// start (never splitting a single word that itself fits within width).
func computeBreaks(line rope.Line, width int, smart bool) []int {
	if width <= 0 || len(line) <= width {
		return nil
	}
	var breaks []int
	start := 0
	for start < len(line) {
		remaining := len(line) - start
		if remaining <= width {
			break
		}
		end := start + width
		if smart {
			brk := lastWhitespace(line, start, end)
			if brk > start {
				breaks = append(breaks, brk+1) // row starts just after the space
				start = brk + 1
				continue
			}
		}
		breaks = append(breaks, end)
		start = end
	}
	return breaks
}

func lastWhitespace(line rope.Line, start, end int) int {
	for i := end; i > start; i-- {
		if isSpaceGrapheme(line[i-1]) {
			return i - 1
		}
	}
	return start - 1
}

func isSpaceGrapheme(g string) bool {
	return g == " " || g == "\t"
}

// RowCount returns how many visual rows physical line i occupies (>= 1).
func (w *WrapCache) RowCount(b *rope.Buffer, i int) int {
	return len(w.breaksFor(b, i)) + 1
}

// TotalVisualRows sums RowCount across every physical line in the buffer.
func (w *WrapCache) TotalVisualRows(b *rope.Buffer) int {
	total := 0
	for i := 0; i < b.LineCount(); i++ {
		total += w.RowCount(b, i)
	}
	return total
}

// VisualRowForCursor returns the absolute visual row (0-based, across the
// whole buffer) containing (line, col).
func (w *WrapCache) VisualRowForCursor(b *rope.Buffer, line, col int) int {
	row := 0
	for i := 0; i < line; i++ {
		row += w.RowCount(b, i)
	}
	bs := w.breaksFor(b, line)
	for _, brk := range bs {
		if col < brk {
			break
		}
		row++
	}
	return row
}

// VisualRowToBufferPosition maps an absolute visual row back to the
// (line, col) of its first column, given the viewport's top physical line
// is not needed here since visualRow is already an absolute index.
func (w *WrapCache) VisualRowToBufferPosition(b *rope.Buffer, visualRow int) (line, col int) {
	row := 0
	for i := 0; i < b.LineCount(); i++ {
		rc := w.RowCount(b, i)
		if visualRow < row+rc {
			sub := visualRow - row
			if sub == 0 {
				return i, 0
			}
			bs := w.breaksFor(b, i)
			return i, bs[sub-1]
		}
		row += rc
	}
	last := b.LineCount() - 1
	return last, 0
}
