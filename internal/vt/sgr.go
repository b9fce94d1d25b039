package vt

import "github.com/micro-editor/tcell/v2"

// sgr applies a CSI `m` parameter list to the current style, handling
// reset/attributes/basic+bright/256-color/true-color/default per spec.md
// 4.D's required SGR set.
func (s *Screen) sgr(p []uint16) {
	if len(p) == 0 {
		s.curStyle = tcell.StyleDefault
		return
	}
	st := s.curStyle
	for i := 0; i < len(p); i++ {
		n := int(p[i])
		switch {
		case n == 0:
			st = tcell.StyleDefault
		case n == 1:
			st = st.Bold(true)
		case n == 3:
			st = st.Italic(true)
		case n == 4:
			st = st.Underline(true)
		case n == 7:
			st = st.Reverse(true)
		case n == 22:
			st = st.Bold(false)
		case n == 23:
			st = st.Italic(false)
		case n == 24:
			st = st.Underline(false)
		case n == 27:
			st = st.Reverse(false)
		case n >= 30 && n <= 37:
			st = st.Foreground(xterm256(n - 30))
		case n == 38:
			consumed := s.extendedColor(p, i, func(c tcell.Color) { st = st.Foreground(c) })
			i += consumed
		case n == 39:
			st = st.Foreground(tcell.ColorDefault)
		case n >= 40 && n <= 47:
			st = st.Background(xterm256(n - 40))
		case n == 48:
			consumed := s.extendedColor(p, i, func(c tcell.Color) { st = st.Background(c) })
			i += consumed
		case n == 49:
			st = st.Background(tcell.ColorDefault)
		case n >= 90 && n <= 97:
			st = st.Foreground(xterm256(n - 90 + 8))
		case n >= 100 && n <= 107:
			st = st.Background(xterm256(n - 100 + 8))
		}
	}
	s.curStyle = st
}

// extendedColor parses a `38;5;N` / `38;2;R;G;B` (or 48;... for background)
// sequence starting at index i (pointing at the 38/48 itself) and applies
// the resolved color via apply. Returns how many extra parameters were
// consumed so the caller's loop index can skip past them.
func (s *Screen) extendedColor(p []uint16, i int, apply func(tcell.Color)) int {
	if i+1 >= len(p) {
		return 0
	}
	switch p[i+1] {
	case 5:
		if i+2 < len(p) {
			apply(xterm256(int(p[i+2])))
			return 2
		}
	case 2:
		if i+4 < len(p) {
			apply(tcell.NewRGBColor(int32(p[i+2]), int32(p[i+3]), int32(p[i+4])))
			return 4
		}
	}
	return 0
}
