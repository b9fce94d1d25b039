package vt

import (
	"github.com/cliofy/govte"
	"github.com/micro-editor/tcell/v2"
)

// MouseTracking enumerates the xterm mouse-reporting modes a screen can be
// placed into via CSI ?1000/?1002/?1003.
type MouseTracking int

const (
	MouseNone MouseTracking = iota
	MouseNormal
	MouseButtonEvent
	MouseAnyEvent
)

// Loc is a (row, col) screen position, the type of Screen's SelStart/SelEnd
// fields. Nothing in the module sets those fields: internal/ptypanel keeps
// its own copy-selection (ptypanel.Selection).
type Loc struct{ Row, Col int }

// Screen owns the primary and alternate cell grids, scrollback, and mode
// flags described in spec.md's Terminal screen data model. It implements
// govte.Performer so a parser can drive it directly from PTY bytes.
type Screen struct {
	rows, cols int

	primary *Grid
	alt     *Grid
	altActive bool

	scrollback *Scrollback

	cursorRow, cursorCol int
	savedRow, savedCol   int

	curStyle    tcell.Style
	wrapPending bool

	CursorVisible   bool
	AppCursorKeys   bool
	MouseTracking   MouseTracking
	SGRMouseMode    bool
	BracketedPaste  bool

	Dirty bool

	ScrollOffset int
	SelStart, SelEnd Loc
	HasSelection bool
}

// NewScreen creates a screen of the given size with a default-bound
// scrollback.
func NewScreen(rows, cols, maxScrollback int) *Screen {
	return &Screen{
		rows: rows, cols: cols,
		primary:       NewGrid(rows, cols),
		alt:           NewGrid(rows, cols),
		scrollback:    NewScrollback(maxScrollback),
		curStyle:      tcell.StyleDefault,
		CursorVisible: true,
	}
}

// Size returns the current dimensions.
func (s *Screen) Size() (rows, cols int) { return s.rows, s.cols }

// Cursor returns the current cursor position.
func (s *Screen) Cursor() (row, col int) { return s.cursorRow, s.cursorCol }

// Grid returns the currently active grid (primary or alternate).
func (s *Screen) Grid() *Grid {
	if s.altActive {
		return s.alt
	}
	return s.primary
}

// Scrollback exposes the primary screen's evicted-row history.
func (s *Screen) Scrollback() *Scrollback { return s.scrollback }

// AltScreenActive reports whether the alternate screen is in use.
func (s *Screen) AltScreenActive() bool { return s.altActive }

// Resize adds/removes rows at the bottom and resizes columns on both
// grids, then clamps the cursor, per spec.md 4.D's resize invariant.
func (s *Screen) Resize(rows, cols int) {
	s.rows, s.cols = rows, cols
	s.primary.Resize(rows, cols)
	s.alt.Resize(rows, cols)
	s.clampCursor()
	s.Dirty = true
}

func (s *Screen) clampCursor() {
	if s.cursorRow < 0 {
		s.cursorRow = 0
	}
	if s.cursorRow >= s.rows {
		s.cursorRow = s.rows - 1
	}
	if s.cursorCol < 0 {
		s.cursorCol = 0
	}
	if s.cursorCol >= s.cols {
		s.cursorCol = s.cols - 1
	}
}

// newline moves the cursor down one row, scrolling the grid (and pushing
// to scrollback for the primary screen only) when already at the bottom.
func (s *Screen) newline() {
	if s.cursorRow == s.rows-1 {
		s.scrollUpOne()
	} else {
		s.cursorRow++
	}
}

func (s *Screen) scrollUpOne() {
	g := s.Grid()
	if !s.altActive {
		s.scrollback.Push(g.Rows[0])
	}
	copy(g.Rows, g.Rows[1:])
	g.Rows[len(g.Rows)-1] = NewRow(s.cols)
}

// --- govte.Performer ------------------------------------------------------

// Print writes ch at the cursor with the current SGR style, deferring wrap
// to the next printable character per the "wrap_pending" invariant.
func (s *Screen) Print(ch rune) {
	if s.wrapPending {
		s.cursorCol = 0
		s.newline()
		s.wrapPending = false
	}
	g := s.Grid()
	if s.cursorRow < len(g.Rows) && s.cursorCol < g.Cols {
		g.Rows[s.cursorRow][s.cursorCol] = Cell{Ch: ch, Style: s.curStyle}
	}
	if s.cursorCol == s.cols-1 {
		s.wrapPending = true
	} else {
		s.cursorCol++
	}
	s.Dirty = true
}

// Execute handles the four control bytes spec.md 4.D names explicitly.
func (s *Screen) Execute(b byte) {
	switch b {
	case '\n':
		s.wrapPending = false
		s.newline()
	case '\r':
		s.cursorCol = 0
		s.wrapPending = false
	case '\b':
		if s.cursorCol > 0 {
			s.cursorCol--
		}
		s.wrapPending = false
	case '\t':
		next := (s.cursorCol/8 + 1) * 8
		if next >= s.cols {
			next = s.cols - 1
		}
		s.cursorCol = next
	}
	s.Dirty = true
}

// Hook, Put, Unhook: DCS sequences are outside spec.md's required set.
func (s *Screen) Hook(params *govte.Params, intermediates []byte, ignore bool, action rune) {}
func (s *Screen) Put(b byte)                                                                {}
func (s *Screen) Unhook()                                                                   {}

// OscDispatch: title-setting and similar OSC sequences are outside
// spec.md's required CSI set. Every OSC sequence from the shell, OSC 52
// clipboard writes included, is dropped here, and the PTY panel does not
// scan its output for them either.
func (s *Screen) OscDispatch(params [][]byte, bellTerminated bool) {}

// EscDispatch: no bare ESC sequences are in spec.md's required set (SCP/RCP
// arrive as CSI s/u, handled in CsiDispatch).
func (s *Screen) EscDispatch(intermediates []byte, ignore bool, b byte) {}

func paramGroups(params *govte.Params) []uint16 {
	if params == nil {
		return nil
	}
	var out []uint16
	for _, group := range params.Iter() {
		if len(group) > 0 {
			out = append(out, group[0])
		}
	}
	return out
}

func paramOr(p []uint16, i int, def int) int {
	if i < len(p) && p[i] > 0 {
		return int(p[i])
	}
	return def
}

// paramOrZeroOk is like paramOr but allows an explicit 0 (used by ED/EL
// where parameter 0 is a meaningful, distinct mode from "absent").
func paramOrZeroOk(p []uint16, i int) int {
	if i < len(p) {
		return int(p[i])
	}
	return 0
}

// CsiDispatch implements the required CSI handler set from spec.md 4.D:
// cursor motion, erasure, editing, SGR, and the private modes.
func (s *Screen) CsiDispatch(params *govte.Params, intermediates []byte, ignore bool, action rune) {
	if ignore {
		return
	}
	p := paramGroups(params)
	private := len(intermediates) > 0 && intermediates[0] == '?'

	if private {
		s.csiPrivateMode(p, action)
		return
	}

	switch action {
	case 'H', 'f':
		row := paramOr(p, 0, 1)
		col := paramOr(p, 1, 1)
		s.cursorRow, s.cursorCol = row-1, col-1
		s.wrapPending = false
		s.clampCursor()
	case 'A':
		s.cursorRow -= paramOr(p, 0, 1)
		s.clampCursor()
	case 'B':
		s.cursorRow += paramOr(p, 0, 1)
		s.clampCursor()
	case 'C':
		s.cursorCol += paramOr(p, 0, 1)
		s.wrapPending = false
		s.clampCursor()
	case 'D':
		s.cursorCol -= paramOr(p, 0, 1)
		s.wrapPending = false
		s.clampCursor()
	case 'E': // CNL
		s.cursorRow += paramOr(p, 0, 1)
		s.cursorCol = 0
		s.clampCursor()
	case 'F': // CPL
		s.cursorRow -= paramOr(p, 0, 1)
		s.cursorCol = 0
		s.clampCursor()
	case 'G': // CHA
		s.cursorCol = paramOr(p, 0, 1) - 1
		s.clampCursor()
	case 'd': // VPA
		s.cursorRow = paramOr(p, 0, 1) - 1
		s.clampCursor()
	case 's': // SCP
		s.savedRow, s.savedCol = s.cursorRow, s.cursorCol
	case 'u': // RCP
		s.cursorRow, s.cursorCol = s.savedRow, s.savedCol
		s.clampCursor()
	case 'J':
		s.eraseDisplay(paramOrZeroOk(p, 0))
	case 'K':
		s.eraseLine(paramOrZeroOk(p, 0))
	case '@': // ICH
		s.insertChars(paramOr(p, 0, 1))
	case 'P': // DCH
		s.deleteChars(paramOr(p, 0, 1))
	case 'X': // ECH
		s.eraseChars(paramOr(p, 0, 1))
	case 'L': // IL
		s.insertLines(paramOr(p, 0, 1))
	case 'M': // DL
		s.deleteLines(paramOr(p, 0, 1))
	case 'S': // SU
		for i := 0; i < paramOr(p, 0, 1); i++ {
			s.scrollUpOne()
		}
	case 'T': // SD
		for i := 0; i < paramOr(p, 0, 1); i++ {
			s.scrollDownOne()
		}
	case 'm':
		s.sgr(p)
	}
	s.Dirty = true
}

func (s *Screen) scrollDownOne() {
	g := s.Grid()
	copy(g.Rows[1:], g.Rows[:len(g.Rows)-1])
	g.Rows[0] = NewRow(s.cols)
}

func (s *Screen) eraseDisplay(mode int) {
	g := s.Grid()
	switch mode {
	case 0:
		g.ClearRow(s.cursorRow, s.cursorCol, s.cols)
		for r := s.cursorRow + 1; r < s.rows; r++ {
			g.ClearRow(r, 0, s.cols)
		}
	case 1:
		for r := 0; r < s.cursorRow; r++ {
			g.ClearRow(r, 0, s.cols)
		}
		g.ClearRow(s.cursorRow, 0, s.cursorCol+1)
	case 2, 3:
		g.ClearAll()
	}
}

func (s *Screen) eraseLine(mode int) {
	g := s.Grid()
	switch mode {
	case 0:
		g.ClearRow(s.cursorRow, s.cursorCol, s.cols)
	case 1:
		g.ClearRow(s.cursorRow, 0, s.cursorCol+1)
	case 2:
		g.ClearRow(s.cursorRow, 0, s.cols)
	}
}

func (s *Screen) insertChars(n int) {
	g := s.Grid()
	row := g.Rows[s.cursorRow]
	tail := append(Row{}, row[s.cursorCol:]...)
	for i := 0; i < n && s.cursorCol+i < s.cols; i++ {
		row[s.cursorCol+i] = blankCell
	}
	for i, c := range tail {
		dst := s.cursorCol + n + i
		if dst >= s.cols {
			break
		}
		row[dst] = c
	}
}

func (s *Screen) deleteChars(n int) {
	g := s.Grid()
	row := g.Rows[s.cursorRow]
	rest := row[s.cursorCol:]
	if n > len(rest) {
		n = len(rest)
	}
	copy(rest, rest[n:])
	for i := len(rest) - n; i < len(rest); i++ {
		rest[i] = blankCell
	}
}

func (s *Screen) eraseChars(n int) {
	g := s.Grid()
	end := s.cursorCol + n
	if end > s.cols {
		end = s.cols
	}
	g.ClearRow(s.cursorRow, s.cursorCol, end)
}

func (s *Screen) insertLines(n int) {
	g := s.Grid()
	for i := 0; i < n; i++ {
		g.Rows = append(g.Rows[:s.cursorRow], append([]Row{NewRow(s.cols)}, g.Rows[s.cursorRow:]...)...)
		g.Rows = g.Rows[:s.rows]
	}
}

func (s *Screen) deleteLines(n int) {
	g := s.Grid()
	if n > s.rows-s.cursorRow {
		n = s.rows - s.cursorRow
	}
	g.Rows = append(g.Rows[:s.cursorRow], g.Rows[s.cursorRow+n:]...)
	for len(g.Rows) < s.rows {
		g.Rows = append(g.Rows, NewRow(s.cols))
	}
}

func (s *Screen) csiPrivateMode(p []uint16, action rune) {
	if action != 'h' && action != 'l' {
		return
	}
	set := action == 'h'
	for _, mode := range p {
		switch mode {
		case 1:
			s.AppCursorKeys = set
		case 25:
			s.CursorVisible = set
		case 47, 1047:
			s.setAltScreen(set, false)
		case 1049:
			s.setAltScreen(set, true)
		case 1000:
			if set {
				s.MouseTracking = MouseNormal
			} else {
				s.MouseTracking = MouseNone
			}
		case 1002:
			if set {
				s.MouseTracking = MouseButtonEvent
			} else {
				s.MouseTracking = MouseNone
			}
		case 1003:
			if set {
				s.MouseTracking = MouseAnyEvent
			} else {
				s.MouseTracking = MouseNone
			}
		case 1006:
			s.SGRMouseMode = set
		case 2004:
			s.BracketedPaste = set
		}
	}
}

// setAltScreen switches to/from the alternate screen. withCursorSave also
// saves/restores the cursor position (mode 1049's variant on top of 47's
// plain switch); scrollback is never touched from the alt screen.
func (s *Screen) setAltScreen(enable, withCursorSave bool) {
	if enable == s.altActive {
		return
	}
	if enable {
		if withCursorSave {
			s.savedRow, s.savedCol = s.cursorRow, s.cursorCol
		}
		s.alt.ClearAll()
		s.altActive = true
	} else {
		s.altActive = false
		if withCursorSave {
			s.cursorRow, s.cursorCol = s.savedRow, s.savedCol
			s.clampCursor()
		}
	}
	s.wrapPending = false
	s.Dirty = true
}
