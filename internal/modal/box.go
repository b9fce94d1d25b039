// Package modal implements the dialog framework spec.md 4.I describes: a
// finite set of variants (confirm/input/editable-select/select/overwrite/
// conflict/rename-pattern/search/replace/info), each returning an
// Option<ModalResult<T>> from its key/mouse handlers once the user
// resolves or cancels it.
package modal

import "github.com/micro-editor/tcell/v2"

// Result is spec.md 4.I's `ModalResult<T>`: Confirmed carries the
// resolved value, !Confirmed means the modal was cancelled.
type Result[T any] struct {
	Confirmed bool
	Value     T
}

// box is the shared double-line centered dialog frame every variant below
// draws itself into, extracted from the teacher's repeated border-drawing
// code in internal/layout/modal.go and input_modal.go.
type box struct {
	Title   string
	ScreenW int
	ScreenH int
}

var (
	boxBg     = tcell.ColorBlack
	borderFg  = tcell.Color205 // hot pink, matches the teacher's modal styling
	textFg    = tcell.ColorWhite
	accentFg  = tcell.Color51  // cyan, matches the teacher's option-line styling
	warningFg = tcell.ColorRed
	hintFg    = tcell.Color243 // dim gray, matches the teacher's shortcuts-modal hint line
)

func (b box) borderStyle() tcell.Style { return tcell.StyleDefault.Foreground(borderFg).Background(boxBg) }
func (b box) bgStyle() tcell.Style     { return tcell.StyleDefault.Foreground(textFg).Background(boxBg) }
func (b box) titleStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(borderFg).Background(boxBg).Bold(true)
}
func (b box) textStyle() tcell.Style    { return b.bgStyle() }
func (b box) accentStyle() tcell.Style  { return tcell.StyleDefault.Foreground(accentFg).Background(boxBg) }
func (b box) warningStyle() tcell.Style { return tcell.StyleDefault.Foreground(warningFg).Background(boxBg) }
func (b box) hintStyle() tcell.Style    { return tcell.StyleDefault.Foreground(hintFg).Background(boxBg) }

// origin returns the top-left corner of a centered box of the given size.
func (b box) origin(boxWidth, boxHeight int) (x, y int) {
	return (b.ScreenW - boxWidth) / 2, (b.ScreenH - boxHeight) / 2
}

// drawFrame draws the background fill, double-line border, and centered
// title line at row startY+1; it returns the box's origin for callers to
// keep placing content below the title/separator.
func (b box) drawFrame(screen tcell.Screen, boxWidth, boxHeight int) (startX, startY int) {
	startX, startY = b.origin(boxWidth, boxHeight)
	bg := b.bgStyle()
	border := b.borderStyle()

	for y := startY; y < startY+boxHeight; y++ {
		for x := startX; x < startX+boxWidth; x++ {
			screen.SetContent(x, y, ' ', nil, bg)
		}
	}

	screen.SetContent(startX, startY, '╔', nil, border)
	screen.SetContent(startX+boxWidth-1, startY, '╗', nil, border)
	for x := startX + 1; x < startX+boxWidth-1; x++ {
		screen.SetContent(x, startY, '═', nil, border)
	}
	screen.SetContent(startX, startY+boxHeight-1, '╚', nil, border)
	screen.SetContent(startX+boxWidth-1, startY+boxHeight-1, '╝', nil, border)
	for x := startX + 1; x < startX+boxWidth-1; x++ {
		screen.SetContent(x, startY+boxHeight-1, '═', nil, border)
	}
	for y := startY + 1; y < startY+boxHeight-1; y++ {
		screen.SetContent(startX, y, '║', nil, border)
		screen.SetContent(startX+boxWidth-1, y, '║', nil, border)
	}

	b.drawCentered(screen, b.Title, startX, startY+1, boxWidth, b.titleStyle())
	for x := startX + 1; x < startX+boxWidth-1; x++ {
		screen.SetContent(x, startY+2, '─', nil, border)
	}

	return startX, startY
}

func (b box) drawCentered(screen tcell.Screen, text string, startX, row, boxWidth int, style tcell.Style) {
	textX := startX + (boxWidth-len([]rune(text)))/2
	for i, r := range text {
		screen.SetContent(textX+i, row, r, nil, style)
	}
}

func (b box) drawLeft(screen tcell.Screen, text string, x, row int, style tcell.Style) {
	for i, r := range text {
		screen.SetContent(x+i, row, r, nil, style)
	}
}

// contentWidth picks a box width wide enough for every given line, clamped
// to at least min.
func contentWidth(min int, lines ...string) int {
	w := min
	for _, l := range lines {
		if n := len([]rune(l)) + 6; n > w {
			w = n
		}
	}
	return w
}

// textField is the single-line editable buffer shared by every variant that
// collects free text (input, rename-pattern, search, replace,
// editable-select), extracted from the teacher's InputModal.
type textField struct {
	Value     string
	CursorPos int
}

// HandleKey applies one key event's worth of text editing. It returns false
// for keys it doesn't understand (Enter/Escape are left to the caller).
func (f *textField) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if f.CursorPos > 0 {
			f.Value = f.Value[:f.CursorPos-1] + f.Value[f.CursorPos:]
			f.CursorPos--
		}
	case tcell.KeyDelete:
		if f.CursorPos < len(f.Value) {
			f.Value = f.Value[:f.CursorPos] + f.Value[f.CursorPos+1:]
		}
	case tcell.KeyLeft:
		if f.CursorPos > 0 {
			f.CursorPos--
		}
	case tcell.KeyRight:
		if f.CursorPos < len(f.Value) {
			f.CursorPos++
		}
	case tcell.KeyHome, tcell.KeyCtrlA:
		f.CursorPos = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		f.CursorPos = len(f.Value)
	case tcell.KeyRune:
		f.Value = f.Value[:f.CursorPos] + string(ev.Rune()) + f.Value[f.CursorPos:]
		f.CursorPos++
	default:
		return false
	}
	return true
}

func (f *textField) visible(width int) (string, int) {
	value := f.Value
	cursorX := f.CursorPos
	if len(value) > width-1 {
		start := f.CursorPos - width + 2
		if start < 0 {
			start = 0
		}
		value = value[start:]
		if len(value) > width-1 {
			value = value[:width-1]
		}
		cursorX = f.CursorPos - start
	}
	return value, cursorX
}

func (b box) drawInputField(screen tcell.Screen, f *textField, x, row, width int) {
	inputBg := tcell.StyleDefault.Background(tcell.ColorDarkGray).Foreground(tcell.ColorWhite)
	cursorStyle := tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)

	for i := 0; i < width; i++ {
		screen.SetContent(x+i, row, ' ', nil, inputBg)
	}
	shown, cursorX := f.visible(width)
	for i, r := range shown {
		screen.SetContent(x+i, row, r, nil, inputBg)
	}
	if cursorX < width {
		r := ' '
		if cursorX < len([]rune(shown)) {
			r = []rune(shown)[cursorX]
		}
		screen.SetContent(x+cursorX, row, r, nil, cursorStyle)
	}
}
