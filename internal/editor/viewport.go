package editor

// Viewport is the visible window over the buffer's virtual rows, in
// physical-line-or-wrapped-row coordinates depending on word-wrap mode.
type Viewport struct {
	Top, Left, Width, Height int
}

// EnsureCursorVisible scrolls the viewport minimally so that cursorRow lies
// within [Top, Top+Height). totalRows bounds how far down the viewport may
// scroll.
func (v *Viewport) EnsureCursorVisible(cursorRow, totalRows int) {
	if v.Height <= 0 {
		return
	}
	if cursorRow < v.Top {
		v.Top = cursorRow
	} else if cursorRow >= v.Top+v.Height {
		v.Top = cursorRow - v.Height + 1
	}
	maxTop := totalRows - v.Height
	if maxTop < 0 {
		maxTop = 0
	}
	if v.Top > maxTop {
		v.Top = maxTop
	}
	if v.Top < 0 {
		v.Top = 0
	}
}

// ScrollUp moves the viewport up by n rows, not below 0.
func (v *Viewport) ScrollUp(n int) {
	v.Top -= n
	if v.Top < 0 {
		v.Top = 0
	}
}

// ScrollDown moves the viewport down by n rows, clamped so Top+Height never
// exceeds totalRows (when totalRows >= Height).
func (v *Viewport) ScrollDown(n, totalRows int) {
	v.Top += n
	maxTop := totalRows - v.Height
	if maxTop < 0 {
		maxTop = 0
	}
	if v.Top > maxTop {
		v.Top = maxTop
	}
}

// ScrollToTop resets the viewport to the first row.
func (v *Viewport) ScrollToTop() { v.Top = 0 }

// ScrollToBottom scrolls to show the final page of totalRows rows.
func (v *Viewport) ScrollToBottom(totalRows int) {
	v.Top = totalRows - v.Height
	if v.Top < 0 {
		v.Top = 0
	}
}
