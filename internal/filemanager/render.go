package filemanager

import (
	"path/filepath"
	"strings"

	"github.com/ellery/stacktile/internal/config"
	"github.com/ellery/stacktile/internal/vt"
	"github.com/micro-editor/tcell/v2"
)

// styleForEntry mirrors internal/filebrowser's StyleForPath: directories in
// bold blue, everything else the default soft gray, modified by git status.
func styleForEntry(e Entry, selected, focused bool) tcell.Style {
	style := config.DefStyle.Foreground(tcell.Color252)
	if e.IsDir {
		style = config.DefStyle.Foreground(tcell.Color33).Bold(true)
	}
	switch e.GitStatus {
	case GitStatusModified, GitStatusStaged:
		style = style.Foreground(tcell.ColorYellow)
	case GitStatusUntracked:
		style = style.Foreground(tcell.ColorGreen)
	case GitStatusDeleted:
		style = style.Foreground(tcell.ColorRed)
	case GitStatusConflict:
		style = style.Foreground(tcell.ColorRed).Bold(true)
	}
	if selected {
		if focused {
			style = config.DefStyle.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
		} else {
			style = style.Background(tcell.Color236)
		}
	}
	return style
}

// Render draws the visible entry list into width*height cells: a header
// row (current directory), a separator, then one row per visible entry
// starting at ScrollOffset, honoring single- and multi-select highlighting.
func (s *State) Render(width, height int, focused bool) [][]vt.Cell {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if width <= 0 || height <= 0 {
		return nil
	}
	rows := make([][]vt.Cell, height)
	for i := range rows {
		rows[i] = blankRow(width)
	}
	if height < 1 {
		return rows
	}

	dirName := filepath.Base(s.CurrentPath)
	if dirName == "" || dirName == "." {
		dirName = s.CurrentPath
	}
	drawString(rows[0], 1, " "+dirName, config.DefStyle.Foreground(tcell.Color33).Bold(true))
	if height < 2 {
		return rows
	}
	drawString(rows[1], 1, strings.Repeat("─", max0(width-2)), config.DefStyle.Foreground(tcell.ColorGray))

	startY := 2
	visible := height - startY
	if visible <= 0 {
		return rows
	}
	for i := 0; i < visible && s.ScrollOffset+i < len(s.Entries); i++ {
		idx := s.ScrollOffset + i
		e := s.Entries[idx]
		y := startY + i
		selected := idx == s.Selected || s.MultiSelect[idx]
		style := styleForEntry(e, selected, focused)
		if selected {
			for x := 0; x < width; x++ {
				rows[y][x] = vt.Cell{Ch: ' ', Style: style}
			}
		}
		icon := IconForEntry(e)
		name := e.Name
		if e.IsDir && !e.IsParent {
			name += "/"
		}
		drawString(rows[y], 1, icon+" "+name, style)
	}
	return rows
}

func drawString(row []vt.Cell, x int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= len(row) {
			return
		}
		row[x] = vt.Cell{Ch: r, Style: style}
		x++
	}
}

func blankRow(width int) []vt.Cell {
	row := make([]vt.Cell, width)
	for i := range row {
		row[i] = vt.Cell{Ch: ' ', Style: tcell.StyleDefault}
	}
	return row
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
