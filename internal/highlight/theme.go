package highlight

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/micro-editor/tcell/v2"
)

// Theme maps chroma token categories to tcell styles. It is deliberately
// smaller than chroma's full token taxonomy: only the categories that
// appear often enough in source code to be worth a distinct color get an
// entry, everything else falls back to Default.
type Theme struct {
	Default    tcell.Style
	Comment    tcell.Style
	Keyword    tcell.Style
	String     tcell.Style
	Number     tcell.Style
	Operator   tcell.Style
	Name       tcell.Style
	NameFunc   tcell.Style
	NameClass  tcell.Style
	NameBuiltin tcell.Style
	Error      tcell.Style
}

// DefaultTheme returns a 256-color-safe palette matching the editor's dark
// default background, in the style of config.DefStyle/GetColor's
// dot-path-with-fallback approach but resolved once at load time rather
// than per-render.
func DefaultTheme() *Theme {
	base := tcell.StyleDefault
	return &Theme{
		Default:     base,
		Comment:     base.Foreground(tcell.ColorGray).Italic(true),
		Keyword:     base.Foreground(tcell.ColorPurple).Bold(true),
		String:      base.Foreground(tcell.ColorOlive),
		Number:      base.Foreground(tcell.ColorTeal),
		Operator:    base.Foreground(tcell.ColorSilver),
		Name:        base,
		NameFunc:    base.Foreground(tcell.ColorBlue),
		NameClass:   base.Foreground(tcell.ColorYellow),
		NameBuiltin: base.Foreground(tcell.ColorAqua),
		Error:       base.Foreground(tcell.ColorRed).Bold(true),
	}
}

// StyleFor resolves a chroma token type to a style, walking up the
// category hierarchy (e.g. NameVariable falls back to Name) the same way
// chroma's own formatters resolve unset sub-categories.
func (th *Theme) StyleFor(t chroma.TokenType) tcell.Style {
	switch {
	case t.InCategory(chroma.Comment):
		return th.Comment
	case t.InCategory(chroma.Keyword):
		return th.Keyword
	case t.InCategory(chroma.LiteralString):
		return th.String
	case t.InCategory(chroma.LiteralNumber):
		return th.Number
	case t.InCategory(chroma.Operator), t.InCategory(chroma.Punctuation):
		return th.Operator
	case t == chroma.NameFunction || t == chroma.NameFunctionMagic:
		return th.NameFunc
	case t == chroma.NameClass:
		return th.NameClass
	case t.InCategory(chroma.NameBuiltin):
		return th.NameBuiltin
	case t == chroma.Error:
		return th.Error
	case t.InCategory(chroma.Name):
		return th.Name
	default:
		return th.Default
	}
}
