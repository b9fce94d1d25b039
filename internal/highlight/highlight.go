// Package highlight provides per-line syntax highlighting for the editor,
// built on chroma's lexer/token model. Highlighting is computed lazily and
// memoized per line; edits invalidate only the affected range so large
// files never pay for a full re-lex on every keystroke.
package highlight

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/micro-editor/tcell/v2"
)

// Segment is one contiguously-styled run of a line's text. It carries no
// column position: segments cover the line in order, and the caller maps
// them onto grapheme columns by counting runes.
type Segment struct {
	Text  string
	Style tcell.Style
}

// LineSource is the minimal read interface a highlighter needs from the
// text buffer, satisfied by *rope.Buffer without importing it (keeps
// highlight independent of the buffer's edit API).
type LineSource interface {
	LineCount() int
	LineString(i int) string
}

// Cache memoizes highlighted segments per physical line and invalidates a
// contiguous range when edits touch it. It is safe for concurrent use:
// every access to the line map holds mu.
type Cache struct {
	mu     sync.Mutex
	lexer  chroma.Lexer
	lines  map[int][]Segment
	theme  *Theme
}

// NewCache builds a Cache for the given filename (used to select a chroma
// lexer by extension/name) and theme. If no lexer matches, lines render as
// a single unstyled segment.
func NewCache(filename string, theme *Theme) *Cache {
	lexer := lexers.Match(filename)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)
	return &Cache{
		lexer: lexer,
		lines: make(map[int][]Segment),
		theme: theme,
	}
}

// Invalidate drops cached segments for lines in [from, to] inclusive. Pass
// the same start/end for a single-line edit; pass to=-1 to invalidate from
// `from` through end of file (used after a multi-line insert/delete shifts
// line numbers).
func (c *Cache) Invalidate(from, to int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if to < 0 {
		for k := range c.lines {
			if k >= from {
				delete(c.lines, k)
			}
		}
		return
	}
	for i := from; i <= to; i++ {
		delete(c.lines, i)
	}
}

// InvalidateAll drops the entire cache, used when the lexer or theme changes.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = make(map[int][]Segment)
}

// Line returns the styled segments for line i, computing and memoizing
// them on first access. Lexing runs per-line rather than whole-file:
// chroma's state-based lexers mostly tokenize correctly per line for the
// common languages this editor targets, and per-line lexing is what keeps
// edits to an O(1)-invalidation operation instead of a full re-highlight.
func (c *Cache) Line(src LineSource, i int) []Segment {
	c.mu.Lock()
	if segs, ok := c.lines[i]; ok {
		c.mu.Unlock()
		return segs
	}
	c.mu.Unlock()

	text := src.LineString(i)
	segs := c.lex(text)

	c.mu.Lock()
	c.lines[i] = segs
	c.mu.Unlock()
	return segs
}

func (c *Cache) lex(text string) []Segment {
	if text == "" {
		return nil
	}
	iter, err := c.lexer.Tokenise(nil, text+"\n")
	if err != nil {
		return []Segment{{Text: text, Style: c.theme.Default}}
	}
	var segs []Segment
	for _, tok := range iter.Tokens() {
		s := strings.TrimSuffix(tok.Value, "\n")
		if s == "" {
			continue
		}
		segs = append(segs, Segment{Text: s, Style: c.theme.StyleFor(tok.Type)})
	}
	return segs
}
