package editor

import (
	"strings"

	"github.com/ellery/stacktile/internal/rope"
)

// SearchState tracks an in-progress incremental search/replace session.
type SearchState struct {
	Query         string
	CaseSensitive bool
	Matches       []rope.Cursor
	Current       int // -1 means no current match
	ReplaceWith   string
	hasReplace    bool
}

// NewSearchState returns an empty, inactive search state.
func NewSearchState() *SearchState {
	return &SearchState{Current: -1}
}

// Active reports whether a search is in progress (non-empty query).
func (s *SearchState) Active() bool { return s.Query != "" }

// Start scans the buffer row-major for every occurrence of query and
// selects the match closest to (after, at-or-after) cursor as current.
func (s *SearchState) Start(b *rope.Buffer, query string, caseSensitive bool, near rope.Cursor) {
	s.Query = query
	s.CaseSensitive = caseSensitive
	s.Matches = findAll(b, query, caseSensitive)
	s.Current = -1
	if len(s.Matches) == 0 {
		return
	}
	for i, m := range s.Matches {
		if !m.Less(near) {
			s.Current = i
			return
		}
	}
	s.Current = 0
}

func findAll(b *rope.Buffer, query string, caseSensitive bool) []rope.Cursor {
	if query == "" {
		return nil
	}
	var matches []rope.Cursor
	needle := query
	if !caseSensitive {
		needle = strings.ToLower(needle)
	}
	for i := 0; i < b.LineCount(); i++ {
		line := b.LineString(i)
		hay := line
		if !caseSensitive {
			hay = strings.ToLower(hay)
		}
		graphemes := rope.Graphemes(line)
		byteToCol := byteOffsetToGraphemeCol(graphemes)
		start := 0
		for {
			idx := strings.Index(hay[start:], needle)
			if idx < 0 {
				break
			}
			bytePos := start + idx
			col := byteToCol[bytePos]
			matches = append(matches, rope.Cursor{Line: i, Col: col})
			start = bytePos + len(needle)
			if start > len(hay) {
				break
			}
		}
	}
	return matches
}

// byteOffsetToGraphemeCol builds a map from byte offset (of each grapheme's
// start) to its grapheme column index, so substring byte offsets from
// strings.Index can be translated into Cursor.Col values.
func byteOffsetToGraphemeCol(graphemes []string) map[int]int {
	m := make(map[int]int, len(graphemes)+1)
	offset := 0
	for i, g := range graphemes {
		m[offset] = i
		offset += len(g)
	}
	m[offset] = len(graphemes)
	return m
}

// Next advances to the next match, wrapping around.
func (s *SearchState) Next() (rope.Cursor, bool) {
	if len(s.Matches) == 0 {
		return rope.Cursor{}, false
	}
	if s.Current < 0 {
		s.Current = 0
	} else {
		s.Current = (s.Current + 1) % len(s.Matches)
	}
	return s.Matches[s.Current], true
}

// Prev moves to the previous match, wrapping around.
func (s *SearchState) Prev() (rope.Cursor, bool) {
	if len(s.Matches) == 0 {
		return rope.Cursor{}, false
	}
	if s.Current < 0 {
		s.Current = len(s.Matches) - 1
	} else {
		s.Current = (s.Current - 1 + len(s.Matches)) % len(s.Matches)
	}
	return s.Matches[s.Current], true
}

// Close clears the active match list but preserves Query so a subsequent
// reopen can restore it immediately.
func (s *SearchState) Close() {
	s.Matches = nil
	s.Current = -1
}

// ReplaceCurrent applies the replacement at the current match, shifts the
// columns of any remaining matches on the same line, and advances to the
// next match, wrapping to the first one when the replaced match was last.
func ReplaceCurrent(b *rope.Buffer, s *SearchState) bool {
	if s.Current < 0 || s.Current >= len(s.Matches) {
		return false
	}
	m := s.Matches[s.Current]
	end := adjustEndForGraphemes(b, m, s.Query)
	b.DeleteRange(m, end)
	b.Insert(m, s.ReplaceWith)

	delta := len(rope.Graphemes(s.ReplaceWith)) - len(rope.Graphemes(s.Query))
	s.Matches = append(s.Matches[:s.Current], s.Matches[s.Current+1:]...)
	for i := range s.Matches {
		if s.Matches[i].Line == m.Line && s.Matches[i].Col > m.Col {
			s.Matches[i].Col += delta
		}
	}
	if len(s.Matches) == 0 {
		s.Current = -1
		return true
	}
	if s.Current >= len(s.Matches) {
		s.Current = 0
	}
	return true
}

func adjustEndForGraphemes(b *rope.Buffer, start rope.Cursor, query string) rope.Cursor {
	n := len(rope.Graphemes(query))
	return rope.Cursor{Line: start.Line, Col: start.Col + n}
}

// ReplaceAll applies replacements at every match in reverse row-major order
// so earlier positions remain valid while later ones are rewritten, and
// returns the set of touched line indices for highlight invalidation.
func ReplaceAll(b *rope.Buffer, s *SearchState) map[int]bool {
	touched := make(map[int]bool)
	for i := len(s.Matches) - 1; i >= 0; i-- {
		m := s.Matches[i]
		end := adjustEndForGraphemes(b, m, s.Query)
		b.DeleteRange(m, end)
		b.Insert(m, s.ReplaceWith)
		touched[m.Line] = true
	}
	s.Matches = nil
	s.Current = -1
	return touched
}
