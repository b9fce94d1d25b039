package vt

import "github.com/cliofy/govte"

// Parser wraps govte's VT state machine, feeding decoded events into a
// Screen. It holds no state of its own beyond the underlying parser: all
// terminal state lives in Screen.
type Parser struct {
	p *govte.Parser
}

// NewParser returns a parser ready to feed bytes into screen via Feed.
func NewParser() *Parser {
	return &Parser{p: govte.NewParser()}
}

// Feed advances the parser over every byte in data, driving screen's
// govte.Performer callbacks. The reader goroutine in internal/ptypanel
// calls this once per PTY read, under its own short-lived lock.
func (pr *Parser) Feed(screen *Screen, data []byte) {
	for _, b := range data {
		pr.p.Advance(screen, b)
	}
}
