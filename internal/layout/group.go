package layout

import "github.com/ellery/stacktile/internal/panel"

// widthMin and widthMax bound a group's width during resize, per spec.md
// 4.G's "each clamped to [20, 300]".
const (
	widthMin = 20
	widthMax = 300
)

// Group is spec.md 4.G's horizontal slot: a vertical stack of panels with
// exactly one expanded at a time (the rest collapse to a title bar), and
// either an explicit width or auto-width (shared equally with sibling
// auto-width groups).
type Group struct {
	Panels        []panel.Panel
	ExpandedIndex int
	Width         *int // nil => auto, shared with other auto groups

	// actualWidth is the last width DistributeWidths computed for this
	// group; resize gestures freeze auto groups to this value before
	// applying a delta, per spec.md 4.G.
	actualWidth int
}

// NewGroup creates a group holding panels, starting with the first one
// expanded, and auto width.
func NewGroup(panels ...panel.Panel) *Group {
	return &Group{Panels: panels}
}

// ActualWidth returns the width DistributeWidths last computed for this
// group, whether it came from an explicit Width or an auto-share.
func (g *Group) ActualWidth() int {
	return g.actualWidth
}

func (g *Group) ExpandedPanel() panel.Panel {
	if g.ExpandedIndex < 0 || g.ExpandedIndex >= len(g.Panels) {
		return nil
	}
	return g.Panels[g.ExpandedIndex]
}

// NextPanel rotates the expanded index forward within the group.
func (g *Group) NextPanel() {
	if len(g.Panels) == 0 {
		return
	}
	g.ExpandedIndex = (g.ExpandedIndex + 1) % len(g.Panels)
}

// PrevPanel rotates the expanded index backward within the group.
func (g *Group) PrevPanel() {
	if len(g.Panels) == 0 {
		return
	}
	g.ExpandedIndex = (g.ExpandedIndex - 1 + len(g.Panels)) % len(g.Panels)
}

func clampWidth(w int) int {
	if w < widthMin {
		return widthMin
	}
	if w > widthMax {
		return widthMax
	}
	return w
}
