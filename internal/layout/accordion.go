package layout

import (
	"log"
	"time"
)

// groupIdleTimeout matches the teacher's manager.go idleTimeout: how long
// without input before background watchers are suspended to save CPU.
const groupIdleTimeout = 1 * time.Minute

// Manager is spec.md 4.G's layout manager, generalized from the teacher's
// LayoutManager's hardcoded 3-pane arrangement into N horizontal Groups,
// each an accordion stack of panels with exactly one expanded.
type Manager struct {
	Groups        []*Group
	FocusedGroup  int
	ScreenW       int
	ScreenH       int
	InMultiplexer bool

	lastActivity      time.Time
	watchersSuspended bool
	idleCheckStop     chan struct{}

	// OnSuspendWatchers/OnResumeWatchers let the embedder react to idle
	// suspension without this package needing to know which panels own a
	// watcher (the teacher's equivalent hardcodes FileBrowser.Tree and
	// SourceControl directly).
	OnSuspendWatchers func()
	OnResumeWatchers  func()
}

// NewManager creates a manager with no groups; the caller fills Groups
// and then calls DistributeWidths.
func NewManager(screenW, screenH int) *Manager {
	return &Manager{
		ScreenW:       screenW,
		ScreenH:       screenH,
		lastActivity:  time.Now(),
		idleCheckStop: make(chan struct{}),
	}
}

// Start launches the idle-watcher-suspension goroutine, matching the
// teacher's idleChecker pattern.
func (m *Manager) Start() {
	go m.idleChecker()
}

// Stop halts the idle-checker goroutine.
func (m *Manager) Stop() {
	close(m.idleCheckStop)
}

// Touch records user activity, resuming watchers if they were suspended.
func (m *Manager) Touch() {
	m.lastActivity = time.Now()
	if m.watchersSuspended {
		m.watchersSuspended = false
		if m.OnResumeWatchers != nil {
			m.OnResumeWatchers()
		}
	}
}

func (m *Manager) idleChecker() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-m.idleCheckStop:
			return
		case <-ticker.C:
			if time.Since(m.lastActivity) > groupIdleTimeout && !m.watchersSuspended {
				m.watchersSuspended = true
				if m.OnSuspendWatchers != nil {
					m.OnSuspendWatchers()
				}
				log.Println("stacktile: watchers suspended due to inactivity")
			}
		}
	}
}

func (m *Manager) FocusedGroupPtr() *Group {
	if m.FocusedGroup < 0 || m.FocusedGroup >= len(m.Groups) {
		return nil
	}
	return m.Groups[m.FocusedGroup]
}

// NextGroup/PrevGroup cycle horizontally, per spec.md 4.G.
func (m *Manager) NextGroup() {
	if len(m.Groups) == 0 {
		return
	}
	m.FocusedGroup = (m.FocusedGroup + 1) % len(m.Groups)
}

func (m *Manager) PrevGroup() {
	if len(m.Groups) == 0 {
		return
	}
	m.FocusedGroup = (m.FocusedGroup - 1 + len(m.Groups)) % len(m.Groups)
}

// NextPanelInGroup/PrevPanelInGroup cycle vertically within the focused
// group, rotating its expanded index.
func (m *Manager) NextPanelInGroup() {
	if g := m.FocusedGroupPtr(); g != nil {
		g.NextPanel()
	}
}

func (m *Manager) PrevPanelInGroup() {
	if g := m.FocusedGroupPtr(); g != nil {
		g.PrevPanel()
	}
}

// MovePanelToPrevGroup rehomes the focused group's expanded panel into the
// previous group, removing the source group if it becomes empty.
func (m *Manager) MovePanelToPrevGroup() { m.movePanel(m.FocusedGroup - 1) }
func (m *Manager) MovePanelToNextGroup() { m.movePanel(m.FocusedGroup + 1) }
func (m *Manager) MovePanelToFirstGroup() { m.movePanel(0) }
func (m *Manager) MovePanelToLastGroup()  { m.movePanel(len(m.Groups) - 1) }

func (m *Manager) movePanel(destIndex int) {
	src := m.FocusedGroupPtr()
	if src == nil || destIndex < 0 || destIndex >= len(m.Groups) || destIndex == m.FocusedGroup {
		return
	}
	p := src.ExpandedPanel()
	if p == nil {
		return
	}
	src.Panels = append(src.Panels[:src.ExpandedIndex], src.Panels[src.ExpandedIndex+1:]...)
	if src.ExpandedIndex >= len(src.Panels) {
		src.ExpandedIndex = len(src.Panels) - 1
	}
	if src.ExpandedIndex < 0 {
		src.ExpandedIndex = 0
	}

	dest := m.Groups[destIndex]
	dest.Panels = append(dest.Panels, p)
	dest.ExpandedIndex = len(dest.Panels) - 1

	if len(src.Panels) == 0 {
		m.removeGroup(m.FocusedGroup)
		if destIndex > m.FocusedGroup {
			destIndex--
		}
	}
	m.FocusedGroup = destIndex
}

func (m *Manager) removeGroup(idx int) {
	m.Groups = append(m.Groups[:idx], m.Groups[idx+1:]...)
	m.redistributeWidths()
	if m.FocusedGroup >= len(m.Groups) {
		m.FocusedGroup = len(m.Groups) - 1
	}
}

// ToggleStacking: if the focused group is alone in its group (only one
// panel), merge it into the sibling group (the next one, or the previous
// if this is the last); otherwise split the expanded panel out into a new
// group inserted right after the current one.
func (m *Manager) ToggleStacking() {
	g := m.FocusedGroupPtr()
	if g == nil {
		return
	}
	if len(g.Panels) == 1 {
		sibling := m.FocusedGroup + 1
		if sibling >= len(m.Groups) {
			sibling = m.FocusedGroup - 1
		}
		if sibling < 0 {
			return
		}
		m.Groups[sibling].Panels = append(m.Groups[sibling].Panels, g.Panels[0])
		m.Groups[sibling].ExpandedIndex = len(m.Groups[sibling].Panels) - 1
		m.removeGroup(m.FocusedGroup)
		if m.FocusedGroup > sibling {
			m.FocusedGroup = sibling
		}
		return
	}
	p := g.ExpandedPanel()
	if p == nil {
		return
	}
	g.Panels = append(g.Panels[:g.ExpandedIndex], g.Panels[g.ExpandedIndex+1:]...)
	if g.ExpandedIndex >= len(g.Panels) {
		g.ExpandedIndex = len(g.Panels) - 1
	}
	newGroup := NewGroup(p)
	insertAt := m.FocusedGroup + 1
	m.Groups = append(m.Groups[:insertAt], append([]*Group{newGroup}, m.Groups[insertAt:]...)...)
	m.FocusedGroup = insertAt
	m.redistributeWidths()
}

// DistributeWidths assigns each group's actualWidth: explicit-width groups
// keep theirs (clamped), the remainder is split equally among auto groups,
// per spec.md 4.G.
func (m *Manager) DistributeWidths() {
	if len(m.Groups) == 0 {
		return
	}
	remaining := m.ScreenW
	autoCount := 0
	for _, g := range m.Groups {
		if g.Width != nil {
			g.actualWidth = clampWidth(*g.Width)
			remaining -= g.actualWidth
		} else {
			autoCount++
		}
	}
	if autoCount == 0 {
		return
	}
	share := remaining / autoCount
	extra := remaining % autoCount
	assigned := 0
	for _, g := range m.Groups {
		if g.Width != nil {
			continue
		}
		w := share
		if assigned == 0 {
			w += extra
		}
		assigned++
		g.actualWidth = clampWidth(w)
	}
}

func (m *Manager) redistributeWidths() { m.DistributeWidths() }

// ResizeFocusedGroup applies a ±1-style delta gesture to the focused group:
// auto-width groups are first frozen to their current actual widths, then
// delta is added to the focused group and subtracted from the others in
// proportion to their widths, each clamped to [20, 300]; if the clamped sum still deviates
// from the target screen width, the focused group absorbs the remainder.
// This is spec.md 4.G's resize algorithm, ported verbatim from the
// teacher's manager.go resize-clamp math generalized from 3 fixed panes to
// N groups.
func (m *Manager) ResizeFocusedGroup(delta int) {
	g := m.FocusedGroupPtr()
	if g == nil || len(m.Groups) < 2 {
		return
	}
	for _, grp := range m.Groups {
		if grp.Width == nil {
			w := grp.actualWidth
			grp.Width = &w
		}
	}

	others := make([]*Group, 0, len(m.Groups)-1)
	for _, grp := range m.Groups {
		if grp != g {
			others = append(others, grp)
		}
	}
	if len(others) == 0 {
		return
	}

	newFocused := clampWidth(*g.Width + delta)
	actualDelta := newFocused - *g.Width
	*g.Width = newFocused
	g.actualWidth = newFocused

	othersTotal := 0
	for _, o := range others {
		othersTotal += *o.Width
	}
	total := newFocused
	assigned := 0
	for i, o := range others {
		shrink := actualDelta - assigned
		if i < len(others)-1 && othersTotal > 0 {
			shrink = actualDelta * *o.Width / othersTotal
		}
		assigned += shrink
		w := clampWidth(*o.Width - shrink)
		*o.Width = w
		o.actualWidth = w
		total += w
	}

	if deviation := m.ScreenW - total; deviation != 0 {
		w := clampWidth(*g.Width + deviation)
		*g.Width = w
		g.actualWidth = w
	}
}
