package layout

import (
	"testing"

	"github.com/ellery/stacktile/internal/panel"
	"github.com/ellery/stacktile/internal/vt"
	"github.com/micro-editor/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePanel is a minimal panel.Panel stand-in for exercising group/manager
// navigation without needing a real editor/terminal/file-manager engine.
type fakePanel struct{ name string }

func (f *fakePanel) Name() string                  { return f.name }
func (f *fakePanel) Title() string                 { return f.name }
func (f *fakePanel) PrepareRender()                {}
func (f *fakePanel) Render(bool) [][]vt.Cell        { return nil }
func (f *fakePanel) HandleKey(*tcell.EventKey) []panel.Event { return nil }
func (f *fakePanel) HandleMouse(int, int, tcell.ButtonMask, tcell.ModMask) []panel.Event {
	return nil
}
func (f *fakePanel) HandleCommand(panel.Command) panel.CommandResult { return panel.CommandResult{} }
func (f *fakePanel) NeedsCloseConfirmation() (string, bool)          { return "", false }
func (f *fakePanel) CapturesEscape() bool                            { return false }
func (f *fakePanel) ShouldAutoClose() bool                           { return false }
func (f *fakePanel) ToSession(string) (panel.SessionRecord, bool)    { return panel.SessionRecord{}, false }
func (f *fakePanel) WorkingDirectory() (string, bool)                { return "", false }

func TestGroupNextPrevPanelRotatesExpandedIndex(t *testing.T) {
	g := NewGroup(&fakePanel{"a"}, &fakePanel{"b"}, &fakePanel{"c"})
	assert.Equal(t, 0, g.ExpandedIndex)
	g.NextPanel()
	assert.Equal(t, 1, g.ExpandedIndex)
	g.NextPanel()
	g.NextPanel()
	assert.Equal(t, 0, g.ExpandedIndex)
	g.PrevPanel()
	assert.Equal(t, 2, g.ExpandedIndex)
}

func TestManagerNextPrevGroupCycles(t *testing.T) {
	m := NewManager(100, 40)
	m.Groups = []*Group{NewGroup(&fakePanel{"a"}), NewGroup(&fakePanel{"b"}), NewGroup(&fakePanel{"c"})}
	assert.Equal(t, 0, m.FocusedGroup)
	m.NextGroup()
	assert.Equal(t, 1, m.FocusedGroup)
	m.PrevGroup()
	m.PrevGroup()
	assert.Equal(t, 2, m.FocusedGroup)
}

func TestDistributeWidthsSharesEquallyAmongAutoGroups(t *testing.T) {
	m := NewManager(100, 40)
	m.Groups = []*Group{NewGroup(&fakePanel{"a"}), NewGroup(&fakePanel{"b"})}
	m.DistributeWidths()
	assert.Equal(t, 50, m.Groups[0].actualWidth)
	assert.Equal(t, 50, m.Groups[1].actualWidth)
}

func TestDistributeWidthsHonorsExplicitWidth(t *testing.T) {
	m := NewManager(100, 40)
	explicit := 30
	m.Groups = []*Group{{Panels: []panel.Panel{&fakePanel{"a"}}, Width: &explicit}, NewGroup(&fakePanel{"b"})}
	m.DistributeWidths()
	assert.Equal(t, 30, m.Groups[0].actualWidth)
	assert.Equal(t, 70, m.Groups[1].actualWidth)
}

func TestMovePanelToNextGroupRehomesAndRemovesEmptySource(t *testing.T) {
	m := NewManager(100, 40)
	m.Groups = []*Group{NewGroup(&fakePanel{"a"}), NewGroup(&fakePanel{"b"})}
	m.FocusedGroup = 0
	m.MovePanelToNextGroup()
	require.Len(t, m.Groups, 1)
	assert.Len(t, m.Groups[0].Panels, 2)
}

func TestToggleStackingSplitsAndMerges(t *testing.T) {
	m := NewManager(100, 40)
	g := NewGroup(&fakePanel{"a"}, &fakePanel{"b"})
	m.Groups = []*Group{g}
	m.FocusedGroup = 0
	m.ToggleStacking()
	require.Len(t, m.Groups, 2)
	assert.Len(t, m.Groups[0].Panels, 1)
	assert.Len(t, m.Groups[1].Panels, 1)

	m.FocusedGroup = 1
	m.ToggleStacking()
	require.Len(t, m.Groups, 1)
	assert.Len(t, m.Groups[0].Panels, 2)
}

func TestResizeFocusedGroupClampsAndRedistributes(t *testing.T) {
	m := NewManager(100, 40)
	m.Groups = []*Group{NewGroup(&fakePanel{"a"}), NewGroup(&fakePanel{"b"})}
	m.DistributeWidths()
	m.FocusedGroup = 0
	m.ResizeFocusedGroup(10)
	assert.Equal(t, 60, m.Groups[0].actualWidth)
	assert.Equal(t, 40, m.Groups[1].actualWidth)
	assert.Equal(t, 100, m.Groups[0].actualWidth+m.Groups[1].actualWidth)
}

func TestTouchResumesWatchersAfterSuspend(t *testing.T) {
	m := NewManager(100, 40)
	resumed := false
	m.OnResumeWatchers = func() { resumed = true }
	m.watchersSuspended = true
	m.Touch()
	assert.True(t, resumed)
	assert.False(t, m.watchersSuspended)
}
