package panel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ellery/stacktile/internal/editor"
	"github.com/ellery/stacktile/internal/filemanager"
	"github.com/ellery/stacktile/internal/modal"
	"github.com/ellery/stacktile/internal/ptypanel"
	"github.com/ellery/stacktile/internal/rope"
	"github.com/micro-editor/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScratchFile(dir string) error {
	return os.WriteFile(filepath.Join(dir, "scratch.txt"), []byte("hi\n"), 0o644)
}

func keyRune(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone, "")
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone, "")
}

func newTestEditorPanel() (*editorPanel, *editor.Engine) {
	b := rope.New()
	e := editor.New(b, "scratch.txt")
	e.Viewport.Width, e.Viewport.Height = 40, 10
	p := &editorPanel{engine: e}
	return p, e
}

func TestEditorPanelTitleReflectsModification(t *testing.T) {
	p, e := newTestEditorPanel()
	assert.Equal(t, "untitled", p.Title())
	e.InsertChar("x")
	assert.Contains(t, p.Title(), "*")
}

func TestEditorPanelRenderProducesRowsMatchingViewport(t *testing.T) {
	p, e := newTestEditorPanel()
	e.InsertChar("hello")
	rows := p.Render(true)
	require.Len(t, rows, e.Viewport.Height)
	require.Len(t, rows[0], e.Viewport.Width)
}

func TestEditorPanelHandleKeyInsertsRune(t *testing.T) {
	p, e := newTestEditorPanel()
	p.HandleKey(keyRune('h'))
	p.HandleKey(keyRune('i'))
	assert.Equal(t, "hi", e.Buffer.LineString(0))
}

func TestEditorPanelNeedsCloseConfirmationWhenModified(t *testing.T) {
	p, e := newTestEditorPanel()
	_, needs := p.NeedsCloseConfirmation()
	assert.False(t, needs)
	e.InsertChar("x")
	_, needs = p.NeedsCloseConfirmation()
	assert.True(t, needs)
}

func TestFileManagerPanelTranslatesDeleteRequestToModal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, writeScratchFile(dir))
	state, err := filemanager.NewState(dir)
	require.NoError(t, err)
	p := NewFileManagerPanel(state)

	events := p.HandleKey(key(tcell.KeyCtrlA))
	assert.Empty(t, events)
	events = p.HandleKey(key(tcell.KeyF8))
	require.Len(t, events, 1)
	assert.Equal(t, EventRequestModal, events[0].Kind)
	assert.Equal(t, ModalConfirmDelete, events[0].ModalKind)
}

func TestFileManagerPanelWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	state, err := filemanager.NewState(dir)
	require.NoError(t, err)
	p := NewFileManagerPanel(state)
	wd, ok := p.WorkingDirectory()
	require.True(t, ok)
	assert.Equal(t, state.CurrentPath, wd)
}

func TestTerminalPanelWorkingDirectoryAndSession(t *testing.T) {
	pty, err := ptypanel.New(ptypanel.Config{
		Rows: 10, Cols: 40,
		Command:    []string{"/bin/sh", "-c", "sleep 5"},
		WorkingDir: "/tmp",
	})
	require.NoError(t, err)
	defer pty.Close()

	p := NewTerminalPanel(pty, "/tmp", "shell")
	wd, ok := p.WorkingDirectory()
	require.True(t, ok)
	assert.Equal(t, "/tmp", wd)

	rec, ok := p.ToSession("")
	require.True(t, ok)
	require.NotNil(t, rec.Terminal)
	assert.Equal(t, "/tmp", rec.Terminal.WorkingDir)
}

func TestDispatcherRoutesToModalFirst(t *testing.T) {
	d := NewDispatcher(80, 24)
	editorP, _ := newTestEditorPanel()
	d.Panels = []Panel{editorP}
	d.ActiveIndex = 0

	resolved := false
	d.OnPendingResolved = func(dd *Dispatcher, action modal.PendingAction, outcome ModalOutcome) {
		resolved = true
		assert.True(t, outcome.Confirmed)
	}
	d.OpenConfirm("Quit?", "Really quit?", "", modal.NewPendingAction(modal.PendingQuit, nil))
	require.True(t, d.ModalOpen())

	d.HandleKey(keyRune('y'))
	assert.True(t, resolved)
	assert.False(t, d.ModalOpen())
}

func TestDispatcherFallsThroughToActivePanelWhenNoModal(t *testing.T) {
	d := NewDispatcher(80, 24)
	editorP, e := newTestEditorPanel()
	d.Panels = []Panel{editorP}
	d.ActiveIndex = 0

	d.HandleKey(keyRune('x'))
	assert.Equal(t, "x", e.Buffer.LineString(0))
}

func TestDispatcherOpensModalFromFileManagerDeleteRequest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, writeScratchFile(dir))
	state, err := filemanager.NewState(dir)
	require.NoError(t, err)
	fmPanel := NewFileManagerPanel(state)

	d := NewDispatcher(80, 24)
	d.Panels = []Panel{fmPanel}
	d.ActiveIndex = 0

	d.HandleKey(key(tcell.KeyCtrlA))
	d.HandleKey(key(tcell.KeyF8))
	assert.True(t, d.ModalOpen())
}
