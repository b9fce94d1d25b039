// Command stacktile is a full-screen terminal IDE: a file manager, a text
// editor, and one or more terminal panels arranged in resizable groups.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/ellery/stacktile/internal/clipboard"
	"github.com/ellery/stacktile/internal/config"
	"github.com/ellery/stacktile/internal/editor"
	"github.com/ellery/stacktile/internal/filemanager"
	"github.com/ellery/stacktile/internal/layout"
	"github.com/ellery/stacktile/internal/modal"
	"github.com/ellery/stacktile/internal/panel"
	"github.com/ellery/stacktile/internal/ptypanel"
	"github.com/ellery/stacktile/internal/rope"
	"github.com/ellery/stacktile/internal/session"
	"github.com/ellery/stacktile/internal/vt"
	"github.com/micro-editor/tcell/v2"
)

var (
	flagConfigDir = flag.String("config-dir", "", "Specify a custom location for the configuration directory")
	flagDebug     = flag.Bool("debug", false, "Enable debug mode (writes a rotating log under TMPDIR)")
	flagVersion   = flag.Bool("version", false, "Show the version number and exit")
	flagLayout    = flag.String("layout", "", "Path to an initial layout file (accepted and logged, but not applied: the default layout is used)")
)

const version = "0.1.0"

func main() {
	flag.Usage = func() {
		fmt.Println("Usage: stacktile [OPTIONS]")
		fmt.Println()
		fmt.Println("Options:")
		fmt.Println("  -version           Show version and exit")
		fmt.Println("  -config-dir <dir>  Use a custom configuration directory")
		fmt.Println("  -debug             Enable debug logging")
		fmt.Println("  -layout <file>     Accepted but not applied; the default layout is used")
	}
	flag.Parse()

	if *flagVersion {
		fmt.Println("stacktile", version)
		return
	}

	initLog(*flagDebug)

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "stacktile:", err)
		os.Exit(1)
	}
}

func run() (err error) {
	if initErr := config.InitConfigDir(*flagConfigDir); initErr != nil {
		return fmt.Errorf("init config dir: %w", initErr)
	}
	config.LoadSettings()
	config.ReloadThiccBackground()
	config.InitDoubleClickThreshold()
	if colorErr := config.InitColorscheme(); colorErr != nil {
		log.Printf("stacktile: colorscheme init: %v", colorErr)
	}
	if *flagLayout != "" {
		log.Printf("stacktile: -layout %s requested; initial layout still comes from the default 3-group arrangement until layout-file loading is wired", *flagLayout)
	}

	projectRoot, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getwd: %w", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	defer screen.Fini()

	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintln(os.Stderr, "stacktile: fatal error:", r)
			fmt.Fprintln(os.Stderr, string(debug.Stack()))
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	cols, rows := screen.Size()
	app := newApp(projectRoot, cols, rows)
	defer app.shutdown()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	app.render(screen)
	for {
		select {
		case sig := <-sigCh:
			log.Printf("stacktile: received %v, shutting down", sig)
			return nil
		case ev := <-events:
			if app.handleEvent(ev) {
				return nil
			}
			app.render(screen)
		}
	}
}

// app bundles the layout manager and dispatcher the event loop drives.
type app struct {
	projectRoot string
	sessionDir  string
	dispatcher  *panel.Dispatcher
	layoutMgr   *layout.Manager
	clip        *clipboard.Clipboard
}

func newApp(projectRoot string, cols, rows int) *app {
	clip := clipboard.New()

	fmState, err := filemanager.NewState(projectRoot)
	if err != nil {
		log.Printf("stacktile: file manager init failed: %v", err)
		fmState = &filemanager.State{CurrentPath: projectRoot}
	}
	fmPanel := panel.NewFileManagerPanel(fmState)

	buf := rope.New()
	editorEngine := editor.New(buf, "")
	editorPanel := panel.NewEditorPanel(editorEngine, config.IsSettingsFile, config.ValidateEditorText)

	shellPanel, err := ptypanel.New(ptypanel.Config{
		Rows: rows, Cols: cols / 2,
		WorkingDir: projectRoot,
		Clipboard:  clip,
	})
	var panels []panel.Panel
	panels = append(panels, fmPanel, editorPanel)
	if err != nil {
		log.Printf("stacktile: terminal spawn failed: %v", err)
	} else {
		panels = append(panels, panel.NewTerminalPanel(shellPanel, projectRoot, "shell"))
	}

	dispatcher := panel.NewDispatcher(cols, rows)
	dispatcher.Panels = panels
	dispatcher.ActiveIndex = 1 // editor focused by default

	lm := layout.NewManager(cols, rows)
	lm.Groups = []*layout.Group{
		layout.NewGroup(fmPanel),
		layout.NewGroup(editorPanel),
	}
	if len(panels) == 3 {
		lm.Groups = append(lm.Groups, layout.NewGroup(panels[2]))
	}
	lm.OnSuspendWatchers = func() {
		fmPanel.HandleCommand(panel.Command{Kind: panel.CommandSetFsWatchRoot, WatchRoot: ""})
	}
	lm.OnResumeWatchers = func() {
		fmPanel.HandleCommand(panel.Command{Kind: panel.CommandSetFsWatchRoot, WatchRoot: fmState.CurrentPath})
	}
	lm.DistributeWidths()
	lm.Start()

	dispatcher.OnPendingResolved = defaultPendingResolver
	dispatcher.OnGlobalHotkey = globalHotkeys(lm)

	sessionDir, restoreErr := restoreSession(projectRoot, dispatcher)
	if restoreErr != nil && restoreErr != session.ErrNoSession {
		log.Printf("stacktile: session restore failed: %v", restoreErr)
	}

	return &app{
		projectRoot: projectRoot,
		sessionDir:  sessionDir,
		dispatcher:  dispatcher,
		layoutMgr:   lm,
		clip:        clip,
	}
}

// restoreSession loads the persisted session file, if any; actually
// rehydrating panels from it is cmd-specific wiring left for a future
// pass (it needs editor buffer loading + PTY respawn, not just records),
// so for now this only resolves the session directory so Record/Save can
// use it on shutdown.
func restoreSession(projectRoot string, d *panel.Dispatcher) (string, error) {
	_, dir, err := session.Load(projectRoot)
	if err != nil && err != session.ErrNoSession {
		return dir, err
	}
	return dir, nil
}

func (a *app) shutdown() {
	f := session.New()
	for _, p := range a.dispatcher.Panels {
		f.Record(p, a.sessionDir)
	}
	if err := f.Save(a.sessionDir); err != nil {
		log.Printf("stacktile: session save failed: %v", err)
	}
	a.layoutMgr.Stop()
}

// defaultPendingResolver is the embedder's reaction to a resolved modal
// action; full per-PendingKind handling (create file, delete list, batch
// copy/move, save-as) is file-manager/editor-specific wiring that grows as
// those flows are exercised end to end.
func defaultPendingResolver(d *panel.Dispatcher, action modal.PendingAction, outcome panel.ModalOutcome) {
	if !outcome.Confirmed {
		return
	}
	log.Printf("stacktile: resolved pending action %v", action.Kind)
}

// globalHotkeys wires the application-wide key bindings ahead of panel
// delivery: Ctrl+Q quits, Alt+h/l move between groups, Alt+j/k cycle the
// expanded panel within a group, and Alt+s toggles stacking. No key
// resizes a group.
func globalHotkeys(lm *layout.Manager) func(*panel.Dispatcher, *tcell.EventKey) bool {
	return func(d *panel.Dispatcher, ev *tcell.EventKey) bool {
		lm.Touch()
		if ev.Key() == tcell.KeyCtrlQ {
			d.Quit = true
			return true
		}
		if ev.Modifiers()&tcell.ModAlt == 0 {
			return false
		}
		switch ev.Rune() {
		case 'l':
			lm.NextGroup()
		case 'h':
			lm.PrevGroup()
		case 'j':
			lm.NextPanelInGroup()
		case 'k':
			lm.PrevPanelInGroup()
		case 's':
			lm.ToggleStacking()
		default:
			return false
		}
		syncDispatcherFocus(d, lm)
		return true
	}
}

// syncDispatcherFocus points the dispatcher's ActiveIndex at whichever
// panel the layout manager currently has focused+expanded, since the
// dispatcher's flat panel list and the layout's grouped arrangement are
// two views over the same panel set.
func syncDispatcherFocus(d *panel.Dispatcher, lm *layout.Manager) {
	g := lm.FocusedGroupPtr()
	if g == nil {
		return
	}
	p := g.ExpandedPanel()
	if p == nil {
		return
	}
	for i, dp := range d.Panels {
		if dp == p {
			d.ActiveIndex = i
			return
		}
	}
}

func (a *app) handleEvent(ev tcell.Event) (quit bool) {
	switch e := ev.(type) {
	case *tcell.EventResize:
		cols, rows := e.Size()
		a.layoutMgr.ScreenW, a.layoutMgr.ScreenH = cols, rows
		a.layoutMgr.DistributeWidths()
		a.dispatcher.Resize(rows, cols)
	case *tcell.EventKey:
		a.layoutMgr.Touch()
		a.dispatcher.HandleKey(e)
		syncDispatcherFocus(a.dispatcher, a.layoutMgr)
	case *tcell.EventMouse:
		a.layoutMgr.Touch()
		if p := a.dispatcher.ActivePanel(); p != nil {
			col, row := e.Position()
			p.HandleMouse(row, col, e.Buttons(), e.Modifiers())
		}
	}
	return a.dispatcher.Quit
}

func (a *app) render(screen tcell.Screen) {
	screen.Clear()
	x := 0
	for gi, g := range a.layoutMgr.Groups {
		p := g.ExpandedPanel()
		if p == nil {
			continue
		}
		focused := gi == a.layoutMgr.FocusedGroup
		p.PrepareRender()
		rows := p.Render(focused)
		blit(screen, x, 0, rows)
		x += groupWidth(g)
	}
	a.dispatcher.RenderModal(screen)
	screen.Show()
}

func groupWidth(g *layout.Group) int {
	return g.ActualWidth()
}

func blit(screen tcell.Screen, originX, originY int, rows [][]vt.Cell) {
	for y, row := range rows {
		for x, cell := range row {
			screen.SetContent(originX+x, originY+y, cell.Ch, nil, cell.Style)
		}
	}
}
