// Package ptypanel implements the PTY-backed terminal panel: it spawns a
// shell on a pseudo-terminal, parses its output with internal/vt, and
// translates panel key/mouse events into the byte sequences the shell
// expects.
package ptypanel

import (
	"bytes"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/creack/pty"
	"github.com/ellery/stacktile/internal/clipboard"
	"github.com/ellery/stacktile/internal/vt"
)

// Panel owns one pseudo-terminal, the shell process attached to it, and the
// vt.Screen the reader goroutine feeds.
type Panel struct {
	// mu is the readers/writer lock spec.md 4.D/§5 calls for: state queries
	// (IsRunning, HasSelection, keyToBytes, the mouse-mode reads) take RLock;
	// the PTY reader, Write, Resize, Close, Render (which updates the render
	// cache) and selection changes take Lock.
	mu sync.RWMutex

	screen *vt.Screen
	parser *vt.Parser

	ptmx *os.File
	cmd  *exec.Cmd

	rows, cols int

	running     bool
	hasNewData  bool
	autoRespawn bool

	onRedraw func()

	clip *clipboard.Clipboard

	sel           Selection
	mouseDown     bool
	scrollbackMax int

	// QuickCommandMode arms the panel to treat the next keystroke as a
	// pane-navigation command rather than forwarding it to the shell.
	QuickCommandMode bool
	OnQuickQuit      func()
	OnQuickNextPane  func()
	OnSessionEnd     func()

	renderCache renderCache
}

// Config controls panel construction.
type Config struct {
	Rows, Cols    int
	ScrollbackMax int
	Command       []string // empty => discovered interactive shell
	WorkingDir    string
	Clipboard     *clipboard.Clipboard
	OnRedraw      func()
}

// New spawns the shell (or Command, if given) on a new PTY sized rows×cols
// and starts the background reader goroutine.
func New(cfg Config) (*Panel, error) {
	rows, cols := cfg.Rows, cfg.Cols
	if rows < 1 {
		rows = 24
	}
	if cols < 1 {
		cols = 80
	}
	scrollbackMax := cfg.ScrollbackMax
	if scrollbackMax <= 0 {
		scrollbackMax = 5000
	}

	args := cfg.Command
	autoRespawn := len(args) > 0
	if len(args) == 0 {
		shell := discoverShell()
		args = append([]string{shell}, shellArgs(shell)...)
		autoRespawn = false
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Env = shellEnv(cfg.WorkingDir)
	if cfg.WorkingDir != "" {
		cmd.Dir = cfg.WorkingDir
	}

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		return nil, err
	}

	p := &Panel{
		screen:        vt.NewScreen(rows, cols, scrollbackMax),
		parser:        vt.NewParser(),
		ptmx:          ptmx,
		cmd:           cmd,
		rows:          rows,
		cols:          cols,
		running:       true,
		autoRespawn:   autoRespawn,
		onRedraw:      cfg.OnRedraw,
		clip:          cfg.Clipboard,
		scrollbackMax: scrollbackMax,
	}
	if p.clip != nil {
		p.clip.SetOSCWriter(ptmx)
	}

	go p.readLoop()

	return p, nil
}

func shellEnv(workingDir string) []string {
	env := os.Environ()
	env = append(env, "TERM=xterm-256color")
	if workingDir != "" {
		env = append(env, "PWD="+workingDir)
	}
	return env
}

// readLoop reads PTY output and feeds it through the parser under the
// write lock, batching every byte from one Read into a single critical
// section per spec.md §5's ordering guarantee.
func (p *Panel) readLoop() {
	buf := make([]byte, 4096)
	for {
		n, err := p.ptmx.Read(buf)
		if n > 0 {
			p.mu.Lock()
			p.parser.Feed(p.screen, buf[:n])
			p.hasNewData = true
			p.mu.Unlock()
			if p.onRedraw != nil {
				p.onRedraw()
			}
		}
		if err != nil {
			p.onExit()
			return
		}
	}
}

func (p *Panel) onExit() {
	p.mu.Lock()
	p.running = false
	respawn := p.autoRespawn
	p.mu.Unlock()

	if respawn {
		time.Sleep(100 * time.Millisecond)
		_ = p.Respawn()
		return
	}
	if p.OnSessionEnd != nil {
		p.OnSessionEnd()
	}
}

// Respawn starts a fresh interactive shell after the previous command
// exited, reusing the panel's PTY geometry.
func (p *Panel) Respawn() error {
	p.mu.Lock()
	if p.ptmx != nil {
		p.ptmx.Close()
	}
	rows, cols := p.rows, p.cols
	p.mu.Unlock()

	shell := discoverShell()
	args := append([]string{shell}, shellArgs(shell)...)
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Env = shellEnv("")

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.ptmx = ptmx
	p.cmd = cmd
	p.running = true
	p.autoRespawn = false
	p.screen = vt.NewScreen(rows, cols, p.scrollbackMax)
	p.mu.Unlock()

	if p.clip != nil {
		p.clip.SetOSCWriter(ptmx)
	}

	go p.readLoop()
	if p.onRedraw != nil {
		p.onRedraw()
	}
	return nil
}

// HasNewData reports and clears the flag the reader goroutine sets after
// each PTY read, so the main loop can poll it once per tick and schedule a
// redraw per spec.md §5's background-thread model.
func (p *Panel) HasNewData() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	had := p.hasNewData
	p.hasNewData = false
	return had
}

// IsRunning reports whether the shell process is still alive.
func (p *Panel) IsRunning() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.running
}

// Write sends raw bytes to the PTY, resetting scroll-to-live first since
// any keystroke that would produce output snaps the view back per spec.md
// 4.E's history-scroll rule.
func (p *Panel) Write(data []byte) (int, error) {
	p.mu.Lock()
	if !p.running || p.ptmx == nil {
		p.mu.Unlock()
		return 0, os.ErrClosed
	}
	p.screen.ScrollOffset = 0
	ptmx := p.ptmx
	p.mu.Unlock()
	return ptmx.Write(data)
}

// Resize changes the PTY and screen geometry.
func (p *Panel) Resize(rows, cols int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rows, p.cols = rows, cols
	if p.ptmx != nil {
		_ = pty.Setsize(p.ptmx, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	}
	p.screen.Resize(rows, cols)
}

// HasLiveChildren reports whether the shell has any running child
// processes, via /proc/<pid>/task/<pid>/children (Linux-only capability).
func (p *Panel) HasLiveChildren() bool {
	p.mu.RLock()
	cmd := p.cmd
	p.mu.RUnlock()
	if cmd == nil || cmd.Process == nil {
		return false
	}
	pid := strconv.Itoa(cmd.Process.Pid)
	data, err := os.ReadFile("/proc/" + pid + "/task/" + pid + "/children")
	if err != nil {
		return false
	}
	return len(bytes.TrimSpace(data)) > 0
}

// NeedsCloseConfirmation reports the confirmation message to show before
// closing, or "" if the panel can be closed without asking.
func (p *Panel) NeedsCloseConfirmation() string {
	if p.IsRunning() && p.HasLiveChildren() {
		return "Kill running processes?"
	}
	return ""
}

// CapturesEscape reports whether Escape should be forwarded to the shell
// (a foreground program is running) instead of closing/defocusing the
// panel.
func (p *Panel) CapturesEscape() bool {
	return p.IsRunning() && p.HasLiveChildren()
}

// ShouldAutoClose reports whether the shell has exited and the panel
// should be dropped from the layout without confirmation.
func (p *Panel) ShouldAutoClose() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return !p.running && !p.autoRespawn
}

// Close sends SIGTERM to the shell's process group, waits briefly, then
// SIGKILL if it is still alive, and reaps the child to avoid zombies. This
// is the forced-close path; callers that need confirmation should gate on
// NeedsCloseConfirmation first.
func (p *Panel) Close() {
	p.mu.Lock()
	cmd := p.cmd
	ptmx := p.ptmx
	p.running = false
	p.mu.Unlock()

	if cmd != nil && cmd.Process != nil {
		pid := cmd.Process.Pid
		_ = syscall.Kill(-pid, syscall.SIGTERM)
		time.Sleep(100 * time.Millisecond)
		_ = syscall.Kill(-pid, syscall.SIGKILL)
		_, _ = cmd.Process.Wait()
	}
	if ptmx != nil {
		ptmx.Close()
	}
}
