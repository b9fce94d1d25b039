// Package clipboard provides system-clipboard read/write for panels that
// need copy/paste (the PTY panel's local selection, the file manager's
// path clipboard). It prefers a native OS backend and falls back to OSC 52
// terminal escape sequences when none is available, e.g. over SSH.
package clipboard

import (
	"io"
	"sync"

	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/zyedidia/clipper"
)

// Register selects which clipboard selection a read or write targets.
type Register int

const (
	// ClipboardReg is the general-purpose system clipboard (Ctrl+C/V).
	ClipboardReg Register = iota
	// PrimaryReg is the X11/Wayland "select to copy" primary selection.
	PrimaryReg
)

func (r Register) backendRegister() clipper.Register {
	if r == PrimaryReg {
		return clipper.RegPrimary
	}
	return clipper.RegClipboard
}

// Clipboard wraps a native clipboard backend with an OSC 52 fallback writer
// for environments (SSH sessions, headless terminals) where no native
// backend is reachable.
type Clipboard struct {
	mu      sync.Mutex
	backend clipper.Clipboard

	// oscWriter, when set, receives OSC 52 sequences for writes that have
	// no native backend. The PTY panel sets this to its PTY master so the
	// terminal the user is looking at performs the copy.
	oscWriter io.Writer
}

// New probes the available native clipboard backends (X11, Wayland, tmux,
// Windows, Darwin, in clipper's own priority order) and returns a Clipboard
// ready to use. A nil native backend is not an error: Write then falls back
// to OSC 52 if a writer has been attached via SetOSCWriter.
func New() *Clipboard {
	c := &Clipboard{}
	backends, _, err := clipper.Configure(clipper.Methods)
	if err == nil && len(backends) > 0 {
		c.backend = backends[0]
	}
	return c
}

// SetOSCWriter attaches the terminal writer used for the OSC 52 fallback.
// Call this from the PTY panel that owns the foreground terminal.
func (c *Clipboard) SetOSCWriter(w io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.oscWriter = w
}

// Write copies text into reg, preferring the native backend and falling
// back to emitting an OSC 52 sequence on the attached terminal writer.
func (c *Clipboard) Write(text string, reg Register) error {
	c.mu.Lock()
	backend := c.backend
	w := c.oscWriter
	c.mu.Unlock()

	if backend != nil {
		if err := backend.WriteAll(reg.backendRegister(), []byte(text)); err == nil {
			return nil
		}
	}
	if w == nil {
		return nil
	}
	seq := osc52.New(text)
	if reg == PrimaryReg {
		seq = seq.Primary()
	}
	_, err := seq.WriteTo(w)
	return err
}

// Read returns the current contents of reg from the native backend. OSC 52
// cannot be read back (terminals do not echo clipboard contents), so a
// missing native backend reports an empty string rather than erroring.
func (c *Clipboard) Read(reg Register) (string, error) {
	c.mu.Lock()
	backend := c.backend
	c.mu.Unlock()

	if backend == nil {
		return "", nil
	}
	b, err := backend.ReadAll(reg.backendRegister())
	if err != nil {
		return "", err
	}
	return string(b), nil
}
