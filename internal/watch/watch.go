// Package watch coalesces filesystem change notifications for panels that
// need to know when the tree under them has moved: the file manager's
// directory listing and the editor's external-modification check.
package watch

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow matches spec.md §5's 300ms fs-watch coalescing window.
const debounceWindow = 300 * time.Millisecond

// DirWatcher watches a directory tree and publishes coalesced batches of
// changed paths on Changes(). Multiple events arriving within the debounce
// window are merged into a single batch instead of firing a callback per
// event, so a panel reload runs once per burst rather than once per file.
type DirWatcher struct {
	watcher  *fsnotify.Watcher
	root     string
	skipDirs map[string]bool

	changes chan []string
	stop    chan struct{}

	mu       sync.Mutex
	pending  map[string]struct{}
	timer    *time.Timer
	stopped  bool
}

// New starts watching root and every subdirectory under it, except those
// named in skipDirs and hidden directories (dot-prefixed, other than root
// itself).
func New(root string, skipDirs map[string]bool) (*DirWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dw := &DirWatcher{
		watcher:  w,
		root:     root,
		skipDirs: skipDirs,
		changes:  make(chan []string, 1),
		stop:     make(chan struct{}),
		pending:  make(map[string]struct{}),
	}

	if err := dw.addDirRecursive(root); err != nil {
		w.Close()
		return nil, err
	}

	go dw.run()
	return dw, nil
}

// Changes returns the channel of coalesced change batches. Each batch is
// the set of distinct paths that changed since the last batch was sent.
func (dw *DirWatcher) Changes() <-chan []string {
	return dw.changes
}

// Root reports the directory this watcher was rooted at.
func (dw *DirWatcher) Root() string {
	return dw.root
}

// Close stops the watcher and releases its fsnotify handle.
func (dw *DirWatcher) Close() error {
	dw.mu.Lock()
	if dw.stopped {
		dw.mu.Unlock()
		return nil
	}
	dw.stopped = true
	if dw.timer != nil {
		dw.timer.Stop()
	}
	dw.mu.Unlock()

	close(dw.stop)
	return dw.watcher.Close()
}

func (dw *DirWatcher) addDirRecursive(root string) error {
	return filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if dw.skipDirs[name] {
			return filepath.SkipDir
		}
		if p != root && len(name) > 0 && name[0] == '.' {
			return filepath.SkipDir
		}
		_ = dw.watcher.Add(p)
		return nil
	})
}

func (dw *DirWatcher) run() {
	for {
		select {
		case <-dw.stop:
			return

		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			if dw.shouldSkip(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					name := filepath.Base(event.Name)
					if !dw.skipDirs[name] && (len(name) == 0 || name[0] != '.') {
						_ = dw.addDirRecursive(event.Name)
					}
				}
			}
			dw.queue(event.Name)

		case _, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// queue adds path to the pending batch and (re)arms the debounce timer.
func (dw *DirWatcher) queue(path string) {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	if dw.stopped {
		return
	}
	dw.pending[path] = struct{}{}
	if dw.timer != nil {
		dw.timer.Stop()
	}
	dw.timer = time.AfterFunc(debounceWindow, dw.flush)
}

func (dw *DirWatcher) flush() {
	dw.mu.Lock()
	if dw.stopped || len(dw.pending) == 0 {
		dw.mu.Unlock()
		return
	}
	batch := make([]string, 0, len(dw.pending))
	for p := range dw.pending {
		batch = append(batch, p)
	}
	dw.pending = make(map[string]struct{})
	dw.mu.Unlock()

	select {
	case dw.changes <- batch:
	default:
		// A previous batch is still unread; merge into it rather than
		// blocking this timer goroutine.
		select {
		case old := <-dw.changes:
			dw.changes <- mergeBatches(old, batch)
		default:
			dw.changes <- batch
		}
	}
}

func mergeBatches(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, p := range append(append([]string{}, a...), b...) {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Info is the (watched_root, current_path, is_git_repo) triple the file
// manager's State.WatchInfo builds, and State.OnFsUpdate uses to filter
// change batches per spec.md 4.F's watch-integration rule.
type Info struct {
	WatchedRoot string
	CurrentPath string
	IsGitRepo   bool
}

// ShouldReload reports whether a change at changedPath warrants a reload
// for this Info: anywhere inside the watched tree (minus gitignored paths)
// for a git repo, or only a direct child of CurrentPath otherwise.
func (info Info) ShouldReload(changedPath string, isIgnored func(string) bool) bool {
	if info.IsGitRepo {
		if !withinTree(info.WatchedRoot, changedPath) {
			return false
		}
		if isIgnored != nil && isIgnored(changedPath) {
			return false
		}
		return true
	}
	return filepath.Dir(changedPath) == info.CurrentPath
}

func withinTree(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (dw *DirWatcher) shouldSkip(path string) bool {
	for p := path; p != dw.root && p != string(filepath.Separator) && p != "."; p = filepath.Dir(p) {
		name := filepath.Base(p)
		if dw.skipDirs[name] {
			return true
		}
		parent := filepath.Dir(p)
		if parent == p {
			break
		}
	}
	return false
}
