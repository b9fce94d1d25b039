package filemanager

import (
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ellery/stacktile/internal/watch"
)

// DragMode distinguishes a Shift-drag (range select) from a Ctrl-drag
// (toggle each crossed row), per spec.md 4.F.
type DragMode int

const (
	DragNone DragMode = iota
	DragSelect
	DragToggle
)

// DragState tracks an in-progress drag selection gesture.
type DragState struct {
	Active           bool
	StartIndex       int
	Mode             DragMode
	ProcessedIndices map[int]bool
}

// reloadDebounce matches spec.md 4.F's 300ms external-reload-call debounce.
const reloadDebounce = 300 * time.Millisecond

// State is the file-manager engine's full state: spec.md §3's
// File-manager-state record.
type State struct {
	mu sync.RWMutex

	CurrentPath  string
	Entries      []Entry
	Selected     int
	ScrollOffset int

	MultiSelect map[int]bool
	Drag        DragState

	IsGitRepo   bool
	WatchedRoot string

	lastReload time.Time

	watcher *watch.DirWatcher
}

// NewState creates file-manager state rooted at dir (the process cwd is a
// typical caller). The directory is loaded immediately.
func NewState(dir string) (*State, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	s := &State{
		CurrentPath: abs,
		MultiSelect: make(map[int]bool),
	}
	if err := s.LoadDirectory(abs); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadDirectory rebuilds the entry list for dir from a stat-walk, attaches
// git status per entry (directories promoted from descendant status), adds
// deleted-but-tracked virtual entries, and resets selection/scroll state.
func (s *State) LoadDirectory(dir string) error {
	entries, err := loadEntries(dir)
	if err != nil {
		return err
	}

	repoRoot := findGitRepo(dir)
	isGitRepo := repoRoot != ""

	for i := range entries {
		e := &entries[i]
		if e.IsParent {
			continue
		}
		status, _ := GetGitStatus(e.Path, e.IsDir)
		e.GitStatus = status
	}

	if isGitRepo {
		for _, deletedPath := range deletedTrackedFiles(dir) {
			entries = append(entries, Entry{
				Name:      filepath.Base(deletedPath),
				Path:      deletedPath,
				Deleted:   true,
				GitStatus: GitStatusDeleted,
			})
		}
		sortEntries(entries)
	}

	s.mu.Lock()
	s.CurrentPath = dir
	s.Entries = entries
	s.Selected = 0
	s.ScrollOffset = 0
	s.MultiSelect = make(map[int]bool)
	s.IsGitRepo = isGitRepo
	if isGitRepo {
		s.WatchedRoot = repoRoot
	} else {
		s.WatchedRoot = dir
	}
	s.mu.Unlock()

	return nil
}

// Reload reloads the current directory, restoring selection and multi-select
// by entry name (not index) so intent survives renames/insertions, per
// spec.md 4.F. Calls within reloadDebounce of the previous one are dropped.
func (s *State) Reload() error {
	s.mu.Lock()
	now := time.Now()
	if !s.lastReload.IsZero() && now.Sub(s.lastReload) < reloadDebounce {
		s.mu.Unlock()
		return nil
	}
	s.lastReload = now
	dir := s.CurrentPath
	selectedName := ""
	if s.Selected >= 0 && s.Selected < len(s.Entries) {
		selectedName = s.Entries[s.Selected].Name
	}
	selectedNames := make(map[string]bool, len(s.MultiSelect))
	for idx := range s.MultiSelect {
		if idx >= 0 && idx < len(s.Entries) {
			selectedNames[s.Entries[idx].Name] = true
		}
	}
	s.mu.Unlock()

	entries, err := loadEntries(dir)
	if err != nil {
		return err
	}

	repoRoot := findGitRepo(dir)
	isGitRepo := repoRoot != ""
	for i := range entries {
		e := &entries[i]
		if e.IsParent {
			continue
		}
		status, _ := GetGitStatus(e.Path, e.IsDir)
		e.GitStatus = status
	}
	if isGitRepo {
		for _, deletedPath := range deletedTrackedFiles(dir) {
			entries = append(entries, Entry{
				Name:      filepath.Base(deletedPath),
				Path:      deletedPath,
				Deleted:   true,
				GitStatus: GitStatusDeleted,
			})
		}
		sortEntries(entries)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Entries = entries
	s.IsGitRepo = isGitRepo
	if isGitRepo {
		s.WatchedRoot = repoRoot
	} else {
		s.WatchedRoot = dir
	}

	s.Selected = 0
	if selectedName != "" {
		for i, e := range entries {
			if e.Name == selectedName {
				s.Selected = i
				break
			}
		}
	}

	newSelect := make(map[int]bool)
	for i, e := range entries {
		if selectedNames[e.Name] {
			newSelect[i] = true
		}
	}
	s.MultiSelect = newSelect

	if s.ScrollOffset > len(entries) {
		s.ScrollOffset = len(entries)
	}
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
	return nil
}

// WatchInfo reports the (watched_root, current_path, is_git_repo) triple,
// consumed by watch.Info.ShouldReload in OnFsUpdate.
func (s *State) WatchInfo() watch.Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return watch.Info{
		WatchedRoot: s.WatchedRoot,
		CurrentPath: s.CurrentPath,
		IsGitRepo:   s.IsGitRepo,
	}
}

// AttachWatcher installs a watch.DirWatcher rooted at the file manager's
// watched root. Call OnFsUpdate when its Changes() channel fires.
func (s *State) AttachWatcher(skipDirs map[string]bool) error {
	s.mu.RLock()
	root := s.WatchedRoot
	old := s.watcher
	s.mu.RUnlock()

	if old != nil {
		old.Close()
	}

	dw, err := watch.New(root, skipDirs)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.watcher = dw
	s.mu.Unlock()
	return nil
}

// Watcher returns the active directory watcher, or nil if none is attached.
func (s *State) Watcher() *watch.DirWatcher {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.watcher
}

// OnFsUpdate applies spec.md 4.F's watch-integration rule to a batch of
// changed paths, reloading at most once regardless of how many matched.
func (s *State) OnFsUpdate(changedPaths []string) error {
	info := s.WatchInfo()
	for _, p := range changedPaths {
		if info.ShouldReload(p, IsGitIgnored) {
			return s.Reload()
		}
	}
	return nil
}

// CurrentEntry returns the entry under the cursor, or false if none.
func (s *State) CurrentEntry() (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Selected < 0 || s.Selected >= len(s.Entries) {
		return Entry{}, false
	}
	return s.Entries[s.Selected], true
}

// SelectedEntries returns every multi-selected entry, plus the cursor entry
// if nothing is multi-selected (spec.md 4.F's batch-operation source list).
func (s *State) SelectedEntries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.MultiSelect) == 0 {
		if s.Selected >= 0 && s.Selected < len(s.Entries) {
			return []Entry{s.Entries[s.Selected]}
		}
		return nil
	}

	indices := make([]int, 0, len(s.MultiSelect))
	for idx := range s.MultiSelect {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	out := make([]Entry, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(s.Entries) {
			out = append(out, s.Entries[idx])
		}
	}
	return out
}

// DirSizeLabel formats a byte count the way the status line shows it.
func DirSizeLabel(bytes int64) string {
	return humanize.Bytes(uint64(bytes))
}
