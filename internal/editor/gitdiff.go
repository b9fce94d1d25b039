package editor

import (
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

// LineStatus classifies a buffer line against the file's HEAD revision.
type LineStatus int

const (
	LineUnmodified LineStatus = iota
	LineAdded
	LineModified
	LineDeleted
)

// LineDiff is the git-diff overlay state for one buffer line.
type LineDiff struct {
	Status           LineStatus
	HasDeletionMarker bool
	DeletionCount    int
}

// GitDiffCache maps buffer line index -> LineDiff, refreshed on a
// background goroutine so the render path never blocks on `git diff`.
type GitDiffCache struct {
	mu      sync.Mutex
	path    string
	lines   map[int]LineDiff
	timer   *time.Timer
	debounce time.Duration
}

// NewGitDiffCache creates a cache for the file at path (absolute).
func NewGitDiffCache(path string) *GitDiffCache {
	return &GitDiffCache{
		path:     path,
		lines:    make(map[int]LineDiff),
		debounce: 300 * time.Millisecond,
	}
}

// Get returns the cached diff state for line i, or the zero value
// (LineUnmodified) if no overlay data is present.
func (c *GitDiffCache) Get(i int) LineDiff {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lines[i]
}

// ScheduleRefresh debounces a background rebuild: repeated calls within the
// debounce window coalesce into a single `git diff` invocation.
func (c *GitDiffCache) ScheduleRefresh(onDone func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		c.refresh()
		if onDone != nil {
			onDone()
		}
	})
}

func (c *GitDiffCache) refresh() {
	lines, err := computeLineDiffs(c.path)
	if err != nil {
		return
	}
	c.mu.Lock()
	c.lines = lines
	c.mu.Unlock()
}

var hunkHeader = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// computeLineDiffs shells out to `git diff --no-color HEAD -- <path>` (when
// that exits with status 128, e.g. no HEAD commit yet, it falls back to
// `git diff --no-color -- <path>` against the index) and maps hunks onto
// the new-file's line numbers.
func computeLineDiffs(path string) (map[int]LineDiff, error) {
	root, rel, err := gitRootRel(path)
	if err != nil {
		return nil, err
	}
	out, err := runGitDiff(root, rel)
	if err != nil {
		return nil, err
	}
	result := make(map[int]LineDiff)
	if out == "" {
		return result, nil
	}

	newLine := 0
	pendingDeletes := 0
	for _, line := range strings.Split(out, "\n") {
		if m := hunkHeader.FindStringSubmatch(line); m != nil {
			newStart, _ := strconv.Atoi(m[3])
			newLine = newStart - 1
			pendingDeletes = 0
			continue
		}
		if strings.HasPrefix(line, "diff ") || strings.HasPrefix(line, "index ") ||
			strings.HasPrefix(line, "--- ") || strings.HasPrefix(line, "+++ ") ||
			strings.HasPrefix(line, "new file") || strings.HasPrefix(line, "deleted file") {
			continue
		}
		if line == "" {
			continue
		}
		switch line[0] {
		case '+':
			ld := result[newLine]
			if pendingDeletes > 0 {
				ld.Status = LineModified
			} else {
				ld.Status = LineAdded
			}
			result[newLine] = ld
			newLine++
			pendingDeletes = 0
		case '-':
			pendingDeletes++
			if newLine > 0 {
				prev := result[newLine-1]
				prev.HasDeletionMarker = true
				prev.DeletionCount = pendingDeletes
				result[newLine-1] = prev
			} else {
				result[-1] = LineDiff{HasDeletionMarker: true, DeletionCount: pendingDeletes}
			}
		case ' ':
			newLine++
			pendingDeletes = 0
		}
	}
	return result, nil
}

func runGitDiff(root, rel string) (string, error) {
	cmd := exec.Command("git", "diff", "--no-color", "HEAD", "--", rel)
	cmd.Dir = root
	out, err := cmd.Output()
	if err == nil {
		return string(out), nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 128 {
		cmd = exec.Command("git", "diff", "--no-color", "--", rel)
		cmd.Dir = root
		out, err = cmd.Output()
		if err != nil {
			return "", nil
		}
		return string(out), nil
	}
	return "", nil
}

func gitRootRel(path string) (root, rel string, err error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", "", err
	}
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = filepath.Dir(abs)
	out, err := cmd.Output()
	if err != nil {
		return "", "", err
	}
	root = strings.TrimSpace(string(out))
	rel, err = filepath.Rel(root, abs)
	if err != nil {
		return "", "", err
	}
	return root, rel, nil
}
