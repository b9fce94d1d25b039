package filemanager

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
)

// Git status icons (Nerd Font glyphs)
const (
	GitIconModified  = "" // Pencil - modified
	GitIconStaged    = "" // Check - staged
	GitIconUntracked = "" // Question - untracked
	GitIconDeleted   = "" // X mark - deleted
	GitIconRenamed   = "" // Arrow - renamed
	GitIconConflict  = "" // Warning - conflict
)

// GitStatus represents the git status of a file
type GitStatus int

const (
	GitStatusNone GitStatus = iota
	GitStatusModified
	GitStatusStaged
	GitStatusUntracked
	GitStatusDeleted
	GitStatusRenamed
	GitStatusConflict
)

// gitCache caches git status for directories
type gitCache struct {
	mu         sync.RWMutex
	repoRoots  map[string]string    // dir -> repo root
	ignoredMap map[string]bool      // path -> is ignored
	statusMap  map[string]GitStatus // path -> git status
}

var cache = &gitCache{
	repoRoots:  make(map[string]string),
	ignoredMap: make(map[string]bool),
	statusMap:  make(map[string]GitStatus),
}

// GetGitStatus returns the git status of a file and the corresponding icon.
// Directories are promoted to the worst (non-None) status among the
// git-status entries of all their descendants, per spec.md 4.F.
func GetGitStatus(path string, isDir bool) (GitStatus, string) {
	cache.mu.RLock()
	if status, ok := cache.statusMap[path]; ok {
		cache.mu.RUnlock()
		return status, gitStatusIcon(status)
	}
	cache.mu.RUnlock()

	repoRoot := findGitRepo(path)
	if repoRoot == "" {
		cache.mu.Lock()
		cache.statusMap[path] = GitStatusNone
		cache.mu.Unlock()
		return GitStatusNone, ""
	}

	var status GitStatus
	if isDir {
		status = directoryStatus(repoRoot, path)
	} else {
		relPath, err := filepath.Rel(repoRoot, path)
		if err != nil {
			return GitStatusNone, ""
		}
		status = checkGitStatus(repoRoot, relPath)
	}

	cache.mu.Lock()
	cache.statusMap[path] = status
	cache.mu.Unlock()

	return status, gitStatusIcon(status)
}

// directoryStatus reports the worst status among every tracked/modified
// path beneath dir: any non-clean descendant promotes the directory.
func directoryStatus(repoRoot, dir string) GitStatus {
	relDir, err := filepath.Rel(repoRoot, dir)
	if err != nil {
		return GitStatusNone
	}
	if relDir == "." {
		relDir = ""
	}

	cmd := exec.Command("git", "status", "--porcelain", "--", ".")
	if relDir != "" {
		cmd = exec.Command("git", "status", "--porcelain", "--", relDir)
	}
	cmd.Dir = repoRoot

	output, err := cmd.Output()
	if err != nil {
		return GitStatusNone
	}

	worst := GitStatusNone
	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimRight(line, "\r")
		if len(line) < 2 {
			continue
		}
		status := parsePorcelainStatus(line[0], line[1])
		if statusSeverity(status) > statusSeverity(worst) {
			worst = status
		}
	}
	return worst
}

// statusSeverity orders statuses so directoryStatus can pick the worst one.
func statusSeverity(s GitStatus) int {
	switch s {
	case GitStatusConflict:
		return 6
	case GitStatusDeleted:
		return 5
	case GitStatusUntracked:
		return 4
	case GitStatusRenamed:
		return 3
	case GitStatusStaged:
		return 2
	case GitStatusModified:
		return 1
	default:
		return 0
	}
}

// checkGitStatus runs git status for a specific file
func checkGitStatus(repoRoot, relPath string) GitStatus {
	cmd := exec.Command("git", "status", "--porcelain", "--", relPath)
	cmd.Dir = repoRoot

	output, err := cmd.Output()
	if err != nil {
		return GitStatusNone
	}

	line := strings.TrimSpace(string(output))
	if line == "" {
		return GitStatusNone
	}
	if len(line) < 2 {
		return GitStatusNone
	}
	return parsePorcelainStatus(line[0], line[1])
}

// parsePorcelainStatus maps a `git status --porcelain` XY pair to a GitStatus.
func parsePorcelainStatus(indexStatus, workTreeStatus byte) GitStatus {
	if indexStatus == 'U' || workTreeStatus == 'U' ||
		(indexStatus == 'A' && workTreeStatus == 'A') ||
		(indexStatus == 'D' && workTreeStatus == 'D') {
		return GitStatusConflict
	}

	if indexStatus == '?' && workTreeStatus == '?' {
		return GitStatusUntracked
	}

	if indexStatus == 'A' || indexStatus == 'M' || indexStatus == 'D' || indexStatus == 'R' {
		if indexStatus == 'R' {
			return GitStatusRenamed
		}
		if indexStatus == 'D' {
			return GitStatusDeleted
		}
		return GitStatusStaged
	}

	if workTreeStatus == 'M' {
		return GitStatusModified
	}
	if workTreeStatus == 'D' {
		return GitStatusDeleted
	}

	return GitStatusNone
}

// gitStatusIcon returns the Nerd Font icon for a git status
func gitStatusIcon(status GitStatus) string {
	switch status {
	case GitStatusModified:
		return GitIconModified
	case GitStatusStaged:
		return GitIconStaged
	case GitStatusUntracked:
		return GitIconUntracked
	case GitStatusDeleted:
		return GitIconDeleted
	case GitStatusRenamed:
		return GitIconRenamed
	case GitStatusConflict:
		return GitIconConflict
	default:
		return ""
	}
}

// RefreshGitStatus clears the git status cache (call when files change)
func RefreshGitStatus() {
	cache.mu.Lock()
	cache.statusMap = make(map[string]GitStatus)
	cache.mu.Unlock()
}

// IsGitIgnored checks if a path is gitignored
func IsGitIgnored(path string) bool {
	cache.mu.RLock()
	if ignored, ok := cache.ignoredMap[path]; ok {
		cache.mu.RUnlock()
		return ignored
	}
	cache.mu.RUnlock()

	repoRoot := findGitRepo(path)
	if repoRoot == "" {
		cache.mu.Lock()
		cache.ignoredMap[path] = false
		cache.mu.Unlock()
		return false
	}

	ignored := checkGitIgnore(repoRoot, path)

	cache.mu.Lock()
	cache.ignoredMap[path] = ignored
	cache.mu.Unlock()

	return ignored
}

// findGitRepo finds the git repository root for a path
func findGitRepo(path string) string {
	dir := path
	if !isDir(path) {
		dir = filepath.Dir(path)
	}

	cache.mu.RLock()
	if root, ok := cache.repoRoots[dir]; ok {
		cache.mu.RUnlock()
		return root
	}
	cache.mu.RUnlock()

	current := dir
	for {
		gitDir := filepath.Join(current, ".git")
		if exists(gitDir) {
			cache.mu.Lock()
			cache.repoRoots[dir] = current
			cache.mu.Unlock()
			return current
		}

		parent := filepath.Dir(current)
		if parent == current {
			cache.mu.Lock()
			cache.repoRoots[dir] = ""
			cache.mu.Unlock()
			return ""
		}
		current = parent
	}
}

// checkGitIgnore uses git check-ignore to determine if path is ignored
func checkGitIgnore(repoRoot, path string) bool {
	cmd := exec.Command("git", "check-ignore", "-q", path)
	cmd.Dir = repoRoot

	err := cmd.Run()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode() == 0
		}
		return false
	}
	return true
}

// deletedTrackedFiles lists git-tracked paths under dir (non-recursive,
// direct children only) that no longer exist on disk, for spec.md 4.F's
// deleted-file virtual entries.
func deletedTrackedFiles(dir string) []string {
	repoRoot := findGitRepo(dir)
	if repoRoot == "" {
		return nil
	}
	relDir, err := filepath.Rel(repoRoot, dir)
	if err != nil {
		return nil
	}
	if relDir == "." {
		relDir = ""
	}

	args := []string{"ls-files", "--deleted"}
	if relDir != "" {
		args = append(args, "--", relDir)
	}
	cmd := exec.Command("git", args...)
	cmd.Dir = repoRoot

	output, err := cmd.Output()
	if err != nil {
		return nil
	}

	var deleted []string
	for _, rel := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		if rel == "" {
			continue
		}
		full := filepath.Join(repoRoot, rel)
		if filepath.Dir(full) != dir {
			continue // only direct children of this listing
		}
		deleted = append(deleted, full)
	}
	return deleted
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ClearGitCache clears the git ignore/status cache
func ClearGitCache() {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	cache.ignoredMap = make(map[string]bool)
	cache.repoRoots = make(map[string]string)
	cache.statusMap = make(map[string]GitStatus)
}
