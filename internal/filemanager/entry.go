package filemanager

import (
	"os"
	"path/filepath"
	"strings"
)

// Entry is one row of the flat directory listing: spec.md §4.F's
// `current_path`/`entries` model, as opposed to the teacher's recursive
// TreeNode (kept for reference, see tree.go).
type Entry struct {
	Name      string // basename; ".." for the parent-directory row
	Path      string // absolute path
	IsDir     bool
	IsSymlink bool
	IsParent  bool // the synthetic ".." row
	Deleted   bool // git-tracked but missing from disk
	Info      os.FileInfo
	GitStatus GitStatus
}

// loadEntries stat-walks dir (one level, no recursion) and returns entries
// sorted directories-first then name-insensitively, per spec.md 4.F. A ".."
// row is prepended unless dir is the filesystem root.
func loadEntries(dir string) ([]Entry, error) {
	raw, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(raw)+1)
	if parent := filepath.Dir(dir); parent != dir {
		entries = append(entries, Entry{Name: "..", Path: parent, IsDir: true, IsParent: true})
	}

	for _, d := range raw {
		path := filepath.Join(dir, d.Name())
		lst, err := os.Lstat(path)
		if err != nil {
			continue
		}
		info, statErr := d.Info()
		if statErr != nil {
			info = lst
		}
		entries = append(entries, Entry{
			Name:      d.Name(),
			Path:      path,
			IsDir:     d.IsDir(),
			IsSymlink: lst.Mode()&os.ModeSymlink != 0,
			Info:      info,
		})
	}

	sortEntries(entries)
	return entries, nil
}

// sortEntries orders the parent row first, then directories, then files,
// each group name-insensitive. The synthetic ".." row always leads.
func sortEntries(entries []Entry) {
	less := func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsParent != b.IsParent {
			return a.IsParent
		}
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	}
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && less(j, j-1); j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
}
