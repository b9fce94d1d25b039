// Package session persists and restores the set of open panels across
// restarts: for each panel, a tagged record (Editor/FileManager/Terminal),
// written to a YAML file in a per-project session directory. Unsaved editor
// buffers are not mirrored: UnsavedBufferPath only computes a location, and
// nothing writes buffer contents into the session directory.
package session

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/ellery/stacktile/internal/panel"
	"github.com/google/uuid"
	"gopkg.in/yaml.v2"
)

// ErrNoSession is returned when no session file exists yet for a project.
var ErrNoSession = errors.New("no existing session found")

// File is the on-disk shape of a session file: an ID for correlating the
// session directory with any mirrored unsaved buffers, a Layout, and one
// record per panel that asked to be persisted. cmd/stacktile records panels
// only and leaves Layout empty.
type File struct {
	ID      string   `yaml:"id"`
	Layout  Layout   `yaml:"layout"`
	Records []Record `yaml:"panels"`
}

// Layout captures enough of internal/layout's group/width arrangement to
// restore it: one entry per group, each naming the (already-resolved) panel
// index ordering within it and its width (nil for auto).
type Layout struct {
	Groups []LayoutGroup `yaml:"groups"`
}

type LayoutGroup struct {
	PanelIndices  []int `yaml:"panel_indices"`
	ExpandedIndex int   `yaml:"expanded_index"`
	Width         *int  `yaml:"width,omitempty"`
}

// Record is the tagged union spec.md §6 names: exactly one of Editor/
// FileManager/Terminal is populated, mirroring panel.SessionRecord.
type Record struct {
	Editor      *EditorRecord      `yaml:"editor,omitempty"`
	FileManager *FileManagerRecord `yaml:"file_manager,omitempty"`
	Terminal    *TerminalRecord    `yaml:"terminal,omitempty"`
}

type EditorRecord struct {
	Path              string `yaml:"path,omitempty"`
	UnsavedBufferFile string `yaml:"unsaved_buffer_file,omitempty"`
}

type FileManagerRecord struct {
	Path string `yaml:"path"`
}

type TerminalRecord struct {
	WorkingDir string `yaml:"working_dir"`
}

// fromPanelRecord converts the panel package's SessionRecord into the
// YAML-tagged Record this package persists.
func fromPanelRecord(r panel.SessionRecord) Record {
	var out Record
	if r.Editor != nil {
		out.Editor = &EditorRecord{Path: r.Editor.Path, UnsavedBufferFile: r.Editor.UnsavedBufferFile}
	}
	if r.FileManager != nil {
		out.FileManager = &FileManagerRecord{Path: r.FileManager.Path}
	}
	if r.Terminal != nil {
		out.Terminal = &TerminalRecord{WorkingDir: r.Terminal.WorkingDir}
	}
	return out
}

// ToPanelRecord converts a persisted Record back into panel.SessionRecord.
func (rec Record) ToPanelRecord() panel.SessionRecord {
	var out panel.SessionRecord
	if rec.Editor != nil {
		out.Editor = &panel.EditorRecord{Path: rec.Editor.Path, UnsavedBufferFile: rec.Editor.UnsavedBufferFile}
	}
	if rec.FileManager != nil {
		out.FileManager = &panel.FileManagerRecord{Path: rec.FileManager.Path}
	}
	if rec.Terminal != nil {
		out.Terminal = &panel.TerminalRecord{WorkingDir: rec.Terminal.WorkingDir}
	}
	return out
}

// Dir resolves the session directory for a project root: a stable hash of
// the absolute path under ~/.stacktile/sessions, created if missing.
// Grounded on the teacher's GetSessionDir/hashProjectPath pair, repurposed
// from per-socket naming to per-project session-file naming.
func Dir(projectRoot string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	base := filepath.Join(home, ".stacktile", "sessions")
	if err := os.MkdirAll(base, 0700); err != nil {
		return "", fmt.Errorf("create sessions directory: %w", err)
	}
	dir := filepath.Join(base, hashProjectPath(projectRoot))
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("create session directory: %w", err)
	}
	return dir, nil
}

func hashProjectPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	sum := sha256.Sum256([]byte(abs))
	return hex.EncodeToString(sum[:])[:16]
}

func filePath(dir string) string { return filepath.Join(dir, "session.yaml") }

// New builds a fresh File with a random ID, ready to have panels recorded
// into it and Save'd.
func New() *File {
	return &File{ID: uuid.NewString()}
}

// Load reads the session file for a project, or ErrNoSession if none exists.
func Load(projectRoot string) (*File, string, error) {
	dir, err := Dir(projectRoot)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(filePath(dir))
	if os.IsNotExist(err) {
		return nil, dir, ErrNoSession
	}
	if err != nil {
		return nil, dir, fmt.Errorf("read session file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, dir, fmt.Errorf("parse session file: %w", err)
	}
	return &f, dir, nil
}

// Record appends the session record for a panel, skipping panels that
// decline to persist (ToSession's second return false).
func (f *File) Record(p panel.Panel, sessionDir string) {
	rec, ok := p.ToSession(sessionDir)
	if !ok {
		return
	}
	f.Records = append(f.Records, fromPanelRecord(rec))
}

// Save writes the session file atomically (temp file + rename) under an
// exclusive flock so two processes racing to persist the same project's
// session can't interleave writes, matching the teacher's
// AcquireSessionLock/ReleaseSessionLock idiom repurposed from socket-attach
// locking to session-file locking.
func (f *File) Save(dir string) error {
	lock, err := acquireLock(dir)
	if err != nil {
		return err
	}
	defer releaseLock(lock)

	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal session file: %w", err)
	}
	target := filePath(dir)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("install session file: %w", err)
	}
	return nil
}

// UnsavedBufferPath returns the path under sessionDir's "unsaved"
// subdirectory for a mirrored buffer called name; name is used as given.
// Nothing in the module calls it.
func UnsavedBufferPath(sessionDir, name string) string {
	return filepath.Join(sessionDir, "unsaved", name)
}

func acquireLock(dir string) (*os.File, error) {
	lockPath := filepath.Join(dir, "session.lock")
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("open session lock: %w", err)
	}
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		f.Close()
		return nil, fmt.Errorf("acquire session lock: %w", err)
	}
	return f, nil
}

func releaseLock(f *os.File) {
	if f == nil {
		return
	}
	syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
	f.Close()
}
