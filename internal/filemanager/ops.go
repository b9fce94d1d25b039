package filemanager

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ellery/stacktile/internal/clipboard"
)

// Clipboard is the OS-clipboard backend used for Ctrl+C/X/V, carrying
// newline-separated absolute paths per spec.md 4.F.
var Clipboard *clipboard.Clipboard

const pathClipboardPrefix = "stacktile-paths:\n"

// requestBatch asks the caller to open a destination prompt for a copy or
// move of the current selection, per F5/C and F6/M.
func (s *State) requestBatch(kind BatchKind) []Event {
	sources := s.SelectedEntries()
	if len(sources) == 0 {
		return nil
	}
	variant := "copy-destination"
	if kind == BatchMove {
		variant = "move-destination"
	}
	return []Event{{
		Kind: EventShowModal,
		ShowModal: &ModalRequest{
			Variant: variant,
			Prompt:  "Destination:",
			Data:    sources,
		},
	}}
}

// requestMakeDir asks the caller to open the "new directory" input modal.
func (s *State) requestMakeDir() []Event {
	return []Event{{
		Kind:      EventShowModal,
		ShowModal: &ModalRequest{Variant: "input", Prompt: "New directory name:"},
	}}
}

// requestDelete asks the caller to confirm deleting the current selection.
func (s *State) requestDelete() []Event {
	sources := s.SelectedEntries()
	if len(sources) == 0 {
		return nil
	}
	names := make([]string, 0, len(sources))
	for _, e := range sources {
		names = append(names, e.Name)
	}
	return []Event{{
		Kind: EventShowModal,
		ShowModal: &ModalRequest{
			Variant: "confirm",
			Prompt:  "Delete " + strings.Join(names, ", ") + "?",
			Data:    sources,
		},
	}}
}

// MakeDirectory creates name inside the current directory and reloads.
func (s *State) MakeDirectory(name string) error {
	s.mu.RLock()
	dir := s.CurrentPath
	s.mu.RUnlock()
	if err := os.Mkdir(filepath.Join(dir, name), 0o755); err != nil {
		return err
	}
	s.forceNextReload()
	return s.Reload()
}

// DeleteEntries removes the given entries from disk and reloads.
func (s *State) DeleteEntries(entries []Entry) (success, failed int) {
	for _, e := range entries {
		if e.Deleted {
			continue
		}
		if err := os.RemoveAll(e.Path); err != nil {
			failed++
			continue
		}
		success++
	}
	s.forceNextReload()
	_ = s.Reload()
	return success, failed
}

func (s *State) forceNextReload() {
	s.mu.Lock()
	s.lastReload = time.Time{}
	s.mu.Unlock()
}

func (s *State) copyPathsToClipboard() {
	if Clipboard == nil {
		return
	}
	paths := pathsOf(s.SelectedEntries())
	_ = Clipboard.Write(pathClipboardPrefix+strings.Join(paths, "\n"), clipboard.ClipboardReg)
}

func (s *State) cutPathsToClipboard() {
	s.copyPathsToClipboard()
}

func (s *State) pasteFromClipboard() []Event {
	if Clipboard == nil {
		return nil
	}
	text, err := Clipboard.Read(clipboard.ClipboardReg)
	if err != nil || !strings.HasPrefix(text, pathClipboardPrefix) {
		return nil
	}
	rest := strings.TrimPrefix(text, pathClipboardPrefix)
	var sources []Entry
	for _, p := range strings.Split(rest, "\n") {
		if p == "" {
			continue
		}
		info, err := os.Lstat(p)
		if err != nil {
			continue
		}
		sources = append(sources, Entry{Name: filepath.Base(p), Path: p, IsDir: info.IsDir(), Info: info})
	}
	if len(sources) == 0 {
		return nil
	}

	s.mu.RLock()
	dest := s.CurrentPath
	s.mu.RUnlock()

	batch := NewBatchOperation(BatchCopy, sources, dest)
	return []Event{{Kind: EventStartBatch, Batch: batch}}
}

func pathsOf(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Path)
	}
	return out
}
