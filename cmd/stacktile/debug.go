package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const maxLogSize = 10 * 1024 * 1024 // 10MB
const maxRotationsPerMinute = 3     // circuit breaker threshold
const logFileMode = 0644

// nullWriter sends writes into the void, used when -debug is not passed.
type nullWriter struct{}

func (nullWriter) Write(data []byte) (int, error) { return len(data), nil }

// rotatingWriter wraps a file and rotates it when it exceeds the size
// limit, with a circuit breaker that disables logging entirely if
// rotations happen implausibly fast (a symptom of a log-spam bug rather
// than legitimate volume).
type rotatingWriter struct {
	path      string
	file      *os.File
	size      int64
	maxSize   int64
	mu        sync.Mutex
	rotations []time.Time
	disabled  bool
}

func newRotatingWriter(path string, maxSize int64) (*rotatingWriter, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, logFileMode)
	if err != nil {
		return nil, err
	}
	var size int64
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}
	return &rotatingWriter{path: path, file: f, size: size, maxSize: maxSize}, nil
}

func (w *rotatingWriter) rotate() error {
	now := time.Now()
	cutoff := now.Add(-time.Minute)
	recent := w.rotations[:0]
	for _, t := range w.rotations {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}
	w.rotations = append(recent, now)

	if len(w.rotations) > maxRotationsPerMinute {
		w.disabled = true
		w.file.Close()
		return nil
	}

	w.file.Close()
	backup := w.path + ".1"
	os.Remove(backup)
	if err := os.Rename(w.path, backup); err != nil {
		f, err := os.OpenFile(w.path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, logFileMode)
		if err != nil {
			return err
		}
		w.file, w.size = f, 0
		return nil
	}
	f, err := os.OpenFile(w.path, os.O_RDWR|os.O_CREATE|os.O_APPEND, logFileMode)
	if err != nil {
		return err
	}
	w.file, w.size = f, 0
	return nil
}

func (w *rotatingWriter) Write(data []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.disabled {
		return len(data), nil
	}
	if w.size+int64(len(data)) > w.maxSize {
		if err := w.rotate(); err != nil {
			return 0, err
		}
		if w.disabled {
			return len(data), nil
		}
	}
	n, err := w.file.Write(data)
	w.size += int64(n)
	return n, err
}

// initLog wires the standard logger to a rotating debug log file when
// -debug is passed, and to a discard sink otherwise.
func initLog(debug bool) {
	if !debug {
		log.SetOutput(nullWriter{})
		return
	}
	logPath := filepath.Join(os.TempDir(), "stacktile-debug.log")
	w, err := newRotatingWriter(logPath, maxLogSize)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	log.SetOutput(w)
	log.Println("stacktile started with logging enabled")
	fmt.Fprintf(os.Stderr, "Debug logging to: %s\n", logPath)
}
