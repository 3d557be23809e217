// Package artifact manages the single prefix-list file that every completed
// run overwrites.
package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"asn2ip/internal/analytics"
)

const (
	// FileName is the name offered for downloads.
	FileName = "asn_ip_ranges.txt"
	// MediaType is the content type of the artifact.
	MediaType = "text/plain"
)

var (
	// ErrNoArtifact is returned when no run has written the file yet.
	ErrNoArtifact = errors.New("no artifact has been written")
	// ErrSuperseded is returned when a later run overwrote the requested one.
	ErrSuperseded = errors.New("artifact was overwritten by a later run")
)

// File is the output artifact on disk. Writes replace the whole file.
type File struct {
	path string

	mu     sync.RWMutex
	lastID uuid.UUID
}

// New returns a File writing to path. Nothing is created until Write.
func New(path string) *File {
	return &File{path: path}
}

// Path returns the artifact's location on disk.
func (f *File) Path() string {
	return f.path
}

// Content is the artifact body for prefixes: the newline-joined prefix text
// with every line, including the last, newline terminated.
func Content(prefixes []string) string {
	if len(prefixes) == 0 {
		return ""
	}
	return analytics.PrefixText(prefixes) + "\n"
}

// Write overwrites the artifact with one prefix per line and records runID
// as its producer.
func (f *File) Write(runID uuid.UUID, prefixes []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".asn_ip_ranges-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(Content(prefixes)); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close artifact: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to chmod artifact: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace artifact: %w", err)
	}

	f.lastID = runID
	return nil
}

// LastRun returns the ID of the run that last wrote the artifact.
func (f *File) LastRun() (uuid.UUID, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.lastID, f.lastID != uuid.Nil
}

// Read returns the artifact contents if runID produced the current file.
func (f *File) Read(runID uuid.UUID) ([]byte, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.lastID == uuid.Nil {
		return nil, ErrNoArtifact
	}
	if runID != f.lastID {
		return nil, ErrSuperseded
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoArtifact
		}
		return nil, err
	}
	return data, nil
}
