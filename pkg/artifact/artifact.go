// Package artifact persists generated output. Writes are scoped
// acquire-write-release operations: the artifact appears fully written or
// not at all, readers never observe a partial file.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Writer is the sink the orchestrator hands finished artifacts to.
type Writer interface {
	Write(name string, data []byte) error
}

// FileWriter writes artifacts under a base directory using a temp-file and
// rename sequence, so a crash mid-write leaves the previous artifact
// intact.
type FileWriter struct {
	baseDir string
}

// NewFileWriter creates a FileWriter rooted at baseDir, creating the
// directory if needed.
func NewFileWriter(baseDir string) (*FileWriter, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("artifact: base dir is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("artifact: create base dir: %w", err)
	}
	return &FileWriter{baseDir: baseDir}, nil
}

// Write stores data under name, atomically replacing any previous version.
func (w *FileWriter) Write(name string, data []byte) error {
	if name == "" {
		return fmt.Errorf("artifact: name is required")
	}
	target := filepath.Join(w.baseDir, name)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("artifact: create dir for %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*")
	if err != nil {
		return fmt.Errorf("artifact: create temp for %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("artifact: write %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("artifact: sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("artifact: close %s: %w", name, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("artifact: publish %s: %w", name, err)
	}
	return nil
}

// MemoryWriter collects artifacts in memory. Tests and the CLI's check
// mode use it to inspect output without touching disk.
type MemoryWriter struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMemoryWriter creates an empty in-memory sink.
func NewMemoryWriter() *MemoryWriter {
	return &MemoryWriter{files: make(map[string][]byte)}
}

// Write stores a copy of data under name.
func (w *MemoryWriter) Write(name string, data []byte) error {
	if name == "" {
		return fmt.Errorf("artifact: name is required")
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[name] = append([]byte(nil), data...)
	return nil
}

// Get returns the stored artifact and whether it exists.
func (w *MemoryWriter) Get(name string) ([]byte, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	data, ok := w.files[name]
	return data, ok
}

// Names returns the stored artifact names in sorted order.
func (w *MemoryWriter) Names() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	names := make([]string, 0, len(w.files))
	for name := range w.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
