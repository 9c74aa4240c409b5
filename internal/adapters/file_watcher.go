package adapters

import (
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pinball-hwbind/internal/ports"
)

type fileState struct {
	modTime time.Time
	size    int64
	missing bool
}

// FileWatcherAdapter polls tracked files and reports the ones whose
// modification time or size changed since the last check.
type FileWatcherAdapter struct {
	mu    sync.Mutex
	files map[string]fileState
}

func NewFileWatcherAdapter() *FileWatcherAdapter {
	return &FileWatcherAdapter{files: make(map[string]fileState)}
}

// Track replaces the tracked file list and snapshots the current state.
func (w *FileWatcherAdapter) Track(paths ...string) error {
	states := make(map[string]fileState, len(paths))
	for _, path := range uniquePaths(paths) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to resolve watched path: " + path).
				WithCause(err)
		}
		states[abs] = snapshot(abs)
	}
	w.mu.Lock()
	w.files = states
	w.mu.Unlock()
	return nil
}

// Check reports the files that changed since the last snapshot and records
// their new state, so every change is reported once.
func (w *FileWatcherAdapter) Check() ([]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	changed := make([]string, 0)
	for path, previous := range w.files {
		current := snapshot(path)
		if current == previous {
			continue
		}
		if current.missing && previous.missing {
			continue
		}
		w.files[path] = current
		changed = append(changed, path)
	}
	sort.Strings(changed)
	return changed, nil
}

func snapshot(path string) fileState {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return fileState{missing: true}
	}
	return fileState{modTime: info.ModTime(), size: info.Size()}
}

func uniquePaths(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	result := make([]string, 0, len(paths))
	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		result = append(result, path)
	}
	return result
}

var _ ports.FileWatcherPort = (*FileWatcherAdapter)(nil)
