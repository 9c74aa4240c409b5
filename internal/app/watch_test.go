package app

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinball-hwbind/internal/types"
)

// manualWatcher reports whatever the test pushes on changes.
type manualWatcher struct {
	mu      sync.Mutex
	tracked []string
	changes chan []string
}

func (w *manualWatcher) Track(paths ...string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.tracked = append([]string(nil), paths...)
	return nil
}

func (w *manualWatcher) Check() ([]string, error) {
	select {
	case changed := <-w.changes:
		return changed, nil
	default:
		return nil, nil
	}
}

type reloadRecorder struct {
	reloads chan bool
}

func (r reloadRecorder) RecordResolution(string, types.BindingSet, []types.Violation) {}

func (r reloadRecorder) RecordReload(swapped bool) {
	r.reloads <- swapped
}

func TestWatchSwapsOnlyValidSets(t *testing.T) {
	path := copyFixture(t, "machine.yaml")
	valid, err := os.ReadFile(fixturePath(t, "machine.yaml"))
	require.NoError(t, err)
	broken, err := os.ReadFile(fixturePath(t, "machine_broken.yaml"))
	require.NoError(t, err)

	watcher := &manualWatcher{changes: make(chan []string, 1)}
	recorder := reloadRecorder{reloads: make(chan bool, 4)}
	sink := &recordingSink{}
	service := newTestService(sink)
	service.Watcher = watcher
	service.Telemetry = recorder

	swaps := make(chan string, 4)
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	type watchDone struct {
		result WatchResult
		err    error
	}
	done := make(chan watchDone, 1)
	go func() {
		result, err := service.Watch(ctx, WatchRequest{
			DocumentPath: path,
			Interval:     5 * time.Millisecond,
			Apply:        true,
			OnSwap: func(set types.BindingSet) {
				swaps <- set.ID
			},
		})
		done <- watchDone{result: result, err: err}
	}()

	require.Equal(t, "set-1", receive(t, swaps))

	require.NoError(t, os.WriteFile(path, broken, 0644))
	watcher.changes <- []string{path}
	assert.False(t, receive(t, recorder.reloads))

	require.NoError(t, os.WriteFile(path, valid, 0644))
	watcher.changes <- []string{path}
	assert.True(t, receive(t, recorder.reloads))
	require.Equal(t, "set-3", receive(t, swaps))

	cancel()
	finished := receive(t, done)
	require.NoError(t, finished.err)
	assert.Equal(t, WatchResult{ActiveID: "set-3", Reloads: 2, Swaps: 2}, finished.result)

	submitted := sink.submitted()
	require.Len(t, submitted, 2)
	assert.Equal(t, "set-3", submitted[1].ID)
	assert.Equal(t, []string{path}, watcher.tracked)
}

func TestWatchFailsWhenInitialPassIsInvalid(t *testing.T) {
	service := newTestService(&recordingSink{})
	service.Watcher = &manualWatcher{changes: make(chan []string)}
	_, err := service.Watch(t.Context(), WatchRequest{
		DocumentPath: fixturePath(t, "machine_broken.yaml"),
		Interval:     time.Millisecond,
	})
	require.Error(t, err)
}

func receive[T any](t *testing.T, ch chan T) T {
	t.Helper()
	select {
	case value := <-ch:
		return value
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch")
		var zero T
		return zero
	}
}
