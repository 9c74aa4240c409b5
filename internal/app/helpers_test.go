package app

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pinball-hwbind/internal/types"
)

func fixturePath(t *testing.T, name string) string {
	t.Helper()
	root, err := filepath.Abs(filepath.Join("..", ".."))
	require.NoError(t, err)
	return filepath.Join(root, "fixtures", name)
}

// copyFixture copies a fixture into a temp dir so a test may rewrite it.
func copyFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(fixturePath(t, name))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "machine.yaml")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

type recordingSink struct {
	mu   sync.Mutex
	sets []types.BindingSet
	err  error
}

func (s *recordingSink) Submit(_ context.Context, set types.BindingSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sets = append(s.sets, set)
	return nil
}

func (s *recordingSink) submitted() []types.BindingSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.BindingSet(nil), s.sets...)
}

func newTestService(sink *recordingSink) Service {
	service := NewService()
	service.Sink = sink
	service.Clock = func() time.Time {
		return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	}
	next := 0
	service.NewID = func() string {
		next++
		return "set-" + strconv.Itoa(next)
	}
	return service
}

func newFileService() Service {
	return newTestService(&recordingSink{})
}
