package adapters

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcherReportsEachChangeOnce(t *testing.T) {
	dir := t.TempDir()
	machine := filepath.Join(dir, "machine.yaml")
	catalog := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(machine, []byte("switches: {}\n"), 0644))
	require.NoError(t, os.WriteFile(catalog, []byte("catalog_version: v1\n"), 0644))

	watcher := NewFileWatcherAdapter()
	require.NoError(t, watcher.Track(machine, catalog, machine))

	changed, err := watcher.Check()
	require.NoError(t, err)
	assert.Empty(t, changed)

	require.NoError(t, os.WriteFile(machine, []byte("switches: {}\ncoils: {}\n"), 0644))
	later := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(machine, later, later))

	changed, err = watcher.Check()
	require.NoError(t, err)
	assert.Equal(t, []string{machine}, changed)

	changed, err = watcher.Check()
	require.NoError(t, err)
	assert.Empty(t, changed)

	require.NoError(t, os.Remove(catalog))
	changed, err = watcher.Check()
	require.NoError(t, err)
	assert.Equal(t, []string{catalog}, changed)

	changed, err = watcher.Check()
	require.NoError(t, err)
	assert.Empty(t, changed)
}
