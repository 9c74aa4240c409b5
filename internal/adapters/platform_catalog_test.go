package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinball-hwbind/internal/types"
)

func TestPlatformCatalogBuiltins(t *testing.T) {
	catalog := NewPlatformCatalogAdapter()
	assert.Equal(t, []string{"fast", "virtual"}, catalog.Names())

	fast, err := catalog.Descriptor("fast")
	require.NoError(t, err)
	assert.Equal(t, types.DefaultBoardRuleFixed, fast.DefaultBoardRule)
	assert.False(t, fast.CrossBoardAutofire)
	require.Len(t, fast.Boards, 4)
	assert.Equal(t, 16, fast.Boards[3].Drivers)
	assert.Contains(t, fast.Fields[types.DeviceKindSwitch], "debounce_open")

	virtual, err := catalog.Descriptor("virtual")
	require.NoError(t, err)
	assert.True(t, virtual.CrossBoardAutofire)
	assert.Equal(t, types.DefaultBoardRuleFlat, virtual.DefaultBoardRule)

	_, err = catalog.Descriptor("p-roc")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "known: fast, virtual")
}

func TestPlatformCatalogLayers(t *testing.T) {
	catalog := NewPlatformCatalogAdapter()
	require.NoError(t, catalog.LoadCatalog("../../fixtures/catalog.yaml"))

	bench, err := catalog.Descriptor("bench")
	require.NoError(t, err)
	assert.Equal(t, types.DefaultBoardRuleFlat, bench.DefaultBoardRule)
	require.Len(t, bench.Boards, 2)
	assert.Equal(t, types.FieldTypeInt, bench.Fields[types.DeviceKindCoil]["recycle_ms"].Type)

	override := filepath.Join(t.TempDir(), "override.yaml")
	require.NoError(t, os.WriteFile(override, []byte(`
catalog_version: v1
platforms:
  - name: fast
    cross_board_autofire: true
    boards:
      - id: 0
        switches: 8
        drivers: 8
`), 0644))
	require.NoError(t, catalog.LoadCatalog(override))

	fast, err := catalog.Descriptor("fast")
	require.NoError(t, err)
	assert.True(t, fast.CrossBoardAutofire)
	assert.Equal(t, types.DefaultBoardRuleFixed, fast.DefaultBoardRule)
	require.Len(t, fast.Boards, 1)
	assert.Empty(t, fast.Fields)
}

func TestPlatformCatalogRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name     string
		content  string
		contains string
	}{
		{name: "missing version", content: "platforms: []\n", contains: "missing catalog_version"},
		{name: "empty name", content: "catalog_version: v1\nplatforms:\n  - boards: []\n", contains: "empty name"},
		{name: "unknown kind", content: "catalog_version: v1\nplatforms:\n  - name: x\n    fields:\n      solenoid:\n        pulse:\n          type: int\n", contains: "unsupported kind 'solenoid'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			err := NewPlatformCatalogAdapter().LoadCatalog(path)
			require.Error(t, err)
			assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
			assert.Contains(t, err.Error(), tt.contains)
		})
	}

	err := NewPlatformCatalogAdapter().LoadCatalog(filepath.Join(dir, "absent.yaml"))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}
