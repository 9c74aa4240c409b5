package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinball-hwbind/internal/adapters"
	"pinball-hwbind/internal/core"
	"pinball-hwbind/internal/policies"
	"pinball-hwbind/internal/types"
	"pinball-hwbind/tests/testutil"
)

// TestCatalogLayerFlatNumbering resolves a machine against a platform that
// only exists in a catalog layer and uses flat numbering across boards.
func TestCatalogLayerFlatNumbering(t *testing.T) {
	docPath := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(docPath, []byte(`
hardware:
  platform: bench
switches:
  s_low:
    number: 3
  s_high:
    number: 20
  s_overflow:
    number: 40
coils:
  c_low:
    number: 2
    platform_settings:
      recycle_ms: 15
  c_high:
    number: 1-4
autofire_coils:
  ac_split:
    coil: c_low
    switch: s_high
`), 0o644))

	doc, err := adapters.NewDocumentFileAdapter().LoadDocument(docPath)
	require.NoError(t, err)
	catalog := adapters.NewPlatformCatalogAdapter()
	require.NoError(t, catalog.LoadCatalog(testutil.Fixture(t, "catalog.yaml")))
	descriptor, err := catalog.Descriptor(doc.Hardware.Platform)
	require.NoError(t, err)
	policy, err := policies.NewPlatformPolicy(descriptor)
	require.NoError(t, err)

	outcome, err := core.NewBindingResolver(policy).Resolve(t.Context(), doc)
	require.NoError(t, err)

	devices := map[string]types.DeviceBinding{}
	for _, device := range outcome.Bindings.Devices {
		devices[device.Name] = device
	}
	assert.Equal(t, types.PhysicalAddress{Board: 0, Index: 3}, types.PhysicalAddress{Board: devices["s_low"].Board, Index: devices["s_low"].Index})
	assert.Equal(t, types.PhysicalAddress{Board: 1, Index: 4}, types.PhysicalAddress{Board: devices["s_high"].Board, Index: devices["s_high"].Index})
	assert.Equal(t, 15, devices["c_low"].Settings["recycle_ms"])
	assert.Equal(t, 0, devices["c_high"].Settings["recycle_ms"])

	kinds := map[types.ViolationKind]int{}
	for _, violation := range outcome.Violations {
		kinds[violation.Kind()]++
	}
	assert.Equal(t, map[types.ViolationKind]int{
		types.ViolationAddressOutOfRange:           1,
		types.ViolationIncompatibleBoardAssignment: 1,
	}, kinds)
	assert.False(t, outcome.Bindings.Validated)
}
