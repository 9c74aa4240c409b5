package core

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinball-hwbind/internal/types"
)

func TestRegistryRejectsDuplicateNamesPerKind(t *testing.T) {
	registry := NewDeviceRegistry()
	ctx := t.Context()

	require.NoError(t, registry.Register(ctx, types.DeviceSpec{Name: "c_test", Kind: types.DeviceKindCoil}))
	require.NoError(t, registry.Register(ctx, types.DeviceSpec{Name: "c_test", Kind: types.DeviceKindSwitch}))

	err := registry.Register(ctx, types.DeviceSpec{Name: "c_test", Kind: types.DeviceKindCoil})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeAlreadyExists, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), `duplicate device name: coils.c_test field "name" value "c_test"`)
}

func TestRegistryLookupIsExactAndOrdered(t *testing.T) {
	registry := NewDeviceRegistry()
	ctx := t.Context()
	for _, name := range []string{"s_b", "s_a", "s_c"} {
		require.NoError(t, registry.Register(ctx, types.DeviceSpec{Name: name, Kind: types.DeviceKindSwitch}))
	}

	spec, err := registry.Lookup(types.DeviceKindSwitch, "s_a")
	require.NoError(t, err)
	assert.Equal(t, "s_a", spec.Name)

	_, err = registry.Lookup(types.DeviceKindSwitch, "S_A")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "unknown device reference: switches.S_A")

	_, err = registry.Lookup(types.DeviceKindCoil, "s_a")
	require.Error(t, err)

	names := []string{}
	for _, spec := range registry.All() {
		names = append(names, spec.Name)
	}
	assert.Equal(t, []string{"s_b", "s_a", "s_c"}, names)
}

func TestRegistryCopiesAndFreezes(t *testing.T) {
	registry := NewDeviceRegistry()
	ctx := t.Context()
	settings := types.Settings{"default_pulse_ms": 10}
	address := types.PhysicalAddress{Board: 0, Index: 5}

	require.NoError(t, registry.Register(ctx, types.DeviceSpec{Name: "c_test", Kind: types.DeviceKindCoil, Address: &address, Settings: settings}))
	settings["default_pulse_ms"] = 99
	address.Index = 6

	spec, err := registry.Lookup(types.DeviceKindCoil, "c_test")
	require.NoError(t, err)
	assert.Equal(t, 10, spec.Settings.Int("default_pulse_ms"))
	assert.Equal(t, 5, spec.Address.Index)

	registry.Freeze()
	assert.True(t, registry.Frozen())
	err = registry.Register(ctx, types.DeviceSpec{Name: "c_late", Kind: types.DeviceKindCoil})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
	assert.Equal(t, 1, registry.Len())
}
