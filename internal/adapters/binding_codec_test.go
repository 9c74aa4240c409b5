package adapters

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinball-hwbind/internal/types"
)

func sampleBindingSet() types.BindingSet {
	return types.BindingSet{
		ID:        "7f0c1a52-3c1e-4c59-9f5c-0d6f3b1f2a10",
		Platform:  "fast",
		CreatedAt: "2026-01-02T03:04:05Z",
		Validated: true,
		Devices: []types.DeviceBinding{
			{Name: "s_test_nc", Kind: types.DeviceKindSwitch, Board: 0, Index: 8, Token: "8", Inverted: true, Settings: map[string]any{"type": "NC", "debounce_open": 2}},
			{Name: "c_test", Kind: types.DeviceKindCoil, Board: 0, Index: 5, Token: "5", Settings: map[string]any{"default_pulse_ms": 20, "default_pulse_power": 1.0}},
		},
		Flippers: []types.FlipperBinding{
			{
				Name:             "f_test_single",
				ActivationSwitch: "s_flipper",
				MainCoil:         "c_flipper_main",
				Transitions: []types.PhaseTransition{
					{From: types.FlipperPhaseInactive, Event: types.FlipperEventActivate, To: types.FlipperPhasePulsing},
				},
			},
		},
		Autofire: []types.AutofireBinding{
			{Name: "ac_inverted_switch", Coil: "c_test", Switch: "s_test_nc", Board: 0, EnableEvents: []string{"ball_started"}, ReverseInput: true},
		},
		Passthrough: map[string]any{"ports": "com4, com5", "debug": true},
	}
}

func TestFrameRoundTrip(t *testing.T) {
	set := sampleBindingSet()
	frame, err := EncodeFrame(set)
	require.NoError(t, err)
	assert.Equal(t, uint32(len(frame)-4), binary.BigEndian.Uint32(frame[:4]))

	decoded, err := DecodeFrame(frame)
	require.NoError(t, err)
	assert.Equal(t, set.ID, decoded.ID)
	assert.True(t, decoded.Validated)
	if diff := cmp.Diff(set.Flippers, decoded.Flippers); diff != "" {
		t.Fatalf("unexpected flippers (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(set.Autofire, decoded.Autofire); diff != "" {
		t.Fatalf("unexpected autofire (-want +got):\n%s", diff)
	}
	require.Len(t, decoded.Devices, 2)
	assert.True(t, decoded.Devices[0].Inverted)
	assert.Equal(t, int64(20), decoded.Devices[1].Settings["default_pulse_ms"])
	assert.Equal(t, "com4, com5", decoded.Passthrough["ports"])
}

func TestFrameEncodingIsDeterministic(t *testing.T) {
	first, err := EncodeFrame(sampleBindingSet())
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := EncodeFrame(sampleBindingSet())
		require.NoError(t, err)
		require.True(t, bytes.Equal(first, again))
	}
}

func TestDecodeFrameRejectsDamagedFrames(t *testing.T) {
	frame, err := EncodeFrame(sampleBindingSet())
	require.NoError(t, err)

	tests := []struct {
		name  string
		frame []byte
	}{
		{name: "short header", frame: frame[:2]},
		{name: "truncated payload", frame: frame[:len(frame)-1]},
		{name: "trailing bytes", frame: append(append([]byte(nil), frame...), 0x00)},
		{name: "zero length", frame: []byte{0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeFrame(tt.frame)
			require.Error(t, err)
			assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
		})
	}
}
