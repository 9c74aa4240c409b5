package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinball-hwbind/internal/types"
)

func view(name string, kind types.DeviceKind, board types.BoardID, index int) types.DeviceView {
	return types.DeviceView{Base: &types.DeviceSpec{
		Name:     name,
		Kind:     kind,
		Address:  &types.PhysicalAddress{Board: board, Index: index},
		Settings: types.Settings{},
	}}
}

func rule(name string, coil types.DeviceView, sw types.DeviceView, events ...string) types.AutofireRule {
	return types.AutofireRule{Name: name, Coil: coil, Switch: sw, EnableEvents: events}
}

func TestValidatorBoardAssignment(t *testing.T) {
	hold := view("c_flipper_hold", types.DeviceKindCoil, 3, 1)
	sling := view("s_slingshot_test", types.DeviceKindSwitch, 0, 12)
	test3 := view("s_test3", types.DeviceKindSwitch, 3, 1)

	violations := NewConstraintValidator(false).Validate(t.Context(), []types.Composite{
		rule("ac_broken_combination", hold, sling, "ball_started"),
		rule("ac_board_3", hold, test3, "ball_started"),
	})
	require.Len(t, violations, 1)
	want := types.IncompatibleBoardAssignment{
		RuleName:    "ac_broken_combination",
		CoilName:    "c_flipper_hold",
		SwitchName:  "s_slingshot_test",
		CoilBoard:   3,
		SwitchBoard: 0,
	}
	if diff := cmp.Diff(types.Violation(want), violations[0]); diff != "" {
		t.Fatalf("unexpected violation (-want +got):\n%s", diff)
	}
	assert.Contains(t, violations[0].Error(), "is on board 3")
	assert.Contains(t, violations[0].Error(), "is on board 0")

	assert.Empty(t, NewConstraintValidator(true).Validate(t.Context(), []types.Composite{
		rule("ac_broken_combination", hold, sling, "ball_started"),
	}))
}

func TestValidatorSkipsUnresolvedBoards(t *testing.T) {
	coil := view("c", types.DeviceKindCoil, 0, 1)
	sw := view("s", types.DeviceKindSwitch, types.DefaultBoard, 99)
	assert.Empty(t, NewConstraintValidator(false).Validate(t.Context(), []types.Composite{rule("ac", coil, sw)}))
}

func TestValidatorRedundantRules(t *testing.T) {
	coil := view("c_test", types.DeviceKindCoil, 0, 5)
	sw := view("s_test", types.DeviceKindSwitch, 0, 7)
	other := view("s_test_nc", types.DeviceKindSwitch, 0, 8)

	violations := NewConstraintValidator(false).Validate(t.Context(), []types.Composite{
		rule("ac_test", coil, sw, "ball_started"),
		rule("ac_grouped", coil, other, "ball_started"),
		rule("ac_other_mode", coil, sw, "mode_test"),
		rule("ac_copy", coil, sw, "ball_started", "mode_test"),
	})
	require.Len(t, violations, 1)
	redundant, ok := violations[0].(types.RedundantRule)
	require.True(t, ok)
	assert.Equal(t, "ac_copy", redundant.RuleName)
	assert.Equal(t, "ac_test", redundant.DuplicateOf)
	assert.Equal(t, []string{"ball_started"}, redundant.Events)
}

func TestValidatorEosConsistency(t *testing.T) {
	main := view("c_flipper_main", types.DeviceKindCoil, 3, 0)
	activation := view("s_flipper", types.DeviceKindSwitch, 3, 2)
	eos := view("s_flipper_eos", types.DeviceKindSwitch, 3, 3)

	tests := []struct {
		name    string
		flipper types.Flipper
		want    []types.Violation
	}{
		{
			name:    "use_eos with switch",
			flipper: types.Flipper{Name: "f_test_hold_eos", MainCoil: main, ActivationSwitch: activation, EOSSwitch: &eos, UseEOS: true},
			want:    []types.Violation{},
		},
		{
			name:    "use_eos without switch",
			flipper: types.Flipper{Name: "f_test_hold_eos", MainCoil: main, ActivationSwitch: activation, UseEOS: true},
			want:    []types.Violation{types.InconsistentEosConfiguration{FlipperName: "f_test_hold_eos", UseEOS: true}},
		},
		{
			name:    "switch without use_eos",
			flipper: types.Flipper{Name: "f_test_hold", MainCoil: main, ActivationSwitch: activation, EOSSwitch: &eos},
			want:    []types.Violation{types.InconsistentEosConfiguration{FlipperName: "f_test_hold", EOSSwitch: "s_flipper_eos"}},
		},
		{
			name:    "single coil",
			flipper: types.Flipper{Name: "f_test_single", MainCoil: main, ActivationSwitch: activation},
			want:    []types.Violation{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewConstraintValidator(false).Validate(t.Context(), []types.Composite{tt.flipper})
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("unexpected violations (-want +got):\n%s", diff)
			}
		})
	}
}
