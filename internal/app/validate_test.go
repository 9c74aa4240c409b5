package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinball-hwbind/internal/types"
)

func TestValidateApp(t *testing.T) {
	service := newFileService()
	result, err := service.Validate(t.Context(), ValidateRequest{
		DocumentPath: fixturePath(t, "machine.yaml"),
	})
	require.NoError(t, err)
	want := ValidateResult{
		Platform:       "fast",
		BindingID:      "set-1",
		DeviceCount:    14,
		CompositeCount: 6,
		Violations:     []types.Violation{},
	}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Fatalf("unexpected validate result (-want +got):\n%s", diff)
	}
}

func TestValidateReportsEveryViolation(t *testing.T) {
	service := newFileService()
	result, err := service.Validate(t.Context(), ValidateRequest{
		DocumentPath: fixturePath(t, "machine_broken.yaml"),
	})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "2 constraint violations")

	var kinds []types.ViolationKind
	for _, violation := range result.Violations {
		kinds = append(kinds, violation.Kind())
	}
	want := []types.ViolationKind{
		types.ViolationInconsistentEosConfiguration,
		types.ViolationIncompatibleBoardAssignment,
	}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("unexpected violation kinds (-want +got):\n%s", diff)
	}
}

func TestValidateStructuralErrors(t *testing.T) {
	noPlatform := filepath.Join(t.TempDir(), "machine.yaml")
	require.NoError(t, os.WriteFile(noPlatform, []byte("switches:\n  s_one:\n    number: 1\n"), 0644))

	tests := []struct {
		name string
		req  ValidateRequest
		code errbuilder.ErrCode
		msg  string
	}{
		{
			name: "missing path",
			req:  ValidateRequest{DocumentPath: "  "},
			code: errbuilder.CodeInvalidArgument,
			msg:  "machine config path is required",
		},
		{
			name: "missing platform",
			req:  ValidateRequest{DocumentPath: noPlatform},
			code: errbuilder.CodeInvalidArgument,
			msg:  "hardware.platform is required",
		},
		{
			name: "unknown platform",
			req:  ValidateRequest{DocumentPath: fixturePath(t, "machine.yaml"), Platform: "p-roc"},
			code: errbuilder.CodeNotFound,
			msg:  "unknown platform 'p-roc'",
		},
		{
			name: "missing catalog",
			req: ValidateRequest{
				DocumentPath: fixturePath(t, "machine.yaml"),
				Catalogs:     []string{filepath.Join(t.TempDir(), "missing.yaml")},
			},
			code: errbuilder.CodeNotFound,
		},
		{
			name: "platform field unknown to catalog platform",
			req: ValidateRequest{
				DocumentPath: fixturePath(t, "machine.yaml"),
				Catalogs:     []string{fixturePath(t, "catalog.yaml")},
				Platform:     "bench",
			},
			code: errbuilder.CodeInvalidArgument,
			msg:  "debounce_open",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newFileService()
			_, err := service.Validate(t.Context(), tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.code, errbuilder.CodeOf(err))
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}
