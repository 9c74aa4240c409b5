package app

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplySubmitsValidatedSet(t *testing.T) {
	sink := &recordingSink{}
	service := newTestService(sink)
	result, err := service.Apply(t.Context(), ApplyRequest{DocumentPath: fixturePath(t, "machine.yaml")})
	require.NoError(t, err)
	assert.True(t, result.Submitted)

	submitted := sink.submitted()
	require.Len(t, submitted, 1)
	assert.Equal(t, "set-1", submitted[0].ID)
	assert.True(t, submitted[0].Validated)
	assert.Len(t, submitted[0].Flippers, 3)
}

func TestApplyNeverSubmitsWithViolations(t *testing.T) {
	sink := &recordingSink{}
	service := newTestService(sink)
	result, err := service.Apply(t.Context(), ApplyRequest{DocumentPath: fixturePath(t, "machine_broken.yaml")})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
	assert.False(t, result.Submitted)
	assert.Len(t, result.Violations, 2)
	assert.Empty(t, sink.submitted())
}

func TestApplyDryRun(t *testing.T) {
	sink := &recordingSink{}
	service := newTestService(sink)
	result, err := service.Apply(t.Context(), ApplyRequest{
		DocumentPath: fixturePath(t, "machine.yaml"),
		DryRun:       true,
	})
	require.NoError(t, err)
	assert.False(t, result.Submitted)
	assert.Empty(t, sink.submitted())
}

func TestApplyPropagatesSinkFailure(t *testing.T) {
	sink := &recordingSink{err: errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("port com4 unavailable")}
	service := newTestService(sink)
	_, err := service.Apply(t.Context(), ApplyRequest{DocumentPath: fixturePath(t, "machine.yaml")})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInternal, errbuilder.CodeOf(err))
}
