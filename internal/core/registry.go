package core

import (
	"context"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"

	"pinball-hwbind/internal/types"
)

// DeviceRegistry stores resolved simple devices by kind and exact,
// case-sensitive name. It is filled during a resolution pass, then frozen
// before composites start resolving references against it.
type DeviceRegistry struct {
	byKind map[types.DeviceKind]map[string]*types.DeviceSpec
	order  []*types.DeviceSpec
	frozen bool
}

func NewDeviceRegistry() *DeviceRegistry {
	return &DeviceRegistry{
		byKind: make(map[types.DeviceKind]map[string]*types.DeviceSpec),
	}
}

// Register stores spec. The registry keeps its own copy of the settings.
func (r *DeviceRegistry) Register(ctx context.Context, spec types.DeviceSpec) error {
	assert.NotEmpty(ctx, spec.Name, "registered device must have a name")
	assert.NotEmpty(ctx, string(spec.Kind), "registered device must have a kind")
	if r.frozen {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("device registry is frozen: cannot register %s", spec.Ref()))
	}
	names, ok := r.byKind[spec.Kind]
	if !ok {
		names = make(map[string]*types.DeviceSpec)
		r.byKind[spec.Kind] = names
	}
	if _, exists := names[spec.Name]; exists {
		return errbuilder.New().
			WithCode(errbuilder.CodeAlreadyExists).
			WithMsg(fmt.Sprintf("duplicate device name: %s field \"name\" value %q", spec.Ref(), spec.Name))
	}
	stored := spec
	stored.Settings = spec.Settings.Clone()
	if spec.Address != nil {
		address := *spec.Address
		stored.Address = &address
	}
	names[spec.Name] = &stored
	r.order = append(r.order, &stored)
	return nil
}

// Lookup returns the shared spec registered under (kind, name). Callers
// must treat it as read-only.
func (r *DeviceRegistry) Lookup(kind types.DeviceKind, name string) (*types.DeviceSpec, error) {
	if spec, ok := r.byKind[kind][name]; ok {
		return spec, nil
	}
	return nil, errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("unknown device reference: %s", types.DeviceRef(kind, name)))
}

func (r *DeviceRegistry) Freeze() {
	r.frozen = true
}

func (r *DeviceRegistry) Frozen() bool {
	return r.frozen
}

// All returns the registered specs in insertion order.
func (r *DeviceRegistry) All() []*types.DeviceSpec {
	return append([]*types.DeviceSpec(nil), r.order...)
}

func (r *DeviceRegistry) Len() int {
	return len(r.order)
}
