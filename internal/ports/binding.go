package ports

import (
	"context"

	"pinball-hwbind/internal/types"
)

type BindingOutputPort interface {
	WriteBindings(set types.BindingSet) (string, error)
	WriteFrame(set types.BindingSet) (string, error)
	WriteViolationReport(violations []types.Violation) (string, error)
}

type BindingReaderPort interface {
	ReadBindings(path string) (types.BindingSet, error)
}

// DriverSinkPort receives a validated binding set for signal transport.
type DriverSinkPort interface {
	Submit(ctx context.Context, set types.BindingSet) error
}
