package ports

import "pinball-hwbind/internal/types"

// TelemetryPort records the outcome of resolution passes.
type TelemetryPort interface {
	RecordResolution(outcome string, set types.BindingSet, violations []types.Violation)
	RecordReload(swapped bool)
}
