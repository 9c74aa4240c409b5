package app

import (
	"time"

	"pinball-hwbind/internal/types"
)

type ValidateRequest struct {
	DocumentPath string
	Catalogs     []string
	Platform     string
}

type ValidateResult struct {
	Platform       string
	BindingID      string
	DeviceCount    int
	CompositeCount int
	Violations     []types.Violation
}

type ResolveRequest struct {
	DocumentPath string
	Catalogs     []string
	Platform     string
	OutputDir    string
}

type ResolveResult struct {
	Platform   string
	BindingID  string
	OutputDir  string
	Files      []string
	Violations []types.Violation
}

type ApplyRequest struct {
	DocumentPath string
	Catalogs     []string
	Platform     string
	DryRun       bool
}

type ApplyResult struct {
	Platform   string
	BindingID  string
	Submitted  bool
	Violations []types.Violation
}

type InspectRequest struct {
	Path string
}

type InspectBoardSummary struct {
	Board   types.BoardID
	Counts  map[types.DeviceKind]int
	Devices []string
}

type InspectResult struct {
	BindingID string
	Platform  string
	CreatedAt string
	Validated bool
	Boards    []InspectBoardSummary
	Flippers  []string
	Autofire  []string
}

type WatchRequest struct {
	DocumentPath string
	Catalogs     []string
	Platform     string
	Interval     time.Duration
	// Apply submits every swapped-in set to the driver sink.
	Apply bool
	// OnSwap is called after a new set became active.
	OnSwap func(types.BindingSet)
}

type WatchResult struct {
	ActiveID string
	Reloads  int
	Swaps    int
}
