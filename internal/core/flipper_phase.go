package core

import "pinball-hwbind/internal/types"

var flipperPhases = []types.FlipperPhase{
	types.FlipperPhaseInactive,
	types.FlipperPhasePulsing,
	types.FlipperPhaseHolding,
}

var flipperEvents = []types.FlipperEvent{
	types.FlipperEventActivate,
	types.FlipperEventPulseDone,
	types.FlipperEventEOSClosed,
	types.FlipperEventRelease,
}

// NextFlipperPhase is the coil coordination machine of a flipper. A distinct
// holding phase exists only with a hold coil; the EOS switch cuts the pulse
// short only when use_eos is set.
func NextFlipperPhase(flipper types.Flipper, phase types.FlipperPhase, event types.FlipperEvent) types.FlipperPhase {
	if event == types.FlipperEventRelease {
		return types.FlipperPhaseInactive
	}
	switch phase {
	case types.FlipperPhaseInactive:
		if event == types.FlipperEventActivate {
			return types.FlipperPhasePulsing
		}
	case types.FlipperPhasePulsing:
		if flipper.HoldCoil == nil {
			return phase
		}
		if event == types.FlipperEventPulseDone {
			return types.FlipperPhaseHolding
		}
		if event == types.FlipperEventEOSClosed && flipper.UseEOS && flipper.EOSSwitch != nil {
			return types.FlipperPhaseHolding
		}
	}
	return phase
}

// FlipperTransitions lists every phase change the flipper can make.
func FlipperTransitions(flipper types.Flipper) []types.PhaseTransition {
	var transitions []types.PhaseTransition
	for _, phase := range flipperPhases {
		for _, event := range flipperEvents {
			next := NextFlipperPhase(flipper, phase, event)
			if next == phase {
				continue
			}
			transitions = append(transitions, types.PhaseTransition{From: phase, Event: event, To: next})
		}
	}
	return transitions
}
