package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"pinball-hwbind/internal/types"
)

// ConstraintValidator checks hardware compatibility rules across composites.
// It is pure and total: every composite is checked and every violation is
// returned.
type ConstraintValidator struct {
	// CrossBoardAutofire permits autofire rules whose coil and switch sit on
	// different boards.
	CrossBoardAutofire bool
}

func NewConstraintValidator(crossBoardAutofire bool) ConstraintValidator {
	return ConstraintValidator{CrossBoardAutofire: crossBoardAutofire}
}

func (v ConstraintValidator) Validate(ctx context.Context, composites []types.Composite) []types.Violation {
	violations := []types.Violation{}
	pairs := map[string][]types.AutofireRule{}
	for _, composite := range composites {
		switch typed := composite.(type) {
		case types.AutofireRule:
			violations = append(violations, v.checkAutofireBoards(typed)...)
			key := fmt.Sprintf("%s|%s", typed.Coil.Name(), typed.Switch.Name())
			for _, earlier := range pairs[key] {
				if shared := sharedEvents(earlier.EnableEvents, typed.EnableEvents); shared != nil {
					violations = append(violations, types.RedundantRule{
						RuleName:    typed.Name,
						DuplicateOf: earlier.Name,
						CoilName:    typed.Coil.Name(),
						SwitchName:  typed.Switch.Name(),
						Events:      shared,
					})
					break
				}
			}
			pairs[key] = append(pairs[key], typed)
		case types.Flipper:
			violations = append(violations, checkFlipperEos(typed)...)
		default:
			panic(fmt.Sprintf("constraint validator: unhandled composite %T", composite))
		}
	}
	log.Ctx(ctx).Debug().Int("composites", len(composites)).Int("violations", len(violations)).Msg("constraints validated")
	return violations
}

func (v ConstraintValidator) checkAutofireBoards(rule types.AutofireRule) []types.Violation {
	if v.CrossBoardAutofire {
		return nil
	}
	coil := rule.Coil.Address()
	sw := rule.Switch.Address()
	if coil == nil || sw == nil || coil.IsDefaultBoard() || sw.IsDefaultBoard() {
		// Unresolved addresses were already reported as out of range.
		return nil
	}
	if coil.Board == sw.Board {
		return nil
	}
	return []types.Violation{types.IncompatibleBoardAssignment{
		RuleName:    rule.Name,
		CoilName:    rule.Coil.Name(),
		SwitchName:  rule.Switch.Name(),
		CoilBoard:   coil.Board,
		SwitchBoard: sw.Board,
	}}
}

func checkFlipperEos(flipper types.Flipper) []types.Violation {
	hasSwitch := flipper.EOSSwitch != nil
	if flipper.UseEOS == hasSwitch {
		return nil
	}
	violation := types.InconsistentEosConfiguration{
		FlipperName: flipper.Name,
		UseEOS:      flipper.UseEOS,
	}
	if hasSwitch {
		violation.EOSSwitch = flipper.EOSSwitch.Name()
	}
	return []types.Violation{violation}
}

// sharedEvents returns the events present in both sorted lists, or nil. Two
// rules that are both always enabled share the empty event set.
func sharedEvents(a []string, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return []string{}
	}
	var shared []string
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			shared = append(shared, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return shared
}
