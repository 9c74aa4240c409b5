package types

import (
	"fmt"
	"strings"
)

type ViolationKind string

const (
	ViolationAddressOutOfRange            ViolationKind = "AddressOutOfRange"
	ViolationIncompatibleBoardAssignment  ViolationKind = "IncompatibleBoardAssignment"
	ViolationRedundantRule                ViolationKind = "RedundantRule"
	ViolationInconsistentEosConfiguration ViolationKind = "InconsistentEosConfiguration"
)

// Violation is a cross-device hardware constraint defect. Violations are
// accumulated over a whole resolution pass instead of aborting it.
type Violation interface {
	error
	Kind() ViolationKind
	Device() string
	isViolation()
}

type AddressOutOfRange struct {
	DeviceRef string
	Token     string
	Board     BoardID
	Index     int
	Limit     int
	Reason    string
}

func (v AddressOutOfRange) Kind() ViolationKind { return ViolationAddressOutOfRange }
func (v AddressOutOfRange) Device() string      { return v.DeviceRef }
func (AddressOutOfRange) isViolation()          {}

func (v AddressOutOfRange) Error() string {
	return fmt.Sprintf("address out of range: %s field \"number\" value %q: %s", v.DeviceRef, v.Token, v.Reason)
}

type IncompatibleBoardAssignment struct {
	RuleName    string
	CoilName    string
	SwitchName  string
	CoilBoard   BoardID
	SwitchBoard BoardID
}

func (v IncompatibleBoardAssignment) Kind() ViolationKind { return ViolationIncompatibleBoardAssignment }
func (v IncompatibleBoardAssignment) Device() string {
	return DeviceRef(DeviceKindAutofireRule, v.RuleName)
}
func (IncompatibleBoardAssignment) isViolation() {}

func (v IncompatibleBoardAssignment) Error() string {
	return fmt.Sprintf(
		"incompatible board assignment: %s field \"switch\" value %q: coil %s is on board %d, switch %s is on board %d",
		v.Device(), v.SwitchName, v.CoilName, v.CoilBoard, v.SwitchName, v.SwitchBoard,
	)
}

type RedundantRule struct {
	RuleName    string
	DuplicateOf string
	CoilName    string
	SwitchName  string
	Events      []string
}

func (v RedundantRule) Kind() ViolationKind { return ViolationRedundantRule }
func (v RedundantRule) Device() string      { return DeviceRef(DeviceKindAutofireRule, v.RuleName) }
func (RedundantRule) isViolation()          {}

func (v RedundantRule) Error() string {
	return fmt.Sprintf(
		"redundant rule: %s field \"coil\" value %q: pairs coil %s with switch %s like %s on events %s",
		v.Device(), v.CoilName, v.CoilName, v.SwitchName, v.DuplicateOf, strings.Join(v.Events, ","),
	)
}

type InconsistentEosConfiguration struct {
	FlipperName string
	UseEOS      bool
	EOSSwitch   string
}

func (v InconsistentEosConfiguration) Kind() ViolationKind {
	return ViolationInconsistentEosConfiguration
}
func (v InconsistentEosConfiguration) Device() string {
	return DeviceRef(DeviceKindFlipper, v.FlipperName)
}
func (InconsistentEosConfiguration) isViolation() {}

func (v InconsistentEosConfiguration) Error() string {
	if v.UseEOS {
		return fmt.Sprintf("inconsistent eos configuration: %s field \"use_eos\" value true: eos_switch is missing", v.Device())
	}
	return fmt.Sprintf(
		"inconsistent eos configuration: %s field \"eos_switch\" value %q: use_eos is false",
		v.Device(), v.EOSSwitch,
	)
}

// ViolationsError carries every violation found in one resolution pass.
type ViolationsError struct {
	Violations []Violation
}

func (e *ViolationsError) Error() string {
	lines := make([]string, 0, len(e.Violations))
	for _, violation := range e.Violations {
		lines = append(lines, violation.Error())
	}
	return fmt.Sprintf("%d constraint violations: %s", len(e.Violations), strings.Join(lines, "; "))
}
