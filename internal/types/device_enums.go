package types

type DeviceKind string

const (
	DeviceKindSwitch       DeviceKind = "switch"
	DeviceKindCoil         DeviceKind = "coil"
	DeviceKindServo        DeviceKind = "servo"
	DeviceKindLight        DeviceKind = "light"
	DeviceKindFlipper      DeviceKind = "flipper"
	DeviceKindAutofireRule DeviceKind = "autofire_rule"
)

// SimpleKinds lists the kinds that bind directly to a physical address, in
// the order a resolution pass registers them.
var SimpleKinds = []DeviceKind{
	DeviceKindSwitch,
	DeviceKindCoil,
	DeviceKindServo,
	DeviceKindLight,
}

// CompositeKinds lists the kinds assembled from already registered devices.
var CompositeKinds = []DeviceKind{
	DeviceKindFlipper,
	DeviceKindAutofireRule,
}

// Section returns the configuration document section declaring this kind.
func (k DeviceKind) Section() string {
	switch k {
	case DeviceKindSwitch:
		return "switches"
	case DeviceKindCoil:
		return "coils"
	case DeviceKindServo:
		return "servos"
	case DeviceKindLight:
		return "lights"
	case DeviceKindFlipper:
		return "flippers"
	case DeviceKindAutofireRule:
		return "autofire_coils"
	default:
		return string(k)
	}
}

func (k DeviceKind) Known() bool {
	return k.Channel() != "" || k.Composite()
}

func (k DeviceKind) Composite() bool {
	return k == DeviceKindFlipper || k == DeviceKindAutofireRule
}

// Channel returns the board channel class a simple kind consumes.
func (k DeviceKind) Channel() ChannelClass {
	switch k {
	case DeviceKindSwitch:
		return ChannelSwitches
	case DeviceKindCoil:
		return ChannelDrivers
	case DeviceKindServo:
		return ChannelServos
	case DeviceKindLight:
		return ChannelLights
	default:
		return ""
	}
}

type ChannelClass string

const (
	ChannelSwitches ChannelClass = "switches"
	ChannelDrivers  ChannelClass = "drivers"
	ChannelServos   ChannelClass = "servos"
	ChannelLights   ChannelClass = "lights"
)

type SwitchType string

const (
	SwitchTypeNO SwitchType = "NO"
	SwitchTypeNC SwitchType = "NC"
)

type DefaultBoardRule string

const (
	DefaultBoardRuleFixed DefaultBoardRule = "fixed"
	DefaultBoardRuleFlat  DefaultBoardRule = "flat"
)

// FieldType names the coercion applied to a settings value during layering.
type FieldType string

const (
	FieldTypeAddress   FieldType = "address"
	FieldTypeReference FieldType = "reference"
	FieldTypeInt       FieldType = "int"
	FieldTypeRatio     FieldType = "ratio"
	FieldTypeBool      FieldType = "bool"
	FieldTypeString    FieldType = "string"
	FieldTypeEnum      FieldType = "enum"
	FieldTypeEvents    FieldType = "events"
	FieldTypeMapping   FieldType = "mapping"
)
