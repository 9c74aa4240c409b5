package types

// DeviceView is one composite's view of a shared registry device: the
// untouched base spec plus a local overlay consulted first.
type DeviceView struct {
	Base    *DeviceSpec
	Overlay Settings
}

func (v DeviceView) Name() string {
	if v.Base == nil {
		return ""
	}
	return v.Base.Name
}

func (v DeviceView) Address() *PhysicalAddress {
	if v.Base == nil {
		return nil
	}
	return v.Base.Address
}

// Setting returns the effective value of key, preferring the overlay.
func (v DeviceView) Setting(key string) (any, bool) {
	if value, ok := v.Overlay[key]; ok {
		return value, true
	}
	if v.Base == nil {
		return nil, false
	}
	value, ok := v.Base.Settings[key]
	return value, ok
}

// Effective materializes the merged settings as a fresh record.
func (v DeviceView) Effective() Settings {
	var out Settings
	if v.Base != nil {
		out = v.Base.Settings.Clone()
	} else {
		out = Settings{}
	}
	for key, value := range v.Overlay.Clone() {
		out[key] = value
	}
	return out
}

// Composite is the closed set of multi-part devices. Only Flipper and
// AutofireRule implement it.
type Composite interface {
	CompositeName() string
	CompositeKind() DeviceKind
	isComposite()
}

type Flipper struct {
	Name              string
	ActivationSwitch  DeviceView
	MainCoil          DeviceView
	HoldCoil          *DeviceView
	EOSSwitch         *DeviceView
	UseEOS            bool
	MainCoilOverwrite Settings
	Settings          Settings
}

func (f Flipper) CompositeName() string     { return f.Name }
func (f Flipper) CompositeKind() DeviceKind { return DeviceKindFlipper }
func (Flipper) isComposite()                {}

type AutofireRule struct {
	Name         string
	Coil         DeviceView
	Switch       DeviceView
	EnableEvents []string
	Settings     Settings
}

func (a AutofireRule) CompositeName() string     { return a.Name }
func (a AutofireRule) CompositeKind() DeviceKind { return DeviceKindAutofireRule }
func (AutofireRule) isComposite()                {}

// FlipperPhase is the coordination state of a flipper's coils.
type FlipperPhase string

const (
	FlipperPhaseInactive FlipperPhase = "inactive"
	FlipperPhasePulsing  FlipperPhase = "pulsing"
	FlipperPhaseHolding  FlipperPhase = "holding"
)

type FlipperEvent string

const (
	FlipperEventActivate  FlipperEvent = "activate"
	FlipperEventRelease   FlipperEvent = "release"
	FlipperEventPulseDone FlipperEvent = "pulse_done"
	FlipperEventEOSClosed FlipperEvent = "eos_closed"
)

type PhaseTransition struct {
	From  FlipperPhase `yaml:"from" cbor:"from"`
	Event FlipperEvent `yaml:"event" cbor:"event"`
	To    FlipperPhase `yaml:"to" cbor:"to"`
}
