package types

// DeviceBinding is the driver-facing record of one simple device.
type DeviceBinding struct {
	Name     string         `yaml:"name" cbor:"name"`
	Kind     DeviceKind     `yaml:"kind" cbor:"kind"`
	Board    BoardID        `yaml:"board" cbor:"board"`
	Index    int            `yaml:"index" cbor:"index"`
	Token    string         `yaml:"token" cbor:"token"`
	Inverted bool           `yaml:"inverted,omitempty" cbor:"inverted,omitempty"`
	Settings map[string]any `yaml:"settings,omitempty" cbor:"settings,omitempty"`
}

type FlipperBinding struct {
	Name             string            `yaml:"name" cbor:"name"`
	ActivationSwitch string            `yaml:"activation_switch" cbor:"activation_switch"`
	MainCoil         string            `yaml:"main_coil" cbor:"main_coil"`
	HoldCoil         string            `yaml:"hold_coil,omitempty" cbor:"hold_coil,omitempty"`
	EOSSwitch        string            `yaml:"eos_switch,omitempty" cbor:"eos_switch,omitempty"`
	UseEOS           bool              `yaml:"use_eos" cbor:"use_eos"`
	MainCoilSettings map[string]any    `yaml:"main_coil_settings,omitempty" cbor:"main_coil_settings,omitempty"`
	Transitions      []PhaseTransition `yaml:"transitions,omitempty" cbor:"transitions,omitempty"`
}

type AutofireBinding struct {
	Name         string   `yaml:"name" cbor:"name"`
	Coil         string   `yaml:"coil" cbor:"coil"`
	Switch       string   `yaml:"switch" cbor:"switch"`
	Board        BoardID  `yaml:"board" cbor:"board"`
	EnableEvents []string `yaml:"enable_events,omitempty" cbor:"enable_events,omitempty"`
	ReverseInput bool     `yaml:"reverse_switch,omitempty" cbor:"reverse_switch,omitempty"`
}

// BindingSet is the frozen output of one resolution pass, handed to the
// driver collaborator. Validated is set only when the pass found no errors.
type BindingSet struct {
	ID          string            `yaml:"id" cbor:"id"`
	Platform    string            `yaml:"platform" cbor:"platform"`
	CreatedAt   string            `yaml:"created_at" cbor:"created_at"`
	Validated   bool              `yaml:"validated" cbor:"validated"`
	Devices     []DeviceBinding   `yaml:"devices" cbor:"devices"`
	Flippers    []FlipperBinding  `yaml:"flippers,omitempty" cbor:"flippers,omitempty"`
	Autofire    []AutofireBinding `yaml:"autofire,omitempty" cbor:"autofire,omitempty"`
	Passthrough map[string]any    `yaml:"passthrough,omitempty" cbor:"passthrough,omitempty"`
}

// CountByKind tallies device bindings per kind.
func (b BindingSet) CountByKind() map[DeviceKind]int {
	counts := map[DeviceKind]int{}
	for _, device := range b.Devices {
		counts[device.Kind]++
	}
	counts[DeviceKindFlipper] += len(b.Flippers)
	counts[DeviceKindAutofireRule] += len(b.Autofire)
	return counts
}
