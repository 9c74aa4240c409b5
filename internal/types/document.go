package types

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DeviceEntry is one declared device: its name and raw field record.
type DeviceEntry struct {
	Name   string
	Fields map[string]any
	Line   int
}

// Section keeps device declarations in document order. Repeated names are
// preserved so the registry can report them.
type Section []DeviceEntry

func (s *Section) UnmarshalYAML(node *yaml.Node) error {
	if node == nil || node.Kind == 0 {
		return nil
	}
	if node.Tag == "!!null" {
		*s = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: device section must be a mapping", node.Line)
	}
	entries := make(Section, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		value := node.Content[i+1]
		var name string
		if err := key.Decode(&name); err != nil {
			return fmt.Errorf("line %d: decode device name: %w", key.Line, err)
		}
		fields := map[string]any{}
		if value.Tag != "!!null" {
			if value.Kind != yaml.MappingNode {
				return fmt.Errorf("line %d: device %q must be a mapping", value.Line, name)
			}
			if err := value.Decode(&fields); err != nil {
				return fmt.Errorf("line %d: decode device %q: %w", value.Line, name, err)
			}
		}
		entries = append(entries, DeviceEntry{Name: name, Fields: fields, Line: key.Line})
	}
	*s = entries
	return nil
}

type HardwareConfig struct {
	Platform     string      `yaml:"platform"`
	DriverBoards string      `yaml:"driverboards,omitempty"`
	Boards       []BoardSpec `yaml:"boards,omitempty"`
}

// Document is the declarative machine configuration. Top-level keys other
// than the device sections and hardware land in Namespaces; the one named
// after the active platform is passed through to the driver uninterpreted.
type Document struct {
	Hardware      HardwareConfig `yaml:"hardware"`
	Switches      Section        `yaml:"switches"`
	Coils         Section        `yaml:"coils"`
	AutofireCoils Section        `yaml:"autofire_coils"`
	Servos        Section        `yaml:"servos"`
	Flippers      Section        `yaml:"flippers"`
	Lights        Section        `yaml:"lights"`
	Namespaces    map[string]any `yaml:",inline"`
}

// Section returns the declarations for kind.
func (d Document) Section(kind DeviceKind) Section {
	switch kind {
	case DeviceKindSwitch:
		return d.Switches
	case DeviceKindCoil:
		return d.Coils
	case DeviceKindServo:
		return d.Servos
	case DeviceKindLight:
		return d.Lights
	case DeviceKindFlipper:
		return d.Flippers
	case DeviceKindAutofireRule:
		return d.AutofireCoils
	default:
		return nil
	}
}

// Passthrough returns the platform namespace block, or nil.
func (d Document) Passthrough(platform string) map[string]any {
	block, ok := d.Namespaces[platform].(map[string]any)
	if !ok {
		return nil
	}
	return block
}
