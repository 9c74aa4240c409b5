package types

// DeviceSpec is a resolved simple device. Specs owned by the device registry
// are shared by every composite that references them and are never mutated
// after registration.
type DeviceSpec struct {
	Name     string
	Kind     DeviceKind
	Token    string
	Address  *PhysicalAddress
	Settings Settings
}

// Ref renders the device as section.name for error reports.
func (d DeviceSpec) Ref() string {
	return DeviceRef(d.Kind, d.Name)
}

// Inverted reports whether raw hardware states must be flipped to obtain the
// logical state, which is the case for normally closed switches.
func (d DeviceSpec) Inverted() bool {
	return d.Kind == DeviceKindSwitch && SwitchType(d.Settings.String("type")) == SwitchTypeNC
}

func DeviceRef(kind DeviceKind, name string) string {
	return kind.Section() + "." + name
}
