package types

// BoardSpec declares one driver board and its addressable range per channel
// class.
type BoardSpec struct {
	ID       BoardID `yaml:"id"`
	Type     string  `yaml:"type,omitempty"`
	Switches int     `yaml:"switches,omitempty"`
	Drivers  int     `yaml:"drivers,omitempty"`
	Servos   int     `yaml:"servos,omitempty"`
	Lights   int     `yaml:"lights,omitempty"`
}

func (b BoardSpec) Capacity(channel ChannelClass) int {
	switch channel {
	case ChannelSwitches:
		return b.Switches
	case ChannelDrivers:
		return b.Drivers
	case ChannelServos:
		return b.Servos
	case ChannelLights:
		return b.Lights
	default:
		return 0
	}
}

// PlatformDescriptor describes a hardware platform: its board layout, how a
// bare index is completed to a board, platform-scoped settings fields and
// dispatch capabilities.
type PlatformDescriptor struct {
	Name               string                     `yaml:"name"`
	Boards             []BoardSpec                `yaml:"boards"`
	DefaultBoardRule   DefaultBoardRule           `yaml:"default_board_rule"`
	DefaultBoard       BoardID                    `yaml:"default_board"`
	CrossBoardAutofire bool                       `yaml:"cross_board_autofire"`
	Defaults           map[DeviceKind]Settings    `yaml:"defaults,omitempty"`
	Fields             map[DeviceKind]FieldSchema `yaml:"fields,omitempty"`
}

// WithBoards returns a copy using boards as layout when any are given.
func (p PlatformDescriptor) WithBoards(boards []BoardSpec) PlatformDescriptor {
	if len(boards) == 0 {
		return p
	}
	p.Boards = append([]BoardSpec(nil), boards...)
	return p
}

// PlatformCatalogFile is the on-disk format of a platform catalog layer.
type PlatformCatalogFile struct {
	CatalogVersion string               `yaml:"catalog_version"`
	Platforms      []PlatformDescriptor `yaml:"platforms"`
}
