package ports

import "pinball-hwbind/internal/types"

type PolicyPort interface {
	Descriptor() types.PlatformDescriptor
	CompleteAddress(ref string, token string, kind types.DeviceKind, address types.PhysicalAddress) (types.PhysicalAddress, *types.AddressOutOfRange)
	SupportsCrossBoardAutofire() bool
}
