package ports

import "pinball-hwbind/internal/types"

// PlatformCatalogPort supplies platform descriptors.
//
// The catalog starts from the built-in platforms; each LoadCatalog call adds
// a layer, and a platform declared in a later layer replaces the earlier
// descriptor of the same name.
type PlatformCatalogPort interface {
	LoadCatalog(path string) error
	Descriptor(name string) (types.PlatformDescriptor, error)
	Names() []string
}
