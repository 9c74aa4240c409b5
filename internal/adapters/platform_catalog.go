package adapters

import (
	"os"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"pinball-hwbind/internal/ports"
	"pinball-hwbind/internal/types"
)

// PlatformCatalogAdapter implements PlatformCatalogPort using the built-in
// platforms plus layered catalog.yaml files. A later layer replaces a
// platform of the same name as a whole.
type PlatformCatalogAdapter struct {
	platforms map[string]types.PlatformDescriptor

	// layers tracks load order for debugging / provenance.
	layers []string
}

// NewPlatformCatalogAdapter returns a catalog seeded with the built-in
// platforms.
func NewPlatformCatalogAdapter() *PlatformCatalogAdapter {
	catalog := &PlatformCatalogAdapter{
		platforms: make(map[string]types.PlatformDescriptor),
	}
	for _, descriptor := range BuiltinPlatforms() {
		catalog.platforms[descriptor.Name] = descriptor
	}
	return catalog
}

// BuiltinPlatforms returns the platforms known without any catalog file.
func BuiltinPlatforms() []types.PlatformDescriptor {
	return []types.PlatformDescriptor{
		{
			Name: "fast",
			Boards: []types.BoardSpec{
				{ID: 0, Type: "FP-I/O-3208", Switches: 32, Drivers: 8},
				{ID: 1, Type: "FP-I/O-0804", Switches: 8, Drivers: 4},
				{ID: 2, Type: "FP-I/O-3208", Switches: 32, Drivers: 8},
				{ID: 3, Type: "FP-I/O-1616", Switches: 16, Drivers: 16, Servos: 4, Lights: 64},
			},
			DefaultBoardRule:   types.DefaultBoardRuleFixed,
			DefaultBoard:       0,
			CrossBoardAutofire: false,
			Defaults: map[types.DeviceKind]types.Settings{
				types.DeviceKindCoil: {"recycle_ms": 10},
			},
			Fields: map[types.DeviceKind]types.FieldSchema{
				types.DeviceKindSwitch: {
					"debounce_open":  {Type: types.FieldTypeInt, Default: 2},
					"debounce_close": {Type: types.FieldTypeInt, Default: 2},
				},
				types.DeviceKindCoil: {
					"recycle_ms": {Type: types.FieldTypeInt},
				},
			},
		},
		{
			Name:               "virtual",
			Boards:             virtualBoards(8),
			DefaultBoardRule:   types.DefaultBoardRuleFlat,
			CrossBoardAutofire: true,
		},
	}
}

func virtualBoards(count int) []types.BoardSpec {
	boards := make([]types.BoardSpec, 0, count)
	for id := 0; id < count; id++ {
		boards = append(boards, types.BoardSpec{
			ID:       types.BoardID(id),
			Type:     "virtual",
			Switches: 64,
			Drivers:  32,
			Servos:   8,
			Lights:   128,
		})
	}
	return boards
}

// LoadCatalog reads a catalog.yaml file and merges its platforms.
func (a *PlatformCatalogAdapter) LoadCatalog(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read platform catalog: " + path).
			WithCause(err)
	}

	var catalog types.PlatformCatalogFile
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse platform catalog: " + path).
			WithCause(err)
	}

	if catalog.CatalogVersion == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("platform catalog missing catalog_version: " + path)
	}

	for _, descriptor := range catalog.Platforms {
		descriptor.Name = strings.TrimSpace(descriptor.Name)
		if descriptor.Name == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("platform with empty name in " + path)
		}
		if descriptor.DefaultBoardRule == "" {
			descriptor.DefaultBoardRule = types.DefaultBoardRuleFixed
		}
		for kind := range descriptor.Fields {
			if !kind.Known() {
				return errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg("platform '" + descriptor.Name + "' declares fields for unsupported kind '" + string(kind) + "' in " + path)
			}
		}

		if _, exists := a.platforms[descriptor.Name]; exists {
			log.Debug().
				Str("platform", descriptor.Name).
				Str("layer", path).
				Msg("platform replaced by later layer")
		}
		a.platforms[descriptor.Name] = descriptor
	}

	a.layers = append(a.layers, path)
	log.Debug().
		Str("path", path).
		Int("platforms", len(catalog.Platforms)).
		Int("total", len(a.platforms)).
		Msg("platform catalog layer loaded")

	return nil
}

func (a *PlatformCatalogAdapter) Descriptor(name string) (types.PlatformDescriptor, error) {
	descriptor, ok := a.platforms[strings.TrimSpace(name)]
	if !ok {
		return types.PlatformDescriptor{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("unknown platform '" + name + "' (known: " + strings.Join(a.Names(), ", ") + ")")
	}
	return descriptor, nil
}

func (a *PlatformCatalogAdapter) Names() []string {
	names := make([]string, 0, len(a.platforms))
	for name := range a.platforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var _ ports.PlatformCatalogPort = (*PlatformCatalogAdapter)(nil)
