package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"pinball-hwbind/internal/types"
)

// referenceField names a device-name field of a composite and the kind it
// must resolve to.
type referenceField struct {
	field    string
	kind     types.DeviceKind
	required bool
}

var compositeReferences = map[types.DeviceKind][]referenceField{
	types.DeviceKindFlipper: {
		{field: "main_coil", kind: types.DeviceKindCoil, required: true},
		{field: "activation_switch", kind: types.DeviceKindSwitch, required: true},
		{field: "hold_coil", kind: types.DeviceKindCoil},
		{field: "eos_switch", kind: types.DeviceKindSwitch},
	},
	types.DeviceKindAutofireRule: {
		{field: "coil", kind: types.DeviceKindCoil, required: true},
		{field: "switch", kind: types.DeviceKindSwitch, required: true},
	},
}

// CompositeBuilder assembles flippers and autofire rules from devices in a
// frozen registry.
type CompositeBuilder struct {
	Registry *DeviceRegistry
	Layering LayeringEngine
}

func NewCompositeBuilder(registry *DeviceRegistry, layering LayeringEngine) CompositeBuilder {
	return CompositeBuilder{Registry: registry, Layering: layering}
}

func (b CompositeBuilder) Build(ctx context.Context, name string, kind types.DeviceKind, raw map[string]any) (types.Composite, error) {
	if b.Registry == nil || !b.Registry.Frozen() {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("composite builder requires a frozen device registry")
	}
	references, ok := compositeReferences[kind]
	if !ok {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid composite shape: %s is not a composite kind", kind))
	}
	ref := types.DeviceRef(kind, name)
	for _, reference := range references {
		if !reference.required {
			continue
		}
		if value, present := raw[reference.field]; !present || strings.TrimSpace(AddressToken(value)) == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid composite shape: %s field %q value %q: required field is missing", ref, reference.field, AddressToken(value)))
		}
	}
	platformSettings, err := platformBlock(ref, raw)
	if err != nil {
		return nil, err
	}
	settings, err := b.Layering.Resolve(ref, kind, raw, platformSettings)
	if err != nil {
		return nil, err
	}
	resolved := map[string]*types.DeviceSpec{}
	for _, reference := range references {
		target := settings.String(reference.field)
		if target == "" {
			continue
		}
		spec, err := b.Registry.Lookup(reference.kind, target)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(fmt.Sprintf("unknown device reference: %s field %q value %q", ref, reference.field, target)).
				WithCause(err)
		}
		resolved[reference.field] = spec
	}

	var composite types.Composite
	switch kind {
	case types.DeviceKindFlipper:
		composite, err = b.buildFlipper(ref, name, settings, resolved)
	case types.DeviceKindAutofireRule:
		composite = buildAutofireRule(name, settings, resolved)
	}
	if err != nil {
		return nil, err
	}
	log.Ctx(ctx).Debug().Str("composite", ref).Msg("composite built")
	return composite, nil
}

func (b CompositeBuilder) buildFlipper(ref string, name string, settings types.Settings, resolved map[string]*types.DeviceSpec) (types.Flipper, error) {
	overwrite, _ := settings["main_coil_overwrite"].(types.Settings)
	overlay, err := b.Layering.ResolvePartial(ref, "main_coil_overwrite", types.DeviceKindCoil, overwrite)
	if err != nil {
		return types.Flipper{}, err
	}
	mainCoil := types.DeviceView{Base: resolved["main_coil"], Overlay: overlay}
	if err := checkOverwriteLimits(ref, mainCoil); err != nil {
		return types.Flipper{}, err
	}
	flipper := types.Flipper{
		Name:              name,
		ActivationSwitch:  types.DeviceView{Base: resolved["activation_switch"]},
		MainCoil:          mainCoil,
		UseEOS:            settings.Bool("use_eos"),
		MainCoilOverwrite: overlay.Clone(),
		Settings:          settings,
	}
	if hold, ok := resolved["hold_coil"]; ok {
		flipper.HoldCoil = &types.DeviceView{Base: hold}
	}
	if eos, ok := resolved["eos_switch"]; ok {
		flipper.EOSSwitch = &types.DeviceView{Base: eos}
	}
	return flipper, nil
}

// checkOverwriteLimits applies the coil cross-field rules to the main coil
// as the flipper sees it, overlay included.
func checkOverwriteLimits(ref string, view types.DeviceView) error {
	if len(view.Overlay) == 0 {
		return nil
	}
	effective := types.Settings{}
	for _, key := range []string{"default_hold_power", "max_hold_power"} {
		if value, ok := view.Setting(key); ok {
			effective[key] = value
		}
	}
	if err := checkCrossField(ref, types.DeviceKindCoil, effective); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid setting value: %s field %q value %v: %s", ref, "main_coil_overwrite", map[string]any(view.Overlay), errorMessage(err))).
			WithCause(err)
	}
	return nil
}

func buildAutofireRule(name string, settings types.Settings, resolved map[string]*types.DeviceSpec) types.AutofireRule {
	return types.AutofireRule{
		Name:         name,
		Coil:         types.DeviceView{Base: resolved["coil"]},
		Switch:       types.DeviceView{Base: resolved["switch"]},
		EnableEvents: append([]string(nil), settings.Strings("enable_events")...),
		Settings:     settings,
	}
}

// platformBlock extracts the platform_settings mapping of a raw record.
func platformBlock(ref string, raw map[string]any) (map[string]any, error) {
	value, ok := raw[platformSettingsKey]
	if !ok || value == nil {
		return nil, nil
	}
	block, ok := value.(map[string]any)
	if !ok {
		return nil, invalidSetting(ref, platformSettingsKey, value, "must be a mapping")
	}
	return block, nil
}
