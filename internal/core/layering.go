package core

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pinball-hwbind/internal/types"
)

// MergeLayers folds partial settings records left to right. A key set in a
// later layer replaces the earlier value; keys absent from later layers
// survive. Inputs are never mutated.
func MergeLayers(layers ...types.Settings) types.Settings {
	merged := types.Settings{}
	for _, layer := range layers {
		for key, value := range layer.Clone() {
			merged[key] = value
		}
	}
	return merged
}

// LayeringEngine resolves the settings record of one device from
// platform defaults, kind defaults, instance fields and the device's
// platform_settings block, in that order.
type LayeringEngine struct {
	Platform types.PlatformDescriptor
}

func NewLayeringEngine(platform types.PlatformDescriptor) LayeringEngine {
	return LayeringEngine{Platform: platform}
}

// Resolve returns the fully typed settings of a device. ref names the device
// in error messages.
func (e LayeringEngine) Resolve(ref string, kind types.DeviceKind, instance map[string]any, platformSettings map[string]any) (types.Settings, error) {
	kindSchema := KindSchema(kind)
	platformSchema := e.Platform.Fields[kind]
	behaviourSchema := withoutAddress(kindSchema)

	defaultsLayer, err := coerceLayer(ref, e.Platform.Defaults[kind], behaviourSchema, platformSchema)
	if err != nil {
		return nil, err
	}
	instanceLayer, err := coerceLayer(ref, instance, kindSchema, nil)
	if err != nil {
		return nil, err
	}
	platformLayer, err := coerceLayer(ref, platformSettings, behaviourSchema, platformSchema)
	if err != nil {
		return nil, err
	}
	resolved := MergeLayers(
		platformSchema.Defaults(),
		defaultsLayer,
		kindSchema.Defaults(),
		instanceLayer,
		platformLayer,
	)
	if err := checkCrossField(ref, kind, resolved); err != nil {
		return nil, err
	}
	return resolved, nil
}

// ResolvePartial coerces a partial record against kind's table without
// applying defaults. Address fields are rejected: a partial record can
// change behaviour, never wiring.
func (e LayeringEngine) ResolvePartial(ref string, field string, kind types.DeviceKind, partial map[string]any) (types.Settings, error) {
	overlay, err := coerceLayer(ref, partial, withoutAddress(KindSchema(kind)), nil)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid setting value: %s field %q: %s", ref, field, errorMessage(err))).
			WithCause(err)
	}
	return overlay, nil
}

func withoutAddress(schema types.FieldSchema) types.FieldSchema {
	out := make(types.FieldSchema, len(schema))
	for name, spec := range schema {
		if spec.Type == types.FieldTypeAddress {
			continue
		}
		out[name] = spec
	}
	return out
}

func coerceLayer(ref string, raw map[string]any, primary types.FieldSchema, secondary types.FieldSchema) (types.Settings, error) {
	layer := types.Settings{}
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if key == platformSettingsKey {
			continue
		}
		spec, ok := primary[key]
		if !ok {
			spec, ok = secondary[key]
		}
		if !ok {
			return nil, invalidSetting(ref, key, raw[key], "unknown field")
		}
		if spec.Type == types.FieldTypeReference && raw[key] == nil {
			continue
		}
		value, err := coerceValue(spec, raw[key])
		if err != nil {
			return nil, invalidSetting(ref, key, raw[key], err.Error())
		}
		layer[key] = value
	}
	return layer, nil
}

func coerceValue(spec types.FieldSpec, raw any) (any, error) {
	switch spec.Type {
	case types.FieldTypeAddress:
		return AddressToken(raw), nil
	case types.FieldTypeReference:
		name, ok := raw.(string)
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("must be a device name")
		}
		return strings.TrimSpace(name), nil
	case types.FieldTypeInt:
		return coerceInt(raw)
	case types.FieldTypeRatio:
		return coerceRatio(raw)
	case types.FieldTypeBool:
		return ParseBoolToken(raw)
	case types.FieldTypeString:
		if raw == nil {
			return "", nil
		}
		return fmt.Sprint(raw), nil
	case types.FieldTypeEnum:
		token := strings.TrimSpace(fmt.Sprint(raw))
		for _, allowed := range spec.Values {
			if strings.EqualFold(token, allowed) {
				return allowed, nil
			}
		}
		return nil, fmt.Errorf("must be one of %s", strings.Join(spec.Values, "|"))
	case types.FieldTypeEvents:
		return coerceEvents(raw)
	case types.FieldTypeMapping:
		if raw == nil {
			return types.Settings{}, nil
		}
		mapping, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("must be a mapping")
		}
		return types.Settings(mapping).Clone(), nil
	default:
		return nil, fmt.Errorf("unsupported field type %s", spec.Type)
	}
}

func coerceInt(raw any) (int, error) {
	switch typed := raw.(type) {
	case int:
		if typed < 0 {
			return 0, fmt.Errorf("must not be negative")
		}
		return typed, nil
	case float64:
		// float64(math.MaxInt) rounds up to 2^63, which int cannot hold.
		if typed != math.Trunc(typed) || typed < 0 || typed >= float64(math.MaxInt) {
			return 0, fmt.Errorf("must be a non-negative integer")
		}
		return int(typed), nil
	case string:
		value, err := strconv.Atoi(strings.TrimSpace(typed))
		if err != nil || value < 0 {
			return 0, fmt.Errorf("must be a non-negative integer")
		}
		return value, nil
	default:
		return 0, fmt.Errorf("must be a non-negative integer")
	}
}

// coerceRatio accepts power ratios within [0.0, 1.0].
func coerceRatio(raw any) (float64, error) {
	var value float64
	switch typed := raw.(type) {
	case int:
		value = float64(typed)
	case float64:
		value = typed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0, fmt.Errorf("must be a number within [0.0, 1.0]")
		}
		value = parsed
	default:
		return 0, fmt.Errorf("must be a number within [0.0, 1.0]")
	}
	if math.IsNaN(value) || value < 0 || value > 1 {
		return 0, fmt.Errorf("must be within [0.0, 1.0]")
	}
	return value, nil
}

// ParseBoolToken accepts booleans and case-insensitive true/false tokens.
func ParseBoolToken(raw any) (bool, error) {
	switch typed := raw.(type) {
	case bool:
		return typed, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(typed)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return false, fmt.Errorf("must be true or false")
}

func coerceEvents(raw any) ([]string, error) {
	var tokens []string
	switch typed := raw.(type) {
	case nil:
		return []string{}, nil
	case string:
		tokens = strings.Split(typed, ",")
	case []any:
		for _, item := range typed {
			name, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("event names must be strings")
			}
			tokens = append(tokens, name)
		}
	case []string:
		tokens = typed
	default:
		return nil, fmt.Errorf("must be an event name or list of event names")
	}
	seen := map[string]struct{}{}
	events := []string{}
	for _, token := range tokens {
		name := strings.TrimSpace(token)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		events = append(events, name)
	}
	sort.Strings(events)
	return events, nil
}

func checkCrossField(ref string, kind types.DeviceKind, settings types.Settings) error {
	switch kind {
	case types.DeviceKindCoil:
		hold := settings.Float("default_hold_power")
		limit := settings.Float("max_hold_power")
		if hold > limit {
			return invalidSetting(ref, "default_hold_power", hold, fmt.Sprintf("exceeds max_hold_power %v", limit))
		}
	case types.DeviceKindServo:
		low := settings.Float("min")
		high := settings.Float("max")
		if low > high {
			return invalidSetting(ref, "min", low, fmt.Sprintf("exceeds max %v", high))
		}
		reset := settings.Float("reset_position")
		if reset < low || reset > high {
			return invalidSetting(ref, "reset_position", reset, fmt.Sprintf("must lie within [%v, %v]", low, high))
		}
	}
	return nil
}

func invalidSetting(ref string, field string, value any, reason string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("invalid setting value: %s field %q value %v: %s", ref, field, value, reason))
}
