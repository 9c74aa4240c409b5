package core

import "pinball-hwbind/internal/types"

// Device kind field tables. Every key a device may declare appears here;
// defaults are the values a device gets when no layer sets the key.
var kindSchemas = map[types.DeviceKind]types.FieldSchema{
	types.DeviceKindSwitch: {
		"number": {Type: types.FieldTypeAddress},
		"type":   {Type: types.FieldTypeEnum, Default: string(types.SwitchTypeNO), Values: []string{"NO", "NC"}},
		"tags":   {Type: types.FieldTypeEvents, Default: []string{}},
		"label":  {Type: types.FieldTypeString},
	},
	types.DeviceKindCoil: {
		"number":              {Type: types.FieldTypeAddress},
		"default_pulse_ms":    {Type: types.FieldTypeInt, Default: 10},
		"default_recycle":     {Type: types.FieldTypeBool, Default: false},
		"default_pulse_power": {Type: types.FieldTypeRatio, Default: 1.0},
		"default_hold_power":  {Type: types.FieldTypeRatio, Default: 0.0},
		"max_hold_power":      {Type: types.FieldTypeRatio, Default: 1.0},
		"label":               {Type: types.FieldTypeString},
	},
	types.DeviceKindServo: {
		"number":         {Type: types.FieldTypeAddress},
		"min":            {Type: types.FieldTypeRatio, Default: 0.0},
		"max":            {Type: types.FieldTypeRatio, Default: 1.0},
		"reset_position": {Type: types.FieldTypeRatio, Default: 0.5},
		"label":          {Type: types.FieldTypeString},
	},
	types.DeviceKindLight: {
		"number":  {Type: types.FieldTypeAddress},
		"subtype": {Type: types.FieldTypeString, Default: "led"},
		"type":    {Type: types.FieldTypeString, Default: "rgb"},
		"label":   {Type: types.FieldTypeString},
	},
	types.DeviceKindFlipper: {
		"main_coil":           {Type: types.FieldTypeReference},
		"hold_coil":           {Type: types.FieldTypeReference},
		"activation_switch":   {Type: types.FieldTypeReference},
		"eos_switch":          {Type: types.FieldTypeReference},
		"use_eos":             {Type: types.FieldTypeBool, Default: false},
		"main_coil_overwrite": {Type: types.FieldTypeMapping},
		"enable_events":       {Type: types.FieldTypeEvents, Default: []string{"ball_started"}},
		"disable_events":      {Type: types.FieldTypeEvents, Default: []string{"ball_will_end"}},
		"label":               {Type: types.FieldTypeString},
	},
	types.DeviceKindAutofireRule: {
		"coil":           {Type: types.FieldTypeReference},
		"switch":         {Type: types.FieldTypeReference},
		"enable_events":  {Type: types.FieldTypeEvents, Default: []string{"ball_started"}},
		"disable_events": {Type: types.FieldTypeEvents, Default: []string{"ball_will_end"}},
		"reverse_switch": {Type: types.FieldTypeBool, Default: false},
		"label":          {Type: types.FieldTypeString},
	},
}

// platformSettingsKey is the per-device block scoped to the active platform.
const platformSettingsKey = "platform_settings"

// KindSchema returns the field table of kind.
func KindSchema(kind types.DeviceKind) types.FieldSchema {
	return kindSchemas[kind]
}
