package types

import (
	"fmt"
)

// Settings is a flat settings record keyed by document field name. After
// layering every value is one of int, float64, bool, string, []string or
// Settings.
type Settings map[string]any

// Clone returns a copy that shares no mutable state with s.
func (s Settings) Clone() Settings {
	if s == nil {
		return Settings{}
	}
	out := make(Settings, len(s))
	for key, value := range s {
		switch typed := value.(type) {
		case []string:
			out[key] = append([]string(nil), typed...)
		case Settings:
			out[key] = typed.Clone()
		case map[string]any:
			out[key] = map[string]any(Settings(typed).Clone())
		case []any:
			out[key] = append([]any(nil), typed...)
		default:
			out[key] = value
		}
	}
	return out
}

func (s Settings) Int(key string) int {
	if value, ok := s[key].(int); ok {
		return value
	}
	return 0
}

func (s Settings) Float(key string) float64 {
	switch value := s[key].(type) {
	case float64:
		return value
	case int:
		return float64(value)
	}
	return 0
}

func (s Settings) Bool(key string) bool {
	value, _ := s[key].(bool)
	return value
}

func (s Settings) String(key string) string {
	switch value := s[key].(type) {
	case nil:
		return ""
	case string:
		return value
	default:
		return fmt.Sprint(value)
	}
}

func (s Settings) Strings(key string) []string {
	value, _ := s[key].([]string)
	return value
}

// FieldSpec describes one recognized settings field.
type FieldSpec struct {
	Type    FieldType `yaml:"type"`
	Default any       `yaml:"default,omitempty"`
	Values  []string  `yaml:"values,omitempty"`
}

// FieldSchema maps field names to their specs for one device kind.
type FieldSchema map[string]FieldSpec

// Defaults returns the default value of every field that declares one.
func (s FieldSchema) Defaults() Settings {
	out := Settings{}
	for name, spec := range s {
		if spec.Default != nil {
			out[name] = spec.Default
		}
	}
	return out
}
