package adapters

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"pinball-hwbind/internal/ports"
	"pinball-hwbind/internal/types"
)

type BindingReaderAdapter struct{}

func NewBindingReaderAdapter() BindingReaderAdapter {
	return BindingReaderAdapter{}
}

// ReadBindings loads a binding set written by BindingFileAdapter. A
// directory is read through its bindings.yaml; a .cbor path is decoded as a
// frame.
func (a BindingReaderAdapter) ReadBindings(path string) (types.BindingSet, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, BindingsYAMLFile)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return types.BindingSet{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("binding set not found: " + path).
			WithCause(err)
	}
	var set types.BindingSet
	if strings.EqualFold(filepath.Ext(path), ".cbor") {
		set, err = DecodeFrame(content)
		if err != nil {
			return types.BindingSet{}, err
		}
	} else if err := yaml.Unmarshal(content, &set); err != nil {
		return types.BindingSet{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid binding set format: " + path).
			WithCause(err)
	}
	if strings.TrimSpace(set.ID) == "" {
		return types.BindingSet{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("binding set missing id: " + path)
	}
	if strings.TrimSpace(set.CreatedAt) != "" {
		created, ok := normalizeCreatedAt(set.CreatedAt)
		if !ok {
			return types.BindingSet{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("binding set has invalid created_at " + set.CreatedAt + ": " + path)
		}
		set.CreatedAt = created
	}
	return set, nil
}

var _ ports.BindingReaderPort = BindingReaderAdapter{}
