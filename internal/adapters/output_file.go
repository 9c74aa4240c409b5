package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"pinball-hwbind/internal/ports"
	"pinball-hwbind/internal/types"
)

const (
	BindingsYAMLFile    = "bindings.yaml"
	BindingsFrameFile   = "bindings.cbor"
	ViolationReportFile = "violations.report"
)

type BindingFileAdapter struct {
	Dir string
}

func NewBindingFileAdapter(dir string) BindingFileAdapter {
	return BindingFileAdapter{Dir: dir}
}

func (a BindingFileAdapter) WriteBindings(set types.BindingSet) (string, error) {
	path, err := a.ensurePath(BindingsYAMLFile)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(set)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode bindings yaml").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", writeFailed(path, err)
	}
	return path, nil
}

func (a BindingFileAdapter) WriteFrame(set types.BindingSet) (string, error) {
	path, err := a.ensurePath(BindingsFrameFile)
	if err != nil {
		return "", err
	}
	frame, err := EncodeFrame(set)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, frame, 0644); err != nil {
		return "", writeFailed(path, err)
	}
	return path, nil
}

// WriteViolationReport writes one line per violation, ordered by device and
// kind, as kind,device,message.
func (a BindingFileAdapter) WriteViolationReport(violations []types.Violation) (string, error) {
	path, err := a.ensurePath(ViolationReportFile)
	if err != nil {
		return "", err
	}
	ordered := append([]types.Violation(nil), violations...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Device() != ordered[j].Device() {
			return ordered[i].Device() < ordered[j].Device()
		}
		return ordered[i].Kind() < ordered[j].Kind()
	})
	var lines []string
	for _, violation := range ordered {
		lines = append(lines, fmt.Sprintf("%s,%s,%s", violation.Kind(), violation.Device(), violation.Error()))
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return "", writeFailed(path, err)
	}
	return path, nil
}

func (a BindingFileAdapter) ensurePath(filename string) (string, error) {
	if a.Dir == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is empty")
	}
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	return filepath.Join(a.Dir, filename), nil
}

func writeFailed(path string, err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("failed to write " + path).
		WithCause(err)
}

var _ ports.BindingOutputPort = BindingFileAdapter{}
