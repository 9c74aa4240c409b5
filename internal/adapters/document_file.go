package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"pinball-hwbind/internal/ports"
	"pinball-hwbind/internal/types"
)

type DocumentFileAdapter struct{}

func NewDocumentFileAdapter() DocumentFileAdapter {
	return DocumentFileAdapter{}
}

func (a DocumentFileAdapter) LoadDocument(path string) (types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Document{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("machine config not found: " + path).
			WithCause(err)
	}
	var doc types.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return types.Document{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse machine config yaml: " + path).
			WithCause(err)
	}
	return doc, nil
}

var _ ports.DocumentPort = DocumentFileAdapter{}
