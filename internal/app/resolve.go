package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pinball-hwbind/internal/adapters"
)

// Resolve writes bindings.yaml and bindings.cbor for a valid configuration.
// When the pass finds violations only violations.report is written.
func (s Service) Resolve(ctx context.Context, req ResolveRequest) (ResolveResult, error) {
	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}
	outcome, err := s.resolvePass(ctx, req.DocumentPath, req.Catalogs, req.Platform)
	if err != nil {
		return ResolveResult{}, err
	}
	result := ResolveResult{
		Platform:   outcome.Bindings.Platform,
		BindingID:  outcome.Bindings.ID,
		OutputDir:  outputDir,
		Violations: outcome.Violations,
	}

	output := adapters.NewBindingFileAdapter(outputDir)
	if len(outcome.Violations) > 0 {
		path, err := output.WriteViolationReport(outcome.Violations)
		if err != nil {
			return result, err
		}
		result.Files = append(result.Files, path)
		return result, outcome.Err()
	}
	path, err := output.WriteBindings(outcome.Bindings)
	if err != nil {
		return result, err
	}
	result.Files = append(result.Files, path)
	path, err = output.WriteFrame(outcome.Bindings)
	if err != nil {
		return result, err
	}
	result.Files = append(result.Files, path)
	return result, nil
}
