package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pinball-hwbind/internal/core"
	"pinball-hwbind/internal/policies"
)

const (
	outcomeOK         = "ok"
	outcomeViolations = "violations"
	outcomeError      = "error"
)

// resolvePass loads the machine config and the platform catalogs and runs
// one resolution pass. Structural failures are returned as errors; constraint
// violations stay in the outcome.
func (s Service) resolvePass(ctx context.Context, documentPath string, catalogs []string, platformOverride string) (core.ResolveOutcome, error) {
	outcome, err := s.runPass(ctx, documentPath, catalogs, platformOverride)
	if err != nil {
		s.Telemetry.RecordResolution(outcomeError, outcome.Bindings, nil)
		return core.ResolveOutcome{}, err
	}
	if len(outcome.Violations) > 0 {
		s.Telemetry.RecordResolution(outcomeViolations, outcome.Bindings, outcome.Violations)
	} else {
		s.Telemetry.RecordResolution(outcomeOK, outcome.Bindings, nil)
	}
	return outcome, nil
}

func (s Service) runPass(ctx context.Context, documentPath string, catalogs []string, platformOverride string) (core.ResolveOutcome, error) {
	documentPath = strings.TrimSpace(documentPath)
	if documentPath == "" {
		return core.ResolveOutcome{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("machine config path is required")
	}
	doc, err := s.Documents.LoadDocument(documentPath)
	if err != nil {
		return core.ResolveOutcome{}, err
	}
	catalog := s.Catalogs()
	for _, path := range catalogs {
		if strings.TrimSpace(path) == "" {
			continue
		}
		if err := catalog.LoadCatalog(path); err != nil {
			return core.ResolveOutcome{}, err
		}
	}
	platform := strings.TrimSpace(platformOverride)
	if platform == "" {
		platform = strings.TrimSpace(doc.Hardware.Platform)
	}
	if platform == "" {
		return core.ResolveOutcome{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("hardware.platform is required when no platform is given")
	}
	descriptor, err := catalog.Descriptor(platform)
	if err != nil {
		return core.ResolveOutcome{}, err
	}
	policy, err := policies.NewPlatformPolicy(descriptor.WithBoards(doc.Hardware.Boards))
	if err != nil {
		return core.ResolveOutcome{}, err
	}
	resolver := core.NewBindingResolver(policy)
	if s.Clock != nil {
		resolver.Now = s.Clock
	}
	if s.NewID != nil {
		resolver.NewID = s.NewID
	}
	return resolver.Resolve(ctx, doc)
}
