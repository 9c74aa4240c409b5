package app

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Apply resolves the configuration and hands the binding set to the driver
// sink. Nothing is submitted while any violation is outstanding.
func (s Service) Apply(ctx context.Context, req ApplyRequest) (ApplyResult, error) {
	outcome, err := s.resolvePass(ctx, req.DocumentPath, req.Catalogs, req.Platform)
	if err != nil {
		return ApplyResult{}, err
	}
	result := ApplyResult{
		Platform:   outcome.Bindings.Platform,
		BindingID:  outcome.Bindings.ID,
		Violations: outcome.Violations,
	}
	if err := outcome.Err(); err != nil {
		return result, err
	}
	if req.DryRun {
		return result, nil
	}
	if s.Sink == nil {
		return result, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no driver sink configured")
	}
	if err := s.Sink.Submit(ctx, outcome.Bindings); err != nil {
		return result, err
	}
	result.Submitted = true
	return result, nil
}
