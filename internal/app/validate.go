package app

import (
	"context"
)

// Validate runs a resolution pass without writing anything. Violations are
// returned in the result and, together, as the error.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	outcome, err := s.resolvePass(ctx, req.DocumentPath, req.Catalogs, req.Platform)
	if err != nil {
		return ValidateResult{}, err
	}
	result := ValidateResult{
		Platform:       outcome.Bindings.Platform,
		BindingID:      outcome.Bindings.ID,
		DeviceCount:    outcome.Registry.Len(),
		CompositeCount: len(outcome.Composites),
		Violations:     outcome.Violations,
	}
	return result, outcome.Err()
}
