package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"pinball-hwbind/internal/app"
	"pinball-hwbind/internal/types"
)

type validateOptions struct {
	documentFlags
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Resolve a machine config and report every constraint violation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd, opts)
		},
	}
	opts.register(cmd)
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, opts validateOptions) error {
	flags := opts.resolve(cmd)
	service := newAppService()
	result, err := service.Validate(ctx, app.ValidateRequest{
		DocumentPath: flags.Machine,
		Catalogs:     flags.Catalogs,
		Platform:     flags.Platform,
	})
	out := cmd.OutOrStdout()
	printViolations(out, result.Violations)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "validated: %s (%d devices, %d composites)\n", result.Platform, result.DeviceCount, result.CompositeCount)
	return nil
}

func printViolations(out io.Writer, violations []types.Violation) {
	for _, violation := range violations {
		fmt.Fprintf(out, "- %s: %s\n", violation.Kind(), violation.Error())
	}
}
