package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pinball-hwbind/internal/app"
)

type applyOptions struct {
	documentFlags
	DryRun bool
}

func newApplyCommand() *cobra.Command {
	opts := applyOptions{}
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Resolve a machine config and send the bindings to the driver boards",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runApply(cmd.Context(), cmd, opts)
		},
	}
	opts.register(cmd)
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Resolve and validate without opening any serial port")
	_ = viper.BindPFlag("dry_run", cmd.Flags().Lookup("dry-run"))
	return cmd
}

func runApply(ctx context.Context, cmd *cobra.Command, opts applyOptions) error {
	flags := opts.resolve(cmd)
	service := newAppService()
	result, err := service.Apply(ctx, app.ApplyRequest{
		DocumentPath: flags.Machine,
		Catalogs:     flags.Catalogs,
		Platform:     flags.Platform,
		DryRun:       resolveBool(cmd, opts.DryRun, "dry_run", "dry-run"),
	})
	out := cmd.OutOrStdout()
	printViolations(out, result.Violations)
	if err != nil {
		return err
	}
	if !result.Submitted {
		fmt.Fprintf(out, "dry run: %s (%s) not submitted\n", result.BindingID, result.Platform)
		return nil
	}
	fmt.Fprintf(out, "applied: %s (%s)\n", result.BindingID, result.Platform)
	return nil
}
