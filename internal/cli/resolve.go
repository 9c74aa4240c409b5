package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pinball-hwbind/internal/app"
)

type resolveOptions struct {
	documentFlags
	OutputDir string
}

func newResolveCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a machine config and write bindings.yaml and bindings.cbor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd.Context(), cmd, opts)
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Output directory")
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	return cmd
}

func runResolve(ctx context.Context, cmd *cobra.Command, opts resolveOptions) error {
	flags := opts.resolve(cmd)
	service := newAppService()
	result, err := service.Resolve(ctx, app.ResolveRequest{
		DocumentPath: flags.Machine,
		Catalogs:     flags.Catalogs,
		Platform:     flags.Platform,
		OutputDir:    resolveString(cmd, opts.OutputDir, "output", "output"),
	})
	out := cmd.OutOrStdout()
	printViolations(out, result.Violations)
	for _, path := range result.Files {
		fmt.Fprintf(out, "wrote: %s\n", path)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "resolved: %s (%s)\n", result.BindingID, result.Platform)
	return nil
}
