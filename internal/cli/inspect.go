package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pinball-hwbind/internal/app"
	"pinball-hwbind/internal/types"
)

type inspectOptions struct {
	Path string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize a written binding set per board and kind",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Path, "bindings", "out", "Output directory, bindings.yaml or bindings.cbor")
	_ = viper.BindPFlag("bindings", cmd.Flags().Lookup("bindings"))
	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	result, err := service.Inspect(app.InspectRequest{
		Path: resolveString(cmd, opts.Path, "bindings", "bindings"),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "binding set %s for %s (created %s, validated=%t)\n",
		result.BindingID, result.Platform, result.CreatedAt, result.Validated)
	for _, board := range result.Boards {
		fmt.Fprintf(out, "- board %d: %s\n", board.Board, formatCounts(board.Counts))
		if len(board.Devices) > 0 {
			fmt.Fprintf(out, "  %s\n", strings.Join(board.Devices, ", "))
		}
	}
	fmt.Fprintf(out, "flippers: %s\n", strings.Join(result.Flippers, ", "))
	fmt.Fprintf(out, "autofire: %s\n", strings.Join(result.Autofire, ", "))
	return nil
}

func formatCounts(counts map[types.DeviceKind]int) string {
	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	parts := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		parts = append(parts, fmt.Sprintf("%d %s", counts[types.DeviceKind(kind)], kind))
	}
	return strings.Join(parts, ", ")
}
