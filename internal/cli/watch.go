package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pinball-hwbind/internal/app"
)

type watchOptions struct {
	documentFlags
	Interval time.Duration
	Apply    bool
}

func newWatchCommand() *cobra.Command {
	opts := watchOptions{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-resolve on every config change and swap in valid binding sets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, opts)
		},
	}
	opts.register(cmd)
	cmd.Flags().DurationVar(&opts.Interval, "interval", app.DefaultWatchInterval, "Polling interval")
	cmd.Flags().BoolVar(&opts.Apply, "apply", false, "Send every swapped-in set to the driver boards")
	_ = viper.BindPFlag("watch_interval", cmd.Flags().Lookup("interval"))
	_ = viper.BindPFlag("watch_apply", cmd.Flags().Lookup("apply"))
	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, opts watchOptions) error {
	flags := opts.resolve(cmd)
	service := newAppService()
	out := cmd.OutOrStdout()
	result, err := service.Watch(ctx, app.WatchRequest{
		DocumentPath: flags.Machine,
		Catalogs:     flags.Catalogs,
		Platform:     flags.Platform,
		Interval:     resolveDuration(cmd, opts.Interval, "watch_interval", "interval"),
		Apply:        resolveBool(cmd, opts.Apply, "watch_apply", "apply"),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "stopped: active %s after %d reloads (%d swaps)\n", result.ActiveID, result.Reloads, result.Swaps)
	return nil
}
