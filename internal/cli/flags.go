package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// documentFlags are shared by every command that runs a resolution pass.
type documentFlags struct {
	Machine  string
	Catalogs []string
	Platform string
}

func (f *documentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Machine, "machine", "", "Machine config path")
	cmd.Flags().StringSliceVar(&f.Catalogs, "catalog", nil, "Platform catalog paths, later files win")
	cmd.Flags().StringVar(&f.Platform, "platform", "", "Platform override (defaults to hardware.platform)")
	_ = viper.BindPFlag("machine", cmd.Flags().Lookup("machine"))
	_ = viper.BindPFlag("catalogs", cmd.Flags().Lookup("catalog"))
	_ = viper.BindPFlag("platform", cmd.Flags().Lookup("platform"))
}

func (f documentFlags) resolve(cmd *cobra.Command) documentFlags {
	return documentFlags{
		Machine:  resolveString(cmd, f.Machine, "machine", "machine"),
		Catalogs: resolveStrings(cmd, f.Catalogs, "catalogs", "catalog"),
		Platform: resolveString(cmd, f.Platform, "platform", "platform"),
	}
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func resolveDuration(cmd *cobra.Command, value time.Duration, key string, flagName string) time.Duration {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetDuration(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
