package cli

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pinball-hwbind/internal/adapters"
	"pinball-hwbind/internal/app"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "HWBIND"

type RootConfig struct {
	ConfigFile  string
	LogLevel    string
	MetricsFile string
}

// metricsState holds the Prometheus telemetry of the running command when
// --metrics-file is set.
type metricsState struct {
	telemetry *adapters.PrometheusTelemetry
	path      string
}

var metrics metricsState

func Execute() {
	root := newRootCommand()
	if err := execute(root); err != nil {
		os.Exit(exitCodeForError(err))
	}
}

func execute(root *cobra.Command) error {
	err := root.Execute()
	if flushErr := flushMetrics(); flushErr != nil {
		if err == nil {
			return flushErr
		}
		log.Warn().Err(flushErr).Msg("failed to write metrics")
	}
	return err
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	cmd := &cobra.Command{
		Use:           "hwbind",
		Short:         "Resolve pinball machine configs into driver hardware bindings",
		Version:       version,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(viper.GetString("log_level"))
			return setupMetrics(viper.GetString("metrics_file"))
		},
	}
	cmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	cmd.PersistentFlags().StringVar(&cfg.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile on exit")
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("metrics_file", cmd.PersistentFlags().Lookup("metrics-file"))

	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newResolveCommand())
	cmd.AddCommand(newApplyCommand())
	cmd.AddCommand(newInspectCommand())
	cmd.AddCommand(newWatchCommand())
	return cmd
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("hwbind")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/hwbind")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func setupMetrics(path string) error {
	metrics = metricsState{}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	telemetry, err := adapters.NewPrometheusTelemetry(prometheus.NewRegistry())
	if err != nil {
		return err
	}
	metrics = metricsState{telemetry: telemetry, path: path}
	return nil
}

func flushMetrics() error {
	if metrics.telemetry == nil {
		return nil
	}
	return metrics.telemetry.WriteTextfile(metrics.path)
}

func newAppService() app.Service {
	service := app.NewService()
	if metrics.telemetry != nil {
		service.Telemetry = metrics.telemetry
	}
	return service
}

func exitCodeForError(err error) int {
	code := errbuilder.CodeOf(err)
	message := errorMessage(err)
	switch code {
	case errbuilder.CodeInvalidArgument, errbuilder.CodeAlreadyExists:
		return 2
	case errbuilder.CodeFailedPrecondition:
		if strings.Contains(message, "constraint violations") {
			return 3
		}
		return 4
	case errbuilder.CodePermissionDenied:
		return 4
	case errbuilder.CodeNotFound, errbuilder.CodeInternal:
		return 5
	default:
		return 1
	}
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
