package adapters

import (
	"errors"
	"strconv"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/prometheus/client_golang/prometheus"

	"pinball-hwbind/internal/ports"
	"pinball-hwbind/internal/types"
)

type noopTelemetry struct{}

// NoopTelemetry returns a telemetry port that discards all metrics.
func NoopTelemetry() ports.TelemetryPort {
	return noopTelemetry{}
}

func (noopTelemetry) RecordResolution(string, types.BindingSet, []types.Violation) {}
func (noopTelemetry) RecordReload(bool)                                            {}

// PrometheusTelemetry exposes resolution metrics via Prometheus.
type PrometheusTelemetry struct {
	gatherer    prometheus.Gatherer
	resolutions *prometheus.CounterVec
	violations  *prometheus.CounterVec
	devices     *prometheus.GaugeVec
	reloads     *prometheus.CounterVec
}

// NewPrometheusTelemetry registers the metrics with reg, reusing collectors
// that are already registered there.
func NewPrometheusTelemetry(reg *prometheus.Registry) (*PrometheusTelemetry, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	resolutions, err := registerCounterVec(reg, prometheus.CounterOpts{
		Name: "hwbind_resolutions_total",
		Help: "Number of resolution passes per outcome.",
	}, []string{"outcome"})
	if err != nil {
		return nil, err
	}
	violations, err := registerCounterVec(reg, prometheus.CounterOpts{
		Name: "hwbind_violations_total",
		Help: "Number of hardware constraint violations found per kind.",
	}, []string{"kind"})
	if err != nil {
		return nil, err
	}
	reloads, err := registerCounterVec(reg, prometheus.CounterOpts{
		Name: "hwbind_reloads_total",
		Help: "Number of hot reload attempts per result.",
	}, []string{"swapped"})
	if err != nil {
		return nil, err
	}
	devices := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "hwbind_devices",
		Help: "Number of devices in the last resolved binding set per kind.",
	}, []string{"kind"})
	if err := reg.Register(devices); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return nil, metricsError(err)
		}
		existing, ok := already.ExistingCollector.(*prometheus.GaugeVec)
		if !ok {
			return nil, metricsError(err)
		}
		devices = existing
	}
	return &PrometheusTelemetry{
		gatherer:    reg,
		resolutions: resolutions,
		violations:  violations,
		devices:     devices,
		reloads:     reloads,
	}, nil
}

func registerCounterVec(reg prometheus.Registerer, opts prometheus.CounterOpts, labels []string) (*prometheus.CounterVec, error) {
	counter := prometheus.NewCounterVec(opts, labels)
	if err := reg.Register(counter); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return nil, metricsError(err)
		}
		existing, ok := already.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, metricsError(err)
		}
		return existing, nil
	}
	return counter, nil
}

func metricsError(err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("failed to register metrics").
		WithCause(err)
}

func (p *PrometheusTelemetry) RecordResolution(outcome string, set types.BindingSet, violations []types.Violation) {
	if p == nil {
		return
	}
	p.resolutions.WithLabelValues(outcome).Inc()
	for _, violation := range violations {
		p.violations.WithLabelValues(string(violation.Kind())).Inc()
	}
	if len(set.Devices) == 0 && len(set.Flippers) == 0 && len(set.Autofire) == 0 {
		return
	}
	p.devices.Reset()
	for kind, count := range set.CountByKind() {
		p.devices.WithLabelValues(string(kind)).Set(float64(count))
	}
}

func (p *PrometheusTelemetry) RecordReload(swapped bool) {
	if p == nil {
		return
	}
	p.reloads.WithLabelValues(strconv.FormatBool(swapped)).Inc()
}

// WriteTextfile exports the current metrics in the node exporter textfile
// format.
func (p *PrometheusTelemetry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, p.gatherer); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write metrics textfile: " + path).
			WithCause(err)
	}
	return nil
}

var _ ports.TelemetryPort = (*PrometheusTelemetry)(nil)
