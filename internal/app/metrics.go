package app

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/i-melnichenko/store-lab/internal/observability/metrics"
)

func newMetrics(cfg Config) (*prometheus.Registry, *metrics.Prometheus, error) {
	reg := prometheus.NewRegistry()
	if cfg.RuntimeMetrics {
		if err := registerRuntimeCollectors(reg); err != nil {
			return nil, nil, err
		}
	}
	m, err := metrics.NewPrometheus(reg)
	if err != nil {
		return nil, nil, fmt.Errorf("init metrics: %w", err)
	}
	return reg, m, nil
}

func registerRuntimeCollectors(reg prometheus.Registerer) error {
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			return fmt.Errorf("metrics register go collector: %w", err)
		}
	}
	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			return fmt.Errorf("metrics register process collector: %w", err)
		}
	}
	return nil
}

func (a *App) dumpMetrics(w io.Writer) error {
	if !a.config.MetricsDump {
		return nil
	}
	if err := metrics.WriteText(w, a.registry); err != nil {
		return fmt.Errorf("dump metrics: %w", err)
	}
	return nil
}
