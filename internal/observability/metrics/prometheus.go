//revive:disable:exported
package metrics

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Prometheus exposes store metrics. It implements internal/store.Metrics
// through method set compatibility, without importing that package.
type Prometheus struct {
	dispatchTotal    *prometheus.CounterVec
	dispatchDuration prometheus.Histogram
	notifyTotal      *prometheus.CounterVec
	subscribers      *prometheus.GaugeVec
	employees        prometheus.Gauge
}

func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Prometheus{
		dispatchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "storelab",
				Subsystem: "store",
				Name:      "dispatch_total",
				Help:      "Actions reduced by the store, by action type.",
			},
			[]string{"action_type"},
		),
		dispatchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "storelab",
				Subsystem: "store",
				Name:      "reduce_duration_seconds",
				Help:      "Time spent running every slice reducer for one action.",
				Buckets:   []float64{0.000001, 0.0000025, 0.000005, 0.00001, 0.000025, 0.00005, 0.0001, 0.00025, 0.001},
			},
		),
		notifyTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "storelab",
				Subsystem: "store",
				Name:      "notifications_total",
				Help:      "Listener notifications delivered after dispatch, by slice (all = whole-state).",
			},
			[]string{"slice"},
		),
		subscribers: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "storelab",
				Subsystem: "store",
				Name:      "subscribers",
				Help:      "Active subscriptions, by slice (all = whole-state).",
			},
			[]string{"slice"},
		),
		employees: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "storelab",
				Subsystem: "employees",
				Name:      "records",
				Help:      "Employees currently held in the collection slice.",
			},
		),
	}

	if err := m.register(reg); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Prometheus) register(reg prometheus.Registerer) error {
	if err := registerOrReuse(reg, &m.dispatchTotal); err != nil {
		return fmt.Errorf("register store dispatch counter: %w", err)
	}
	if err := registerOrReuse(reg, &m.dispatchDuration); err != nil {
		return fmt.Errorf("register store reduce histogram: %w", err)
	}
	if err := registerOrReuse(reg, &m.notifyTotal); err != nil {
		return fmt.Errorf("register store notification counter: %w", err)
	}
	if err := registerOrReuse(reg, &m.subscribers); err != nil {
		return fmt.Errorf("register store subscribers gauge: %w", err)
	}
	if err := registerOrReuse(reg, &m.employees); err != nil {
		return fmt.Errorf("register employees gauge: %w", err)
	}
	return nil
}

func registerOrReuse[C prometheus.Collector](reg prometheus.Registerer, c *C) error {
	if err := reg.Register(*c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return err
		}
		existing, ok := already.ExistingCollector.(C)
		if !ok {
			return fmt.Errorf("collector type mismatch for %T", *c)
		}
		*c = existing
	}
	return nil
}

func (m *Prometheus) IncDispatch(actionType string) {
	m.dispatchTotal.WithLabelValues(actionType).Inc()
}

func (m *Prometheus) ObserveDispatchDuration(d time.Duration) {
	m.dispatchDuration.Observe(d.Seconds())
}

func (m *Prometheus) IncNotification(slice string) {
	m.notifyTotal.WithLabelValues(slice).Inc()
}

func (m *Prometheus) SetSubscribers(slice string, n int) {
	m.subscribers.WithLabelValues(slice).Set(float64(n))
}

func (m *Prometheus) SetEmployees(n int) {
	m.employees.Set(float64(n))
}

// WriteText gathers g and writes it in the Prometheus text exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
