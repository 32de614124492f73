package store

import (
	"log/slog"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace/noop"

	"github.com/i-melnichenko/store-lab/internal/state"
)

var testTracer = noop.NewTracerProvider().Tracer("test/internal/store")

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(state.Seed(), slog.Default(), testTracer, nil)
}

// recordingMetrics counts calls so tests can assert on dispatch accounting.
type recordingMetrics struct {
	dispatches    map[string]int
	notifications map[string]int
	subscribers   map[string]int
	employees     int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		dispatches:    map[string]int{},
		notifications: map[string]int{},
		subscribers:   map[string]int{},
	}
}

func (m *recordingMetrics) IncDispatch(actionType string)         { m.dispatches[actionType]++ }
func (m *recordingMetrics) ObserveDispatchDuration(time.Duration) {}
func (m *recordingMetrics) IncNotification(slice string)          { m.notifications[slice]++ }
func (m *recordingMetrics) SetSubscribers(slice string, n int)    { m.subscribers[slice] = n }
func (m *recordingMetrics) SetEmployees(n int)                    { m.employees = n }

func ids(e state.Employees) []int {
	out := make([]int, 0, e.Len())
	for _, emp := range e.Employees {
		out = append(out, emp.ID)
	}
	return out
}
