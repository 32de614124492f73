package store

import "time"

// Metrics captures store-level metric sinks.
type Metrics interface {
	IncDispatch(actionType string)
	ObserveDispatchDuration(d time.Duration)
	IncNotification(slice string)
	SetSubscribers(slice string, n int)
	SetEmployees(n int)
}

type noopMetrics struct{}

func (noopMetrics) IncDispatch(string)                    {}
func (noopMetrics) ObserveDispatchDuration(time.Duration) {}
func (noopMetrics) IncNotification(string)                {}
func (noopMetrics) SetSubscribers(string, int)            {}
func (noopMetrics) SetEmployees(int)                      {}
