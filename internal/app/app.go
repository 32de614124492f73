// Package app is the composition root: it builds the store once and wires it
// into the shell, the script runner and the counter demo.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/i-melnichenko/store-lab/internal/state"
	"github.com/i-melnichenko/store-lab/internal/store"
)

// Logger is the logging interface required by App.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Option customizes App construction.
type Option func(*options)

type options struct {
	traceOut   io.Writer
	metricsOut io.Writer
	initial    *state.Combined
}

// WithTraceOutput sets where exported spans are written. Defaults to stderr.
func WithTraceOutput(w io.Writer) Option {
	return func(o *options) { o.traceOut = w }
}

// WithMetricsOutput sets where the metrics dump is written on Close.
// Defaults to stderr.
func WithMetricsOutput(w io.Writer) Option {
	return func(o *options) { o.metricsOut = w }
}

// WithInitialState replaces the seed state.
func WithInitialState(c state.Combined) Option {
	return func(o *options) { o.initial = &c }
}

// App owns the store and its ambient dependencies for the process lifetime.
type App struct {
	config   Config
	logger   Logger
	store    *store.Store
	registry *prometheus.Registry

	metricsOut      io.Writer
	shutdownTracing func(context.Context) error
}

// New validates cfg and constructs the store with the seed state.
func New(ctx context.Context, cfg Config, logger Logger, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		return nil, fmt.Errorf("app: nil logger")
	}
	o := options{traceOut: os.Stderr, metricsOut: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	tracer, shutdown, err := initTracing(ctx, cfg, o.traceOut, logger)
	if err != nil {
		return nil, err
	}
	reg, m, err := newMetrics(cfg)
	if err != nil {
		_ = shutdown(ctx)
		return nil, err
	}

	initial := state.Seed()
	if o.initial != nil {
		initial = *o.initial
	}

	a := &App{
		config:          cfg,
		logger:          logger,
		store:           store.New(initial, logger, tracer, m),
		registry:        reg,
		metricsOut:      o.metricsOut,
		shutdownTracing: shutdown,
	}
	logger.Debug("store created",
		"counter", initial.Counter,
		"employees", initial.Employees.Len(),
	)
	return a, nil
}

// Store returns the application store.
func (a *App) Store() *store.Store {
	return a.store
}

// Close flushes tracing and writes the metrics dump when enabled.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if err := a.dumpMetrics(a.metricsOut); err != nil {
		errs = append(errs, err)
	}
	if err := a.shutdownTracing(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown tracing: %w", err))
	}
	return errors.Join(errs...)
}
