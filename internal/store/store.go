// Package store implements the reducer-based state container shared by the
// front end. All mutation flows through Dispatch.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/i-melnichenko/store-lab/internal/action"
	"github.com/i-melnichenko/store-lab/internal/state"
)

// ErrNilAction is returned when Dispatch is called without an action.
var ErrNilAction = errors.New("store: nil action")

// ErrUnknownSlice is returned when selecting a slice that was never declared.
var ErrUnknownSlice = errors.New("store: unknown slice")

// Logger is a minimal structured logger interface, compatible with slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

// roundKey is the context key under which listeners receive a roundMark.
type roundKey struct{}

type roundMark struct {
	store *Store
	id    uint64
}

type pending struct {
	ctx context.Context
	act action.Action
}

// round is one dispatch worth of notifications, collected under the lock and
// delivered after it is released.
type round struct {
	id      uint64
	ctx     context.Context
	act     action.Action
	next    state.Combined
	changed []sliceReducer
	bySlice map[Slice][]*Subscription
	whole   []*Subscription
}

// Store owns the combined state.
//
// Dispatch is synchronous: reducers run, the state is replaced and every
// affected subscriber is notified before it returns. Dispatches from
// different goroutines are serialized. A Dispatch issued by a listener with
// the ctx it was handed is queued and processed once the current round
// completes, still before the outermost Dispatch returns.
type Store struct {
	logger  Logger
	tracer  oteltrace.Tracer
	metrics Metrics

	// turn is held by the outermost Dispatch for the whole drain.
	turn chan struct{}

	mu       sync.Mutex
	state    state.Combined
	subs     map[Slice][]*Subscription
	whole    []*Subscription
	nextID   uint64
	roundSeq uint64
	current  uint64
	queue    []pending
}

// New creates a store holding initial. Nil logger, tracer or metrics fall
// back to no-op implementations.
func New(initial state.Combined, logger Logger, tracer oteltrace.Tracer, metrics Metrics) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("store")
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	s := &Store{
		logger:  logger,
		tracer:  tracer,
		metrics: metrics,
		turn:    make(chan struct{}, 1),
		state:   initial.Clone(),
		subs:    make(map[Slice][]*Subscription, len(registry)),
	}
	metrics.SetEmployees(initial.Employees.Len())
	return s
}

// GetState returns a snapshot of the combined state. The snapshot shares no
// memory with the store.
func (s *Store) GetState() state.Combined {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// SelectEmployee looks up a single employee in the current state.
func (s *Store) SelectEmployee(id int) (state.Employee, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Employees.Find(id)
}

// Dispatch applies a through every slice reducer and notifies subscribers.
// Unknown actions are reduced to the unchanged state and are not an error.
//
// While another goroutine's round is in flight Dispatch waits for it. It
// returns ctx.Err() without dispatching if ctx is done before its turn.
func (s *Store) Dispatch(ctx context.Context, a action.Action) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if a == nil {
		_, span := s.startSpan(ctx, "store.Dispatch")
		spanRecordError(span, ErrNilAction)
		span.End()
		return ErrNilAction
	}
	if s.enqueueNested(ctx, a) {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case s.turn <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-s.turn }()

	s.mu.Lock()
	s.roundSeq++
	s.current = s.roundSeq
	s.queue = append(s.queue, pending{ctx: ctx, act: a})
	s.mu.Unlock()

	s.drain()
	return nil
}

// enqueueNested queues a when ctx was handed out by the round still in
// flight.
func (s *Store) enqueueNested(ctx context.Context, a action.Action) bool {
	mark, ok := ctx.Value(roundKey{}).(roundMark)
	if !ok || mark.store != s {
		return false
	}

	s.mu.Lock()
	if s.current == 0 || mark.id != s.current {
		s.mu.Unlock()
		return false
	}
	s.queue = append(s.queue, pending{ctx: ctx, act: a})
	depth := len(s.queue)
	s.mu.Unlock()

	s.logger.Debug("dispatch queued behind in-flight round",
		"type", a.Type(),
		"queue_depth", depth,
	)
	return true
}

func (s *Store) drain() {
	defer func() {
		if r := recover(); r != nil {
			s.mu.Lock()
			dropped := len(s.queue)
			s.current = 0
			s.queue = nil
			s.mu.Unlock()
			if dropped > 0 {
				s.logger.Warn("listener panicked, queued dispatches dropped", "dropped", dropped)
			}
			panic(r)
		}
	}()

	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.current = 0
			s.queue = nil
			s.mu.Unlock()
			return
		}
		next := s.queue[0]
		s.queue = s.queue[1:]
		r := s.reduceLocked(next)
		s.mu.Unlock()

		s.deliver(r)
	}
}

func (s *Store) reduceLocked(p pending) round {
	start := time.Now()
	prev := s.state
	next := prev
	for _, sr := range registry {
		next = sr.reduce(next, p.act)
	}
	s.state = next

	r := round{
		id:      s.current,
		ctx:     p.ctx,
		act:     p.act,
		next:    next,
		bySlice: make(map[Slice][]*Subscription),
		whole:   slices.Clone(s.whole),
	}
	for _, sr := range registry {
		if !sr.changed(prev, next) {
			continue
		}
		r.changed = append(r.changed, sr)
		r.bySlice[sr.name] = slices.Clone(s.subs[sr.name])
	}

	s.metrics.IncDispatch(string(p.act.Type()))
	s.metrics.ObserveDispatchDuration(time.Since(start))
	s.metrics.SetEmployees(next.Employees.Len())
	return r
}

func (s *Store) deliver(r round) {
	changedNames := make([]string, 0, len(r.changed))
	for _, sr := range r.changed {
		changedNames = append(changedNames, string(sr.name))
	}
	ctx, span := s.startSpan(
		r.ctx,
		"store.Dispatch",
		attribute.String("store.action.type", string(r.act.Type())),
		attribute.StringSlice("store.slices.changed", changedNames),
		attribute.Int("store.subscribers.whole", len(r.whole)),
	)
	defer span.End()
	ctx = context.WithValue(ctx, roundKey{}, roundMark{store: s, id: r.id})

	s.logger.Debug("action reduced",
		"action", action.String(r.act),
		"changed", changedNames,
		"counter", r.next.Counter,
		"employees", r.next.Employees.Len(),
	)

	notified := 0
	for _, sr := range r.changed {
		for _, sub := range r.bySlice[sr.name] {
			if sub.deliver(ctx, sr.value(r.next)) {
				notified++
				s.metrics.IncNotification(string(sr.name))
			}
		}
	}
	for _, sub := range r.whole {
		if sub.deliverWhole(ctx, r.next.Clone()) {
			notified++
			s.metrics.IncNotification("all")
		}
	}
	span.SetAttributes(attribute.Int("store.notified", notified))
}

// Select registers l for slice. l receives the current value immediately and
// every changed value after each subsequent dispatch, in registration order.
// The immediate value is delivered outside any dispatch round.
func (s *Store) Select(slice Slice, l Listener) (*Subscription, error) {
	sr, ok := lookupSlice(slice)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSlice, slice)
	}
	if l == nil {
		return nil, fmt.Errorf("store: nil listener for slice %q", slice)
	}
	return s.selectSlice(sr, l), nil
}

func (s *Store) selectSlice(sr sliceReducer, l Listener) *Subscription {
	s.mu.Lock()
	s.nextID++
	sub := newSubscription(s, s.nextID, sr.name, l, nil)
	s.subs[sr.name] = append(s.subs[sr.name], sub)
	current := sr.value(s.state)
	n := len(s.subs[sr.name])
	s.mu.Unlock()

	s.metrics.SetSubscribers(string(sr.name), n)
	s.logger.Debug("slice subscribed", "slice", sr.name, "subscription", sub.id)
	sub.deliver(context.Background(), current)
	return sub
}

// SelectCounter subscribes fn to the counter slice.
func (s *Store) SelectCounter(fn func(ctx context.Context, v int)) *Subscription {
	return s.selectSlice(counterSlice, ListenerFunc(func(ctx context.Context, _ Slice, v any) {
		fn(ctx, v.(int))
	}))
}

// SelectEmployees subscribes fn to the employee collection slice.
func (s *Store) SelectEmployees(fn func(ctx context.Context, e state.Employees)) *Subscription {
	return s.selectSlice(employeesSlice, ListenerFunc(func(ctx context.Context, _ Slice, v any) {
		fn(ctx, v.(state.Employees))
	}))
}

// Subscribe registers fn for the whole combined state. fn receives the
// current state immediately and the new state after every dispatch.
func (s *Store) Subscribe(fn func(ctx context.Context, c state.Combined)) *Subscription {
	s.mu.Lock()
	s.nextID++
	sub := newSubscription(s, s.nextID, "", nil, fn)
	s.whole = append(s.whole, sub)
	current := s.state.Clone()
	n := len(s.whole)
	s.mu.Unlock()

	s.metrics.SetSubscribers("all", n)
	s.logger.Debug("state subscribed", "subscription", sub.id)
	sub.deliverWhole(context.Background(), current)
	return sub
}

func (s *Store) remove(sub *Subscription) {
	s.mu.Lock()
	var (
		label string
		n     int
	)
	if sub.whole != nil {
		s.whole = removeSub(s.whole, sub)
		label, n = "all", len(s.whole)
	} else {
		s.subs[sub.slice] = removeSub(s.subs[sub.slice], sub)
		label, n = string(sub.slice), len(s.subs[sub.slice])
	}
	s.mu.Unlock()

	s.metrics.SetSubscribers(label, n)
	s.logger.Debug("unsubscribed", "slice", label, "subscription", sub.id)
}

func removeSub(list []*Subscription, sub *Subscription) []*Subscription {
	return slices.DeleteFunc(slices.Clone(list), func(x *Subscription) bool {
		return x == sub
	})
}
