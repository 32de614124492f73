// Package counterdemo contrasts a counter kept in local component state with
// one whose value lives in the store.
package counterdemo

import (
	"context"
	"fmt"

	"github.com/i-melnichenko/store-lab/internal/action"
	"github.com/i-melnichenko/store-lab/internal/store"
)

// Mode labels which propagation path produced a message.
type Mode string

// Supported modes.
const (
	WithoutStore Mode = "without ngrx"
	WithStore    Mode = "with ngrx"
)

func message(mode Mode, count int, button string, requirePositive bool) string {
	if requirePositive && count <= 0 {
		return ""
	}
	return fmt.Sprintf("Value from parent: %d (%s) %s button clicked on child", count, mode, button)
}

// Local is a counter owned by the parent component. Children report clicks,
// the parent updates its own value and message.
type Local struct {
	count   int
	message string
}

// Increment handles the child's increment click.
func (l *Local) Increment() {
	l.count++
	l.message = message(WithoutStore, l.count, "Increment", false)
}

// Decrement handles the child's decrement click. The message is cleared once
// the value is no longer positive.
func (l *Local) Decrement() {
	l.count--
	l.message = message(WithoutStore, l.count, "Decrement", true)
}

// Count returns the current value.
func (l *Local) Count() int { return l.count }

// Message returns the last rendered message.
func (l *Local) Message() string { return l.message }

// Dispatcher is the subset of the store the bound counter needs.
type Dispatcher interface {
	Dispatch(ctx context.Context, a action.Action) error
	SelectCounter(fn func(ctx context.Context, v int)) *store.Subscription
}

// Bound is a counter whose value is read from the store. Clicks dispatch
// actions; the displayed value arrives through the counter subscription.
type Bound struct {
	store   Dispatcher
	sub     *store.Subscription
	value   int
	message string
	count   int
}

// NewBound subscribes to the counter slice of s.
func NewBound(s Dispatcher) *Bound {
	b := &Bound{store: s}
	b.sub = s.SelectCounter(func(_ context.Context, v int) { b.value = v })
	return b
}

// Increment dispatches Increment and records the parent-side click count.
func (b *Bound) Increment(ctx context.Context) error {
	if err := b.store.Dispatch(ctx, action.Increment{}); err != nil {
		return err
	}
	b.count++
	b.message = message(WithStore, b.count, "Increment", false)
	return nil
}

// Decrement dispatches Decrement and records the parent-side click count.
func (b *Bound) Decrement(ctx context.Context) error {
	if err := b.store.Dispatch(ctx, action.Decrement{}); err != nil {
		return err
	}
	b.count--
	b.message = message(WithStore, b.count, "Decrement", true)
	return nil
}

// Reset dispatches Reset. Only the store value is affected.
func (b *Bound) Reset(ctx context.Context) error {
	return b.store.Dispatch(ctx, action.Reset{})
}

// Value returns the counter value most recently published by the store.
func (b *Bound) Value() int { return b.value }

// Message returns the last rendered message.
func (b *Bound) Message() string { return b.message }

// Close releases the store subscription.
func (b *Bound) Close() {
	b.sub.Unsubscribe()
}
