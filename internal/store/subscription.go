package store

import (
	"context"
	"sync/atomic"

	"github.com/i-melnichenko/store-lab/internal/state"
)

// Subscription is a registered listener. Each subscription has its own
// lifecycle independent of the others.
type Subscription struct {
	store    *Store
	id       uint64
	slice    Slice
	listener Listener
	whole    func(context.Context, state.Combined)
	active   atomic.Bool
}

func newSubscription(s *Store, id uint64, slice Slice, l Listener, whole func(context.Context, state.Combined)) *Subscription {
	sub := &Subscription{
		store:    s,
		id:       id,
		slice:    slice,
		listener: l,
		whole:    whole,
	}
	sub.active.Store(true)
	return sub
}

// Slice returns the slice this subscription observes, or "" for whole-state
// subscriptions.
func (sub *Subscription) Slice() Slice {
	return sub.slice
}

// Active reports whether the subscription still receives values.
func (sub *Subscription) Active() bool {
	return sub.active.Load()
}

// Unsubscribe stops delivery. It is safe to call more than once, including
// from inside the subscription's own listener.
func (sub *Subscription) Unsubscribe() {
	if !sub.active.CompareAndSwap(true, false) {
		return
	}
	sub.store.remove(sub)
}

func (sub *Subscription) deliver(ctx context.Context, v any) bool {
	if !sub.active.Load() || sub.listener == nil {
		return false
	}
	sub.listener.OnSlice(ctx, sub.slice, v)
	return true
}

func (sub *Subscription) deliverWhole(ctx context.Context, c state.Combined) bool {
	if !sub.active.Load() || sub.whole == nil {
		return false
	}
	sub.whole(ctx, c)
	return true
}
