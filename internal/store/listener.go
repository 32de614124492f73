//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE
package store

import "context"

// Listener receives slice values published by the store.
//
// ctx belongs to the dispatch round that produced value. A listener that
// dispatches must pass ctx on, so the action is queued behind the current
// round instead of waiting for it.
type Listener interface {
	OnSlice(ctx context.Context, slice Slice, value any)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(ctx context.Context, slice Slice, value any)

// OnSlice calls f.
func (f ListenerFunc) OnSlice(ctx context.Context, slice Slice, value any) {
	f(ctx, slice, value)
}
