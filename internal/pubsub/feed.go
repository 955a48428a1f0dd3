// Package pubsub fans values out from one publisher to any number of
// subscribers. Publishing never waits on a subscriber.
package pubsub

import (
	"context"
	"slices"
	"sync"
)

// Publisher accepts values for fan-out.
type Publisher[T any] interface {
	Publish(v T)
}

// Feed delivers every published value to each live subscription.
// A subscriber whose buffer is full misses the value.
type Feed[T any] struct {
	mu     sync.Mutex
	subs   []chan T
	buffer int
	closed bool
}

// NewFeed creates a feed whose subscriptions buffer up to buffer values.
func NewFeed[T any](buffer int) *Feed[T] {
	if buffer < 1 {
		buffer = 1
	}
	return &Feed[T]{buffer: buffer}
}

// Subscribe returns a channel of published values. It is closed when ctx
// is done or the feed is closed.
func (f *Feed[T]) Subscribe(ctx context.Context) <-chan T {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch := make(chan T, f.buffer)
	if f.closed {
		close(ch)
		return ch
	}
	f.subs = append(f.subs, ch)
	context.AfterFunc(ctx, func() { f.unsubscribe(ch) })
	return ch
}

func (f *Feed[T]) unsubscribe(ch chan T) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if i := slices.Index(f.subs, ch); i >= 0 {
		f.subs = slices.Delete(f.subs, i, i+1)
		close(ch)
	}
}

// Publish implements Publisher.
func (f *Feed[T]) Publish(v T) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ch := range f.subs {
		select {
		case ch <- v:
		default:
		}
	}
}

// Close ends every subscription. Later publishes are dropped.
func (f *Feed[T]) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.closed = true
	for _, ch := range f.subs {
		close(ch)
	}
	f.subs = nil
}
