package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "subscription closed")
		return v
	case <-time.After(100 * time.Millisecond):
		require.Fail(t, "nothing delivered")
	}
	var zero T
	return zero
}

func TestFeed_EverySubscriberGetsTheValue(t *testing.T) {
	feed := NewFeed[string](4)
	defer feed.Close()

	first := feed.Subscribe(context.Background())
	second := feed.Subscribe(context.Background())
	feed.Publish("Set 1/3 done")

	require.Equal(t, "Set 1/3 done", receive(t, first))
	require.Equal(t, "Set 1/3 done", receive(t, second))
}

func TestFeed_CancelEndsSubscription(t *testing.T) {
	feed := NewFeed[int](4)
	defer feed.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := feed.Subscribe(ctx)
	cancel()

	require.Eventually(t, func() bool {
		_, ok := <-ch
		return !ok
	}, time.Second, 5*time.Millisecond)

	// the cancelled subscription no longer receives
	feed.Publish(1)
	live := feed.Subscribe(context.Background())
	feed.Publish(2)
	require.Equal(t, 2, receive(t, live))
}

func TestFeed_FullSubscriberMissesValues(t *testing.T) {
	feed := NewFeed[int](1)
	defer feed.Close()

	ch := feed.Subscribe(context.Background())
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			feed.Publish(i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "publish waited on a full subscriber")
	}
	require.Equal(t, 0, receive(t, ch))
}

func TestFeed_Close(t *testing.T) {
	feed := NewFeed[string](0)
	ctx, cancel := context.WithCancel(context.Background())
	ch := feed.Subscribe(ctx)

	feed.Close()
	feed.Close()
	cancel() // unsubscribing after close must not close ch twice

	_, ok := <-ch
	require.False(t, ok)

	late := feed.Subscribe(context.Background())
	_, ok = <-late
	require.False(t, ok)
	feed.Publish("dropped")
}

func TestListen(t *testing.T) {
	feed := NewFeed[string](4)
	ch := feed.Subscribe(context.Background())

	feed.Publish("Rest over")
	require.Equal(t, "Rest over", Listen(ch)())

	feed.Close()
	require.Nil(t, Listen(ch)())
}
