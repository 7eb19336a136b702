package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

var at = time.Date(2026, time.October, 14, 10, 30, 0, 0, time.UTC)

func receive(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case event, ok := <-ch:
		require.True(t, ok, "channel closed unexpectedly")
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func assertNothingPending(t *testing.T, ch <-chan Event) {
	t.Helper()
	select {
	case event, ok := <-ch:
		if ok {
			t.Fatalf("unexpected event %+v", event)
		}
	default:
	}
}

func TestBus_PublishReachesEverySubscriber(t *testing.T) {
	bus := NewBus()
	first := bus.Subscribe()
	second := bus.Subscribe()
	defer first.Close()
	defer second.Close()

	sent := bus.Publish(at)

	assert.Equal(t, EventDataChanged, sent.Type)
	assert.Equal(t, int64(1), sent.SequenceID)
	assert.Equal(t, sent, receive(t, first.C))
	assert.Equal(t, sent, receive(t, second.C))
}

func TestBus_PublishNeverBlocksAndCoalesces(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe()
	defer sub.Close()

	for i := 0; i < 10; i++ {
		bus.Publish(at)
	}

	event := receive(t, sub.C)
	assert.Equal(t, int64(1), event.SequenceID, "the first pending event is kept")
	assertNothingPending(t, sub.C)

	next := bus.Publish(at)
	assert.Equal(t, int64(11), next.SequenceID)
	assert.Equal(t, next, receive(t, sub.C))
}

func TestSubscription_CloseStopsDelivery(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe()
	require.Equal(t, 1, bus.Subscribers())

	sub.Close()
	sub.Close() // idempotent

	assert.Equal(t, 0, bus.Subscribers())
	bus.Publish(at)

	_, ok := <-sub.C
	assert.False(t, ok, "closed subscription channel should be closed")
}

func TestBus_ListenUnsubscribesWhenContextEnds(t *testing.T) {
	bus := NewBus()
	ctx, cancel := context.WithCancel(context.Background())

	ch := bus.Listen(ctx)
	bus.Publish(at)
	receive(t, ch)

	cancel()
	require.Eventually(t, func() bool { return bus.Subscribers() == 0 }, time.Second, 5*time.Millisecond)

	_, ok := <-ch
	assert.False(t, ok)
}

func TestBus_ListenEndsWhenBusCloses(t *testing.T) {
	defer goleak.VerifyNone(t)

	bus := NewBus()
	ch := bus.Listen(context.Background())

	bus.Close()
	bus.Close()

	_, ok := <-ch
	assert.False(t, ok)
}

func TestBus_Close(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe()

	bus.Close()
	sub.Close()

	_, ok := <-sub.C
	assert.False(t, ok)

	late := bus.Subscribe()
	_, ok = <-late.C
	assert.False(t, ok, "subscribing to a closed bus yields a closed channel")
	assert.Equal(t, 0, bus.Subscribers())
}
