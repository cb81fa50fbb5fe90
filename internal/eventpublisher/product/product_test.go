package product

import (
	"context"
	"testing"
	"time"

	"go-smartshop/internal/eventpublisher/event"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisherFansOut(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := New(nil)
	a := make(chan event.Event, 1)
	b := make(chan event.Event, 1)
	p.Subscribe(a)
	p.Subscribe(b)

	done := make(chan error, 1)
	go func() { done <- p.Start(ctx) }()

	p.Emit(event.Event{Type: event.ProductDeleted, Message: "p-1"})

	for _, ch := range []chan event.Event{a, b} {
		select {
		case e := <-ch:
			assert.Equal(t, event.ProductDeleted, e.Type)
			assert.Equal(t, "p-1", e.Message)
		case <-time.After(2 * time.Second):
			t.Fatal("event not delivered")
		}
	}

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)

	_, open := <-a
	assert.False(t, open, "subscribers are closed when the publisher stops")
}

func TestEmitDropsWhenQueueIsFull(t *testing.T) {
	dropped := prometheus.NewCounter(prometheus.CounterOpts{Name: "t_dropped", Help: "t"})
	p := New(dropped)

	for i := 0; i < queueSize+3; i++ {
		p.Emit(event.Event{Type: event.ProductAdded})
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(dropped))
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "product_added", event.ProductAdded.String())
	assert.Equal(t, "product_updated", event.ProductUpdated.String())
	assert.Equal(t, "product_deleted", event.ProductDeleted.String())
	assert.Equal(t, "unknown", event.EventType(42).String())
}

func TestSlowSubscriberIsDropped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pub := New(nil)
	p := pub.(*productPublisher)
	stuck := make(chan event.Event)
	p.Subscribe(stuck)

	done := make(chan error, 1)
	go func() { done <- p.Start(ctx) }()

	for i := 0; i < writeFailureThreshold; i++ {
		p.Emit(event.Event{Type: event.ProductUpdated})
	}

	require.Eventually(t, func() bool { return p.submanager.Len() == 0 }, 3*writeTimeout, 10*time.Millisecond)

	_, open := <-stuck
	assert.False(t, open)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestEmitWaitsForRunningPublisher(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dropped := prometheus.NewCounter(prometheus.CounterOpts{Name: "t_dropped_running", Help: "t"})
	p := New(dropped)
	sink := make(chan event.Event, 4*queueSize)
	p.Subscribe(sink)
	go p.Start(ctx)

	const events = 2 * queueSize
	for i := 0; i < events; i++ {
		p.Emit(event.Event{Type: event.ProductAdded})
	}

	require.Eventually(t, func() bool { return len(sink) == events }, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, 0.0, testutil.ToFloat64(dropped))
}
