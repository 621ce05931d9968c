package pubsub

import (
	"context"
	"testing"
	"time"
)

func TestBrokerFlow(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := broker.Subscribe(ctx)

	broker.Publish(StartedEvent, "retrieving")
	broker.Publish(FinishedEvent, "done")

	want := []Event[string]{
		{Type: StartedEvent, Payload: "retrieving"},
		{Type: FinishedEvent, Payload: "done"},
	}
	for _, w := range want {
		select {
		case got := <-events:
			if got != w {
				t.Errorf("got %+v, want %+v", got, w)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestAutoUnsubscribe(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	events := broker.Subscribe(ctx)
	if broker.SubscriberCount() != 1 {
		t.Fatalf("expected 1 subscriber, got %d", broker.SubscriberCount())
	}

	cancel()

	select {
	case _, ok := <-events:
		if ok {
			t.Fatal("expected closed channel after cancel")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}
	if broker.SubscriberCount() != 0 {
		t.Errorf("subscriber not removed, count = %d", broker.SubscriberCount())
	}
}

// A slow subscriber must never block the publisher.
func TestNonBlockingPublish(t *testing.T) {
	broker := NewBrokerWithBuffer[int](4)
	defer broker.Shutdown()

	events := broker.Subscribe(context.Background())

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			broker.Publish(ProgressEvent, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full subscriber")
	}

	if got := len(events); got != 4 {
		t.Errorf("expected buffer to hold 4 events, got %d", got)
	}
}

func TestBrokerShutdown(t *testing.T) {
	broker := NewBroker[string]()
	events := broker.Subscribe(context.Background())

	broker.Shutdown()
	broker.Shutdown()

	select {
	case _, ok := <-events:
		if ok {
			t.Error("subscriber channel still open after shutdown")
		}
	case <-time.After(time.Second):
		t.Error("subscriber channel not closed after shutdown")
	}

	late := broker.Subscribe(context.Background())
	if _, ok := <-late; ok {
		t.Error("subscribe after shutdown should return a closed channel")
	}
	broker.Publish(FailedEvent, "ignored")
}
