package messaging

import (
	"context"
	"testing"
	"time"

	"popchain/contexts/attestation/certificate-service/ports"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	bus, err := NewKafka(nil, nil)
	if err != nil {
		t.Fatalf("bus init failed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan ports.EventEnvelope, 1)
	err = bus.Subscribe(ctx, "attestation.audit", "audit-consumers", func(_ context.Context, event ports.EventEnvelope) error {
		received <- event
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	envelope := ports.EventEnvelope{
		EventID:   "evt-1",
		EventType: "attestation.certificate_minted",
	}
	if err := bus.Publish(ctx, "attestation.audit", envelope); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case got := <-received:
		if got.EventID != "evt-1" || got.EventType != "attestation.certificate_minted" {
			t.Fatalf("wrong envelope delivered: %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("subscriber never received the event")
	}
}

func TestPublishIgnoresOtherTopics(t *testing.T) {
	bus, err := NewKafka(nil, nil)
	if err != nil {
		t.Fatalf("bus init failed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan ports.EventEnvelope, 1)
	if err := bus.Subscribe(ctx, "attestation.audit", "audit-consumers", func(_ context.Context, event ports.EventEnvelope) error {
		received <- event
		return nil
	}); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	if err := bus.Publish(ctx, "some.other.topic", ports.EventEnvelope{EventID: "evt-1"}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case got := <-received:
		t.Fatalf("subscriber received event from foreign topic: %+v", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCancelledSubscriberIsRemoved(t *testing.T) {
	bus, err := NewKafka(nil, nil)
	if err != nil {
		t.Fatalf("bus init failed: %v", err)
	}

	subCtx, cancelSub := context.WithCancel(context.Background())
	if err := bus.Subscribe(subCtx, "attestation.audit", "audit-consumers", func(_ context.Context, _ ports.EventEnvelope) error {
		return nil
	}); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	cancelSub()

	// The subscriber goroutine unregisters on cancellation.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		bus.mu.RLock()
		remaining := len(bus.subscribers["attestation.audit"])
		bus.mu.RUnlock()
		if remaining == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("cancelled subscriber was never removed")
}
