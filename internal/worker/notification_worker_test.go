package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/fuel-service/internal/events"
	"github.com/spec-kit/fuel-service/internal/service"
)

type collector struct {
	mu  sync.Mutex
	got []events.Event
}

func (c *collector) handle(_ context.Context, e events.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.got = append(c.got, e)
	return nil
}

func (c *collector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.got)
}

func TestForwarderDeliversAndDrains(t *testing.T) {
	c := &collector{}
	f := NewEventForwarder(c.handle, zap.NewNop(), 8)
	ctx, cancel := context.WithCancel(context.Background())
	f.Run(ctx)

	for i := 0; i < 5; i++ {
		f.Enqueue(events.Event{Type: events.EventQuotaConsumed})
	}
	cancel()
	f.Wait()

	if c.count() != 5 {
		t.Fatalf("delivered %d events, want 5", c.count())
	}
}

func TestForwarderDropsWhenFull(t *testing.T) {
	c := &collector{}
	f := NewEventForwarder(c.handle, zap.NewNop(), 2)
	for i := 0; i < 5; i++ {
		f.Enqueue(events.Event{Type: events.EventQuotaReset})
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f.Run(ctx)
	f.Wait()

	if c.count() != 2 {
		t.Fatalf("delivered %d events, want 2", c.count())
	}
}

func TestForwarderSurvivesHandlerErrors(t *testing.T) {
	calls := 0
	var mu sync.Mutex
	f := NewEventForwarder(func(context.Context, events.Event) error {
		mu.Lock()
		calls++
		mu.Unlock()
		return errors.New("redis down")
	}, zap.NewNop(), 4)
	ctx, cancel := context.WithCancel(context.Background())
	f.Run(ctx)
	f.Enqueue(events.Event{})
	f.Enqueue(events.Event{})
	cancel()
	f.Wait()

	mu.Lock()
	defer mu.Unlock()
	if calls != 2 {
		t.Fatalf("handler calls = %d, want 2", calls)
	}
}

func TestStartNotificationWorker(t *testing.T) {
	c := &collector{}
	f := NewEventForwarder(c.handle, zap.NewNop(), 8)
	dispatcher := events.NewInMemoryDispatcher()
	notifications := service.NewNotificationService(dispatcher, zap.NewNop(), f)

	ctx, cancel := context.WithCancel(context.Background())
	StartNotificationWorker(ctx, notifications, f)
	if err := dispatcher.Publish(ctx, events.Event{Type: events.EventStationActivated}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for c.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	f.Wait()
	if c.count() != 1 {
		t.Fatalf("forwarded %d events, want 1", c.count())
	}
}
