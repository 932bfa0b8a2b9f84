package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/fuel-service/internal/events"
	"github.com/spec-kit/fuel-service/internal/service"
)

const defaultQueueSize = 256

// EventForwarder drains dispatched events onto an external handler, usually
// the Redis publisher, off the request path.
type EventForwarder struct {
	queue   chan events.Event
	handler events.EventHandler
	logger  *zap.Logger
	wg      sync.WaitGroup
}

// NewEventForwarder returns a forwarder with a bounded queue.
func NewEventForwarder(handler events.EventHandler, logger *zap.Logger, queueSize int) *EventForwarder {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventForwarder{
		queue:   make(chan events.Event, queueSize),
		handler: handler,
		logger:  logger,
	}
}

// Enqueue never blocks; events are dropped when the queue is full.
func (f *EventForwarder) Enqueue(event events.Event) {
	select {
	case f.queue <- event:
	default:
		f.logger.Warn("event queue full, dropping event",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)))
	}
}

// Run forwards events until ctx is cancelled, then flushes what is queued.
func (f *EventForwarder) Run(ctx context.Context) {
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		for {
			select {
			case event := <-f.queue:
				f.deliver(ctx, event)
			case <-ctx.Done():
				f.drain()
				return
			}
		}
	}()
}

// Wait blocks until Run has returned.
func (f *EventForwarder) Wait() {
	f.wg.Wait()
}

func (f *EventForwarder) drain() {
	for {
		select {
		case event := <-f.queue:
			f.deliver(context.Background(), event)
		default:
			return
		}
	}
}

func (f *EventForwarder) deliver(ctx context.Context, event events.Event) {
	if f.handler == nil {
		return
	}
	if err := f.handler(ctx, event); err != nil {
		f.logger.Warn("event forward failed",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)),
			zap.Error(err))
	}
}

// StartNotificationWorker registers notification handlers and starts the forwarder.
func StartNotificationWorker(ctx context.Context, notificationService *service.NotificationService, forwarder *EventForwarder) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
	if forwarder != nil {
		forwarder.Run(ctx)
	}
}
