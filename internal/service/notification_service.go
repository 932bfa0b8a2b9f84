package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/fuel-service/internal/events"
)

// EventSink receives events after they are logged.
type EventSink interface {
	Enqueue(event events.Event)
}

// NotificationService logs domain events and hands them to the forwarder.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	sink       EventSink
}

// NewNotificationService creates the service. sink may be nil.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, sink EventSink) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		sink:       sink,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventQuotaConsumed, n.handleQuotaConsumed)
	n.dispatcher.Subscribe(events.EventQuotaReset, n.forward)
	n.dispatcher.Subscribe(events.EventDistributionCreated, n.forward)
	n.dispatcher.Subscribe(events.EventStationActivated, n.forward)
}

func (n *NotificationService) handleQuotaConsumed(ctx context.Context, event events.Event) error {
	if payload, ok := event.Payload.(events.QuotaConsumedPayload); ok && payload.QuotaRemaining < 0 {
		n.logger.Warn("quota overdrawn",
			zap.String("vehicle_id", event.Subject),
			zap.String("registration_number", payload.RegistrationNumber),
			zap.Int("quota_remaining", payload.QuotaRemaining))
	}
	return n.forward(ctx, event)
}

func (n *NotificationService) forward(_ context.Context, event events.Event) error {
	n.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("subject", event.Subject),
		zap.String("actor", event.Actor.Identifier),
		zap.Any("payload", event.Payload))
	if n.sink != nil {
		n.sink.Enqueue(event)
	}
	return nil
}
