// Package messaging publishes domain events to EventBridge.
package messaging

import (
	"context"
	"encoding/json"
	"errors"

	"kernelworx-backend/application/ports"
	"kernelworx-backend/domain/events"
	apperrors "kernelworx-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

// EventBridgePublisher implements ports.EventPublisher on an EventBridge bus.
type EventBridgePublisher struct {
	client  *eventbridge.Client
	busName string
	logger  *zap.Logger
}

// NewEventBridgePublisher creates a new EventBridgePublisher.
func NewEventBridgePublisher(client *eventbridge.Client, busName string, logger *zap.Logger) ports.EventPublisher {
	return &EventBridgePublisher{client: client, busName: busName, logger: logger}
}

// Publish sends one domain event to the bus. Callers treat publishing as
// best-effort; the returned error is for them to log, not to fail on.
func (p *EventBridgePublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	detail, err := json.Marshal(event)
	if err != nil {
		return apperrors.NewExternalError("eventbridge", err)
	}

	out, err := p.client.PutEvents(ctx, &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{
			{
				EventBusName: aws.String(p.busName),
				Source:       aws.String(events.SourceBackend),
				DetailType:   aws.String(event.GetEventType()),
				Detail:       aws.String(string(detail)),
			},
		},
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			p.logger.Warn("event bus call failed",
				zap.String("errorCode", apiErr.ErrorCode()),
				zap.String("eventType", event.GetEventType()),
			)
		}
		return apperrors.NewExternalError("eventbridge", err)
	}
	if out.FailedEntryCount > 0 {
		p.logger.Warn("event bus rejected entry",
			zap.String("eventType", event.GetEventType()),
			zap.String("aggregateId", event.GetAggregateID()),
		)
		return apperrors.NewExternalError("eventbridge", nil)
	}

	p.logger.Debug("published domain event",
		zap.String("eventType", event.GetEventType()),
		zap.String("aggregateId", event.GetAggregateID()),
	)
	return nil
}

// NoopPublisher discards events, for local development without a bus.
type NoopPublisher struct{}

// Publish drops the event.
func (NoopPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	return nil
}
