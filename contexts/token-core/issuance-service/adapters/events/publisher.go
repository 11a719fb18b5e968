package events

import (
	"context"
	"encoding/json"
	"log/slog"

	eventsv1 "stablecoin/contracts/gen/events/v1"
	"stablecoin/internal/platform/messaging"
	sharedevents "stablecoin/internal/shared/events"
)

// Publisher bridges the audit relay to the event bus adapter. It converts
// the internal audit envelope to the versioned wire contract at this
// boundary; external consumers only ever see the contract shape.
type Publisher struct {
	bus    *messaging.Kafka
	logger *slog.Logger
}

func NewPublisher(bus *messaging.Kafka, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{bus: bus, logger: logger}
}

func (p Publisher) Publish(ctx context.Context, topic string, event sharedevents.Envelope) error {
	wire, err := toContract(event)
	if err != nil {
		return err
	}
	if p.bus != nil {
		if err := p.bus.Publish(ctx, topic, wire); err != nil {
			return err
		}
	}
	p.logger.Info("audit event published",
		"event", "token_audit_published",
		"module", "token-core/issuance-service",
		"layer", "adapter",
		"topic", topic,
		"event_id", event.EventID,
		"event_type", event.EventType,
	)
	return nil
}

func toContract(event sharedevents.Envelope) (eventsv1.Envelope, error) {
	data, err := json.Marshal(event.Payload)
	if err != nil {
		return eventsv1.Envelope{}, err
	}
	return eventsv1.Envelope{
		EventID:       event.EventID,
		EventType:     event.EventType,
		OccurredAt:    event.OccurredAtUTC,
		SourceService: event.SourceService,
		SchemaVersion: event.PayloadVersion,
		EntityType:    event.EntityType,
		EntityID:      event.EntityID,
		PartitionKey:  event.EntityID,
		Data:          data,
	}, nil
}
