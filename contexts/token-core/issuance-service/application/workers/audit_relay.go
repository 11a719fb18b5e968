package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	application "stablecoin/contexts/token-core/issuance-service/application"
	"stablecoin/contexts/token-core/issuance-service/ports"
	"stablecoin/internal/shared/events"
)

// AuditTopic is the bus topic the relay publishes audit envelopes to.
const AuditTopic = "token.audit"

// AuditRelay drains pending audit rows from the outbox and publishes them
// to the event bus. At-least-once: a publish that succeeds but fails to be
// acknowledged is re-sent on the next run.
type AuditRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.EventPublisher
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

func (r AuditRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("audit outbox list failed",
			"event", "audit_outbox_list_failed",
			"module", "token-core/issuance-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	for _, row := range pending {
		var envelope events.Envelope
		if err := json.Unmarshal(row.Payload, &envelope); err != nil {
			return err
		}
		if err := r.Publisher.Publish(ctx, AuditTopic, envelope); err != nil {
			logger.Error("audit outbox publish failed",
				"event", "audit_outbox_publish_failed",
				"module", "token-core/issuance-service",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Outbox.MarkOutboxPublished(ctx, row.OutboxID, now); err != nil {
			return err
		}
	}
	return nil
}
