package commands

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"stablecoin/contexts/token-core/issuance-service/domain/entities"
	domainerrors "stablecoin/contexts/token-core/issuance-service/domain/errors"
	"stablecoin/contexts/token-core/issuance-service/ports"
	"stablecoin/internal/shared/addressing"
	"stablecoin/internal/shared/events"
)

const sourceService = "token-core/issuance-service"

// resolveConfig re-derives the Config address from the asset reference,
// asserts any caller-supplied address against it, and checks the loaded
// record points back at the same asset. Accepting a supplied address
// without re-derivation would let callers smuggle in foreign records.
func resolveConfig(
	ctx context.Context,
	store ports.EntityStore,
	assetRef string,
	supplied addressing.Address,
) (entities.Config, error) {
	if strings.TrimSpace(assetRef) == "" {
		return entities.Config{}, domainerrors.ErrNotFound
	}
	expected, _ := addressing.ForConfig(assetRef)
	if !supplied.IsZero() && supplied != expected {
		return entities.Config{}, domainerrors.ErrAddressMismatch
	}
	cfg, err := store.GetConfig(ctx, expected)
	if err != nil {
		return entities.Config{}, err
	}
	if cfg.AssetRef != assetRef {
		return entities.Config{}, domainerrors.ErrAddressMismatch
	}
	return cfg, nil
}

// deriveChecked re-derives a dependent record address and asserts any
// caller-supplied value against it.
func deriveChecked(expected addressing.Address, supplied addressing.Address) (addressing.Address, error) {
	if !supplied.IsZero() && supplied != expected {
		return "", domainerrors.ErrAddressMismatch
	}
	return expected, nil
}

// newAudit packs an audit envelope for the outbox. Envelope encoding cannot
// realistically fail for our payload maps; errors are surfaced anyway.
func newAudit(
	outboxID string,
	eventType string,
	entityType string,
	entityID string,
	occurredAt time.Time,
	payload map[string]any,
) (ports.AuditRecord, error) {
	body, err := json.Marshal(events.Envelope{
		EventID:        outboxID,
		EventType:      eventType,
		SourceService:  sourceService,
		OccurredAtUTC:  occurredAt.UTC(),
		EntityType:     entityType,
		EntityID:       entityID,
		PayloadVersion: 1,
		Payload:        payload,
	})
	if err != nil {
		return ports.AuditRecord{}, err
	}
	return ports.AuditRecord{
		OutboxID:  outboxID,
		EventType: eventType,
		Payload:   body,
		CreatedAt: occurredAt.UTC(),
	}, nil
}

func resolveNow(clock ports.Clock) time.Time {
	if clock != nil {
		return clock.Now().UTC()
	}
	return time.Now().UTC()
}
