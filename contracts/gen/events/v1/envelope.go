package v1

import (
	"encoding/json"
	"time"
)

// Envelope is the canonical, versioned audit-event envelope for
// cross-runtime consumers of the token.audit topic.
// This package is generated-contract-only and must stay backward compatible.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	OccurredAt    time.Time       `json:"occurred_at"`
	SourceService string          `json:"source_service"`
	SchemaVersion int             `json:"schema_version"`
	EntityType    string          `json:"entity_type"`
	EntityID      string          `json:"entity_id"`
	PartitionKey  string          `json:"partition_key"`
	Data          json.RawMessage `json:"data"`
}
