package ports

import (
	"context"
	"time"

	"stablecoin/contexts/token-core/issuance-service/domain/entities"
	"stablecoin/internal/shared/addressing"
	"stablecoin/internal/shared/events"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for audit/outbox rows.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// Ledger is the external token ledger runtime. Supply, balance, and freeze
// primitives live there and are assumed atomic; their failures are
// propagated verbatim.
type Ledger interface {
	CreateAsset(ctx context.Context, asset string, decimals uint8, permanentDelegate bool, transferHook bool, defaultFrozen bool) error
	MintSupply(ctx context.Context, asset string, recipient string, amount uint64) error
	BurnSupply(ctx context.Context, asset string, owner string, amount uint64) error
	Freeze(ctx context.Context, asset string, holder string) error
	Thaw(ctx context.Context, asset string, holder string) error
	ForceTransfer(ctx context.Context, asset string, source string, dest string, amount uint64) error
}

// AuditRecord is appended to the outbox inside the same atomic store
// mutation as the entity change it describes.
type AuditRecord struct {
	OutboxID  string
	EventType string
	Payload   []byte
	CreatedAt time.Time
}

// CreateConfigInput persists a new Config with its audit row.
type CreateConfigInput struct {
	Config entities.Config
	Audit  AuditRecord
}

// UpdateConfigInput rewrites mutable Config fields with its audit row.
type UpdateConfigInput struct {
	Config entities.Config
	Audit  AuditRecord
}

// CreateMinterInput persists a new MinterQuota with its audit row.
type CreateMinterInput struct {
	Minter entities.MinterQuota
	Audit  AuditRecord
}

// UpdateMinterQuotaInput rewrites a minter ceiling with its audit row.
type UpdateMinterQuotaInput struct {
	Address   addressing.Address
	NewQuota  uint64
	UpdatedAt time.Time
	Audit     AuditRecord
}

// ApplyMintInput advances a minter's issued counter.
type ApplyMintInput struct {
	Address   addressing.Address
	Amount    uint64
	Recipient string
	MintedAt  time.Time
	Audit     AuditRecord
}

// DeleteMinterInput revokes minting rights by removing the record.
type DeleteMinterInput struct {
	Address addressing.Address
	Audit   AuditRecord
}

// CreateBlacklistEntryInput persists a new BlacklistEntry with its audit row.
type CreateBlacklistEntryInput struct {
	Entry entities.BlacklistEntry
	Audit AuditRecord
}

// DeleteBlacklistEntryInput destroys a BlacklistEntry, reclaiming storage.
type DeleteBlacklistEntryInput struct {
	Address addressing.Address
	Audit   AuditRecord
}

// EntityStore is the persistence boundary for the four record kinds, keyed
// by derived address. Implementations must be atomic per call: either the
// full mutation (entity + audit row) persists or none of it does.
type EntityStore interface {
	GetConfig(ctx context.Context, address addressing.Address) (entities.Config, error)

	// CreateConfig checks uniqueness, runs createFn (the ledger-side asset
	// registration), and persists the record only when createFn succeeds.
	// A createFn failure must leave no config and no audit row behind.
	CreateConfig(ctx context.Context, input CreateConfigInput, createFn func(context.Context) error) error

	UpdateConfig(ctx context.Context, input UpdateConfigInput) error

	GetMinter(ctx context.Context, address addressing.Address) (entities.MinterQuota, error)
	ListMinters(ctx context.Context, configAddress addressing.Address) ([]entities.MinterQuota, error)
	CreateMinter(ctx context.Context, input CreateMinterInput) error
	UpdateMinterQuota(ctx context.Context, input UpdateMinterQuotaInput) (entities.MinterQuota, error)
	DeleteMinter(ctx context.Context, input DeleteMinterInput) error

	// ApplyMint re-checks the quota invariant, runs mintFn (the ledger-side
	// supply increase), and persists the counter advance only when mintFn
	// succeeds. A mintFn failure must leave the record untouched.
	ApplyMint(ctx context.Context, input ApplyMintInput, mintFn func(context.Context) error) (entities.MinterQuota, error)

	GetBlacklistEntry(ctx context.Context, address addressing.Address) (entities.BlacklistEntry, error)
	ListBlacklist(ctx context.Context, configAddress addressing.Address) ([]entities.BlacklistEntry, error)
	CreateBlacklistEntry(ctx context.Context, input CreateBlacklistEntryInput) error
	DeleteBlacklistEntry(ctx context.Context, input DeleteBlacklistEntryInput) error

	// Exists reports whether any record lives at the derived address.
	Exists(ctx context.Context, address addressing.Address) (bool, error)

	// ConfigPaused reports the pause flag of the config at the derived
	// address. The transfer guard consults it on every validation.
	ConfigPaused(ctx context.Context, address addressing.Address) (bool, error)

	// AppendAudit records an observable side effect that has no entity
	// mutation of its own (seizure).
	AppendAudit(ctx context.Context, record AuditRecord) error
}

// OutboxMessage represents a pending relay message.
type OutboxMessage struct {
	OutboxID  string
	EventType string
	Payload   []byte
	CreatedAt time.Time
}

// OutboxRepository supports worker relay polling and acknowledgement.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

// EventPublisher emits audit envelopes to the event bus adapter.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}
