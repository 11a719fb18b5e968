package ports

import (
	"context"
	"time"

	"stablecoin/contexts/token-core/transfer-hook-service/domain/entities"
	"stablecoin/internal/shared/addressing"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// HookStore persists hook registrations keyed by derived address.
type HookStore interface {
	GetHook(ctx context.Context, address addressing.Address) (entities.HookConfig, error)
	CreateHook(ctx context.Context, hook entities.HookConfig) error
	UpdateHook(ctx context.Context, hook entities.HookConfig) error
}

// EntityReader is the read-only view into the issuance record space the
// guard needs: existence checks on derived blacklist entry addresses and
// the pause flag of the controlling config.
type EntityReader interface {
	Exists(ctx context.Context, address addressing.Address) (bool, error)
	ConfigPaused(ctx context.Context, address addressing.Address) (bool, error)
}
