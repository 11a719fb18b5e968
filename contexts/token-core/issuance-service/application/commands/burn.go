package commands

import (
	"context"
	"log/slog"

	application "stablecoin/contexts/token-core/issuance-service/application"
	domainerrors "stablecoin/contexts/token-core/issuance-service/domain/errors"
	"stablecoin/contexts/token-core/issuance-service/domain/valueobjects"
	"stablecoin/contexts/token-core/issuance-service/ports"
	"stablecoin/internal/shared/addressing"
)

// BurnCommand contains transport-agnostic input for supply destruction.
// Burning is authorized by ownership of the destroyed balance, not a role,
// so the only config gate is the pause flag.
type BurnCommand struct {
	AssetRef      string
	ConfigAddress addressing.Address
	Owner         string
	Amount        uint64
}

// BurnUseCase destroys supply held by the calling owner.
//
// Reads: Config. Writes: ledger supply only.
type BurnUseCase struct {
	Store  ports.EntityStore
	Ledger ports.Ledger
	Logger *slog.Logger
}

func (u BurnUseCase) Execute(ctx context.Context, cmd BurnCommand) error {
	logger := application.ResolveLogger(u.Logger)

	owner, err := valueobjects.NewPrincipal(cmd.Owner)
	if err != nil {
		return domainerrors.ErrInvalidPrincipal
	}
	if cmd.Amount == 0 {
		return domainerrors.ErrInvalidAmount
	}

	cfg, err := resolveConfig(ctx, u.Store, cmd.AssetRef, cmd.ConfigAddress)
	if err != nil {
		return err
	}
	if cfg.Paused {
		return domainerrors.ErrTokenPaused
	}

	if err := u.Ledger.BurnSupply(ctx, cmd.AssetRef, owner.String(), cmd.Amount); err != nil {
		return err
	}

	logger.Info("tokens burned",
		"event", "token_burned",
		"module", "token-core/issuance-service",
		"layer", "application",
		"asset_ref", cmd.AssetRef,
		"owner", owner.String(),
		"amount", cmd.Amount,
	)
	return nil
}
