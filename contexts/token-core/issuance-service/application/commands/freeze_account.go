package commands

import (
	"context"
	"log/slog"

	application "stablecoin/contexts/token-core/issuance-service/application"
	domainerrors "stablecoin/contexts/token-core/issuance-service/domain/errors"
	"stablecoin/contexts/token-core/issuance-service/domain/services"
	"stablecoin/contexts/token-core/issuance-service/domain/valueobjects"
	"stablecoin/contexts/token-core/issuance-service/ports"
	"stablecoin/internal/shared/addressing"
)

// FreezeAccountCommand freezes or thaws one holder account on the ledger.
type FreezeAccountCommand struct {
	AssetRef      string
	ConfigAddress addressing.Address
	Acting        string
	Holder        string
}

// FreezeAccountUseCase gates the ledger freeze/thaw primitives behind the
// freeze authority and the pause state.
//
// Reads: Config. Writes: ledger account flag.
type FreezeAccountUseCase struct {
	Store  ports.EntityStore
	Ledger ports.Ledger
	Logger *slog.Logger
}

func (u FreezeAccountUseCase) Freeze(ctx context.Context, cmd FreezeAccountCommand) error {
	return u.apply(ctx, cmd, true)
}

func (u FreezeAccountUseCase) Thaw(ctx context.Context, cmd FreezeAccountCommand) error {
	return u.apply(ctx, cmd, false)
}

func (u FreezeAccountUseCase) apply(ctx context.Context, cmd FreezeAccountCommand, freeze bool) error {
	logger := application.ResolveLogger(u.Logger)

	acting, err := valueobjects.NewPrincipal(cmd.Acting)
	if err != nil {
		return domainerrors.ErrUnauthorized
	}
	if cmd.Holder == "" {
		return domainerrors.ErrInvalidPrincipal
	}

	cfg, err := resolveConfig(ctx, u.Store, cmd.AssetRef, cmd.ConfigAddress)
	if err != nil {
		return err
	}
	if err := services.Authorize(cfg, services.RoleFreezeAuthority, acting); err != nil {
		return err
	}
	if cfg.Paused {
		return domainerrors.ErrTokenPaused
	}

	if freeze {
		err = u.Ledger.Freeze(ctx, cmd.AssetRef, cmd.Holder)
	} else {
		err = u.Ledger.Thaw(ctx, cmd.AssetRef, cmd.Holder)
	}
	if err != nil {
		return err
	}

	eventName := "account_frozen"
	if !freeze {
		eventName = "account_thawed"
	}
	logger.Info("account freeze state changed",
		"event", eventName,
		"module", "token-core/issuance-service",
		"layer", "application",
		"asset_ref", cmd.AssetRef,
		"holder", cmd.Holder,
		"acting", acting.String(),
	)
	return nil
}
