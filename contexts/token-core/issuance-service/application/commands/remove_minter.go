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

// RemoveMinterCommand revokes a principal's minting rights.
type RemoveMinterCommand struct {
	AssetRef      string
	ConfigAddress addressing.Address
	MinterAddress addressing.Address
	Minter        string
	Acting        string
}

// RemoveMinterUseCase deletes the MinterQuota record; a subsequent mint by
// the same principal fails Unauthorized.
//
// Reads: Config. Writes: MinterQuota (delete).
type RemoveMinterUseCase struct {
	Store       ports.EntityStore
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u RemoveMinterUseCase) Execute(ctx context.Context, cmd RemoveMinterCommand) error {
	logger := application.ResolveLogger(u.Logger)

	acting, err := valueobjects.NewPrincipal(cmd.Acting)
	if err != nil {
		return domainerrors.ErrUnauthorized
	}
	minter, err := valueobjects.NewPrincipal(cmd.Minter)
	if err != nil {
		return domainerrors.ErrInvalidPrincipal
	}

	cfg, err := resolveConfig(ctx, u.Store, cmd.AssetRef, cmd.ConfigAddress)
	if err != nil {
		return err
	}
	if err := services.Authorize(cfg, services.RoleMasterAuthority, acting); err != nil {
		return err
	}

	expected, _ := addressing.ForMinter(cfg.Address, minter.String())
	minterAddr, err := deriveChecked(expected, cmd.MinterAddress)
	if err != nil {
		return err
	}

	now := resolveNow(u.Clock)
	outboxID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return err
	}
	audit, err := newAudit(outboxID, "minter.removed", "minter_quota", minterAddr.String(), now, map[string]any{
		"asset_ref": cmd.AssetRef,
		"minter":    minter.String(),
		"acting":    acting.String(),
	})
	if err != nil {
		return err
	}

	if err := u.Store.DeleteMinter(ctx, ports.DeleteMinterInput{Address: minterAddr, Audit: audit}); err != nil {
		return err
	}

	logger.Info("minter removed",
		"event", "minter_removed",
		"module", "token-core/issuance-service",
		"layer", "application",
		"asset_ref", cmd.AssetRef,
		"minter", minter.String(),
	)
	return nil
}
