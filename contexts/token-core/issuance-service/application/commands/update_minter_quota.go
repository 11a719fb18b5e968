package commands

import (
	"context"
	"log/slog"

	application "stablecoin/contexts/token-core/issuance-service/application"
	"stablecoin/contexts/token-core/issuance-service/domain/entities"
	domainerrors "stablecoin/contexts/token-core/issuance-service/domain/errors"
	"stablecoin/contexts/token-core/issuance-service/domain/services"
	"stablecoin/contexts/token-core/issuance-service/domain/valueobjects"
	"stablecoin/contexts/token-core/issuance-service/ports"
	"stablecoin/internal/shared/addressing"
)

// UpdateMinterQuotaCommand rewrites a minter's issuance ceiling.
type UpdateMinterQuotaCommand struct {
	AssetRef      string
	ConfigAddress addressing.Address
	MinterAddress addressing.Address
	Minter        string
	NewQuota      uint64
	Acting        string
}

// UpdateMinterQuotaResult returns the updated record.
type UpdateMinterQuotaResult struct {
	Minter entities.MinterQuota `json:"minter"`
}

// UpdateMinterQuotaUseCase changes the ceiling. Lowering it below the
// already-issued amount is rejected so minted <= quota always holds.
//
// Reads: Config. Writes: MinterQuota.
type UpdateMinterQuotaUseCase struct {
	Store       ports.EntityStore
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u UpdateMinterQuotaUseCase) Execute(ctx context.Context, cmd UpdateMinterQuotaCommand) (UpdateMinterQuotaResult, error) {
	logger := application.ResolveLogger(u.Logger)

	acting, err := valueobjects.NewPrincipal(cmd.Acting)
	if err != nil {
		return UpdateMinterQuotaResult{}, domainerrors.ErrUnauthorized
	}
	minter, err := valueobjects.NewPrincipal(cmd.Minter)
	if err != nil {
		return UpdateMinterQuotaResult{}, domainerrors.ErrInvalidPrincipal
	}

	cfg, err := resolveConfig(ctx, u.Store, cmd.AssetRef, cmd.ConfigAddress)
	if err != nil {
		return UpdateMinterQuotaResult{}, err
	}
	if err := services.Authorize(cfg, services.RoleMasterAuthority, acting); err != nil {
		return UpdateMinterQuotaResult{}, err
	}

	expected, _ := addressing.ForMinter(cfg.Address, minter.String())
	minterAddr, err := deriveChecked(expected, cmd.MinterAddress)
	if err != nil {
		return UpdateMinterQuotaResult{}, err
	}

	current, err := u.Store.GetMinter(ctx, minterAddr)
	if err != nil {
		return UpdateMinterQuotaResult{}, err
	}
	if cmd.NewQuota < current.Minted {
		return UpdateMinterQuotaResult{}, domainerrors.ErrQuotaExceeded
	}

	now := resolveNow(u.Clock)
	outboxID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return UpdateMinterQuotaResult{}, err
	}
	audit, err := newAudit(outboxID, "minter.quota_updated", "minter_quota", minterAddr.String(), now, map[string]any{
		"asset_ref": cmd.AssetRef,
		"minter":    minter.String(),
		"new_quota": cmd.NewQuota,
		"acting":    acting.String(),
	})
	if err != nil {
		return UpdateMinterQuotaResult{}, err
	}

	updated, err := u.Store.UpdateMinterQuota(ctx, ports.UpdateMinterQuotaInput{
		Address:   minterAddr,
		NewQuota:  cmd.NewQuota,
		UpdatedAt: now,
		Audit:     audit,
	})
	if err != nil {
		return UpdateMinterQuotaResult{}, err
	}

	logger.Info("minter quota updated",
		"event", "minter_quota_updated",
		"module", "token-core/issuance-service",
		"layer", "application",
		"asset_ref", cmd.AssetRef,
		"minter", minter.String(),
		"new_quota", cmd.NewQuota,
	)
	return UpdateMinterQuotaResult{Minter: updated}, nil
}
