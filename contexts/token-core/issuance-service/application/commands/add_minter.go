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

// AddMinterCommand grants a principal minting rights with a quota ceiling.
type AddMinterCommand struct {
	AssetRef      string
	ConfigAddress addressing.Address
	MinterAddress addressing.Address
	Minter        string
	Quota         uint64
	Acting        string
}

// AddMinterResult returns the created quota record.
type AddMinterResult struct {
	Minter entities.MinterQuota `json:"minter"`
}

// AddMinterUseCase creates a MinterQuota record. An existing record for the
// same principal is never overwritten.
//
// Reads: Config. Writes: MinterQuota.
type AddMinterUseCase struct {
	Store       ports.EntityStore
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u AddMinterUseCase) Execute(ctx context.Context, cmd AddMinterCommand) (AddMinterResult, error) {
	logger := application.ResolveLogger(u.Logger)

	acting, err := valueobjects.NewPrincipal(cmd.Acting)
	if err != nil {
		return AddMinterResult{}, domainerrors.ErrUnauthorized
	}
	minter, err := valueobjects.NewPrincipal(cmd.Minter)
	if err != nil {
		return AddMinterResult{}, domainerrors.ErrInvalidPrincipal
	}

	cfg, err := resolveConfig(ctx, u.Store, cmd.AssetRef, cmd.ConfigAddress)
	if err != nil {
		return AddMinterResult{}, err
	}
	if err := services.Authorize(cfg, services.RoleMasterAuthority, acting); err != nil {
		return AddMinterResult{}, err
	}

	expected, _ := addressing.ForMinter(cfg.Address, minter.String())
	minterAddr, err := deriveChecked(expected, cmd.MinterAddress)
	if err != nil {
		return AddMinterResult{}, err
	}

	now := resolveNow(u.Clock)
	record := entities.MinterQuota{
		Address:       minterAddr,
		ConfigAddress: cfg.Address,
		Authority:     minter,
		Quota:         cmd.Quota,
		Minted:        0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	outboxID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return AddMinterResult{}, err
	}
	audit, err := newAudit(outboxID, "minter.added", "minter_quota", minterAddr.String(), now, map[string]any{
		"asset_ref": cmd.AssetRef,
		"minter":    minter.String(),
		"quota":     cmd.Quota,
		"acting":    acting.String(),
	})
	if err != nil {
		return AddMinterResult{}, err
	}

	if err := u.Store.CreateMinter(ctx, ports.CreateMinterInput{Minter: record, Audit: audit}); err != nil {
		return AddMinterResult{}, err
	}

	logger.Info("minter added",
		"event", "minter_added",
		"module", "token-core/issuance-service",
		"layer", "application",
		"asset_ref", cmd.AssetRef,
		"minter", minter.String(),
		"quota", cmd.Quota,
	)
	return AddMinterResult{Minter: record}, nil
}
