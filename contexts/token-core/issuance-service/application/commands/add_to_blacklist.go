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

// AddToBlacklistCommand marks a user as compliance-restricted.
type AddToBlacklistCommand struct {
	AssetRef      string
	ConfigAddress addressing.Address
	EntryAddress  addressing.Address
	User          string
	Reason        string
	Acting        string
}

// AddToBlacklistResult returns the created registry entry.
type AddToBlacklistResult struct {
	Entry entities.BlacklistEntry `json:"entry"`
}

// AddToBlacklistUseCase creates a BlacklistEntry. The registry only exists
// for assets created with the transfer hook enabled; the entry address is
// derived from the config address and the user so the transfer validator
// can look it up without consulting this service.
//
// Reads: Config. Writes: BlacklistEntry.
type AddToBlacklistUseCase struct {
	Store       ports.EntityStore
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u AddToBlacklistUseCase) Execute(ctx context.Context, cmd AddToBlacklistCommand) (AddToBlacklistResult, error) {
	logger := application.ResolveLogger(u.Logger)

	acting, err := valueobjects.NewPrincipal(cmd.Acting)
	if err != nil {
		return AddToBlacklistResult{}, domainerrors.ErrUnauthorized
	}
	user, err := valueobjects.NewPrincipal(cmd.User)
	if err != nil {
		return AddToBlacklistResult{}, domainerrors.ErrInvalidPrincipal
	}
	if len(cmd.Reason) > entities.MaxReasonBytes {
		return AddToBlacklistResult{}, domainerrors.ErrStringTooLong
	}

	cfg, err := resolveConfig(ctx, u.Store, cmd.AssetRef, cmd.ConfigAddress)
	if err != nil {
		return AddToBlacklistResult{}, err
	}
	if err := services.Authorize(cfg, services.RoleBlacklister, acting); err != nil {
		return AddToBlacklistResult{}, err
	}
	if !cfg.TransferHookEnabled {
		return AddToBlacklistResult{}, domainerrors.ErrComplianceNotEnabled
	}

	expected, _ := addressing.ForBlacklistEntry(cfg.Address, user.String())
	entryAddr, err := deriveChecked(expected, cmd.EntryAddress)
	if err != nil {
		return AddToBlacklistResult{}, err
	}

	now := resolveNow(u.Clock)
	entry := entities.BlacklistEntry{
		Address:       entryAddr,
		ConfigAddress: cfg.Address,
		User:          user,
		Reason:        cmd.Reason,
		CreatedAt:     now,
	}

	outboxID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return AddToBlacklistResult{}, err
	}
	audit, err := newAudit(outboxID, "blacklist.added", "blacklist_entry", entryAddr.String(), now, map[string]any{
		"asset_ref": cmd.AssetRef,
		"user":      user.String(),
		"reason":    cmd.Reason,
		"acting":    acting.String(),
	})
	if err != nil {
		return AddToBlacklistResult{}, err
	}

	if err := u.Store.CreateBlacklistEntry(ctx, ports.CreateBlacklistEntryInput{Entry: entry, Audit: audit}); err != nil {
		return AddToBlacklistResult{}, err
	}

	logger.Info("user blacklisted",
		"event", "blacklist_added",
		"module", "token-core/issuance-service",
		"layer", "application",
		"asset_ref", cmd.AssetRef,
		"user", user.String(),
		"acting", acting.String(),
	)
	return AddToBlacklistResult{Entry: entry}, nil
}
