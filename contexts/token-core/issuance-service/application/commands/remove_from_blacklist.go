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

// RemoveFromBlacklistCommand lifts a compliance restriction.
type RemoveFromBlacklistCommand struct {
	AssetRef      string
	ConfigAddress addressing.Address
	EntryAddress  addressing.Address
	User          string
	Acting        string
}

// RemoveFromBlacklistUseCase deletes the BlacklistEntry. Removing a user
// that is not listed fails NotFound rather than succeeding silently, so
// compliance tooling notices stale removal requests.
//
// Reads: Config. Writes: BlacklistEntry (delete).
type RemoveFromBlacklistUseCase struct {
	Store       ports.EntityStore
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u RemoveFromBlacklistUseCase) Execute(ctx context.Context, cmd RemoveFromBlacklistCommand) error {
	logger := application.ResolveLogger(u.Logger)

	acting, err := valueobjects.NewPrincipal(cmd.Acting)
	if err != nil {
		return domainerrors.ErrUnauthorized
	}
	user, err := valueobjects.NewPrincipal(cmd.User)
	if err != nil {
		return domainerrors.ErrInvalidPrincipal
	}

	cfg, err := resolveConfig(ctx, u.Store, cmd.AssetRef, cmd.ConfigAddress)
	if err != nil {
		return err
	}
	if err := services.Authorize(cfg, services.RoleBlacklister, acting); err != nil {
		return err
	}

	expected, _ := addressing.ForBlacklistEntry(cfg.Address, user.String())
	entryAddr, err := deriveChecked(expected, cmd.EntryAddress)
	if err != nil {
		return err
	}

	if _, err := u.Store.GetBlacklistEntry(ctx, entryAddr); err != nil {
		return err
	}

	now := resolveNow(u.Clock)
	outboxID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return err
	}
	audit, err := newAudit(outboxID, "blacklist.removed", "blacklist_entry", entryAddr.String(), now, map[string]any{
		"asset_ref": cmd.AssetRef,
		"user":      user.String(),
		"acting":    acting.String(),
	})
	if err != nil {
		return err
	}

	if err := u.Store.DeleteBlacklistEntry(ctx, ports.DeleteBlacklistEntryInput{Address: entryAddr, Audit: audit}); err != nil {
		return err
	}

	logger.Info("user removed from blacklist",
		"event", "blacklist_removed",
		"module", "token-core/issuance-service",
		"layer", "application",
		"asset_ref", cmd.AssetRef,
		"user", user.String(),
		"acting", acting.String(),
	)
	return nil
}
