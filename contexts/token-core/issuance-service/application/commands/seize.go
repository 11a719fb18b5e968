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

// SeizeCommand forcibly moves funds out of a holder account.
type SeizeCommand struct {
	AssetRef      string
	ConfigAddress addressing.Address
	Source        string
	Destination   string
	Amount        uint64
	Acting        string
}

// SeizeUseCase executes a privileged forced transfer. It moves funds even
// out of frozen accounts and does not consult the transfer validator; the
// compensating control is the mandatory audit record, written before the
// result is returned.
//
// Reads: Config. Writes: ledger balances, audit outbox.
type SeizeUseCase struct {
	Store       ports.EntityStore
	Ledger      ports.Ledger
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u SeizeUseCase) Execute(ctx context.Context, cmd SeizeCommand) error {
	logger := application.ResolveLogger(u.Logger)

	acting, err := valueobjects.NewPrincipal(cmd.Acting)
	if err != nil {
		return domainerrors.ErrUnauthorized
	}
	if cmd.Source == "" || cmd.Destination == "" {
		return domainerrors.ErrInvalidPrincipal
	}
	if cmd.Amount == 0 {
		return domainerrors.ErrInvalidAmount
	}

	cfg, err := resolveConfig(ctx, u.Store, cmd.AssetRef, cmd.ConfigAddress)
	if err != nil {
		return err
	}
	if err := services.Authorize(cfg, services.RoleSeizer, acting); err != nil {
		return err
	}
	if !cfg.PermanentDelegateEnabled {
		return domainerrors.ErrPermanentDelegateNotEnabled
	}

	if err := u.Ledger.ForceTransfer(ctx, cmd.AssetRef, cmd.Source, cmd.Destination, cmd.Amount); err != nil {
		return err
	}

	now := resolveNow(u.Clock)
	outboxID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return err
	}
	audit, err := newAudit(outboxID, "token.seized", "config", cfg.Address.String(), now, map[string]any{
		"asset_ref":   cmd.AssetRef,
		"source":      cmd.Source,
		"destination": cmd.Destination,
		"amount":      cmd.Amount,
		"acting":      acting.String(),
	})
	if err != nil {
		return err
	}
	if err := u.Store.AppendAudit(ctx, audit); err != nil {
		return err
	}

	logger.Info("funds seized",
		"event", "funds_seized",
		"module", "token-core/issuance-service",
		"layer", "application",
		"asset_ref", cmd.AssetRef,
		"source", cmd.Source,
		"destination", cmd.Destination,
		"amount", cmd.Amount,
		"acting", acting.String(),
	)
	return nil
}
