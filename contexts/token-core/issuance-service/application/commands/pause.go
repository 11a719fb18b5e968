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

// PauseCommand toggles the asset-wide emergency switch.
type PauseCommand struct {
	AssetRef      string
	ConfigAddress addressing.Address
	Acting        string
}

// PauseUseCase drives the Active/Paused state machine. Re-issuing a
// transition that is already in effect is a silent no-op so operator
// tooling can retry safely.
//
// Reads: Config. Writes: Config.
type PauseUseCase struct {
	Store       ports.EntityStore
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u PauseUseCase) Pause(ctx context.Context, cmd PauseCommand) error {
	return u.transition(ctx, cmd, true)
}

func (u PauseUseCase) Unpause(ctx context.Context, cmd PauseCommand) error {
	return u.transition(ctx, cmd, false)
}

func (u PauseUseCase) transition(ctx context.Context, cmd PauseCommand, paused bool) error {
	logger := application.ResolveLogger(u.Logger)

	acting, err := valueobjects.NewPrincipal(cmd.Acting)
	if err != nil {
		return domainerrors.ErrUnauthorized
	}

	cfg, err := resolveConfig(ctx, u.Store, cmd.AssetRef, cmd.ConfigAddress)
	if err != nil {
		return err
	}
	if err := services.Authorize(cfg, services.RolePauser, acting); err != nil {
		return err
	}
	if cfg.Paused == paused {
		return nil
	}

	now := resolveNow(u.Clock)
	cfg.Paused = paused
	cfg.UpdatedAt = now

	eventType := "token.paused"
	if !paused {
		eventType = "token.unpaused"
	}
	outboxID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return err
	}
	audit, err := newAudit(outboxID, eventType, "config", cfg.Address.String(), now, map[string]any{
		"asset_ref": cmd.AssetRef,
		"acting":    acting.String(),
	})
	if err != nil {
		return err
	}

	if err := u.Store.UpdateConfig(ctx, ports.UpdateConfigInput{Config: cfg, Audit: audit}); err != nil {
		return err
	}

	logger.Info("pause state changed",
		"event", eventType,
		"module", "token-core/issuance-service",
		"layer", "application",
		"asset_ref", cmd.AssetRef,
		"paused", paused,
		"acting", acting.String(),
	)
	return nil
}
