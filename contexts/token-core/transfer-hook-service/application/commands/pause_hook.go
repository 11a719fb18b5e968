package commands

import (
	"context"
	"log/slog"

	application "stablecoin/contexts/token-core/transfer-hook-service/application"
	domainerrors "stablecoin/contexts/token-core/transfer-hook-service/domain/errors"
	"stablecoin/contexts/token-core/transfer-hook-service/ports"
	"stablecoin/internal/shared/addressing"
)

// PauseHookCommand toggles the guard-level pause for one asset.
type PauseHookCommand struct {
	AssetRef string
	Acting   string
}

// PauseHookUseCase drives the hook pause state. Re-issuing a transition
// already in effect is a silent no-op.
type PauseHookUseCase struct {
	Store  ports.HookStore
	Clock  ports.Clock
	Logger *slog.Logger
}

func (u PauseHookUseCase) Pause(ctx context.Context, cmd PauseHookCommand) error {
	return u.transition(ctx, cmd, true)
}

func (u PauseHookUseCase) Unpause(ctx context.Context, cmd PauseHookCommand) error {
	return u.transition(ctx, cmd, false)
}

func (u PauseHookUseCase) transition(ctx context.Context, cmd PauseHookCommand, paused bool) error {
	logger := application.ResolveLogger(u.Logger)

	acting, err := checkPrincipal(cmd.Acting)
	if err != nil {
		return domainerrors.ErrUnauthorized
	}

	address, _ := addressing.ForTransferHook(cmd.AssetRef)
	hook, err := u.Store.GetHook(ctx, address)
	if err != nil {
		return err
	}
	if hook.Authority != acting {
		return domainerrors.ErrUnauthorized
	}
	if hook.Paused == paused {
		return nil
	}

	hook.Paused = paused
	hook.UpdatedAt = resolveNow(u.Clock)
	if err := u.Store.UpdateHook(ctx, hook); err != nil {
		return err
	}

	eventName := "hook_paused"
	if !paused {
		eventName = "hook_unpaused"
	}
	logger.Info("hook pause state changed",
		"event", eventName,
		"module", "token-core/transfer-hook-service",
		"layer", "application",
		"asset_ref", cmd.AssetRef,
		"paused", paused,
		"acting", acting,
	)
	return nil
}
