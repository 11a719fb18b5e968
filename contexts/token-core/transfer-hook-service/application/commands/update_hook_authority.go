package commands

import (
	"context"
	"log/slog"

	application "stablecoin/contexts/token-core/transfer-hook-service/application"
	"stablecoin/contexts/token-core/transfer-hook-service/domain/entities"
	domainerrors "stablecoin/contexts/token-core/transfer-hook-service/domain/errors"
	"stablecoin/contexts/token-core/transfer-hook-service/ports"
	"stablecoin/internal/shared/addressing"
)

// UpdateHookAuthorityCommand hands the hook authority to a new principal.
type UpdateHookAuthorityCommand struct {
	AssetRef     string
	NewAuthority string
	Acting       string
}

// UpdateHookAuthorityResult returns the registration after the handover.
type UpdateHookAuthorityResult struct {
	Hook entities.HookConfig `json:"hook"`
}

// UpdateHookAuthorityUseCase replaces the hook authority in a single write.
type UpdateHookAuthorityUseCase struct {
	Store  ports.HookStore
	Clock  ports.Clock
	Logger *slog.Logger
}

func (u UpdateHookAuthorityUseCase) Execute(ctx context.Context, cmd UpdateHookAuthorityCommand) (UpdateHookAuthorityResult, error) {
	logger := application.ResolveLogger(u.Logger)

	acting, err := checkPrincipal(cmd.Acting)
	if err != nil {
		return UpdateHookAuthorityResult{}, domainerrors.ErrUnauthorized
	}
	next, err := checkPrincipal(cmd.NewAuthority)
	if err != nil {
		return UpdateHookAuthorityResult{}, err
	}

	address, _ := addressing.ForTransferHook(cmd.AssetRef)
	hook, err := u.Store.GetHook(ctx, address)
	if err != nil {
		return UpdateHookAuthorityResult{}, err
	}
	if hook.Authority != acting {
		return UpdateHookAuthorityResult{}, domainerrors.ErrUnauthorized
	}

	hook.Authority = next
	hook.UpdatedAt = resolveNow(u.Clock)
	if err := u.Store.UpdateHook(ctx, hook); err != nil {
		return UpdateHookAuthorityResult{}, err
	}

	logger.Info("hook authority updated",
		"event", "hook_authority_updated",
		"module", "token-core/transfer-hook-service",
		"layer", "application",
		"asset_ref", cmd.AssetRef,
		"new_authority", next,
	)
	return UpdateHookAuthorityResult{Hook: hook}, nil
}
