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

// InitializeHookCommand registers the transfer guard for one asset.
type InitializeHookCommand struct {
	AssetRef    string
	HookAddress addressing.Address
	Authority   string
}

// InitializeHookResult returns the created registration and its proof.
type InitializeHookResult struct {
	Hook  entities.HookConfig `json:"hook"`
	Proof addressing.Proof    `json:"proof"`
}

// InitializeHookUseCase creates the HookConfig record. The controlling
// config address is derived from the same asset reference the issuance
// side uses, binding the guard to that asset's blacklist registry.
type InitializeHookUseCase struct {
	Store  ports.HookStore
	Clock  ports.Clock
	Logger *slog.Logger
}

func (u InitializeHookUseCase) Execute(ctx context.Context, cmd InitializeHookCommand) (InitializeHookResult, error) {
	logger := application.ResolveLogger(u.Logger)

	authority, err := checkPrincipal(cmd.Authority)
	if err != nil {
		return InitializeHookResult{}, err
	}
	if cmd.AssetRef == "" {
		return InitializeHookResult{}, domainerrors.ErrNotFound
	}

	expected, proof := addressing.ForTransferHook(cmd.AssetRef)
	if !cmd.HookAddress.IsZero() && cmd.HookAddress != expected {
		return InitializeHookResult{}, domainerrors.ErrAddressMismatch
	}
	configRef, _ := addressing.ForConfig(cmd.AssetRef)

	now := resolveNow(u.Clock)
	hook := entities.HookConfig{
		Address:              expected,
		AssetRef:             cmd.AssetRef,
		ControllingConfigRef: configRef,
		Authority:            authority,
		Paused:               false,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := u.Store.CreateHook(ctx, hook); err != nil {
		return InitializeHookResult{}, err
	}

	logger.Info("transfer hook initialized",
		"event", "hook_initialized",
		"module", "token-core/transfer-hook-service",
		"layer", "application",
		"asset_ref", cmd.AssetRef,
		"hook_address", expected.String(),
		"authority", authority,
	)
	return InitializeHookResult{Hook: hook, Proof: proof}, nil
}
