package httpadapter

import (
	"context"
	"log/slog"

	"stablecoin/contexts/token-core/transfer-hook-service/application/commands"
	"stablecoin/contexts/token-core/transfer-hook-service/application/queries"
	"stablecoin/contexts/token-core/transfer-hook-service/domain/entities"
	httptransport "stablecoin/contexts/token-core/transfer-hook-service/transport/http"
)

// Handler maps HTTP DTOs to application commands/queries.
type Handler struct {
	InitializeHook      commands.InitializeHookUseCase
	PauseHook           commands.PauseHookUseCase
	UpdateHookAuthority commands.UpdateHookAuthorityUseCase
	ValidateTransfer    queries.ValidateTransferUseCase
	Logger              *slog.Logger
}

// InitializeHookHandler registers the guard for one asset.
func (h Handler) InitializeHookHandler(
	ctx context.Context,
	acting string,
	request httptransport.InitializeHookRequest,
) (httptransport.InitializeHookResponse, error) {
	result, err := h.InitializeHook.Execute(ctx, commands.InitializeHookCommand{
		AssetRef:  request.AssetRef,
		Authority: acting,
	})
	if err != nil {
		return httptransport.InitializeHookResponse{}, err
	}
	return httptransport.InitializeHookResponse{Hook: hookDTO(result.Hook)}, nil
}

// PauseHookHandler halts transfer validation approvals for one asset.
func (h Handler) PauseHookHandler(ctx context.Context, acting string, assetRef string) error {
	return h.PauseHook.Pause(ctx, commands.PauseHookCommand{AssetRef: assetRef, Acting: acting})
}

// UnpauseHookHandler resumes transfer validation approvals.
func (h Handler) UnpauseHookHandler(ctx context.Context, acting string, assetRef string) error {
	return h.PauseHook.Unpause(ctx, commands.PauseHookCommand{AssetRef: assetRef, Acting: acting})
}

// UpdateHookAuthorityHandler hands the hook authority to a new principal.
func (h Handler) UpdateHookAuthorityHandler(
	ctx context.Context,
	acting string,
	assetRef string,
	request httptransport.UpdateHookAuthorityRequest,
) (httptransport.UpdateHookAuthorityResponse, error) {
	result, err := h.UpdateHookAuthority.Execute(ctx, commands.UpdateHookAuthorityCommand{
		AssetRef:     assetRef,
		NewAuthority: request.NewAuthority,
		Acting:       acting,
	})
	if err != nil {
		return httptransport.UpdateHookAuthorityResponse{}, err
	}
	return httptransport.UpdateHookAuthorityResponse{Hook: hookDTO(result.Hook)}, nil
}

// ValidateTransferHandler answers whether one transfer may proceed.
func (h Handler) ValidateTransferHandler(
	ctx context.Context,
	assetRef string,
	request httptransport.ValidateTransferRequest,
) (httptransport.ValidateTransferResponse, error) {
	err := h.ValidateTransfer.Execute(ctx, queries.ValidateTransferQuery{
		AssetRef:  assetRef,
		Sender:    request.Sender,
		Recipient: request.Recipient,
		Amount:    request.Amount,
	})
	if err != nil {
		return httptransport.ValidateTransferResponse{}, err
	}
	return httptransport.ValidateTransferResponse{Allowed: true}, nil
}

func hookDTO(hook entities.HookConfig) httptransport.HookConfigDTO {
	return httptransport.HookConfigDTO{
		Address:              hook.Address.String(),
		AssetRef:             hook.AssetRef,
		ControllingConfigRef: hook.ControllingConfigRef.String(),
		Authority:            hook.Authority,
		Paused:               hook.Paused,
		CreatedAt:            hook.CreatedAt,
		UpdatedAt:            hook.UpdatedAt,
	}
}
