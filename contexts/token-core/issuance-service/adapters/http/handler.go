package httpadapter

import (
	"context"
	"log/slog"

	application "stablecoin/contexts/token-core/issuance-service/application"
	"stablecoin/contexts/token-core/issuance-service/application/commands"
	"stablecoin/contexts/token-core/issuance-service/application/queries"
	"stablecoin/contexts/token-core/issuance-service/domain/entities"
	httptransport "stablecoin/contexts/token-core/issuance-service/transport/http"
)

// Handler maps HTTP DTOs to application commands/queries. The acting
// principal arrives pre-authenticated from the transport layer.
type Handler struct {
	InitializeToken   commands.InitializeTokenUseCase
	Mint              commands.MintUseCase
	Burn              commands.BurnUseCase
	FreezeAccount     commands.FreezeAccountUseCase
	Pause             commands.PauseUseCase
	AddMinter         commands.AddMinterUseCase
	UpdateMinterQuota commands.UpdateMinterQuotaUseCase
	RemoveMinter      commands.RemoveMinterUseCase
	UpdateRoles       commands.UpdateRolesUseCase
	TransferAuthority commands.TransferAuthorityUseCase
	AddToBlacklist    commands.AddToBlacklistUseCase
	RemoveBlacklist   commands.RemoveFromBlacklistUseCase
	Seize             commands.SeizeUseCase

	GetConfig     queries.GetConfigUseCase
	GetMinter     queries.GetMinterUseCase
	ListMinters   queries.ListMintersUseCase
	ListBlacklist queries.ListBlacklistUseCase

	Logger *slog.Logger
}

// InitializeTokenHandler creates the asset and its authorization config.
func (h Handler) InitializeTokenHandler(
	ctx context.Context,
	acting string,
	request httptransport.InitializeTokenRequest,
) (httptransport.InitializeTokenResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Info("http initialize token received",
		"event", "token_http_initialize_received",
		"module", "token-core/issuance-service",
		"layer", "transport",
		"asset_ref", request.AssetRef,
		"symbol", request.Symbol,
	)

	result, err := h.InitializeToken.Execute(ctx, commands.InitializeTokenCommand{
		AssetRef:                request.AssetRef,
		Name:                    request.Name,
		Symbol:                  request.Symbol,
		URI:                     request.URI,
		Decimals:                request.Decimals,
		EnablePermanentDelegate: request.PermanentDelegateEnabled,
		EnableTransferHook:      request.TransferHookEnabled,
		DefaultAccountFrozen:    request.DefaultAccountFrozen,
		Authority:               acting,
	})
	if err != nil {
		return httptransport.InitializeTokenResponse{}, err
	}
	return httptransport.InitializeTokenResponse{Config: configDTO(result.Config)}, nil
}

// GetConfigHandler returns the authorization config of one asset.
func (h Handler) GetConfigHandler(ctx context.Context, assetRef string) (httptransport.GetConfigResponse, error) {
	result, err := h.GetConfig.Execute(ctx, queries.GetConfigQuery{AssetRef: assetRef})
	if err != nil {
		return httptransport.GetConfigResponse{}, err
	}
	return httptransport.GetConfigResponse{Config: configDTO(result.Config)}, nil
}

// MintHandler issues supply under the acting principal's quota.
func (h Handler) MintHandler(
	ctx context.Context,
	acting string,
	assetRef string,
	request httptransport.MintRequest,
) (httptransport.MintResponse, error) {
	result, err := h.Mint.Execute(ctx, commands.MintCommand{
		AssetRef:  assetRef,
		Minter:    acting,
		Recipient: request.Recipient,
		Amount:    request.Amount,
	})
	if err != nil {
		return httptransport.MintResponse{}, err
	}
	return httptransport.MintResponse{Minter: minterDTO(result.Minter)}, nil
}

// BurnHandler destroys supply held by the named owner.
func (h Handler) BurnHandler(
	ctx context.Context,
	acting string,
	assetRef string,
	request httptransport.BurnRequest,
) error {
	owner := request.Owner
	if owner == "" {
		owner = acting
	}
	return h.Burn.Execute(ctx, commands.BurnCommand{
		AssetRef: assetRef,
		Owner:    owner,
		Amount:   request.Amount,
	})
}

// FreezeAccountHandler freezes one holder account.
func (h Handler) FreezeAccountHandler(
	ctx context.Context,
	acting string,
	assetRef string,
	request httptransport.FreezeAccountRequest,
) error {
	return h.FreezeAccount.Freeze(ctx, commands.FreezeAccountCommand{
		AssetRef: assetRef,
		Acting:   acting,
		Holder:   request.Holder,
	})
}

// ThawAccountHandler unfreezes one holder account.
func (h Handler) ThawAccountHandler(
	ctx context.Context,
	acting string,
	assetRef string,
	request httptransport.FreezeAccountRequest,
) error {
	return h.FreezeAccount.Thaw(ctx, commands.FreezeAccountCommand{
		AssetRef: assetRef,
		Acting:   acting,
		Holder:   request.Holder,
	})
}

// PauseHandler halts supply and transfer operations asset-wide.
func (h Handler) PauseHandler(ctx context.Context, acting string, assetRef string) error {
	return h.Pause.Pause(ctx, commands.PauseCommand{AssetRef: assetRef, Acting: acting})
}

// UnpauseHandler resumes normal operation.
func (h Handler) UnpauseHandler(ctx context.Context, acting string, assetRef string) error {
	return h.Pause.Unpause(ctx, commands.PauseCommand{AssetRef: assetRef, Acting: acting})
}

// AddMinterHandler grants minting rights with a quota.
func (h Handler) AddMinterHandler(
	ctx context.Context,
	acting string,
	assetRef string,
	request httptransport.AddMinterRequest,
) (httptransport.AddMinterResponse, error) {
	result, err := h.AddMinter.Execute(ctx, commands.AddMinterCommand{
		AssetRef: assetRef,
		Minter:   request.Minter,
		Quota:    request.Quota,
		Acting:   acting,
	})
	if err != nil {
		return httptransport.AddMinterResponse{}, err
	}
	return httptransport.AddMinterResponse{Minter: minterDTO(result.Minter)}, nil
}

// UpdateMinterQuotaHandler rewrites a minter's ceiling.
func (h Handler) UpdateMinterQuotaHandler(
	ctx context.Context,
	acting string,
	assetRef string,
	minter string,
	request httptransport.UpdateMinterQuotaRequest,
) (httptransport.UpdateMinterQuotaResponse, error) {
	result, err := h.UpdateMinterQuota.Execute(ctx, commands.UpdateMinterQuotaCommand{
		AssetRef: assetRef,
		Minter:   minter,
		NewQuota: request.NewQuota,
		Acting:   acting,
	})
	if err != nil {
		return httptransport.UpdateMinterQuotaResponse{}, err
	}
	return httptransport.UpdateMinterQuotaResponse{Minter: minterDTO(result.Minter)}, nil
}

// RemoveMinterHandler revokes minting rights.
func (h Handler) RemoveMinterHandler(ctx context.Context, acting string, assetRef string, minter string) error {
	return h.RemoveMinter.Execute(ctx, commands.RemoveMinterCommand{
		AssetRef: assetRef,
		Minter:   minter,
		Acting:   acting,
	})
}

// GetMinterHandler returns one minter quota record.
func (h Handler) GetMinterHandler(ctx context.Context, assetRef string, minter string) (httptransport.GetMinterResponse, error) {
	result, err := h.GetMinter.Execute(ctx, queries.GetMinterQuery{AssetRef: assetRef, Minter: minter})
	if err != nil {
		return httptransport.GetMinterResponse{}, err
	}
	return httptransport.GetMinterResponse{
		Minter:   minterDTO(result.Minter),
		Headroom: result.Headroom,
	}, nil
}

// ListMintersHandler returns all minters of one asset.
func (h Handler) ListMintersHandler(ctx context.Context, assetRef string) (httptransport.ListMintersResponse, error) {
	result, err := h.ListMinters.Execute(ctx, queries.ListMintersQuery{AssetRef: assetRef})
	if err != nil {
		return httptransport.ListMintersResponse{}, err
	}
	items := make([]httptransport.MinterDTO, 0, len(result.Minters))
	for _, record := range result.Minters {
		items = append(items, minterDTO(record))
	}
	return httptransport.ListMintersResponse{Minters: items}, nil
}

// UpdateRolesHandler reassigns compliance roles.
func (h Handler) UpdateRolesHandler(
	ctx context.Context,
	acting string,
	assetRef string,
	request httptransport.UpdateRolesRequest,
) (httptransport.UpdateRolesResponse, error) {
	result, err := h.UpdateRoles.Execute(ctx, commands.UpdateRolesCommand{
		AssetRef:    assetRef,
		Blacklister: request.Blacklister,
		Pauser:      request.Pauser,
		Seizer:      request.Seizer,
		Acting:      acting,
	})
	if err != nil {
		return httptransport.UpdateRolesResponse{}, err
	}
	return httptransport.UpdateRolesResponse{Config: configDTO(result.Config)}, nil
}

// TransferAuthorityHandler hands the master authority to a new principal.
func (h Handler) TransferAuthorityHandler(
	ctx context.Context,
	acting string,
	assetRef string,
	request httptransport.TransferAuthorityRequest,
) (httptransport.TransferAuthorityResponse, error) {
	result, err := h.TransferAuthority.Execute(ctx, commands.TransferAuthorityCommand{
		AssetRef:     assetRef,
		NewAuthority: request.NewAuthority,
		Acting:       acting,
	})
	if err != nil {
		return httptransport.TransferAuthorityResponse{}, err
	}
	return httptransport.TransferAuthorityResponse{Config: configDTO(result.Config)}, nil
}

// AddToBlacklistHandler restricts a user from transfers.
func (h Handler) AddToBlacklistHandler(
	ctx context.Context,
	acting string,
	assetRef string,
	request httptransport.AddToBlacklistRequest,
) (httptransport.AddToBlacklistResponse, error) {
	result, err := h.AddToBlacklist.Execute(ctx, commands.AddToBlacklistCommand{
		AssetRef: assetRef,
		User:     request.User,
		Reason:   request.Reason,
		Acting:   acting,
	})
	if err != nil {
		return httptransport.AddToBlacklistResponse{}, err
	}
	return httptransport.AddToBlacklistResponse{Entry: entryDTO(result.Entry)}, nil
}

// RemoveFromBlacklistHandler lifts a restriction.
func (h Handler) RemoveFromBlacklistHandler(ctx context.Context, acting string, assetRef string, user string) error {
	return h.RemoveBlacklist.Execute(ctx, commands.RemoveFromBlacklistCommand{
		AssetRef: assetRef,
		User:     user,
		Acting:   acting,
	})
}

// ListBlacklistHandler returns the compliance registry of one asset.
func (h Handler) ListBlacklistHandler(ctx context.Context, assetRef string) (httptransport.ListBlacklistResponse, error) {
	result, err := h.ListBlacklist.Execute(ctx, queries.ListBlacklistQuery{AssetRef: assetRef})
	if err != nil {
		return httptransport.ListBlacklistResponse{}, err
	}
	items := make([]httptransport.BlacklistEntryDTO, 0, len(result.Entries))
	for _, entry := range result.Entries {
		items = append(items, entryDTO(entry))
	}
	return httptransport.ListBlacklistResponse{Entries: items}, nil
}

// SeizeHandler executes a privileged forced transfer.
func (h Handler) SeizeHandler(
	ctx context.Context,
	acting string,
	assetRef string,
	request httptransport.SeizeRequest,
) error {
	logger := application.ResolveLogger(h.Logger)
	logger.Info("http seize received",
		"event", "token_http_seize_received",
		"module", "token-core/issuance-service",
		"layer", "transport",
		"asset_ref", assetRef,
		"source", request.Source,
		"destination", request.Destination,
		"amount", request.Amount,
	)

	return h.Seize.Execute(ctx, commands.SeizeCommand{
		AssetRef:    assetRef,
		Source:      request.Source,
		Destination: request.Destination,
		Amount:      request.Amount,
		Acting:      acting,
	})
}

func configDTO(cfg entities.Config) httptransport.ConfigDTO {
	return httptransport.ConfigDTO{
		Address:                  cfg.Address.String(),
		AssetRef:                 cfg.AssetRef,
		MasterAuthority:          cfg.MasterAuthority.String(),
		Name:                     cfg.Name,
		Symbol:                   cfg.Symbol,
		URI:                      cfg.URI,
		Decimals:                 cfg.Decimals,
		Paused:                   cfg.Paused,
		PermanentDelegateEnabled: cfg.PermanentDelegateEnabled,
		TransferHookEnabled:      cfg.TransferHookEnabled,
		DefaultAccountFrozen:     cfg.DefaultAccountFrozen,
		Blacklister:              cfg.Blacklister.String(),
		Pauser:                   cfg.Pauser.String(),
		Seizer:                   cfg.Seizer.String(),
		CreatedAt:                cfg.CreatedAt,
		UpdatedAt:                cfg.UpdatedAt,
	}
}

func minterDTO(record entities.MinterQuota) httptransport.MinterDTO {
	return httptransport.MinterDTO{
		Address:       record.Address.String(),
		ConfigAddress: record.ConfigAddress.String(),
		Authority:     record.Authority.String(),
		Quota:         record.Quota,
		Minted:        record.Minted,
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     record.UpdatedAt,
	}
}

func entryDTO(entry entities.BlacklistEntry) httptransport.BlacklistEntryDTO {
	return httptransport.BlacklistEntryDTO{
		Address:       entry.Address.String(),
		ConfigAddress: entry.ConfigAddress.String(),
		User:          entry.User.String(),
		Reason:        entry.Reason,
		CreatedAt:     entry.CreatedAt,
	}
}
