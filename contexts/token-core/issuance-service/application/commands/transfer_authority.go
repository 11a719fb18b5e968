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

// TransferAuthorityCommand hands the master authority to a new principal.
type TransferAuthorityCommand struct {
	AssetRef      string
	ConfigAddress addressing.Address
	NewAuthority  string
	Acting        string
}

// TransferAuthorityResult returns the config after the handover.
type TransferAuthorityResult struct {
	Config entities.Config `json:"config"`
}

// TransferAuthorityUseCase replaces the master authority in a single write.
// The handover takes effect immediately; the previous authority keeps only
// the roles still naming it explicitly.
//
// Reads: Config. Writes: Config.
type TransferAuthorityUseCase struct {
	Store       ports.EntityStore
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u TransferAuthorityUseCase) Execute(ctx context.Context, cmd TransferAuthorityCommand) (TransferAuthorityResult, error) {
	logger := application.ResolveLogger(u.Logger)

	acting, err := valueobjects.NewPrincipal(cmd.Acting)
	if err != nil {
		return TransferAuthorityResult{}, domainerrors.ErrUnauthorized
	}
	next, err := valueobjects.NewPrincipal(cmd.NewAuthority)
	if err != nil {
		return TransferAuthorityResult{}, domainerrors.ErrInvalidPrincipal
	}

	cfg, err := resolveConfig(ctx, u.Store, cmd.AssetRef, cmd.ConfigAddress)
	if err != nil {
		return TransferAuthorityResult{}, err
	}
	if err := services.Authorize(cfg, services.RoleMasterAuthority, acting); err != nil {
		return TransferAuthorityResult{}, err
	}

	now := resolveNow(u.Clock)
	previous := cfg.MasterAuthority
	cfg.MasterAuthority = next
	cfg.UpdatedAt = now

	outboxID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return TransferAuthorityResult{}, err
	}
	audit, err := newAudit(outboxID, "token.authority_transferred", "config", cfg.Address.String(), now, map[string]any{
		"asset_ref":          cmd.AssetRef,
		"previous_authority": previous.String(),
		"new_authority":      next.String(),
	})
	if err != nil {
		return TransferAuthorityResult{}, err
	}

	if err := u.Store.UpdateConfig(ctx, ports.UpdateConfigInput{Config: cfg, Audit: audit}); err != nil {
		return TransferAuthorityResult{}, err
	}

	logger.Info("authority transferred",
		"event", "authority_transferred",
		"module", "token-core/issuance-service",
		"layer", "application",
		"asset_ref", cmd.AssetRef,
		"new_authority", next.String(),
	)
	return TransferAuthorityResult{Config: cfg}, nil
}
