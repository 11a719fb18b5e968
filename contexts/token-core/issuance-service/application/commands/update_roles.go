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

// UpdateRolesCommand reassigns compliance roles. A nil field keeps the
// current holder; all requested changes land in one write.
type UpdateRolesCommand struct {
	AssetRef      string
	ConfigAddress addressing.Address
	Blacklister   *string
	Pauser        *string
	Seizer        *string
	Acting        string
}

// UpdateRolesResult returns the config after the reassignment.
type UpdateRolesResult struct {
	Config entities.Config `json:"config"`
}

// UpdateRolesUseCase rewrites the role slots on the Config record.
//
// Reads: Config. Writes: Config.
type UpdateRolesUseCase struct {
	Store       ports.EntityStore
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u UpdateRolesUseCase) Execute(ctx context.Context, cmd UpdateRolesCommand) (UpdateRolesResult, error) {
	logger := application.ResolveLogger(u.Logger)

	acting, err := valueobjects.NewPrincipal(cmd.Acting)
	if err != nil {
		return UpdateRolesResult{}, domainerrors.ErrUnauthorized
	}

	cfg, err := resolveConfig(ctx, u.Store, cmd.AssetRef, cmd.ConfigAddress)
	if err != nil {
		return UpdateRolesResult{}, err
	}
	if err := services.Authorize(cfg, services.RoleMasterAuthority, acting); err != nil {
		return UpdateRolesResult{}, err
	}

	changed := map[string]any{"asset_ref": cmd.AssetRef, "acting": acting.String()}
	if cmd.Blacklister != nil {
		p, err := valueobjects.NewPrincipal(*cmd.Blacklister)
		if err != nil {
			return UpdateRolesResult{}, domainerrors.ErrInvalidPrincipal
		}
		cfg.Blacklister = p
		changed["blacklister"] = p.String()
	}
	if cmd.Pauser != nil {
		p, err := valueobjects.NewPrincipal(*cmd.Pauser)
		if err != nil {
			return UpdateRolesResult{}, domainerrors.ErrInvalidPrincipal
		}
		cfg.Pauser = p
		changed["pauser"] = p.String()
	}
	if cmd.Seizer != nil {
		p, err := valueobjects.NewPrincipal(*cmd.Seizer)
		if err != nil {
			return UpdateRolesResult{}, domainerrors.ErrInvalidPrincipal
		}
		cfg.Seizer = p
		changed["seizer"] = p.String()
	}

	now := resolveNow(u.Clock)
	cfg.UpdatedAt = now

	outboxID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return UpdateRolesResult{}, err
	}
	audit, err := newAudit(outboxID, "token.roles_updated", "config", cfg.Address.String(), now, changed)
	if err != nil {
		return UpdateRolesResult{}, err
	}

	if err := u.Store.UpdateConfig(ctx, ports.UpdateConfigInput{Config: cfg, Audit: audit}); err != nil {
		return UpdateRolesResult{}, err
	}

	logger.Info("roles updated",
		"event", "roles_updated",
		"module", "token-core/issuance-service",
		"layer", "application",
		"asset_ref", cmd.AssetRef,
		"acting", acting.String(),
	)
	return UpdateRolesResult{Config: cfg}, nil
}
