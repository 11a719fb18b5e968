package services

import (
	"stablecoin/contexts/token-core/issuance-service/domain/entities"
	domainerrors "stablecoin/contexts/token-core/issuance-service/domain/errors"
	"stablecoin/contexts/token-core/issuance-service/domain/valueobjects"
)

// RoleKind names the capabilities resolvable against a Config record.
// Minter capability is granted per principal through MinterQuota records
// rather than a role field.
type RoleKind string

const (
	RoleMasterAuthority RoleKind = "master_authority"
	RoleBlacklister     RoleKind = "blacklister"
	RolePauser          RoleKind = "pauser"
	RoleSeizer          RoleKind = "seizer"
	RoleFreezeAuthority RoleKind = "freeze_authority"
)

// Authorize resolves acting against the config field owning the required
// role. It fails closed: unknown roles and empty principals are rejected.
// This is the only privilege check in the codebase; authority transfer goes
// through the same path with RoleMasterAuthority.
func Authorize(cfg entities.Config, required RoleKind, acting valueobjects.Principal) error {
	if acting.IsZero() {
		return domainerrors.ErrUnauthorized
	}

	var expected valueobjects.Principal
	switch required {
	case RoleMasterAuthority:
		expected = cfg.MasterAuthority
	case RoleFreezeAuthority:
		// Freeze authority stays on the master key.
		expected = cfg.MasterAuthority
	case RoleBlacklister:
		expected = cfg.Blacklister
	case RolePauser:
		expected = cfg.Pauser
	case RoleSeizer:
		expected = cfg.Seizer
	default:
		return domainerrors.ErrUnauthorized
	}

	if expected != acting {
		return domainerrors.ErrUnauthorized
	}
	return nil
}
