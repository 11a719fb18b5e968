package entities

import (
	"time"

	"stablecoin/internal/shared/addressing"
)

// HookConfig is the per-asset registration record of the transfer guard.
// It carries its own pause flag and authority, independent of the issuance
// config, so the guard can be halted or re-keyed without touching issuance.
type HookConfig struct {
	Address addressing.Address `json:"address"`

	AssetRef string `json:"asset_ref"`

	// ControllingConfigRef is the derived address of the issuance config
	// whose blacklist registry governs this asset's transfers.
	ControllingConfigRef addressing.Address `json:"controlling_config_ref"`

	Authority string `json:"authority"`
	Paused    bool   `json:"paused"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
