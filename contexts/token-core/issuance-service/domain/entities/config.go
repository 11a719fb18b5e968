package entities

import (
	"time"

	"stablecoin/contexts/token-core/issuance-service/domain/valueobjects"
	"stablecoin/internal/shared/addressing"
)

// Display metadata byte limits, matching the on-ledger storage budget.
const (
	MaxNameBytes   = 100
	MaxSymbolBytes = 10
	MaxURIBytes    = 200
)

// Config is the single authorization record of one issued asset.
// It is created once at initialization and mutated only through the
// pause, role-update, and authority-transfer transitions.
type Config struct {
	Address         addressing.Address     `json:"address"`
	MasterAuthority valueobjects.Principal `json:"master_authority"`
	AssetRef        string                 `json:"asset_ref"`
	Name            string                 `json:"name"`
	Symbol          string                 `json:"symbol"`
	URI             string                 `json:"uri"`
	Decimals        uint8                  `json:"decimals"`
	Paused          bool                   `json:"paused"`

	// Module flags are fixed at initialization.
	PermanentDelegateEnabled bool `json:"permanent_delegate_enabled"`
	TransferHookEnabled      bool `json:"transfer_hook_enabled"`
	DefaultAccountFrozen     bool `json:"default_account_frozen"`

	Blacklister valueobjects.Principal `json:"blacklister"`
	Pauser      valueobjects.Principal `json:"pauser"`
	Seizer      valueobjects.Principal `json:"seizer"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
