package httptransport

import "time"

// InitializeTokenRequest is the request body for asset initialization.
type InitializeTokenRequest struct {
	AssetRef                 string `json:"asset_ref"`
	Name                     string `json:"name"`
	Symbol                   string `json:"symbol"`
	URI                      string `json:"uri,omitempty"`
	Decimals                 uint8  `json:"decimals"`
	PermanentDelegateEnabled bool   `json:"permanent_delegate_enabled"`
	TransferHookEnabled      bool   `json:"transfer_hook_enabled"`
	DefaultAccountFrozen     bool   `json:"default_account_frozen"`
}

// ConfigDTO describes the authorization record of one asset.
type ConfigDTO struct {
	Address                  string    `json:"address"`
	AssetRef                 string    `json:"asset_ref"`
	MasterAuthority          string    `json:"master_authority"`
	Name                     string    `json:"name"`
	Symbol                   string    `json:"symbol"`
	URI                      string    `json:"uri,omitempty"`
	Decimals                 uint8     `json:"decimals"`
	Paused                   bool      `json:"paused"`
	PermanentDelegateEnabled bool      `json:"permanent_delegate_enabled"`
	TransferHookEnabled      bool      `json:"transfer_hook_enabled"`
	DefaultAccountFrozen     bool      `json:"default_account_frozen"`
	Blacklister              string    `json:"blacklister"`
	Pauser                   string    `json:"pauser"`
	Seizer                   string    `json:"seizer"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
}

type InitializeTokenResponse struct {
	Config ConfigDTO `json:"config"`
}

type GetConfigResponse struct {
	Config ConfigDTO `json:"config"`
}

// MintRequest is the request body for quota-checked issuance.
type MintRequest struct {
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
}

// MinterDTO describes one minter quota record.
type MinterDTO struct {
	Address       string    `json:"address"`
	ConfigAddress string    `json:"config_address"`
	Authority     string    `json:"authority"`
	Quota         uint64    `json:"quota"`
	Minted        uint64    `json:"minted"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type MintResponse struct {
	Minter MinterDTO `json:"minter"`
}

// BurnRequest is the request body for supply destruction.
type BurnRequest struct {
	Owner  string `json:"owner"`
	Amount uint64 `json:"amount"`
}

// FreezeAccountRequest names the holder account to freeze or thaw.
type FreezeAccountRequest struct {
	Holder string `json:"holder"`
}

// AddMinterRequest is the request body for granting minting rights.
type AddMinterRequest struct {
	Minter string `json:"minter"`
	Quota  uint64 `json:"quota"`
}

type AddMinterResponse struct {
	Minter MinterDTO `json:"minter"`
}

// UpdateMinterQuotaRequest is the request body for quota changes.
type UpdateMinterQuotaRequest struct {
	NewQuota uint64 `json:"new_quota"`
}

type UpdateMinterQuotaResponse struct {
	Minter MinterDTO `json:"minter"`
}

type GetMinterResponse struct {
	Minter   MinterDTO `json:"minter"`
	Headroom uint64    `json:"headroom"`
}

type ListMintersResponse struct {
	Minters []MinterDTO `json:"minters"`
}

// UpdateRolesRequest reassigns compliance roles; omitted fields keep the
// current holder.
type UpdateRolesRequest struct {
	Blacklister *string `json:"blacklister,omitempty"`
	Pauser      *string `json:"pauser,omitempty"`
	Seizer      *string `json:"seizer,omitempty"`
}

type UpdateRolesResponse struct {
	Config ConfigDTO `json:"config"`
}

// TransferAuthorityRequest hands the master authority to a new principal.
type TransferAuthorityRequest struct {
	NewAuthority string `json:"new_authority"`
}

type TransferAuthorityResponse struct {
	Config ConfigDTO `json:"config"`
}

// AddToBlacklistRequest is the request body for compliance restriction.
type AddToBlacklistRequest struct {
	User   string `json:"user"`
	Reason string `json:"reason,omitempty"`
}

// BlacklistEntryDTO describes one compliance registry entry.
type BlacklistEntryDTO struct {
	Address       string    `json:"address"`
	ConfigAddress string    `json:"config_address"`
	User          string    `json:"user"`
	Reason        string    `json:"reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type AddToBlacklistResponse struct {
	Entry BlacklistEntryDTO `json:"entry"`
}

type ListBlacklistResponse struct {
	Entries []BlacklistEntryDTO `json:"entries"`
}

// SeizeRequest is the request body for privileged forced transfers.
type SeizeRequest struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Amount      uint64 `json:"amount"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
