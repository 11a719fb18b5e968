package httptransport

import "time"

// InitializeHookRequest registers the transfer guard for one asset.
type InitializeHookRequest struct {
	AssetRef string `json:"asset_ref"`
}

// HookConfigDTO describes one guard registration.
type HookConfigDTO struct {
	Address              string    `json:"address"`
	AssetRef             string    `json:"asset_ref"`
	ControllingConfigRef string    `json:"controlling_config_ref"`
	Authority            string    `json:"authority"`
	Paused               bool      `json:"paused"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

type InitializeHookResponse struct {
	Hook HookConfigDTO `json:"hook"`
}

// UpdateHookAuthorityRequest hands the hook authority to a new principal.
type UpdateHookAuthorityRequest struct {
	NewAuthority string `json:"new_authority"`
}

type UpdateHookAuthorityResponse struct {
	Hook HookConfigDTO `json:"hook"`
}

// ValidateTransferRequest describes one transfer awaiting approval.
type ValidateTransferRequest struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
}

// ValidateTransferResponse reports the decision for an approved transfer.
// Rejections surface as transport errors with the rejection reason.
type ValidateTransferResponse struct {
	Allowed bool `json:"allowed"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
