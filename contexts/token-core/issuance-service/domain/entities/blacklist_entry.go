package entities

import (
	"time"

	"stablecoin/contexts/token-core/issuance-service/domain/valueobjects"
	"stablecoin/internal/shared/addressing"
)

// MaxReasonBytes bounds the stored reason so storage cost stays bounded.
const MaxReasonBytes = 100

// BlacklistEntry bars one user from transfers of the governed asset.
// Existence of the record is the flag; removal reclaims the storage.
type BlacklistEntry struct {
	Address       addressing.Address     `json:"address"`
	ConfigAddress addressing.Address     `json:"config_address"`
	User          valueobjects.Principal `json:"user"`
	Reason        string                 `json:"reason"`
	CreatedAt     time.Time              `json:"created_at"`
}
