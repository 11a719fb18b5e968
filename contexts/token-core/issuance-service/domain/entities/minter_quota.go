package entities

import (
	"time"

	"stablecoin/contexts/token-core/issuance-service/domain/valueobjects"
	"stablecoin/internal/shared/addressing"
)

// MinterQuota grants one principal a ceiling on cumulative issuance.
// Invariant: Minted <= Quota at all times; Minted only grows through mint.
type MinterQuota struct {
	Address       addressing.Address     `json:"address"`
	ConfigAddress addressing.Address     `json:"config_address"`
	Authority     valueobjects.Principal `json:"authority"`
	Quota         uint64                 `json:"quota"`
	Minted        uint64                 `json:"minted"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// Headroom is the remaining mintable amount.
func (m MinterQuota) Headroom() uint64 {
	if m.Minted >= m.Quota {
		return 0
	}
	return m.Quota - m.Minted
}

// CanMint checks amount against headroom without unsigned wraparound.
func (m MinterQuota) CanMint(amount uint64) bool {
	return amount <= m.Headroom()
}
