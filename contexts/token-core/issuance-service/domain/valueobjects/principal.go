package valueobjects

import (
	"errors"
	"strings"

	"stablecoin/internal/shared/addressing"
)

// Principal is an externally controlled identity able to prove intent by
// signing an operation. Transport authentication verifies the signature;
// the domain only compares identities.
type Principal string

func NewPrincipal(v string) (Principal, error) {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return "", errors.New("principal is required")
	}
	// Derived record addresses are program-owned and can never sign, so
	// they are rejected at the domain boundary.
	if addressing.Address(trimmed).Valid() {
		return "", errors.New("derived address cannot act as principal")
	}
	return Principal(trimmed), nil
}

func (p Principal) String() string { return string(p) }

func (p Principal) IsZero() bool { return p == "" }
