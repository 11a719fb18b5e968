package commands

import (
	"strings"
	"time"

	domainerrors "stablecoin/contexts/token-core/transfer-hook-service/domain/errors"
	"stablecoin/contexts/token-core/transfer-hook-service/ports"
	"stablecoin/internal/shared/addressing"
)

// checkPrincipal rejects empty principals and derived addresses, which are
// program-owned and can never sign.
func checkPrincipal(v string) (string, error) {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return "", domainerrors.ErrInvalidPrincipal
	}
	if addressing.Address(trimmed).Valid() {
		return "", domainerrors.ErrInvalidPrincipal
	}
	return trimmed, nil
}

func resolveNow(clock ports.Clock) time.Time {
	if clock != nil {
		return clock.Now().UTC()
	}
	return time.Now().UTC()
}
