package queries

import (
	"context"
	"strings"

	"stablecoin/contexts/token-core/issuance-service/domain/entities"
	domainerrors "stablecoin/contexts/token-core/issuance-service/domain/errors"
	"stablecoin/contexts/token-core/issuance-service/ports"
	"stablecoin/internal/shared/addressing"
)

// GetConfigQuery fetches the Config for one asset.
type GetConfigQuery struct {
	AssetRef string
}

// GetConfigResult carries the record plus the derivation proof so callers
// can verify the address themselves.
type GetConfigResult struct {
	Config entities.Config  `json:"config"`
	Proof  addressing.Proof `json:"proof"`
}

// GetConfigUseCase reads the Config record by derived address.
type GetConfigUseCase struct {
	Store ports.EntityStore
}

func (u GetConfigUseCase) Execute(ctx context.Context, q GetConfigQuery) (GetConfigResult, error) {
	if strings.TrimSpace(q.AssetRef) == "" {
		return GetConfigResult{}, domainerrors.ErrNotFound
	}
	address, proof := addressing.ForConfig(q.AssetRef)
	cfg, err := u.Store.GetConfig(ctx, address)
	if err != nil {
		return GetConfigResult{}, err
	}
	return GetConfigResult{Config: cfg, Proof: proof}, nil
}
