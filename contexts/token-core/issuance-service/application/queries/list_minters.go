package queries

import (
	"context"
	"strings"

	"stablecoin/contexts/token-core/issuance-service/domain/entities"
	domainerrors "stablecoin/contexts/token-core/issuance-service/domain/errors"
	"stablecoin/contexts/token-core/issuance-service/ports"
	"stablecoin/internal/shared/addressing"
)

// ListMintersQuery enumerates all minters of one asset.
type ListMintersQuery struct {
	AssetRef string
}

// ListMintersResult carries the records ordered by the store.
type ListMintersResult struct {
	Minters []entities.MinterQuota `json:"minters"`
}

// ListMintersUseCase lists MinterQuota records for an asset's config.
type ListMintersUseCase struct {
	Store ports.EntityStore
}

func (u ListMintersUseCase) Execute(ctx context.Context, q ListMintersQuery) (ListMintersResult, error) {
	if strings.TrimSpace(q.AssetRef) == "" {
		return ListMintersResult{}, domainerrors.ErrNotFound
	}
	configAddr, _ := addressing.ForConfig(q.AssetRef)
	if _, err := u.Store.GetConfig(ctx, configAddr); err != nil {
		return ListMintersResult{}, err
	}
	minters, err := u.Store.ListMinters(ctx, configAddr)
	if err != nil {
		return ListMintersResult{}, err
	}
	return ListMintersResult{Minters: minters}, nil
}
