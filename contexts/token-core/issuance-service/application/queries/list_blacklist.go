package queries

import (
	"context"
	"strings"

	"stablecoin/contexts/token-core/issuance-service/domain/entities"
	domainerrors "stablecoin/contexts/token-core/issuance-service/domain/errors"
	"stablecoin/contexts/token-core/issuance-service/ports"
	"stablecoin/internal/shared/addressing"
)

// ListBlacklistQuery enumerates the compliance registry of one asset.
type ListBlacklistQuery struct {
	AssetRef string
}

// ListBlacklistResult carries the entries ordered by the store.
type ListBlacklistResult struct {
	Entries []entities.BlacklistEntry `json:"entries"`
}

// ListBlacklistUseCase lists BlacklistEntry records for an asset's config.
type ListBlacklistUseCase struct {
	Store ports.EntityStore
}

func (u ListBlacklistUseCase) Execute(ctx context.Context, q ListBlacklistQuery) (ListBlacklistResult, error) {
	if strings.TrimSpace(q.AssetRef) == "" {
		return ListBlacklistResult{}, domainerrors.ErrNotFound
	}
	configAddr, _ := addressing.ForConfig(q.AssetRef)
	if _, err := u.Store.GetConfig(ctx, configAddr); err != nil {
		return ListBlacklistResult{}, err
	}
	entries, err := u.Store.ListBlacklist(ctx, configAddr)
	if err != nil {
		return ListBlacklistResult{}, err
	}
	return ListBlacklistResult{Entries: entries}, nil
}
