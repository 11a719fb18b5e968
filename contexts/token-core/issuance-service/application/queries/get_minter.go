package queries

import (
	"context"
	"strings"

	"stablecoin/contexts/token-core/issuance-service/domain/entities"
	domainerrors "stablecoin/contexts/token-core/issuance-service/domain/errors"
	"stablecoin/contexts/token-core/issuance-service/domain/valueobjects"
	"stablecoin/contexts/token-core/issuance-service/ports"
	"stablecoin/internal/shared/addressing"
)

// GetMinterQuery fetches one minter's quota record.
type GetMinterQuery struct {
	AssetRef string
	Minter   string
}

// GetMinterResult carries the record plus its remaining headroom.
type GetMinterResult struct {
	Minter   entities.MinterQuota `json:"minter"`
	Headroom uint64               `json:"headroom"`
}

// GetMinterUseCase reads a MinterQuota record by derived address.
type GetMinterUseCase struct {
	Store ports.EntityStore
}

func (u GetMinterUseCase) Execute(ctx context.Context, q GetMinterQuery) (GetMinterResult, error) {
	if strings.TrimSpace(q.AssetRef) == "" {
		return GetMinterResult{}, domainerrors.ErrNotFound
	}
	minter, err := valueobjects.NewPrincipal(q.Minter)
	if err != nil {
		return GetMinterResult{}, domainerrors.ErrInvalidPrincipal
	}
	configAddr, _ := addressing.ForConfig(q.AssetRef)
	address, _ := addressing.ForMinter(configAddr, minter.String())
	record, err := u.Store.GetMinter(ctx, address)
	if err != nil {
		return GetMinterResult{}, err
	}
	return GetMinterResult{Minter: record, Headroom: record.Headroom()}, nil
}
