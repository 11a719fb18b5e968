package commands

import (
	"context"
	"log/slog"

	application "stablecoin/contexts/token-core/issuance-service/application"
	"stablecoin/contexts/token-core/issuance-service/domain/entities"
	domainerrors "stablecoin/contexts/token-core/issuance-service/domain/errors"
	"stablecoin/contexts/token-core/issuance-service/domain/valueobjects"
	"stablecoin/contexts/token-core/issuance-service/ports"
	"stablecoin/internal/shared/addressing"
)

// MintCommand contains transport-agnostic input for quota-checked issuance.
type MintCommand struct {
	AssetRef      string
	ConfigAddress addressing.Address
	MinterAddress addressing.Address
	Minter        string
	Recipient     string
	Amount        uint64
}

// MintResult reports the advanced quota state.
type MintResult struct {
	Minter entities.MinterQuota `json:"minter"`
}

// MintUseCase issues supply to a recipient under the caller's quota.
// The quota advance and the ledger-side supply increase commit together;
// a ledger failure leaves the quota untouched.
//
// Reads: Config. Writes: MinterQuota, ledger supply.
type MintUseCase struct {
	Store       ports.EntityStore
	Ledger      ports.Ledger
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u MintUseCase) Execute(ctx context.Context, cmd MintCommand) (MintResult, error) {
	logger := application.ResolveLogger(u.Logger)

	minter, err := valueobjects.NewPrincipal(cmd.Minter)
	if err != nil {
		return MintResult{}, domainerrors.ErrUnauthorized
	}
	if cmd.Amount == 0 {
		return MintResult{}, domainerrors.ErrInvalidAmount
	}
	if cmd.Recipient == "" {
		return MintResult{}, domainerrors.ErrInvalidPrincipal
	}

	cfg, err := resolveConfig(ctx, u.Store, cmd.AssetRef, cmd.ConfigAddress)
	if err != nil {
		return MintResult{}, err
	}
	if cfg.Paused {
		return MintResult{}, domainerrors.ErrTokenPaused
	}

	expected, _ := addressing.ForMinter(cfg.Address, minter.String())
	minterAddr, err := deriveChecked(expected, cmd.MinterAddress)
	if err != nil {
		return MintResult{}, err
	}

	quota, err := u.Store.GetMinter(ctx, minterAddr)
	if err != nil {
		// Minting rights are granted by record existence; no record, no mint.
		return MintResult{}, domainerrors.ErrUnauthorized
	}
	if quota.Authority != minter {
		return MintResult{}, domainerrors.ErrUnauthorized
	}
	if quota.ConfigAddress != cfg.Address {
		return MintResult{}, domainerrors.ErrAddressMismatch
	}
	if !quota.CanMint(cmd.Amount) {
		return MintResult{}, domainerrors.ErrQuotaExceeded
	}

	now := resolveNow(u.Clock)
	outboxID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return MintResult{}, err
	}
	audit, err := newAudit(outboxID, "token.minted", "minter_quota", minterAddr.String(), now, map[string]any{
		"asset_ref": cmd.AssetRef,
		"minter":    minter.String(),
		"recipient": cmd.Recipient,
		"amount":    cmd.Amount,
	})
	if err != nil {
		return MintResult{}, err
	}

	updated, err := u.Store.ApplyMint(ctx, ports.ApplyMintInput{
		Address:   minterAddr,
		Amount:    cmd.Amount,
		Recipient: cmd.Recipient,
		MintedAt:  now,
		Audit:     audit,
	}, func(ctx context.Context) error {
		return u.Ledger.MintSupply(ctx, cmd.AssetRef, cmd.Recipient, cmd.Amount)
	})
	if err != nil {
		logger.Error("mint failed",
			"event", "token_mint_failed",
			"module", "token-core/issuance-service",
			"layer", "application",
			"asset_ref", cmd.AssetRef,
			"minter", minter.String(),
			"amount", cmd.Amount,
			"error", err.Error(),
		)
		return MintResult{}, err
	}

	logger.Info("tokens minted",
		"event", "token_minted",
		"module", "token-core/issuance-service",
		"layer", "application",
		"asset_ref", cmd.AssetRef,
		"minter", minter.String(),
		"recipient", cmd.Recipient,
		"amount", cmd.Amount,
		"minted_total", updated.Minted,
	)
	return MintResult{Minter: updated}, nil
}
