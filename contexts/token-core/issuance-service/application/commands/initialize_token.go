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

// InitializeTokenCommand contains transport-agnostic input for asset setup.
type InitializeTokenCommand struct {
	AssetRef                string
	Name                    string
	Symbol                  string
	URI                     string
	Decimals                uint8
	EnablePermanentDelegate bool
	EnableTransferHook      bool
	DefaultAccountFrozen    bool
	Authority               string
	ConfigAddress           addressing.Address
}

// InitializeTokenResult returns the created config and its derivation proof.
type InitializeTokenResult struct {
	Config entities.Config  `json:"config"`
	Proof  addressing.Proof `json:"proof"`
}

// InitializeTokenUseCase creates the asset on the ledger runtime and its
// Config record in one operation. All roles default to the initializing
// authority.
//
// Reads: none. Writes: Config.
type InitializeTokenUseCase struct {
	Store       ports.EntityStore
	Ledger      ports.Ledger
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u InitializeTokenUseCase) Execute(ctx context.Context, cmd InitializeTokenCommand) (InitializeTokenResult, error) {
	logger := application.ResolveLogger(u.Logger)

	authority, err := valueobjects.NewPrincipal(cmd.Authority)
	if err != nil {
		return InitializeTokenResult{}, domainerrors.ErrInvalidPrincipal
	}
	if len(cmd.Name) > entities.MaxNameBytes ||
		len(cmd.Symbol) > entities.MaxSymbolBytes ||
		len(cmd.URI) > entities.MaxURIBytes {
		return InitializeTokenResult{}, domainerrors.ErrStringTooLong
	}
	if cmd.AssetRef == "" {
		return InitializeTokenResult{}, domainerrors.ErrNotFound
	}

	expected, proof := addressing.ForConfig(cmd.AssetRef)
	configAddr, err := deriveChecked(expected, cmd.ConfigAddress)
	if err != nil {
		return InitializeTokenResult{}, err
	}

	exists, err := u.Store.Exists(ctx, configAddr)
	if err != nil {
		return InitializeTokenResult{}, err
	}
	if exists {
		return InitializeTokenResult{}, domainerrors.ErrAlreadyExists
	}

	now := resolveNow(u.Clock)
	cfg := entities.Config{
		Address:                  configAddr,
		MasterAuthority:          authority,
		AssetRef:                 cmd.AssetRef,
		Name:                     cmd.Name,
		Symbol:                   cmd.Symbol,
		URI:                      cmd.URI,
		Decimals:                 cmd.Decimals,
		Paused:                   false,
		PermanentDelegateEnabled: cmd.EnablePermanentDelegate,
		TransferHookEnabled:      cmd.EnableTransferHook,
		DefaultAccountFrozen:     cmd.DefaultAccountFrozen,
		Blacklister:              authority,
		Pauser:                   authority,
		Seizer:                   authority,
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	outboxID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return InitializeTokenResult{}, err
	}
	audit, err := newAudit(outboxID, "token.initialized", "config", configAddr.String(), now, map[string]any{
		"asset_ref": cmd.AssetRef,
		"symbol":    cmd.Symbol,
		"decimals":  cmd.Decimals,
		"authority": authority.String(),
	})
	if err != nil {
		return InitializeTokenResult{}, err
	}

	// The ledger-side asset registration runs inside the store mutation so
	// a failed config write cannot leave the asset registered.
	createAsset := func(ctx context.Context) error {
		return u.Ledger.CreateAsset(
			ctx,
			cmd.AssetRef,
			cmd.Decimals,
			cmd.EnablePermanentDelegate,
			cmd.EnableTransferHook,
			cmd.DefaultAccountFrozen,
		)
	}
	if err := u.Store.CreateConfig(ctx, ports.CreateConfigInput{Config: cfg, Audit: audit}, createAsset); err != nil {
		logger.Error("initialize token write failed",
			"event", "token_initialize_write_failed",
			"module", "token-core/issuance-service",
			"layer", "application",
			"asset_ref", cmd.AssetRef,
			"error", err.Error(),
		)
		return InitializeTokenResult{}, err
	}

	logger.Info("token initialized",
		"event", "token_initialized",
		"module", "token-core/issuance-service",
		"layer", "application",
		"asset_ref", cmd.AssetRef,
		"config_address", configAddr.String(),
		"symbol", cmd.Symbol,
	)
	return InitializeTokenResult{Config: cfg, Proof: proof}, nil
}
