package transferhook

import (
	"context"
	"log/slog"

	httpadapter "stablecoin/contexts/token-core/transfer-hook-service/adapters/http"
	"stablecoin/contexts/token-core/transfer-hook-service/adapters/memory"
	"stablecoin/contexts/token-core/transfer-hook-service/application/commands"
	"stablecoin/contexts/token-core/transfer-hook-service/application/queries"
	"stablecoin/contexts/token-core/transfer-hook-service/ports"
)

// Module is the transfer-hook-service composition root exposed to runtime
// wiring.
type Module struct {
	Handler   httpadapter.Handler
	Validator Validator
	Store     *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Store  ports.HookStore
	Reader ports.EntityReader
	Clock  ports.Clock
	Logger *slog.Logger
}

// Validator adapts the validate-transfer query to the ledger runtime's
// transfer validator callback.
type Validator struct {
	validate queries.ValidateTransferUseCase
}

func (v Validator) ValidateTransfer(ctx context.Context, asset string, sender string, recipient string, amount uint64) error {
	return v.validate.Execute(ctx, queries.ValidateTransferQuery{
		AssetRef:  asset,
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
	})
}

// NewModule wires hook use-cases, the transport handler, and the ledger
// validator using explicit ports.
func NewModule(deps Dependencies) Module {
	validate := queries.ValidateTransferUseCase{
		Store:  deps.Store,
		Reader: deps.Reader,
		Logger: deps.Logger,
	}

	handler := httpadapter.Handler{
		InitializeHook: commands.InitializeHookUseCase{
			Store:  deps.Store,
			Clock:  deps.Clock,
			Logger: deps.Logger,
		},
		PauseHook: commands.PauseHookUseCase{
			Store:  deps.Store,
			Clock:  deps.Clock,
			Logger: deps.Logger,
		},
		UpdateHookAuthority: commands.UpdateHookAuthorityUseCase{
			Store:  deps.Store,
			Clock:  deps.Clock,
			Logger: deps.Logger,
		},
		ValidateTransfer: validate,
		Logger:           deps.Logger,
	}

	return Module{
		Handler:   handler,
		Validator: Validator{validate: validate},
	}
}

// NewInMemoryModule builds a development/testing module with the in-memory
// hook store. The reader is the issuance-side record space.
func NewInMemoryModule(reader ports.EntityReader, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Store:  store,
		Reader: reader,
		Clock:  store,
		Logger: logger,
	})
	module.Store = store
	return module
}
