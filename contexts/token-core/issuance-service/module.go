package issuance

import (
	"log/slog"

	httpadapter "stablecoin/contexts/token-core/issuance-service/adapters/http"
	"stablecoin/contexts/token-core/issuance-service/adapters/memory"
	"stablecoin/contexts/token-core/issuance-service/application/commands"
	"stablecoin/contexts/token-core/issuance-service/application/queries"
	"stablecoin/contexts/token-core/issuance-service/ports"
)

// Module is the issuance-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Store       ports.EntityStore
	Ledger      ports.Ledger
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// NewModule wires issuance use-cases and the transport handler using
// explicit ports.
func NewModule(deps Dependencies) Module {
	handler := httpadapter.Handler{
		InitializeToken: commands.InitializeTokenUseCase{
			Store:       deps.Store,
			Ledger:      deps.Ledger,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
		Mint: commands.MintUseCase{
			Store:       deps.Store,
			Ledger:      deps.Ledger,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
		Burn: commands.BurnUseCase{
			Store:  deps.Store,
			Ledger: deps.Ledger,
			Logger: deps.Logger,
		},
		FreezeAccount: commands.FreezeAccountUseCase{
			Store:  deps.Store,
			Ledger: deps.Ledger,
			Logger: deps.Logger,
		},
		Pause: commands.PauseUseCase{
			Store:       deps.Store,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
		AddMinter: commands.AddMinterUseCase{
			Store:       deps.Store,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
		UpdateMinterQuota: commands.UpdateMinterQuotaUseCase{
			Store:       deps.Store,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
		RemoveMinter: commands.RemoveMinterUseCase{
			Store:       deps.Store,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
		UpdateRoles: commands.UpdateRolesUseCase{
			Store:       deps.Store,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
		TransferAuthority: commands.TransferAuthorityUseCase{
			Store:       deps.Store,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
		AddToBlacklist: commands.AddToBlacklistUseCase{
			Store:       deps.Store,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
		RemoveBlacklist: commands.RemoveFromBlacklistUseCase{
			Store:       deps.Store,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
		Seize: commands.SeizeUseCase{
			Store:       deps.Store,
			Ledger:      deps.Ledger,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},

		GetConfig:     queries.GetConfigUseCase{Store: deps.Store},
		GetMinter:     queries.GetMinterUseCase{Store: deps.Store},
		ListMinters:   queries.ListMintersUseCase{Store: deps.Store},
		ListBlacklist: queries.ListBlacklistUseCase{Store: deps.Store},

		Logger: deps.Logger,
	}

	return Module{
		Handler: handler,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters. The caller supplies the ledger so the transfer hook can share it.
func NewInMemoryModule(ledger ports.Ledger, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Store:       store,
		Ledger:      ledger,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
