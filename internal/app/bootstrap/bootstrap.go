package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	issuance "stablecoin/contexts/token-core/issuance-service"
	eventsadapter "stablecoin/contexts/token-core/issuance-service/adapters/events"
	issuancepostgres "stablecoin/contexts/token-core/issuance-service/adapters/postgres"
	workerapp "stablecoin/contexts/token-core/issuance-service/application/workers"
	issuanceports "stablecoin/contexts/token-core/issuance-service/ports"
	transferhook "stablecoin/contexts/token-core/transfer-hook-service"
	hookmemory "stablecoin/contexts/token-core/transfer-hook-service/adapters/memory"
	hookpostgres "stablecoin/contexts/token-core/transfer-hook-service/adapters/postgres"
	"stablecoin/internal/platform/config"
	"stablecoin/internal/platform/db"
	"stablecoin/internal/platform/httpserver"
	"stablecoin/internal/platform/ledger"
	"stablecoin/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	auditRelay   workerapp.AuditRelay
	enabled      bool
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	ledgerRuntime := ledger.NewInMemory(logger)

	var (
		store    issuanceports.EntityStore
		clock    issuanceports.Clock
		idGen    issuanceports.IDGenerator
		postgres *db.Postgres
	)
	if cfg.EnableInMemoryState || strings.TrimSpace(cfg.PostgresDSN) == "" {
		module := issuance.NewInMemoryModule(ledgerRuntime, logger)
		hookModule := buildHookModule(module.Store, logger)
		ledgerRuntime.SetTransferValidator(hookModule.Validator)

		server := httpserver.New(module, hookModule, ledgerRuntime, logger, normalizeAddr(cfg.HTTPPort))
		return &APIApp{
			server: server,
			logger: logger,
		}, nil
	}

	postgres, err = db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	store = issuancepostgres.NewRepository(postgres.DB, logger)
	clock = issuancepostgres.SystemClock{}
	idGen = issuancepostgres.UUIDGenerator{}

	tokenModule := issuance.NewModule(issuance.Dependencies{
		Store:       store,
		Ledger:      ledgerRuntime,
		Clock:       clock,
		IDGenerator: idGen,
		Logger:      logger,
	})
	hookModule := transferhook.NewModule(transferhook.Dependencies{
		Store:  hookpostgres.NewRepository(postgres.DB, logger),
		Reader: store,
		Clock:  issuancepostgres.SystemClock{},
		Logger: logger,
	})
	ledgerRuntime.SetTransferValidator(hookModule.Validator)

	server := httpserver.New(tokenModule, hookModule, ledgerRuntime, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: postgres,
		logger:   logger,
	}, nil
}

// buildHookModule wires the transfer guard over the in-memory hook store
// for the development shape; the guard reads issuance state through the
// issuance store either way.
func buildHookModule(reader issuanceports.EntityStore, logger *slog.Logger) transferhook.Module {
	store := hookmemory.NewStore()
	module := transferhook.NewModule(transferhook.Dependencies{
		Store:  store,
		Reader: reader,
		Clock:  store,
		Logger: logger,
	})
	module.Store = store
	return module
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	postgres, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	repo := issuancepostgres.NewRepository(postgres.DB, logger)
	return &WorkerApp{
		postgres: postgres,
		auditRelay: workerapp.AuditRelay{
			Outbox:    repo,
			Publisher: eventsadapter.NewPublisher(kafka, logger),
			Clock:     issuancepostgres.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		enabled:      cfg.EnableAuditRelay,
		pollInterval: 2 * time.Second,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if !w.enabled {
		w.logger.Info("audit relay disabled",
			"event", "bootstrap_audit_relay_disabled",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.auditRelay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
