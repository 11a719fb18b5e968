package queries

import (
	"context"
	"log/slog"

	application "stablecoin/contexts/token-core/transfer-hook-service/application"
	domainerrors "stablecoin/contexts/token-core/transfer-hook-service/domain/errors"
	"stablecoin/contexts/token-core/transfer-hook-service/ports"
	"stablecoin/internal/shared/addressing"
)

// ValidateTransferQuery describes one transfer awaiting approval.
type ValidateTransferQuery struct {
	AssetRef  string
	Sender    string
	Recipient string
	Amount    uint64
}

// ValidateTransferUseCase is the guard consulted by the ledger runtime on
// every transfer of a hook-enabled asset. It checks the hook pause, the
// controlling config's pause, and both parties against the blacklist. It is
// a pure check: approval returns nil and mutates nothing. A missing
// registration fails closed.
//
// Blacklist entry addresses are re-derived from the controlling config, the
// same derivation the issuance registry writes under, so the two services
// cannot disagree on where an entry lives.
type ValidateTransferUseCase struct {
	Store  ports.HookStore
	Reader ports.EntityReader
	Logger *slog.Logger
}

func (u ValidateTransferUseCase) Execute(ctx context.Context, q ValidateTransferQuery) error {
	logger := application.ResolveLogger(u.Logger)

	address, _ := addressing.ForTransferHook(q.AssetRef)
	hook, err := u.Store.GetHook(ctx, address)
	if err != nil {
		return domainerrors.ErrNotFound
	}
	if hook.AssetRef != q.AssetRef {
		return domainerrors.ErrAddressMismatch
	}
	if hook.Paused {
		return domainerrors.ErrTransferPaused
	}

	paused, err := u.Reader.ConfigPaused(ctx, hook.ControllingConfigRef)
	if err != nil {
		return err
	}
	if paused {
		logger.Info("transfer rejected",
			"event", "transfer_rejected",
			"module", "token-core/transfer-hook-service",
			"layer", "application",
			"asset_ref", q.AssetRef,
			"reason", "token_paused",
		)
		return domainerrors.ErrTokenPaused
	}

	senderEntry, _ := addressing.ForBlacklistEntry(hook.ControllingConfigRef, q.Sender)
	listed, err := u.Reader.Exists(ctx, senderEntry)
	if err != nil {
		return err
	}
	if listed {
		logger.Info("transfer rejected",
			"event", "transfer_rejected",
			"module", "token-core/transfer-hook-service",
			"layer", "application",
			"asset_ref", q.AssetRef,
			"reason", "sender_blacklisted",
		)
		return domainerrors.ErrSenderBlacklisted
	}

	recipientEntry, _ := addressing.ForBlacklistEntry(hook.ControllingConfigRef, q.Recipient)
	listed, err = u.Reader.Exists(ctx, recipientEntry)
	if err != nil {
		return err
	}
	if listed {
		logger.Info("transfer rejected",
			"event", "transfer_rejected",
			"module", "token-core/transfer-hook-service",
			"layer", "application",
			"asset_ref", q.AssetRef,
			"reason", "recipient_blacklisted",
		)
		return domainerrors.ErrRecipientBlacklisted
	}
	return nil
}
