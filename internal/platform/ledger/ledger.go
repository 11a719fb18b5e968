package ledger

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sync"
)

// Ledger-side failures. The control plane propagates these verbatim; it
// never reinterprets them.
var (
	ErrUnknownAsset      = errors.New("unknown asset")
	ErrAssetExists       = errors.New("asset already exists")
	ErrAccountFrozen     = errors.New("account is frozen")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrSupplyOverflow    = errors.New("supply overflow")
)

// TransferValidator is consulted synchronously on every transfer of a
// hook-enabled asset. A non-nil error aborts the transfer before any
// balance moves.
type TransferValidator interface {
	ValidateTransfer(ctx context.Context, asset string, sender string, recipient string, amount uint64) error
}

type asset struct {
	decimals          uint8
	supply            uint64
	permanentDelegate bool
	transferHook      bool
	defaultFrozen     bool
}

type account struct {
	balance uint64
	frozen  bool
}

type accountKey struct {
	asset  string
	holder string
}

// InMemory is the token ledger runtime adapter.
// Current implementation keeps balances in process while external runtime
// wiring is finalized; every operation is atomic under one lock.
type InMemory struct {
	mu        sync.Mutex
	assets    map[string]*asset
	accounts  map[accountKey]*account
	validator TransferValidator
	logger    *slog.Logger
}

func NewInMemory(logger *slog.Logger) *InMemory {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemory{
		assets:   make(map[string]*asset),
		accounts: make(map[accountKey]*account),
		logger:   logger,
	}
}

// SetTransferValidator installs the transfer-hook component. It is wired
// after construction because the hook service reads state this ledger's
// consumers create.
func (l *InMemory) SetTransferValidator(v TransferValidator) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.validator = v
}

func (l *InMemory) CreateAsset(
	_ context.Context,
	assetRef string,
	decimals uint8,
	permanentDelegate bool,
	transferHook bool,
	defaultFrozen bool,
) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.assets[assetRef]; exists {
		return ErrAssetExists
	}
	l.assets[assetRef] = &asset{
		decimals:          decimals,
		permanentDelegate: permanentDelegate,
		transferHook:      transferHook,
		defaultFrozen:     defaultFrozen,
	}
	return nil
}

func (l *InMemory) MintSupply(_ context.Context, assetRef string, recipient string, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.assets[assetRef]
	if !ok {
		return ErrUnknownAsset
	}
	if amount == 0 {
		return ErrInvalidAmount
	}
	if l.peekAccount(a, assetRef, recipient).frozen {
		return ErrAccountFrozen
	}
	if a.supply > math.MaxUint64-amount {
		return ErrSupplyOverflow
	}
	a.supply += amount
	l.resolveAccount(a, assetRef, recipient).balance += amount
	return nil
}

func (l *InMemory) BurnSupply(_ context.Context, assetRef string, owner string, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.assets[assetRef]
	if !ok {
		return ErrUnknownAsset
	}
	if amount == 0 {
		return ErrInvalidAmount
	}
	state := l.peekAccount(a, assetRef, owner)
	if state.frozen {
		return ErrAccountFrozen
	}
	if state.balance < amount {
		return ErrInsufficientFunds
	}
	l.resolveAccount(a, assetRef, owner).balance -= amount
	a.supply -= amount
	return nil
}

func (l *InMemory) Freeze(_ context.Context, assetRef string, holder string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.assets[assetRef]
	if !ok {
		return ErrUnknownAsset
	}
	l.resolveAccount(a, assetRef, holder).frozen = true
	return nil
}

func (l *InMemory) Thaw(_ context.Context, assetRef string, holder string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.assets[assetRef]
	if !ok {
		return ErrUnknownAsset
	}
	l.resolveAccount(a, assetRef, holder).frozen = false
	return nil
}

// Transfer moves balance between holders. For hook-enabled assets the
// transfer validator runs first and its rejection aborts the whole
// operation; no partial state is observable.
//
// The validator reads issuance state under that store's own locks, and the
// issuance store calls back into this ledger while holding them, so the
// validator must run with the ledger mutex released. Preconditions are
// re-checked before the balances move.
func (l *InMemory) Transfer(ctx context.Context, assetRef string, sender string, recipient string, amount uint64) error {
	l.mu.Lock()
	a, ok := l.assets[assetRef]
	if !ok {
		l.mu.Unlock()
		return ErrUnknownAsset
	}
	if amount == 0 {
		l.mu.Unlock()
		return ErrInvalidAmount
	}
	if err := l.checkTransferLocked(a, assetRef, sender, recipient, amount); err != nil {
		l.mu.Unlock()
		return err
	}
	hooked := a.transferHook
	validator := l.validator
	l.mu.Unlock()

	if hooked {
		if validator == nil {
			// Hook-enabled assets without a wired validator fail closed.
			return errors.New("transfer validator not wired")
		}
		if err := validator.ValidateTransfer(ctx, assetRef, sender, recipient, amount); err != nil {
			return err
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok = l.assets[assetRef]
	if !ok {
		return ErrUnknownAsset
	}
	if err := l.checkTransferLocked(a, assetRef, sender, recipient, amount); err != nil {
		return err
	}
	l.resolveAccount(a, assetRef, sender).balance -= amount
	l.resolveAccount(a, assetRef, recipient).balance += amount
	return nil
}

// checkTransferLocked verifies freeze flags and the sender balance. Caller
// holds the lock.
func (l *InMemory) checkTransferLocked(a *asset, assetRef string, sender string, recipient string, amount uint64) error {
	source := l.peekAccount(a, assetRef, sender)
	dest := l.peekAccount(a, assetRef, recipient)
	if source.frozen || dest.frozen {
		return ErrAccountFrozen
	}
	if source.balance < amount {
		return ErrInsufficientFunds
	}
	return nil
}

// ForceTransfer is the permanent-delegate path used by seizure. It bypasses
// owner authorization and frozen flags but never the balance check.
func (l *InMemory) ForceTransfer(_ context.Context, assetRef string, source string, dest string, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.assets[assetRef]
	if !ok {
		return ErrUnknownAsset
	}
	if amount == 0 {
		return ErrInvalidAmount
	}
	if l.peekAccount(a, assetRef, source).balance < amount {
		return ErrInsufficientFunds
	}
	l.resolveAccount(a, assetRef, source).balance -= amount
	l.resolveAccount(a, assetRef, dest).balance += amount

	l.logger.Info("forced transfer executed",
		"event", "ledger_force_transfer",
		"module", "internal/platform/ledger",
		"layer", "platform",
		"asset", assetRef,
		"source", source,
		"dest", dest,
		"amount", amount,
	)
	return nil
}

// Balance reports the current holder balance. Missing accounts read as zero.
func (l *InMemory) Balance(assetRef string, holder string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	acct, ok := l.accounts[accountKey{asset: assetRef, holder: holder}]
	if !ok {
		return 0
	}
	return acct.balance
}

// Supply reports circulating supply for an asset.
func (l *InMemory) Supply(assetRef string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.assets[assetRef]
	if !ok {
		return 0
	}
	return a.supply
}

// peekAccount reads holder state without materializing it, so precondition
// failures leave the account map untouched. Caller holds the lock.
func (l *InMemory) peekAccount(a *asset, assetRef string, holder string) account {
	if acct, ok := l.accounts[accountKey{asset: assetRef, holder: holder}]; ok {
		return *acct
	}
	return account{frozen: a.defaultFrozen}
}

// resolveAccount auto-creates holder accounts, honoring the asset's
// default-frozen module flag. Caller holds the lock.
func (l *InMemory) resolveAccount(a *asset, assetRef string, holder string) *account {
	key := accountKey{asset: assetRef, holder: holder}
	acct, ok := l.accounts[key]
	if !ok {
		acct = &account{frozen: a.defaultFrozen}
		l.accounts[key] = acct
	}
	return acct
}
