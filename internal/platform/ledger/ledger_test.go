package ledger

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"
)

type stubValidator struct {
	err   error
	calls int
}

func (v *stubValidator) ValidateTransfer(context.Context, string, string, string, uint64) error {
	v.calls++
	return v.err
}

// gateValidator parks validation until released, exposing the window in
// which the transfer is mid-flight.
type gateValidator struct {
	entered chan struct{}
	release chan struct{}
	err     error
}

func newGateValidator() *gateValidator {
	return &gateValidator{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (v *gateValidator) ValidateTransfer(context.Context, string, string, string, uint64) error {
	close(v.entered)
	<-v.release
	return v.err
}

func TestTransferConsultsValidatorBeforeMoving(t *testing.T) {
	l := NewInMemory(nil)
	ctx := context.Background()
	if err := l.CreateAsset(ctx, "asset-usd", 6, false, true, false); err != nil {
		t.Fatalf("create asset: %v", err)
	}
	if err := l.MintSupply(ctx, "asset-usd", "alice", 100); err != nil {
		t.Fatalf("mint: %v", err)
	}

	rejection := errors.New("sender blacklisted")
	validator := &stubValidator{err: rejection}
	l.SetTransferValidator(validator)

	err := l.Transfer(ctx, "asset-usd", "alice", "bob", 40)
	if !errors.Is(err, rejection) {
		t.Fatalf("expected validator rejection, got %v", err)
	}
	if validator.calls != 1 {
		t.Fatalf("expected exactly one validator call, got %d", validator.calls)
	}
	if got := l.Balance("asset-usd", "alice"); got != 100 {
		t.Fatalf("rejected transfer must not move funds, sender has %d", got)
	}
	if got := l.Balance("asset-usd", "bob"); got != 0 {
		t.Fatalf("rejected transfer must not move funds, recipient has %d", got)
	}

	validator.err = nil
	if err := l.Transfer(ctx, "asset-usd", "alice", "bob", 40); err != nil {
		t.Fatalf("approved transfer: %v", err)
	}
	if got := l.Balance("asset-usd", "bob"); got != 40 {
		t.Fatalf("expected recipient balance 40, got %d", got)
	}
}

func TestHookAssetWithoutValidatorFailsClosed(t *testing.T) {
	l := NewInMemory(nil)
	ctx := context.Background()
	if err := l.CreateAsset(ctx, "asset-usd", 6, false, true, false); err != nil {
		t.Fatalf("create asset: %v", err)
	}
	if err := l.MintSupply(ctx, "asset-usd", "alice", 10); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := l.Transfer(ctx, "asset-usd", "alice", "bob", 5); err == nil {
		t.Fatalf("hook-enabled asset without a validator must reject transfers")
	}
}

// The issuance store calls into the ledger while holding its own lock, so
// the ledger must never hold its mutex while calling out to the validator;
// otherwise a concurrent mint and transfer wedge each other.
func TestMintProceedsWhileTransferValidationInFlight(t *testing.T) {
	l := NewInMemory(nil)
	ctx := context.Background()
	if err := l.CreateAsset(ctx, "asset-usd", 6, false, true, false); err != nil {
		t.Fatalf("create asset: %v", err)
	}
	if err := l.MintSupply(ctx, "asset-usd", "carol", 500); err != nil {
		t.Fatalf("mint: %v", err)
	}
	gate := newGateValidator()
	l.SetTransferValidator(gate)

	transferDone := make(chan error, 1)
	go func() {
		transferDone <- l.Transfer(ctx, "asset-usd", "carol", "dave", 100)
	}()
	<-gate.entered

	mintDone := make(chan error, 1)
	go func() {
		mintDone <- l.MintSupply(ctx, "asset-usd", "erin", 50)
	}()
	select {
	case err := <-mintDone:
		if err != nil {
			t.Fatalf("mint during validation: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("mint blocked while transfer validation was in flight")
	}

	close(gate.release)
	if err := <-transferDone; err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if got := l.Balance("asset-usd", "dave"); got != 100 {
		t.Fatalf("expected dave balance 100, got %d", got)
	}
}

func TestTransferRechecksBalanceAfterValidation(t *testing.T) {
	l := NewInMemory(nil)
	ctx := context.Background()
	if err := l.CreateAsset(ctx, "asset-usd", 6, true, true, false); err != nil {
		t.Fatalf("create asset: %v", err)
	}
	if err := l.MintSupply(ctx, "asset-usd", "carol", 100); err != nil {
		t.Fatalf("mint: %v", err)
	}
	gate := newGateValidator()
	l.SetTransferValidator(gate)

	transferDone := make(chan error, 1)
	go func() {
		transferDone <- l.Transfer(ctx, "asset-usd", "carol", "dave", 100)
	}()
	<-gate.entered

	// Drain the sender while the transfer is parked in validation.
	if err := l.ForceTransfer(ctx, "asset-usd", "carol", "treasury", 100); err != nil {
		t.Fatalf("force transfer: %v", err)
	}
	close(gate.release)

	if err := <-transferDone; !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds after the balance drained, got %v", err)
	}
	if got := l.Balance("asset-usd", "dave"); got != 0 {
		t.Fatalf("failed transfer must not credit the recipient, got %d", got)
	}
}

func TestMintSupplyRejectsOverflow(t *testing.T) {
	l := NewInMemory(nil)
	ctx := context.Background()
	if err := l.CreateAsset(ctx, "asset-usd", 6, false, false, false); err != nil {
		t.Fatalf("create asset: %v", err)
	}
	if err := l.MintSupply(ctx, "asset-usd", "carol", math.MaxUint64); err != nil {
		t.Fatalf("mint to ceiling: %v", err)
	}
	if err := l.MintSupply(ctx, "asset-usd", "dave", 1); !errors.Is(err, ErrSupplyOverflow) {
		t.Fatalf("expected ErrSupplyOverflow, got %v", err)
	}
	if got := l.Supply("asset-usd"); got != math.MaxUint64 {
		t.Fatalf("rejected mint must not change supply, got %d", got)
	}
	if got := l.Balance("asset-usd", "dave"); got != 0 {
		t.Fatalf("rejected mint must not credit the recipient, got %d", got)
	}
}

func TestDefaultFrozenAccountsNeedThaw(t *testing.T) {
	l := NewInMemory(nil)
	ctx := context.Background()
	if err := l.CreateAsset(ctx, "asset-usd", 6, false, false, true); err != nil {
		t.Fatalf("create asset: %v", err)
	}

	err := l.MintSupply(ctx, "asset-usd", "alice", 100)
	if !errors.Is(err, ErrAccountFrozen) {
		t.Fatalf("expected ErrAccountFrozen minting to a default-frozen account, got %v", err)
	}
	if err := l.Thaw(ctx, "asset-usd", "alice"); err != nil {
		t.Fatalf("thaw: %v", err)
	}
	if err := l.MintSupply(ctx, "asset-usd", "alice", 100); err != nil {
		t.Fatalf("mint after thaw: %v", err)
	}
}

func TestForceTransferBypassesFreezeButNotBalance(t *testing.T) {
	l := NewInMemory(nil)
	ctx := context.Background()
	if err := l.CreateAsset(ctx, "asset-usd", 6, true, false, false); err != nil {
		t.Fatalf("create asset: %v", err)
	}
	if err := l.MintSupply(ctx, "asset-usd", "mallory", 100); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := l.Freeze(ctx, "asset-usd", "mallory"); err != nil {
		t.Fatalf("freeze: %v", err)
	}

	if err := l.Transfer(ctx, "asset-usd", "mallory", "bob", 10); !errors.Is(err, ErrAccountFrozen) {
		t.Fatalf("expected ErrAccountFrozen on normal transfer, got %v", err)
	}
	if err := l.ForceTransfer(ctx, "asset-usd", "mallory", "treasury", 150); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if err := l.ForceTransfer(ctx, "asset-usd", "mallory", "treasury", 60); err != nil {
		t.Fatalf("force transfer from frozen account: %v", err)
	}
	if got := l.Balance("asset-usd", "treasury"); got != 60 {
		t.Fatalf("expected treasury balance 60, got %d", got)
	}
}

func TestBurnRequiresSufficientBalance(t *testing.T) {
	l := NewInMemory(nil)
	ctx := context.Background()
	if err := l.CreateAsset(ctx, "asset-usd", 6, false, false, false); err != nil {
		t.Fatalf("create asset: %v", err)
	}
	if err := l.MintSupply(ctx, "asset-usd", "alice", 50); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := l.BurnSupply(ctx, "asset-usd", "alice", 80); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if err := l.BurnSupply(ctx, "asset-usd", "alice", 50); err != nil {
		t.Fatalf("burn: %v", err)
	}
	if got := l.Supply("asset-usd"); got != 0 {
		t.Fatalf("expected zero supply, got %d", got)
	}
}
