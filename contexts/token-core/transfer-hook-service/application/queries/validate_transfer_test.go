package queries

import (
	"context"
	"errors"
	"testing"

	"stablecoin/contexts/token-core/transfer-hook-service/adapters/memory"
	"stablecoin/contexts/token-core/transfer-hook-service/application/commands"
	domainerrors "stablecoin/contexts/token-core/transfer-hook-service/domain/errors"
	"stablecoin/internal/shared/addressing"
)

// fakeReader answers existence checks against a fixed set of derived
// addresses, standing in for the issuance record space.
type fakeReader struct {
	listed map[addressing.Address]bool
	paused bool
}

func (r fakeReader) Exists(_ context.Context, address addressing.Address) (bool, error) {
	return r.listed[address], nil
}

func (r fakeReader) ConfigPaused(context.Context, addressing.Address) (bool, error) {
	return r.paused, nil
}

func registerHook(t *testing.T, store *memory.Store, assetRef string) {
	t.Helper()
	uc := commands.InitializeHookUseCase{Store: store, Clock: store}
	if _, err := uc.Execute(context.Background(), commands.InitializeHookCommand{
		AssetRef:  assetRef,
		Authority: "alice",
	}); err != nil {
		t.Fatalf("initialize hook: %v", err)
	}
}

func blacklistedReader(assetRef string, users ...string) fakeReader {
	configRef, _ := addressing.ForConfig(assetRef)
	listed := make(map[addressing.Address]bool)
	for _, user := range users {
		entry, _ := addressing.ForBlacklistEntry(configRef, user)
		listed[entry] = true
	}
	return fakeReader{listed: listed}
}

func TestValidateTransferApprovesCleanParties(t *testing.T) {
	store := memory.NewStore()
	registerHook(t, store, "asset-usd")
	uc := ValidateTransferUseCase{Store: store, Reader: blacklistedReader("asset-usd")}

	err := uc.Execute(context.Background(), ValidateTransferQuery{
		AssetRef: "asset-usd", Sender: "alice", Recipient: "bob", Amount: 10,
	})
	if err != nil {
		t.Fatalf("expected approval, got %v", err)
	}
}

func TestValidateTransferRejectsBlacklistedSender(t *testing.T) {
	store := memory.NewStore()
	registerHook(t, store, "asset-usd")
	uc := ValidateTransferUseCase{Store: store, Reader: blacklistedReader("asset-usd", "mallory")}

	err := uc.Execute(context.Background(), ValidateTransferQuery{
		AssetRef: "asset-usd", Sender: "mallory", Recipient: "bob", Amount: 10,
	})
	if !errors.Is(err, domainerrors.ErrSenderBlacklisted) {
		t.Fatalf("expected ErrSenderBlacklisted, got %v", err)
	}
}

func TestValidateTransferRejectsBlacklistedRecipient(t *testing.T) {
	store := memory.NewStore()
	registerHook(t, store, "asset-usd")
	uc := ValidateTransferUseCase{Store: store, Reader: blacklistedReader("asset-usd", "mallory")}

	err := uc.Execute(context.Background(), ValidateTransferQuery{
		AssetRef: "asset-usd", Sender: "alice", Recipient: "mallory", Amount: 10,
	})
	if !errors.Is(err, domainerrors.ErrRecipientBlacklisted) {
		t.Fatalf("expected ErrRecipientBlacklisted, got %v", err)
	}
}

func TestValidateTransferRejectsWhilePaused(t *testing.T) {
	store := memory.NewStore()
	registerHook(t, store, "asset-usd")
	pause := commands.PauseHookUseCase{Store: store, Clock: store}
	if err := pause.Pause(context.Background(), commands.PauseHookCommand{AssetRef: "asset-usd", Acting: "alice"}); err != nil {
		t.Fatalf("pause hook: %v", err)
	}
	uc := ValidateTransferUseCase{Store: store, Reader: blacklistedReader("asset-usd")}

	err := uc.Execute(context.Background(), ValidateTransferQuery{
		AssetRef: "asset-usd", Sender: "alice", Recipient: "bob", Amount: 10,
	})
	if !errors.Is(err, domainerrors.ErrTransferPaused) {
		t.Fatalf("expected ErrTransferPaused, got %v", err)
	}
}

func TestValidateTransferRejectsWhileTokenPaused(t *testing.T) {
	store := memory.NewStore()
	registerHook(t, store, "asset-usd")
	reader := blacklistedReader("asset-usd")
	reader.paused = true
	uc := ValidateTransferUseCase{Store: store, Reader: reader}

	err := uc.Execute(context.Background(), ValidateTransferQuery{
		AssetRef: "asset-usd", Sender: "alice", Recipient: "bob", Amount: 10,
	})
	if !errors.Is(err, domainerrors.ErrTokenPaused) {
		t.Fatalf("expected ErrTokenPaused while the controlling config is paused, got %v", err)
	}
}

func TestValidateTransferFailsClosedWithoutRegistration(t *testing.T) {
	store := memory.NewStore()
	uc := ValidateTransferUseCase{Store: store, Reader: blacklistedReader("asset-usd")}

	err := uc.Execute(context.Background(), ValidateTransferQuery{
		AssetRef: "asset-usd", Sender: "alice", Recipient: "bob", Amount: 10,
	})
	if !errors.Is(err, domainerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unregistered asset, got %v", err)
	}
}
