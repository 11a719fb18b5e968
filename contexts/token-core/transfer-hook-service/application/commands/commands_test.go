package commands

import (
	"context"
	"errors"
	"testing"

	"stablecoin/contexts/token-core/transfer-hook-service/adapters/memory"
	domainerrors "stablecoin/contexts/token-core/transfer-hook-service/domain/errors"
	"stablecoin/internal/shared/addressing"
)

func TestInitializeHookBindsControllingConfig(t *testing.T) {
	store := memory.NewStore()
	uc := InitializeHookUseCase{Store: store, Clock: store}

	result, err := uc.Execute(context.Background(), InitializeHookCommand{
		AssetRef:  "asset-usd",
		Authority: "alice",
	})
	if err != nil {
		t.Fatalf("initialize hook: %v", err)
	}

	expectedHook, _ := addressing.ForTransferHook("asset-usd")
	if result.Hook.Address != expectedHook {
		t.Fatalf("hook address %q does not match derivation %q", result.Hook.Address, expectedHook)
	}
	expectedConfig, _ := addressing.ForConfig("asset-usd")
	if result.Hook.ControllingConfigRef != expectedConfig {
		t.Fatalf("controlling config %q does not match derivation %q", result.Hook.ControllingConfigRef, expectedConfig)
	}
	if result.Hook.Paused {
		t.Fatalf("new hook must start unpaused")
	}

	_, err = uc.Execute(context.Background(), InitializeHookCommand{AssetRef: "asset-usd", Authority: "alice"})
	if !errors.Is(err, domainerrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists on duplicate registration, got %v", err)
	}
}

func TestInitializeHookRejectsMismatchedSuppliedAddress(t *testing.T) {
	store := memory.NewStore()
	uc := InitializeHookUseCase{Store: store, Clock: store}

	foreign, _ := addressing.ForTransferHook("asset-other")
	_, err := uc.Execute(context.Background(), InitializeHookCommand{
		AssetRef:    "asset-usd",
		HookAddress: foreign,
		Authority:   "alice",
	})
	if !errors.Is(err, domainerrors.ErrAddressMismatch) {
		t.Fatalf("expected ErrAddressMismatch, got %v", err)
	}
}

func TestPauseHookIsIdempotentAndAuthorityGated(t *testing.T) {
	store := memory.NewStore()
	init := InitializeHookUseCase{Store: store, Clock: store}
	if _, err := init.Execute(context.Background(), InitializeHookCommand{AssetRef: "asset-usd", Authority: "alice"}); err != nil {
		t.Fatalf("initialize hook: %v", err)
	}
	pause := PauseHookUseCase{Store: store, Clock: store}

	if err := pause.Pause(context.Background(), PauseHookCommand{AssetRef: "asset-usd", Acting: "alice"}); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if err := pause.Pause(context.Background(), PauseHookCommand{AssetRef: "asset-usd", Acting: "alice"}); err != nil {
		t.Fatalf("re-pausing a paused hook must be a no-op, got %v", err)
	}
	if err := pause.Unpause(context.Background(), PauseHookCommand{AssetRef: "asset-usd", Acting: "mallory"}); !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for non-authority, got %v", err)
	}
	if err := pause.Unpause(context.Background(), PauseHookCommand{AssetRef: "asset-usd", Acting: "alice"}); err != nil {
		t.Fatalf("unpause: %v", err)
	}
}

func TestUpdateHookAuthorityHandsOverControl(t *testing.T) {
	store := memory.NewStore()
	init := InitializeHookUseCase{Store: store, Clock: store}
	if _, err := init.Execute(context.Background(), InitializeHookCommand{AssetRef: "asset-usd", Authority: "alice"}); err != nil {
		t.Fatalf("initialize hook: %v", err)
	}
	update := UpdateHookAuthorityUseCase{Store: store, Clock: store}

	if _, err := update.Execute(context.Background(), UpdateHookAuthorityCommand{
		AssetRef: "asset-usd", NewAuthority: "bob", Acting: "mallory",
	}); !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for non-authority, got %v", err)
	}

	result, err := update.Execute(context.Background(), UpdateHookAuthorityCommand{
		AssetRef: "asset-usd", NewAuthority: "bob", Acting: "alice",
	})
	if err != nil {
		t.Fatalf("update authority: %v", err)
	}
	if result.Hook.Authority != "bob" {
		t.Fatalf("expected authority bob, got %q", result.Hook.Authority)
	}

	pause := PauseHookUseCase{Store: store, Clock: store}
	if err := pause.Pause(context.Background(), PauseHookCommand{AssetRef: "asset-usd", Acting: "alice"}); !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("previous authority must lose control, got %v", err)
	}
}
