package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"stablecoin/contexts/token-core/issuance-service/adapters/memory"
	domainerrors "stablecoin/contexts/token-core/issuance-service/domain/errors"
	"stablecoin/internal/platform/ledger"
	"stablecoin/internal/shared/addressing"
)

type testEnv struct {
	store  *memory.Store
	ledger *ledger.InMemory
}

func newEnv() testEnv {
	return testEnv{
		store:  memory.NewStore(),
		ledger: ledger.NewInMemory(nil),
	}
}

func (e testEnv) initialize() InitializeTokenUseCase {
	return InitializeTokenUseCase{Store: e.store, Ledger: e.ledger, Clock: e.store, IDGenerator: e.store}
}

func (e testEnv) mint() MintUseCase {
	return MintUseCase{Store: e.store, Ledger: e.ledger, Clock: e.store, IDGenerator: e.store}
}

func (e testEnv) burn() BurnUseCase {
	return BurnUseCase{Store: e.store, Ledger: e.ledger}
}

func (e testEnv) freeze() FreezeAccountUseCase {
	return FreezeAccountUseCase{Store: e.store, Ledger: e.ledger}
}

func (e testEnv) pause() PauseUseCase {
	return PauseUseCase{Store: e.store, Clock: e.store, IDGenerator: e.store}
}

func (e testEnv) addMinter() AddMinterUseCase {
	return AddMinterUseCase{Store: e.store, Clock: e.store, IDGenerator: e.store}
}

func (e testEnv) updateQuota() UpdateMinterQuotaUseCase {
	return UpdateMinterQuotaUseCase{Store: e.store, Clock: e.store, IDGenerator: e.store}
}

func (e testEnv) removeMinter() RemoveMinterUseCase {
	return RemoveMinterUseCase{Store: e.store, Clock: e.store, IDGenerator: e.store}
}

func (e testEnv) updateRoles() UpdateRolesUseCase {
	return UpdateRolesUseCase{Store: e.store, Clock: e.store, IDGenerator: e.store}
}

func (e testEnv) transferAuthority() TransferAuthorityUseCase {
	return TransferAuthorityUseCase{Store: e.store, Clock: e.store, IDGenerator: e.store}
}

func (e testEnv) addBlacklist() AddToBlacklistUseCase {
	return AddToBlacklistUseCase{Store: e.store, Clock: e.store, IDGenerator: e.store}
}

func (e testEnv) removeBlacklist() RemoveFromBlacklistUseCase {
	return RemoveFromBlacklistUseCase{Store: e.store, Clock: e.store, IDGenerator: e.store}
}

func (e testEnv) seize() SeizeUseCase {
	return SeizeUseCase{Store: e.store, Ledger: e.ledger, Clock: e.store, IDGenerator: e.store}
}

func (e testEnv) mustInitialize(t *testing.T, assetRef string, authority string, delegate bool, hook bool) InitializeTokenResult {
	t.Helper()
	result, err := e.initialize().Execute(context.Background(), InitializeTokenCommand{
		AssetRef:                assetRef,
		Name:                    "Test Dollar",
		Symbol:                  "TUSD",
		Decimals:                6,
		EnablePermanentDelegate: delegate,
		EnableTransferHook:      hook,
		Authority:               authority,
	})
	if err != nil {
		t.Fatalf("initialize token: %v", err)
	}
	return result
}

func TestInitializeTokenDefaultsRolesToAuthority(t *testing.T) {
	env := newEnv()
	result := env.mustInitialize(t, "asset-usd", "alice", false, false)

	cfg := result.Config
	if cfg.MasterAuthority.String() != "alice" {
		t.Fatalf("expected master authority alice, got %q", cfg.MasterAuthority)
	}
	if cfg.Blacklister != cfg.MasterAuthority || cfg.Pauser != cfg.MasterAuthority || cfg.Seizer != cfg.MasterAuthority {
		t.Fatalf("expected all roles to default to the authority, got %+v", cfg)
	}
	if cfg.Paused {
		t.Fatalf("new token must start unpaused")
	}

	expected, _ := addressing.ForConfig("asset-usd")
	if cfg.Address != expected {
		t.Fatalf("config address %q does not match derivation %q", cfg.Address, expected)
	}

	_, err := env.initialize().Execute(context.Background(), InitializeTokenCommand{
		AssetRef:  "asset-usd",
		Name:      "Test Dollar",
		Symbol:    "TUSD",
		Decimals:  6,
		Authority: "alice",
	})
	if !errors.Is(err, domainerrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists on duplicate initialization, got %v", err)
	}
}

func TestInitializeTokenRejectsOversizedStrings(t *testing.T) {
	env := newEnv()
	_, err := env.initialize().Execute(context.Background(), InitializeTokenCommand{
		AssetRef:  "asset-usd",
		Name:      "Test Dollar",
		Symbol:    strings.Repeat("X", 11),
		Decimals:  6,
		Authority: "alice",
	})
	if !errors.Is(err, domainerrors.ErrStringTooLong) {
		t.Fatalf("expected ErrStringTooLong for 11-byte symbol, got %v", err)
	}
}

type staticIDGenerator struct {
	id string
}

func (g staticIDGenerator) NewID(context.Context) (string, error) {
	return g.id, nil
}

func TestInitializeLeavesLedgerUntouchedWhenConfigWriteFails(t *testing.T) {
	env := newEnv()
	uc := InitializeTokenUseCase{
		Store:       env.store,
		Ledger:      env.ledger,
		Clock:       env.store,
		IDGenerator: staticIDGenerator{id: "outbox-fixed"},
	}

	if _, err := uc.Execute(context.Background(), InitializeTokenCommand{
		AssetRef: "asset-usd", Name: "Test Dollar", Symbol: "TUSD", Decimals: 6, Authority: "alice",
	}); err != nil {
		t.Fatalf("initialize token: %v", err)
	}

	// The duplicate audit row makes the config write fail for a different
	// asset; the ledger must not end up with the asset registered.
	_, err := uc.Execute(context.Background(), InitializeTokenCommand{
		AssetRef: "asset-eur", Name: "Test Euro", Symbol: "TEUR", Decimals: 6, Authority: "alice",
	})
	if !errors.Is(err, domainerrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists from the failed write, got %v", err)
	}

	expected, _ := addressing.ForConfig("asset-eur")
	exists, err := env.store.Exists(context.Background(), expected)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Fatalf("failed initialization must not persist a config")
	}
	if err := env.ledger.CreateAsset(context.Background(), "asset-eur", 6, false, false, false); err != nil {
		t.Fatalf("asset must not be registered by the failed initialization: %v", err)
	}
}

func TestMintAdvancesQuotaAndSupply(t *testing.T) {
	env := newEnv()
	env.mustInitialize(t, "asset-usd", "alice", false, false)

	_, err := env.addMinter().Execute(context.Background(), AddMinterCommand{
		AssetRef: "asset-usd", Minter: "bob", Quota: 1000, Acting: "alice",
	})
	if err != nil {
		t.Fatalf("add minter: %v", err)
	}

	result, err := env.mint().Execute(context.Background(), MintCommand{
		AssetRef: "asset-usd", Minter: "bob", Recipient: "carol", Amount: 400,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if result.Minter.Minted != 400 {
		t.Fatalf("expected minted counter 400, got %d", result.Minter.Minted)
	}
	if got := env.ledger.Balance("asset-usd", "carol"); got != 400 {
		t.Fatalf("expected recipient balance 400, got %d", got)
	}
	if got := env.ledger.Supply("asset-usd"); got != 400 {
		t.Fatalf("expected supply 400, got %d", got)
	}

	_, err = env.mint().Execute(context.Background(), MintCommand{
		AssetRef: "asset-usd", Minter: "bob", Recipient: "carol", Amount: 700,
	})
	if !errors.Is(err, domainerrors.ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded beyond headroom, got %v", err)
	}

	// Exactly exhausting the headroom is allowed.
	result, err = env.mint().Execute(context.Background(), MintCommand{
		AssetRef: "asset-usd", Minter: "bob", Recipient: "carol", Amount: 600,
	})
	if err != nil {
		t.Fatalf("mint to exact quota: %v", err)
	}
	if result.Minter.Headroom() != 0 {
		t.Fatalf("expected zero headroom, got %d", result.Minter.Headroom())
	}
}

func TestMintRequiresMinterRecord(t *testing.T) {
	env := newEnv()
	env.mustInitialize(t, "asset-usd", "alice", false, false)

	_, err := env.mint().Execute(context.Background(), MintCommand{
		AssetRef: "asset-usd", Minter: "mallory", Recipient: "carol", Amount: 1,
	})
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized without a quota record, got %v", err)
	}
}

func TestMintRejectsZeroAmount(t *testing.T) {
	env := newEnv()
	env.mustInitialize(t, "asset-usd", "alice", false, false)

	_, err := env.mint().Execute(context.Background(), MintCommand{
		AssetRef: "asset-usd", Minter: "bob", Recipient: "carol", Amount: 0,
	})
	if !errors.Is(err, domainerrors.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero mint, got %v", err)
	}
}

func TestMintBlockedWhilePaused(t *testing.T) {
	env := newEnv()
	env.mustInitialize(t, "asset-usd", "alice", false, false)
	if _, err := env.addMinter().Execute(context.Background(), AddMinterCommand{
		AssetRef: "asset-usd", Minter: "bob", Quota: 100, Acting: "alice",
	}); err != nil {
		t.Fatalf("add minter: %v", err)
	}
	if err := env.pause().Pause(context.Background(), PauseCommand{AssetRef: "asset-usd", Acting: "alice"}); err != nil {
		t.Fatalf("pause: %v", err)
	}

	_, err := env.mint().Execute(context.Background(), MintCommand{
		AssetRef: "asset-usd", Minter: "bob", Recipient: "carol", Amount: 1,
	})
	if !errors.Is(err, domainerrors.ErrTokenPaused) {
		t.Fatalf("expected ErrTokenPaused, got %v", err)
	}
}

func TestMintLedgerFailureLeavesQuotaUntouched(t *testing.T) {
	env := newEnv()
	env.mustInitialize(t, "asset-usd", "alice", false, false)
	if _, err := env.addMinter().Execute(context.Background(), AddMinterCommand{
		AssetRef: "asset-usd", Minter: "bob", Quota: 1000, Acting: "alice",
	}); err != nil {
		t.Fatalf("add minter: %v", err)
	}
	if err := env.ledger.Freeze(context.Background(), "asset-usd", "carol"); err != nil {
		t.Fatalf("freeze recipient: %v", err)
	}

	_, err := env.mint().Execute(context.Background(), MintCommand{
		AssetRef: "asset-usd", Minter: "bob", Recipient: "carol", Amount: 100,
	})
	if !errors.Is(err, ledger.ErrAccountFrozen) {
		t.Fatalf("expected frozen-account failure from the ledger, got %v", err)
	}

	cfgAddr, _ := addressing.ForConfig("asset-usd")
	minterAddr, _ := addressing.ForMinter(cfgAddr, "bob")
	record, err := env.store.GetMinter(context.Background(), minterAddr)
	if err != nil {
		t.Fatalf("get minter: %v", err)
	}
	if record.Minted != 0 {
		t.Fatalf("ledger failure must not advance the quota, got minted %d", record.Minted)
	}
	if got := env.ledger.Supply("asset-usd"); got != 0 {
		t.Fatalf("expected zero supply after failed mint, got %d", got)
	}
}

func TestUpdateMinterQuotaBelowMintedRejected(t *testing.T) {
	env := newEnv()
	env.mustInitialize(t, "asset-usd", "alice", false, false)
	if _, err := env.addMinter().Execute(context.Background(), AddMinterCommand{
		AssetRef: "asset-usd", Minter: "bob", Quota: 1000, Acting: "alice",
	}); err != nil {
		t.Fatalf("add minter: %v", err)
	}
	if _, err := env.mint().Execute(context.Background(), MintCommand{
		AssetRef: "asset-usd", Minter: "bob", Recipient: "carol", Amount: 400,
	}); err != nil {
		t.Fatalf("mint: %v", err)
	}

	_, err := env.updateQuota().Execute(context.Background(), UpdateMinterQuotaCommand{
		AssetRef: "asset-usd", Minter: "bob", NewQuota: 300, Acting: "alice",
	})
	if !errors.Is(err, domainerrors.ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded lowering quota below minted, got %v", err)
	}

	// Lowering exactly to the minted amount is the floor.
	updated, err := env.updateQuota().Execute(context.Background(), UpdateMinterQuotaCommand{
		AssetRef: "asset-usd", Minter: "bob", NewQuota: 400, Acting: "alice",
	})
	if err != nil {
		t.Fatalf("update quota to minted amount: %v", err)
	}
	if updated.Minter.Headroom() != 0 {
		t.Fatalf("expected zero headroom, got %d", updated.Minter.Headroom())
	}
}

func TestRemoveMinterRevokesMintingRights(t *testing.T) {
	env := newEnv()
	env.mustInitialize(t, "asset-usd", "alice", false, false)
	if _, err := env.addMinter().Execute(context.Background(), AddMinterCommand{
		AssetRef: "asset-usd", Minter: "bob", Quota: 1000, Acting: "alice",
	}); err != nil {
		t.Fatalf("add minter: %v", err)
	}
	if err := env.removeMinter().Execute(context.Background(), RemoveMinterCommand{
		AssetRef: "asset-usd", Minter: "bob", Acting: "alice",
	}); err != nil {
		t.Fatalf("remove minter: %v", err)
	}

	_, err := env.mint().Execute(context.Background(), MintCommand{
		AssetRef: "asset-usd", Minter: "bob", Recipient: "carol", Amount: 1,
	})
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized after revocation, got %v", err)
	}
}

func TestAddMinterRequiresMasterAuthority(t *testing.T) {
	env := newEnv()
	env.mustInitialize(t, "asset-usd", "alice", false, false)

	_, err := env.addMinter().Execute(context.Background(), AddMinterCommand{
		AssetRef: "asset-usd", Minter: "bob", Quota: 100, Acting: "mallory",
	})
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for non-authority caller, got %v", err)
	}
}

func TestPauseTransitionsAreIdempotent(t *testing.T) {
	env := newEnv()
	env.mustInitialize(t, "asset-usd", "alice", false, false)
	uc := env.pause()

	if err := uc.Pause(context.Background(), PauseCommand{AssetRef: "asset-usd", Acting: "alice"}); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if err := uc.Pause(context.Background(), PauseCommand{AssetRef: "asset-usd", Acting: "alice"}); err != nil {
		t.Fatalf("re-pausing a paused token must be a no-op, got %v", err)
	}

	// Freeze is gated on pause state.
	err := env.freeze().Freeze(context.Background(), FreezeAccountCommand{
		AssetRef: "asset-usd", Acting: "alice", Holder: "carol",
	})
	if !errors.Is(err, domainerrors.ErrTokenPaused) {
		t.Fatalf("expected ErrTokenPaused for freeze while paused, got %v", err)
	}

	if err := uc.Unpause(context.Background(), PauseCommand{AssetRef: "asset-usd", Acting: "alice"}); err != nil {
		t.Fatalf("unpause: %v", err)
	}
	if err := uc.Unpause(context.Background(), PauseCommand{AssetRef: "asset-usd", Acting: "alice"}); err != nil {
		t.Fatalf("re-unpausing an active token must be a no-op, got %v", err)
	}
	if err := uc.Pause(context.Background(), PauseCommand{AssetRef: "asset-usd", Acting: "mallory"}); !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for non-pauser, got %v", err)
	}
}

func TestBurnBlockedWhilePausedOnly(t *testing.T) {
	env := newEnv()
	env.mustInitialize(t, "asset-usd", "alice", false, false)
	if _, err := env.addMinter().Execute(context.Background(), AddMinterCommand{
		AssetRef: "asset-usd", Minter: "bob", Quota: 1000, Acting: "alice",
	}); err != nil {
		t.Fatalf("add minter: %v", err)
	}
	if _, err := env.mint().Execute(context.Background(), MintCommand{
		AssetRef: "asset-usd", Minter: "bob", Recipient: "carol", Amount: 500,
	}); err != nil {
		t.Fatalf("mint: %v", err)
	}

	// Burning one's own balance needs no role.
	if err := env.burn().Execute(context.Background(), BurnCommand{
		AssetRef: "asset-usd", Owner: "carol", Amount: 200,
	}); err != nil {
		t.Fatalf("burn: %v", err)
	}
	if got := env.ledger.Supply("asset-usd"); got != 300 {
		t.Fatalf("expected supply 300 after burn, got %d", got)
	}

	if err := env.pause().Pause(context.Background(), PauseCommand{AssetRef: "asset-usd", Acting: "alice"}); err != nil {
		t.Fatalf("pause: %v", err)
	}
	err := env.burn().Execute(context.Background(), BurnCommand{
		AssetRef: "asset-usd", Owner: "carol", Amount: 100,
	})
	if !errors.Is(err, domainerrors.ErrTokenPaused) {
		t.Fatalf("expected ErrTokenPaused for burn while paused, got %v", err)
	}
}

func TestBlacklistRequiresTransferHook(t *testing.T) {
	env := newEnv()
	env.mustInitialize(t, "asset-usd", "alice", false, false)

	_, err := env.addBlacklist().Execute(context.Background(), AddToBlacklistCommand{
		AssetRef: "asset-usd", User: "mallory", Reason: "sanctions", Acting: "alice",
	})
	if !errors.Is(err, domainerrors.ErrComplianceNotEnabled) {
		t.Fatalf("expected ErrComplianceNotEnabled without transfer hook, got %v", err)
	}
}

func TestBlacklistAddAndRemove(t *testing.T) {
	env := newEnv()
	env.mustInitialize(t, "asset-usd", "alice", false, true)

	result, err := env.addBlacklist().Execute(context.Background(), AddToBlacklistCommand{
		AssetRef: "asset-usd", User: "mallory", Reason: "sanctions", Acting: "alice",
	})
	if err != nil {
		t.Fatalf("add to blacklist: %v", err)
	}
	cfgAddr, _ := addressing.ForConfig("asset-usd")
	expected, _ := addressing.ForBlacklistEntry(cfgAddr, "mallory")
	if result.Entry.Address != expected {
		t.Fatalf("entry address %q does not match derivation %q", result.Entry.Address, expected)
	}

	_, err = env.addBlacklist().Execute(context.Background(), AddToBlacklistCommand{
		AssetRef: "asset-usd", User: "mallory", Acting: "alice",
	})
	if !errors.Is(err, domainerrors.ErrAlreadyBlacklisted) {
		t.Fatalf("expected ErrAlreadyBlacklisted on duplicate, got %v", err)
	}

	if err := env.removeBlacklist().Execute(context.Background(), RemoveFromBlacklistCommand{
		AssetRef: "asset-usd", User: "mallory", Acting: "alice",
	}); err != nil {
		t.Fatalf("remove from blacklist: %v", err)
	}
	err = env.removeBlacklist().Execute(context.Background(), RemoveFromBlacklistCommand{
		AssetRef: "asset-usd", User: "mallory", Acting: "alice",
	})
	if !errors.Is(err, domainerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound removing an absent user, got %v", err)
	}
}

func TestBlacklistRejectsOversizedReason(t *testing.T) {
	env := newEnv()
	env.mustInitialize(t, "asset-usd", "alice", false, true)

	_, err := env.addBlacklist().Execute(context.Background(), AddToBlacklistCommand{
		AssetRef: "asset-usd", User: "mallory", Reason: strings.Repeat("x", 101), Acting: "alice",
	})
	if !errors.Is(err, domainerrors.ErrStringTooLong) {
		t.Fatalf("expected ErrStringTooLong for 101-byte reason, got %v", err)
	}
}

func TestSeizeRequiresPermanentDelegate(t *testing.T) {
	env := newEnv()
	env.mustInitialize(t, "asset-usd", "alice", false, false)

	err := env.seize().Execute(context.Background(), SeizeCommand{
		AssetRef: "asset-usd", Source: "mallory", Destination: "treasury", Amount: 1, Acting: "alice",
	})
	if !errors.Is(err, domainerrors.ErrPermanentDelegateNotEnabled) {
		t.Fatalf("expected ErrPermanentDelegateNotEnabled, got %v", err)
	}
}

func TestSeizeBypassesFrozenAccountsAndWritesAudit(t *testing.T) {
	env := newEnv()
	env.mustInitialize(t, "asset-usd", "alice", true, false)
	if _, err := env.addMinter().Execute(context.Background(), AddMinterCommand{
		AssetRef: "asset-usd", Minter: "bob", Quota: 1000, Acting: "alice",
	}); err != nil {
		t.Fatalf("add minter: %v", err)
	}
	if _, err := env.mint().Execute(context.Background(), MintCommand{
		AssetRef: "asset-usd", Minter: "bob", Recipient: "mallory", Amount: 500,
	}); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := env.ledger.Freeze(context.Background(), "asset-usd", "mallory"); err != nil {
		t.Fatalf("freeze source: %v", err)
	}

	if err := env.seize().Execute(context.Background(), SeizeCommand{
		AssetRef: "asset-usd", Source: "mallory", Destination: "treasury", Amount: 200, Acting: "alice",
	}); err != nil {
		t.Fatalf("seize from frozen account: %v", err)
	}
	if got := env.ledger.Balance("asset-usd", "mallory"); got != 300 {
		t.Fatalf("expected source balance 300, got %d", got)
	}
	if got := env.ledger.Balance("asset-usd", "treasury"); got != 200 {
		t.Fatalf("expected destination balance 200, got %d", got)
	}

	pending, err := env.store.ListPendingOutbox(context.Background(), 100)
	if err != nil {
		t.Fatalf("list outbox: %v", err)
	}
	found := false
	for _, row := range pending {
		if row.EventType == "token.seized" {
			found = true
		}
	}
	if !found {
		t.Fatalf("seizure must leave a token.seized audit row, outbox had %d rows", len(pending))
	}
}

func TestTransferAuthorityHandsOverControl(t *testing.T) {
	env := newEnv()
	env.mustInitialize(t, "asset-usd", "alice", false, false)

	result, err := env.transferAuthority().Execute(context.Background(), TransferAuthorityCommand{
		AssetRef: "asset-usd", NewAuthority: "bob", Acting: "alice",
	})
	if err != nil {
		t.Fatalf("transfer authority: %v", err)
	}
	if result.Config.MasterAuthority.String() != "bob" {
		t.Fatalf("expected master authority bob, got %q", result.Config.MasterAuthority)
	}

	_, err = env.addMinter().Execute(context.Background(), AddMinterCommand{
		AssetRef: "asset-usd", Minter: "carol", Quota: 100, Acting: "alice",
	})
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected previous authority to lose admin rights, got %v", err)
	}
	if _, err := env.addMinter().Execute(context.Background(), AddMinterCommand{
		AssetRef: "asset-usd", Minter: "carol", Quota: 100, Acting: "bob",
	}); err != nil {
		t.Fatalf("new authority add minter: %v", err)
	}
}

func TestUpdateRolesChangesOnlyRequestedSlots(t *testing.T) {
	env := newEnv()
	env.mustInitialize(t, "asset-usd", "alice", false, true)

	blacklister := "carol"
	result, err := env.updateRoles().Execute(context.Background(), UpdateRolesCommand{
		AssetRef: "asset-usd", Blacklister: &blacklister, Acting: "alice",
	})
	if err != nil {
		t.Fatalf("update roles: %v", err)
	}
	if result.Config.Blacklister.String() != "carol" {
		t.Fatalf("expected blacklister carol, got %q", result.Config.Blacklister)
	}
	if result.Config.Pauser.String() != "alice" || result.Config.Seizer.String() != "alice" {
		t.Fatalf("unrequested role slots must keep their holders, got %+v", result.Config)
	}

	if _, err := env.addBlacklist().Execute(context.Background(), AddToBlacklistCommand{
		AssetRef: "asset-usd", User: "mallory", Acting: "carol",
	}); err != nil {
		t.Fatalf("new blacklister must be able to add entries: %v", err)
	}
	err = env.pause().Pause(context.Background(), PauseCommand{AssetRef: "asset-usd", Acting: "carol"})
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("blacklister role must not grant pause, got %v", err)
	}
}

func TestSuppliedAddressMismatchRejected(t *testing.T) {
	env := newEnv()
	env.mustInitialize(t, "asset-usd", "alice", false, false)
	if _, err := env.addMinter().Execute(context.Background(), AddMinterCommand{
		AssetRef: "asset-usd", Minter: "bob", Quota: 100, Acting: "alice",
	}); err != nil {
		t.Fatalf("add minter: %v", err)
	}

	foreign, _ := addressing.ForConfig("asset-other")
	_, err := env.mint().Execute(context.Background(), MintCommand{
		AssetRef: "asset-usd", Minter: "bob", MinterAddress: foreign, Recipient: "carol", Amount: 1,
	})
	if !errors.Is(err, domainerrors.ErrAddressMismatch) {
		t.Fatalf("expected ErrAddressMismatch for foreign supplied address, got %v", err)
	}
}
