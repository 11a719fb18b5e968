package addressing

import "testing"

func TestDeriveIsDeterministic(t *testing.T) {
	first, _ := Derive(NamespaceConfig, "asset-usdx")
	second, _ := Derive(NamespaceConfig, "asset-usdx")
	if first != second {
		t.Fatalf("expected identical addresses, got %s and %s", first, second)
	}
}

func TestDeriveSeparatesNamespaces(t *testing.T) {
	config, _ := Derive(NamespaceConfig, "asset-usdx")
	hook, _ := Derive(NamespaceTransferHook, "asset-usdx")
	if config == hook {
		t.Fatalf("namespaces must not collide: %s", config)
	}
}

func TestDeriveSeparatesUsersUnderSameConfig(t *testing.T) {
	configAddr, _ := Derive(NamespaceConfig, "asset-usdx")
	alice, _ := Derive(NamespaceBlacklist, configAddr.String(), "alice")
	bob, _ := Derive(NamespaceBlacklist, configAddr.String(), "bob")
	if alice == bob {
		t.Fatalf("distinct users must derive distinct addresses: %s", alice)
	}
}

func TestDeriveFramesKeyBoundaries(t *testing.T) {
	left, _ := Derive(NamespaceMinter, "ab", "c")
	right, _ := Derive(NamespaceMinter, "a", "bc")
	if left == right {
		t.Fatalf("key tuple boundaries must be framed: %s", left)
	}
}

func TestVerifyRoundTrip(t *testing.T) {
	addr, proof := Derive(NamespaceMinter, "cfg", "minter-1")
	if !Verify(addr, proof) {
		t.Fatalf("proof should verify its own address")
	}
	other, _ := Derive(NamespaceMinter, "cfg", "minter-2")
	if Verify(other, proof) {
		t.Fatalf("proof must not verify a foreign address")
	}
}

func TestAddressValidation(t *testing.T) {
	addr, _ := Derive(NamespaceConfig, "asset-usdx")
	if !addr.Valid() {
		t.Fatalf("derived address should be valid: %s", addr)
	}
	if Address("").Valid() {
		t.Fatalf("empty address must be invalid")
	}
	if Address("principal-key-1111").Valid() {
		t.Fatalf("principal identifiers must never parse as addresses")
	}
}
