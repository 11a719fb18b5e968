package addressing

import (
	"encoding/binary"
	"encoding/hex"
	"hash"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Namespaces used by the token-core services. The admin side and the
// transfer-hook side MUST derive through this package so they can never
// disagree on where a record lives.
const (
	NamespaceConfig       = "config"
	NamespaceMinter       = "minter"
	NamespaceBlacklist    = "blacklist"
	NamespaceTransferHook = "transfer_hook"
)

// derivationTag separates this address space from every other hash use in
// the codebase. Changing it invalidates all stored addresses.
const derivationTag = "stablecoin/derived/v1"

// addressPrefix keeps derived addresses textually disjoint from principal
// identifiers, so an address can never be presented as a signing key.
const addressPrefix = "sca_"

// Address identifies a program-owned record. It is the blake2b-256 digest of
// the namespace and ordered key tuple, hex encoded with a fixed prefix.
// Only derivation produces valid addresses; no external key controls one.
type Address string

// Proof carries the derivation inputs of an address so auditors can re-check
// the binding between a logical key and a stored record.
type Proof struct {
	Namespace string   `json:"namespace"`
	Keys      []string `json:"keys"`
}

// Derive maps a (namespace, key tuple) to its unique record address.
// Identical inputs always produce identical addresses; any change to the
// namespace, key order, or key content produces an unrelated address.
func Derive(namespace string, keys ...string) (Address, Proof) {
	digest, _ := blake2b.New256(nil)
	writeFrame(digest, derivationTag)
	writeFrame(digest, namespace)
	for _, key := range keys {
		writeFrame(digest, key)
	}
	sum := digest.Sum(nil)
	proof := Proof{
		Namespace: namespace,
		Keys:      append([]string(nil), keys...),
	}
	return Address(addressPrefix + hex.EncodeToString(sum)), proof
}

// ForConfig addresses the single Config record of an asset.
func ForConfig(assetRef string) (Address, Proof) {
	return Derive(NamespaceConfig, assetRef)
}

// ForMinter addresses the MinterQuota record of one minting principal.
func ForMinter(config Address, principal string) (Address, Proof) {
	return Derive(NamespaceMinter, config.String(), principal)
}

// ForBlacklistEntry addresses the BlacklistEntry of one user. The compliance
// registry and the transfer-validation hook both resolve entries through
// this function, keyed by the config address; deriving from any other key
// material would silently defeat enforcement.
func ForBlacklistEntry(config Address, user string) (Address, Proof) {
	return Derive(NamespaceBlacklist, config.String(), user)
}

// ForTransferHook addresses the HookConfig record of an asset.
func ForTransferHook(assetRef string) (Address, Proof) {
	return Derive(NamespaceTransferHook, assetRef)
}

// Verify reports whether proof re-derives to addr.
func Verify(addr Address, proof Proof) bool {
	derived, _ := Derive(proof.Namespace, proof.Keys...)
	return derived == addr
}

// Valid reports whether a caller-supplied string is shaped like a derived
// address. It does not prove the address belongs to any record.
func (a Address) Valid() bool {
	raw, ok := strings.CutPrefix(string(a), addressPrefix)
	if !ok || len(raw) != 64 {
		return false
	}
	_, err := hex.DecodeString(raw)
	return err == nil
}

func (a Address) IsZero() bool { return a == "" }

func (a Address) String() string { return string(a) }

// writeFrame length-prefixes each component so ("ab","c") and ("a","bc")
// hash differently.
func writeFrame(h hash.Hash, value string) {
	var size [4]byte
	binary.BigEndian.PutUint32(size[:], uint32(len(value)))
	_, _ = h.Write(size[:])
	_, _ = h.Write([]byte(value))
}
