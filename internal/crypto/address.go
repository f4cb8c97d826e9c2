package crypto

import (
	"crypto/ed25519"
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

const (
	// AddressLength is the byte length of an Aptos account address.
	AddressLength = 32

	// SchemeEd25519 is the authentication scheme byte appended to an
	// Ed25519 public key before hashing into an authentication key.
	SchemeEd25519 byte = 0x00

	// SchemeDeriveResourceAccount is the scheme byte terminating the
	// preimage of every derived (resource/multisig) account address.
	SchemeDeriveResourceAccount byte = 0xFF

	// SequenceNumberMultisig is the creator sequence number used for
	// multisig derivation. Multisig account creation is assumed to happen
	// in the first transaction of the standard account.
	SequenceNumberMultisig uint64 = 0
)

// multisigDomainSeparator prefixes the derivation seed of multisig account
// addresses, per the aptos_framework::multisig_account module.
var multisigDomainSeparator = []byte("aptos_framework::multisig_account")

// Address is a 32-byte Aptos account address.
type Address [AddressLength]byte

// DeriveStandard derives the standard account address of an Ed25519 public
// key: SHA3-256(pubkey || scheme byte).
func DeriveStandard(pub ed25519.PublicKey) Address {
	h := sha3.New256()
	h.Write(pub)
	h.Write([]byte{SchemeEd25519})

	var addr Address
	h.Sum(addr[:0])
	return addr
}

// DeriveMultisig derives the multisig account address created by addr at the
// given creator sequence number:
// SHA3-256(addr || domain separator || uint64 LE sequence number || 0xFF).
func DeriveMultisig(addr Address, sequenceNumber uint64) Address {
	var seq [8]byte
	binary.LittleEndian.PutUint64(seq[:], sequenceNumber)

	h := sha3.New256()
	h.Write(addr[:])
	h.Write(multisigDomainSeparator)
	h.Write(seq[:])
	h.Write([]byte{SchemeDeriveResourceAccount})

	var derived Address
	h.Sum(derived[:0])
	return derived
}

// Hex renders the address as a 0x-prefixed lowercase hex string.
func (a Address) Hex() string {
	return "0x" + hex.EncodeToString(a[:])
}

// Bytes returns the address as a slice for matching.
func (a Address) Bytes() []byte {
	return a[:]
}

// PrivateKeyHex renders the 32-byte seed of an Ed25519 private key as a
// 0x-prefixed lowercase hex string, the form Aptos wallets import.
func PrivateKeyHex(priv ed25519.PrivateKey) string {
	return "0x" + hex.EncodeToString(priv.Seed())
}
