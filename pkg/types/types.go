package types

import (
	"crypto/ed25519"
	"time"

	"github.com/econia-labs/optivanity/internal/crypto"
)

// KeyPair is an Ed25519 signing key and its public key.
type KeyPair struct {
	PrivateKey ed25519.PrivateKey
	PublicKey  ed25519.PublicKey
}

// FoundResult bundles a keypair with the derived address(es) that satisfied
// the search pattern. Multisig is nil unless the search ran in multisig
// mode, in which case it holds the address the pattern was matched against.
type FoundResult struct {
	Key      KeyPair
	Address  crypto.Address
	Multisig *crypto.Address
}

// Stats summarizes a search run.
type Stats struct {
	Attempts uint64        // candidates generated across all workers
	Elapsed  time.Duration // wall clock since workers were spawned
}

// Rate returns candidates generated per second, or 0 before any time has
// elapsed.
func (s Stats) Rate() float64 {
	secs := s.Elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(s.Attempts) / secs
}
