package worker

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"sync/atomic"

	"github.com/econia-labs/optivanity/internal/crypto"
	"github.com/econia-labs/optivanity/pkg/match"
	"github.com/econia-labs/optivanity/pkg/types"
)

// Worker generates candidate keypairs and tests their derived addresses
// against a shared matcher. One Worker runs per search thread.
type Worker struct {
	matcher  *match.Matcher
	multisig bool
	attempts *uint64 // shared candidate counter, incremented atomically
}

// New creates a worker. The matcher is shared read-only across workers;
// attempts points at the coordinator's candidate counter.
func New(matcher *match.Matcher, multisig bool, attempts *uint64) *Worker {
	return &Worker{
		matcher:  matcher,
		multisig: multisig,
		attempts: attempts,
	}
}

// Run loops generating keypairs until done closes, sending each match on
// found. A send that loses the race with shutdown is dropped; the
// coordinator only ever forwards the requested number of matches. Run
// returns a non-nil error only when the secure random source fails, which
// is fatal to the whole search.
func (w *Worker) Run(done <-chan struct{}, found chan<- types.FoundResult) error {
	for {
		select {
		case <-done:
			return nil
		default:
		}

		pub, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return fmt.Errorf("generate keypair: %w", err)
		}
		atomic.AddUint64(w.attempts, 1)

		addr := crypto.DeriveStandard(pub)
		candidate := addr
		var multisig *crypto.Address
		if w.multisig {
			m := crypto.DeriveMultisig(addr, crypto.SequenceNumberMultisig)
			multisig = &m
			candidate = m
		}

		if !w.matcher.Matches(candidate.Bytes()) {
			continue
		}

		result := types.FoundResult{
			Key:      types.KeyPair{PrivateKey: priv, PublicKey: pub},
			Address:  addr,
			Multisig: multisig,
		}
		select {
		case found <- result:
		case <-done:
			return nil
		}
	}
}
