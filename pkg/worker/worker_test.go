package worker

import (
	"testing"
	"time"

	"github.com/econia-labs/optivanity/internal/crypto"
	"github.com/econia-labs/optivanity/pkg/match"
	"github.com/econia-labs/optivanity/pkg/types"
)

func newMatcher(t *testing.T, prefix, suffix string) *match.Matcher {
	t.Helper()
	m, err := match.New(prefix, suffix)
	if err != nil {
		t.Fatalf("match.New(%q, %q): %v", prefix, suffix, err)
	}
	return m
}

func TestWorkerFindsMatch(t *testing.T) {
	// An empty pattern matches every candidate, so the very first
	// iteration must produce a result.
	var attempts uint64
	w := New(newMatcher(t, "", ""), false, &attempts)

	done := make(chan struct{})
	found := make(chan types.FoundResult, 1)
	errs := make(chan error, 1)
	go func() { errs <- w.Run(done, found) }()

	result := <-found
	close(done)
	if err := <-errs; err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	if got := crypto.DeriveStandard(result.Key.PublicKey); got != result.Address {
		t.Errorf("result address %s does not match re-derived address %s", result.Address.Hex(), got.Hex())
	}
	if result.Multisig != nil {
		t.Error("Multisig set on a standard-mode result")
	}
	if attempts == 0 {
		t.Error("candidate counter not incremented")
	}
}

func TestWorkerMultisigMode(t *testing.T) {
	var attempts uint64
	w := New(newMatcher(t, "", ""), true, &attempts)

	done := make(chan struct{})
	found := make(chan types.FoundResult, 1)
	errs := make(chan error, 1)
	go func() { errs <- w.Run(done, found) }()

	result := <-found
	close(done)
	if err := <-errs; err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	if result.Multisig == nil {
		t.Fatal("Multisig not set on a multisig-mode result")
	}
	standard := crypto.DeriveStandard(result.Key.PublicKey)
	want := crypto.DeriveMultisig(standard, crypto.SequenceNumberMultisig)
	if *result.Multisig != want {
		t.Errorf("multisig address %s, want %s", result.Multisig.Hex(), want.Hex())
	}
	if result.Address != standard {
		t.Errorf("standard address %s, want %s", result.Address.Hex(), standard.Hex())
	}
}

func TestWorkerStopsOnDone(t *testing.T) {
	var attempts uint64
	w := New(newMatcher(t, "", ""), false, &attempts)

	// Pre-closed stop signal: the worker must exit before generating
	// anything.
	done := make(chan struct{})
	close(done)

	found := make(chan types.FoundResult)
	errs := make(chan error, 1)
	go func() { errs <- w.Run(done, found) }()

	select {
	case err := <-errs:
		if err != nil {
			t.Fatalf("Run() returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("worker did not observe the stop signal")
	}
}

func TestWorkerMatchesReportedAddress(t *testing.T) {
	var attempts uint64
	matcher := newMatcher(t, "a", "")
	w := New(matcher, false, &attempts)

	done := make(chan struct{})
	found := make(chan types.FoundResult, 1)
	go func() { _ = w.Run(done, found) }()

	result := <-found
	close(done)

	if !matcher.Matches(result.Address.Bytes()) {
		t.Errorf("reported address %s does not satisfy the pattern", result.Address.Hex())
	}
}
