package config

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/econia-labs/optivanity/internal/crypto"
)

// Errors
var (
	ErrNoPatternSpecified = errors.New("must specify --prefix and/or --suffix")
	ErrPatternTooLong     = errors.New("combined prefix and suffix exceed the address length")
	ErrInvalidCount       = errors.New("count must be at least 1")
	ErrInvalidThreads     = errors.New("threads must be at least 1")
	ErrTooManyThreads     = errors.New("threads exceeds available parallelism")
)

// Config holds the application configuration
type Config struct {
	Prefix        string
	Suffix        string
	Multisig      bool
	Count         uint64
	Endless       bool
	Threads       int
	MaxThreads    int // available hardware parallelism; fixed at startup
	Verbose       bool
	LogFile       string
	StatsInterval int // progress logging interval in seconds
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		Count:         1,
		Threads:       runtime.NumCPU(),
		MaxThreads:    runtime.NumCPU(),
		StatsInterval: 5,
	}
}

// Validate validates the configuration. It must pass before any worker is
// spawned.
func (c *Config) Validate() error {
	if c.Prefix == "" && c.Suffix == "" {
		return ErrNoPatternSpecified
	}
	if err := validateHex(c.Prefix); err != nil {
		return fmt.Errorf("invalid prefix: %w", err)
	}
	if err := validateHex(c.Suffix); err != nil {
		return fmt.Errorf("invalid suffix: %w", err)
	}
	if len(c.Prefix)+len(c.Suffix) > 2*crypto.AddressLength {
		return ErrPatternTooLong
	}
	if !c.Endless && c.Count < 1 {
		return ErrInvalidCount
	}
	if c.Threads < 1 {
		return ErrInvalidThreads
	}
	if c.Threads > c.MaxThreads {
		return fmt.Errorf("%w: %d requested, %d available", ErrTooManyThreads, c.Threads, c.MaxThreads)
	}
	return nil
}

// TargetDescription returns a human-readable description of the search
// target.
func (c *Config) TargetDescription() string {
	kind := "standard"
	if c.Multisig {
		kind = "multisig"
	}
	switch {
	case c.Prefix != "" && c.Suffix != "":
		return fmt.Sprintf("%s address with prefix %q and suffix %q", kind, c.Prefix, c.Suffix)
	case c.Prefix != "":
		return fmt.Sprintf("%s address with prefix %q", kind, c.Prefix)
	default:
		return fmt.Sprintf("%s address with suffix %q", kind, c.Suffix)
	}
}

// validateHex checks that s contains only hex digits. Patterns carry no 0x
// marker.
func validateHex(s string) error {
	for _, r := range s {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F') {
			continue
		}
		return fmt.Errorf("character %q is not a hex digit", r)
	}
	return nil
}
