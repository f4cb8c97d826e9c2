// Package match provides compile-once prefix/suffix matching for account
// addresses. Patterns are pre-decoded to raw bytes so the hot path compares
// bytes without any allocation.
package match

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/econia-labs/optivanity/internal/crypto"
)

// Matcher holds the requested prefix and suffix patterns as raw bytes plus
// an optional half-byte for odd-length hex patterns. It is immutable after
// construction and safe for concurrent use by any number of workers.
type Matcher struct {
	prefix []byte
	suffix []byte

	// Half-byte carried by an odd-length pattern. For a prefix the odd
	// digit is the high nibble of the byte after the full prefix bytes;
	// for a suffix it is the low nibble of the byte before them.
	prefixNibble    byte
	suffixNibble    byte
	hasPrefixNibble bool
	hasSuffixNibble bool
}

// New builds a Matcher from case-insensitive hex patterns. Either pattern
// may be empty. It fails if a pattern contains non-hex characters or if the
// combined pattern length exceeds the address length.
func New(prefix, suffix string) (*Matcher, error) {
	if len(prefix)+len(suffix) > 2*crypto.AddressLength {
		return nil, fmt.Errorf("combined pattern length %d exceeds %d hex characters",
			len(prefix)+len(suffix), 2*crypto.AddressLength)
	}

	m := &Matcher{}
	var err error
	if m.prefix, m.prefixNibble, m.hasPrefixNibble, err = compilePrefix(prefix); err != nil {
		return nil, fmt.Errorf("invalid prefix: %w", err)
	}
	if m.suffix, m.suffixNibble, m.hasSuffixNibble, err = compileSuffix(suffix); err != nil {
		return nil, fmt.Errorf("invalid suffix: %w", err)
	}
	return m, nil
}

// compilePrefix decodes a hex prefix into full bytes plus a trailing
// half-byte for odd-length patterns: the odd digit is the high nibble of
// the byte following the full bytes. Decoding appends a zero digit, then
// splits off the final nibble.
func compilePrefix(pattern string) (full []byte, nibble byte, hasNibble bool, err error) {
	pattern = strings.ToLower(pattern)
	if len(pattern)%2 == 1 {
		decoded, err := hex.DecodeString(pattern + "0")
		if err != nil {
			return nil, 0, false, err
		}
		return decoded[:len(decoded)-1], decoded[len(decoded)-1] >> 4, true, nil
	}
	decoded, err := hex.DecodeString(pattern)
	if err != nil {
		return nil, 0, false, err
	}
	return decoded, 0, false, nil
}

// compileSuffix decodes a hex suffix into full bytes plus a leading
// half-byte for odd-length patterns: the odd digit is the low nibble of
// the byte preceding the full bytes.
func compileSuffix(pattern string) (full []byte, nibble byte, hasNibble bool, err error) {
	pattern = strings.ToLower(pattern)
	if len(pattern)%2 == 1 {
		decoded, err := hex.DecodeString("0" + pattern)
		if err != nil {
			return nil, 0, false, err
		}
		return decoded[1:], decoded[0] & 0x0f, true, nil
	}
	decoded, err := hex.DecodeString(pattern)
	if err != nil {
		return nil, 0, false, err
	}
	return decoded, 0, false, nil
}

// Matches reports whether the address bytes start with the prefix pattern
// and end with the suffix pattern. An absent pattern always matches. The
// method performs no allocation.
func (m *Matcher) Matches(addr []byte) bool {
	n := len(m.prefix)
	k := len(m.suffix)
	if len(addr) < n+k {
		return false
	}

	if n > 0 && !bytes.Equal(addr[:n], m.prefix) {
		return false
	}
	if m.hasPrefixNibble {
		if n >= len(addr) || addr[n]>>4 != m.prefixNibble {
			return false
		}
	}

	if k > 0 && !bytes.Equal(addr[len(addr)-k:], m.suffix) {
		return false
	}
	if m.hasSuffixNibble {
		i := len(addr) - k - 1
		if i < 0 || addr[i]&0x0f != m.suffixNibble {
			return false
		}
	}

	return true
}

// PrefixLen returns the prefix pattern length in hex characters.
func (m *Matcher) PrefixLen() int {
	n := 2 * len(m.prefix)
	if m.hasPrefixNibble {
		n++
	}
	return n
}

// SuffixLen returns the suffix pattern length in hex characters.
func (m *Matcher) SuffixLen() int {
	n := 2 * len(m.suffix)
	if m.hasSuffixNibble {
		n++
	}
	return n
}
