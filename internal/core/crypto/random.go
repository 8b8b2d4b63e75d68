// Package crypto provides random token generation.
// The entropy source is passed in, so callers decide between crypto/rand
// and a deterministic reader in tests.
package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"io"

	"github.com/cockroachdb/errors"
)

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrShortRead is returned when the entropy source cannot supply enough bytes.
	ErrShortRead = errors.New("random source returned too few bytes")
)

// DefaultLength is the hex length RandomHex callers use when none is given.
const DefaultLength = 16

// =============================================================================
// Random Hex Strings
// =============================================================================

// RandomHex reads length/2 bytes from r and returns them hex encoded.
//
// The byte count uses integer division, so an odd length yields one
// character fewer than requested and lengths below 2 yield "".
// A nil reader uses crypto/rand.
//
// Example:
//
//	RandomHex(rand.Reader, 16) // e.g. "9f86d081884c7d65"
//	RandomHex(rand.Reader, 7)  // six characters
func RandomHex(r io.Reader, length int) (string, error) {
	if r == nil {
		r = rand.Reader
	}

	n := length / 2
	if n <= 0 {
		return "", nil
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", errors.Mark(errors.Wrapf(err, "read %d random bytes", n), ErrShortRead)
	}
	return hex.EncodeToString(buf), nil
}
