// Package fingerprint computes content fingerprints for change detection.
//
// The fingerprint is the SHA-256 digest of the raw bytes, hex encoded. It is
// a pure function of the content: no salt, no timestamp, no machine-specific
// input. Identical bytes always produce identical fingerprints, and any
// content difference produces a different fingerprint with overwhelming
// probability. The fingerprint detects change; it is not a cryptographic
// integrity guarantee against an adversary.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

// Sum returns the fingerprint of data as a lowercase hex string.
// It is total over all byte sequences, including empty input.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// SumReader returns the fingerprint of everything read from r.
func SumReader(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("hashing content: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
