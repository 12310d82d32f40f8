// Package codec implements the canonical hashing scheme used to derive
// input, output, transaction, and block hashes, plus the Merkle root over a
// block's transactions.
package codec

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash is a 32-byte SHA256 digest.
type Hash [32]byte

// String returns the lowercase hex encoding of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether h is the all-zero hash.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// Sum256 computes a single SHA256 digest.
func Sum256(data []byte) Hash {
	return Hash(sha256.Sum256(data))
}

// DoubleHash computes SHA256(hex_lowercase(SHA256(data))). The inner digest
// is re-encoded as its 64-character hex string before being re-hashed; this
// differs from a conventional raw-bytes double hash and nodes that hash raw
// bytes on the second pass will diverge from this implementation.
func DoubleHash(data []byte) Hash {
	first := Sum256(data)
	hexStr := first.String()
	return Sum256([]byte(hexStr))
}

// HexToHash parses a 64-character hex string into a Hash.
func HexToHash(s string) (Hash, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Hash{}, err
	}
	var h Hash
	if len(b) != len(h) {
		return Hash{}, errInvalidHashLength
	}
	copy(h[:], b)
	return h, nil
}

// MarshalJSON encodes the hash as a hex string.
func (h Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON decodes a hex string into a hash.
func (h *Hash) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*h = Hash{}
		return nil
	}
	decoded, err := HexToHash(s)
	if err != nil {
		return fmt.Errorf("invalid hash hex: %w", err)
	}
	*h = decoded
	return nil
}
