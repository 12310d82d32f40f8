// Package address implements key pairs, ECDSA signing/verification, and
// Base58Check address derivation over secp256k1.
package address

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/puzzlecoin/puzzlechain/pkg/curve"
)

// PublicKeySize is the length of an uncompressed public key: 0x04 || X(32) || Y(32).
const PublicKeySize = 65

// PublicKey is the uncompressed point encoding used throughout the wire
// format: 0x04 || X(32) || Y(32).
type PublicKey [PublicKeySize]byte

// PrivateKey is a 256-bit scalar, uniformly random over [1, N).
type PrivateKey struct {
	D *big.Int
}

// GenerateKey creates a new random private key.
func GenerateKey() (*PrivateKey, error) {
	n := secp256k1.S256().Params().N
	for {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return nil, err
		}
		d := new(big.Int).SetBytes(b)
		if d.Sign() != 0 && d.Cmp(n) < 0 {
			return &PrivateKey{D: d}, nil
		}
	}
}

// PrivateKeyFromScalar builds a PrivateKey from a raw 256-bit integer.
func PrivateKeyFromScalar(d *big.Int) (*PrivateKey, error) {
	n := secp256k1.S256().Params().N
	if d.Sign() <= 0 || d.Cmp(n) >= 0 {
		return nil, errors.New("address: private key scalar out of range")
	}
	return &PrivateKey{D: new(big.Int).Set(d)}, nil
}

// PublicKey derives the uncompressed public key pubkey = d*G.
func (pk *PrivateKey) PublicKey() PublicKey {
	p := curve.ScalarBaseMult(pk.D)
	return encodePoint(p)
}

// encodePoint renders an affine curve point as 0x04 || X(32) || Y(32).
func encodePoint(p curve.Point) PublicKey {
	var out PublicKey
	out[0] = 0x04
	xb := p.X.Bytes()
	yb := p.Y.Bytes()
	copy(out[1+32-len(xb):33], xb)
	copy(out[33+32-len(yb):65], yb)
	return out
}

// Point decodes the public key back into its affine curve point.
func (pub PublicKey) Point() (curve.Point, error) {
	if pub[0] != 0x04 {
		return curve.Point{}, errors.New("address: public key must be uncompressed (0x04 prefix)")
	}
	x := new(big.Int).SetBytes(pub[1:33])
	y := new(big.Int).SetBytes(pub[33:65])
	return curve.Point{X: x, Y: y}, nil
}

// Base64 encodes the public key as a base64 string, the wire representation
// used for the "address" field of inputs/outputs (Open Question #4).
func (pub PublicKey) Base64() string {
	return base64.StdEncoding.EncodeToString(pub[:])
}

// PublicKeyFromBase64 decodes a base64-encoded uncompressed public key.
func PublicKeyFromBase64(s string) (PublicKey, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return PublicKey{}, err
	}
	if len(b) != PublicKeySize {
		return PublicKey{}, errors.New("address: public key must be 65 bytes")
	}
	var pub PublicKey
	copy(pub[:], b)
	return pub, nil
}
