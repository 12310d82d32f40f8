package address

import (
	"crypto/rand"
	"crypto/sha256"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/puzzlecoin/puzzlechain/pkg/curve"
)

// SignatureSize is the length of a raw r||s ECDSA signature.
const SignatureSize = 64

var secpN = secp256k1.S256().Params().N

// halfN is used for low-s normalization: s and N-s verify identically, so
// signatures are canonicalized to the smaller of the two to prevent
// malleability (Open Question #3).
var halfN = new(big.Int).Rsh(new(big.Int).Set(secpN), 1)

// Sign produces a raw 64-byte r||s ECDSA signature over msg's SHA256 digest.
// The s value is normalized to its low-s form.
func (pk *PrivateKey) Sign(msg []byte) ([]byte, error) {
	z := hashToScalar(msg)
	for {
		k, err := randScalar()
		if err != nil {
			return nil, err
		}
		R := curve.ScalarBaseMult(k)
		r := new(big.Int).Mod(R.X, secpN)
		if r.Sign() == 0 {
			continue
		}
		kInv := new(big.Int).ModInverse(k, secpN)
		if kInv == nil {
			continue
		}
		s := new(big.Int).Mul(r, pk.D)
		s.Add(s, z)
		s.Mul(s, kInv)
		s.Mod(s, secpN)
		if s.Sign() == 0 {
			continue
		}
		if s.Cmp(halfN) > 0 {
			s.Sub(secpN, s)
		}
		out := make([]byte, SignatureSize)
		r.FillBytes(out[:32])
		s.FillBytes(out[32:])
		return out, nil
	}
}

// Verify checks a raw 64-byte r||s ECDSA signature against msg and a public key.
func Verify(msg, sig []byte, pub PublicKey) bool {
	if len(sig) != SignatureSize {
		return false
	}
	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:])
	if r.Sign() <= 0 || r.Cmp(secpN) >= 0 {
		return false
	}
	if s.Sign() <= 0 || s.Cmp(secpN) >= 0 {
		return false
	}
	if s.Cmp(halfN) > 0 {
		// Reject high-s signatures defensively; a conforming signer never
		// produces them.
		return false
	}
	pt, err := pub.Point()
	if err != nil {
		return false
	}
	z := hashToScalar(msg)
	sInv := new(big.Int).ModInverse(s, secpN)
	if sInv == nil {
		return false
	}
	u1 := new(big.Int).Mod(new(big.Int).Mul(z, sInv), secpN)
	u2 := new(big.Int).Mod(new(big.Int).Mul(r, sInv), secpN)

	p1 := curve.ScalarBaseMult(u1)
	p2 := curve.ScalarMult(u2, pt)
	sum := curve.Add(p1, p2)
	if sum.IsInfinity() {
		return false
	}
	x := new(big.Int).Mod(sum.X, secpN)
	return x.Cmp(r) == 0
}

func hashToScalar(msg []byte) *big.Int {
	h := sha256.Sum256(msg)
	z := new(big.Int).SetBytes(h[:])
	return z.Mod(z, secpN)
}

func randScalar() (*big.Int, error) {
	for {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return nil, err
		}
		k := new(big.Int).SetBytes(b)
		if k.Sign() != 0 && k.Cmp(secpN) < 0 {
			return k, nil
		}
	}
}
