// Package curve exposes secp256k1 point arithmetic (addition, doubling,
// scalar multiplication) as plain big.Int affine coordinates. The field and
// scalar arithmetic underneath is delegated to decred's audited secp256k1
// implementation rather than re-derived from scratch.
package curve

import (
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Point is an affine point on secp256k1. The point at infinity is
// represented as the (0, 0) sentinel, matching the convention that (0,0)
// never lies on the curve (0 is not a valid y for x=0 since 7 is not a QR
// trivially satisfying the curve equation with x=0).
type Point struct {
	X *big.Int
	Y *big.Int
}

// Infinity is the additive identity.
func Infinity() Point {
	return Point{X: big.NewInt(0), Y: big.NewInt(0)}
}

// IsInfinity reports whether p is the point at infinity sentinel.
func (p Point) IsInfinity() bool {
	return p.X.Sign() == 0 && p.Y.Sign() == 0
}

// Generator returns the secp256k1 base point G.
func Generator() Point {
	_, gx, gy := curveParams()
	return Point{X: new(big.Int).Set(gx), Y: new(big.Int).Set(gy)}
}

// curveParams returns (field prime, Gx, Gy) for secp256k1.
func curveParams() (*big.Int, *big.Int, *big.Int) {
	params := secp256k1.S256().Params()
	return params.P, params.Gx, params.Gy
}

func toJacobian(p Point) secp256k1.JacobianPoint {
	var j secp256k1.JacobianPoint
	if p.IsInfinity() {
		j.Z.SetInt(0)
		return j
	}
	j.X.SetByteSlice(p.X.Bytes())
	j.Y.SetByteSlice(p.Y.Bytes())
	j.Z.SetInt(1)
	return j
}

func fromJacobian(j secp256k1.JacobianPoint) Point {
	j.ToAffine()
	if j.X.IsZero() && j.Y.IsZero() {
		return Infinity()
	}
	xb := j.X.Bytes()
	yb := j.Y.Bytes()
	return Point{X: new(big.Int).SetBytes(xb[:]), Y: new(big.Int).SetBytes(yb[:])}
}

// Add computes p1 + p2, handling the identity and point-doubling cases.
func Add(p1, p2 Point) Point {
	if p1.IsInfinity() {
		return p2
	}
	if p2.IsInfinity() {
		return p1
	}
	if p1.X.Cmp(p2.X) == 0 {
		if p1.Y.Cmp(p2.Y) != 0 {
			// Vertical line: opposite y values, result is the identity.
			return Infinity()
		}
		return Double(p1)
	}
	j1 := toJacobian(p1)
	j2 := toJacobian(p2)
	var result secp256k1.JacobianPoint
	secp256k1.AddNonConst(&j1, &j2, &result)
	return fromJacobian(result)
}

// Double computes 2*p.
func Double(p Point) Point {
	if p.IsInfinity() {
		return p
	}
	j := toJacobian(p)
	var result secp256k1.JacobianPoint
	secp256k1.DoubleNonConst(&j, &result)
	return fromJacobian(result)
}

// ScalarMult computes k*p via the library's double-and-add implementation.
func ScalarMult(k *big.Int, p Point) Point {
	if k.Sign() == 0 || p.IsInfinity() {
		return Infinity()
	}
	var scalar secp256k1.ModNScalar
	scalar.SetByteSlice(k.Bytes())
	j := toJacobian(p)
	var result secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(&scalar, &j, &result)
	return fromJacobian(result)
}

// ScalarBaseMult computes k*G.
func ScalarBaseMult(k *big.Int) Point {
	var scalar secp256k1.ModNScalar
	scalar.SetByteSlice(k.Bytes())
	var result secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&scalar, &result)
	return fromJacobian(result)
}
