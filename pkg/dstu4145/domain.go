package dstu4145

import (
	"fmt"
	"math/big"

	"github.com/mahdiidarabi/dstu4145/pkg/ec2m"
)

// primalityRounds is the number of Miller-Rabin rounds used to check n.
const primalityRounds = 32

// Domain is a validated curve, base point and base point order. Treat it as
// immutable; it is shared by every key and signer built on it.
type Domain struct {
	Curve *ec2m.Curve
	G     *ec2m.Point
	N     *big.Int
}

// NewDomain checks that n is prime and that g is a point of order n on
// curve.
func NewDomain(curve *ec2m.Curve, g *ec2m.Point, n *big.Int) (*Domain, error) {
	if n == nil || n.Cmp(big.NewInt(1)) <= 0 {
		return nil, makeError(ErrInvalidDomain, "order must be greater than one")
	}
	if !n.ProbablyPrime(primalityRounds) {
		return nil, makeError(ErrInvalidDomain, fmt.Sprintf("order %x is not prime", n))
	}
	if g.IsInfinity() || !g.Curve().Equal(curve) {
		return nil, makeError(ErrInvalidDomain, "base point is not an affine point of the curve")
	}
	if !curve.ScalarMult(g, n).IsInfinity() {
		return nil, makeError(ErrInvalidDomain, "base point does not have the given order")
	}
	return &Domain{Curve: curve, G: g, N: new(big.Int).Set(n)}, nil
}

// Equal reports whether d and o describe the same group.
func (d *Domain) Equal(o *Domain) bool {
	return d.Curve.Equal(o.Curve) && d.G.Equal(o.G) && d.N.Cmp(o.N) == 0
}
