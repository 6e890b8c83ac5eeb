package ec2m

import (
	"fmt"

	"github.com/mahdiidarabi/dstu4145/pkg/gf2m"
)

// Point is an affine point on a Curve, or the point at infinity.
type Point struct {
	curve *Curve
	x, y  *gf2m.Element
	inf   bool
}

// Curve returns the curve p belongs to.
func (p *Point) Curve() *Curve { return p.curve }

// IsInfinity reports whether p is the identity.
func (p *Point) IsInfinity() bool { return p.inf }

// X returns the affine x coordinate. It is nil for the point at infinity.
func (p *Point) X() *gf2m.Element { return p.x }

// Y returns the affine y coordinate. It is nil for the point at infinity.
func (p *Point) Y() *gf2m.Element { return p.y }

// Equal reports whether p and q are the same point of the same curve.
func (p *Point) Equal(q *Point) bool {
	if !p.curve.Equal(q.curve) {
		return false
	}
	if p.inf || q.inf {
		return p.inf == q.inf
	}
	return p.x.Equal(q.x) && p.y.Equal(q.y)
}

func (p *Point) String() string {
	if p.inf {
		return "(infinity)"
	}
	return fmt.Sprintf("(%s, %s)", p.x, p.y)
}
