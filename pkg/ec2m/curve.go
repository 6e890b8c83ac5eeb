// Package ec2m implements affine arithmetic on binary elliptic curves
// y² + xy = x³ + ax² + b over GF(2^m).
//
// Points are immutable. The point at infinity is represented explicitly and is
// the identity of the group law.
package ec2m

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/mahdiidarabi/dstu4145/pkg/gf2m"
)

var (
	// ErrInvalidCoefficient is returned when a curve coefficient is out of
	// range or b is zero, which would make the curve singular.
	ErrInvalidCoefficient = errors.New("ec2m: invalid curve coefficient")

	// ErrNotOnCurve is returned when coordinates do not satisfy the curve
	// equation.
	ErrNotOnCurve = errors.New("ec2m: point is not on the curve")
)

// Curve is a non-supersingular binary curve.
type Curve struct {
	field *gf2m.Field
	a, b  *gf2m.Element
}

// NewCurve returns the curve y² + xy = x³ + ax² + b over f.
func NewCurve(f *gf2m.Field, a, b *big.Int) (*Curve, error) {
	ea, err := f.NewElement(a)
	if err != nil {
		return nil, fmt.Errorf("%w: a: %v", ErrInvalidCoefficient, err)
	}
	eb, err := f.NewElement(b)
	if err != nil {
		return nil, fmt.Errorf("%w: b: %v", ErrInvalidCoefficient, err)
	}
	if eb.IsZero() {
		return nil, fmt.Errorf("%w: b is zero", ErrInvalidCoefficient)
	}
	return &Curve{field: f, a: ea, b: eb}, nil
}

// Field returns the underlying field.
func (c *Curve) Field() *gf2m.Field { return c.field }

// A returns the coefficient a.
func (c *Curve) A() *gf2m.Element { return c.a }

// B returns the coefficient b.
func (c *Curve) B() *gf2m.Element { return c.b }

// Equal reports whether c and o describe the same curve.
func (c *Curve) Equal(o *Curve) bool {
	if c == o {
		return true
	}
	if c == nil || o == nil {
		return false
	}
	return c.field.Equal(o.field) && c.a.Equal(o.a) && c.b.Equal(o.b)
}

// Infinity returns the identity of the group.
func (c *Curve) Infinity() *Point {
	return &Point{curve: c, inf: true}
}

// IsOnCurve reports whether (x, y) satisfies y² + xy = x³ + ax² + b.
func (c *Curve) IsOnCurve(x, y *gf2m.Element) bool {
	lhs := y.Square().Add(x.Mul(y))
	x2 := x.Square()
	rhs := x2.Mul(x).Add(c.a.Mul(x2)).Add(c.b)
	return lhs.Equal(rhs)
}

// NewPoint returns the affine point (x, y) after checking it lies on c.
func (c *Curve) NewPoint(x, y *gf2m.Element) (*Point, error) {
	if !x.Field().Equal(c.field) || !y.Field().Equal(c.field) {
		return nil, fmt.Errorf("%w: coordinates from another field", ErrNotOnCurve)
	}
	if !c.IsOnCurve(x, y) {
		return nil, ErrNotOnCurve
	}
	return &Point{curve: c, x: x, y: y}, nil
}

// ValidatePoint is NewPoint for integer coordinates.
func (c *Curve) ValidatePoint(x, y *big.Int) (*Point, error) {
	ex, err := c.field.NewElement(x)
	if err != nil {
		return nil, fmt.Errorf("%w: x: %v", ErrNotOnCurve, err)
	}
	ey, err := c.field.NewElement(y)
	if err != nil {
		return nil, fmt.Errorf("%w: y: %v", ErrNotOnCurve, err)
	}
	return c.NewPoint(ex, ey)
}

func (c *Curve) check(p *Point) {
	if !c.Equal(p.curve) {
		panic("ec2m: point from another curve")
	}
}

// Neg returns -p = (x, x + y).
func (c *Curve) Neg(p *Point) *Point {
	c.check(p)
	if p.inf {
		return p
	}
	return &Point{curve: c, x: p.x, y: p.x.Add(p.y)}
}

// Add returns p + q.
func (c *Curve) Add(p, q *Point) *Point {
	c.check(p)
	c.check(q)
	switch {
	case p.inf:
		return q
	case q.inf:
		return p
	}

	dx := p.x.Add(q.x)
	dy := p.y.Add(q.y)
	if dx.IsZero() {
		if dy.IsZero() {
			return c.Double(p)
		}
		return c.Infinity()
	}

	l := mustDiv(dy, dx)
	x3 := l.Square().Add(l).Add(dx).Add(c.a)
	y3 := l.Mul(p.x.Add(x3)).Add(x3).Add(p.y)
	return &Point{curve: c, x: x3, y: y3}
}

// Double returns 2p. Points with x = 0 have order two.
func (c *Curve) Double(p *Point) *Point {
	c.check(p)
	if p.inf || p.x.IsZero() {
		return c.Infinity()
	}

	l := p.x.Add(mustDiv(p.y, p.x))
	x3 := l.Square().Add(l).Add(c.a)
	y3 := p.x.Square().Add(l.AddOne().Mul(x3))
	return &Point{curve: c, x: x3, y: y3}
}

// ScalarMult returns k·p using left-to-right double-and-add. Negative k
// multiplies -p.
func (c *Curve) ScalarMult(p *Point, k *big.Int) *Point {
	c.check(p)
	if k.Sign() < 0 {
		return c.ScalarMult(c.Neg(p), new(big.Int).Neg(k))
	}
	r := c.Infinity()
	for i := k.BitLen() - 1; i >= 0; i-- {
		r = c.Double(r)
		if k.Bit(i) == 1 {
			r = c.Add(r, p)
		}
	}
	return r
}

// SumOfTwoMultiplies returns a·p + b·q in a single pass over the bits of a
// and b (Shamir's trick). Both scalars must be non-negative.
func (c *Curve) SumOfTwoMultiplies(p *Point, a *big.Int, q *Point, b *big.Int) *Point {
	c.check(p)
	c.check(q)
	if a.Sign() < 0 || b.Sign() < 0 {
		return c.Add(c.ScalarMult(p, a), c.ScalarMult(q, b))
	}

	pq := c.Add(p, q)
	n := a.BitLen()
	if b.BitLen() > n {
		n = b.BitLen()
	}
	r := c.Infinity()
	for i := n - 1; i >= 0; i-- {
		r = c.Double(r)
		switch a.Bit(i)<<1 | b.Bit(i) {
		case 1:
			r = c.Add(r, q)
		case 2:
			r = c.Add(r, p)
		case 3:
			r = c.Add(r, pq)
		}
	}
	return r
}

// mustDiv divides by an element the caller has already checked to be
// non-zero.
func mustDiv(n, d *gf2m.Element) *gf2m.Element {
	q, err := n.Div(d)
	if err != nil {
		panic("ec2m: " + err.Error())
	}
	return q
}
