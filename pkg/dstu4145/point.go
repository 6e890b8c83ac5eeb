package dstu4145

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/mahdiidarabi/dstu4145/pkg/ec2m"
	"github.com/mahdiidarabi/dstu4145/pkg/gf2m"
)

// EncodePoint returns the compressed encoding of p: the big-endian x
// coordinate, ⌈m/8⌉ bytes long, whose lowest bit is replaced by Tr(y/x). When
// x is zero the bytes are left as they are.
func EncodePoint(p *ec2m.Point) ([]byte, error) {
	if p.IsInfinity() {
		return nil, makeError(ErrInvalidPointEncoding, "cannot encode the point at infinity")
	}

	x := p.X()
	out := x.Bytes()
	if x.IsZero() {
		return out, nil
	}

	z, err := p.Y().Div(x)
	if err != nil {
		return nil, fmt.Errorf("encode point: %w", err)
	}
	if trace(z).IsOne() {
		out[len(out)-1] |= 0x01
	} else {
		out[len(out)-1] &= 0xfe
	}
	return out, nil
}

// DecodePoint recovers a curve point from its compressed encoding. The
// encoding must be exactly ⌈m/8⌉ bytes. rand feeds the randomized quadratic
// solver; nil selects crypto/rand.Reader.
func DecodePoint(rand io.Reader, curve *ec2m.Curve, b []byte) (*ec2m.Point, error) {
	field := curve.Field()
	if len(b) != field.ByteLen() {
		str := fmt.Sprintf("encoded point is %d bytes, want %d", len(b), field.ByteLen())
		return nil, makeError(ErrInvalidPointEncoding, str)
	}
	rand = randOrDefault(rand)

	k := b[len(b)-1] & 0x01
	xp, err := field.SetBytes(b)
	if err != nil {
		return nil, makeError(ErrInvalidPointEncoding, fmt.Sprintf("encoded x: %v", err))
	}
	if !trace(xp).Equal(curve.A()) {
		xp = xp.AddOne()
	}

	var yp *gf2m.Element
	if xp.IsZero() {
		yp = curve.B().Sqrt()
	} else {
		inv, err := xp.Square().Inv()
		if err != nil {
			return nil, fmt.Errorf("decode point: %w", err)
		}
		beta := inv.Mul(curve.B()).Add(curve.A()).Add(xp)
		z, err := solveQuadraticEquation(rand, beta)
		if err != nil {
			return nil, err
		}
		if trace(z).IsOne() != (k == 1) {
			z = z.AddOne()
		}
		yp = xp.Mul(z)
	}

	p, err := curve.NewPoint(xp, yp)
	if err != nil {
		return nil, makeError(ErrInvalidPointEncoding, fmt.Sprintf("decoded point: %v", err))
	}
	return p, nil
}

// trace returns x + x² + x⁴ + ... + x^(2^(m-1)), which is always 0 or 1.
func trace(x *gf2m.Element) *gf2m.Element {
	t := x
	for i := 1; i < x.Field().Degree(); i++ {
		t = t.Square().Add(x)
	}
	return t
}

// solveQuadraticEquation returns a root z of z² + z = beta. A non-zero
// remainder w after the half-trace recurrence means Tr(beta) = 1 and there is
// no root at all; a zero z² + z means t had trace 0 and another t is drawn.
func solveQuadraticEquation(rand io.Reader, beta *gf2m.Element) (*gf2m.Element, error) {
	field := beta.Field()
	if beta.IsZero() {
		return field.Zero(), nil
	}

	m := field.Degree()
	for attempt := 0; attempt < 2*m+64; attempt++ {
		t, err := field.Random(rand)
		if err != nil {
			return nil, fmt.Errorf("quadratic solver randomness: %w", err)
		}

		z, w := field.Zero(), beta
		for i := 1; i < m; i++ {
			w2 := w.Square()
			z = z.Square().Add(w2.Mul(t))
			w = w2.Add(beta)
		}
		if !w.IsZero() {
			return nil, makeError(ErrInvalidPointEncoding, "z² + z = beta has no solution")
		}
		if !z.Square().Add(z).IsZero() {
			return z, nil
		}
	}
	return nil, makeError(ErrInvalidPointEncoding, "quadratic solver exceeded its retry bound")
}

func randOrDefault(r io.Reader) io.Reader {
	if r == nil {
		return rand.Reader
	}
	return r
}
