package dstu4145

import (
	"fmt"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"

	"github.com/mahdiidarabi/dstu4145/pkg/gf2m"
)

// BinaryField describes the reduction polynomial of GF(2^m): either the
// trinomial x^m + x^k + 1 or the pentanomial x^m + x^k3 + x^k2 + x^k1 + 1.
//
//	BinaryField ::= SEQUENCE {
//	    m INTEGER,
//	    CHOICE { trinomial INTEGER, pentanomial SEQUENCE { k INTEGER, j INTEGER, l INTEGER } } }
//
// BinaryField is a comparable value.
type BinaryField struct {
	m          int
	k1, k2, k3 int // k2 == 0 selects the trinomial with k = k1
}

// NewTrinomial returns the descriptor of x^m + x^k + 1.
func NewTrinomial(m, k int) BinaryField {
	return BinaryField{m: m, k1: k}
}

// NewPentanomial returns the descriptor of x^m + x^k3 + x^k2 + x^k1 + 1. A zero
// k2 yields the trinomial x^m + x^k1 + 1.
func NewPentanomial(m, k1, k2, k3 int) BinaryField {
	if k2 == 0 {
		return NewTrinomial(m, k1)
	}
	return BinaryField{m: m, k1: k1, k2: k2, k3: k3}
}

// M returns the field degree.
func (f BinaryField) M() int { return f.m }

// Trinomial returns the middle exponent when f is a trinomial.
func (f BinaryField) Trinomial() (k int, ok bool) {
	if f.k2 != 0 {
		return 0, false
	}
	return f.k1, true
}

// Pentanomial returns the three middle exponents, in encoding order, when f is
// a pentanomial.
func (f BinaryField) Pentanomial() (k1, k2, k3 int, ok bool) {
	if f.k2 == 0 {
		return 0, 0, 0, false
	}
	return f.k1, f.k2, f.k3, true
}

func (f BinaryField) String() string {
	if k, ok := f.Trinomial(); ok {
		return fmt.Sprintf("trinomial(m=%d, k=%d)", f.m, k)
	}
	return fmt.Sprintf("pentanomial(m=%d, k=%d, j=%d, l=%d)", f.m, f.k1, f.k2, f.k3)
}

// NewField builds the arithmetic for the described field. It fails if the
// polynomial is malformed or reducible.
func (f BinaryField) NewField() (*gf2m.Field, error) {
	if k, ok := f.Trinomial(); ok {
		return gf2m.NewField(f.m, k)
	}
	return gf2m.NewField(f.m, f.k1, f.k2, f.k3)
}

// binaryFieldOf derives the descriptor from the exponents of a field.
func binaryFieldOf(field *gf2m.Field) BinaryField {
	ks := field.Exponents()
	if len(ks) == 1 {
		return NewTrinomial(field.Degree(), ks[0])
	}
	return NewPentanomial(field.Degree(), ks[0], ks[1], ks[2])
}

// MarshalDER returns the DER encoding of f.
func (f BinaryField) MarshalDER() ([]byte, error) {
	var b cryptobyte.Builder
	f.marshal(&b)
	return b.Bytes()
}

func (f BinaryField) marshal(b *cryptobyte.Builder) {
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1Int64(int64(f.m))
		if k, ok := f.Trinomial(); ok {
			b.AddASN1Int64(int64(k))
			return
		}
		b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
			b.AddASN1Int64(int64(f.k1))
			b.AddASN1Int64(int64(f.k2))
			b.AddASN1Int64(int64(f.k3))
		})
	})
}

// ParseBinaryField parses a DER encoded BinaryField.
func ParseBinaryField(der []byte) (BinaryField, error) {
	input := cryptobyte.String(der)
	f, err := readBinaryField(&input)
	if err != nil {
		return BinaryField{}, err
	}
	if !input.Empty() {
		return BinaryField{}, makeError(ErrParse, "trailing data after binary field")
	}
	return f, nil
}

// readBinaryField consumes one BinaryField from s. The variant is chosen by
// the tag of the second element.
func readBinaryField(s *cryptobyte.String) (BinaryField, error) {
	var seq cryptobyte.String
	if !s.ReadASN1(&seq, asn1.SEQUENCE) {
		return BinaryField{}, makeError(ErrParse, "binary field is not a sequence")
	}

	var m int
	if !seq.ReadASN1Integer(&m) || m <= 0 || m > gf2m.MaxDegree {
		return BinaryField{}, makeError(ErrParse, "invalid binary field degree")
	}

	var f BinaryField
	switch {
	case seq.PeekASN1Tag(asn1.INTEGER):
		var k int
		if !seq.ReadASN1Integer(&k) || k <= 0 {
			return BinaryField{}, makeError(ErrParse, "invalid trinomial exponent")
		}
		f = NewTrinomial(m, k)

	case seq.PeekASN1Tag(asn1.SEQUENCE):
		var coefs cryptobyte.String
		var k, j, l int
		if !seq.ReadASN1(&coefs, asn1.SEQUENCE) ||
			!coefs.ReadASN1Integer(&k) ||
			!coefs.ReadASN1Integer(&j) ||
			!coefs.ReadASN1Integer(&l) ||
			!coefs.Empty() {
			return BinaryField{}, makeError(ErrParse, "pentanomial must be a sequence of three integers")
		}
		if k <= 0 || j <= 0 || l <= 0 {
			return BinaryField{}, makeError(ErrParse, "invalid pentanomial exponent")
		}
		f = NewPentanomial(m, k, j, l)

	default:
		return BinaryField{}, makeError(ErrParse, "binary field basis is neither trinomial nor pentanomial")
	}

	if !seq.Empty() {
		return BinaryField{}, makeError(ErrParse, "trailing data in binary field")
	}
	return f, nil
}
