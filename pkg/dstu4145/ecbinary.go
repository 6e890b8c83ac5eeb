package dstu4145

import (
	"bytes"
	"fmt"
	"io"
	"math/big"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"

	"github.com/mahdiidarabi/dstu4145/pkg/ec2m"
)

var versionTag = asn1.Tag(0).Constructed().ContextSpecific()

// ECBinary holds explicit domain parameters in their encoded form:
//
//	ECBinary ::= SEQUENCE {
//	    version [0] EXPLICIT INTEGER DEFAULT 0,
//	    f       BinaryField,
//	    a       INTEGER (0..1),
//	    b       OCTET STRING,
//	    n       INTEGER,
//	    bp      OCTET STRING }
//
// b is the big-endian curve coefficient and bp the compressed base point.
// Call Domain to get a usable curve.
type ECBinary struct {
	version int64
	field   BinaryField
	a       int
	b       []byte
	n       *big.Int
	bp      []byte
}

// NewECBinary encodes d.
func NewECBinary(d *Domain) (*ECBinary, error) {
	if d.Curve.A().BigInt().BitLen() > 1 {
		return nil, makeError(ErrInvalidDomain, "coefficient a must be 0 or 1")
	}
	bp, err := EncodePoint(d.G)
	if err != nil {
		return nil, err
	}
	return &ECBinary{
		field: binaryFieldOf(d.Curve.Field()),
		a:     int(d.Curve.A().BigInt().Int64()),
		b:     d.Curve.B().Bytes(),
		n:     new(big.Int).Set(d.N),
		bp:    bp,
	}, nil
}

// Version returns the explicit version, zero unless the encoding carried one.
func (e *ECBinary) Version() int64 { return e.version }

// Field returns the field descriptor.
func (e *ECBinary) Field() BinaryField { return e.field }

// A returns the curve coefficient a.
func (e *ECBinary) A() int { return e.a }

// B returns a copy of the encoded coefficient b.
func (e *ECBinary) B() []byte { return bytes.Clone(e.b) }

// N returns a copy of the base point order.
func (e *ECBinary) N() *big.Int { return new(big.Int).Set(e.n) }

// G returns a copy of the compressed base point.
func (e *ECBinary) G() []byte { return bytes.Clone(e.bp) }

// Domain builds and validates the curve the parameters describe. rand feeds
// base point decompression; nil selects crypto/rand.Reader.
func (e *ECBinary) Domain(rand io.Reader) (*Domain, error) {
	if e.a != 0 && e.a != 1 {
		return nil, makeError(ErrInvalidDomain, fmt.Sprintf("coefficient a = %d, want 0 or 1", e.a))
	}
	field, err := e.field.NewField()
	if err != nil {
		return nil, makeError(ErrInvalidDomain, fmt.Sprintf("%v: %v", e.field, err))
	}
	if len(e.b) > field.ByteLen() {
		return nil, makeError(ErrInvalidDomain, "coefficient b is longer than a field element")
	}
	curve, err := ec2m.NewCurve(field, big.NewInt(int64(e.a)), new(big.Int).SetBytes(e.b))
	if err != nil {
		return nil, makeError(ErrInvalidDomain, err.Error())
	}
	g, err := DecodePoint(rand, curve, e.bp)
	if err != nil {
		return nil, fmt.Errorf("base point: %w", err)
	}
	return NewDomain(curve, g, e.n)
}

// MarshalDER returns the DER encoding of e. The version is omitted when zero.
func (e *ECBinary) MarshalDER() ([]byte, error) {
	var b cryptobyte.Builder
	e.marshal(&b)
	return b.Bytes()
}

func (e *ECBinary) marshal(b *cryptobyte.Builder) {
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		if e.version != 0 {
			b.AddASN1(versionTag, func(b *cryptobyte.Builder) {
				b.AddASN1Int64(e.version)
			})
		}
		e.field.marshal(b)
		b.AddASN1Int64(int64(e.a))
		b.AddASN1OctetString(e.b)
		b.AddASN1BigInt(e.n)
		b.AddASN1OctetString(e.bp)
	})
}

// ParseECBinary parses a DER encoded ECBinary. It checks structure only; use
// Domain to validate the parameters themselves.
func ParseECBinary(der []byte) (*ECBinary, error) {
	input := cryptobyte.String(der)
	e, err := readECBinary(&input)
	if err != nil {
		return nil, err
	}
	if !input.Empty() {
		return nil, makeError(ErrParse, "trailing data after ECBinary")
	}
	return e, nil
}

func readECBinary(s *cryptobyte.String) (*ECBinary, error) {
	var seq cryptobyte.String
	if !s.ReadASN1(&seq, asn1.SEQUENCE) {
		return nil, makeError(ErrParse, "ECBinary is not a sequence")
	}

	e := &ECBinary{n: new(big.Int)}
	if !seq.ReadOptionalASN1Integer(&e.version, versionTag, int64(0)) {
		return nil, makeError(ErrParse, "invalid ECBinary version")
	}

	var err error
	if e.field, err = readBinaryField(&seq); err != nil {
		return nil, err
	}

	var b, bp cryptobyte.String
	switch {
	case !seq.ReadASN1Integer(&e.a):
		return nil, makeError(ErrParse, "invalid coefficient a")
	case !seq.ReadASN1(&b, asn1.OCTET_STRING):
		return nil, makeError(ErrParse, "invalid coefficient b")
	case !seq.ReadASN1Integer(e.n):
		return nil, makeError(ErrParse, "invalid order n")
	case !seq.ReadASN1(&bp, asn1.OCTET_STRING):
		return nil, makeError(ErrParse, "invalid base point")
	case !seq.Empty():
		return nil, makeError(ErrParse, "trailing data in ECBinary")
	}
	e.b = bytes.Clone(b)
	e.bp = bytes.Clone(bp)
	return e, nil
}
