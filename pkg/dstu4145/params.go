package dstu4145

import (
	"bytes"
	"encoding/asn1"
	"fmt"
	"io"

	"golang.org/x/crypto/cryptobyte"
	cryptobyte_asn1 "golang.org/x/crypto/cryptobyte/asn1"
)

// defaultDKE is the DKE assumed when a parameter set carries none.
var defaultDKE = [64]byte{
	0xa9, 0xd6, 0xeb, 0x45, 0xf1, 0x3c, 0x70, 0x82,
	0x80, 0xc4, 0x96, 0x7b, 0x23, 0x1f, 0x5e, 0xad,
	0xf6, 0x58, 0xeb, 0xa4, 0xc0, 0x37, 0x29, 0x1d,
	0x38, 0xd9, 0x6b, 0xf0, 0x25, 0xca, 0x4e, 0x17,
	0xf8, 0xe9, 0x72, 0x0d, 0xc6, 0x15, 0xb4, 0x3a,
	0x28, 0x97, 0x5f, 0x0b, 0xc1, 0xde, 0xa3, 0x64,
	0x38, 0xb5, 0x64, 0xea, 0x2c, 0x17, 0x9f, 0xd0,
	0x12, 0x3e, 0x6d, 0xb8, 0xfa, 0xc5, 0x79, 0x04,
}

// DefaultDKE returns a copy of the standard 64-byte DKE.
func DefaultDKE() []byte {
	return bytes.Clone(defaultDKE[:])
}

// Params is a DSTU 4145 parameter set: a named curve or explicit ECBinary
// parameters, plus the DKE.
//
//	DSTU4145Params ::= SEQUENCE {
//	    params CHOICE { namedCurve OBJECT IDENTIFIER, ecbinary ECBinary },
//	    dke    OCTET STRING OPTIONAL }
type Params struct {
	namedCurve asn1.ObjectIdentifier
	ecBinary   *ECBinary
	dke        []byte
}

// NewNamedParams returns a parameter set referring to a named curve. A nil
// dke selects the default.
func NewNamedParams(oid asn1.ObjectIdentifier, dke []byte) (*Params, error) {
	if len(oid) == 0 {
		return nil, makeError(ErrUnknownCurve, "empty curve identifier")
	}
	p := &Params{namedCurve: append(asn1.ObjectIdentifier(nil), oid...)}
	if err := p.setDKE(dke); err != nil {
		return nil, err
	}
	return p, nil
}

// NewECBinaryParams returns a parameter set with explicit parameters. A nil
// dke selects the default.
func NewECBinaryParams(ec *ECBinary, dke []byte) (*Params, error) {
	if ec == nil {
		return nil, makeError(ErrInvalidDomain, "nil ECBinary")
	}
	p := &Params{ecBinary: ec}
	if err := p.setDKE(dke); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Params) setDKE(dke []byte) error {
	if dke == nil {
		p.dke = DefaultDKE()
		return nil
	}
	if len(dke) != len(defaultDKE) {
		return makeError(ErrInvalidDomain, fmt.Sprintf("dke is %d bytes, want %d", len(dke), len(defaultDKE)))
	}
	p.dke = bytes.Clone(dke)
	return nil
}

// IsNamedCurve reports whether p refers to a named curve.
func (p *Params) IsNamedCurve() bool {
	return p.namedCurve != nil
}

// NamedCurve returns the curve identifier, or nil for explicit parameters.
func (p *Params) NamedCurve() asn1.ObjectIdentifier {
	return p.namedCurve
}

// ECBinary returns the explicit parameters, or nil for a named curve.
func (p *Params) ECBinary() *ECBinary {
	return p.ecBinary
}

// DKE returns a copy of the DKE.
func (p *Params) DKE() []byte {
	return bytes.Clone(p.dke)
}

// Domain resolves p to a validated domain, looking named curves up in the
// registry.
func (p *Params) Domain(rand io.Reader) (*Domain, error) {
	if p.IsNamedCurve() {
		return LookupNamedCurve(p.namedCurve)
	}
	return p.ecBinary.Domain(rand)
}

// MarshalDER returns the DER encoding of p. The DKE is left out when it is
// the default.
func (p *Params) MarshalDER() ([]byte, error) {
	var b cryptobyte.Builder
	b.AddASN1(cryptobyte_asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		if p.IsNamedCurve() {
			b.AddASN1ObjectIdentifier(p.namedCurve)
		} else {
			p.ecBinary.marshal(b)
		}
		if !bytes.Equal(p.dke, defaultDKE[:]) {
			b.AddASN1OctetString(p.dke)
		}
	})
	return b.Bytes()
}

// ParseParams parses a DER encoded DSTU4145Params. The choice is decided by
// the tag of the first element; a DKE of any length other than 64 bytes is a
// parse error.
func ParseParams(der []byte) (*Params, error) {
	input := cryptobyte.String(der)
	var seq cryptobyte.String
	if !input.ReadASN1(&seq, cryptobyte_asn1.SEQUENCE) {
		return nil, makeError(ErrParse, "parameters are not a sequence")
	}
	if !input.Empty() {
		return nil, makeError(ErrParse, "trailing data after parameters")
	}

	p := &Params{}
	switch {
	case seq.PeekASN1Tag(cryptobyte_asn1.OBJECT_IDENTIFIER):
		var oid asn1.ObjectIdentifier
		if !seq.ReadASN1ObjectIdentifier(&oid) {
			return nil, makeError(ErrParse, "invalid named curve identifier")
		}
		p.namedCurve = oid

	case seq.PeekASN1Tag(cryptobyte_asn1.SEQUENCE):
		ec, err := readECBinary(&seq)
		if err != nil {
			return nil, err
		}
		p.ecBinary = ec

	default:
		return nil, makeError(ErrParse, "parameters are neither a named curve nor ECBinary")
	}

	var dke cryptobyte.String
	var present bool
	if !seq.ReadOptionalASN1(&dke, &present, cryptobyte_asn1.OCTET_STRING) {
		return nil, makeError(ErrParse, "invalid dke")
	}
	if !seq.Empty() {
		return nil, makeError(ErrParse, "trailing data in parameters")
	}
	if !present {
		p.dke = DefaultDKE()
		return p, nil
	}
	if len(dke) != len(defaultDKE) {
		return nil, makeError(ErrParse, fmt.Sprintf("dke is %d bytes, want %d", len(dke), len(defaultDKE)))
	}
	p.dke = bytes.Clone(dke)
	return p, nil
}
