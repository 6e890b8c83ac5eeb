package gf2m

import (
	"math/big"
)

// Element is a member of a Field. The zero value is not usable; obtain
// elements from the field they belong to.
type Element struct {
	f *Field
	v *big.Int
}

// Field returns the field e belongs to.
func (e *Element) Field() *Field {
	return e.f
}

func (e *Element) check(o *Element) {
	if !e.f.Equal(o.f) {
		panic("gf2m: elements of different fields")
	}
}

// Add returns e + o.
func (e *Element) Add(o *Element) *Element {
	e.check(o)
	return &Element{f: e.f, v: new(big.Int).Xor(e.v, o.v)}
}

// AddOne returns e + 1, which flips the constant coefficient.
func (e *Element) AddOne() *Element {
	v := new(big.Int).Set(e.v)
	return &Element{f: e.f, v: v.SetBit(v, 0, v.Bit(0)^1)}
}

// Mul returns e·o.
func (e *Element) Mul(o *Element) *Element {
	e.check(o)
	return &Element{f: e.f, v: e.f.mul(e.v, o.v)}
}

// Square returns e².
func (e *Element) Square() *Element {
	return &Element{f: e.f, v: e.f.mul(e.v, e.v)}
}

// Inv returns e⁻¹, or ErrDivisionByZero if e is zero.
func (e *Element) Inv() (*Element, error) {
	v, err := e.f.inv(e.v)
	if err != nil {
		return nil, err
	}
	return &Element{f: e.f, v: v}, nil
}

// Div returns e/o, or ErrDivisionByZero if o is zero.
func (e *Element) Div(o *Element) (*Element, error) {
	e.check(o)
	inv, err := o.Inv()
	if err != nil {
		return nil, err
	}
	return e.Mul(inv), nil
}

// Sqrt returns the unique square root of e, e^(2^(m-1)).
func (e *Element) Sqrt() *Element {
	r := e
	for i := 1; i < e.f.m; i++ {
		r = r.Square()
	}
	return r
}

// IsZero reports whether e is the additive identity.
func (e *Element) IsZero() bool {
	return e.v.Sign() == 0
}

// IsOne reports whether e is the multiplicative identity.
func (e *Element) IsOne() bool {
	return e.v.BitLen() == 1
}

// Equal reports whether e and o are the same element of the same field.
func (e *Element) Equal(o *Element) bool {
	return e.f.Equal(o.f) && e.v.Cmp(o.v) == 0
}

// BigInt returns the coefficient bits of e as a new integer.
func (e *Element) BigInt() *big.Int {
	return new(big.Int).Set(e.v)
}

// Bytes returns the big-endian encoding of e, always Field().ByteLen() long.
func (e *Element) Bytes() []byte {
	return e.v.FillBytes(make([]byte, e.f.ByteLen()))
}

// String returns e in hexadecimal.
func (e *Element) String() string {
	return e.v.Text(16)
}
