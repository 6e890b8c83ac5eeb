// Package gf2m implements arithmetic in binary extension fields GF(2^m).
//
// Elements are kept in polynomial basis, reduced modulo a trinomial
// x^m + x^k + 1 or a pentanomial x^m + x^k3 + x^k2 + x^k1 + 1. The bit i of an
// element's integer value is the coefficient of x^i.
//
// Values are immutable: every operation returns a fresh Element, so elements
// and fields may be shared freely between goroutines.
package gf2m

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"sort"
	"strings"
)

var (
	// ErrInvalidField is returned when the degree or the reduction exponents do
	// not describe a trinomial or pentanomial basis.
	ErrInvalidField = errors.New("gf2m: invalid field definition")

	// ErrReducible is returned when the reduction polynomial is not
	// irreducible, so the ring it defines is not a field.
	ErrReducible = errors.New("gf2m: reduction polynomial is reducible")

	// ErrValueOutOfRange is returned when an integer does not fit in m bits.
	ErrValueOutOfRange = errors.New("gf2m: value out of field range")

	// ErrDivisionByZero is returned when inverting or dividing by zero.
	ErrDivisionByZero = errors.New("gf2m: division by zero")
)

// MaxDegree bounds m. Standard binary curves stop at 571 bits, and the
// irreducibility check grows with the cube of m.
const MaxDegree = 2048

// Field is GF(2^m) for a fixed reduction polynomial.
type Field struct {
	m    int
	ks   []int // middle exponents, ascending
	poly *big.Int
}

// NewField returns the field of degree m reduced by x^m + x^ks... + 1. A single
// middle exponent selects a trinomial basis, three select a pentanomial basis.
// The exponents may be given in any order but must be distinct and lie in
// (0, m).
func NewField(m int, ks ...int) (*Field, error) {
	if m < 2 || m > MaxDegree {
		return nil, fmt.Errorf("%w: degree %d outside [2, %d]", ErrInvalidField, m, MaxDegree)
	}
	if len(ks) != 1 && len(ks) != 3 {
		return nil, fmt.Errorf("%w: %d middle exponents", ErrInvalidField, len(ks))
	}

	sorted := append([]int(nil), ks...)
	sort.Ints(sorted)
	poly := new(big.Int).SetBit(new(big.Int), m, 1)
	poly.SetBit(poly, 0, 1)
	for i, k := range sorted {
		if k <= 0 || k >= m {
			return nil, fmt.Errorf("%w: exponent %d outside (0, %d)", ErrInvalidField, k, m)
		}
		if i > 0 && sorted[i-1] == k {
			return nil, fmt.Errorf("%w: repeated exponent %d", ErrInvalidField, k)
		}
		poly.SetBit(poly, k, 1)
	}

	f := &Field{m: m, ks: sorted, poly: poly}
	if !f.irreducible() {
		return nil, fmt.Errorf("%w: %s", ErrReducible, f)
	}
	return f, nil
}

// Degree returns m.
func (f *Field) Degree() int {
	return f.m
}

// Exponents returns the middle exponents of the reduction polynomial in
// ascending order: one for a trinomial, three for a pentanomial.
func (f *Field) Exponents() []int {
	return append([]int(nil), f.ks...)
}

// ByteLen is the length of the fixed-size big-endian element encoding.
func (f *Field) ByteLen() int {
	return (f.m + 7) / 8
}

// Equal reports whether f and g are the same field.
func (f *Field) Equal(g *Field) bool {
	if f == g {
		return true
	}
	if f == nil || g == nil {
		return false
	}
	return f.poly.Cmp(g.poly) == 0
}

// String renders the reduction polynomial.
func (f *Field) String() string {
	terms := []string{fmt.Sprintf("x^%d", f.m)}
	for i := len(f.ks) - 1; i >= 0; i-- {
		if f.ks[i] == 1 {
			terms = append(terms, "x")
		} else {
			terms = append(terms, fmt.Sprintf("x^%d", f.ks[i]))
		}
	}
	terms = append(terms, "1")
	return strings.Join(terms, " + ")
}

// Zero returns the additive identity.
func (f *Field) Zero() *Element {
	return &Element{f: f, v: new(big.Int)}
}

// One returns the multiplicative identity.
func (f *Field) One() *Element {
	return &Element{f: f, v: big.NewInt(1)}
}

// NewElement returns the element whose coefficients are the bits of x.
func (f *Field) NewElement(x *big.Int) (*Element, error) {
	if x.Sign() < 0 || x.BitLen() > f.m {
		return nil, fmt.Errorf("%w: %d-bit value in GF(2^%d)", ErrValueOutOfRange, x.BitLen(), f.m)
	}
	return &Element{f: f, v: new(big.Int).Set(x)}, nil
}

// SetBytes interprets b as a big-endian integer and returns it as an element.
func (f *Field) SetBytes(b []byte) (*Element, error) {
	return f.NewElement(new(big.Int).SetBytes(b))
}

// Random returns an element built from m uniformly random bits read from
// rand. It consumes exactly ByteLen bytes and clears the excess high bits of
// the first byte.
func (f *Field) Random(rand io.Reader) (*Element, error) {
	buf := make([]byte, f.ByteLen())
	if _, err := io.ReadFull(rand, buf); err != nil {
		return nil, err
	}
	buf[0] &= byte(0xff >> uint(8*len(buf)-f.m))
	return &Element{f: f, v: new(big.Int).SetBytes(buf)}, nil
}

// reduce reduces r in place modulo the field polynomial and returns it.
func (f *Field) reduce(r *big.Int) *big.Int {
	t := new(big.Int)
	for d := r.BitLen() - 1; d >= f.m; d = r.BitLen() - 1 {
		r.Xor(r, t.Lsh(f.poly, uint(d-f.m)))
	}
	return r
}

// mul returns a·b mod f using left-to-right shift-and-add.
func (f *Field) mul(a, b *big.Int) *big.Int {
	r := new(big.Int)
	for i := b.BitLen() - 1; i >= 0; i-- {
		r.Lsh(r, 1)
		if b.Bit(i) == 1 {
			r.Xor(r, a)
		}
	}
	return f.reduce(r)
}

// inv returns a^-1 mod f with the binary extended Euclidean algorithm.
func (f *Field) inv(a *big.Int) (*big.Int, error) {
	if a.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	u := new(big.Int).Set(a)
	v := new(big.Int).Set(f.poly)
	g1 := big.NewInt(1)
	g2 := new(big.Int)
	t := new(big.Int)
	for u.BitLen() != 1 {
		if u.Sign() == 0 {
			return nil, ErrReducible
		}
		j := u.BitLen() - v.BitLen()
		if j < 0 {
			u, v = v, u
			g1, g2 = g2, g1
			j = -j
		}
		u.Xor(u, t.Lsh(v, uint(j)))
		g1.Xor(g1, t.Lsh(g2, uint(j)))
	}
	return f.reduce(g1), nil
}

// irreducible runs Rabin's test: x^(2^m) = x mod f and
// gcd(x^(2^(m/p)) - x, f) = 1 for every prime p dividing m.
func (f *Field) irreducible() bool {
	x := big.NewInt(2)
	frob := func(k int) *big.Int {
		r := new(big.Int).Set(x)
		for i := 0; i < k; i++ {
			r = f.mul(r, r)
		}
		return r
	}
	if frob(f.m).Cmp(x) != 0 {
		return false
	}
	for _, p := range primeFactors(f.m) {
		h := frob(f.m / p)
		h.Xor(h, x)
		if polyGCD(h, f.poly).Cmp(big.NewInt(1)) != 0 {
			return false
		}
	}
	return true
}

func primeFactors(n int) []int {
	var ps []int
	for p := 2; p*p <= n; p++ {
		if n%p == 0 {
			ps = append(ps, p)
			for n%p == 0 {
				n /= p
			}
		}
	}
	if n > 1 {
		ps = append(ps, n)
	}
	return ps
}

// polyGCD is the greatest common divisor of two GF(2)[x] polynomials.
func polyGCD(a, b *big.Int) *big.Int {
	a = new(big.Int).Set(a)
	b = new(big.Int).Set(b)
	t := new(big.Int)
	for b.Sign() != 0 {
		for d := a.BitLen() - b.BitLen(); d >= 0 && a.Sign() != 0; d = a.BitLen() - b.BitLen() {
			a.Xor(a, t.Lsh(b, uint(d)))
		}
		a, b = b, a
	}
	return a
}
