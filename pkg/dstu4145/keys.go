package dstu4145

import (
	"fmt"
	"io"
	"math/big"

	"github.com/mahdiidarabi/dstu4145/pkg/ec2m"
)

// PrivateKey is a private scalar d in [1, n) over a domain.
type PrivateKey struct {
	D      *big.Int
	Domain *Domain
}

// PublicKey is the public point matching a PrivateKey.
type PublicKey struct {
	Q      *ec2m.Point
	Domain *Domain
}

// NewPrivateKey wraps d after checking 1 <= d < n.
func NewPrivateKey(domain *Domain, d *big.Int) (*PrivateKey, error) {
	if d.Sign() <= 0 || d.Cmp(domain.N) >= 0 {
		return nil, makeError(ErrInvalidKey, "private scalar must be in [1, n)")
	}
	return &PrivateKey{D: new(big.Int).Set(d), Domain: domain}, nil
}

// GenerateKey draws d uniformly from [1, n). A nil rand selects
// crypto/rand.Reader.
func GenerateKey(domain *Domain, rand io.Reader) (*PrivateKey, error) {
	rand = randOrDefault(rand)
	n := domain.N
	buf := make([]byte, (n.BitLen()+7)/8)
	excess := uint(8*len(buf) - n.BitLen())
	d := new(big.Int)
	for {
		if _, err := io.ReadFull(rand, buf); err != nil {
			return nil, fmt.Errorf("generate key: %w", err)
		}
		buf[0] &= byte(0xff >> excess)
		d.SetBytes(buf)
		if d.Sign() > 0 && d.Cmp(n) < 0 {
			return &PrivateKey{D: d, Domain: domain}, nil
		}
	}
}

// Public returns the public key Q = -(d·G).
func (k *PrivateKey) Public() *PublicKey {
	c := k.Domain.Curve
	return &PublicKey{Q: c.Neg(c.ScalarMult(k.Domain.G, k.D)), Domain: k.Domain}
}

// NewPublicKey checks that q is an affine point of order n on the domain's
// curve.
func NewPublicKey(domain *Domain, q *ec2m.Point) (*PublicKey, error) {
	if q.IsInfinity() || !q.Curve().Equal(domain.Curve) {
		return nil, makeError(ErrInvalidKey, "public point is not an affine point of the curve")
	}
	if !domain.Curve.ScalarMult(q, domain.N).IsInfinity() {
		return nil, makeError(ErrInvalidKey, "public point is not in the subgroup of order n")
	}
	return &PublicKey{Q: q, Domain: domain}, nil
}

// ParsePublicKey decodes a compressed public point. rand feeds point
// decompression; nil selects crypto/rand.Reader.
func ParsePublicKey(domain *Domain, rand io.Reader, b []byte) (*PublicKey, error) {
	q, err := DecodePoint(rand, domain.Curve, b)
	if err != nil {
		return nil, err
	}
	return NewPublicKey(domain, q)
}

// Bytes returns the compressed encoding of the public point.
func (k *PublicKey) Bytes() []byte {
	b, err := EncodePoint(k.Q)
	if err != nil {
		// NewPublicKey and Public never produce the point at infinity.
		panic(err)
	}
	return b
}

// Equal reports whether k and o are the same point on the same domain.
func (k *PublicKey) Equal(o *PublicKey) bool {
	return k.Domain.Equal(o.Domain) && k.Q.Equal(o.Q)
}
