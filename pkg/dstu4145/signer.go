package dstu4145

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/big"

	"github.com/mahdiidarabi/dstu4145/internal/logging"
	"github.com/mahdiidarabi/dstu4145/pkg/gf2m"
)

// State is the mode a Signer is in.
type State int

const (
	// StateUninitialized is the state of a new Signer.
	StateUninitialized State = iota
	// StateSigningReady follows InitSign.
	StateSigningReady
	// StateVerifyingReady follows InitVerify.
	StateVerifyingReady
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateSigningReady:
		return "signing"
	case StateVerifyingReady:
		return "verifying"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Signer signs or verifies digests with one key. A Signer is not safe for
// concurrent use; give each goroutine its own.
type Signer struct {
	state State
	priv  *PrivateKey
	pub   *PublicKey
	rand  io.Reader
	log   logging.Logger
}

// SignerOption configures a Signer.
type SignerOption func(*Signer)

// WithLogger sends the signer's debug output to l.
func WithLogger(l *slog.Logger) SignerOption {
	return func(s *Signer) {
		s.log = logging.New(l)
	}
}

func withLogging(l logging.Logger) SignerOption {
	return func(s *Signer) {
		s.log = l
	}
}

// NewSigner returns an uninitialized Signer.
func NewSigner(opts ...SignerOption) *Signer {
	s := &Signer{log: logging.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current mode.
func (s *Signer) State() State {
	return s.state
}

// InitSign switches s to signing with priv. Nonces are drawn from rand; nil
// selects crypto/rand.Reader.
func (s *Signer) InitSign(priv *PrivateKey, rand io.Reader) error {
	if priv == nil || priv.Domain == nil {
		return makeError(ErrInvalidKey, "nil private key")
	}
	if priv.D.Sign() <= 0 || priv.D.Cmp(priv.Domain.N) >= 0 {
		return makeError(ErrInvalidKey, "private scalar must be in [1, n)")
	}
	s.state = StateSigningReady
	s.priv = priv
	s.pub = nil
	s.rand = randOrDefault(rand)
	return nil
}

// InitVerify switches s to verifying against pub.
func (s *Signer) InitVerify(pub *PublicKey) error {
	if pub == nil || pub.Domain == nil || pub.Q == nil {
		return makeError(ErrInvalidKey, "nil public key")
	}
	s.state = StateVerifyingReady
	s.pub = pub
	s.priv = nil
	s.rand = nil
	return nil
}

// Sign signs digest, the output of an external hash function.
func (s *Signer) Sign(digest []byte) (*Signature, error) {
	switch s.state {
	case StateUninitialized:
		return nil, makeError(ErrSignerNotInitialized, "signer is not initialized")
	case StateVerifyingReady:
		return nil, makeError(ErrSignerWrongMode, "signer is initialized for verification")
	}

	ctx := context.Background()
	domain := s.priv.Domain
	curve, n := domain.Curve, domain.N
	h := hashToFieldElement(curve.Field(), digest)

	var r, sv *big.Int
	for {
		for {
			var fe *gf2m.Element
			var e *big.Int
			for {
				var err error
				if e, err = randomInteger(s.rand, n.BitLen()-1); err != nil {
					return nil, fmt.Errorf("sign: nonce: %w", err)
				}
				if e.Sign() != 0 {
					if p := curve.ScalarMult(domain.G, e); !p.IsInfinity() && !p.X().IsZero() {
						fe = p.X()
						break
					}
				}
				s.log.Debug(ctx, "nonce rejected", logging.Redacted("e"))
			}

			r = fieldElementToInteger(h.Mul(fe), n)
			if r.Sign() != 0 {
				sv = new(big.Int).Mul(r, s.priv.D)
				sv.Add(sv, e).Mod(sv, n)
				break
			}
			s.log.Debug(ctx, "r is zero")
		}
		if sv.Sign() != 0 {
			break
		}
		s.log.Debug(ctx, "s is zero")
	}
	return &Signature{R: r, S: sv}, nil
}

// Verify checks sig against digest. It returns nil for a valid signature,
// ErrSigOutOfRange or ErrSigInfinityPoint for malformed input and
// ErrSigVerificationFailed for a well-formed signature that does not match.
func (s *Signer) Verify(digest []byte, sig *Signature) error {
	switch s.state {
	case StateUninitialized:
		return makeError(ErrSignerNotInitialized, "signer is not initialized")
	case StateSigningReady:
		return makeError(ErrSignerWrongMode, "signer is initialized for signing")
	}

	domain := s.pub.Domain
	curve, n := domain.Curve, domain.N
	if sig == nil || sig.R == nil || sig.S == nil ||
		sig.R.Sign() <= 0 || sig.R.Cmp(n) >= 0 ||
		sig.S.Sign() <= 0 || sig.S.Cmp(n) >= 0 {
		return makeError(ErrSigOutOfRange, "signature components must be in [1, n)")
	}

	h := hashToFieldElement(curve.Field(), digest)
	p := curve.SumOfTwoMultiplies(domain.G, sig.S, s.pub.Q, sig.R)
	if p.IsInfinity() {
		return makeError(ErrSigInfinityPoint, "s·G + r·Q is the point at infinity")
	}
	if fieldElementToInteger(h.Mul(p.X()), n).Cmp(sig.R) != 0 {
		return makeError(ErrSigVerificationFailed, "signature does not match")
	}
	return nil
}

// Sign is a one-shot helper around a fresh Signer.
func Sign(rand io.Reader, priv *PrivateKey, digest []byte) (*Signature, error) {
	s := NewSigner()
	if err := s.InitSign(priv, rand); err != nil {
		return nil, err
	}
	return s.Sign(digest)
}

// Verify is a one-shot helper around a fresh Signer.
func Verify(pub *PublicKey, digest []byte, sig *Signature) error {
	s := NewSigner()
	if err := s.InitVerify(pub); err != nil {
		return err
	}
	return s.Verify(digest, sig)
}

// hashToFieldElement reads the digest as a little-endian integer, keeps its
// low m bits and maps zero to one.
func hashToFieldElement(field *gf2m.Field, digest []byte) *gf2m.Element {
	rev := make([]byte, len(digest))
	for i, b := range digest {
		rev[len(digest)-1-i] = b
	}
	v := truncate(new(big.Int).SetBytes(rev), field.Degree())
	if v.Sign() == 0 {
		return field.One()
	}
	e, err := field.NewElement(v)
	if err != nil {
		panic(err)
	}
	return e
}

// fieldElementToInteger truncates the value of e to bitlen(n) - 1 bits.
func fieldElementToInteger(e *gf2m.Element, n *big.Int) *big.Int {
	return truncate(e.BigInt(), n.BitLen()-1)
}

// truncate returns x mod 2^bits when x is longer than bits, and x itself
// otherwise.
func truncate(x *big.Int, bits int) *big.Int {
	if x.BitLen() <= bits {
		return x
	}
	mask := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	mask.Sub(mask, big.NewInt(1))
	return new(big.Int).And(x, mask)
}

// randomInteger reads a uniformly random integer in [0, 2^bits).
func randomInteger(rand io.Reader, bits int) (*big.Int, error) {
	buf := make([]byte, (bits+7)/8)
	if _, err := io.ReadFull(rand, buf); err != nil {
		return nil, err
	}
	buf[0] &= byte(0xff >> uint(8*len(buf)-bits))
	return new(big.Int).SetBytes(buf), nil
}
