package dstu4145

import (
	"bytes"
	"crypto/rand"
	"errors"
	"io"
	"math/big"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/dstu4145/pkg/ec2m"
)

// zeroReader yields an endless stream of zero bytes.
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

func TestEncodeBasePoint(t *testing.T) {
	tests := []struct {
		name    string
		curve   testCurve
		encoded string
	}{
		{"163", curve163, "072d867f93a93ac27df9ff01affe74885c8c540420"},
		{"173", curve173, "00be6628ec3e67a91a4e470894fba72b52c515f8aee9"},
		{"257", curve257, "002a29ef207d0e9b6c55cd260b306c7e007ac491ca1b10c62334a9e8dcd8d20fb6"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d := test.curve.domain(t)
			enc, err := EncodePoint(d.G)
			require.NoError(t, err)
			assert.Equal(t, test.encoded, hexString(enc))

			p, err := DecodePoint(nil, d.Curve, enc)
			require.NoError(t, err)
			assert.True(t, p.Equal(d.G), "decoded %v, want %v", p, d.G)
		})
	}
}

func TestDecodePointVector(t *testing.T) {
	c := curve257.curve(t)
	enc := hexBytes(t, "00DC2496C45E484D63D4FE2F1BCA948A2B2E0FA68E4715E44D85600034CF4EB5C5")

	p, err := DecodePoint(rand.Reader, c, enc)
	require.NoError(t, err)
	assert.Equal(t, "dc2496c45e484d63d4fe2f1bca948a2b2e0fa68e4715e44d85600034cf4eb5c5", p.X().String())
	assert.Equal(t, "ed04d1f60f1540781cc5620b776f8065e4ff80df4816e23b67578138d3b26f86", p.Y().String())

	again, err := EncodePoint(p)
	require.NoError(t, err)
	assert.Equal(t, enc, again)
}

func TestPointCodecRoundTrip(t *testing.T) {
	for _, tc := range []testCurve{curve163, curve173} {
		d := tc.domain(t)
		for i := 0; i < 8; i++ {
			k, err := rand.Int(rand.Reader, d.N)
			require.NoError(t, err)
			if k.Sign() == 0 {
				continue
			}
			q := d.Curve.ScalarMult(d.G, k)
			for _, p := range []*ec2m.Point{q, d.Curve.Neg(q)} {
				enc, err := EncodePoint(p)
				require.NoError(t, err)
				require.Len(t, enc, d.Curve.Field().ByteLen())

				got, err := DecodePoint(rand.Reader, d.Curve, enc)
				require.NoError(t, err)
				assert.True(t, got.Equal(p), "k=%x encoding:\n%s", k, spew.Sdump(enc))
			}
		}
	}
}

func TestPointCodecZeroX(t *testing.T) {
	c := curve173.curve(t)
	p, err := c.NewPoint(c.Field().Zero(), c.B().Sqrt())
	require.NoError(t, err)

	enc, err := EncodePoint(p)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 22), enc)

	got, err := DecodePoint(nil, c, enc)
	require.NoError(t, err)
	assert.True(t, got.Equal(p))
}

func TestEncodeInfinity(t *testing.T) {
	c := curve163.curve(t)
	_, err := EncodePoint(c.Infinity())
	assert.ErrorIs(t, err, ErrInvalidPointEncoding)
}

func TestDecodePointErrors(t *testing.T) {
	d := curve163.domain(t)
	enc, err := EncodePoint(d.G)
	require.NoError(t, err)

	tests := []struct {
		name string
		in   []byte
	}{
		{"empty", nil},
		{"short", enc[1:]},
		{"long", append([]byte{0}, enc...)},
		{"too many bits", append([]byte{0x08}, enc[1:]...)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := DecodePoint(rand.Reader, d.Curve, test.in)
			assert.ErrorIs(t, err, ErrInvalidPointEncoding)
		})
	}
}

func TestDecodePointNoSolution(t *testing.T) {
	c := curve163.curve(t)

	// A point exists exactly when Tr(beta) = 0, whatever the solver draws.
	var failing []int64
	for x := int64(2); x < 18; x++ {
		enc := new(big.Int).Lsh(big.NewInt(x), 1).FillBytes(make([]byte, 21))

		xp, err := c.Field().SetBytes(enc)
		require.NoError(t, err)
		if !trace(xp).Equal(c.A()) {
			xp = xp.AddOne()
		}
		inv, err := xp.Square().Inv()
		require.NoError(t, err)
		beta := inv.Mul(c.B()).Add(c.A()).Add(xp)

		p, err := DecodePoint(rand.Reader, c, enc)
		if trace(beta).IsOne() {
			assert.ErrorIs(t, err, ErrInvalidPointEncoding, "x=%d", x)
			failing = append(failing, x)
			continue
		}
		require.NoError(t, err, "x=%d", x)
		assert.True(t, c.IsOnCurve(p.X(), p.Y()))
	}
	assert.Equal(t, []int64{3, 4, 6, 7, 11, 12, 15, 16, 17}, failing)
}

func TestTrace(t *testing.T) {
	c := curve163.curve(t)
	f := c.Field()

	// Tr(1) = m mod 2.
	assert.True(t, trace(f.One()).IsOne())
	assert.True(t, trace(f.Zero()).IsZero())

	for i := 0; i < 16; i++ {
		x, err := f.Random(rand.Reader)
		require.NoError(t, err)
		tr := trace(x)
		assert.True(t, tr.IsZero() || tr.IsOne())
		// Tr(x² + x) = 0
		assert.True(t, trace(x.Square().Add(x)).IsZero())
	}
}

func TestSolveQuadraticEquation(t *testing.T) {
	c := curve163.curve(t)
	f := c.Field()

	z, err := solveQuadraticEquation(rand.Reader, f.Zero())
	require.NoError(t, err)
	assert.True(t, z.IsZero())

	for i := 0; i < 8; i++ {
		x, err := f.Random(rand.Reader)
		require.NoError(t, err)
		beta := x.Square().Add(x)
		if beta.IsZero() {
			continue
		}
		z, err := solveQuadraticEquation(rand.Reader, beta)
		require.NoError(t, err)
		assert.True(t, z.Square().Add(z).Equal(beta))
		assert.True(t, z.Equal(x) || z.Equal(x.AddOne()))
	}

	// Tr(1) = 1 in odd degree, so z² + z = 1 has no root.
	_, err = solveQuadraticEquation(rand.Reader, f.One())
	assert.ErrorIs(t, err, ErrInvalidPointEncoding)
}

func TestSolveQuadraticEquationRetryBound(t *testing.T) {
	f := curve163.curve(t).Field()
	x, err := f.SetBytes([]byte{0x12, 0x34})
	require.NoError(t, err)
	beta := x.Square().Add(x)

	// t = 0 always yields z = 0, which is rejected until 2·m + 64 draws have
	// been spent. Unsolvable beta never reaches this loop: w equals Tr(beta)
	// for every t, so the solver stops on the first draw instead of retrying.
	_, err = solveQuadraticEquation(zeroReader{}, beta)
	assert.ErrorIs(t, err, ErrInvalidPointEncoding)

	// One draw is enough to reject z² + z = 1.
	_, err = solveQuadraticEquation(bytes.NewReader(make([]byte, 21)), f.One())
	assert.ErrorIs(t, err, ErrInvalidPointEncoding)
	assert.False(t, errors.Is(err, io.EOF))
}

func TestSolveQuadraticEquationRandomFailure(t *testing.T) {
	f := curve163.curve(t).Field()
	x, err := f.SetBytes([]byte{0x12, 0x34})
	require.NoError(t, err)

	_, err = solveQuadraticEquation(bytes.NewReader(nil), x.Square().Add(x))
	assert.True(t, errors.Is(err, io.EOF), "got %v", err)
	assert.False(t, errors.Is(err, ErrInvalidPointEncoding))
}
