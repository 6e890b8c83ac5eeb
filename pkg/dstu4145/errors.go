package dstu4145

// ErrorKind identifies a kind of error. It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

const (
	// ErrParse is returned when DER encoded field, domain or parameter set
	// data is malformed: wrong element count or type, trailing bytes, or a
	// DKE of the wrong length.
	ErrParse = ErrorKind("ErrParse")

	// ErrInvalidPointEncoding is returned when a compressed point does not
	// decode to a point on the curve.
	ErrInvalidPointEncoding = ErrorKind("ErrInvalidPointEncoding")

	// ErrSigOutOfRange is returned when r or s is not in [1, n).
	ErrSigOutOfRange = ErrorKind("ErrSigOutOfRange")

	// ErrSigInfinityPoint is returned when s·G + r·Q is the point at
	// infinity during verification.
	ErrSigInfinityPoint = ErrorKind("ErrSigInfinityPoint")

	// ErrSigVerificationFailed is returned when a well-formed signature does
	// not match the digest and public key.
	ErrSigVerificationFailed = ErrorKind("ErrSigVerificationFailed")

	// ErrInvalidDomain is returned when domain parameters are inconsistent:
	// a outside {0, 1}, b zero, n not prime or G not of order n.
	ErrInvalidDomain = ErrorKind("ErrInvalidDomain")

	// ErrInvalidKey is returned when a private scalar is outside [1, n) or a
	// public point is unusable.
	ErrInvalidKey = ErrorKind("ErrInvalidKey")

	// ErrUnknownCurve is returned when a named curve OID is not registered.
	ErrUnknownCurve = ErrorKind("ErrUnknownCurve")

	// ErrSignerNotInitialized is returned by Sign and Verify on a signer that
	// was never initialized.
	ErrSignerNotInitialized = ErrorKind("ErrSignerNotInitialized")

	// ErrSignerWrongMode is returned when Sign is called on a signer
	// initialized for verification, or the other way round.
	ErrSignerWrongMode = ErrorKind("ErrSignerWrongMode")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to DSTU 4145 parameters, points or
// signatures. It has full support for errors.Is and errors.As, so the caller
// can ascertain the specific reason for the error by checking the underlying
// error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
