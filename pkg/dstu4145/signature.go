package dstu4145

import (
	"context"
	"errors"
	"fmt"
	"math/big"
)

// Signature is a DSTU 4145 signature. Both components are in [1, n).
type Signature struct {
	R *big.Int // r, the truncated product of the digest and x(e·G)
	S *big.Int // s = (r·d + e) mod n
}

func (sig *Signature) String() string {
	return fmt.Sprintf("(r=%x, s=%x)", sig.R, sig.S)
}

// Record is a digest and a signature claimed to cover it, as read from a
// signature file.
type Record struct {
	Digest    []byte
	Signature *Signature
}

// VerifyResult is the outcome of checking one Record.
type VerifyResult struct {
	Index  int   // Position of the record in the input
	Record *Record
	Err    error // nil when the signature is valid
}

// Valid reports whether the record verified.
func (r *VerifyResult) Valid() bool {
	return r.Err == nil
}

// Kind returns the error kind of a rejected record, or "" for a valid one.
func (r *VerifyResult) Kind() ErrorKind {
	var kind ErrorKind
	if errors.As(r.Err, &kind) {
		return kind
	}
	return ""
}

// BatchReport summarizes a batch verification.
type BatchReport struct {
	Strategy  string          // Name of the strategy that ran the batch
	Results   []*VerifyResult // One per record, in input order
	Valid     int             // Records that verified
	Failed    int             // Well-formed signatures that did not match
	Malformed int             // Records rejected as out of range or degenerate
	Skipped   int             // Records not checked because the context ended
}

func newBatchReport(strategy string, results []*VerifyResult) *BatchReport {
	report := &BatchReport{Strategy: strategy, Results: results}
	for _, res := range results {
		switch {
		case res.Valid():
			report.Valid++
		case res.Kind() == ErrSigVerificationFailed:
			report.Failed++
		case errors.Is(res.Err, context.Canceled), errors.Is(res.Err, context.DeadlineExceeded):
			report.Skipped++
		default:
			report.Malformed++
		}
	}
	return report
}
