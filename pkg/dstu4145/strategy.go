package dstu4145

import (
	"context"
)

// BatchStrategy verifies many records against one public key. Implement this
// interface to plug a custom scheduler into a Client.
type BatchStrategy interface {
	// Verify checks every record and returns one result per record, in
	// input order. Records left unchecked because ctx ended carry ctx.Err().
	Verify(ctx context.Context, pub *PublicKey, records []*Record) []*VerifyResult

	// Name returns a human-readable name for this strategy.
	Name() string
}

// WorkerConfig configures batch verification.
type WorkerConfig struct {
	// NumWorkers controls parallelization (0 = runtime.NumCPU())
	NumWorkers int

	// MaxRecords limits the number of records checked (0 = no limit)
	MaxRecords int
}

// DefaultWorkerConfig returns a sensible default configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		NumWorkers: 0, // Auto-detect
		MaxRecords: 0,
	}
}

func limitRecords(records []*Record, max int) []*Record {
	if max > 0 && len(records) > max {
		return records[:max]
	}
	return records
}

// verifyRecord checks one record with a signer already in verifying mode.
func verifyRecord(signer *Signer, i int, rec *Record) *VerifyResult {
	res := &VerifyResult{Index: i, Record: rec}
	if rec == nil {
		res.Err = makeError(ErrSigOutOfRange, "missing record")
		return res
	}
	res.Err = signer.Verify(rec.Digest, rec.Signature)
	return res
}
