package dstu4145

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/mahdiidarabi/dstu4145/internal/logging"
)

// SequentialStrategy verifies records one after another on the calling
// goroutine.
type SequentialStrategy struct {
	Config WorkerConfig
	log    logging.Logger
}

// NewSequentialStrategy creates a sequential strategy with default settings.
func NewSequentialStrategy() *SequentialStrategy {
	return &SequentialStrategy{Config: DefaultWorkerConfig(), log: logging.Discard()}
}

// WithWorkerConfig sets the configuration. NumWorkers is ignored.
func (s *SequentialStrategy) WithWorkerConfig(config WorkerConfig) *SequentialStrategy {
	s.Config = config
	return s
}

// WithLogger sets the logger.
func (s *SequentialStrategy) WithLogger(l *slog.Logger) *SequentialStrategy {
	s.log = logging.New(l)
	return s
}

// Name returns the name of this strategy.
func (s *SequentialStrategy) Name() string {
	return "Sequential"
}

// Verify implements the BatchStrategy interface.
func (s *SequentialStrategy) Verify(ctx context.Context, pub *PublicKey, records []*Record) []*VerifyResult {
	records = limitRecords(records, s.Config.MaxRecords)
	s.logger().Info(ctx, "batch verification started", "strategy", s.Name(), "records", len(records))

	signer := NewSigner(withLogging(s.logger()))
	initErr := signer.InitVerify(pub)

	results := make([]*VerifyResult, len(records))
	for i, rec := range records {
		switch {
		case ctx.Err() != nil:
			results[i] = &VerifyResult{Index: i, Record: rec, Err: ctx.Err()}
		case initErr != nil:
			results[i] = &VerifyResult{Index: i, Record: rec, Err: initErr}
		default:
			results[i] = verifyRecord(signer, i, rec)
		}
	}

	s.logger().Info(ctx, "batch verification finished", "strategy", s.Name(), "records", len(records))
	return results
}

func (s *SequentialStrategy) logger() logging.Logger {
	if s.log == nil {
		return logging.Discard()
	}
	return s.log
}

// ParallelStrategy verifies records on a pool of worker goroutines. Each
// worker owns its own Signer.
type ParallelStrategy struct {
	Config WorkerConfig
	log    logging.Logger
}

// NewParallelStrategy creates a parallel strategy with default settings.
func NewParallelStrategy() *ParallelStrategy {
	return &ParallelStrategy{Config: DefaultWorkerConfig(), log: logging.Discard()}
}

// WithWorkerConfig sets the worker configuration for the strategy.
func (s *ParallelStrategy) WithWorkerConfig(config WorkerConfig) *ParallelStrategy {
	s.Config = config
	return s
}

// WithLogger sets the logger.
func (s *ParallelStrategy) WithLogger(l *slog.Logger) *ParallelStrategy {
	s.log = logging.New(l)
	return s
}

// Name returns the name of this strategy.
func (s *ParallelStrategy) Name() string {
	return "Parallel"
}

// Verify implements the BatchStrategy interface.
func (s *ParallelStrategy) Verify(ctx context.Context, pub *PublicKey, records []*Record) []*VerifyResult {
	records = limitRecords(records, s.Config.MaxRecords)
	log := s.logger()

	numWorkers := s.Config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(records) {
		numWorkers = len(records)
	}
	log.Info(ctx, "batch verification started", "strategy", s.Name(), "records", len(records), "workers", numWorkers)

	results := make([]*VerifyResult, len(records))
	workChan := make(chan int, numWorkers*4)

	// Generate work
	go func() {
		defer close(workChan)
		for i := range records {
			select {
			case <-ctx.Done():
				return
			case workChan <- i:
			}
		}
	}()

	var checked int64
	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			signer := NewSigner(withLogging(log))
			initErr := signer.InitVerify(pub)
			for i := range workChan {
				if initErr != nil {
					results[i] = &VerifyResult{Index: i, Record: records[i], Err: initErr}
				} else {
					results[i] = verifyRecord(signer, i, records[i])
				}
				atomic.AddInt64(&checked, 1)
			}
		}()
	}
	wg.Wait()

	for i, res := range results {
		if res == nil {
			results[i] = &VerifyResult{Index: i, Record: records[i], Err: ctx.Err()}
		}
	}

	log.Info(ctx, "batch verification finished", "strategy", s.Name(), "records", len(records), "checked", atomic.LoadInt64(&checked))
	return results
}

func (s *ParallelStrategy) logger() logging.Logger {
	if s.log == nil {
		return logging.Discard()
	}
	return s.log
}
