package dstu4145

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mahdiidarabi/dstu4145/internal/logging"
)

// Client verifies signature files with a configurable parser and strategy.
type Client struct {
	parser   SignatureParser
	strategy BatchStrategy
	log      logging.Logger
}

// NewClient creates a client reading JSON files and verifying in parallel.
func NewClient() *Client {
	return &Client{
		parser:   &JSONParser{},
		strategy: NewParallelStrategy(),
		log:      logging.Discard(),
	}
}

// WithParser sets the signature file parser.
func (c *Client) WithParser(parser SignatureParser) *Client {
	c.parser = parser
	return c
}

// WithStrategy sets the batch verification strategy.
func (c *Client) WithStrategy(strategy BatchStrategy) *Client {
	c.strategy = strategy
	return c
}

// WithLogger sets the logger.
func (c *Client) WithLogger(l *slog.Logger) *Client {
	c.log = logging.New(l)
	return c
}

// VerifyFile parses the records stored at source and verifies them against
// pub.
func (c *Client) VerifyFile(ctx context.Context, source string, pub *PublicKey) (*BatchReport, error) {
	records, err := c.parser.ParseRecords(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signatures: %w", err)
	}
	c.log.Debug(ctx, "parsed signature file", "source", source, "records", len(records))
	return c.VerifyRecords(ctx, records, pub)
}

// VerifyRecords verifies records against pub.
func (c *Client) VerifyRecords(ctx context.Context, records []*Record, pub *PublicKey) (*BatchReport, error) {
	if pub == nil {
		return nil, makeError(ErrInvalidKey, "nil public key")
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no signature records")
	}

	report := newBatchReport(c.strategy.Name(), c.strategy.Verify(ctx, pub, records))
	c.log.Info(ctx, "batch verified",
		"strategy", report.Strategy,
		"valid", report.Valid,
		"failed", report.Failed,
		"malformed", report.Malformed,
		"skipped", report.Skipped)
	return report, nil
}
