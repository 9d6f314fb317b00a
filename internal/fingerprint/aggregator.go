package fingerprint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"contentprint/internal/digest"
	"contentprint/internal/logging"
	"contentprint/internal/mimesniff"
	"contentprint/internal/semantichash"
	"contentprint/internal/visualhash"
)

var (
	// ErrNilSource reports a missing source.
	ErrNilSource = errors.New("fingerprint: nil source")
	// ErrNotSeekable reports a source that cannot be rewound between passes.
	ErrNotSeekable = errors.New("fingerprint: source is not seekable")
	// ErrIncomplete reports a fingerprint returned without some of its parts.
	ErrIncomplete = errors.New("fingerprint incomplete")
)

// Options configures an Aggregator. Nil components get package defaults.
type Options struct {
	Sniffer  *mimesniff.Sniffer
	Visual   *visualhash.Hasher
	Semantic *semantichash.Hasher
	Logger   *slog.Logger
}

// Aggregator computes fingerprints. It holds only immutable components and
// is safe for concurrent use on independent sources.
type Aggregator struct {
	sniffer  *mimesniff.Sniffer
	visual   *visualhash.Hasher
	semantic *semantichash.Hasher
	logger   *slog.Logger
}

// New creates an Aggregator.
func New(opts Options) *Aggregator {
	if opts.Sniffer == nil {
		opts.Sniffer = mimesniff.New(mimesniff.Options{InspectContainers: true, Logger: opts.Logger})
	}
	if opts.Visual == nil {
		opts.Visual = visualhash.New(visualhash.Options{Logger: opts.Logger})
	}
	if opts.Semantic == nil {
		opts.Semantic = semantichash.New(semantichash.Options{Logger: opts.Logger})
	}
	return &Aggregator{
		sniffer:  opts.Sniffer,
		visual:   opts.Visual,
		semantic: opts.Semantic,
		logger:   logging.NewComponentLogger(opts.Logger, "fingerprint"),
	}
}

// Compute fingerprints src, which must also implement io.Seeker. Arguments
// are validated before anything is read. The read position src had on entry
// is restored before Compute returns, including on cancellation.
func (a *Aggregator) Compute(ctx context.Context, src io.Reader, alg digest.Algorithm) (*Fingerprint, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	rs, ok := src.(io.ReadSeeker)
	if !ok {
		return nil, ErrNotSeekable
	}
	if !alg.Valid() {
		return nil, fmt.Errorf("%w: %q", digest.ErrUnsupportedAlgorithm, alg)
	}
	origin, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotSeekable, err)
	}

	logger := logging.WithContext(ctx, a.logger)
	fp := &Fingerprint{Algorithm: alg}
	issues, err := a.collect(ctx, rs, fp, logger)
	if _, seekErr := rs.Seek(origin, io.SeekStart); seekErr != nil {
		issues = append(issues, fmt.Errorf("restore read position: %w", seekErr))
	}
	if err != nil {
		return nil, err
	}
	if len(issues) > 0 {
		return fp, fmt.Errorf("%w: %w", ErrIncomplete, errors.Join(issues...))
	}

	logger.Debug("fingerprint computed",
		logging.String(logging.FieldMIMEType, fp.MIMEType),
		logging.Int64("size", fp.Size),
		logging.Hash("visual_hash", fp.VisualHash),
		logging.Hash("semantic_hash", fp.SemanticHash),
	)
	return fp, nil
}

// collect runs the passes in order. The error result is reserved for
// cancellation; per-pass failures are returned as issues.
func (a *Aggregator) collect(ctx context.Context, rs io.ReadSeeker, fp *Fingerprint, logger *slog.Logger) ([]error, error) {
	var issues []error

	if err := checkpoint(ctx); err != nil {
		return nil, err
	}
	fp.MIMEType = a.sniffer.Detect(rs)

	if err := checkpoint(ctx); err != nil {
		return nil, err
	}
	sum, n, err := digest.SumCount(ctx, rs, fp.Algorithm)
	switch {
	case err == nil:
		fp.CryptographicHash = sum
		fp.Size = n
	case ctx.Err() != nil:
		return nil, ctx.Err()
	default:
		logger.Debug("digest pass failed",
			logging.String(logging.FieldAlgorithm, fp.Algorithm.String()),
			logging.Error(err),
		)
		issues = append(issues, fmt.Errorf("digest: %w", err))
	}

	if err := checkpoint(ctx); err != nil {
		return nil, err
	}
	if err := rewind(rs); err != nil {
		issues = append(issues, fmt.Errorf("visual: %w", err))
	} else {
		fp.VisualHash = a.visual.Compute(rs)
	}

	if err := checkpoint(ctx); err != nil {
		return nil, err
	}
	if err := rewind(rs); err != nil {
		issues = append(issues, fmt.Errorf("semantic: %w", err))
	} else {
		fp.SemanticHash = a.semantic.Compute(rs)
	}

	return issues, nil
}

func checkpoint(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

func rewind(rs io.Seeker) error {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind source: %w", err)
	}
	return nil
}
