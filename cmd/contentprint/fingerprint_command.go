package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"sync"

	"github.com/spf13/cobra"

	"contentprint/internal/digest"
	"contentprint/internal/fingerprint"
	"contentprint/internal/logging"
	"contentprint/internal/source"
)

type fingerprintResult struct {
	Path        string                   `json:"path"`
	Fingerprint *fingerprint.Fingerprint `json:"fingerprint,omitempty"`
	Error       string                   `json:"error,omitempty"`
	err         error
}

type inputOpener func(arg string) (*source.Input, error)

func newFingerprintCommand(ctx *commandContext) *cobra.Command {
	var (
		algorithm  string
		containers bool
		workers    int
	)

	cmd := &cobra.Command{
		Use:   "fingerprint <file>...",
		Short: "Compute MIME type, digest, visual and semantic hashes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkStdinArgs(args); err != nil {
				return err
			}
			alg, err := ctx.resolveAlgorithm(algorithm)
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			agg := ctx.newAggregator(ctx.inspectContainers(cmd, containers), logger)
			open := func(arg string) (*source.Input, error) { return ctx.openInput(cmd, arg) }

			results := fingerprintFiles(ctx.requestContext(cmd), agg, alg, args, open, workers, logger)

			if ctx.jsonOutput() {
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				renderFingerprints(cmd, results)
			}
			return summarizeFailures(results)
		},
	}

	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "Digest algorithm (default from config)")
	cmd.Flags().BoolVar(&containers, "containers", true, "Inspect ZIP and OLE containers for office document types")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent files (default: half the CPUs)")
	return cmd
}

// fingerprintFiles fans paths out to a bounded worker pool. Results keep the
// order of paths.
func fingerprintFiles(ctx context.Context, agg *fingerprint.Aggregator, alg digest.Algorithm, paths []string, open inputOpener, workers int, logger *slog.Logger) []fingerprintResult {
	numFiles := len(paths)
	results := make([]fingerprintResult, numFiles)
	if numFiles == 0 {
		return results
	}

	maxWorkers := workers
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU() / 2
	}
	maxWorkers = max(min(maxWorkers, numFiles), 1)

	jobs := make(chan int, numFiles)
	var wg sync.WaitGroup
	for range maxWorkers {
		wg.Go(func() {
			for i := range jobs {
				results[i] = fingerprintOne(ctx, agg, alg, paths[i], open, logger)
			}
		})
	}
	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}

func fingerprintOne(ctx context.Context, agg *fingerprint.Aggregator, alg digest.Algorithm, path string, open inputOpener, logger *slog.Logger) fingerprintResult {
	result := fingerprintResult{Path: path}
	in, err := open(path)
	if err != nil {
		result.err = err
		result.Error = err.Error()
		return result
	}
	defer in.Close()
	result.Path = in.Name

	ctx = logging.WithPath(ctx, in.Name)
	fp, err := agg.Compute(ctx, in, alg)
	result.Fingerprint = fp
	if err != nil {
		result.err = err
		result.Error = err.Error()
		if errors.Is(err, fingerprint.ErrIncomplete) {
			logging.WithContext(ctx, logger).Warn("fingerprint incomplete", logging.Error(err))
		}
		return result
	}
	logging.WithContext(ctx, logger).Debug("fingerprinted",
		logging.String(logging.FieldMIMEType, fp.MIMEType),
		logging.Int64("size", fp.Size),
	)
	return result
}

func renderFingerprints(cmd *cobra.Command, results []fingerprintResult) {
	out := cmd.OutOrStdout()
	headers := []string{"Path", "MIME Type", "Size", "Digest", "Visual", "Semantic"}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		if r.Fingerprint == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", r.Path, r.Error)
			continue
		}
		fp := r.Fingerprint
		rows = append(rows, []string{
			r.Path,
			fp.MIMEType,
			strconv.FormatInt(fp.Size, 10),
			hashOrDash(fp.HasDigest(), fp.DigestHex()),
			hashOrDash(fp.HasVisual(), fingerprint.FormatHash(fp.VisualHash)),
			hashOrDash(fp.HasSemantic(), fingerprint.FormatHash(fp.SemanticHash)),
		})
		if r.err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", r.Path, r.Error)
		}
	}
	writeRows(out, headers, rows, []columnAlignment{alignLeft, alignLeft, alignRight})
}

func hashOrDash(ok bool, value string) string {
	if !ok {
		return "-"
	}
	return value
}

func summarizeFailures(results []fingerprintResult) error {
	failed := 0
	var canceled error
	for _, r := range results {
		if r.err == nil {
			continue
		}
		failed++
		if errors.Is(r.err, context.Canceled) {
			canceled = r.err
		}
	}
	if canceled != nil {
		return canceled
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}
