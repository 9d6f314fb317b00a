package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"contentprint/internal/digest"
	"contentprint/internal/logging"
	"contentprint/internal/source"
)

type hashResult struct {
	Path      string           `json:"path"`
	Algorithm digest.Algorithm `json:"algorithm"`
	Digest    string           `json:"digest"`
	Size      int64            `json:"size"`
}

func newHashCommand(ctx *commandContext) *cobra.Command {
	var algorithm string

	cmd := &cobra.Command{
		Use:   "hash <file>...",
		Short: "Compute cryptographic digests",
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
			if alg.Legacy() {
				logger.Warn("legacy digest selected; use only for interoperability",
					logging.String(logging.FieldAlgorithm, alg.String()),
				)
			}
			reqCtx := ctx.requestContext(cmd)

			results := make([]hashResult, 0, len(args))
			for _, arg := range args {
				result := hashResult{Path: arg, Algorithm: alg}
				var (
					sum  []byte
					size int64
				)
				if arg == source.StdinArg {
					// Digests stream, so stdin needs no buffering. Hiding Seek
					// keeps SumCount from rewinding a pipe.
					result.Path = "stdin"
					stdin := struct{ io.Reader }{cmd.InOrStdin()}
					sum, size, err = digest.SumCount(reqCtx, stdin, alg)
				} else {
					f, openErr := source.Open(arg)
					if openErr != nil {
						return openErr
					}
					sum, size, err = digest.SumCount(reqCtx, f, alg)
					f.Close()
				}
				if err != nil {
					return fmt.Errorf("hash %s: %w", result.Path, err)
				}
				result.Digest = hex.EncodeToString(sum)
				result.Size = size
				results = append(results, result)
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, results)
			}
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, []string{r.Digest, r.Path})
			}
			writeRows(cmd.OutOrStdout(), []string{alg.String(), "Path"}, rows, nil)
			return nil
		},
	}

	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "Digest algorithm (default from config)")
	return cmd
}
