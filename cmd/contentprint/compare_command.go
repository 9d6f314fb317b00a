package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"contentprint/internal/fingerprint"
	"contentprint/internal/similarity"
)

type compareResult struct {
	PathA      string                 `json:"path_a"`
	PathB      string                 `json:"path_b"`
	Thresholds similarity.Thresholds  `json:"thresholds"`
	Comparison fingerprint.Comparison `json:"comparison"`
}

type hashCompareResult struct {
	A          string                `json:"a"`
	B          string                `json:"b"`
	Distance   int                   `json:"distance"`
	Verdict    similarity.Verdict    `json:"verdict"`
	Thresholds similarity.Thresholds `json:"thresholds"`
}

func newCompareCommand(ctx *commandContext) *cobra.Command {
	var (
		low        int
		high       int
		hashes     bool
		algorithm  string
		containers bool
	)

	cmd := &cobra.Command{
		Use:   "compare <fileA> <fileB>",
		Short: "Compare two files or two 64-bit hashes",
		Long: "Compare fingerprints both files and reports content identity plus visual and semantic\n" +
			"verdicts. With --hashes the arguments are hex-encoded 64-bit hashes instead.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			th, err := ctx.resolveThresholds(cmd, low, high)
			if err != nil {
				return err
			}
			if hashes {
				return compareHashes(ctx, cmd, args, th)
			}
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
			reqCtx := ctx.requestContext(cmd)

			fps := make([]*fingerprint.Fingerprint, len(args))
			names := make([]string, len(args))
			for i, arg := range args {
				in, err := ctx.openInput(cmd, arg)
				if err != nil {
					return err
				}
				fp, err := agg.Compute(reqCtx, in, alg)
				in.Close()
				names[i] = in.Name
				if err != nil && !errors.Is(err, fingerprint.ErrIncomplete) {
					return fmt.Errorf("fingerprint %s: %w", in.Name, err)
				}
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", in.Name, err)
				}
				fps[i] = fp
			}

			result := compareResult{
				PathA:      names[0],
				PathB:      names[1],
				Thresholds: th,
				Comparison: fingerprint.Compare(fps[0], fps[1], th),
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			content := "different"
			if result.Comparison.IdenticalContent {
				content = "identical"
			}
			fmt.Fprintf(out, "content:  %s\n", content)
			fmt.Fprintf(out, "visual:   %s\n", formatVerdict(out, result.Comparison.Visual, result.Comparison.VisualDistance))
			fmt.Fprintf(out, "semantic: %s\n", formatVerdict(out, result.Comparison.Semantic, result.Comparison.SemanticDistance))
			return nil
		},
	}

	cmd.Flags().IntVar(&low, "low", 0, "Upper Hamming distance for duplicate (default from config)")
	cmd.Flags().IntVar(&high, "high", 0, "Upper Hamming distance for similar (default from config)")
	cmd.Flags().BoolVar(&hashes, "hashes", false, "Treat arguments as hex-encoded 64-bit hashes")
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "Digest algorithm (default from config)")
	cmd.Flags().BoolVar(&containers, "containers", true, "Inspect ZIP and OLE containers for office document types")
	return cmd
}

func compareHashes(ctx *commandContext, cmd *cobra.Command, args []string, th similarity.Thresholds) error {
	a, err := fingerprint.ParseHash(args[0])
	if err != nil {
		return fmt.Errorf("first hash: %w", err)
	}
	b, err := fingerprint.ParseHash(args[1])
	if err != nil {
		return fmt.Errorf("second hash: %w", err)
	}

	result := hashCompareResult{
		A:          fingerprint.FormatHash(a),
		B:          fingerprint.FormatHash(b),
		Distance:   similarity.Distance(a, b),
		Verdict:    similarity.Compare(a, b, th),
		Thresholds: th,
	}
	if ctx.jsonOutput() {
		return writeJSON(cmd, result)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, formatVerdict(out, result.Verdict, result.Distance))
	return nil
}
