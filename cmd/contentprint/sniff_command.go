package main

import (
	"github.com/spf13/cobra"
)

type sniffResult struct {
	Path     string `json:"path"`
	MIMEType string `json:"mime_type"`
}

func newSniffCommand(ctx *commandContext) *cobra.Command {
	var containers bool

	cmd := &cobra.Command{
		Use:   "sniff <file>...",
		Short: "Detect MIME types from leading bytes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkStdinArgs(args); err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			sniffer := ctx.newSniffer(ctx.inspectContainers(cmd, containers), logger)

			results := make([]sniffResult, 0, len(args))
			for _, arg := range args {
				in, err := ctx.openInput(cmd, arg)
				if err != nil {
					return err
				}
				mimeType := sniffer.Detect(in)
				in.Close()
				results = append(results, sniffResult{Path: in.Name, MIMEType: mimeType})
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, results)
			}
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, []string{r.Path, r.MIMEType})
			}
			writeRows(cmd.OutOrStdout(), []string{"Path", "MIME Type"}, rows, nil)
			return nil
		},
	}

	cmd.Flags().BoolVar(&containers, "containers", true, "Inspect ZIP and OLE containers for office document types")
	return cmd
}
