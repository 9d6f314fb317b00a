package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"contentprint/internal/digest"
)

type algorithmInfo struct {
	Name    digest.Algorithm `json:"name"`
	Bits    int              `json:"bits"`
	Legacy  bool             `json:"legacy"`
	Default bool             `json:"default"`
}

func newAlgorithmsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List supported digest algorithms",
		RunE: func(cmd *cobra.Command, args []string) error {
			configured := digest.Default
			if cfg, err := ctx.ensureConfig(); err == nil {
				configured = cfg.Algorithm()
			}

			algs := digest.Algorithms()
			infos := make([]algorithmInfo, 0, len(algs))
			for _, alg := range algs {
				infos = append(infos, algorithmInfo{
					Name:    alg,
					Bits:    alg.Size() * 8,
					Legacy:  alg.Legacy(),
					Default: alg == configured,
				})
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, infos)
			}
			rows := make([][]string, 0, len(infos))
			for _, info := range infos {
				name := info.Name.String()
				if info.Default {
					name += " *"
				}
				rows = append(rows, []string{name, strconv.Itoa(info.Bits), yesNo(info.Legacy)})
			}
			writeRows(cmd.OutOrStdout(), []string{"Algorithm", "Bits", "Legacy"}, rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft})
			return nil
		},
	}
}
