package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"contentprint/internal/similarity"
)

var verdictColors = map[similarity.Verdict]*color.Color{
	similarity.Exact:     color.New(color.FgGreen, color.Bold),
	similarity.Duplicate: color.New(color.FgGreen),
	similarity.Similar:   color.New(color.FgYellow),
	similarity.Different: color.New(color.FgRed),
}

// formatVerdict renders a verdict with its distance, colored on terminals.
func formatVerdict(out io.Writer, v similarity.Verdict, distance int) string {
	label := fmt.Sprintf("%s (%d bits)", v, distance)
	if !isTerminal(out) {
		return label
	}
	if c, ok := verdictColors[v]; ok {
		return c.Sprint(label)
	}
	return label
}
