package scoring

import (
	"fmt"
	"io"
	"strings"
)

const maxBarWidth = 50

// PlotScoresTerminal draws one horizontal bar per score, in the order given.
func PlotScoresTerminal(w io.Writer, ids []string, scores []float64, title string) {
	if len(scores) == 0 {
		fmt.Fprintf(w, "\n%s: no scores to plot\n", title)
		return
	}

	scaled := MinMaxScale(scores)
	minScore, maxScore := scores[0], scores[0]
	for _, s := range scores {
		minScore = min(minScore, s)
		maxScore = max(maxScore, s)
	}

	fmt.Fprintf(w, "\n%s (Terminal Plot - Ranked Order):\n", title)
	fmt.Fprintln(w, "    Rank | Score      | Bar Chart")
	fmt.Fprintln(w, "---------|------------|"+strings.Repeat("-", maxBarWidth))

	for i, s := range scores {
		var barWidth int
		if maxScore != minScore {
			barWidth = int(scaled[i] * float64(maxBarWidth))
		} else {
			barWidth = maxBarWidth / 2
		}

		bar := strings.Repeat("█", barWidth)
		if barWidth == 0 {
			bar = "▏"
		}

		id := ""
		if i < len(ids) {
			id = ids[i]
		}
		fmt.Fprintf(w, "%8d | %10.4f | %s %s\n", i+1, s, bar, id)
	}

	fmt.Fprintf(w, "\nScale: Min=%.6f, Max=%.6f\n", minScore, maxScore)
	fmt.Fprintf(w, "Bar width represents relative score (0 to %d chars)\n", maxBarWidth)
}
