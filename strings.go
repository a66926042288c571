package tview

import (
	"strings"

	"github.com/rivo/uniseg"
)

// StringWidth returns the number of cells text occupies on screen.
func StringWidth(text string) int {
	return uniseg.StringWidth(text)
}

// truncate returns the longest prefix of text that fits into width cells
// and the cells it uses.
func truncate(text string, width int) (string, int) {
	var (
		end, used int
		state     = -1
	)
	for rest := text; rest != ""; {
		var (
			cluster      string
			clusterWidth int
		)
		cluster, rest, clusterWidth, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if used+clusterWidth > width {
			break
		}
		used += clusterWidth
		end += len(cluster)
	}
	return text[:end], used
}

// splitLines splits template output into display lines, dropping a single
// trailing line break. An empty text yields one empty line.
func splitLines(text string) []string {
	text = strings.TrimSuffix(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	return strings.Split(text, "\n")
}
