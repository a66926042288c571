package tview

import (
	"github.com/gdamore/tcell/v3"
	"github.com/rivo/uniseg"
)

// Alignment is the horizontal alignment of printed text.
type Alignment int

const (
	AlignmentLeft Alignment = iota
	AlignmentCenter
	AlignmentRight
)

// PrintWithStyle prints one line of text at (x, y), clipped to maxWidth
// cells and aligned within them. It returns the number of bytes and the
// number of cells printed. Text is clipped at grapheme cluster boundaries,
// so a wide character never ends up half drawn.
func PrintWithStyle(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, style tcell.Style) (int, int) {
	if maxWidth <= 0 || text == "" {
		return 0, 0
	}
	text, width := truncate(text, maxWidth)
	switch alignment {
	case AlignmentCenter:
		x += (maxWidth - width) / 2
	case AlignmentRight:
		x += maxWidth - width
	}

	state := -1
	for rest := text; rest != ""; {
		var (
			cluster    string
			clusterLen int
		)
		cluster, rest, clusterLen, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if clusterLen == 0 {
			continue
		}
		// Fill the trailing cells first so the cluster owns them.
		for offset := clusterLen - 1; offset > 0; offset-- {
			screen.Put(x+offset, y, " ", style)
		}
		screen.Put(x, y, cluster, style)
		x += clusterLen
	}
	return len(text), width
}
