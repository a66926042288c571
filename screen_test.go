package tview

import (
	"strings"

	"github.com/gdamore/tcell/v3"
	"github.com/rivo/uniseg"
)

type testCell struct {
	str   string
	style tcell.Style
}

// testScreen records cells written by Draw. Methods it does not override
// panic through the nil embedded screen.
type testScreen struct {
	tcell.Screen
	width, height int
	cells         map[[2]int]testCell
}

func newTestScreen(width, height int) *testScreen {
	return &testScreen{width: width, height: height, cells: make(map[[2]int]testCell)}
}

func (s *testScreen) Size() (int, int) {
	return s.width, s.height
}

func (s *testScreen) Put(x, y int, str string, style tcell.Style) (string, int) {
	if str == "" {
		return "", 0
	}
	cluster, rest, width, _ := uniseg.FirstGraphemeClusterInString(str, -1)
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		s.cells[[2]int{x, y}] = testCell{str: cluster, style: style}
	}
	return rest, width
}

func (s *testScreen) Get(x, y int) (string, tcell.Style, int) {
	cell, ok := s.cells[[2]int{x, y}]
	if !ok {
		return " ", tcell.StyleDefault, 1
	}
	return cell.str, cell.style, 1
}

func (s *testScreen) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	s.Put(x, y, string(append([]rune{primary}, combining...)), style)
}

func (s *testScreen) ShowCursor(x, y int) {}

func (s *testScreen) HideCursor() {}

// row returns the text of row y with trailing blanks removed.
func (s *testScreen) row(y int) string {
	var b strings.Builder
	for x := 0; x < s.width; x++ {
		str, _, _ := s.Get(x, y)
		b.WriteString(str)
	}
	return strings.TrimRight(b.String(), " ")
}

func (s *testScreen) styleAt(x, y int) tcell.Style {
	_, style, _ := s.Get(x, y)
	return style
}
