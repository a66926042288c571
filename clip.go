package tview

import (
	"github.com/gdamore/tcell/v3"
	"github.com/rivo/uniseg"
)

type rect struct {
	x, y, width, height int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.width && y >= r.y && y < r.y+r.height
}

// clippedScreen drops everything drawn outside clip. Containers scrolled
// partly out of the panel draw through it.
type clippedScreen struct {
	tcell.Screen
	clip rect
}

func (s *clippedScreen) Put(x, y int, str string, style tcell.Style) (string, int) {
	if !s.clip.contains(x, y) {
		return str, 0
	}
	return s.Screen.Put(x, y, str, style)
}

func (s *clippedScreen) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	if s.clip.contains(x, y) {
		s.Screen.SetContent(x, y, primary, combining, style)
	}
}

func (s *clippedScreen) PutStr(x, y int, str string) {
	s.PutStrStyled(x, y, str, tcell.StyleDefault)
}

// PutStrStyled prints the clusters of str that fit entirely into clip.
func (s *clippedScreen) PutStrStyled(x, y int, str string, style tcell.Style) {
	right := s.clip.x + s.clip.width
	state := -1
	for rest := str; rest != "" && x < right; {
		var (
			cluster string
			width   int
		)
		cluster, rest, width, state = uniseg.FirstGraphemeClusterInString(rest, state)
		width = max(width, 1)
		if s.clip.contains(x, y) && x+width <= right {
			s.Screen.Put(x, y, cluster, style)
		}
		x += width
	}
}

func (s *clippedScreen) ShowCursor(x, y int) {
	if !s.clip.contains(x, y) {
		x, y = -1, -1
	}
	s.Screen.ShowCursor(x, y)
}
