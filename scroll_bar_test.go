package tview

import (
	"testing"

	"github.com/gdamore/tcell/v3"
	"github.com/stretchr/testify/assert"
)

func TestThumbFor(t *testing.T) {
	t.Parallel()

	th := thumbFor(5, 50, 5, 0)
	assert.Equal(t, thumb{cells: 5, start: 0, length: 8}, th)
	assert.Equal(t, 40, th.track())

	th = thumbFor(5, 50, 5, 45)
	assert.Equal(t, 32, th.start)

	// Everything fits: the thumb fills the track.
	th = thumbFor(5, 3, 5, 0)
	assert.Equal(t, 40, th.length)

	assert.Equal(t, thumb{}, thumbFor(0, 10, 5, 0))
}

func TestThumbFill(t *testing.T) {
	t.Parallel()
	th := thumb{cells: 3, start: 5, length: 10}

	eighths, top := th.fill(0)
	assert.Equal(t, 3, eighths)
	assert.False(t, top)

	eighths, top = th.fill(1)
	assert.Equal(t, 7, eighths)
	assert.True(t, top)

	eighths, _ = th.fill(2)
	assert.Zero(t, eighths)
}

func TestScrollBarTrackPress(t *testing.T) {
	t.Parallel()

	var offsets []int
	s := NewScrollBar().SetScrollFunc(func(offset int) {
		offsets = append(offsets, offset)
	})
	s.SetRect(0, 0, 1, 5)
	s.SetLengths(ScrollLengths{ContentLen: 50, ViewportLen: 5})

	_, cmd := s.MouseHandler(MouseLeftDown, tcell.NewEventMouse(0, 4, tcell.ButtonPrimary, tcell.ModNone))
	assert.True(t, Consumed(cmd))

	s.SetOffset(20)
	s.MouseHandler(MouseLeftDown, tcell.NewEventMouse(0, 0, tcell.ButtonPrimary, tcell.ModNone))

	s.SetTrackClickBehavior(TrackClickBehaviorJumpToClick)
	s.MouseHandler(MouseLeftDown, tcell.NewEventMouse(0, 4, tcell.ButtonPrimary, tcell.ModNone))

	assert.Equal(t, []int{5, 15, 45}, offsets)

	_, cmd = s.MouseHandler(MouseRightDown, tcell.NewEventMouse(0, 4, tcell.ButtonSecondary, tcell.ModNone))
	assert.Nil(t, cmd)
}

func TestScrollBarDrawsThumb(t *testing.T) {
	t.Parallel()
	s := NewScrollBar().SetGlyphSet(UnicodeGlyphSet())
	s.SetRect(0, 0, 1, 4)
	s.SetLengths(ScrollLengths{ContentLen: 8, ViewportLen: 4})
	screen := newTestScreen(1, 4)

	s.Draw(screen)
	assert.Equal(t, "█", screen.row(0))
	assert.Equal(t, "█", screen.row(1))
	assert.Equal(t, "│", screen.row(2))
	assert.Equal(t, "│", screen.row(3))
}
