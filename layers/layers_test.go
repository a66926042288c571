package layers

import (
	"testing"

	"github.com/gdamore/tcell/v3"
	"github.com/gdamore/tcell/v3/color"
	"github.com/stretchr/testify/assert"
	"github.com/xqrs/tview-listbox"
)

// styleScreen records the style of every cell put on it.
type styleScreen struct {
	tcell.Screen
	styles map[[2]int]tcell.Style
}

func newStyleScreen() *styleScreen {
	return &styleScreen{styles: make(map[[2]int]tcell.Style)}
}

func (s *styleScreen) Put(x, y int, str string, style tcell.Style) (string, int) {
	s.styles[[2]int{x, y}] = style
	return "", 1
}

// focusChain moves the focus the way the application does.
type focusChain struct {
	focused tview.Primitive
}

func (f *focusChain) set(p tview.Primitive) {
	if f.focused != nil {
		f.focused.Blur()
	}
	f.focused = p
	p.Focus(f.set)
}

func TestLayerNames(t *testing.T) {
	t.Parallel()
	l := New().
		AddLayer(tview.NewBox(), WithName("a")).
		AddLayer(tview.NewBox(), WithName("b")).
		AddLayer(tview.NewBox(), WithName("c")).
		AddLayer(tview.NewBox(), WithName("b"))

	assert.Equal(t, []string{"b", "c", "a"}, l.LayerNames(false))

	l.HideLayer("c")
	assert.False(t, l.Visible("c"))
	assert.Equal(t, []string{"b", "a"}, l.LayerNames(true))

	l.RemoveLayer("a")
	assert.False(t, l.HasLayer("a"))
	assert.False(t, l.Visible("missing"))
	assert.Equal(t, []string{"b", "c"}, l.LayerNames(false))
}

func TestLayersFocusFollowsFrontLayer(t *testing.T) {
	t.Parallel()
	back, front := tview.NewBox(), tview.NewBox()
	l := New().
		AddLayer(back, WithName("back")).
		AddLayer(front, WithName("front"), WithVisible(false), WithOverlay())

	focus := &focusChain{}
	focus.set(l)
	assert.Same(t, back, focus.focused)
	assert.True(t, l.HasFocus())

	l.ShowLayer("front")
	assert.Same(t, front, focus.focused)
	assert.False(t, back.HasFocus())

	l.HideLayer("front")
	assert.Same(t, back, focus.focused)
	assert.False(t, front.HasFocus())
}

func TestLayersUnfocusedDoNotMoveFocus(t *testing.T) {
	t.Parallel()
	back, front := tview.NewBox(), tview.NewBox()
	l := New().
		AddLayer(back, WithName("back")).
		AddLayer(front, WithName("front"), WithVisible(false))

	l.ShowLayer("front")
	assert.False(t, front.HasFocus())
	assert.Nil(t, l.InputHandler(tcell.NewEventKey(tcell.KeyEnter, "", tcell.ModNone)))
}

func TestOverlayBlocksMouseBehindIt(t *testing.T) {
	t.Parallel()
	back, front := tview.NewBox(), tview.NewBox()
	l := New().
		AddLayer(back, WithName("back")).
		AddLayer(front, WithName("front"), WithVisible(false), WithOverlay())
	l.SetRect(0, 0, 10, 5)
	press := tcell.NewEventMouse(1, 1, tcell.ButtonPrimary, tcell.ModNone)

	_, cmd := l.MouseHandler(tview.MouseLeftDown, press)
	assert.Equal(t, tview.SetFocusCommand{Target: back}, cmd)

	l.ShowLayer("front")
	_, cmd = l.MouseHandler(tview.MouseLeftDown, press)
	assert.True(t, tview.Consumed(cmd))
	assert.Contains(t, cmd, tview.SetFocusCommand{Target: front})
	assert.NotContains(t, cmd, tview.SetFocusCommand{Target: back})

	_, cmd = l.MouseHandler(tview.MouseLeftDown, tcell.NewEventMouse(20, 1, tcell.ButtonPrimary, tcell.ModNone))
	assert.Nil(t, cmd)
}

func TestOverlayDimsLayersBehindIt(t *testing.T) {
	t.Parallel()
	back, front := tview.NewBox(), tview.NewBox()
	front.SetRect(5, 0, 2, 2)
	l := New().
		SetBackgroundLayerStyle(tcell.StyleDefault.Dim(true)).
		AddLayer(back, WithName("back"), WithResize(true)).
		AddLayer(front, WithName("front"), WithVisible(false), WithOverlay())
	l.SetRect(0, 0, 10, 5)

	screen := newStyleScreen()
	l.Draw(screen)
	assert.False(t, screen.styles[[2]int{0, 0}].HasDim())

	l.ShowLayer("front")
	assert.True(t, l.IsDirty())
	l.Draw(screen)
	assert.True(t, screen.styles[[2]int{0, 0}].HasDim())
	assert.False(t, screen.styles[[2]int{5, 0}].HasDim())
	assert.True(t, screen.styles[[2]int{7, 0}].HasDim())
}

func TestMergeStyleKeepsUnsetColors(t *testing.T) {
	t.Parallel()
	base := tcell.StyleDefault.Foreground(color.Red).Bold(true)
	merged := mergeStyle(base, tcell.StyleDefault.Background(color.Blue).Dim(true))

	assert.Equal(t, color.Red, merged.GetForeground())
	assert.Equal(t, color.Blue, merged.GetBackground())
	assert.True(t, merged.HasBold())
	assert.True(t, merged.HasDim())
}
