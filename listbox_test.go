package tview

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/gdamore/tcell/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testWidth  = 20
	testHeight = 5
)

// newTestListBox binds a list box to items and draws it once so its
// containers are laid out one per row.
func newTestListBox(t *testing.T, items *Collection[string], options ...ListBoxOption[string]) (*ListBox[string], *testScreen) {
	t.Helper()
	l := NewListBox(options...)
	l.SetItemsSource(items)
	l.SetRect(0, 0, testWidth, testHeight)
	screen := newTestScreen(testWidth, testHeight)
	l.Draw(screen)
	return l, screen
}

func press(l *ListBox[string], row int, action MouseAction, mod tcell.ModMask) Command {
	buttons := tcell.ButtonPrimary
	switch action {
	case MouseRightDown:
		buttons = tcell.ButtonSecondary
	case MouseMiddleDown:
		buttons = tcell.ButtonMiddle
	}
	_, cmd := l.MouseHandler(action, tcell.NewEventMouse(3, row, buttons, mod))
	return cmd
}

func key(l *ListBox[string], k tcell.Key, str string, mod tcell.ModMask) Command {
	return l.InputHandler(tcell.NewEventKey(k, str, mod))
}

func containerAt(t *testing.T, l *ListBox[string], row int) *ListBoxItem[string] {
	t.Helper()
	container, ok := l.Panel().ContainerAt(3, row).(*ListBoxItem[string])
	require.True(t, ok, "no container at row %d", row)
	return container
}

func TestListBoxPressSelectsSingle(t *testing.T) {
	t.Parallel()
	l, _ := newTestListBox(t, letters(5))

	cmd := press(l, 2, MouseLeftDown, tcell.ModNone)
	assert.True(t, Consumed(cmd))
	assert.Contains(t, cmd, SetFocusCommand{Target: l})
	assert.Equal(t, []int{2}, l.SelectedIndices())
	assert.Equal(t, 2, l.FocusedIndex())

	press(l, 3, MouseLeftDown, tcell.ModNone)
	assert.Equal(t, []string{"d"}, l.SelectedItems())
}

func TestListBoxModifierPresses(t *testing.T) {
	t.Parallel()
	l, _ := newTestListBox(t, letters(5), WithSelectionMode[string](SelectionMultiple))

	press(l, 1, MouseLeftDown, tcell.ModNone)
	press(l, 3, MouseLeftDown, tcell.ModShift)
	assert.Equal(t, []int{1, 2, 3}, l.SelectedIndices())

	press(l, 2, MouseLeftDown, tcell.ModCtrl)
	assert.Equal(t, []int{1, 3}, l.SelectedIndices())

	// The anchor moved to the toggled item.
	press(l, 4, MouseLeftDown, tcell.ModShift)
	assert.Equal(t, []int{2, 3, 4}, l.SelectedIndices())
}

func TestListBoxDirectionalShiftMatchesShiftPress(t *testing.T) {
	t.Parallel()
	pressed, _ := newTestListBox(t, letters(5), WithSelectionMode[string](SelectionMultiple))
	press(pressed, 1, MouseLeftDown, tcell.ModNone)
	press(pressed, 3, MouseLeftDown, tcell.ModShift)

	keyed, _ := newTestListBox(t, letters(5), WithSelectionMode[string](SelectionMultiple))
	press(keyed, 1, MouseLeftDown, tcell.ModNone)
	require.NotNil(t, key(keyed, tcell.KeyDown, "", tcell.ModShift))
	require.NotNil(t, key(keyed, tcell.KeyDown, "", tcell.ModShift))

	assert.Equal(t, pressed.SelectedIndices(), keyed.SelectedIndices())
	assert.Equal(t, pressed.FocusedIndex(), keyed.FocusedIndex())
}

func TestListBoxKeyboardNavigation(t *testing.T) {
	t.Parallel()
	l, _ := newTestListBox(t, letters(5), WithSelectionMode[string](SelectionMultiple))

	cmd := key(l, tcell.KeyDown, "", tcell.ModNone)
	assert.True(t, Consumed(cmd))
	assert.Equal(t, 0, l.FocusedIndex())
	assert.Equal(t, []int{0}, l.SelectedIndices())

	key(l, tcell.KeyRune, "j", tcell.ModNone)
	assert.Equal(t, []int{1}, l.SelectedIndices())

	key(l, tcell.KeyEnd, "", tcell.ModNone)
	assert.Equal(t, 4, l.FocusedIndex())
	assert.Equal(t, []int{4}, l.SelectedIndices())

	// Focus does not wrap around.
	assert.Nil(t, key(l, tcell.KeyDown, "", tcell.ModNone))
	assert.Equal(t, 4, l.FocusedIndex())

	key(l, tcell.KeyHome, "", tcell.ModShift)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, l.SelectedIndices())

	assert.Nil(t, key(l, tcell.KeyRune, "x", tcell.ModNone))
}

func TestListBoxToggleKey(t *testing.T) {
	t.Parallel()

	multiple, _ := newTestListBox(t, letters(5), WithSelectionMode[string](SelectionMultiple))
	multiple.FocusIndex(2)
	assert.True(t, Consumed(key(multiple, tcell.KeyRune, " ", tcell.ModNone)))
	assert.Equal(t, []int{2}, multiple.SelectedIndices())
	key(multiple, tcell.KeyRune, " ", tcell.ModNone)
	assert.Empty(t, multiple.SelectedIndices())

	single, _ := newTestListBox(t, letters(5))
	single.Select(0)
	single.FocusIndex(3)
	key(single, tcell.KeyRune, " ", tcell.ModNone)
	assert.Equal(t, []int{3}, single.SelectedIndices())
}

func TestListBoxProgrammaticFocusDoesNotSelect(t *testing.T) {
	t.Parallel()
	l, _ := newTestListBox(t, letters(5))

	l.FocusIndex(3)
	assert.Equal(t, 3, l.FocusedIndex())
	assert.Empty(t, l.SelectedIndices())

	l.FocusIndex(99)
	assert.Equal(t, 4, l.FocusedIndex())
	assert.Empty(t, l.SelectedIndices())
}

func TestListBoxUnresolvableSourceIsNoop(t *testing.T) {
	t.Parallel()
	l, _ := newTestListBox(t, letters(2))
	l.Select(1)

	// Below the last item nothing is realized.
	cmd := press(l, 4, MouseLeftDown, tcell.ModNone)
	assert.Equal(t, SetFocusCommand{Target: l}, cmd)
	assert.False(t, Consumed(cmd))
	assert.Equal(t, []int{1}, l.SelectedIndices())
	assert.Equal(t, -1, l.FocusedIndex())

	event := &PointerPressedEvent{RoutedEvent: RoutedEvent{Source: NewBox()}, Button: MouseButtonLeft}
	l.RaisePointerPressed(event)
	assert.False(t, event.Handled)

	foreign := NewListBoxItem[string]()
	focus := &GotFocusEvent{RoutedEvent: RoutedEvent{Source: foreign}, Navigation: NavigationDirectional}
	l.RaiseGotFocus(focus)
	assert.False(t, focus.Handled)
	assert.Equal(t, []int{1}, l.SelectedIndices())
}

func TestListBoxSelectionNone(t *testing.T) {
	t.Parallel()
	l, _ := newTestListBox(t, letters(5), WithSelectionMode[string](SelectionNone))

	cmd := press(l, 2, MouseLeftDown, tcell.ModNone)
	assert.False(t, Consumed(cmd))
	assert.Equal(t, 2, l.FocusedIndex())
	assert.Empty(t, l.SelectedIndices())

	key(l, tcell.KeyDown, "", tcell.ModShift)
	key(l, tcell.KeyRune, " ", tcell.ModNone)
	assert.Equal(t, 3, l.FocusedIndex())
	assert.Empty(t, l.SelectedIndices())
}

func TestListBoxRightPressActsLikeLeftPress(t *testing.T) {
	t.Parallel()
	l, _ := newTestListBox(t, letters(5), WithSelectionMode[string](SelectionMultiple))
	press(l, 1, MouseLeftDown, tcell.ModNone)
	press(l, 3, MouseLeftDown, tcell.ModShift)
	assert.Equal(t, []int{1, 2, 3}, l.SelectedIndices())

	// Shift extends from the anchor even onto a selected item.
	cmd := press(l, 2, MouseRightDown, tcell.ModShift)
	assert.True(t, Consumed(cmd))
	assert.Equal(t, []int{1, 2}, l.SelectedIndices())
	assert.Equal(t, 2, l.FocusedIndex())

	press(l, 4, MouseRightDown, tcell.ModCtrl)
	assert.Equal(t, []int{1, 2, 4}, l.SelectedIndices())

	cmd = press(l, 2, MouseRightDown, tcell.ModNone)
	assert.True(t, Consumed(cmd))
	assert.Equal(t, []int{2}, l.SelectedIndices())

	press(l, 0, MouseMiddleDown, tcell.ModNone)
	assert.Equal(t, []int{2}, l.SelectedIndices())
	assert.Equal(t, 0, l.FocusedIndex())
}

func TestListBoxRightPressOnSelectedItemIsHandled(t *testing.T) {
	t.Parallel()
	l, _ := newTestListBox(t, letters(3))
	press(l, 1, MouseLeftDown, tcell.ModNone)

	cmd := press(l, 1, MouseRightDown, tcell.ModNone)
	assert.True(t, Consumed(cmd))
	assert.Equal(t, []int{1}, l.SelectedIndices())
}

func TestListBoxNotSelectableItems(t *testing.T) {
	t.Parallel()
	l, _ := newTestListBox(t, letters(5), WithSelectable(func(item string) bool {
		return item != "b"
	}))

	press(l, 1, MouseLeftDown, tcell.ModNone)
	assert.Equal(t, 1, l.FocusedIndex())
	assert.Empty(t, l.SelectedIndices())
	assert.False(t, containerAt(t, l, 1).IsSelectable())

	press(l, 2, MouseLeftDown, tcell.ModNone)
	assert.Equal(t, []int{2}, l.SelectedIndices())
}

func TestListBoxBubbleHandlerStopsDispatch(t *testing.T) {
	t.Parallel()
	l, _ := newTestListBox(t, letters(5))
	containerAt(t, l, 2).SetPointerPressedFunc(func(event *PointerPressedEvent) {
		event.Handled = true
	})

	cmd := press(l, 2, MouseLeftDown, tcell.ModNone)
	assert.True(t, Consumed(cmd))
	assert.Equal(t, -1, l.FocusedIndex())
	assert.Empty(t, l.SelectedIndices())
}

func TestListBoxGotFocusHandlerStopsSelection(t *testing.T) {
	t.Parallel()
	l, _ := newTestListBox(t, letters(5))
	var navigations []NavigationMethod
	containerAt(t, l, 1).SetGotFocusFunc(func(event *GotFocusEvent) {
		navigations = append(navigations, event.Navigation)
		event.Handled = true
	})

	key(l, tcell.KeyDown, "", tcell.ModNone)
	assert.Equal(t, []int{0}, l.SelectedIndices())
	key(l, tcell.KeyDown, "", tcell.ModNone)
	assert.Equal(t, []NavigationMethod{NavigationDirectional}, navigations)
	assert.Equal(t, []int{0}, l.SelectedIndices())
	assert.Equal(t, 0, l.FocusedIndex())
}

func TestListBoxStaleTargetIsNotApplied(t *testing.T) {
	t.Parallel()
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	items := letters(5)
	l, _ := newTestListBox(t, items, WithLogger[string](logger))

	containerAt(t, l, 2).SetPointerPressedFunc(func(event *PointerPressedEvent) {
		items.RemoveAt(0)
	})
	press(l, 2, MouseLeftDown, tcell.ModNone)

	assert.Empty(t, l.SelectedIndices())
	// The pressed item "c" moved to index 1 and still has the focus.
	assert.Equal(t, 1, l.FocusedIndex())
	assert.Contains(t, logs.String(), `"msg":"stale selection target"`)
	assert.Contains(t, logs.String(), `"variant":"listbox"`)
}

func TestListBoxReboundTargetIsNotApplied(t *testing.T) {
	t.Parallel()
	items := letters(5)
	l, _ := newTestListBox(t, items)

	containerAt(t, l, 2).SetPointerPressedFunc(func(event *PointerPressedEvent) {
		items.Replace(2, "z")
	})
	press(l, 2, MouseLeftDown, tcell.ModNone)

	assert.Empty(t, l.SelectedIndices())
	assert.Equal(t, 2, l.FocusedIndex())
}

type taggedRow struct {
	Name string
	Tags []string
}

func TestListBoxSelectsNonComparableItems(t *testing.T) {
	t.Parallel()
	items := NewCollection(
		taggedRow{Name: "a", Tags: []string{"x"}},
		taggedRow{Name: "b", Tags: []string{"y", "z"}},
		taggedRow{Name: "c"},
	)
	l := NewListBox(
		WithSelectionMode[taggedRow](SelectionMultiple),
		WithTemplate[taggedRow](func(row taggedRow) string { return row.Name }),
	).SetItemsSource(items)
	l.SetRect(0, 0, testWidth, testHeight)
	l.Draw(newTestScreen(testWidth, testHeight))

	_, cmd := l.MouseHandler(MouseLeftDown, tcell.NewEventMouse(3, 1, tcell.ButtonPrimary, tcell.ModNone))
	assert.True(t, Consumed(cmd))
	assert.Equal(t, []int{1}, l.SelectedIndices())

	l.Focus(nil)
	cmd = l.InputHandler(tcell.NewEventKey(tcell.KeyDown, "", tcell.ModShift))
	assert.True(t, Consumed(cmd))
	assert.Equal(t, []int{1, 2}, l.SelectedIndices())
}

func TestListBoxFollowsSourceMutations(t *testing.T) {
	t.Parallel()
	items := letters(5)
	l, _ := newTestListBox(t, items, WithSelectionMode[string](SelectionMultiple))
	l.Select(1).Select(3)
	l.FocusIndex(3)

	items.RemoveAt(0)
	assert.Equal(t, []int{0, 2}, l.SelectedIndices())
	assert.Equal(t, []string{"b", "d"}, l.SelectedItems())
	assert.Equal(t, 2, l.FocusedIndex())

	items.Insert(0, "z")
	assert.Equal(t, []string{"b", "d"}, l.SelectedItems())
	assert.Equal(t, 3, l.FocusedIndex())

	items.RemoveAt(3)
	assert.Equal(t, []string{"b"}, l.SelectedItems())
	assert.Equal(t, 3, l.FocusedIndex())

	items.Replace(1, "y")
	assert.Empty(t, l.SelectedItems())

	items.Reset([]string{"p", "q"})
	assert.Equal(t, -1, l.FocusedIndex())
	assert.Equal(t, 0, l.RealizedCount())

	// Realized containers never point past the source.
	for _, index := range l.generator.RealizedIndices() {
		assert.Less(t, index, items.Len())
	}
}

func TestListBoxSelectionChangedFunc(t *testing.T) {
	t.Parallel()
	l, _ := newTestListBox(t, letters(5))
	var changes []SelectionChange
	l.SetSelectionChangedFunc(func(change SelectionChange) {
		changes = append(changes, change)
	})

	press(l, 1, MouseLeftDown, tcell.ModNone)
	press(l, 1, MouseLeftDown, tcell.ModNone)
	press(l, 2, MouseLeftDown, tcell.ModNone)

	assert.Equal(t, []SelectionChange{
		{Added: []int{1}},
		{Added: []int{2}, Removed: []int{1}},
	}, changes)
}

func TestTabStrip(t *testing.T) {
	t.Parallel()
	items := letters(4)
	l := NewTabStrip[string]()
	l.SetItemsSource(items)
	l.SetRect(0, 0, testWidth, testHeight)
	l.Draw(newTestScreen(testWidth, testHeight))

	assert.Equal(t, VariantTabStrip, l.Variant())
	assert.Equal(t, SelectionSingle|SelectionAlwaysSelected, l.SelectionMode())
	assert.Equal(t, []int{0}, l.SelectedIndices())

	press(l, 2, MouseLeftDown, tcell.ModCtrl)
	assert.Equal(t, []int{2}, l.SelectedIndices())

	press(l, 3, MouseRightDown, tcell.ModNone)
	assert.Equal(t, []int{2}, l.SelectedIndices())
	assert.Equal(t, 3, l.FocusedIndex())

	press(l, 1, MouseLeftDown, tcell.ModShift)
	assert.Equal(t, []int{1}, l.SelectedIndices())

	key(l, tcell.KeyRune, " ", tcell.ModNone)
	assert.Equal(t, []int{1}, l.SelectedIndices())

	l.ClearSelection()
	assert.Equal(t, []int{1}, l.SelectedIndices())

	l.SetSelectionMode(SelectionMultiple)
	assert.Equal(t, SelectionSingle|SelectionAlwaysSelected, l.SelectionMode())

	items.RemoveAt(1)
	assert.Equal(t, []string{"c"}, l.SelectedItems())
}

func TestListBoxDraw(t *testing.T) {
	t.Parallel()
	l, screen := newTestListBox(t, letters(3))
	press(l, 1, MouseLeftDown, tcell.ModNone)
	l.Focus(nil)
	l.Draw(screen)

	assert.Equal(t, "  a", screen.row(0))
	assert.Equal(t, BlackRightPointingSmallTriangle+" b", screen.row(1))
	assert.Equal(t, "  c", screen.row(2))
	assert.Equal(t, Styles.SelectedBackgroundColor, screen.styleAt(10, 1).GetBackground())
	assert.NotEqual(t, Styles.SelectedBackgroundColor, screen.styleAt(10, 0).GetBackground())

	l.Blur()
	l.Draw(screen)
	assert.Equal(t, "  b", screen.row(1))
}

func TestListBoxMultiLineTemplate(t *testing.T) {
	t.Parallel()
	l, screen := newTestListBox(t, letters(2), WithTemplate[string](func(item string) string {
		return item + "\n" + item + item
	}))

	assert.Equal(t, "  a", screen.row(0))
	assert.Equal(t, "  aa", screen.row(1))
	assert.Equal(t, "  b", screen.row(2))
	assert.Equal(t, "  bb", screen.row(3))
	assert.Equal(t, "", screen.row(4))

	press(l, 3, MouseLeftDown, tcell.ModNone)
	assert.Equal(t, []string{"b"}, l.SelectedItems())
}

func TestListBoxVirtualizes(t *testing.T) {
	t.Parallel()
	items := make([]string, 1000)
	for i := range items {
		items[i] = fmt.Sprintf("item %d", i)
	}
	l, screen := newTestListBox(t, NewCollection(items...))
	assert.LessOrEqual(t, l.RealizedCount(), testHeight)

	key(l, tcell.KeyEnd, "", tcell.ModNone)
	l.Draw(screen)
	assert.Equal(t, 999, l.FocusedIndex())
	assert.Equal(t, []string{"item 999"}, l.SelectedItems())
	assert.LessOrEqual(t, l.RealizedCount(), testHeight)
	_, last := l.Panel().VisibleRange()
	assert.Equal(t, 999, last)
	assert.Contains(t, screen.row(testHeight-1), "item 999")

	key(l, tcell.KeyHome, "", tcell.ModNone)
	l.Draw(screen)
	assert.Equal(t, 0, l.Panel().TopIndex())
	assert.LessOrEqual(t, l.RealizedCount(), testHeight)
}

func TestListBoxWheelScrolls(t *testing.T) {
	t.Parallel()
	l, screen := newTestListBox(t, letters(20))

	_, cmd := l.MouseHandler(MouseScrollDown, tcell.NewEventMouse(3, 0, tcell.WheelDown, tcell.ModNone))
	assert.True(t, Consumed(cmd))
	l.Draw(screen)
	assert.Equal(t, 3, l.Panel().TopIndex())
	assert.Empty(t, l.SelectedIndices())
}
