package tview

import (
	"fmt"

	"github.com/gdamore/tcell/v3"
)

// ContentTemplate renders an item into the text shown by its container.
// Line breaks produce multi-line containers.
type ContentTemplate[T any] func(item T) string

// DefaultTemplate formats items with fmt.Sprint.
func DefaultTemplate[T any]() ContentTemplate[T] {
	return func(item T) string {
		return fmt.Sprint(item)
	}
}

// ListBoxItem is the container a [ListBox] generates for one item.
type ListBoxItem[T any] struct {
	*Box

	content  T
	bound    bool
	template ContentTemplate[T]
	lines    []string
	// generation counts binds, so a container rebound to another item is
	// told apart without comparing items.
	generation uint64

	selected   bool
	selectable bool

	// Bubble-stage handlers, run before the list box reacts to an event
	// originating from this container.
	gotFocus       func(event *GotFocusEvent)
	pointerPressed func(event *PointerPressedEvent)
}

// NewListBoxItem returns an unbound container.
func NewListBoxItem[T any]() *ListBoxItem[T] {
	c := &ListBoxItem[T]{
		Box:        NewBox(),
		selectable: true,
	}
	c.SetDontClear(true)
	return c
}

// bind associates the container with item and renders it with template.
func (c *ListBoxItem[T]) bind(item T, template ContentTemplate[T]) {
	c.content = item
	c.bound = true
	c.generation++
	c.template = template
	c.lines = splitLines(template(item))
	c.MarkDirty()
}

// unbind clears the association with the data item and any visual state.
func (c *ListBoxItem[T]) unbind() {
	var zero T
	c.content = zero
	c.bound = false
	c.template = nil
	c.lines = nil
	c.selected = false
	c.selectable = true
	if c.HasFocus() {
		c.Box.Blur()
	}
	c.MarkDirty()
}

// Content returns the bound item. The second value is false for an
// unrealized container.
func (c *ListBoxItem[T]) Content() (T, bool) {
	return c.content, c.bound
}

// Lines returns the rendered template output.
func (c *ListBoxItem[T]) Lines() []string {
	return c.lines
}

// IsSelected reports whether the container shows its item as selected.
func (c *ListBoxItem[T]) IsSelected() bool {
	return c.selected
}

func (c *ListBoxItem[T]) setSelected(selected bool) {
	if c.selected != selected {
		c.selected = selected
		c.MarkDirty()
	}
}

// IsSelectable reports whether presses on this container may select it.
func (c *ListBoxItem[T]) IsSelectable() bool {
	return c.selectable
}

func (c *ListBoxItem[T]) setSelectable(selectable bool) {
	if c.selectable != selectable {
		c.selectable = selectable
		c.MarkDirty()
	}
}

// SetGotFocusFunc sets a handler run when the container receives focus,
// before the list box processes the event. It may set event.Handled.
func (c *ListBoxItem[T]) SetGotFocusFunc(handler func(event *GotFocusEvent)) *ListBoxItem[T] {
	c.gotFocus = handler
	return c
}

// SetPointerPressedFunc sets a handler run when the container is pressed,
// before the list box processes the event. It may set event.Handled.
func (c *ListBoxItem[T]) SetPointerPressedFunc(handler func(event *PointerPressedEvent)) *ListBoxItem[T] {
	c.pointerPressed = handler
	return c
}

// Height returns the number of template lines.
func (c *ListBoxItem[T]) Height(width int) int {
	return max(len(c.lines), 1)
}

// Draw draws the item text, a focus marker and the selection highlight.
func (c *ListBoxItem[T]) Draw(screen tcell.Screen) {
	c.DrawForSubclass(screen, c)

	x, y, width, height := c.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}

	style := tcell.StyleDefault.Foreground(Styles.PrimaryTextColor).Background(c.GetBackgroundColor())
	switch {
	case c.selected:
		style = tcell.StyleDefault.Foreground(Styles.SelectedTextColor).Background(Styles.SelectedBackgroundColor)
	case !c.selectable:
		style = tcell.StyleDefault.Foreground(Styles.TertiaryTextColor).Background(c.GetBackgroundColor())
	}

	for row := 0; row < height; row++ {
		if c.selected {
			for col := x; col < x+width; col++ {
				screen.Put(col, y+row, " ", style)
			}
		}
		if row == 0 && c.HasFocus() {
			screen.Put(x, y, BlackRightPointingSmallTriangle, style.Foreground(Styles.FocusedItemColor))
		}
		if row < len(c.lines) && width > 2 {
			PrintWithStyle(screen, c.lines[row], x+2, y+row, width-2, AlignmentLeft, style)
		}
	}
}

// InputHandler ignores keys; the list box handles them.
func (c *ListBoxItem[T]) InputHandler(event *tcell.EventKey) Command {
	return nil
}

// MouseHandler ignores mouse events; the list box resolves and routes them.
func (c *ListBoxItem[T]) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	return nil, nil
}

var _ PanelItem = &ListBoxItem[int]{}
