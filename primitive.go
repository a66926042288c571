package tview

import "github.com/gdamore/tcell/v3"

// Primitive is an element the Application can lay out, draw and route
// events to. Handlers never act on the application directly; they return
// Commands which the event loop executes.
type Primitive interface {
	// Draw renders the primitive inside its rect.
	Draw(screen tcell.Screen)

	// GetRect returns x, y, width and height.
	GetRect() (int, int, int, int)
	SetRect(x, y, width, height int)

	// InputHandler handles a key event while the primitive has the focus.
	InputHandler(event *tcell.EventKey) Command
	// MouseHandler handles a mouse action. A non-nil capture primitive
	// receives the following mouse actions until it returns nil.
	MouseHandler(action MouseAction, event *tcell.EventMouse) (capture Primitive, cmd Command)

	// HasFocus also reports true when a child has the focus.
	HasFocus() bool
	// Focus is called when the primitive gains the focus. Containers pass
	// it on by calling delegate with a child.
	Focus(delegate func(p Primitive))
	Blur()

	// IsDirty reports whether the primitive changed since it was last
	// drawn.
	IsDirty() bool
	MarkClean()
}
