package tview

import "github.com/gdamore/tcell/v3"

// NavigationMethod classifies how the focus arrived at an element.
type NavigationMethod int

const (
	NavigationUnspecified NavigationMethod = iota
	// NavigationPointer means focus followed a pointer press.
	NavigationPointer
	// NavigationDirectional means focus moved with arrow, page, home or end
	// keys.
	NavigationDirectional
	// NavigationProgrammatic means focus was set from code or by tabbing.
	NavigationProgrammatic
)

func (n NavigationMethod) String() string {
	switch n {
	case NavigationPointer:
		return "pointer"
	case NavigationDirectional:
		return "directional"
	case NavigationProgrammatic:
		return "programmatic"
	}
	return "unspecified"
}

// Modifiers is a snapshot of the modifier keys held when an event fired.
type Modifiers uint8

const (
	ModifierShift Modifiers = 1 << iota
	ModifierControl
)

// Has reports whether m contains all of flags.
func (m Modifiers) Has(flags Modifiers) bool {
	return m&flags == flags
}

// ModifiersFromTcell converts tcell modifier flags. Meta (Alt) counts as
// Control since many terminals do not report Control with mouse events.
func ModifiersFromTcell(mod tcell.ModMask) Modifiers {
	var m Modifiers
	if mod&tcell.ModShift != 0 {
		m |= ModifierShift
	}
	if mod&(tcell.ModCtrl|tcell.ModMeta) != 0 {
		m |= ModifierControl
	}
	return m
}

// MouseAction is a logical mouse action derived from raw tcell mouse
// events by the Application.
type MouseAction int16

const (
	MouseMove MouseAction = iota
	MouseLeftDown
	MouseLeftUp
	MouseMiddleDown
	MouseMiddleUp
	MouseRightDown
	MouseRightUp
	MouseScrollUp
	MouseScrollDown
)

// MouseButton identifies the button of a pointer press.
type MouseButton int

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonMiddle
	MouseButtonRight
)

func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonMiddle:
		return "middle"
	case MouseButtonRight:
		return "right"
	}
	return "none"
}

// mouseButtonForAction maps a mouse-down action to its button.
func mouseButtonForAction(action MouseAction) MouseButton {
	switch action {
	case MouseLeftDown:
		return MouseButtonLeft
	case MouseMiddleDown:
		return MouseButtonMiddle
	case MouseRightDown:
		return MouseButtonRight
	}
	return MouseButtonNone
}

// RoutedEvent is the part shared by all events routed through a control.
// Source is the element the event originated from. Once Handled is set, no
// later stage of the same dispatch processes the event.
type RoutedEvent struct {
	Source  Primitive
	Handled bool
}

// GotFocusEvent is raised when an element receives the focus.
type GotFocusEvent struct {
	RoutedEvent
	Navigation NavigationMethod
	Modifiers  Modifiers
}

// PointerPressedEvent is raised when a mouse button goes down over an
// element.
type PointerPressedEvent struct {
	RoutedEvent
	Button    MouseButton
	Modifiers Modifiers
}
