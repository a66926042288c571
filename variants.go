package tview

// Variant selects the selection behavior of a [ListBox]. All variants share
// the same routing engine and differ only in their extension stage.
type Variant int

const (
	// VariantListBox selects on directional focus (Shift extends) and on left
	// or right presses (Shift extends, Control toggles).
	VariantListBox Variant = iota
	// VariantTabStrip keeps exactly one item selected and ignores modifiers.
	VariantTabStrip
)

func (v Variant) String() string {
	switch v {
	case VariantListBox:
		return "listbox"
	case VariantTabStrip:
		return "tabstrip"
	}
	return "unknown"
}

// variantHooks is the extension stage of a variant. Hooks run after the
// shared base stage and only while the event is unhandled.
type variantHooks[T any] struct {
	gotFocus       func(l *ListBox[T], event *GotFocusEvent, target routeTarget[T])
	pointerPressed func(l *ListBox[T], event *PointerPressedEvent, target routeTarget[T])
	// mode adjusts a requested selection mode to what the variant supports.
	mode func(requested SelectionMode) SelectionMode
}

func hooksFor[T any](variant Variant) variantHooks[T] {
	switch variant {
	case VariantTabStrip:
		return variantHooks[T]{
			gotFocus:       tabStripGotFocus[T],
			pointerPressed: tabStripPointerPressed[T],
			mode: func(SelectionMode) SelectionMode {
				return SelectionSingle | SelectionAlwaysSelected
			},
		}
	default:
		return variantHooks[T]{
			gotFocus:       listBoxGotFocus[T],
			pointerPressed: listBoxPointerPressed[T],
			mode: func(requested SelectionMode) SelectionMode {
				return requested
			},
		}
	}
}

func listBoxGotFocus[T any](l *ListBox[T], event *GotFocusEvent, target routeTarget[T]) {
	if event.Navigation != NavigationDirectional {
		return
	}
	event.Handled = l.updateSelectionFromTarget(target, PolicyInput{
		Trigger:    TriggerGotFocus,
		Navigation: event.Navigation,
		Shift:      event.Modifiers.Has(ModifierShift),
	})
}

func listBoxPointerPressed[T any](l *ListBox[T], event *PointerPressedEvent, target routeTarget[T]) {
	if event.Button != MouseButtonLeft && event.Button != MouseButtonRight {
		return
	}
	event.Handled = l.updateSelectionFromTarget(target, PolicyInput{
		Trigger:    TriggerPointerPressed,
		Navigation: NavigationPointer,
		Button:     event.Button,
		Shift:      event.Modifiers.Has(ModifierShift),
		Control:    event.Modifiers.Has(ModifierControl),
	})
}

func tabStripGotFocus[T any](l *ListBox[T], event *GotFocusEvent, target routeTarget[T]) {
	if event.Navigation != NavigationDirectional {
		return
	}
	event.Handled = l.updateSelectionFromTarget(target, PolicyInput{
		Trigger:    TriggerGotFocus,
		Navigation: event.Navigation,
	})
}

func tabStripPointerPressed[T any](l *ListBox[T], event *PointerPressedEvent, target routeTarget[T]) {
	if event.Button != MouseButtonLeft {
		return
	}
	event.Handled = l.updateSelectionFromTarget(target, PolicyInput{
		Trigger:    TriggerPointerPressed,
		Navigation: NavigationPointer,
		Button:     event.Button,
	})
}
