package tview

// routeTarget is an event source resolved to an item index. It is captured
// before any handler runs so that a source mutated during dispatch is
// detected before the selection is touched.
type routeTarget[T any] struct {
	index      int
	container  *ListBoxItem[T]
	generation uint64
	resolved   bool
	selectable bool
}

// resolve maps an event source to the index its container is realized for.
func (l *ListBox[T]) resolve(source Primitive) routeTarget[T] {
	index, ok := l.generator.IndexForContainer(source)
	if !ok {
		return routeTarget[T]{index: -1}
	}
	container := source.(*ListBoxItem[T])
	return routeTarget[T]{
		index:      index,
		container:  container,
		generation: container.generation,
		resolved:   true,
		selectable: container.IsSelectable(),
	}
}

// stillValid reports whether target still denotes the same item: the index
// is in bounds, the container is still realized for it and has not been
// rebound since it was resolved. The generator remaps containers on every
// source change, so no item comparison is needed.
func (l *ListBox[T]) stillValid(target routeTarget[T]) bool {
	if target.index < 0 || target.index >= l.ItemCount() {
		return false
	}
	if index, ok := l.generator.IndexForContainer(target.container); !ok || index != target.index {
		return false
	}
	return target.container.bound && target.container.generation == target.generation
}

// RaiseGotFocus dispatches a got-focus event. The event first bubbles
// through the source container, then the base stage records the focused
// item, then the variant decides about the selection. Each stage is skipped
// once the event is handled.
func (l *ListBox[T]) RaiseGotFocus(event *GotFocusEvent) {
	target := l.resolve(event.Source)
	if target.resolved && target.container.gotFocus != nil {
		target.container.gotFocus(event)
	}
	if event.Handled {
		return
	}
	l.gotFocusBase(event, target)
	if event.Handled {
		return
	}
	l.hooks.gotFocus(l, event, target)
	if !event.Handled {
		l.logUnhandled("got-focus", target, event.Navigation)
	}
}

// RaisePointerPressed dispatches a pointer-pressed event through the same
// stages as [ListBox.RaiseGotFocus].
func (l *ListBox[T]) RaisePointerPressed(event *PointerPressedEvent) {
	target := l.resolve(event.Source)
	if target.resolved && target.container.pointerPressed != nil {
		target.container.pointerPressed(event)
	}
	if event.Handled {
		return
	}
	l.pointerPressedBase(event, target)
	if event.Handled {
		return
	}
	l.hooks.pointerPressed(l, event, target)
	if !event.Handled {
		l.logUnhandled("pointer-pressed", target, NavigationPointer)
	}
}

func (l *ListBox[T]) gotFocusBase(event *GotFocusEvent, target routeTarget[T]) {
	if target.resolved {
		l.setFocused(target.index)
	}
}

// pointerPressedBase moves the focus to the pressed container.
func (l *ListBox[T]) pointerPressedBase(event *PointerPressedEvent, target routeTarget[T]) {
	if !target.resolved {
		return
	}
	l.RaiseGotFocus(&GotFocusEvent{
		RoutedEvent: RoutedEvent{Source: target.container},
		Navigation:  NavigationPointer,
		Modifiers:   event.Modifiers,
	})
}

// updateSelectionFromTarget runs the selection policy for target and
// applies the result. It reports whether an instruction was applied.
func (l *ListBox[T]) updateSelectionFromTarget(target routeTarget[T], in PolicyInput) bool {
	if !target.resolved || !target.selectable {
		return false
	}
	in.Mode = l.selection.Mode()
	instruction := DecideSelection(in)
	if instruction == InstructionNone {
		return false
	}
	if !l.stillValid(target) {
		l.logger.Debug("stale selection target", "index", target.index, "instruction", instruction.String())
		return false
	}
	applied := l.selection.Apply(instruction, target.index)
	if applied {
		l.logger.Debug("selection updated",
			"instruction", instruction.String(),
			"index", target.index,
			"selected", l.selection.Len(),
		)
	}
	return applied
}

func (l *ListBox[T]) logUnhandled(event string, target routeTarget[T], navigation NavigationMethod) {
	reason := "noop"
	switch {
	case !target.resolved:
		reason = "unresolved"
	case !target.selectable:
		reason = "not-selectable"
	case !l.stillValid(target):
		reason = "stale"
	}
	l.logger.Debug("event unhandled",
		"event", event,
		"navigation", navigation.String(),
		"index", target.index,
		"reason", reason,
	)
}
