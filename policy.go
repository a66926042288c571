package tview

// SelectionInstruction is the selection update decided for an input event.
type SelectionInstruction int

const (
	// InstructionNone leaves the selection unchanged.
	InstructionNone SelectionInstruction = iota
	// InstructionSelectOnly replaces the selection with the target.
	InstructionSelectOnly
	// InstructionToggle flips the target in or out of the selection.
	InstructionToggle
	// InstructionRangeExtend selects the range from the anchor to the target.
	InstructionRangeExtend
)

func (i SelectionInstruction) String() string {
	switch i {
	case InstructionSelectOnly:
		return "select-only"
	case InstructionToggle:
		return "toggle"
	case InstructionRangeExtend:
		return "range-extend"
	}
	return "none"
}

// Trigger names the kind of event a selection decision is made for.
type Trigger int

const (
	TriggerGotFocus Trigger = iota
	TriggerPointerPressed
)

// PolicyInput is everything DecideSelection looks at.
type PolicyInput struct {
	Mode       SelectionMode
	Shift      bool
	Control    bool
	Navigation NavigationMethod
	Trigger    Trigger
	// Button is the pressed button for TriggerPointerPressed. Left and right
	// presses are decided alike.
	Button MouseButton
}

// DecideSelection maps modifier state, navigation method and event kind to a
// selection instruction for the configured mode. The first matching rule
// wins:
//
//  1. focus not arriving by directional navigation: none
//  2. SelectionNone: none
//  3. shift with a multiple mode: range extend
//  4. control with a multiple or toggle mode: toggle
//  5. pointer press in toggle mode: toggle
//  6. otherwise: select only
func DecideSelection(in PolicyInput) SelectionInstruction {
	switch {
	case in.Trigger == TriggerGotFocus && in.Navigation != NavigationDirectional:
		return InstructionNone
	case in.Mode == SelectionNone:
		return InstructionNone
	case in.Shift && in.Mode.AllowsMultiple():
		return InstructionRangeExtend
	case in.Control && in.Mode.AllowsToggle():
		return InstructionToggle
	case in.Trigger == TriggerPointerPressed && in.Mode.Has(SelectionToggle):
		return InstructionToggle
	default:
		return InstructionSelectOnly
	}
}
