package tview

// Command is what an input handler asks the Application to do once the
// handler returns. A nil Command means the event was not handled.
type Command any

// BatchCommand runs its commands in order.
type BatchCommand []Command

// AppendCommand returns current followed by next. Batches are flattened so
// the result never nests.
func AppendCommand(current, next Command) Command {
	switch {
	case next == nil:
		return current
	case current == nil:
		return next
	}
	return append(flatten(nil, current), flatten(nil, next)...)
}

func flatten(into BatchCommand, cmd Command) BatchCommand {
	if batch, ok := cmd.(BatchCommand); ok {
		for _, c := range batch {
			into = flatten(into, c)
		}
		return into
	}
	return append(into, cmd)
}

// Consumed reports whether cmd contains a ConsumeEventCommand.
func Consumed(cmd Command) bool {
	switch c := cmd.(type) {
	case ConsumeEventCommand:
		return true
	case BatchCommand:
		for _, item := range c {
			if Consumed(item) {
				return true
			}
		}
	}
	return false
}

// ConsumeEventCommand marks the event as handled. Containers stop offering
// it to further children.
type ConsumeEventCommand struct{}

// SetFocusCommand moves the application focus to Target.
type SetFocusCommand struct {
	Target Primitive
}

// RedrawCommand draws a frame after the event, even if nothing is dirty.
type RedrawCommand struct{}

// QuitCommand stops the event loop.
type QuitCommand struct{}

// SetTitleCommand sets the terminal window title.
type SetTitleCommand string
