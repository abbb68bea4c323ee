package core

// Action represents a semantic game action, abstracted from physical key
// presses and mouse buttons.
type Action int

const (
	ActionNone     Action = iota
	ActionLeft            // A, Left arrow - move paddle left
	ActionRight           // D, Right arrow - move paddle right
	ActionJump            // Space - launch the ball from the paddle
	ActionMultiply        // M, left mouse button - multiply balls
	ActionConfirm         // Enter - confirm selection in menu
	ActionBack            // B, Escape - go back to menu
	ActionRestart         // R key - restart game after game over
	ActionQuit            // Q, Ctrl+C - exit game/session
	ActionPause           // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionMultiply:
		return "Multiply"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame is the input sampled for one simulation tick: discrete actions
// plus the latest horizontal pointer position, if any.
type InputFrame struct {
	Actions map[Action]bool

	// PointerX is the pointer position as a fraction of the play area
	// width (0 = left edge, 1 = right edge). Valid only when HasPointer.
	PointerX   float64
	HasPointer bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// SetPointer records the pointer position as a fraction of the play width.
func (f *InputFrame) SetPointer(fraction float64) {
	f.PointerX = ClampF(fraction, 0, 1)
	f.HasPointer = true
}

// Clear resets the discrete actions for the next frame.
// The pointer position persists: it is a level, not an event.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.PointerX = f.PointerX
	clone.HasPointer = f.HasPointer
	return clone
}
