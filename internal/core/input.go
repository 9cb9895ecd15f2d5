package core

// Action is a semantic game action, decoupled from physical keys.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionJump // flap
	ActionConfirm
	ActionBack
	ActionRestart
	ActionQuit
	ActionPause
	ActionFaster // more simulation ticks per frame
	ActionSlower
)

var actionNames = [...]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionJump:    "Jump",
	ActionConfirm: "Confirm",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
	ActionPause:   "Pause",
	ActionFaster:  "Faster",
	ActionSlower:  "Slower",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame is the set of actions triggered during one simulation tick.
// The zero value is an empty frame.
type InputFrame uint16

// NewInputFrame returns a frame holding the given actions.
func NewInputFrame(actions ...Action) InputFrame {
	var f InputFrame
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if a > ActionNone {
		*f |= 1 << a
	}
}

// Has reports whether a was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return a > ActionNone && f&(1<<a) != 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	*f = 0
}

// Clone returns a copy of the frame.
func (f InputFrame) Clone() InputFrame {
	return f
}
