package core

import (
	"fmt"
	"maps"
)

// Action is a player intent decoupled from the key that produced it.
type Action int

const (
	ActionNone        Action = iota
	ActionForward            // W, Up arrow
	ActionBackward           // S, Down arrow
	ActionTurnLeft           // A, Left arrow
	ActionTurnRight          // D, Right arrow
	ActionStrafeLeft         // Z
	ActionStrafeRight        // E
	ActionMinimap            // M - toggle the minimap overlay
	ActionDump               // L, Ctrl+S - write a dump report
	ActionConfirm            // Enter - confirm selection in menu
	ActionBack               // B, Escape - go back to menu
	ActionRestart            // R - new maze
	ActionQuit               // Q, Ctrl+C - exit game/session
	ActionPause              // P - pause/unpause game
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionForward:
		return "Forward"
	case ActionBackward:
		return "Backward"
	case ActionTurnLeft:
		return "TurnLeft"
	case ActionTurnRight:
		return "TurnRight"
	case ActionStrafeLeft:
		return "StrafeLeft"
	case ActionStrafeRight:
		return "StrafeRight"
	case ActionMinimap:
		return "Minimap"
	case ActionDump:
		return "Dump"
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
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// IsMovement reports whether the action moves or turns the player.
func (a Action) IsMovement() bool {
	return a >= ActionForward && a <= ActionStrafeRight
}

// InputFrame collects the actions pressed between two ticks. Several keys
// may land in one frame; the game applies them all on the next Step.
type InputFrame struct {
	Actions map[Action]bool
}

func NewInputFrame() InputFrame {
	return InputFrame{Actions: map[Action]bool{}}
}

// Set records a.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = map[Action]bool{}
	}
	f.Actions[a] = true
}

// Has reports whether a was pressed during the frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	for _, v := range f.Actions {
		if v {
			return false
		}
	}
	return true
}

// Clear empties the frame in place for the next tick.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}

// Clone returns an independent copy.
func (f InputFrame) Clone() InputFrame {
	c := NewInputFrame()
	maps.Copy(c.Actions, f.Actions)
	return c
}
