package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-maze/internal/core"
)

// gameKeys maps key names to in-game actions. Several keys may share one action.
var gameKeys = map[string]core.Action{
	"w": core.ActionForward, "up": core.ActionForward,
	"s": core.ActionBackward, "down": core.ActionBackward,
	"a": core.ActionTurnLeft, "left": core.ActionTurnLeft,
	"d": core.ActionTurnRight, "right": core.ActionTurnRight,
	"z": core.ActionStrafeLeft,
	"e": core.ActionStrafeRight,
	"m": core.ActionMinimap,
	"l": core.ActionDump, "ctrl+s": core.ActionDump,
	"enter": core.ActionConfirm,
	"b": core.ActionBack, "esc": core.ActionBack,
	"p": core.ActionPause,
	"r": core.ActionRestart,
}

// quitKeys end the program from any screen.
var quitKeys = map[string]bool{"ctrl+c": true, "q": true}

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct {
	game map[string]core.Action
	menu map[string]MenuAction
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{game: gameKeys, menu: menuKeys}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := msg.String()
	if quitKeys[k] {
		return core.ActionQuit, true
	}
	if a, ok := km.game[k]; ok {
		return a, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

var menuKeys = map[string]MenuAction{
	"w": MenuActionUp, "up": MenuActionUp, "k": MenuActionUp,
	"s": MenuActionDown, "down": MenuActionDown, "j": MenuActionDown,
	"a": MenuActionLeft, "left": MenuActionLeft, "h": MenuActionLeft,
	"d": MenuActionRight, "right": MenuActionRight, "l": MenuActionRight,
	"enter": MenuActionSelect, " ": MenuActionSelect,
	"b": MenuActionBack, "esc": MenuActionBack,
	"tab": MenuActionScoreboard,
}

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	k := msg.String()
	if quitKeys[k] {
		return MenuActionQuit
	}
	return km.menu[k]
}
