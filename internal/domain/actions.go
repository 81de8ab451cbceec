package domain

import "strings"

// ActionType is the engine-side id of a client command.
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionMovePath
	ActionPreview
	ActionCancelPreview
	ActionAttack
	ActionWait
	ActionEndTurn
	ActionCheat
)

var actionStringToCmd = map[string]ActionType{
	"INIT":           ActionInit,
	"MOVE_PATH":      ActionMovePath,
	"PREVIEW":        ActionPreview,
	"CANCEL_PREVIEW": ActionCancelPreview,
	"ATTACK":         ActionAttack,
	"WAIT":           ActionWait,
	"END_TURN":       ActionEndTurn,
	"CHEAT":          ActionCheat,
}

var actionCmdToString = map[ActionType]string{
	ActionInit:          "INIT",
	ActionMovePath:      "MOVE_PATH",
	ActionPreview:       "PREVIEW",
	ActionCancelPreview: "CANCEL_PREVIEW",
	ActionAttack:        "ATTACK",
	ActionWait:          "WAIT",
	ActionEndTurn:       "END_TURN",
	ActionCheat:         "CHEAT",
}

// ParseAction converts a wire name into an ActionType. Case-insensitive.
func ParseAction(s string) ActionType {
	if val, ok := actionStringToCmd[strings.ToUpper(s)]; ok {
		return val
	}
	return ActionUnknown
}

func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// Mutates reports whether the action changes battle state and so belongs in
// the journal.
func (a ActionType) Mutates() bool {
	switch a {
	case ActionMovePath, ActionAttack, ActionWait, ActionEndTurn, ActionCheat:
		return true
	}
	return false
}
